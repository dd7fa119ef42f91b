package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"repair-system/internal/entities"
	"repair-system/internal/repositories"
	"repair-system/pkg/constants"
	apperrors "repair-system/pkg/errors"
)

// memState - содержимое "базы" для тестов сервисов.
type memState struct {
	users       map[uint64]string
	devices     map[uint64]string
	software    map[uint64]bool
	vendors     map[uint64]bool
	repairs     map[uint64]entities.RepairRequest
	details     map[uint64]entities.RepairDetail
	history     []entities.RepairHistory
	parts       []entities.RepairPartUsed
	files       []entities.RepairFile
	assignments []entities.DeviceAssignment
	installs    []entities.DeviceSoftware
	nextID      uint64
}

func (s *memState) clone() *memState {
	c := &memState{
		users:       make(map[uint64]string, len(s.users)),
		devices:     make(map[uint64]string, len(s.devices)),
		software:    make(map[uint64]bool, len(s.software)),
		vendors:     make(map[uint64]bool, len(s.vendors)),
		repairs:     make(map[uint64]entities.RepairRequest, len(s.repairs)),
		details:     make(map[uint64]entities.RepairDetail, len(s.details)),
		history:     append([]entities.RepairHistory(nil), s.history...),
		parts:       append([]entities.RepairPartUsed(nil), s.parts...),
		files:       append([]entities.RepairFile(nil), s.files...),
		assignments: append([]entities.DeviceAssignment(nil), s.assignments...),
		installs:    append([]entities.DeviceSoftware(nil), s.installs...),
		nextID:      s.nextID,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.devices {
		c.devices[k] = v
	}
	for k, v := range s.software {
		c.software[k] = v
	}
	for k, v := range s.vendors {
		c.vendors[k] = v
	}
	for k, v := range s.repairs {
		c.repairs[k] = v
	}
	for k, v := range s.details {
		c.details[k] = v
	}
	return c
}

// memStore - общее хранилище для всех фейковых репозиториев.
type memStore struct {
	mu    sync.Mutex
	txMu  sync.Mutex
	state *memState
	clock time.Time

	failHistory bool
	failFiles   bool
}

func newMemStore() *memStore {
	return &memStore{
		state: &memState{
			users:    map[uint64]string{1: "Admin", 5: "Nguyễn Văn A"},
			devices:  map[uint64]string{7: "Laptop Dell 7490"},
			software: map[uint64]bool{3: true},
			vendors:  map[uint64]bool{2: true},
			repairs:  map[uint64]entities.RepairRequest{},
			details:  map[uint64]entities.RepairDetail{},
			nextID:   100,
		},
		clock: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) id() uint64 {
	m.state.nextID++
	return m.state.nextID
}

// now - монотонные часы: каждая запись на секунду позже предыдущей.
func (m *memStore) now() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

var errInjected = errors.New("сбой записи")

// fakeTxManager сериализует транзакции и откатывает состояние при ошибке.
type fakeTxManager struct {
	store *memStore
	runs  int
}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	f.store.txMu.Lock()
	defer f.store.txMu.Unlock()
	f.runs++

	f.store.mu.Lock()
	snapshot := f.store.state.clone()
	f.store.mu.Unlock()

	if err := fn(nil); err != nil {
		f.store.mu.Lock()
		f.store.state = snapshot
		f.store.mu.Unlock()
		return err
	}
	return nil
}

// --- справочные таблицы ---

type memRefRepo struct{ s *memStore }

func (r memRefRepo) UserExists(_ context.Context, _ pgx.Tx, id uint64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.state.users[id]
	return ok, nil
}

func (r memRefRepo) DeviceExists(_ context.Context, _ pgx.Tx, id uint64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.state.devices[id]
	return ok, nil
}

func (r memRefRepo) SoftwareExists(_ context.Context, _ pgx.Tx, id uint64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.state.software[id], nil
}

func (r memRefRepo) VendorExists(_ context.Context, _ pgx.Tx, id uint64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.state.vendors[id], nil
}

// --- заявки ---

type memRepairRepo struct{ s *memStore }

func (r memRepairRepo) CreateInTx(_ context.Context, _ pgx.Tx, e *entities.RepairRequest) (*entities.RepairRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	created := *e
	created.IDRepair = r.s.id()
	created.DateReported = r.s.now()
	created.LastUpdated = created.DateReported
	r.s.state.repairs[created.IDRepair] = created
	return &created, nil
}

func (r memRepairRepo) view(rr entities.RepairRequest) entities.RepairRequestView {
	v := entities.RepairRequestView{RepairRequest: rr}
	if name, ok := r.s.state.devices[rr.IDDevices]; ok {
		v.DeviceName = &name
	}
	if name, ok := r.s.state.users[rr.ReportedBy]; ok {
		v.ReporterName = &name
	}
	if d, ok := r.s.state.details[rr.IDRepair]; ok {
		v.LaborCost, v.PartsCost, v.OtherCost = d.LaborCost, d.PartsCost, d.OtherCost
	}
	return v
}

func (r memRepairRepo) FindByID(_ context.Context, id uint64) (*entities.RepairRequestView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rr, ok := r.s.state.repairs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	v := r.view(rr)
	return &v, nil
}

func (r memRepairRepo) FindForUpdateInTx(_ context.Context, _ pgx.Tx, id uint64) (*entities.RepairRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rr, ok := r.s.state.repairs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &rr, nil
}

func (r memRepairRepo) ExistsInTx(_ context.Context, _ pgx.Tx, id uint64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.state.repairs[id]
	return ok, nil
}

func (r memRepairRepo) UpdateStatusInTx(_ context.Context, _ pgx.Tx, id uint64, label string, approvedBy *uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rr, ok := r.s.state.repairs[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	rr.Status = label
	if approvedBy != nil {
		rr.ApprovedBy = approvedBy
	}
	rr.LastUpdated = r.s.now()
	r.s.state.repairs[id] = rr
	return nil
}

func (r memRepairRepo) TouchInTx(_ context.Context, _ pgx.Tx, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rr, ok := r.s.state.repairs[id]; ok {
		rr.LastUpdated = r.s.now()
		r.s.state.repairs[id] = rr
	}
	return nil
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func (r memRepairRepo) List(_ context.Context, f entities.RepairListFilter) ([]entities.RepairRequestView, uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := make([]entities.RepairRequestView, 0)
	for _, rr := range r.s.state.repairs {
		if len(f.StatusLabels) > 0 && !containsString(f.StatusLabels, rr.Status) {
			continue
		}
		if containsString(f.ExcludeStatusLabels, rr.Status) {
			continue
		}
		if len(f.SeverityLabels) > 0 && !containsString(f.SeverityLabels, rr.Severity) {
			continue
		}
		if len(f.PriorityLabels) > 0 && !containsString(f.PriorityLabels, rr.Priority) {
			continue
		}
		if f.DeviceID != nil && rr.IDDevices != *f.DeviceID {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(rr.Title), q) && !strings.Contains(strings.ToLower(rr.IssueDescription), q) {
				continue
			}
		}
		matched = append(matched, r.view(rr))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].IDRepair > matched[j].IDRepair
	})

	total := uint64(len(matched))
	if f.Limit > 0 {
		start := f.Offset
		if start > total {
			start = total
		}
		end := start + f.Limit
		if end > total {
			end = total
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

// --- история ---

type memHistoryRepo struct{ s *memStore }

func (r memHistoryRepo) CreateInTx(_ context.Context, _ pgx.Tx, e *entities.RepairHistory) (*entities.RepairHistory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failHistory {
		return nil, errInjected
	}
	created := *e
	created.IDHistory = r.s.id()
	created.CreatedAt = r.s.now()
	r.s.state.history = append(r.s.state.history, created)
	return &created, nil
}

func (r memHistoryRepo) SumCostDeltaInTx(_ context.Context, _ pgx.Tx, repairID uint64) (float64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum float64
	for _, h := range r.s.state.history {
		if h.IDRepair == repairID {
			sum += h.CostDelta
		}
	}
	return sum, nil
}

func (r memHistoryRepo) ListByRepair(_ context.Context, repairID uint64) ([]entities.RepairHistory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]entities.RepairHistory, 0)
	for _, h := range r.s.state.history {
		if h.IDRepair == repairID {
			result = append(result, h)
		}
	}
	return result, nil
}

func (m *memStore) historyOf(repairID uint64) []entities.RepairHistory {
	rows, _ := memHistoryRepo{m}.ListByRepair(context.Background(), repairID)
	return rows
}

// --- детали ---

type memDetailRepo struct{ s *memStore }

func (r memDetailRepo) UpsertInTx(_ context.Context, _ pgx.Tx, repairID uint64, p entities.RepairDetailPatch) (*entities.RepairDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.state.details[repairID]
	if !ok {
		d = entities.RepairDetail{IDRepairDetail: r.s.id(), IDRepair: repairID, RepairType: constants.RepairTypeInternal}
	}
	if p.RepairType != nil {
		d.RepairType = *p.RepairType
	}
	if p.TechnicianUser != nil {
		d.TechnicianUser = p.TechnicianUser
	}
	if p.IDVendor != nil {
		d.IDVendor = p.IDVendor
	}
	if p.StartTime != nil {
		d.StartTime = p.StartTime
	}
	if p.EndTime != nil {
		d.EndTime = p.EndTime
	}
	if p.TotalLaborHours != nil {
		d.TotalLaborHours = *p.TotalLaborHours
	}
	if p.LaborCost != nil {
		d.LaborCost = *p.LaborCost
	}
	if p.PartsCost != nil {
		d.PartsCost = *p.PartsCost
	}
	if p.OtherCost != nil {
		d.OtherCost = *p.OtherCost
	}
	if p.Outcome != nil {
		d.Outcome = *p.Outcome
	}
	if p.WarrantyExtendMon != nil {
		d.WarrantyExtendMon = *p.WarrantyExtendMon
	}
	if p.NextMaintenanceDate != nil {
		d.NextMaintenanceDate = p.NextMaintenanceDate
	}
	r.s.state.details[repairID] = d
	return &d, nil
}

func (r memDetailRepo) FindByRepairID(_ context.Context, _ pgx.Tx, repairID uint64) (*entities.RepairDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.state.details[repairID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &d, nil
}

// --- запчасти и файлы ---

type memPartRepo struct{ s *memStore }

func (r memPartRepo) CreateBatchInTx(_ context.Context, _ pgx.Tx, repairID uint64, parts []entities.RepairPartUsed) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range parts {
		p.IDPart = r.s.id()
		p.IDRepair = repairID
		p.CreatedAt = r.s.now()
		r.s.state.parts = append(r.s.state.parts, p)
	}
	return len(parts), nil
}

func (r memPartRepo) Delete(_ context.Context, repairID, partID uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, p := range r.s.state.parts {
		if p.IDRepair == repairID && p.IDPart == partID {
			r.s.state.parts = append(r.s.state.parts[:i], r.s.state.parts[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r memPartRepo) ListByRepair(_ context.Context, repairID uint64) ([]entities.RepairPartUsed, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]entities.RepairPartUsed, 0)
	for _, p := range r.s.state.parts {
		if p.IDRepair == repairID {
			result = append(result, p)
		}
	}
	return result, nil
}

type memFileRepo struct{ s *memStore }

func (r memFileRepo) CreateInTx(_ context.Context, _ pgx.Tx, f *entities.RepairFile) (*entities.RepairFile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failFiles {
		return nil, errInjected
	}
	created := *f
	created.IDFile = r.s.id()
	created.UploadedAt = r.s.now()
	r.s.state.files = append(r.s.state.files, created)
	return &created, nil
}

func (r memFileRepo) DeleteReturning(_ context.Context, repairID, fileID uint64) (*entities.RepairFile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, f := range r.s.state.files {
		if f.IDRepair == repairID && f.IDFile == fileID {
			r.s.state.files = append(r.s.state.files[:i], r.s.state.files[i+1:]...)
			return &f, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r memFileRepo) ListByRepair(_ context.Context, repairID uint64) ([]entities.RepairFile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]entities.RepairFile, 0)
	for _, f := range r.s.state.files {
		if f.IDRepair == repairID {
			result = append(result, f)
		}
	}
	return result, nil
}

// --- журнал выдачи ---

type memAssignmentRepo struct{ s *memStore }

func (r memAssignmentRepo) HasActiveForUpdateInTx(_ context.Context, _ pgx.Tx, userID, deviceID uint64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.activeIndex(userID, deviceID) >= 0, nil
}

func (r memAssignmentRepo) activeIndex(userID, deviceID uint64) int {
	for i, a := range r.s.state.assignments {
		if a.IDUsers == userID && a.IDDevices == deviceID && a.EndTime == nil {
			return i
		}
	}
	return -1
}

// CreateInTx повторяет поведение частичного уникального индекса.
func (r memAssignmentRepo) CreateInTx(_ context.Context, _ pgx.Tx, userID, deviceID uint64) (*entities.DeviceAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.activeIndex(userID, deviceID) >= 0 {
		return nil, apperrors.NewConflictError(repositories.ConflictActiveAssignment)
	}
	a := entities.DeviceAssignment{IDAssignment: r.s.id(), IDUsers: userID, IDDevices: deviceID, StartTime: r.s.now()}
	r.s.state.assignments = append(r.s.state.assignments, a)
	return &a, nil
}

func (r memAssignmentRepo) CloseActive(_ context.Context, userID, deviceID uint64) (*entities.DeviceAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.activeIndex(userID, deviceID)
	if i < 0 {
		return nil, apperrors.ErrNotFound
	}
	end := r.s.now()
	r.s.state.assignments[i].EndTime = &end
	a := r.s.state.assignments[i]
	return &a, nil
}

func (r memAssignmentRepo) activeUsers(filter func(entities.DeviceAssignment) bool) []entities.ActiveUser {
	result := make([]entities.ActiveUser, 0)
	for _, a := range r.s.state.assignments {
		if a.EndTime != nil || !filter(a) {
			continue
		}
		result = append(result, entities.ActiveUser{
			IDAssignment: a.IDAssignment,
			IDUsers:      a.IDUsers,
			IDDevices:    a.IDDevices,
			FullName:     r.s.state.users[a.IDUsers],
			StartTime:    a.StartTime,
		})
	}
	return result
}

func (r memAssignmentRepo) ActiveUsersOfDevice(_ context.Context, deviceID uint64) ([]entities.ActiveUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.activeUsers(func(a entities.DeviceAssignment) bool { return a.IDDevices == deviceID }), nil
}

func (r memAssignmentRepo) ActiveUsers(_ context.Context) ([]entities.ActiveUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.activeUsers(func(entities.DeviceAssignment) bool { return true }), nil
}

func (r memAssignmentRepo) ActiveCounts(_ context.Context) (map[uint64]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := make(map[uint64]int)
	for _, a := range r.s.state.assignments {
		if a.EndTime == nil {
			counts[a.IDDevices]++
		}
	}
	return counts, nil
}

func (r memAssignmentRepo) HistoryOfDevice(_ context.Context, deviceID uint64) ([]entities.DeviceAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]entities.DeviceAssignment, 0)
	for i := len(r.s.state.assignments) - 1; i >= 0; i-- {
		if a := r.s.state.assignments[i]; a.IDDevices == deviceID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r memAssignmentRepo) ActiveDevicesOfUser(_ context.Context, userID uint64) ([]entities.DeviceAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]entities.DeviceAssignment, 0)
	for _, a := range r.s.state.assignments {
		if a.IDUsers == userID && a.EndTime == nil {
			result = append(result, a)
		}
	}
	return result, nil
}

// --- установки ПО ---

type memSoftwareRepo struct{ s *memStore }

func (r memSoftwareRepo) installedIndex(deviceID, softwareID uint64) int {
	for i, ds := range r.s.state.installs {
		if ds.IDDevices == deviceID && ds.IDSoftware == softwareID && ds.Status == constants.SoftwareStatusInstalled {
			return i
		}
	}
	return -1
}

func (r memSoftwareRepo) HasInstalledForUpdateInTx(_ context.Context, _ pgx.Tx, deviceID, softwareID uint64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.installedIndex(deviceID, softwareID) >= 0, nil
}

func (r memSoftwareRepo) CreateInTx(_ context.Context, _ pgx.Tx, e *entities.DeviceSoftware) (*entities.DeviceSoftware, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.installedIndex(e.IDDevices, e.IDSoftware) >= 0 {
		return nil, apperrors.NewConflictError(repositories.ConflictActiveInstallation)
	}
	created := *e
	created.IDDeviceSoftware = r.s.id()
	created.Status = constants.SoftwareStatusInstalled
	created.InstallDate = r.s.now()
	r.s.state.installs = append(r.s.state.installs, created)
	return &created, nil
}

func (r memSoftwareRepo) MarkUninstalled(_ context.Context, deviceID, softwareID uint64) (*entities.DeviceSoftware, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.installedIndex(deviceID, softwareID)
	if i < 0 {
		return nil, apperrors.ErrNotFound
	}
	now := r.s.now()
	r.s.state.installs[i].Status = constants.SoftwareStatusUninstalled
	r.s.state.installs[i].UninstallDate = &now
	ds := r.s.state.installs[i]
	return &ds, nil
}

func (r memSoftwareRepo) ListByDevice(_ context.Context, deviceID uint64, includeUninstalled bool) ([]entities.DeviceSoftware, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]entities.DeviceSoftware, 0)
	for _, ds := range r.s.state.installs {
		if ds.IDDevices != deviceID {
			continue
		}
		if !includeUninstalled && ds.Status != constants.SoftwareStatusInstalled {
			continue
		}
		result = append(result, ds)
	}
	return result, nil
}

func (r memSoftwareRepo) ListBySoftware(_ context.Context, softwareID uint64) ([]entities.DeviceSoftware, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]entities.DeviceSoftware, 0)
	for _, ds := range r.s.state.installs {
		if ds.IDSoftware == softwareID && ds.Status == constants.SoftwareStatusInstalled {
			result = append(result, ds)
		}
	}
	return result, nil
}

// --- отчеты и кеш ---

type stubReportRepo struct {
	statusRows  []entities.StatusCountRow
	monthlyRows []entities.MonthlyCostRow
	totals      entities.InventoryTotals
	calls       int
	finalLabels []string

	// afterStatusCounts вызывается после чтения строк, до возврата из StatusCounts
	afterStatusCounts func()
}

func (r *stubReportRepo) StatusCounts(context.Context) ([]entities.StatusCountRow, error) {
	r.calls++
	rows := r.statusRows
	if r.afterStatusCounts != nil {
		r.afterStatusCounts()
	}
	return rows, nil
}

func (r *stubReportRepo) MonthlyCosts(context.Context) ([]entities.MonthlyCostRow, error) {
	return r.monthlyRows, nil
}

func (r *stubReportRepo) Totals(_ context.Context, finalLabels []string) (*entities.InventoryTotals, error) {
	r.finalLabels = finalLabels
	t := r.totals
	return &t, nil
}

type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string]string)}
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	case string:
		c.data[key] = v
	default:
		return errors.New("неподдерживаемый тип значения")
	}
	return nil
}

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	if v, ok := c.data[key]; ok {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, err
		}
		n = parsed
	}
	n++
	c.data[key] = strconv.FormatInt(n, 10)
	return n, nil
}

// fakeStorage запоминает удаленные пути.
type fakeStorage struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeStorage) Save(_ io.Reader, name, prefix string) (string, error) {
	return prefix + "/" + name, nil
}

func (f *fakeStorage) Delete(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, path)
	return nil
}
