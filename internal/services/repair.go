package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/events"
	"repair-system/internal/repositories"
	"repair-system/pkg/constants"
	"repair-system/pkg/enums"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/eventbus"
	"repair-system/pkg/filestorage"
	"repair-system/pkg/utils"
)

type RepairServiceInterface interface {
	CreateRequest(ctx context.Context, reporterID uint64, payload dto.CreateRepairDTO) (uint64, error)
	UpdateStatus(ctx context.Context, repairID, actorID uint64, newStatus string, note *string) error
	UpsertDetail(ctx context.Context, repairID uint64, payload dto.UpsertRepairDetailDTO) (*entities.RepairDetail, error)
	AddParts(ctx context.Context, repairID uint64, parts []dto.RepairPartDTO) (int, error)
	RemovePart(ctx context.Context, repairID, partID uint64) error
	AttachFiles(ctx context.Context, repairID, uploadedBy uint64, files []dto.StoredFileDTO) ([]entities.RepairFile, error)
	RemoveFile(ctx context.Context, repairID, fileID uint64) (*entities.RepairFile, error)
	ListRepairs(ctx context.Context, filter dto.RepairFilter) ([]dto.RepairListItemDTO, uint64, error)
	GetRepair(ctx context.Context, repairID uint64) (*dto.RepairFullDTO, error)
	GetHistory(ctx context.Context, repairID uint64) ([]dto.RepairHistoryDTO, error)
	ExportRepairsXLSX(ctx context.Context, filter dto.RepairFilter) ([]byte, error)
	AllowedNextStatuses(ctx context.Context, repairID uint64) ([]dto.EnumValueDTO, error)
}

type RepairService struct {
	txManager   repositories.TxManagerInterface
	repairRepo  repositories.RepairRepositoryInterface
	historyRepo repositories.RepairHistoryRepositoryInterface
	detailRepo  repositories.RepairDetailRepositoryInterface
	partRepo    repositories.RepairPartRepositoryInterface
	fileRepo    repositories.RepairFileRepositoryInterface
	refRepo     repositories.ReferenceRepositoryInterface
	storage     filestorage.FileStorageInterface
	dicts       *enums.Dictionaries
	policy      TransitionPolicy
	validator   StructValidator
	bus         *eventbus.Bus
	logger      *zap.Logger
}

func NewRepairService(
	txManager repositories.TxManagerInterface,
	repairRepo repositories.RepairRepositoryInterface,
	historyRepo repositories.RepairHistoryRepositoryInterface,
	detailRepo repositories.RepairDetailRepositoryInterface,
	partRepo repositories.RepairPartRepositoryInterface,
	fileRepo repositories.RepairFileRepositoryInterface,
	refRepo repositories.ReferenceRepositoryInterface,
	storage filestorage.FileStorageInterface,
	dicts *enums.Dictionaries,
	policy TransitionPolicy,
	validator StructValidator,
	bus *eventbus.Bus,
	logger *zap.Logger,
) RepairServiceInterface {
	return &RepairService{
		txManager:   txManager,
		repairRepo:  repairRepo,
		historyRepo: historyRepo,
		detailRepo:  detailRepo,
		partRepo:    partRepo,
		fileRepo:    fileRepo,
		refRepo:     refRepo,
		storage:     storage,
		dicts:       dicts,
		policy:      policy,
		validator:   validator,
		bus:         bus,
		logger:      logger,
	}
}

func repairNotFound(id uint64) error {
	return apperrors.NewNotFoundError("Không tìm thấy yêu cầu sửa chữa #%d", id)
}

// requireRepairInTx - заявка должна существовать до любой записи в дочерние таблицы.
func (s *RepairService) requireRepairInTx(ctx context.Context, tx pgx.Tx, repairID uint64) error {
	exists, err := s.repairRepo.ExistsInTx(ctx, tx, repairID)
	if err != nil {
		return err
	}
	if !exists {
		return repairNotFound(repairID)
	}
	return nil
}

func (s *RepairService) CreateRequest(ctx context.Context, reporterID uint64, payload dto.CreateRepairDTO) (uint64, error) {
	if err := validateDTO(s.validator, payload); err != nil {
		return 0, err
	}
	if reporterID == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}

	severity, _ := s.dicts.Severity.ToDB(payload.Severity, constants.SeverityMedium)
	priority, _ := s.dicts.Priority.ToDB(payload.Priority, constants.PriorityNormal)
	status, _ := s.dicts.Status.ToDB(payload.Status, constants.RepairStatusRequested)
	if initial := s.dicts.Status.ToCanonical(status, ""); !s.policy.AllowsInitial(initial) {
		return 0, apperrors.NewHttpError(http.StatusBadRequest,
			fmt.Sprintf("Yêu cầu mới phải có trạng thái %q", constants.RepairStatusRequested),
			apperrors.ErrInvalidTransition,
			map[string]interface{}{"from": nil, "to": initial, "allowed": []string{constants.RepairStatusRequested}},
		)
	}

	entity := &entities.RepairRequest{
		IDDevices:        payload.DeviceID,
		ReportedBy:       reporterID,
		Title:            strings.TrimSpace(payload.Title),
		IssueDescription: strings.TrimSpace(payload.IssueDescription),
		Severity:         severity,
		Priority:         priority,
		Status:           status,
		DateDown:         payload.DateDown.Ptr(),
		ExpectedDate:     payload.ExpectedDate.Ptr(),
		SLAHours:         payload.SLAHours.Ptr(),
	}

	var created *entities.RepairRequest
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		exists, err := s.refRepo.DeviceExists(ctx, tx, payload.DeviceID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NewNotFoundError("Thiết bị #%d không tồn tại", payload.DeviceID)
		}

		created, err = s.repairRepo.CreateInTx(ctx, tx, entity)
		if err != nil {
			return err
		}

		_, err = s.historyRepo.CreateInTx(ctx, tx, &entities.RepairHistory{
			IDRepair:  created.IDRepair,
			ActorUser: reporterID,
			OldStatus: nil,
			NewStatus: created.Status,
			CostDelta: 0,
		})
		return err
	})
	if err != nil {
		s.logger.Error("Не удалось создать заявку на ремонт",
			zap.Uint64("deviceID", payload.DeviceID), zap.Uint64("reporterID", reporterID), zap.Error(err))
		return 0, err
	}

	s.logger.Info("Создана заявка на ремонт",
		zap.Uint64("repairID", created.IDRepair), zap.String("status", created.Status))
	s.bus.Publish(ctx, events.RepairChangedEvent{
		RepairID:  created.IDRepair,
		Kind:      events.RepairCreated,
		ActorID:   reporterID,
		NewStatus: s.dicts.Status.ToCanonical(created.Status, ""),
	})
	return created.IDRepair, nil
}

// UpdateStatus меняет статус под блокировкой строки заявки. Параллельные вызовы
// выполняются по очереди, и второй видит статус первого как old_status.
func (s *RepairService) UpdateStatus(ctx context.Context, repairID, actorID uint64, newStatus string, note *string) error {
	if strings.TrimSpace(newStatus) == "" {
		return apperrors.NewValidationError("Trạng thái mới là bắt buộc")
	}
	if actorID == 0 {
		return apperrors.ErrUserIDNotFoundInContext
	}
	if note != nil {
		note = utils.StringPtrOrNil(strings.TrimSpace(*note))
	}

	var oldKey, newKey string
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.repairRepo.FindForUpdateInTx(ctx, tx, repairID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return repairNotFound(repairID)
			}
			return err
		}

		oldKey = s.dicts.Status.ToCanonical(current.Status, "")
		resolved, ok := s.dicts.Status.ResolveKey(newStatus)
		if !ok {
			s.logger.Warn("Неизвестный статус, оставляем текущий",
				zap.Uint64("repairID", repairID), zap.String("input", newStatus))
			resolved = oldKey
		}
		newKey = resolved

		if !s.policy.Allows(oldKey, newKey) {
			return apperrors.NewHttpError(http.StatusBadRequest,
				fmt.Sprintf("Không thể chuyển trạng thái từ %q sang %q", oldKey, newKey),
				apperrors.ErrInvalidTransition,
				map[string]interface{}{"from": oldKey, "to": newKey, "allowed": s.policy.NextStatuses(oldKey, s.dicts.Status.Keys())},
			)
		}

		newLabel, _ := s.dicts.Status.Label(newKey)

		var approvedBy *uint64
		if newKey == constants.RepairStatusApproved && oldKey != newKey {
			approvedBy = &actorID
		}
		if err := s.repairRepo.UpdateStatusInTx(ctx, tx, repairID, newLabel, approvedBy); err != nil {
			return err
		}

		delta, err := s.costDeltaInTx(ctx, tx, repairID)
		if err != nil {
			return err
		}

		oldLabel := current.Status
		_, err = s.historyRepo.CreateInTx(ctx, tx, &entities.RepairHistory{
			IDRepair:  repairID,
			ActorUser: actorID,
			OldStatus: &oldLabel,
			NewStatus: newLabel,
			Note:      note,
			CostDelta: delta,
		})
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("Ошибка смены статуса заявки", zap.Uint64("repairID", repairID), zap.Error(err))
		}
		return err
	}

	s.logger.Info("Статус заявки изменен",
		zap.Uint64("repairID", repairID), zap.String("from", oldKey), zap.String("to", newKey))
	s.bus.Publish(ctx, events.RepairChangedEvent{
		RepairID:  repairID,
		Kind:      events.RepairStatusChanged,
		ActorID:   actorID,
		OldStatus: oldKey,
		NewStatus: newKey,
	})
	return nil
}

// costDeltaInTx - текущая полная стоимость минус уже записанные в истории дельты.
// Сумма дельт по заявке всегда равна стоимости на момент последней записи.
func (s *RepairService) costDeltaInTx(ctx context.Context, tx pgx.Tx, repairID uint64) (float64, error) {
	var total float64
	detail, err := s.detailRepo.FindByRepairID(ctx, tx, repairID)
	switch {
	case err == nil:
		total = detail.TotalCost()
	case errors.Is(err, apperrors.ErrNotFound):
		total = 0
	default:
		return 0, err
	}

	recorded, err := s.historyRepo.SumCostDeltaInTx(ctx, tx, repairID)
	if err != nil {
		return 0, err
	}
	return total - recorded, nil
}

func normalizeRepairType(v string) string {
	if strings.EqualFold(v, constants.RepairTypeExternal) {
		return constants.RepairTypeExternal
	}
	return constants.RepairTypeInternal
}

func detailPatchFromDTO(payload dto.UpsertRepairDetailDTO) entities.RepairDetailPatch {
	patch := entities.RepairDetailPatch{
		TechnicianUser:      payload.TechnicianUser.Ptr(),
		IDVendor:            payload.VendorID.Ptr(),
		StartTime:           payload.StartTime.Ptr(),
		EndTime:             payload.EndTime.Ptr(),
		TotalLaborHours:     payload.TotalLaborHours.Ptr(),
		LaborCost:           payload.LaborCost.Ptr(),
		PartsCost:           payload.PartsCost.Ptr(),
		OtherCost:           payload.OtherCost.Ptr(),
		Outcome:             payload.Outcome.Ptr(),
		WarrantyExtendMon:   payload.WarrantyExtendMon.Ptr(),
		NextMaintenanceDate: payload.NextMaintenanceDate.Ptr(),
	}
	if payload.RepairType.Valid {
		rt := normalizeRepairType(payload.RepairType.String)
		patch.RepairType = &rt
	}
	return patch
}

func (s *RepairService) UpsertDetail(ctx context.Context, repairID uint64, payload dto.UpsertRepairDetailDTO) (*entities.RepairDetail, error) {
	if err := validateDTO(s.validator, payload); err != nil {
		return nil, err
	}
	if payload.StartTime.Valid && payload.EndTime.Valid && payload.EndTime.Time.Before(payload.StartTime.Time) {
		return nil, apperrors.NewValidationError("end_time không được trước start_time")
	}
	patch := detailPatchFromDTO(payload)

	var saved *entities.RepairDetail
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.requireRepairInTx(ctx, tx, repairID); err != nil {
			return err
		}
		if patch.IDVendor != nil {
			ok, err := s.refRepo.VendorExists(ctx, tx, *patch.IDVendor)
			if err != nil {
				return err
			}
			if !ok {
				return apperrors.NewNotFoundError("Nhà cung cấp #%d không tồn tại", *patch.IDVendor)
			}
		}
		if patch.TechnicianUser != nil {
			ok, err := s.refRepo.UserExists(ctx, tx, *patch.TechnicianUser)
			if err != nil {
				return err
			}
			if !ok {
				return apperrors.NewNotFoundError("Kỹ thuật viên #%d không tồn tại", *patch.TechnicianUser)
			}
		}

		var err error
		saved, err = s.detailRepo.UpsertInTx(ctx, tx, repairID, patch)
		if err != nil {
			return err
		}
		return s.repairRepo.TouchInTx(ctx, tx, repairID)
	})
	if err != nil {
		s.logger.Warn("Не удалось сохранить детали ремонта", zap.Uint64("repairID", repairID), zap.Error(err))
		return nil, err
	}

	s.bus.Publish(ctx, events.RepairChangedEvent{RepairID: repairID, Kind: events.RepairDetailChanged})
	return saved, nil
}

func (s *RepairService) AddParts(ctx context.Context, repairID uint64, parts []dto.RepairPartDTO) (int, error) {
	if err := validateDTO(s.validator, dto.AddRepairPartsDTO{Parts: parts}); err != nil {
		return 0, err
	}

	rows := make([]entities.RepairPartUsed, 0, len(parts))
	for _, p := range parts {
		row := entities.RepairPartUsed{
			PartName: strings.TrimSpace(p.PartName),
			Quantity: 1,
			UnitCost: 0,
			Note:     p.Note.Ptr(),
		}
		if p.Quantity.Valid {
			row.Quantity = p.Quantity.Int
		}
		if p.UnitCost.Valid {
			row.UnitCost = p.UnitCost.Float64
		}
		rows = append(rows, row)
	}

	var inserted int
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.requireRepairInTx(ctx, tx, repairID); err != nil {
			return err
		}
		var err error
		inserted, err = s.partRepo.CreateBatchInTx(ctx, tx, repairID, rows)
		if err != nil {
			return err
		}
		return s.repairRepo.TouchInTx(ctx, tx, repairID)
	})
	if err != nil {
		s.logger.Warn("Не удалось добавить запчасти", zap.Uint64("repairID", repairID), zap.Error(err))
		return 0, err
	}

	s.bus.Publish(ctx, events.RepairChangedEvent{RepairID: repairID, Kind: events.RepairPartsChanged})
	return inserted, nil
}

func (s *RepairService) RemovePart(ctx context.Context, repairID, partID uint64) error {
	if err := s.partRepo.Delete(ctx, repairID, partID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Không tìm thấy linh kiện #%d của yêu cầu #%d", partID, repairID)
		}
		return err
	}
	s.bus.Publish(ctx, events.RepairChangedEvent{RepairID: repairID, Kind: events.RepairPartsChanged})
	return nil
}

// AttachFiles записывает в БД файлы, уже сохраненные хранилищем. Если запись
// не удалась, сохраненные файлы удаляются, чтобы не оставлять сирот на диске.
func (s *RepairService) AttachFiles(ctx context.Context, repairID, uploadedBy uint64, files []dto.StoredFileDTO) ([]entities.RepairFile, error) {
	if len(files) == 0 {
		return nil, apperrors.NewValidationError("Cần ít nhất một tệp")
	}
	for _, f := range files {
		if err := validateDTO(s.validator, f); err != nil {
			s.cleanupStored(files)
			return nil, err
		}
	}

	var uploader *uint64
	if uploadedBy != 0 {
		uploader = &uploadedBy
	}

	result := make([]entities.RepairFile, 0, len(files))
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.requireRepairInTx(ctx, tx, repairID); err != nil {
			return err
		}
		for _, f := range files {
			created, err := s.fileRepo.CreateInTx(ctx, tx, &entities.RepairFile{
				IDRepair:   repairID,
				FilePath:   f.FilePath,
				FileName:   f.FileName,
				MimeType:   utils.StringPtrOrNil(f.MimeType),
				FileSize:   f.Size,
				UploadedBy: uploader,
			})
			if err != nil {
				return err
			}
			result = append(result, *created)
		}
		return s.repairRepo.TouchInTx(ctx, tx, repairID)
	})
	if err != nil {
		s.logger.Warn("Не удалось прикрепить файлы", zap.Uint64("repairID", repairID), zap.Error(err))
		s.cleanupStored(files)
		return nil, err
	}

	s.bus.Publish(ctx, events.RepairChangedEvent{RepairID: repairID, Kind: events.RepairFilesChanged, ActorID: uploadedBy})
	return result, nil
}

func (s *RepairService) cleanupStored(files []dto.StoredFileDTO) {
	if s.storage == nil {
		return
	}
	for _, f := range files {
		if err := s.storage.Delete(f.FilePath); err != nil {
			s.logger.Warn("Не удалось удалить файл после отката", zap.String("path", f.FilePath), zap.Error(err))
		}
	}
}

func (s *RepairService) RemoveFile(ctx context.Context, repairID, fileID uint64) (*entities.RepairFile, error) {
	removed, err := s.fileRepo.DeleteReturning(ctx, repairID, fileID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Không tìm thấy tệp #%d của yêu cầu #%d", fileID, repairID)
		}
		return nil, err
	}

	if s.storage != nil {
		if err := s.storage.Delete(removed.FilePath); err != nil {
			// запись уже удалена, файл на диске останется сиротой
			s.logger.Warn("Не удалось удалить файл с диска", zap.String("path", removed.FilePath), zap.Error(err))
		}
	}

	s.bus.Publish(ctx, events.RepairChangedEvent{RepairID: repairID, Kind: events.RepairFilesChanged})
	return removed, nil
}

// resolveLabels переводит значения фильтра в метки БД. Нераспознанные значения
// пропускаются. Второй результат - ключи распознанных значений.
func (s *RepairService) resolveLabels(d *enums.Dictionary, values []string) ([]string, []string) {
	labels := make([]string, 0, len(values))
	keys := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		key, ok := d.ResolveKey(v)
		if !ok {
			s.logger.Debug("Значение фильтра не распознано", zap.String("dictionary", d.Name()), zap.String("value", v))
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		label, _ := d.Label(key)
		labels = append(labels, label)
		keys = append(keys, key)
	}
	return labels, keys
}

func (s *RepairService) buildListFilter(filter dto.RepairFilter) entities.RepairListFilter {
	statusLabels, statusKeys := s.resolveLabels(s.dicts.Status, filter.Statuses)
	severityLabels, _ := s.resolveLabels(s.dicts.Severity, filter.Severities)
	priorityLabels, _ := s.resolveLabels(s.dicts.Priority, filter.Priorities)

	out := entities.RepairListFilter{
		Search:         strings.TrimSpace(filter.Search),
		StatusLabels:   statusLabels,
		SeverityLabels: severityLabels,
		PriorityLabels: priorityLabels,
		DeviceID:       filter.DeviceID,
		ReportedBy:     filter.ReportedBy,
		DateFrom:       filter.DateFrom,
		DateTo:         filter.DateTo,
		Limit:          filter.Limit,
		Offset:         filter.Offset,
	}

	// явный фильтр по "canceled" включает отмененные заявки
	explicitCanceled := false
	for _, k := range statusKeys {
		if k == constants.RepairStatusCanceled {
			explicitCanceled = true
		}
	}
	if !filter.IncludeCanceled && !explicitCanceled {
		canceledLabel, _ := s.dicts.Status.Label(constants.RepairStatusCanceled)
		out.ExcludeStatusLabels = []string{canceledLabel}
	}
	return out
}

func (s *RepairService) ListRepairs(ctx context.Context, filter dto.RepairFilter) ([]dto.RepairListItemDTO, uint64, error) {
	views, total, err := s.repairRepo.List(ctx, s.buildListFilter(filter))
	if err != nil {
		s.logger.Error("Ошибка получения списка заявок", zap.Error(err))
		return nil, 0, err
	}

	items := make([]dto.RepairListItemDTO, 0, len(views))
	for i := range views {
		items = append(items, repairViewToListItem(&views[i], s.dicts))
	}
	return items, total, nil
}

func (s *RepairService) GetRepair(ctx context.Context, repairID uint64) (*dto.RepairFullDTO, error) {
	view, err := s.repairRepo.FindByID(ctx, repairID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, repairNotFound(repairID)
		}
		return nil, err
	}

	full := &dto.RepairFullDTO{
		RepairListItemDTO: repairViewToListItem(view, s.dicts),
		ApprovedBy:        view.ApprovedBy,
		IssueDescription:  view.IssueDescription,
		DateDown:          formatTimePtr(view.DateDown, dateTimeLayout),
		ExpectedDate:      formatTimePtr(view.ExpectedDate, dateTimeLayout),
	}

	detail, err := s.detailRepo.FindByRepairID(ctx, nil, repairID)
	switch {
	case err == nil:
		full.Detail = RepairDetailToDTO(detail)
	case errors.Is(err, apperrors.ErrNotFound):
	default:
		return nil, err
	}

	parts, err := s.partRepo.ListByRepair(ctx, repairID)
	if err != nil {
		return nil, err
	}
	full.Parts = make([]dto.RepairPartResponseDTO, 0, len(parts))
	for _, p := range parts {
		full.Parts = append(full.Parts, repairPartToDTO(p))
	}

	files, err := s.fileRepo.ListByRepair(ctx, repairID)
	if err != nil {
		return nil, err
	}
	full.Files = make([]dto.RepairFileResponseDTO, 0, len(files))
	for _, f := range files {
		full.Files = append(full.Files, RepairFileToDTO(f))
	}

	history, err := s.historyRepo.ListByRepair(ctx, repairID)
	if err != nil {
		return nil, err
	}
	full.History = make([]dto.RepairHistoryDTO, 0, len(history))
	for _, h := range history {
		full.History = append(full.History, repairHistoryToDTO(h, s.dicts.Status))
	}
	return full, nil
}

func (s *RepairService) GetHistory(ctx context.Context, repairID uint64) ([]dto.RepairHistoryDTO, error) {
	exists, err := s.repairRepo.ExistsInTx(ctx, nil, repairID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repairNotFound(repairID)
	}

	history, err := s.historyRepo.ListByRepair(ctx, repairID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.RepairHistoryDTO, 0, len(history))
	for _, h := range history {
		result = append(result, repairHistoryToDTO(h, s.dicts.Status))
	}
	return result, nil
}

// AllowedNextStatuses - подсказка для клиента: куда можно перевести заявку сейчас.
func (s *RepairService) AllowedNextStatuses(ctx context.Context, repairID uint64) ([]dto.EnumValueDTO, error) {
	view, err := s.repairRepo.FindByID(ctx, repairID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, repairNotFound(repairID)
		}
		return nil, err
	}

	current := s.dicts.Status.ToCanonical(view.Status, "")
	next := s.policy.NextStatuses(current, s.dicts.Status.Keys())
	result := make([]dto.EnumValueDTO, 0, len(next))
	for _, key := range next {
		result = append(result, dto.EnumValueDTO{Key: key, Label: s.dicts.Status.LabelOrKey(key)})
	}
	return result, nil
}
