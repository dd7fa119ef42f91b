package controllers

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/labstack/echo/v4"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/services"
	"repair-system/pkg/utils"
	"repair-system/pkg/validation"
)

const testCallerID uint64 = 42

// withCaller заменяет JWT-middleware в тестах.
func withCaller(userID uint64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID != 0 {
				c.SetRequest(c.Request().WithContext(utils.WithUser(c.Request().Context(), userID, 1)))
			}
			return next(c)
		}
	}
}

func newTestEcho(userID uint64) (*echo.Echo, *echo.Group) {
	e := echo.New()
	e.Validator = validation.New()
	return e, e.Group("/api", withCaller(userID))
}

type stubRepairService struct {
	services.RepairServiceInterface

	createdBy     uint64
	createPayload dto.CreateRepairDTO
	createErr     error

	statusCalls []string
	statusErr   error

	filter    dto.RepairFilter
	listItems []dto.RepairListItemDTO
	listTotal uint64

	attached  []dto.StoredFileDTO
	attachErr error

	export []byte
}

func (s *stubRepairService) CreateRequest(_ context.Context, reporterID uint64, payload dto.CreateRepairDTO) (uint64, error) {
	s.createdBy = reporterID
	s.createPayload = payload
	if s.createErr != nil {
		return 0, s.createErr
	}
	return 101, nil
}

func (s *stubRepairService) UpdateStatus(_ context.Context, repairID, actorID uint64, newStatus string, note *string) error {
	s.statusCalls = append(s.statusCalls, fmt.Sprintf("%d:%d:%s", repairID, actorID, newStatus))
	return s.statusErr
}

func (s *stubRepairService) ListRepairs(_ context.Context, filter dto.RepairFilter) ([]dto.RepairListItemDTO, uint64, error) {
	s.filter = filter
	return s.listItems, s.listTotal, nil
}

func (s *stubRepairService) AttachFiles(_ context.Context, repairID, uploadedBy uint64, files []dto.StoredFileDTO) ([]entities.RepairFile, error) {
	if s.attachErr != nil {
		return nil, s.attachErr
	}
	s.attached = files
	out := make([]entities.RepairFile, 0, len(files))
	for i, f := range files {
		by := uploadedBy
		out = append(out, entities.RepairFile{
			IDFile:     uint64(i + 1),
			IDRepair:   repairID,
			FilePath:   f.FilePath,
			FileName:   f.FileName,
			FileSize:   f.Size,
			UploadedBy: &by,
		})
	}
	return out, nil
}

func (s *stubRepairService) ExportRepairsXLSX(_ context.Context, filter dto.RepairFilter) ([]byte, error) {
	s.filter = filter
	return s.export, nil
}

type stubAssignmentService struct {
	services.DeviceAssignmentServiceInterface

	checkins  [][2]uint64
	checkouts [][2]uint64
	err       error
}

func (s *stubAssignmentService) Checkin(_ context.Context, userID, deviceID uint64) (*entities.DeviceAssignment, error) {
	s.checkins = append(s.checkins, [2]uint64{userID, deviceID})
	if s.err != nil {
		return nil, s.err
	}
	return &entities.DeviceAssignment{IDAssignment: 1, IDUsers: userID, IDDevices: deviceID}, nil
}

func (s *stubAssignmentService) Checkout(_ context.Context, userID, deviceID uint64) (*entities.DeviceAssignment, error) {
	s.checkouts = append(s.checkouts, [2]uint64{userID, deviceID})
	if s.err != nil {
		return nil, s.err
	}
	return &entities.DeviceAssignment{IDAssignment: 1, IDUsers: userID, IDDevices: deviceID}, nil
}

func (s *stubAssignmentService) ActiveDevicesOfUser(_ context.Context, userID uint64) ([]entities.DeviceAssignment, error) {
	return []entities.DeviceAssignment{{IDAssignment: 9, IDUsers: userID, IDDevices: 7}}, nil
}

type stubStorage struct {
	mu      sync.Mutex
	saved   []string
	deleted []string
}

func (s *stubStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	if _, err := io.ReadAll(file); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	path := fmt.Sprintf("%s/%d-%s", prefix, len(s.saved)+1, originalFileName)
	s.saved = append(s.saved, path)
	return path, nil
}

func (s *stubStorage) Delete(filePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, filePath)
	return nil
}
