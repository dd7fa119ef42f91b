package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"repair-system/internal/entities"
	"repair-system/internal/events"
	"repair-system/internal/repositories"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/eventbus"
)

type DeviceAssignmentServiceInterface interface {
	Checkin(ctx context.Context, userID, deviceID uint64) (*entities.DeviceAssignment, error)
	Checkout(ctx context.Context, userID, deviceID uint64) (*entities.DeviceAssignment, error)
	ActiveUsersOfDevice(ctx context.Context, deviceID uint64) ([]entities.ActiveUser, error)
	ActiveCountMap(ctx context.Context) (map[uint64]int, error)
	ActiveMap(ctx context.Context) (map[uint64][]entities.ActiveUser, error)
	HistoryOfDevice(ctx context.Context, deviceID uint64) ([]entities.DeviceAssignment, error)
	ActiveDevicesOfUser(ctx context.Context, userID uint64) ([]entities.DeviceAssignment, error)
}

type DeviceAssignmentService struct {
	txManager      repositories.TxManagerInterface
	assignmentRepo repositories.DeviceAssignmentRepositoryInterface
	refRepo        repositories.ReferenceRepositoryInterface
	bus            *eventbus.Bus
	logger         *zap.Logger
}

func NewDeviceAssignmentService(
	txManager repositories.TxManagerInterface,
	assignmentRepo repositories.DeviceAssignmentRepositoryInterface,
	refRepo repositories.ReferenceRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) DeviceAssignmentServiceInterface {
	return &DeviceAssignmentService{
		txManager:      txManager,
		assignmentRepo: assignmentRepo,
		refRepo:        refRepo,
		bus:            bus,
		logger:         logger,
	}
}

func requireUserAndDevice(ctx context.Context, refRepo repositories.ReferenceRepositoryInterface, tx pgx.Tx, userID, deviceID uint64) error {
	ok, err := refRepo.UserExists(ctx, tx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewNotFoundError("Người dùng #%d không tồn tại", userID)
	}
	return requireDevice(ctx, refRepo, tx, deviceID)
}

func requireDevice(ctx context.Context, refRepo repositories.ReferenceRepositoryInterface, tx pgx.Tx, deviceID uint64) error {
	ok, err := refRepo.DeviceExists(ctx, tx, deviceID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewNotFoundError("Thiết bị #%d không tồn tại", deviceID)
	}
	return nil
}

// Checkin выдает устройство пользователю. Проверка под FOR UPDATE отсекает
// очевидный повтор, а гонку двух вставок решает уникальный индекс.
func (s *DeviceAssignmentService) Checkin(ctx context.Context, userID, deviceID uint64) (*entities.DeviceAssignment, error) {
	if userID == 0 || deviceID == 0 {
		return nil, apperrors.NewValidationError("user_id và device_id là bắt buộc")
	}

	var created *entities.DeviceAssignment
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := requireUserAndDevice(ctx, s.refRepo, tx, userID, deviceID); err != nil {
			return err
		}

		active, err := s.assignmentRepo.HasActiveForUpdateInTx(ctx, tx, userID, deviceID)
		if err != nil {
			return err
		}
		if active {
			return apperrors.NewConflictError(repositories.ConflictActiveAssignment)
		}

		created, err = s.assignmentRepo.CreateInTx(ctx, tx, userID, deviceID)
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.logger.Info("Повторная выдача отклонена", zap.Uint64("userID", userID), zap.Uint64("deviceID", deviceID))
		} else {
			s.logger.Warn("Ошибка выдачи устройства", zap.Uint64("userID", userID), zap.Uint64("deviceID", deviceID), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("Устройство выдано",
		zap.Uint64("assignmentID", created.IDAssignment), zap.Uint64("userID", userID), zap.Uint64("deviceID", deviceID))
	s.bus.Publish(ctx, events.LedgerChangedEvent{Kind: events.LedgerCheckin, DeviceID: deviceID, UserID: userID})
	return created, nil
}

// Checkout - один атомарный UPDATE. Второй вызов не найдет активной строки.
func (s *DeviceAssignmentService) Checkout(ctx context.Context, userID, deviceID uint64) (*entities.DeviceAssignment, error) {
	closed, err := s.assignmentRepo.CloseActive(ctx, userID, deviceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Không có phiên mượn đang active cho thiết bị #%d", deviceID)
		}
		s.logger.Error("Ошибка возврата устройства", zap.Uint64("userID", userID), zap.Uint64("deviceID", deviceID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Устройство возвращено",
		zap.Uint64("assignmentID", closed.IDAssignment), zap.Uint64("userID", userID), zap.Uint64("deviceID", deviceID))
	s.bus.Publish(ctx, events.LedgerChangedEvent{Kind: events.LedgerCheckout, DeviceID: deviceID, UserID: userID})
	return closed, nil
}

func (s *DeviceAssignmentService) ActiveUsersOfDevice(ctx context.Context, deviceID uint64) ([]entities.ActiveUser, error) {
	return s.assignmentRepo.ActiveUsersOfDevice(ctx, deviceID)
}

func (s *DeviceAssignmentService) ActiveCountMap(ctx context.Context) (map[uint64]int, error) {
	return s.assignmentRepo.ActiveCounts(ctx)
}

// ActiveMap группирует всех активных пользователей по устройствам.
func (s *DeviceAssignmentService) ActiveMap(ctx context.Context) (map[uint64][]entities.ActiveUser, error) {
	users, err := s.assignmentRepo.ActiveUsers(ctx)
	if err != nil {
		return nil, err
	}
	result := make(map[uint64][]entities.ActiveUser)
	for _, u := range users {
		result[u.IDDevices] = append(result[u.IDDevices], u)
	}
	return result, nil
}

func (s *DeviceAssignmentService) HistoryOfDevice(ctx context.Context, deviceID uint64) ([]entities.DeviceAssignment, error) {
	return s.assignmentRepo.HistoryOfDevice(ctx, deviceID)
}

func (s *DeviceAssignmentService) ActiveDevicesOfUser(ctx context.Context, userID uint64) ([]entities.DeviceAssignment, error) {
	return s.assignmentRepo.ActiveDevicesOfUser(ctx, userID)
}
