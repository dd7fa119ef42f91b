package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/events"
	"repair-system/internal/repositories"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/eventbus"
	"repair-system/pkg/utils"
)

type DeviceSoftwareServiceInterface interface {
	InstallSoftware(ctx context.Context, deviceID, softwareID, actorID uint64, payload dto.InstallSoftwareDTO) (*entities.DeviceSoftware, error)
	UninstallSoftware(ctx context.Context, deviceID, softwareID uint64) (*entities.DeviceSoftware, error)
	ListByDevice(ctx context.Context, deviceID uint64, includeUninstalled bool) ([]entities.DeviceSoftware, error)
	ListDevicesBySoftware(ctx context.Context, softwareID uint64) ([]entities.DeviceSoftware, error)
}

type DeviceSoftwareService struct {
	txManager    repositories.TxManagerInterface
	softwareRepo repositories.DeviceSoftwareRepositoryInterface
	refRepo      repositories.ReferenceRepositoryInterface
	validator    StructValidator
	bus          *eventbus.Bus
	logger       *zap.Logger
}

func NewDeviceSoftwareService(
	txManager repositories.TxManagerInterface,
	softwareRepo repositories.DeviceSoftwareRepositoryInterface,
	refRepo repositories.ReferenceRepositoryInterface,
	validator StructValidator,
	bus *eventbus.Bus,
	logger *zap.Logger,
) DeviceSoftwareServiceInterface {
	return &DeviceSoftwareService{
		txManager:    txManager,
		softwareRepo: softwareRepo,
		refRepo:      refRepo,
		validator:    validator,
		bus:          bus,
		logger:       logger,
	}
}

func (s *DeviceSoftwareService) InstallSoftware(ctx context.Context, deviceID, softwareID, actorID uint64, payload dto.InstallSoftwareDTO) (*entities.DeviceSoftware, error) {
	if err := validateDTO(s.validator, payload); err != nil {
		return nil, err
	}

	entity := &entities.DeviceSoftware{
		IDDevices:  deviceID,
		IDSoftware: softwareID,
		LicenseKey: utils.StringPtrOrNil(strings.TrimSpace(payload.LicenseKey.String)),
		Note:       utils.StringPtrOrNil(strings.TrimSpace(payload.Note.String)),
	}
	if actorID != 0 {
		entity.InstalledBy = &actorID
	}

	var created *entities.DeviceSoftware
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := requireDevice(ctx, s.refRepo, tx, deviceID); err != nil {
			return err
		}
		ok, err := s.refRepo.SoftwareExists(ctx, tx, softwareID)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.NewNotFoundError("Phần mềm #%d không tồn tại", softwareID)
		}

		installed, err := s.softwareRepo.HasInstalledForUpdateInTx(ctx, tx, deviceID, softwareID)
		if err != nil {
			return err
		}
		if installed {
			return apperrors.NewConflictError(repositories.ConflictActiveInstallation)
		}

		created, err = s.softwareRepo.CreateInTx(ctx, tx, entity)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("Ошибка установки ПО", zap.Uint64("deviceID", deviceID), zap.Uint64("softwareID", softwareID), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("ПО установлено", zap.Uint64("deviceID", deviceID), zap.Uint64("softwareID", softwareID))
	s.bus.Publish(ctx, events.LedgerChangedEvent{Kind: events.LedgerInstall, DeviceID: deviceID, SoftwareID: softwareID})
	return created, nil
}

func (s *DeviceSoftwareService) UninstallSoftware(ctx context.Context, deviceID, softwareID uint64) (*entities.DeviceSoftware, error) {
	updated, err := s.softwareRepo.MarkUninstalled(ctx, deviceID, softwareID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Phần mềm #%d không được cài trên thiết bị #%d", softwareID, deviceID)
		}
		s.logger.Error("Ошибка удаления ПО", zap.Uint64("deviceID", deviceID), zap.Uint64("softwareID", softwareID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("ПО удалено", zap.Uint64("deviceID", deviceID), zap.Uint64("softwareID", softwareID))
	s.bus.Publish(ctx, events.LedgerChangedEvent{Kind: events.LedgerUninstall, DeviceID: deviceID, SoftwareID: softwareID})
	return updated, nil
}

func (s *DeviceSoftwareService) ListByDevice(ctx context.Context, deviceID uint64, includeUninstalled bool) ([]entities.DeviceSoftware, error) {
	return s.softwareRepo.ListByDevice(ctx, deviceID, includeUninstalled)
}

func (s *DeviceSoftwareService) ListDevicesBySoftware(ctx context.Context, softwareID uint64) ([]entities.DeviceSoftware, error) {
	return s.softwareRepo.ListBySoftware(ctx, softwareID)
}
