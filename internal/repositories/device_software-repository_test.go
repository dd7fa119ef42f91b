package repositories

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repair-system/internal/entities"
	"repair-system/pkg/constants"
	apperrors "repair-system/pkg/errors"
)

func installTx(t *testing.T, repo DeviceSoftwareRepositoryInterface, deviceID, softwareID uint64) (*entities.DeviceSoftware, error) {
	var created *entities.DeviceSoftware
	err := runTx(t, testPool, func(tx pgx.Tx) error {
		installed, err := repo.HasInstalledForUpdateInTx(context.Background(), tx, deviceID, softwareID)
		if err != nil {
			return err
		}
		if installed {
			return apperrors.NewConflictError(ConflictActiveInstallation)
		}
		created, err = repo.CreateInTx(context.Background(), tx, &entities.DeviceSoftware{
			IDDevices:  deviceID,
			IDSoftware: softwareID,
		})
		return err
	})
	return created, err
}

func TestDeviceSoftwareRepository_Integration_ReinstallAfterUninstall(t *testing.T) {
	pool := requireDB(t)
	s := seedData(t, pool)
	repo := NewDeviceSoftwareRepository(pool)
	ctx := context.Background()

	first, err := installTx(t, repo, s.deviceID, s.softwareID)
	require.NoError(t, err)
	assert.True(t, first.IsInstalled())

	_, err = installTx(t, repo, s.deviceID, s.softwareID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	uninstalled, err := repo.MarkUninstalled(ctx, s.deviceID, s.softwareID)
	require.NoError(t, err)
	assert.Equal(t, constants.SoftwareStatusUninstalled, uninstalled.Status)
	assert.NotNil(t, uninstalled.UninstallDate)

	_, err = repo.MarkUninstalled(ctx, s.deviceID, s.softwareID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	second, err := installTx(t, repo, s.deviceID, s.softwareID)
	require.NoError(t, err)
	assert.NotEqual(t, first.IDDeviceSoftware, second.IDDeviceSoftware)

	all, err := repo.ListByDevice(ctx, s.deviceID, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	statuses := []string{all[0].Status, all[1].Status}
	assert.ElementsMatch(t, []string{constants.SoftwareStatusInstalled, constants.SoftwareStatusUninstalled}, statuses)

	active, err := repo.ListByDevice(ctx, s.deviceID, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.NotNil(t, active[0].SoftwareName)
	assert.Equal(t, "MS Office", *active[0].SoftwareName)

	devices, err := repo.ListBySoftware(ctx, s.softwareID)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, s.deviceID, devices[0].IDDevices)
}

func TestDeviceSoftwareRepository_Integration_UniqueIndexIsAuthoritative(t *testing.T) {
	pool := requireDB(t)
	s := seedData(t, pool)
	repo := NewDeviceSoftwareRepository(pool)

	_, err := installTx(t, repo, s.deviceID, s.softwareID)
	require.NoError(t, err)

	err = runTx(t, pool, func(tx pgx.Tx) error {
		_, err := repo.CreateInTx(context.Background(), tx, &entities.DeviceSoftware{IDDevices: s.deviceID, IDSoftware: s.softwareID})
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}
