package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordResponseCommand(t *testing.T) {
	id := kernel.NewUUID()

	cmd, err := commands.NewRecordResponseCommand(id, "No")
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, notification.No, cmd.Answer())

	_, err = commands.NewRecordResponseCommand(id, "perhaps")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewRecordResponseCommand(kernel.UUID{}, "yes")
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewAssignRouteCommand(t *testing.T) {
	driverID := kernel.NewUUID()
	p1, p2 := kernel.NewUUID(), kernel.NewUUID()

	t.Run("valid", func(t *testing.T) {
		ids := []kernel.UUID{p1, p2}
		cmd, err := commands.NewAssignRouteCommand(driverID, ids)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		ids[0] = kernel.NewUUID()
		assert.Equal(t, []kernel.UUID{p1, p2}, cmd.ParcelIDs(), "command keeps its own copy")
	})

	t.Run("empty parcel list", func(t *testing.T) {
		_, err := commands.NewAssignRouteCommand(driverID, nil)
		require.ErrorIs(t, err, commands.ErrParcelsAreRequired)
	})

	t.Run("duplicate parcels", func(t *testing.T) {
		_, err := commands.NewAssignRouteCommand(driverID, []kernel.UUID{p1, p1})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing driver", func(t *testing.T) {
		_, err := commands.NewAssignRouteCommand(kernel.UUID{}, []kernel.UUID{p1})
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestNewReplaceRouteParcelsCommand(t *testing.T) {
	_, err := commands.NewReplaceRouteParcelsCommand(kernel.NewUUID(), []kernel.UUID{})
	require.ErrorIs(t, err, commands.ErrParcelsAreRequired)

	cmd, err := commands.NewReplaceRouteParcelsCommand(kernel.NewUUID(), []kernel.UUID{kernel.NewUUID()})
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
}

func TestCommands_ZeroValuesAreNotConstructed(t *testing.T) {
	assert.ErrorIs(t, (commands.CreatePingCommand{}).Validate(), commands.ErrCreatePingCommandIsNotConstructed)
	assert.ErrorIs(t, (commands.RecordResponseCommand{}).Validate(), commands.ErrRecordResponseCommandIsNotConstructed)
	assert.ErrorIs(t, (commands.AssignRouteCommand{}).Validate(), commands.ErrAssignRouteCommandIsNotConstructed)
	assert.ErrorIs(t, (commands.ReplaceRouteParcelsCommand{}).Validate(),
		commands.ErrReplaceRouteParcelsCommandIsNotConstructed)
	assert.ErrorIs(t, (commands.RemoveParcelFromRouteCommand{}).Validate(),
		commands.ErrRemoveParcelFromRouteCommandIsNotConstructed)
	assert.ErrorIs(t, (commands.DeleteRouteCommand{}).Validate(), commands.ErrDeleteRouteCommandIsNotConstructed)
	assert.ErrorIs(t, (commands.ExpireNotificationsCommand{}).Validate(),
		commands.ErrExpireNotificationsCommandIsNotConstructed)
}

func TestNewExpireNotificationsCommand(t *testing.T) {
	_, err := commands.NewExpireNotificationsCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cmd, err := commands.NewExpireNotificationsCommand(commands.DefaultExpiryBatchSize)
	require.NoError(t, err)
	assert.Equal(t, 100, cmd.BatchSize())
}
