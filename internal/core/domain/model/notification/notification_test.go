package notification_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestNewNotification_DeadlineIsCreationPlusFifteenMinutes(t *testing.T) {
	parcelID := kernel.NewUUID()

	n, err := notification.NewNotification(kernel.NewUUID(), parcelID, "SM123", createdAt)

	require.NoError(t, err)
	require.NoError(t, n.Validate())
	assert.Equal(t, notification.Pending, n.Status())
	assert.True(t, n.ParcelID().IsEqual(parcelID))
	assert.Equal(t, "SM123", n.MessageID())
	assert.Equal(t, createdAt, n.CreatedAt())
	assert.Equal(t, createdAt.Add(15*time.Minute), n.Deadline())
	assert.Equal(t, 15*time.Minute, n.Deadline().Sub(n.CreatedAt()))
}

func TestNewNotification_Invalid(t *testing.T) {
	n, err := notification.NewNotification(kernel.UUID{}, kernel.UUID{}, "", time.Time{})

	require.Error(t, err)
	assert.Nil(t, n)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNotification_LeavesPendingAtMostOnce(t *testing.T) {
	tests := []struct {
		name  string
		first func(*notification.Notification) error
		want  notification.Status
	}{
		{name: "responded", first: (*notification.Notification).Respond, want: notification.Responded},
		{name: "timed out", first: (*notification.Notification).TimeOut, want: notification.TimedOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := notification.NewNotification(kernel.NewUUID(), kernel.NewUUID(), "SM1", createdAt)
			require.NoError(t, err)

			require.NoError(t, tt.first(n))
			assert.Equal(t, tt.want, n.Status())
			assert.True(t, n.Status().IsTerminal())

			require.ErrorIs(t, n.Respond(), errs.ErrInvalidState)
			require.ErrorIs(t, n.TimeOut(), errs.ErrInvalidState)
			assert.Equal(t, tt.want, n.Status())
		})
	}
}

func TestNotification_IsExpired(t *testing.T) {
	n, err := notification.NewNotification(kernel.NewUUID(), kernel.NewUUID(), "SM1", createdAt)
	require.NoError(t, err)

	assert.False(t, n.IsExpired(createdAt.Add(14*time.Minute)))
	assert.False(t, n.IsExpired(n.Deadline()), "deadline itself is not past")
	assert.True(t, n.IsExpired(n.Deadline().Add(time.Second)))

	require.NoError(t, n.Respond())
	assert.False(t, n.IsExpired(n.Deadline().Add(time.Hour)), "answered entries never expire")
}

func TestRestoreNotification(t *testing.T) {
	deadline := createdAt.Add(notification.ResponseWindow)

	n, err := notification.RestoreNotification(kernel.NewUUID(), kernel.NewUUID(), "SM9",
		notification.TimedOut, createdAt, deadline)
	require.NoError(t, err)
	assert.Equal(t, "timed-out", n.Status().String())

	_, err = notification.RestoreNotification(kernel.NewUUID(), kernel.NewUUID(), "SM9",
		notification.Status(7), createdAt, deadline)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestParseAnswer(t *testing.T) {
	for raw, want := range map[string]notification.Answer{
		"yes": notification.Yes, "YES": notification.Yes, " Yes ": notification.Yes,
		"no": notification.No, "No": notification.No,
	} {
		got, err := notification.ParseAnswer(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"", "y", "maybe", "yes please"} {
		_, err := notification.ParseAnswer(raw)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, raw)
	}
}
