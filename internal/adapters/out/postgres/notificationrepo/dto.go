// Package notificationrepo persists the confirmation ledger.
//
// A partial unique index allows at most one pending entry per parcel, and
// status changes go through a conditional UPDATE so that only one of a
// response and an expiry sweep can settle an entry.
package notificationrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_notifications_pending_parcel,where:status = 1"`
	MessageID string
	Status    int       `gorm:"not null;index:idx_notifications_status_deadline,priority:1"`
	CreatedAt time.Time `gorm:"not null"`
	Deadline  time.Time `gorm:"not null;index:idx_notifications_status_deadline,priority:2"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID().Bytes(),
		ParcelID:  n.ParcelID().Bytes(),
		MessageID: n.MessageID(),
		Status:    int(n.Status()),
		CreatedAt: n.CreatedAt().UTC(),
		Deadline:  n.Deadline().UTC(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(id, parcelID, dto.MessageID, notification.Status(dto.Status),
		dto.CreatedAt.UTC(), dto.Deadline.UTC())
}
