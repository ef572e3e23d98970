package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetNotificationQueryHandler struct {
	db *gorm.DB
}

func NewGetNotificationQueryHandler(db *gorm.DB) GetNotificationQueryHandler {
	return GetNotificationQueryHandler{db: db}
}

func (h GetNotificationQueryHandler) Handle(
	ctx context.Context,
	query GetNotificationQuery,
) (NotificationResponse, error) {
	if err := query.Validate(); err != nil {
		return NotificationResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			parcel_id,
			status,
			created_at,
			deadline
		FROM notifications
		WHERE id = ?
	`, query.NotificationID().Bytes()).Rows()
	if err != nil {
		return NotificationResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return NotificationResponse{}, err
		}
		return NotificationResponse{}, errs.NewObjectNotFoundError("notification", query.NotificationID().String())
	}

	var (
		resp     NotificationResponse
		id       uuid.UUID
		parcelID uuid.UUID
		status   int
	)
	if err = rows.Scan(&id, &parcelID, &status, &resp.CreatedAt, &resp.Deadline); err != nil {
		return NotificationResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return NotificationResponse{}, err
	}
	if resp.ParcelID, err = kernel.UUIDFromBytes(parcelID[:]); err != nil {
		return NotificationResponse{}, err
	}
	resp.Status = notification.Status(status).String()
	resp.CreatedAt = resp.CreatedAt.UTC()
	resp.Deadline = resp.Deadline.UTC()

	return resp, nil
}
