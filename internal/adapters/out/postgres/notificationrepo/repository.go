package notificationrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormNotificationRepository implements ports.NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Add stores a new entry. A second pending entry for the same parcel is
// rejected by the pending index and reported as errs.InvalidStateError.
func (r *GormNotificationRepository) Add(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errs.NewInvalidStateErrorWithCause("notification", "parcel already has a pending ping", err)
		}
		return errs.NewPersistenceError("add notification", err)
	}
	return nil
}

func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, errs.NewPersistenceError("get notification", err)
	}

	return toDomain(dto)
}

func (r *GormNotificationRepository) HasPending(ctx context.Context, parcelID kernel.UUID) (bool, error) {
	if err := parcelID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("parcel_id = ? AND status = ?", parcelID.Bytes(), int(notification.Pending)).
		Count(&count).Error
	if err != nil {
		return false, errs.NewPersistenceError("count pending notifications", err)
	}
	return count > 0, nil
}

// ResolvePending is a compare-and-set on the status column.
func (r *GormNotificationRepository) ResolvePending(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if !aggregate.Status().IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a terminal status", aggregate.Status()))
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), int(notification.Pending)).
		Update("status", int(aggregate.Status()))
	if result.Error != nil {
		return errs.NewPersistenceError("resolve notification", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewInvalidStateError("notification", "no longer pending")
	}
	return nil
}

func (r *GormNotificationRepository) FindExpired(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*notification.Notification, error) {
	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND deadline < ?", int(notification.Pending), now.UTC()).
		Order("deadline").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceError("find expired notifications", err)
	}

	entries := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		entries = append(entries, n)
	}
	return entries, nil
}
