package parcelrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormParcelRepository implements ports.ParcelRepository using GORM.
type GormParcelRepository struct {
	db *gorm.DB
}

func NewGormParcelRepository(db *gorm.DB) *GormParcelRepository {
	return &GormParcelRepository{db: db}
}

func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("add parcel", err)
	}
	return nil
}

// UpdateRoute writes the route reference alone, so a concurrent status
// change is not overwritten. A nil reference is written as NULL.
func (r *GormParcelRepository) UpdateRoute(ctx context.Context, aggregate *parcel.Parcel) error {
	return r.updateColumn(ctx, aggregate, "route_id", "update parcel route")
}

// UpdateStatus writes the status alone, so a concurrent route change is not
// overwritten.
func (r *GormParcelRepository) UpdateStatus(ctx context.Context, aggregate *parcel.Parcel) error {
	return r.updateColumn(ctx, aggregate, "status", "update parcel status")
}

func (r *GormParcelRepository) updateColumn(ctx context.Context, aggregate *parcel.Parcel, column, op string) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ?", dto.ID).
		Select(column).
		Updates(&dto)
	if result.Error != nil {
		return errs.NewPersistenceError(op, result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("parcel", aggregate.ID().String())
	}
	return nil
}

func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, errs.NewPersistenceError("get parcel", err)
	}

	return toDomain(dto)
}

// GetMany loads ids with one query and returns them in the order asked for.
func (r *GormParcelRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error) {
	if len(ids) == 0 {
		return []*parcel.Parcel{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []ParcelDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, errs.NewPersistenceError("get parcels", err)
	}

	byID := make(map[uuid.UUID]ParcelDTO, len(dtos))
	for _, dto := range dtos {
		byID[dto.ID] = dto
	}

	parcels := make([]*parcel.Parcel, 0, len(ids))
	for _, id := range ids {
		dto, ok := byID[id.Bytes()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}
	return parcels, nil
}

func (r *GormParcelRepository) FindByRoute(ctx context.Context, routeID kernel.UUID) ([]*parcel.Parcel, error) {
	if err := routeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ParcelDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos, "route_id = ?", routeID.Bytes()).Error; err != nil {
		return nil, errs.NewPersistenceError("find parcels by route", err)
	}

	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}
	return parcels, nil
}
