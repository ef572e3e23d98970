package routerepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRouteRepository implements ports.RouteRepository using GORM. Writes
// touch two tables and expect to run inside the unit of work's transaction.
type GormRouteRepository struct {
	db *gorm.DB
}

func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

func (r *GormRouteRepository) Add(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("add route", err)
	}
	return nil
}

// Update rewrites the parcel set, the totals and all waypoints.
func (r *GormRouteRepository) Update(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&RouteDTO{}).
		Where("id = ?", dto.ID).
		Select("driver_id", "parcel_ids", "distance_meters", "duration_seconds", "status").
		Omit(clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return errs.NewPersistenceError("update route", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("route", aggregate.ID().String())
	}

	if err := r.replaceWaypoints(db, dto.ID, dto.Waypoints); err != nil {
		return errs.NewPersistenceError("update route waypoints", err)
	}
	return nil
}

func (r *GormRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RouteDTO
	err := r.withWaypoints(r.db.WithContext(ctx)).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("route", id.String())
		}
		return nil, errs.NewPersistenceError("get route", err)
	}

	return toDomain(dto)
}

func (r *GormRouteRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("route_id = ?", id.Bytes()).Delete(&WaypointDTO{}).Error; err != nil {
		return errs.NewPersistenceError("delete route waypoints", err)
	}

	result := db.Delete(&RouteDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return errs.NewPersistenceError("delete route", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("route", id.String())
	}
	return nil
}

func (r *GormRouteRepository) FindContainingParcel(ctx context.Context, parcelID kernel.UUID) ([]*route.Route, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RouteDTO
	err := r.withWaypoints(r.db.WithContext(ctx)).
		Where("?::uuid = ANY(parcel_ids)", parcelID.String()).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceError("find routes by parcel", err)
	}

	routes := make([]*route.Route, 0, len(dtos))
	for _, dto := range dtos {
		rt, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		routes = append(routes, rt)
	}
	return routes, nil
}

func (r *GormRouteRepository) withWaypoints(db *gorm.DB) *gorm.DB {
	return db.Preload("Waypoints", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	})
}

func (r *GormRouteRepository) replaceWaypoints(db *gorm.DB, routeID uuid.UUID, waypoints []WaypointDTO) error {
	if err := db.Where("route_id = ?", routeID).Delete(&WaypointDTO{}).Error; err != nil {
		return err
	}
	if len(waypoints) == 0 {
		return nil
	}
	return db.Create(&waypoints).Error
}
