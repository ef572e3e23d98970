// Package routerepo persists routes. The parcel set is a uuid[] column so
// that containment can be queried with = ANY; the plan is stored as ordered
// rows in route_waypoints.
package routerepo

import (
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type RouteDTO struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	DriverID        *uuid.UUID     `gorm:"type:uuid;index"`
	ParcelIDs       pq.StringArray `gorm:"type:uuid[];not null"`
	Waypoints       []WaypointDTO  `gorm:"foreignKey:RouteID;references:ID;constraint:OnDelete:CASCADE"`
	DistanceMeters  float64        `gorm:"not null;default:0"`
	DurationSeconds float64        `gorm:"not null;default:0"`
	Status          int            `gorm:"not null"`
}

func (RouteDTO) TableName() string {
	return "routes"
}

type WaypointDTO struct {
	RouteID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq      int       `gorm:"primaryKey;autoIncrement:false"`
	ParcelID uuid.UUID `gorm:"type:uuid;not null"`
	Lng      float64   `gorm:"not null"`
	Lat      float64   `gorm:"not null"`
}

func (WaypointDTO) TableName() string {
	return "route_waypoints"
}

func fromDomain(r *route.Route) RouteDTO {
	var driverID *uuid.UUID
	if id := r.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	parcelIDs := make(pq.StringArray, 0, len(r.ParcelIDs()))
	for _, id := range r.ParcelIDs() {
		parcelIDs = append(parcelIDs, id.String())
	}

	plan := r.Plan()
	waypoints := make([]WaypointDTO, 0, len(plan.Waypoints()))
	for i, wp := range plan.Waypoints() {
		waypoints = append(waypoints, WaypointDTO{
			RouteID:  r.ID().Bytes(),
			Seq:      i,
			ParcelID: wp.ParcelID().Bytes(),
			Lng:      wp.Location().Lng(),
			Lat:      wp.Location().Lat(),
		})
	}

	return RouteDTO{
		ID:              r.ID().Bytes(),
		DriverID:        driverID,
		ParcelIDs:       parcelIDs,
		Waypoints:       waypoints,
		DistanceMeters:  plan.DistanceMeters(),
		DurationSeconds: plan.DurationSeconds(),
		Status:          int(r.Status()),
	}
}

func toDomain(dto RouteDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	parcelIDs, err := kernel.UUIDsFromStrings(dto.ParcelIDs)
	if err != nil {
		return nil, err
	}

	plan := route.EmptyPlan()
	if len(dto.Waypoints) > 0 {
		waypoints := make([]route.Waypoint, 0, len(dto.Waypoints))
		for _, w := range dto.Waypoints {
			wp, wpErr := waypointToDomain(w)
			if wpErr != nil {
				return nil, fmt.Errorf("route %s waypoint %d: %w", id, w.Seq, wpErr)
			}
			waypoints = append(waypoints, wp)
		}
		if plan, err = route.NewPlan(waypoints, dto.DistanceMeters, dto.DurationSeconds); err != nil {
			return nil, err
		}
	}

	return route.RestoreRoute(id, driverID, parcelIDs, plan, route.Status(dto.Status))
}

func waypointToDomain(dto WaypointDTO) (route.Waypoint, error) {
	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return route.Waypoint{}, err
	}
	loc, err := kernel.NewLocation(dto.Lng, dto.Lat)
	if err != nil {
		return route.Waypoint{}, err
	}
	return route.NewWaypoint(loc, parcelID)
}
