// Package queries contains read operations. Handlers read straight from the
// database with SQL and return read models; they never load aggregates.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAllRoutesQueryIsNotConstructed = errors.New(
	"GetAllRoutesQuery must be created via NewGetAllRoutesQuery constructor",
)

type GetAllRoutesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAllRoutesQuery() GetAllRoutesQuery {
	return GetAllRoutesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetAllRoutesQuery) Validate() error {
	return q.guard.Validate(ErrGetAllRoutesQueryIsNotConstructed)
}

// RouteResponse is the read model of a route and its plan.
type RouteResponse struct {
	ID              kernel.UUID
	DriverID        *kernel.UUID
	ParcelIDs       []kernel.UUID
	Waypoints       []WaypointResponse
	DistanceMeters  float64
	DurationSeconds float64
	Status          string
}

type WaypointResponse struct {
	ParcelID kernel.UUID
	Lng      float64
	Lat      float64
}
