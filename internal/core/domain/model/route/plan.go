package route

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Waypoint is one stop of an optimized plan.
type Waypoint struct {
	location kernel.Location
	parcelID kernel.UUID
}

func NewWaypoint(location kernel.Location, parcelID kernel.UUID) (Waypoint, error) {
	if err := errors.Join(location.Validate(), parcelID.Validate()); err != nil {
		return Waypoint{}, err
	}
	return Waypoint{location: location, parcelID: parcelID}, nil
}

func (w Waypoint) Location() kernel.Location {
	return w.location
}

func (w Waypoint) ParcelID() kernel.UUID {
	return w.parcelID
}

// Plan is the ordered stop sequence returned by the routing provider, with
// the provider's totals. The zero Plan is the empty plan.
type Plan struct {
	waypoints       []Waypoint
	distanceMeters  float64
	durationSeconds float64
}

func NewPlan(waypoints []Waypoint, distanceMeters float64, durationSeconds float64) (Plan, error) {
	if distanceMeters < 0 {
		return Plan{}, errs.NewValueIsInvalidErrorWithCause("distance", fmt.Errorf("%v is negative", distanceMeters))
	}
	if durationSeconds < 0 {
		return Plan{}, errs.NewValueIsInvalidErrorWithCause("duration", fmt.Errorf("%v is negative", durationSeconds))
	}

	wps := make([]Waypoint, len(waypoints))
	copy(wps, waypoints)
	return Plan{
		waypoints:       wps,
		distanceMeters:  distanceMeters,
		durationSeconds: durationSeconds,
	}, nil
}

// EmptyPlan is the plan of a route without parcels.
func EmptyPlan() Plan {
	return Plan{}
}

func (p Plan) Waypoints() []Waypoint {
	out := make([]Waypoint, len(p.waypoints))
	copy(out, p.waypoints)
	return out
}

func (p Plan) DistanceMeters() float64 {
	return p.distanceMeters
}

func (p Plan) DurationSeconds() float64 {
	return p.durationSeconds
}

func (p Plan) IsEmpty() bool {
	return len(p.waypoints) == 0
}

// without drops every waypoint of parcelID. Totals are kept as reported
// until the route is re-planned.
func (p Plan) without(parcelID kernel.UUID) Plan {
	kept := make([]Waypoint, 0, len(p.waypoints))
	for _, wp := range p.waypoints {
		if !wp.parcelID.IsEqual(parcelID) {
			kept = append(kept, wp)
		}
	}
	p.waypoints = kept
	return p
}
