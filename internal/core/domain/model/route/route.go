package route

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute or RestoreRoute constructor")
	ErrParcelsAreRequired    = errs.NewValueIsRequiredError("parcels")
)

// Route is an ordered set of parcels assigned to a driver together with the
// plan computed for them.
//
// Waypoints of the plan always reference parcels of the route. Parcel back
// references are maintained by services.RouteLinker, not here.
type Route struct {
	id        kernel.UUID
	driverID  *kernel.UUID
	parcelIDs []kernel.UUID
	plan      Plan
	status    Status

	guard guard.ConstructorGuard
}

// NewRoute creates a pending route for a non-empty, duplicate-free parcel list.
func NewRoute(id kernel.UUID, driverID kernel.UUID, parcelIDs []kernel.UUID, plan Plan) (*Route, error) {
	r := &Route{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setDriverID(&driverID),
		r.setParcelIDs(parcelIDs, false),
	); err != nil {
		return nil, err
	}

	if err := r.setPlan(plan); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRoute rebuilds a route read from storage. Stored routes may have
// lost all their parcels through expiry.
func RestoreRoute(
	id kernel.UUID,
	driverID *kernel.UUID,
	parcelIDs []kernel.UUID,
	plan Plan,
	status Status,
) (*Route, error) {
	r := &Route{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setDriverID(driverID),
		r.setParcelIDs(parcelIDs, true),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	r.status = status

	if err := r.setPlan(plan); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Route) Validate() error {
	if r == nil {
		return ErrRouteIsNotConstructed
	}
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

func (r *Route) ID() kernel.UUID {
	return r.id
}

func (r *Route) DriverID() *kernel.UUID {
	return r.driverID
}

func (r *Route) ParcelIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(r.parcelIDs))
	copy(out, r.parcelIDs)
	return out
}

func (r *Route) Plan() Plan {
	return r.plan
}

func (r *Route) Status() Status {
	return r.status
}

func (r *Route) Contains(parcelID kernel.UUID) bool {
	for _, id := range r.parcelIDs {
		if id.IsEqual(parcelID) {
			return true
		}
	}
	return false
}

// ReplaceParcels swaps the parcel set and its plan in one step.
func (r *Route) ReplaceParcels(parcelIDs []kernel.UUID, plan Plan) error {
	previous := r.parcelIDs
	if err := r.setParcelIDs(parcelIDs, false); err != nil {
		return err
	}
	if err := r.setPlan(plan); err != nil {
		r.parcelIDs = previous
		return err
	}
	return nil
}

// RemoveParcel drops parcelID from the parcel set and from the plan.
// Removing an absent parcel changes nothing and returns false.
func (r *Route) RemoveParcel(parcelID kernel.UUID) bool {
	if !r.Contains(parcelID) {
		return false
	}

	kept := make([]kernel.UUID, 0, len(r.parcelIDs)-1)
	for _, id := range r.parcelIDs {
		if !id.IsEqual(parcelID) {
			kept = append(kept, id)
		}
	}
	r.parcelIDs = kept
	r.plan = r.plan.without(parcelID)
	if len(r.parcelIDs) == 0 {
		r.plan = EmptyPlan()
	}
	return true
}

// Replan installs a new plan for the current parcel set.
func (r *Route) Replan(plan Plan) error {
	return r.setPlan(plan)
}

func (r *Route) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Route) setDriverID(driverID *kernel.UUID) error {
	if driverID == nil {
		r.driverID = nil
		return nil
	}
	if err := driverID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}
	id := *driverID
	r.driverID = &id
	return nil
}

func (r *Route) setParcelIDs(parcelIDs []kernel.UUID, allowEmpty bool) error {
	if len(parcelIDs) == 0 && !allowEmpty {
		return ErrParcelsAreRequired
	}

	seen := make(map[kernel.UUID]struct{}, len(parcelIDs))
	ids := make([]kernel.UUID, 0, len(parcelIDs))
	for _, id := range parcelIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("parcels", fmt.Errorf("parcel %s is listed twice", id))
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	r.parcelIDs = ids
	return nil
}

func (r *Route) setPlan(plan Plan) error {
	for _, wp := range plan.waypoints {
		if !r.Contains(wp.parcelID) {
			return errs.NewValueIsInvalidErrorWithCause("plan",
				fmt.Errorf("waypoint references parcel %s outside the route", wp.parcelID))
		}
	}
	r.plan = plan
	return nil
}
