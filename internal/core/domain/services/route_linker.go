package services

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"
)

// RouteLinker keeps parcel route references and route parcel sets in step.
//
// After every method returns without error, a parcel points at a route if
// and only if that route lists the parcel. RouteLinker only mutates the
// aggregates it is given; persisting them is up to the caller.
//
// Example usage:
//
//	linker := services.NewRouteLinker()
//	stops, err := linker.Stops(parcels)
//	// optimize stops ...
//	r, _ := route.NewRoute(kernel.NewUUID(), driverID, ids, plan)
//	if err := linker.Attach(r, parcels); err != nil {
//	    return err
//	}
type RouteLinker struct{}

func NewRouteLinker() RouteLinker {
	return RouteLinker{}
}

// Stops turns parcels into planning stops, in the given order.
//
// Every parcel must carry a valid coordinate; all offending parcels are
// reported together.
func (l RouteLinker) Stops(parcels []*parcel.Parcel) ([]route.Waypoint, error) {
	stops := make([]route.Waypoint, 0, len(parcels))
	var problems []error

	for _, p := range parcels {
		if err := p.Validate(); err != nil {
			return nil, err
		}

		loc, err := p.PlannableLocation()
		if err != nil {
			problems = append(problems, err)
			continue
		}

		stop, err := route.NewWaypoint(loc, p.ID())
		if err != nil {
			problems = append(problems, err)
			continue
		}
		stops = append(stops, stop)
	}

	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return stops, nil
}

// Attach points every parcel at r. Each parcel must be listed by r.
func (l RouteLinker) Attach(r *route.Route, parcels []*parcel.Parcel) error {
	if err := r.Validate(); err != nil {
		return err
	}

	for _, p := range parcels {
		if !r.Contains(p.ID()) {
			return errs.NewValueIsInvalidErrorWithCause("parcels",
				fmt.Errorf("parcel %s is not part of route %s", p.ID(), r.ID()))
		}
	}

	for _, p := range parcels {
		if err := p.AttachToRoute(r.ID()); err != nil {
			return err
		}
	}
	return nil
}

// Detach clears the route reference of every parcel that points at routeID
// and returns those parcels. Parcels pointing elsewhere are left alone.
func (l RouteLinker) Detach(routeID kernel.UUID, parcels []*parcel.Parcel) []*parcel.Parcel {
	changed := make([]*parcel.Parcel, 0, len(parcels))
	for _, p := range parcels {
		if p.DetachFromRoute(routeID) {
			changed = append(changed, p)
		}
	}
	return changed
}

// Replace swaps the parcel set of r for next with the given plan.
//
// previous must hold the parcels currently listed by r (missing ones are
// tolerated). It returns every parcel whose route reference changed: the
// dropped ones and the newly linked ones.
func (l RouteLinker) Replace(
	r *route.Route,
	previous []*parcel.Parcel,
	next []*parcel.Parcel,
	plan route.Plan,
) ([]*parcel.Parcel, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(next))
	keep := make(map[kernel.UUID]struct{}, len(next))
	for _, p := range next {
		ids = append(ids, p.ID())
		keep[p.ID()] = struct{}{}
	}

	if err := r.ReplaceParcels(ids, plan); err != nil {
		return nil, err
	}

	dropped := make([]*parcel.Parcel, 0, len(previous))
	for _, p := range previous {
		if _, stays := keep[p.ID()]; !stays {
			dropped = append(dropped, p)
		}
	}
	changed := l.Detach(r.ID(), dropped)

	for _, p := range next {
		if p.IsOnRoute(r.ID()) {
			continue
		}
		if err := p.AttachToRoute(r.ID()); err != nil {
			return nil, err
		}
		changed = append(changed, p)
	}

	return changed, nil
}

// Remove drops parcelID from r and clears p's reference to r. It reports
// whether r's parcel set changed and whether p changed. p may be nil when the
// parcel no longer exists.
func (l RouteLinker) Remove(r *route.Route, parcelID kernel.UUID, p *parcel.Parcel) (bool, bool) {
	routeChanged := r.RemoveParcel(parcelID)
	parcelChanged := false
	if p != nil {
		parcelChanged = p.DetachFromRoute(r.ID())
	}
	return routeChanged, parcelChanged
}
