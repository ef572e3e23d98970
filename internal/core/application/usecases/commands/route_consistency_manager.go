package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// RouteConsistencyManager performs every route mutation of the service.
//
// Each operation runs against the repositories of the caller's unit of work,
// so the route and its parcels are written in one transaction. The plan is
// always obtained from the optimizer before anything is written; an
// optimizer error leaves the store untouched.
type RouteConsistencyManager struct {
	optimizer ports.RouteOptimizer
	depot     kernel.Location
	linker    services.RouteLinker
}

func NewRouteConsistencyManager(optimizer ports.RouteOptimizer, depot kernel.Location) (RouteConsistencyManager, error) {
	if optimizer == nil {
		return RouteConsistencyManager{}, errs.NewValueIsRequiredError("optimizer")
	}
	if err := depot.Validate(); err != nil {
		return RouteConsistencyManager{}, fmt.Errorf("depot: %w", err)
	}

	return RouteConsistencyManager{
		optimizer: optimizer,
		depot:     depot,
		linker:    services.NewRouteLinker(),
	}, nil
}

// AssignRoute creates a pending route for driverID over parcelIDs and links
// every parcel to it. Parcels still linked to another route are removed from
// that route first, and that route is re-planned.
func (m RouteConsistencyManager) AssignRoute(
	ctx context.Context,
	store RouteStore,
	driverID kernel.UUID,
	parcelIDs []kernel.UUID,
) (*route.Route, error) {
	parcels, err := store.ParcelRepository().GetMany(ctx, parcelIDs)
	if err != nil {
		return nil, err
	}

	plan, err := m.plan(ctx, parcels)
	if err != nil {
		return nil, err
	}

	r, err := route.NewRoute(kernel.NewUUID(), driverID, parcelIDs, plan)
	if err != nil {
		return nil, err
	}

	if err = m.releaseFromOtherRoutes(ctx, store, r.ID(), parcels); err != nil {
		return nil, err
	}

	if err = m.linker.Attach(r, parcels); err != nil {
		return nil, err
	}

	if err = store.RouteRepository().Add(ctx, r); err != nil {
		return nil, err
	}

	if err = m.updateParcels(ctx, store, parcels); err != nil {
		return nil, err
	}

	return r, nil
}

// ReplaceRouteParcels gives routeID a new parcel set. Parcels dropped from
// the route lose their reference, new ones gain it.
func (m RouteConsistencyManager) ReplaceRouteParcels(
	ctx context.Context,
	store RouteStore,
	routeID kernel.UUID,
	parcelIDs []kernel.UUID,
) (*route.Route, error) {
	routeRepo := store.RouteRepository()
	parcelRepo := store.ParcelRepository()

	r, err := routeRepo.Get(ctx, routeID)
	if err != nil {
		return nil, err
	}

	next, err := parcelRepo.GetMany(ctx, parcelIDs)
	if err != nil {
		return nil, err
	}

	plan, err := m.plan(ctx, next)
	if err != nil {
		return nil, err
	}

	previous, err := parcelRepo.FindByRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}

	if err = m.releaseFromOtherRoutes(ctx, store, routeID, next); err != nil {
		return nil, err
	}

	changed, err := m.linker.Replace(r, previous, next, plan)
	if err != nil {
		return nil, err
	}

	if err = routeRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	if err = m.updateParcels(ctx, store, changed); err != nil {
		return nil, err
	}

	return r, nil
}

// RemoveParcelFromRoute drops parcelID from routeID and re-plans the rest.
// Removing a parcel the route does not list is a no-op and makes no
// optimizer call. A parcel that no longer exists is still removed from the
// route's set.
func (m RouteConsistencyManager) RemoveParcelFromRoute(
	ctx context.Context,
	store RouteStore,
	routeID kernel.UUID,
	parcelID kernel.UUID,
) (*route.Route, error) {
	r, err := store.RouteRepository().Get(ctx, routeID)
	if err != nil {
		return nil, err
	}

	p, err := m.findParcel(ctx, store, parcelID)
	if err != nil {
		return nil, err
	}

	parcelChanged, err := m.removeParcel(ctx, store, r, parcelID, p)
	if err != nil {
		return nil, err
	}

	if parcelChanged {
		if err = store.ParcelRepository().UpdateRoute(ctx, p); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// RemoveParcelFromAllRoutes removes parcelID from every route that lists it
// and returns those routes. p, when not nil, loses its route reference in
// memory only; the caller saves it together with its other changes.
func (m RouteConsistencyManager) RemoveParcelFromAllRoutes(
	ctx context.Context,
	store RouteStore,
	parcelID kernel.UUID,
	p *parcel.Parcel,
) ([]*route.Route, error) {
	routes, err := store.RouteRepository().FindContainingParcel(ctx, parcelID)
	if err != nil {
		return nil, err
	}

	for _, r := range routes {
		if _, err = m.removeParcel(ctx, store, r, parcelID, p); err != nil {
			return nil, err
		}
	}

	if p != nil && p.RouteID() != nil {
		// A stale reference to a route that never listed the parcel.
		p.DetachFromRoute(*p.RouteID())
	}

	return routes, nil
}

// DeleteRoute deletes routeID and clears the reference of every parcel that
// points at it.
func (m RouteConsistencyManager) DeleteRoute(ctx context.Context, store RouteStore, routeID kernel.UUID) error {
	routeRepo := store.RouteRepository()
	parcelRepo := store.ParcelRepository()

	if _, err := routeRepo.Get(ctx, routeID); err != nil {
		return err
	}

	linked, err := parcelRepo.FindByRoute(ctx, routeID)
	if err != nil {
		return err
	}

	if err = routeRepo.Delete(ctx, routeID); err != nil {
		return err
	}

	return m.updateParcels(ctx, store, m.linker.Detach(routeID, linked))
}

func (m RouteConsistencyManager) removeParcel(
	ctx context.Context,
	store RouteStore,
	r *route.Route,
	parcelID kernel.UUID,
	p *parcel.Parcel,
) (bool, error) {
	routeChanged, parcelChanged := m.linker.Remove(r, parcelID, p)
	if !routeChanged {
		return parcelChanged, nil
	}

	remaining, err := m.remainingParcels(ctx, store, r)
	if err != nil {
		return false, err
	}

	plan, err := m.plan(ctx, remaining)
	if err != nil {
		return false, err
	}

	if err = r.Replan(plan); err != nil {
		return false, err
	}

	if err = store.RouteRepository().Update(ctx, r); err != nil {
		return false, err
	}

	return parcelChanged, nil
}

// remainingParcels loads the parcels r still lists. Parcels deleted from the
// catalogue are dropped from r instead of failing the re-plan.
func (m RouteConsistencyManager) remainingParcels(ctx context.Context, store RouteStore, r *route.Route) ([]*parcel.Parcel, error) {
	repo := store.ParcelRepository()

	parcels, err := repo.GetMany(ctx, r.ParcelIDs())
	if !isNotFound(err) {
		return parcels, err
	}

	parcels = make([]*parcel.Parcel, 0, len(r.ParcelIDs()))
	for _, id := range r.ParcelIDs() {
		p, getErr := repo.Get(ctx, id)
		if isNotFound(getErr) {
			r.RemoveParcel(id)
			continue
		}
		if getErr != nil {
			return nil, getErr
		}
		parcels = append(parcels, p)
	}
	return parcels, nil
}

func (m RouteConsistencyManager) findParcel(ctx context.Context, store RouteStore, id kernel.UUID) (*parcel.Parcel, error) {
	p, err := store.ParcelRepository().Get(ctx, id)
	if isNotFound(err) {
		return nil, nil
	}
	return p, err
}

// releaseFromOtherRoutes removes parcels from any route other than keepID
// they are currently linked to.
func (m RouteConsistencyManager) releaseFromOtherRoutes(
	ctx context.Context,
	store RouteStore,
	keepID kernel.UUID,
	parcels []*parcel.Parcel,
) error {
	for _, p := range parcels {
		current := p.RouteID()
		if current == nil || current.IsEqual(keepID) {
			continue
		}

		other, err := store.RouteRepository().Get(ctx, *current)
		if isNotFound(err) {
			p.DetachFromRoute(*current)
			continue
		}
		if err != nil {
			return err
		}

		if _, err = m.removeParcel(ctx, store, other, p.ID(), p); err != nil {
			return err
		}
		// The other route may not list the parcel even though it points there.
		p.DetachFromRoute(*current)
	}
	return nil
}

// plan optimizes parcels from the depot. No parcels means an empty plan and
// no optimizer call.
func (m RouteConsistencyManager) plan(ctx context.Context, parcels []*parcel.Parcel) (route.Plan, error) {
	if len(parcels) == 0 {
		return route.EmptyPlan(), nil
	}

	stops, err := m.linker.Stops(parcels)
	if err != nil {
		return route.Plan{}, err
	}

	return m.optimizer.Optimize(ctx, stops, m.depot)
}

func (m RouteConsistencyManager) updateParcels(ctx context.Context, store RouteStore, parcels []*parcel.Parcel) error {
	repo := store.ParcelRepository()
	for _, p := range parcels {
		if err := repo.UpdateRoute(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
