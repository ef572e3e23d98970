package commands_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// memStore is a transactional in-memory store. Transactions are serialized
// and see a private copy of the data until they commit.
type memStore struct {
	tx sync.Mutex

	parcels       map[kernel.UUID]*parcel.Parcel
	routes        map[kernel.UUID]*route.Route
	notifications map[kernel.UUID]*notification.Notification
	drivers       map[kernel.UUID]*driver.Driver
	customers     map[kernel.UUID]*customer.Customer

	// failParcelUpdate, when set, fails every parcel update.
	failParcelUpdate error
}

func newMemStore() *memStore {
	return &memStore{
		parcels:       map[kernel.UUID]*parcel.Parcel{},
		routes:        map[kernel.UUID]*route.Route{},
		notifications: map[kernel.UUID]*notification.Notification{},
		drivers:       map[kernel.UUID]*driver.Driver{},
		customers:     map[kernel.UUID]*customer.Customer{},
	}
}

func (s *memStore) Create() *memUoW {
	return &memUoW{store: s}
}

func (s *memStore) ping() commands.PingUoWFactory         { return memPingFactory{s} }
func (s *memStore) response() commands.ResponseUoWFactory { return memResponseFactory{s} }
func (s *memStore) routing() commands.RouteUoWFactory     { return memRouteFactory{s} }
func (s *memStore) expiry() commands.ExpiryUoWFactory     { return memExpiryFactory{s} }

type memPingFactory struct{ s *memStore }

func (f memPingFactory) Create() commands.PingUoW { return f.s.Create() }

type memResponseFactory struct{ s *memStore }

func (f memResponseFactory) Create() commands.ResponseUoW { return f.s.Create() }

type memRouteFactory struct{ s *memStore }

func (f memRouteFactory) Create() commands.RouteUoW { return f.s.Create() }

type memExpiryFactory struct{ s *memStore }

func (f memExpiryFactory) Create() commands.ExpiryUoW { return f.s.Create() }

// committed reads.

func (s *memStore) parcel(id kernel.UUID) *parcel.Parcel {
	return cloneParcel(s.parcels[id])
}

func (s *memStore) route(id kernel.UUID) *route.Route {
	r, ok := s.routes[id]
	if !ok {
		return nil
	}
	return cloneRoute(r)
}

func (s *memStore) notification(id kernel.UUID) *notification.Notification {
	return cloneNotification(s.notifications[id])
}

// seeding, outside any transaction.

func (s *memStore) seedParcel(p *parcel.Parcel) {
	s.parcels[p.ID()] = cloneParcel(p)
}

func (s *memStore) seedRoute(r *route.Route) {
	s.routes[r.ID()] = cloneRoute(r)
}

func (s *memStore) seedNotification(n *notification.Notification) {
	s.notifications[n.ID()] = cloneNotification(n)
}

func (s *memStore) seedDriver(d *driver.Driver) {
	s.drivers[d.ID()] = d
}

func (s *memStore) seedCustomer(c *customer.Customer) {
	s.customers[c.ID()] = c
}

type memUoW struct {
	store  *memStore
	active bool

	parcels       map[kernel.UUID]*parcel.Parcel
	routes        map[kernel.UUID]*route.Route
	notifications map[kernel.UUID]*notification.Notification
}

func (u *memUoW) Begin(context.Context) error {
	u.store.tx.Lock()
	u.active = true
	u.parcels = maps.Clone(u.store.parcels)
	u.routes = maps.Clone(u.store.routes)
	u.notifications = maps.Clone(u.store.notifications)
	return nil
}

func (u *memUoW) Commit(context.Context) error {
	if !u.active {
		return errors.New("no transaction")
	}
	u.store.parcels = u.parcels
	u.store.routes = u.routes
	u.store.notifications = u.notifications
	u.active = false
	u.store.tx.Unlock()
	return nil
}

func (u *memUoW) Rollback(context.Context) error {
	if !u.active {
		return nil
	}
	u.active = false
	u.store.tx.Unlock()
	return nil
}

func (u *memUoW) ParcelRepository() ports.ParcelRepository             { return memParcels{u} }
func (u *memUoW) RouteRepository() ports.RouteRepository               { return memRoutes{u} }
func (u *memUoW) NotificationRepository() ports.NotificationRepository { return memNotifications{u} }
func (u *memUoW) DriverRepository() ports.DriverRepository             { return memDrivers{u.store} }
func (u *memUoW) CustomerRepository() ports.CustomerRepository         { return memCustomers{u.store} }

type memParcels struct{ u *memUoW }

func (r memParcels) Add(_ context.Context, p *parcel.Parcel) error {
	r.u.parcels[p.ID()] = cloneParcel(p)
	return nil
}

// UpdateRoute and UpdateStatus copy one field onto the stored parcel, like
// the single-column UPDATEs of the Postgres repository.
func (r memParcels) UpdateRoute(_ context.Context, p *parcel.Parcel) error {
	stored, err := r.stored(p.ID())
	if err != nil {
		return err
	}
	return r.put(stored, clonePtr(p.RouteID()), stored.Status())
}

func (r memParcels) UpdateStatus(_ context.Context, p *parcel.Parcel) error {
	stored, err := r.stored(p.ID())
	if err != nil {
		return err
	}
	return r.put(stored, clonePtr(stored.RouteID()), p.Status())
}

func (r memParcels) stored(id kernel.UUID) (*parcel.Parcel, error) {
	if r.u.store.failParcelUpdate != nil {
		return nil, r.u.store.failParcelUpdate
	}
	stored, ok := r.u.parcels[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("parcel", id.String())
	}
	return stored, nil
}

func (r memParcels) put(stored *parcel.Parcel, routeID *kernel.UUID, status parcel.Status) error {
	out, err := parcel.RestoreParcel(stored.ID(), stored.Code(), stored.CustomerID(), clonePtr(stored.DriverID()),
		routeID, stored.Location(), stored.Priority(), status, stored.ScheduledAt())
	if err != nil {
		return err
	}
	r.u.parcels[stored.ID()] = out
	return nil
}

func (r memParcels) Get(_ context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	p, ok := r.u.parcels[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("parcel", id.String())
	}
	return cloneParcel(p), nil
}

func (r memParcels) GetMany(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error) {
	out := make([]*parcel.Parcel, 0, len(ids))
	for _, id := range ids {
		p, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r memParcels) FindByRoute(_ context.Context, routeID kernel.UUID) ([]*parcel.Parcel, error) {
	var out []*parcel.Parcel
	for _, p := range r.u.parcels {
		if p.IsOnRoute(routeID) {
			out = append(out, cloneParcel(p))
		}
	}
	return out, nil
}

type memRoutes struct{ u *memUoW }

func (r memRoutes) Add(_ context.Context, rt *route.Route) error {
	r.u.routes[rt.ID()] = cloneRoute(rt)
	return nil
}

func (r memRoutes) Update(_ context.Context, rt *route.Route) error {
	if _, ok := r.u.routes[rt.ID()]; !ok {
		return errs.NewObjectNotFoundError("route", rt.ID().String())
	}
	r.u.routes[rt.ID()] = cloneRoute(rt)
	return nil
}

func (r memRoutes) Get(_ context.Context, id kernel.UUID) (*route.Route, error) {
	rt, ok := r.u.routes[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("route", id.String())
	}
	return cloneRoute(rt), nil
}

func (r memRoutes) Delete(_ context.Context, id kernel.UUID) error {
	if _, ok := r.u.routes[id]; !ok {
		return errs.NewObjectNotFoundError("route", id.String())
	}
	delete(r.u.routes, id)
	return nil
}

func (r memRoutes) FindContainingParcel(_ context.Context, parcelID kernel.UUID) ([]*route.Route, error) {
	var out []*route.Route
	for _, rt := range r.u.routes {
		if rt.Contains(parcelID) {
			out = append(out, cloneRoute(rt))
		}
	}
	return out, nil
}

type memNotifications struct{ u *memUoW }

func (r memNotifications) Add(_ context.Context, n *notification.Notification) error {
	r.u.notifications[n.ID()] = cloneNotification(n)
	return nil
}

func (r memNotifications) Get(_ context.Context, id kernel.UUID) (*notification.Notification, error) {
	n, ok := r.u.notifications[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("notification", id.String())
	}
	return cloneNotification(n), nil
}

func (r memNotifications) HasPending(_ context.Context, parcelID kernel.UUID) (bool, error) {
	for _, n := range r.u.notifications {
		if n.ParcelID().IsEqual(parcelID) && n.Status() == notification.Pending {
			return true, nil
		}
	}
	return false, nil
}

func (r memNotifications) ResolvePending(_ context.Context, n *notification.Notification) error {
	stored, ok := r.u.notifications[n.ID()]
	if !ok || stored.Status() != notification.Pending {
		return errs.NewInvalidStateError("notification", "no longer pending")
	}
	r.u.notifications[n.ID()] = cloneNotification(n)
	return nil
}

func (r memNotifications) FindExpired(
	_ context.Context,
	now time.Time,
	limit int,
) ([]*notification.Notification, error) {
	var out []*notification.Notification
	for _, n := range r.u.notifications {
		if n.IsExpired(now) {
			out = append(out, cloneNotification(n))
		}
	}
	slices.SortFunc(out, func(a, b *notification.Notification) int {
		return a.Deadline().Compare(b.Deadline())
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memDrivers struct{ s *memStore }

func (r memDrivers) Add(_ context.Context, d *driver.Driver) error {
	r.s.drivers[d.ID()] = d
	return nil
}

func (r memDrivers) Get(_ context.Context, id kernel.UUID) (*driver.Driver, error) {
	d, ok := r.s.drivers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("driver", id.String())
	}
	return d, nil
}

type memCustomers struct{ s *memStore }

func (r memCustomers) Add(_ context.Context, c *customer.Customer) error {
	r.s.customers[c.ID()] = c
	return nil
}

func (r memCustomers) Get(_ context.Context, id kernel.UUID) (*customer.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("customer", id.String())
	}
	return c, nil
}

func clonePtr(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneParcel(p *parcel.Parcel) *parcel.Parcel {
	if p == nil {
		return nil
	}
	out, err := parcel.RestoreParcel(p.ID(), p.Code(), p.CustomerID(), clonePtr(p.DriverID()), clonePtr(p.RouteID()),
		p.Location(), p.Priority(), p.Status(), p.ScheduledAt())
	if err != nil {
		panic(err)
	}
	return out
}

func cloneRoute(r *route.Route) *route.Route {
	out, err := route.RestoreRoute(r.ID(), clonePtr(r.DriverID()), r.ParcelIDs(), r.Plan(), r.Status())
	if err != nil {
		panic(err)
	}
	return out
}

func cloneNotification(n *notification.Notification) *notification.Notification {
	if n == nil {
		return nil
	}
	out, err := notification.RestoreNotification(n.ID(), n.ParcelID(), n.MessageID(), n.Status(), n.CreatedAt(),
		n.Deadline())
	if err != nil {
		panic(err)
	}
	return out
}

// stubOptimizer keeps the stops in the order given and charges 1 km per stop.
type stubOptimizer struct {
	mu    sync.Mutex
	calls [][]route.Waypoint
	err   error
}

func (o *stubOptimizer) Optimize(_ context.Context, stops []route.Waypoint, _ kernel.Location) (route.Plan, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, slices.Clone(stops))
	if o.err != nil {
		return route.Plan{}, o.err
	}
	if len(stops) == 0 {
		return route.Plan{}, errs.NewValueIsRequiredError("stops")
	}
	return route.NewPlan(stops, float64(1000*len(stops)), float64(120*len(stops)))
}

func (o *stubOptimizer) callCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.calls)
}
