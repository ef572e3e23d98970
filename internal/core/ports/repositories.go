package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/model/route"
)

type ParcelRepository interface {
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// UpdateRoute writes only the route reference of the parcel.
	UpdateRoute(ctx context.Context, aggregate *parcel.Parcel) error

	// UpdateStatus writes only the status of the parcel.
	UpdateStatus(ctx context.Context, aggregate *parcel.Parcel) error

	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetMany returns the parcels in the order of ids. A missing parcel is
	// reported as errs.ObjectNotFoundError.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error)

	// FindByRoute returns every parcel whose route reference is routeID.
	FindByRoute(ctx context.Context, routeID kernel.UUID) ([]*parcel.Parcel, error)
}

type RouteRepository interface {
	Add(ctx context.Context, aggregate *route.Route) error

	Update(ctx context.Context, aggregate *route.Route) error

	Get(ctx context.Context, id kernel.UUID) (*route.Route, error)

	Delete(ctx context.Context, id kernel.UUID) error

	// FindContainingParcel returns every route whose parcel set lists parcelID.
	FindContainingParcel(ctx context.Context, parcelID kernel.UUID) ([]*route.Route, error)
}

type NotificationRepository interface {
	Add(ctx context.Context, aggregate *notification.Notification) error

	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// HasPending reports whether the parcel already has a pending entry.
	HasPending(ctx context.Context, parcelID kernel.UUID) (bool, error)

	// ResolvePending stores the aggregate's terminal status only if the
	// stored status is still pending. When another writer got there first it
	// returns errs.InvalidStateError and writes nothing.
	ResolvePending(ctx context.Context, aggregate *notification.Notification) error

	// FindExpired returns up to limit pending entries whose deadline is
	// before now, oldest deadline first.
	FindExpired(ctx context.Context, now time.Time, limit int) ([]*notification.Notification, error)
}

type DriverRepository interface {
	Add(ctx context.Context, aggregate *driver.Driver) error

	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)
}

type CustomerRepository interface {
	Add(ctx context.Context, aggregate *customer.Customer) error

	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
}
