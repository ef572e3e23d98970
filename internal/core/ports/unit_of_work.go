package ports

import (
	"context"
)

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork scopes repositories to one database transaction. Repositories
// obtained after Begin share the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	ParcelRepository() ParcelRepository

	RouteRepository() RouteRepository

	NotificationRepository() NotificationRepository

	DriverRepository() DriverRepository

	CustomerRepository() CustomerRepository
}
