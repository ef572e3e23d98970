package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	// RouteStore is what RouteConsistencyManager needs from a unit of work.
	RouteStore interface {
		ParcelRepoFactory
		RouteRepoFactory
	}

	PingUoW interface {
		TxManager
		ParcelRepoFactory
		CustomerRepoFactory
		NotificationRepoFactory
	}

	PingUoWFactory interface {
		Create() PingUoW
	}

	ResponseUoW interface {
		TxManager
		ParcelRepoFactory
		NotificationRepoFactory
	}

	ResponseUoWFactory interface {
		Create() ResponseUoW
	}

	RouteUoW interface {
		TxManager
		RouteStore
		DriverRepoFactory
	}

	RouteUoWFactory interface {
		Create() RouteUoW
	}

	ExpiryUoW interface {
		TxManager
		RouteStore
		NotificationRepoFactory
	}

	ExpiryUoWFactory interface {
		Create() ExpiryUoW
	}
)
