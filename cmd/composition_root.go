package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/messaging"
	"dispatch/internal/adapters/out/ors"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/redisevents"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/clock"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory postgres.GormUnitOfWorkFactory

	clock     ports.Clock
	sender    ports.MessageSender
	events    ports.EventPublisher
	manager   commands.RouteConsistencyManager
	closeFunc func() error
}

// NewCompositionRoot builds the outbound adapters. The Redis publisher is
// used when REDIS_URL is set, otherwise events are only logged.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	depot, err := cfg.Depot()
	if err != nil {
		return nil, fmt.Errorf("depot: %w", err)
	}

	optimizer, err := ors.NewOptimizer(cfg.ORS())
	if err != nil {
		return nil, fmt.Errorf("ors optimizer: %w", err)
	}

	manager, err := commands.NewRouteConsistencyManager(optimizer, depot)
	if err != nil {
		return nil, err
	}

	var sender ports.MessageSender
	switch cfg.SMSDriver {
	case SMSDriverLog:
		sender = messaging.NewLogSender(logger)
	default:
		twilioSender, err := messaging.NewTwilioSender(cfg.Twilio())
		if err != nil {
			return nil, fmt.Errorf("twilio sender: %w", err)
		}
		sender = twilioSender
	}

	root := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      clock.NewSystem(),
		sender:     sender,
		manager:    manager,
		closeFunc:  func() error { return nil },
	}

	if cfg.RedisURL == "" {
		root.events = redisevents.NewLogPublisher(logger)
		return root, nil
	}

	publisher, err := redisevents.NewPublisher(ctx, cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis publisher: %w", err)
	}
	root.events = publisher
	root.closeFunc = publisher.Close

	return root, nil
}

func (c *CompositionRoot) Close() error {
	return c.closeFunc()
}

func (c *CompositionRoot) CreateCreatePingCommandHandler() commands.CreatePingCommandHandler {
	var f commands.PingUoWFactory = FuncPingUoWFactory(func() commands.PingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePingCommandHandler(f, c.sender, c.clock, c.events)
}

func (c *CompositionRoot) CreateRecordResponseCommandHandler() commands.RecordResponseCommandHandler {
	var f commands.ResponseUoWFactory = FuncResponseUoWFactory(func() commands.ResponseUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordResponseCommandHandler(f, c.clock, c.events)
}

func (c *CompositionRoot) routeUoWFactory() commands.RouteUoWFactory {
	return FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateAssignRouteCommandHandler() commands.AssignRouteCommandHandler {
	return commands.NewAssignRouteCommandHandler(c.routeUoWFactory(), c.manager, c.clock, c.events)
}

func (c *CompositionRoot) CreateReplaceRouteParcelsCommandHandler() commands.ReplaceRouteParcelsCommandHandler {
	return commands.NewReplaceRouteParcelsCommandHandler(c.routeUoWFactory(), c.manager, c.clock, c.events)
}

func (c *CompositionRoot) CreateRemoveParcelFromRouteCommandHandler() commands.RemoveParcelFromRouteCommandHandler {
	return commands.NewRemoveParcelFromRouteCommandHandler(c.routeUoWFactory(), c.manager, c.clock, c.events)
}

func (c *CompositionRoot) CreateDeleteRouteCommandHandler() commands.DeleteRouteCommandHandler {
	return commands.NewDeleteRouteCommandHandler(c.routeUoWFactory(), c.manager, c.clock, c.events)
}

func (c *CompositionRoot) CreateExpireNotificationsCommandHandler() commands.ExpireNotificationsCommandHandler {
	var f commands.ExpiryUoWFactory = FuncExpiryUoWFactory(func() commands.ExpiryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpireNotificationsCommandHandler(f, c.manager, c.clock, c.events)
}

func (c *CompositionRoot) CreateGetAllRoutesQueryHandler() queries.GetAllRoutesQueryHandler {
	return queries.NewGetAllRoutesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRouteQueryHandler() queries.GetRouteQueryHandler {
	return queries.NewGetRouteQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNotificationQueryHandler() queries.GetNotificationQueryHandler {
	return queries.NewGetNotificationQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateExpireNotificationsCommandHandler(), c.cfg.Expiry(), c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreatePing:            c.CreateCreatePingCommandHandler(),
		RecordResponse:        c.CreateRecordResponseCommandHandler(),
		AssignRoute:           c.CreateAssignRouteCommandHandler(),
		ReplaceRouteParcels:   c.CreateReplaceRouteParcelsCommandHandler(),
		RemoveParcelFromRoute: c.CreateRemoveParcelFromRouteCommandHandler(),
		DeleteRoute:           c.CreateDeleteRouteCommandHandler(),
		GetAllRoutes:          c.CreateGetAllRoutesQueryHandler(),
		GetRoute:              c.CreateGetRouteQueryHandler(),
		GetNotification:       c.CreateGetNotificationQueryHandler(),
	}, c.logger)

	return httpin.NewRouter(server, c.logger)
}

type FuncPingUoWFactory func() commands.PingUoW

func (f FuncPingUoWFactory) Create() commands.PingUoW {
	return f()
}

type FuncResponseUoWFactory func() commands.ResponseUoW

func (f FuncResponseUoWFactory) Create() commands.ResponseUoW {
	return f()
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}

type FuncExpiryUoWFactory func() commands.ExpiryUoW

func (f FuncExpiryUoWFactory) Create() commands.ExpiryUoW {
	return f()
}
