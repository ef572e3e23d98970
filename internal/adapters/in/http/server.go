package http

import (
	"context"
	"log/slog"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	CreatePingHandler interface {
		Handle(ctx context.Context, cmd commands.CreatePingCommand) (kernel.UUID, error)
	}

	RecordResponseHandler interface {
		Handle(ctx context.Context, cmd commands.RecordResponseCommand) error
	}

	AssignRouteHandler interface {
		Handle(ctx context.Context, cmd commands.AssignRouteCommand) (*route.Route, error)
	}

	ReplaceRouteParcelsHandler interface {
		Handle(ctx context.Context, cmd commands.ReplaceRouteParcelsCommand) (*route.Route, error)
	}

	RemoveParcelFromRouteHandler interface {
		Handle(ctx context.Context, cmd commands.RemoveParcelFromRouteCommand) (*route.Route, error)
	}

	DeleteRouteHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteRouteCommand) error
	}

	GetAllRoutesHandler interface {
		Handle(ctx context.Context, query queries.GetAllRoutesQuery) ([]queries.RouteResponse, error)
	}

	GetRouteHandler interface {
		Handle(ctx context.Context, query queries.GetRouteQuery) (queries.RouteResponse, error)
	}

	GetNotificationHandler interface {
		Handle(ctx context.Context, query queries.GetNotificationQuery) (queries.NotificationResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreatePing            CreatePingHandler
	RecordResponse        RecordResponseHandler
	AssignRoute           AssignRouteHandler
	ReplaceRouteParcels   ReplaceRouteParcelsHandler
	RemoveParcelFromRoute RemoveParcelFromRouteHandler
	DeleteRoute           DeleteRouteHandler

	GetAllRoutes    GetAllRoutesHandler
	GetRoute        GetRouteHandler
	GetNotification GetNotificationHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// CreatePing handles POST /api/v1/notifications/ping.
func (s *Server) CreatePing(ctx echo.Context) error {
	var body servers.PingRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	parcelID, err := kernel.UUIDFromBytes(body.ParcelId[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreatePingCommand(parcelID)
	if err != nil {
		return s.fail(ctx, err)
	}

	notificationID, err := s.handlers.CreatePing.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.PingResponse{
		Message:        "Ping sent",
		NotificationId: notificationID.Bytes(),
	})
}

// RecordResponse handles POST /api/v1/notifications/response.
func (s *Server) RecordResponse(ctx echo.Context) error {
	var body servers.ResponseRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	notificationID, err := kernel.UUIDFromBytes(body.NotificationId[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRecordResponseCommand(notificationID, body.Response)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.RecordResponse.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.MessageResponse{Message: "Response processed"})
}

// GetNotification handles GET /api/v1/notifications/{id}.
func (s *Server) GetNotification(ctx echo.Context, id openapi_types.UUID) error {
	notificationID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetNotificationQuery(notificationID)
	if err != nil {
		return s.fail(ctx, err)
	}

	n, err := s.handlers.GetNotification.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.Notification{
		Id:        n.ID.Bytes(),
		ParcelId:  n.ParcelID.Bytes(),
		Status:    n.Status,
		CreatedAt: n.CreatedAt,
		Deadline:  n.Deadline,
	})
}

// GetRoutes handles GET /api/v1/routes.
func (s *Server) GetRoutes(ctx echo.Context) error {
	routes, err := s.handlers.GetAllRoutes.Handle(ctx.Request().Context(), queries.NewGetAllRoutesQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Route, len(routes))
	for i, r := range routes {
		response[i] = routeFromReadModel(r)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateRoute handles POST /api/v1/routes.
func (s *Server) CreateRoute(ctx echo.Context) error {
	var body servers.NewRoute
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromBytes(body.DriverId[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	parcelIDs, err := toKernelUUIDs(body.Parcels)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAssignRouteCommand(driverID, parcelIDs)
	if err != nil {
		return s.fail(ctx, err)
	}

	r, err := s.handlers.AssignRoute.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, routeFromDomain(r))
}

// GetRoute handles GET /api/v1/routes/{id}.
func (s *Server) GetRoute(ctx echo.Context, id openapi_types.UUID) error {
	routeID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetRouteQuery(routeID)
	if err != nil {
		return s.fail(ctx, err)
	}

	r, err := s.handlers.GetRoute.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, routeFromReadModel(r))
}

// UpdateRoute handles PUT /api/v1/routes/{id}.
func (s *Server) UpdateRoute(ctx echo.Context, id openapi_types.UUID) error {
	var body servers.UpdateRoute
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	routeID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	parcelIDs, err := toKernelUUIDs(body.Parcels)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewReplaceRouteParcelsCommand(routeID, parcelIDs)
	if err != nil {
		return s.fail(ctx, err)
	}

	r, err := s.handlers.ReplaceRouteParcels.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, routeFromDomain(r))
}

// DeleteRoute handles DELETE /api/v1/routes/{id}.
func (s *Server) DeleteRoute(ctx echo.Context, id openapi_types.UUID) error {
	routeID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeleteRouteCommand(routeID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.DeleteRoute.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.MessageResponse{Message: "Route deleted"})
}

// RemoveParcelFromRoute handles DELETE /api/v1/routes/{id}/parcels/{parcelId}.
func (s *Server) RemoveParcelFromRoute(ctx echo.Context, id openapi_types.UUID, parcelID openapi_types.UUID) error {
	routeID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	parcel, err := kernel.UUIDFromBytes(parcelID[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRemoveParcelFromRouteCommand(routeID, parcel)
	if err != nil {
		return s.fail(ctx, err)
	}

	r, err := s.handlers.RemoveParcelFromRoute.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, routeFromDomain(r))
}
