// Package servers holds the wire types and echo routing of the HTTP API
// described in api/openapi.yaml, laid out the way oapi-codegen emits them.
package servers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error defines model for Error.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse defines model for MessageResponse.
type MessageResponse struct {
	Message string `json:"message"`
}

// PingRequest defines model for PingRequest.
type PingRequest struct {
	ParcelId openapi_types.UUID `json:"parcelId"`
}

// PingResponse defines model for PingResponse.
type PingResponse struct {
	Message        string             `json:"message"`
	NotificationId openapi_types.UUID `json:"notificationId"`
}

// ResponseRequest defines model for ResponseRequest.
type ResponseRequest struct {
	NotificationId openapi_types.UUID `json:"notificationId"`
	Response       string             `json:"response"`
}

// Notification defines model for Notification.
type Notification struct {
	CreatedAt time.Time          `json:"createdAt"`
	Deadline  time.Time          `json:"deadline"`
	Id        openapi_types.UUID `json:"id"`
	ParcelId  openapi_types.UUID `json:"parcelId"`
	Status    string             `json:"status"`
}

// NewRoute defines model for NewRoute.
type NewRoute struct {
	DriverId openapi_types.UUID   `json:"driverId"`
	Parcels  []openapi_types.UUID `json:"parcels"`
}

// UpdateRoute defines model for UpdateRoute.
type UpdateRoute struct {
	Parcels []openapi_types.UUID `json:"parcels"`
}

// Location defines model for Location.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Waypoint defines model for Waypoint.
type Waypoint struct {
	Location Location           `json:"location"`
	ParcelId openapi_types.UUID `json:"parcelId"`
}

// Plan defines model for Plan.
type Plan struct {
	DistanceMeters  float64    `json:"distanceMeters"`
	DurationSeconds float64    `json:"durationSeconds"`
	Waypoints       []Waypoint `json:"waypoints"`
}

// Route defines model for Route.
type Route struct {
	DriverId *openapi_types.UUID  `json:"driverId"`
	Id       openapi_types.UUID   `json:"id"`
	Parcels  []openapi_types.UUID `json:"parcels"`
	Plan     Plan                 `json:"plan"`
	Status   string               `json:"status"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Text the customer of a parcel and open a confirmation window
	// (POST /api/v1/notifications/ping)
	CreatePing(ctx echo.Context) error
	// Record the customer's answer to a ping
	// (POST /api/v1/notifications/response)
	RecordResponse(ctx echo.Context) error
	// Read a confirmation ledger entry
	// (GET /api/v1/notifications/{id})
	GetNotification(ctx echo.Context, id openapi_types.UUID) error
	// List routes with their plans
	// (GET /api/v1/routes)
	GetRoutes(ctx echo.Context) error
	// Assign parcels to a driver on a new optimized route
	// (POST /api/v1/routes)
	CreateRoute(ctx echo.Context) error
	// Read one route
	// (GET /api/v1/routes/{id})
	GetRoute(ctx echo.Context, id openapi_types.UUID) error
	// Replace the parcel set of a route and re-optimize it
	// (PUT /api/v1/routes/{id})
	UpdateRoute(ctx echo.Context, id openapi_types.UUID) error
	// Delete a route and clear the parcels that referenced it
	// (DELETE /api/v1/routes/{id})
	DeleteRoute(ctx echo.Context, id openapi_types.UUID) error
	// Take one parcel off a route and re-optimize the rest
	// (DELETE /api/v1/routes/{id}/parcels/{parcelId})
	RemoveParcelFromRoute(ctx echo.Context, id openapi_types.UUID, parcelId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreatePing converts echo context to params.
func (w *ServerInterfaceWrapper) CreatePing(ctx echo.Context) error {
	return w.Handler.CreatePing(ctx)
}

// RecordResponse converts echo context to params.
func (w *ServerInterfaceWrapper) RecordResponse(ctx echo.Context) error {
	return w.Handler.RecordResponse(ctx)
}

// GetNotification converts echo context to params.
func (w *ServerInterfaceWrapper) GetNotification(ctx echo.Context) error {
	id, err := bindUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.GetNotification(ctx, id)
}

// GetRoutes converts echo context to params.
func (w *ServerInterfaceWrapper) GetRoutes(ctx echo.Context) error {
	return w.Handler.GetRoutes(ctx)
}

// CreateRoute converts echo context to params.
func (w *ServerInterfaceWrapper) CreateRoute(ctx echo.Context) error {
	return w.Handler.CreateRoute(ctx)
}

// GetRoute converts echo context to params.
func (w *ServerInterfaceWrapper) GetRoute(ctx echo.Context) error {
	id, err := bindUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.GetRoute(ctx, id)
}

// UpdateRoute converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateRoute(ctx echo.Context) error {
	id, err := bindUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.UpdateRoute(ctx, id)
}

// DeleteRoute converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteRoute(ctx echo.Context) error {
	id, err := bindUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.DeleteRoute(ctx, id)
}

// RemoveParcelFromRoute converts echo context to params.
func (w *ServerInterfaceWrapper) RemoveParcelFromRoute(ctx echo.Context) error {
	id, err := bindUUID(ctx, "id")
	if err != nil {
		return err
	}

	parcelId, err := bindUUID(ctx, "parcelId")
	if err != nil {
		return err
	}
	return w.Handler.RemoveParcelFromRoute(ctx, id, parcelId)
}

func bindUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var value openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return value, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to
// the paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/notifications/ping", wrapper.CreatePing)
	router.POST(baseURL+"/api/v1/notifications/response", wrapper.RecordResponse)
	router.GET(baseURL+"/api/v1/notifications/:id", wrapper.GetNotification)
	router.GET(baseURL+"/api/v1/routes", wrapper.GetRoutes)
	router.POST(baseURL+"/api/v1/routes", wrapper.CreateRoute)
	router.GET(baseURL+"/api/v1/routes/:id", wrapper.GetRoute)
	router.PUT(baseURL+"/api/v1/routes/:id", wrapper.UpdateRoute)
	router.DELETE(baseURL+"/api/v1/routes/:id", wrapper.DeleteRoute)
	router.DELETE(baseURL+"/api/v1/routes/:id/parcels/:parcelId", wrapper.RemoveParcelFromRoute)
}
