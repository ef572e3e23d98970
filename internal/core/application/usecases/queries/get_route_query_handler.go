package queries

import (
	"context"

	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetRouteQueryHandler struct {
	db *gorm.DB
}

func NewGetRouteQueryHandler(db *gorm.DB) GetRouteQueryHandler {
	return GetRouteQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the route does not exist.
func (h GetRouteQueryHandler) Handle(ctx context.Context, query GetRouteQuery) (RouteResponse, error) {
	if err := query.Validate(); err != nil {
		return RouteResponse{}, err
	}

	routes, err := loadRoutes(ctx, h.db, "WHERE id = ?", []any{query.RouteID().Bytes()})
	if err != nil {
		return RouteResponse{}, err
	}

	if len(routes) == 0 {
		return RouteResponse{}, errs.NewObjectNotFoundError("route", query.RouteID().String())
	}
	return routes[0], nil
}
