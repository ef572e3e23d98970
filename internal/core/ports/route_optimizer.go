package ports

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
)

// ErrOptimizationFailed wraps every transport or provider failure of a RouteOptimizer.
var ErrOptimizationFailed = errors.New("route optimization failed")

// RouteOptimizer orders stops into a single-vehicle tour that starts and
// ends at depot.
//
// An empty stop list is a validation error and never reaches the provider.
// Every other failure wraps ErrOptimizationFailed.
type RouteOptimizer interface {
	Optimize(ctx context.Context, stops []route.Waypoint, depot kernel.Location) (route.Plan, error)
}
