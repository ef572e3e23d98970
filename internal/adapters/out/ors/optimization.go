package ors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/ports"
	"dispatch/internal/metrics"
	"dispatch/internal/pkg/errs"
)

type optimizationRequest struct {
	Jobs     []job     `json:"jobs"`
	Vehicles []vehicle `json:"vehicles"`
}

type job struct {
	ID       int        `json:"id"`
	Location [2]float64 `json:"location"`
}

type vehicle struct {
	ID      int        `json:"id"`
	Profile string     `json:"profile"`
	Start   [2]float64 `json:"start"`
	End     [2]float64 `json:"end"`
}

type optimizationResponse struct {
	Code    int     `json:"code"`
	Error   string  `json:"error"`
	Summary summary `json:"summary"`
	Routes  []struct {
		Vehicle int    `json:"vehicle"`
		Steps   []step `json:"steps"`
	} `json:"routes"`
	Unassigned []struct {
		ID int `json:"id"`
	} `json:"unassigned"`
}

type summary struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

type step struct {
	Type string `json:"type"`
	Job  int    `json:"job"`
}

var _ ports.RouteOptimizer = (*Optimizer)(nil)

// Optimize asks the provider for a single-vehicle tour through stops that
// starts and ends at depot. Job ids are the stop index plus one.
func (o *Optimizer) Optimize(
	ctx context.Context,
	stops []route.Waypoint,
	depot kernel.Location,
) (_ route.Plan, err error) {
	if len(stops) == 0 {
		return route.Plan{}, errs.NewValueIsRequiredError("stops")
	}
	if err = depot.Validate(); err != nil {
		return route.Plan{}, err
	}

	start := time.Now()
	defer func() {
		metrics.OptimizationDuration.Observe(time.Since(start).Seconds())
	}()

	payload, err := json.Marshal(buildRequest(stops, depot, o.profile))
	if err != nil {
		return route.Plan{}, fmt.Errorf("%w: marshal request: %v", ports.ErrOptimizationFailed, err)
	}

	body, err := o.postWithRetry(ctx, o.baseURL+"/optimization", payload)
	if err != nil {
		return route.Plan{}, fmt.Errorf("%w: %w", ports.ErrOptimizationFailed, err)
	}

	var resp optimizationResponse
	if err = json.Unmarshal(body, &resp); err != nil {
		return route.Plan{}, fmt.Errorf("%w: decode response: %v", ports.ErrOptimizationFailed, err)
	}

	plan, err := toPlan(resp, stops)
	if err != nil {
		return route.Plan{}, fmt.Errorf("%w: %w", ports.ErrOptimizationFailed, err)
	}
	return plan, nil
}

func buildRequest(stops []route.Waypoint, depot kernel.Location, profile string) optimizationRequest {
	jobs := make([]job, 0, len(stops))
	for i, s := range stops {
		jobs = append(jobs, job{ID: i + 1, Location: s.Location().LngLat()})
	}

	return optimizationRequest{
		Jobs: jobs,
		Vehicles: []vehicle{{
			ID:      1,
			Profile: profile,
			Start:   depot.LngLat(),
			End:     depot.LngLat(),
		}},
	}
}

// toPlan maps job steps back to the stops they were built from. Start and
// end steps are dropped.
func toPlan(resp optimizationResponse, stops []route.Waypoint) (route.Plan, error) {
	if resp.Code != 0 {
		return route.Plan{}, fmt.Errorf("provider code %d: %s", resp.Code, resp.Error)
	}
	if len(resp.Unassigned) > 0 {
		return route.Plan{}, fmt.Errorf("%d stops left unassigned", len(resp.Unassigned))
	}
	if len(resp.Routes) == 0 {
		return route.Plan{}, errors.New("response has no routes")
	}

	waypoints := make([]route.Waypoint, 0, len(stops))
	seen := make(map[int]struct{}, len(stops))
	for _, s := range resp.Routes[0].Steps {
		if s.Type != "job" {
			continue
		}
		if s.Job < 1 || s.Job > len(stops) {
			return route.Plan{}, fmt.Errorf("unknown job id %d", s.Job)
		}
		if _, dup := seen[s.Job]; dup {
			return route.Plan{}, fmt.Errorf("job id %d visited twice", s.Job)
		}
		seen[s.Job] = struct{}{}
		waypoints = append(waypoints, stops[s.Job-1])
	}

	if len(waypoints) != len(stops) {
		return route.Plan{}, fmt.Errorf("route visits %d of %d stops", len(waypoints), len(stops))
	}

	return route.NewPlan(waypoints, resp.Summary.Distance, resp.Summary.Duration)
}
