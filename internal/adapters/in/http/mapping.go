package http

import (
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toKernelUUIDs(ids []openapi_types.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		kid, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		out = append(out, kid)
	}
	return out, nil
}

func fromKernelUUIDs(ids []kernel.UUID) []openapi_types.UUID {
	out := make([]openapi_types.UUID, len(ids))
	for i, id := range ids {
		out[i] = id.Bytes()
	}
	return out
}

func routeFromDomain(r *route.Route) servers.Route {
	var driverID *openapi_types.UUID
	if id := r.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	plan := r.Plan()
	waypoints := make([]servers.Waypoint, 0, len(plan.Waypoints()))
	for _, wp := range plan.Waypoints() {
		waypoints = append(waypoints, servers.Waypoint{
			ParcelId: wp.ParcelID().Bytes(),
			Location: servers.Location{Lng: wp.Location().Lng(), Lat: wp.Location().Lat()},
		})
	}

	return servers.Route{
		Id:       r.ID().Bytes(),
		DriverId: driverID,
		Parcels:  fromKernelUUIDs(r.ParcelIDs()),
		Plan: servers.Plan{
			Waypoints:       waypoints,
			DistanceMeters:  plan.DistanceMeters(),
			DurationSeconds: plan.DurationSeconds(),
		},
		Status: r.Status().String(),
	}
}

func routeFromReadModel(r queries.RouteResponse) servers.Route {
	var driverID *openapi_types.UUID
	if r.DriverID != nil {
		raw := r.DriverID.Bytes()
		driverID = &raw
	}

	waypoints := make([]servers.Waypoint, 0, len(r.Waypoints))
	for _, wp := range r.Waypoints {
		waypoints = append(waypoints, servers.Waypoint{
			ParcelId: wp.ParcelID.Bytes(),
			Location: servers.Location{Lng: wp.Lng, Lat: wp.Lat},
		})
	}

	return servers.Route{
		Id:       r.ID.Bytes(),
		DriverId: driverID,
		Parcels:  fromKernelUUIDs(r.ParcelIDs),
		Plan: servers.Plan{
			Waypoints:       waypoints,
			DistanceMeters:  r.DistanceMeters,
			DurationSeconds: r.DurationSeconds,
		},
		Status: r.Status,
	}
}
