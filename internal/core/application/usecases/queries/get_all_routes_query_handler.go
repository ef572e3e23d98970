package queries

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetAllRoutesQueryHandler lists every route with its plan.
//
// Example:
//
//	handler := NewGetAllRoutesQueryHandler(db)
//	routes, err := handler.Handle(ctx, NewGetAllRoutesQuery())
type GetAllRoutesQueryHandler struct {
	db *gorm.DB
}

func NewGetAllRoutesQueryHandler(db *gorm.DB) GetAllRoutesQueryHandler {
	return GetAllRoutesQueryHandler{db: db}
}

func (h GetAllRoutesQueryHandler) Handle(ctx context.Context, query GetAllRoutesQuery) ([]RouteResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return loadRoutes(ctx, h.db, "", nil)
}

// loadRoutes reads routes, optionally restricted to one id, and attaches
// their waypoints in plan order.
func loadRoutes(ctx context.Context, db *gorm.DB, where string, args []any) ([]RouteResponse, error) {
	routes := make([]RouteResponse, 0)

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			driver_id,
			parcel_ids,
			distance_meters,
			duration_seconds,
			status
		FROM routes
		`+where+`
		ORDER BY id
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			r         RouteResponse
			id        uuid.UUID
			driverID  uuid.NullUUID
			parcelIDs pq.StringArray
			status    int
		)

		if err = rows.Scan(&id, &driverID, &parcelIDs, &r.DistanceMeters, &r.DurationSeconds, &status); err != nil {
			return nil, err
		}

		if r.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}

		if driverID.Valid {
			dID, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			r.DriverID = &dID
		}

		if r.ParcelIDs, err = kernel.UUIDsFromStrings(parcelIDs); err != nil {
			return nil, err
		}

		r.Status = route.Status(status).String()
		r.Waypoints = make([]WaypointResponse, 0)
		index[id] = len(routes)
		routes = append(routes, r)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(routes) == 0 {
		return routes, nil
	}

	if err = attachWaypoints(ctx, db, routes, index); err != nil {
		return nil, err
	}
	return routes, nil
}

func attachWaypoints(ctx context.Context, db *gorm.DB, routes []RouteResponse, index map[uuid.UUID]int) error {
	ids := make([]uuid.UUID, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			route_id,
			parcel_id,
			lng,
			lat
		FROM route_waypoints
		WHERE route_id IN ?
		ORDER BY route_id, seq
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			routeID  uuid.UUID
			parcelID uuid.UUID
			wp       WaypointResponse
		)

		if err = rows.Scan(&routeID, &parcelID, &wp.Lng, &wp.Lat); err != nil {
			return err
		}

		i, ok := index[routeID]
		if !ok {
			return fmt.Errorf("waypoint for unknown route %s", routeID)
		}

		if wp.ParcelID, err = kernel.UUIDFromBytes(parcelID[:]); err != nil {
			return err
		}
		routes[i].Waypoints = append(routes[i].Waypoints, wp)
	}

	return rows.Err()
}
