package route_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planFor(t *testing.T, parcelIDs ...kernel.UUID) route.Plan {
	t.Helper()
	waypoints := make([]route.Waypoint, 0, len(parcelIDs))
	for i, id := range parcelIDs {
		loc, err := kernel.NewLocation(79+float64(i)/100, 21)
		require.NoError(t, err)
		wp, err := route.NewWaypoint(loc, id)
		require.NoError(t, err)
		waypoints = append(waypoints, wp)
	}
	plan, err := route.NewPlan(waypoints, 1200, 300)
	require.NoError(t, err)
	return plan
}

func TestNewRoute(t *testing.T) {
	driverID := kernel.NewUUID()
	p1, p2 := kernel.NewUUID(), kernel.NewUUID()

	t.Run("should create pending route", func(t *testing.T) {
		r, err := route.NewRoute(kernel.NewUUID(), driverID, []kernel.UUID{p1, p2}, planFor(t, p2, p1))

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.Equal(t, route.Pending, r.Status())
		assert.True(t, r.DriverID().IsEqual(driverID))
		assert.Equal(t, []kernel.UUID{p1, p2}, r.ParcelIDs())
		assert.Len(t, r.Plan().Waypoints(), 2)
		assert.InDelta(t, 1200, r.Plan().DistanceMeters(), 0)
	})

	t.Run("should reject empty parcel list", func(t *testing.T) {
		_, err := route.NewRoute(kernel.NewUUID(), driverID, nil, route.EmptyPlan())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject duplicate parcels", func(t *testing.T) {
		_, err := route.NewRoute(kernel.NewUUID(), driverID, []kernel.UUID{p1, p1}, route.EmptyPlan())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject plan with foreign parcel", func(t *testing.T) {
		_, err := route.NewRoute(kernel.NewUUID(), driverID, []kernel.UUID{p1}, planFor(t, p1, p2))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRoute_RemoveParcel(t *testing.T) {
	p1, p2 := kernel.NewUUID(), kernel.NewUUID()
	r, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), []kernel.UUID{p1, p2}, planFor(t, p1, p2))
	require.NoError(t, err)

	assert.True(t, r.RemoveParcel(p1))
	assert.False(t, r.Contains(p1))
	assert.Equal(t, []kernel.UUID{p2}, r.ParcelIDs())
	for _, wp := range r.Plan().Waypoints() {
		assert.False(t, wp.ParcelID().IsEqual(p1), "plan must not keep removed parcel")
	}

	assert.False(t, r.RemoveParcel(p1), "second removal is a no-op")
	assert.False(t, r.RemoveParcel(kernel.NewUUID()))

	assert.True(t, r.RemoveParcel(p2))
	assert.Empty(t, r.ParcelIDs())
	assert.True(t, r.Plan().IsEmpty())
	assert.Zero(t, r.Plan().DistanceMeters())
}

func TestRoute_ReplaceParcels(t *testing.T) {
	p1, p2, p3 := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	r, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), []kernel.UUID{p1, p2}, planFor(t, p1, p2))
	require.NoError(t, err)

	require.NoError(t, r.ReplaceParcels([]kernel.UUID{p2, p3}, planFor(t, p3, p2)))
	assert.Equal(t, []kernel.UUID{p2, p3}, r.ParcelIDs())

	err = r.ReplaceParcels([]kernel.UUID{p1}, planFor(t, p2))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, []kernel.UUID{p2, p3}, r.ParcelIDs(), "failed replace leaves route untouched")

	require.ErrorIs(t, r.ReplaceParcels(nil, route.EmptyPlan()), errs.ErrValueIsRequired)
}

func TestRestoreRoute_AllowsEmptyParcelSet(t *testing.T) {
	r, err := route.RestoreRoute(kernel.NewUUID(), nil, nil, route.EmptyPlan(), route.Active)

	require.NoError(t, err)
	assert.Nil(t, r.DriverID())
	assert.Equal(t, "active", r.Status().String())

	_, err = route.RestoreRoute(kernel.NewUUID(), nil, nil, route.EmptyPlan(), route.Unknown)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewPlan_RejectsNegativeTotals(t *testing.T) {
	_, err := route.NewPlan(nil, -1, 0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = route.NewPlan(nil, 0, -1)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewWaypoint_RequiresLocationAndParcel(t *testing.T) {
	_, err := route.NewWaypoint(kernel.Location{}, kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
