package postgres_test

import (
	"testing"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

func newDriver(t *testing.T) *driver.Driver {
	t.Helper()
	loc, err := kernel.NewLocation(79.0, 21.0)
	require.NoError(t, err)
	d, err := driver.NewDriver(kernel.NewUUID(), "Ravi", "+15550199", loc)
	require.NoError(t, err)
	return d
}
