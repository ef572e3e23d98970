package clock_test

import (
	"testing"
	"time"

	"dispatch/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
)

func TestSystem_NowIsUTC(t *testing.T) {
	now := clock.NewSystem().Now()

	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Second)
}

func TestManual(t *testing.T) {
	start := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	c := clock.NewManual(start)

	assert.Equal(t, start, c.Now())
	assert.Equal(t, start.Add(16*time.Minute), c.Advance(16*time.Minute))
	assert.Equal(t, start.Add(16*time.Minute), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}
