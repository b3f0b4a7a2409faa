package market

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStaticQuotes(t *testing.T) {
	q, err := StaticQuotes{Tables: DefaultTables()}.Current(context.Background(), "Onion", "Karnataka")
	require.NoError(t, err)

	assert.Equal(t, 28.0, q.CurrentPrice)
	assert.Equal(t, 15.0, q.PriceRange.Min)
	assert.Equal(t, 50.0, q.PriceRange.Max)
	assert.Equal(t, "Historical Average", q.Source)
	assert.Contains(t, q.Markets, "Bangalore")
}

func TestMandiEstimate(t *testing.T) {
	m := NewMandiQuotes("", DefaultTables(), ZeroNoise, zap.NewNop().Sugar())

	t.Run("neutral midweek off-season", func(t *testing.T) {
		// Wednesday in June: no seasonal or weekend adjustment, zero noise.
		m.now = func() time.Time { return time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC) }
		q := m.estimate("Tomato", "Karnataka")

		assert.Equal(t, 20.0, q.CurrentPrice)
		assert.Equal(t, "Estimated", q.Source)
		assert.Equal(t, 18.0, q.PriceRange.Min)
		assert.Equal(t, 22.0, q.PriceRange.Max)
	})

	t.Run("winter demand lifts the estimate", func(t *testing.T) {
		m.now = func() time.Time { return time.Date(2026, 12, 9, 12, 0, 0, 0, time.UTC) }
		q := m.estimate("Tomato", "Karnataka")
		assert.Equal(t, 23.0, q.CurrentPrice)
	})

	t.Run("monsoon glut cuts it", func(t *testing.T) {
		m.now = func() time.Time { return time.Date(2026, 8, 12, 12, 0, 0, 0, time.UTC) }
		q := m.estimate("Tomato", "Karnataka")
		assert.Equal(t, 18.0, q.CurrentPrice)
	})

	t.Run("weekend markup", func(t *testing.T) {
		m.now = func() time.Time { return time.Date(2026, 6, 13, 12, 0, 0, 0, time.UTC) }
		q := m.estimate("Tomato", "Karnataka")
		assert.Equal(t, 21.0, q.CurrentPrice)
	})
}
