package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMaturityWindowOverlaps(t *testing.T) {
	w := MaturityWindow{Start: day(2026, 3, 10), End: day(2026, 3, 16)}

	t.Run("window inside range", func(t *testing.T) {
		assert.True(t, w.Overlaps(day(2026, 3, 1), day(2026, 3, 31)))
	})
	t.Run("range inside window", func(t *testing.T) {
		assert.True(t, w.Overlaps(day(2026, 3, 12), day(2026, 3, 13)))
	})
	t.Run("touching at window end counts", func(t *testing.T) {
		assert.True(t, w.Overlaps(day(2026, 3, 16), day(2026, 3, 20)))
	})
	t.Run("touching at window start counts", func(t *testing.T) {
		assert.True(t, w.Overlaps(day(2026, 3, 1), day(2026, 3, 10)))
	})
	t.Run("range entirely before", func(t *testing.T) {
		assert.False(t, w.Overlaps(day(2026, 2, 1), day(2026, 3, 9)))
	})
	t.Run("range entirely after", func(t *testing.T) {
		assert.False(t, w.Overlaps(day(2026, 3, 17), day(2026, 4, 1)))
	})
}

func TestQualityDistributionFraction(t *testing.T) {
	q := QualityDistribution{GradeA: 0.35, GradeB: 0.50, GradeC: 0.15}

	a, ok := q.Fraction("A")
	assert.True(t, ok)
	assert.Equal(t, 0.35, a)

	b, ok := q.Fraction("B")
	assert.True(t, ok)
	assert.Equal(t, 0.50, b)

	c, ok := q.Fraction("C")
	assert.True(t, ok)
	assert.Equal(t, 0.15, c)

	_, ok = q.Fraction("Premium")
	assert.False(t, ok)
}
