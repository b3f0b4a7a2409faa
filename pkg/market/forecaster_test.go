package market

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type failingQuotes struct{}

func (failingQuotes) Current(context.Context, string, string) (Quote, error) {
	return Quote{}, errors.New("upstream down")
}

func testForecaster(quotes QuoteProvider, now time.Time) *Forecaster {
	f := NewForecaster(quotes, DefaultTables(), ZeroNoise, zap.NewNop().Sugar())
	f.now = func() time.Time { return now }
	return f
}

func TestPredict_MultipliersCompose(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	harvest := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	f := testForecaster(StaticQuotes{Tables: DefaultTables()}, now)

	p := f.Predict(context.Background(), "Tomato", harvest, "Karnataka")

	assert.Equal(t, 30, p.DaysUntilHarvest)
	assert.Equal(t, "winter", p.Season)
	assert.Equal(t, 20.0, p.CurrentPrice)
	assert.Equal(t, 1.2, p.SeasonalFactor)
	// 30/75 sits mid-cycle and zero noise pins the jitter at exactly 1.
	assert.Equal(t, 1.0, p.TrendFactor)
	// January carries no festival or summer uplift, only the state factor.
	assert.Equal(t, 1.05, p.SupplyDemandFactor)
	// 20 * 1.2 * 1.0 * 1.05
	assert.Equal(t, 25.2, p.PredictedPrice)
	assert.Equal(t, 26.0, p.PriceChangePct)
	assert.Equal(t, "Stable", p.Trend)
	assert.Equal(t, "Moderate", p.Volatility)
	// tU = 30/120 = 0.25, confidence = 1 - 0.25*0.6
	assert.Equal(t, 0.85, p.Confidence)
	// band-clamped +-10% range at volatility 0.4*0.25
	assert.Equal(t, 22.68, p.PriceRange.Min)
	assert.Equal(t, 27.72, p.PriceRange.Max)
	assert.False(t, p.Degraded)
}

func TestPredict_TrendFactorByCyclePosition(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := testForecaster(StaticQuotes{Tables: DefaultTables()}, now)

	t.Run("late cycle tightening", func(t *testing.T) {
		// 70 of a 75 day tomato cycle
		p := f.Predict(context.Background(), "Tomato", now.AddDate(0, 0, 70), "Karnataka")
		assert.Equal(t, 1.08, p.TrendFactor)
		assert.Equal(t, "Upward", p.Trend)
	})

	t.Run("early cycle oversupply", func(t *testing.T) {
		p := f.Predict(context.Background(), "Tomato", now.AddDate(0, 0, 10), "Karnataka")
		assert.Equal(t, 0.95, p.TrendFactor)
		assert.Equal(t, "Stable", p.Trend)
	})
}

func TestPredict_SupplyDemandByMonthAndState(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := testForecaster(StaticQuotes{Tables: DefaultTables()}, now)

	t.Run("festival window", func(t *testing.T) {
		p := f.Predict(context.Background(), "Potato", time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC), "Maharashtra")
		assert.InDelta(t, 1.15*1.08, p.SupplyDemandFactor, 0.005)
	})

	t.Run("summer window", func(t *testing.T) {
		p := f.Predict(context.Background(), "Potato", time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC), "Tamil Nadu")
		assert.InDelta(t, 1.1*1.03, p.SupplyDemandFactor, 0.005)
	})

	t.Run("unknown state is neutral", func(t *testing.T) {
		p := f.Predict(context.Background(), "Potato", time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC), "Kerala")
		assert.Equal(t, 1.0, p.SupplyDemandFactor)
	})
}

func TestPredict_ConfidenceBounds(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := testForecaster(StaticQuotes{Tables: DefaultTables()}, now)

	t.Run("harvest today caps at 0.95", func(t *testing.T) {
		p := f.Predict(context.Background(), "Tomato", now, "Karnataka")
		assert.Equal(t, 0.95, p.Confidence)
	})

	t.Run("distant harvest floors uncertainty at half", func(t *testing.T) {
		p := f.Predict(context.Background(), "Tomato", now.AddDate(0, 0, 200), "Karnataka")
		// tU capped at 0.5 so confidence never drops below 0.7
		assert.Equal(t, 0.7, p.Confidence)
	})
}

func TestPredict_DegradedFallback(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	harvest := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	f := testForecaster(failingQuotes{}, now)

	p := f.Predict(context.Background(), "Onion", harvest, "Karnataka")

	assert.True(t, p.Degraded)
	assert.Equal(t, "Historical Average", p.CurrentPriceSource)
	assert.Equal(t, 28.0, p.CurrentPrice)
	assert.Equal(t, 28.0, p.PredictedPrice)
	assert.Equal(t, 15.0, p.PriceRange.Min)
	assert.Equal(t, 50.0, p.PriceRange.Max)
	assert.Equal(t, 0.5, p.Confidence)
	assert.Equal(t, "monsoon", p.Season)
	assert.Equal(t, "Stable", p.Trend)
}

func TestPredict_Recommendations(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := testForecaster(StaticQuotes{Tables: DefaultTables()}, now)

	t.Run("large rise far out", func(t *testing.T) {
		// Onion in November: seasonal 1.3, festival 1.15, Karnataka 1.05.
		p := f.Predict(context.Background(), "Onion", time.Date(2026, 11, 10, 0, 0, 0, 0, time.UTC), "Karnataka")
		assert.Contains(t, p.Recommendation, "expected to rise")
	})

	t.Run("favorable season near harvest", func(t *testing.T) {
		// Tomato in winter, 20 days out: change > 15% but too close for the
		// rise advice, so the seasonal one wins.
		p := f.Predict(context.Background(), "Tomato", now.AddDate(0, 0, 20), "Karnataka")
		assert.Contains(t, p.Recommendation, "Favorable season")
	})
}
