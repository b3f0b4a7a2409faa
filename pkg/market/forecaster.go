package market

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"agrilink/entities"
)

// Noise supplies uniform values in [0, 1). Injected so forecasts are
// deterministic under test.
type Noise func() float64

// NewNoise wraps a seeded source.
func NewNoise(seed int64) Noise {
	r := rand.New(rand.NewSource(seed))
	return r.Float64
}

// ZeroNoise pins every draw to the midpoint, which makes the trend jitter
// collapse to exactly 1.0.
func ZeroNoise() float64 { return 0.5 }

// Forecaster predicts a crop's price at harvest time from the current market
// price and the seasonal/trend/supply-demand multipliers.
type Forecaster struct {
	quotes QuoteProvider
	tables *Tables
	noise  Noise
	log    *zap.SugaredLogger
	now    func() time.Time
}

func NewForecaster(quotes QuoteProvider, tables *Tables, noise Noise, log *zap.SugaredLogger) *Forecaster {
	return &Forecaster{quotes: quotes, tables: tables, noise: noise, log: log, now: time.Now}
}

// Predict never fails: if the current price cannot be obtained the crop's
// historical average is returned with confidence 0.5 and the degraded flag
// set.
func (f *Forecaster) Predict(ctx context.Context, cropType string, harvestDate time.Time, state string) entities.PricePrediction {
	band := f.tables.Band(cropType)

	quote, err := f.quotes.Current(ctx, cropType, state)
	if err != nil {
		f.log.Warnw("price quote unavailable, falling back to historical average",
			"crop", cropType, "state", state, "err", err)
		return entities.PricePrediction{
			CropType:           cropType,
			State:              state,
			CurrentPrice:       band.Avg,
			CurrentPriceSource: "Historical Average",
			PredictedPrice:     band.Avg,
			PriceRange:         entities.PriceRange{Min: band.Min, Max: band.Max},
			Confidence:         0.5,
			HarvestDate:        harvestDate,
			Season:             SeasonOf(harvestDate.Month()),
			SeasonalFactor:     1.0,
			TrendFactor:        1.0,
			SupplyDemandFactor: 1.0,
			Trend:              "Stable",
			Volatility:         volatilityLabel(band.Volatility),
			Recommendation:     "Using baseline prediction due to data unavailability.",
			Degraded:           true,
		}
	}
	current := quote.CurrentPrice

	days := int(math.Ceil(harvestDate.Sub(f.now()).Hours() / 24))

	seasonal := f.tables.SeasonalFactor(cropType, harvestDate.Month())
	trend := f.trendFactor(cropType, days)
	supplyDemand := f.supplyDemandFactor(harvestDate.Month(), state)

	predicted := current * seasonal * trend * supplyDemand

	timeUncertainty := math.Min(0.5, math.Max(0, float64(days))/120)
	volatility := band.Volatility * timeUncertainty

	minPrice := math.Max(band.Min, predicted*(1-volatility))
	maxPrice := math.Min(band.Max, predicted*(1+volatility))

	confidence := clamp(1-timeUncertainty*0.6, 0.6, 0.95)

	changePct := math.Round((predicted - current) / current * 100)

	p := entities.PricePrediction{
		CropType:           cropType,
		State:              state,
		CurrentPrice:       current,
		CurrentPriceSource: quote.Source,
		PredictedPrice:     round2(predicted),
		PriceRange:         entities.PriceRange{Min: round2(minPrice), Max: round2(maxPrice)},
		Confidence:         round2(confidence),
		HarvestDate:        harvestDate,
		DaysUntilHarvest:   days,
		Season:             SeasonOf(harvestDate.Month()),
		SeasonalFactor:     round2(seasonal),
		TrendFactor:        round2(trend),
		SupplyDemandFactor: round2(supplyDemand),
		Trend:              trendLabel(trend),
		Volatility:         volatilityLabel(band.Volatility),
		Recommendation:     recommendation(predicted, current, seasonal, days),
		PriceChangePct:     changePct,
	}

	f.log.Debugw("price prediction complete",
		"crop", cropType, "current", current, "predicted", p.PredictedPrice, "change_pct", changePct)
	return p
}

// trendFactor models supply over the crop cycle: late in the cycle supply
// tightens, early there is oversupply, in between prices drift within +/-3%.
func (f *Forecaster) trendFactor(cropType string, daysUntilHarvest int) float64 {
	cycle := f.tables.CycleDays(cropType)
	cycleFactor := float64(daysUntilHarvest) / float64(cycle)
	if cycleFactor > 0.8 {
		return 1.08
	}
	if cycleFactor < 0.3 {
		return 0.95
	}
	return 1.0 + (f.noise()*0.06 - 0.03)
}

func (f *Forecaster) supplyDemandFactor(harvestMonth time.Month, state string) float64 {
	factor := 1.0
	// Diwali/Christmas demand.
	if harvestMonth >= time.October && harvestMonth <= time.December {
		factor *= 1.15
	}
	// Summer supply constraint.
	if harvestMonth >= time.March && harvestMonth <= time.May {
		factor *= 1.1
	}
	return factor * f.tables.StateFactor(state)
}

func trendLabel(trend float64) string {
	switch {
	case trend > 1.05:
		return "Upward"
	case trend < 0.95:
		return "Downward"
	}
	return "Stable"
}

func volatilityLabel(v float64) string {
	switch {
	case v > 0.4:
		return "High"
	case v > 0.25:
		return "Moderate"
	}
	return "Low"
}

func recommendation(predicted, current, seasonal float64, daysUntil int) string {
	change := (predicted - current) / current * 100
	switch {
	case change > 15 && daysUntil > 30:
		return "Price expected to rise significantly. Plan for harvest at the predicted time."
	case change < -15 && daysUntil > 30:
		return "Price decline expected. Consider early harvest if possible, or storage options."
	case seasonal > 1.15:
		return "Favorable season. Market conditions are good for this crop."
	case seasonal < 0.9:
		return "Off-season harvest. Consider value addition or direct marketing to improve margins."
	}
	return "Normal market conditions. Proceed with the standard harvest and marketing plan."
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
