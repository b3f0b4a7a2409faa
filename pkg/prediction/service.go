package prediction

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"agrilink/entities"
	"agrilink/pkg/market"
	"agrilink/pkg/weather"
)

// ErrValidation marks structurally invalid prediction input. It is the only
// error Predict returns: provider failures are absorbed into neutral
// defaults.
var ErrValidation = errors.New("invalid prediction input")

const (
	baseYieldPerAcreKg = 1200
	maturityStartDays  = 72
	maturityEndDays    = 78
)

var soilMultiplier = map[string]float64{
	"Black": 1.2,
	"Loamy": 1.1,
	"Clay":  1.0,
	"Sandy": 0.9,
}

var irrigationMultiplier = map[string]float64{
	"Drip":      1.2,
	"Sprinkler": 1.1,
	"Flood":     1.0,
	"Rainfed":   0.8,
}

// FarmerContext is the slice of the farmer profile the predictor reads.
type FarmerContext struct {
	SoilType       string
	IrrigationType string
	State          string
	Location       *entities.GeoPoint
}

// Service scores a crop: expected yield, grade split, maturity window, and a
// delegated price forecast.
type Service struct {
	weather weather.Provider
	prices  *market.Forecaster
	quality QualityStrategy
	log     *zap.SugaredLogger
}

func New(w weather.Provider, prices *market.Forecaster, quality QualityStrategy, log *zap.SugaredLogger) *Service {
	return &Service{weather: w, prices: prices, quality: quality, log: log}
}

// Predict is pure apart from the weather and price lookups, both of which
// degrade to defaults rather than fail.
func (s *Service) Predict(ctx context.Context, crop *entities.Crop, fc FarmerContext) (*entities.Prediction, error) {
	if crop.AreaAcres <= 0 {
		return nil, fmt.Errorf("%w: area must be positive", ErrValidation)
	}
	if crop.PlantingDate.IsZero() {
		return nil, fmt.Errorf("%w: planting date required", ErrValidation)
	}

	loc := crop.FieldLocation
	if loc == nil {
		loc = fc.Location
	}
	weatherFactor := s.weather.Impact(ctx, loc)

	soil := multiplierOr(soilMultiplier, fc.SoilType)
	irrigation := multiplierOr(irrigationMultiplier, fc.IrrigationType)

	expectedYield := math.Round(crop.AreaAcres * baseYieldPerAcreKg * soil * irrigation * weatherFactor)

	window := entities.MaturityWindow{
		Start: crop.PlantingDate.AddDate(0, 0, maturityStartDays),
		End:   crop.PlantingDate.AddDate(0, 0, maturityEndDays),
	}

	// Wider uncertainty band under extreme weather.
	confidence := 0.85
	if weatherFactor < 0.8 || weatherFactor > 1.15 {
		confidence = 0.75
	}

	price := s.prices.Predict(ctx, crop.CropType, window.Start, fc.State)

	s.log.Debugw("yield prediction",
		"crop", crop.CropType,
		"base", crop.AreaAcres*baseYieldPerAcreKg,
		"soil", soil,
		"irrigation", irrigation,
		"weather", weatherFactor,
		"expected_yield_kg", expectedYield)

	return &entities.Prediction{
		ExpectedYieldKg: expectedYield,
		Confidence:      confidence,
		Quality: s.quality.Distribute(QualityInput{
			CropType: crop.CropType,
			SoilType: fc.SoilType,
		}),
		MaturityWindow: window,
		WeatherImpact: entities.WeatherImpactSummary{
			Factor:      weatherFactor,
			Description: weather.Describe(weatherFactor),
		},
		Price: &price,
	}, nil
}

// ExpectedHarvestDate is the rough single-date estimate shown on listings.
func ExpectedHarvestDate(plantingDate time.Time) time.Time {
	return plantingDate.AddDate(0, 0, 75)
}

func multiplierOr(table map[string]float64, key string) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return 1.0
}
