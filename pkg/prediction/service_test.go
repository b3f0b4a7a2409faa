package prediction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agrilink/entities"
	"agrilink/pkg/market"
	"agrilink/pkg/weather"
)

func newService(t *testing.T, w weather.Provider) *Service {
	t.Helper()
	tables := market.DefaultTables()
	forecaster := market.NewForecaster(market.StaticQuotes{Tables: tables}, tables, market.ZeroNoise, zap.NewNop().Sugar())
	return New(w, forecaster, FixedBaseline(), zap.NewNop().Sugar())
}

func TestPredict_YieldFormula(t *testing.T) {
	svc := newService(t, weather.NewStatic(1.0))
	planting := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	crop := &entities.Crop{CropType: "Tomato", AreaAcres: 1, PlantingDate: planting}
	fc := FarmerContext{SoilType: "Loamy", IrrigationType: "Drip", State: "Karnataka"}

	p, err := svc.Predict(context.Background(), crop, fc)
	require.NoError(t, err)

	// 1 * 1200 * 1.1 * 1.2 * 1.0
	assert.Equal(t, 1584.0, p.ExpectedYieldKg)
	assert.Equal(t, 0.85, p.Confidence)
	assert.Equal(t, planting.AddDate(0, 0, 72), p.MaturityWindow.Start)
	assert.Equal(t, planting.AddDate(0, 0, 78), p.MaturityWindow.End)
	assert.Equal(t, entities.QualityDistribution{GradeA: 0.35, GradeB: 0.50, GradeC: 0.15}, p.Quality)
	require.NotNil(t, p.Price)
	assert.Equal(t, "Tomato", p.Price.CropType)
}

func TestPredict_UnknownSoilAndIrrigationAreNeutral(t *testing.T) {
	svc := newService(t, weather.NewStatic(1.0))

	crop := &entities.Crop{
		CropType:     "Onion",
		AreaAcres:    2,
		PlantingDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	p, err := svc.Predict(context.Background(), crop, FarmerContext{SoilType: "Red", IrrigationType: "Canal"})
	require.NoError(t, err)

	assert.Equal(t, 2400.0, p.ExpectedYieldKg)
}

func TestPredict_ExtremeWeatherWidensUncertainty(t *testing.T) {
	t.Run("poor weather", func(t *testing.T) {
		svc := newService(t, weather.NewStatic(0.7))
		crop := &entities.Crop{CropType: "Tomato", AreaAcres: 1, PlantingDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

		p, err := svc.Predict(context.Background(), crop, FarmerContext{SoilType: "Loamy", IrrigationType: "Drip"})
		require.NoError(t, err)

		// round(1584 * 0.7)
		assert.Equal(t, 1109.0, p.ExpectedYieldKg)
		assert.Equal(t, 0.75, p.Confidence)
		assert.Equal(t, 0.7, p.WeatherImpact.Factor)
		assert.Equal(t, "Challenging", p.WeatherImpact.Description)
	})

	t.Run("exceptionally good weather", func(t *testing.T) {
		svc := newService(t, weather.NewStatic(1.2))
		crop := &entities.Crop{CropType: "Tomato", AreaAcres: 1, PlantingDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

		p, err := svc.Predict(context.Background(), crop, FarmerContext{})
		require.NoError(t, err)

		assert.Equal(t, 0.75, p.Confidence)
		assert.Equal(t, "Favorable", p.WeatherImpact.Description)
	})
}

func TestPredict_Validation(t *testing.T) {
	svc := newService(t, weather.NewStatic(1.0))

	t.Run("non-positive area", func(t *testing.T) {
		_, err := svc.Predict(context.Background(), &entities.Crop{
			CropType:     "Tomato",
			AreaAcres:    0,
			PlantingDate: time.Now(),
		}, FarmerContext{})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing planting date", func(t *testing.T) {
		_, err := svc.Predict(context.Background(), &entities.Crop{
			CropType:  "Tomato",
			AreaAcres: 1,
		}, FarmerContext{})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestExpectedHarvestDate(t *testing.T) {
	planting := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), ExpectedHarvestDate(planting))
}
