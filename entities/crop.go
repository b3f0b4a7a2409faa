package entities

import "time"

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

const (
	CropGrowing   = "Growing"
	CropReady     = "Ready"
	CropHarvested = "Harvested"
)

type Crop struct {
	CropID   uint `gorm:"primaryKey" json:"crop_id"`
	FarmerID uint `json:"farmer_id" gorm:"index"`

	CropType            string    `json:"crop_type"` // Tomato|Onion|Potato|Cabbage|Carrot
	Variety             string    `json:"variety"`
	AreaAcres           float64   `json:"area_acres"`
	PlantingDate        time.Time `json:"planting_date"`
	ExpectedHarvestDate time.Time `json:"expected_harvest_date"` // planting + 75 days
	FieldLocation       *GeoPoint `json:"field_location,omitempty" gorm:"serializer:json"`

	SeedType        string   `json:"seed_type"` // Hybrid|Traditional|Organic
	IrrigationPlan  string   `json:"irrigation_plan"`
	FertilizersUsed []string `json:"fertilizers_used,omitempty" gorm:"serializer:json"`
	PesticidesUsed  []string `json:"pesticides_used,omitempty" gorm:"serializer:json"`

	PreviousYieldKg *float64 `json:"previous_yield_kg,omitempty"`
	PreviousQuality string   `json:"previous_quality,omitempty"` // A|B|C

	Prediction      *Prediction      `json:"prediction,omitempty" gorm:"serializer:json"`
	ProgressUpdates []ProgressUpdate `json:"progress_updates,omitempty" gorm:"serializer:json"`

	Status              string  `json:"status"` // Growing|Ready|Harvested
	AllocatedQuantityKg float64 `json:"allocated_quantity_kg"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProgressUpdate struct {
	Date          time.Time `json:"date"`
	Health        string    `json:"health"` // Good|Moderate|Poor
	PestIssues    bool      `json:"pest_issues"`
	WeatherImpact string    `json:"weather_impact"` // No issues|Some damage|Major damage
	Photos        []string  `json:"photos,omitempty"`
}

// Prediction is the derived yield/quality/price estimate attached to a crop.
// It is optional on Crop: absence means the crop has not been scored yet and
// callers must branch on nil rather than read zero values.
type Prediction struct {
	ExpectedYieldKg float64              `json:"expected_yield_kg"`
	Confidence      float64              `json:"confidence"` // 0..1
	Quality         QualityDistribution  `json:"quality_distribution"`
	MaturityWindow  MaturityWindow       `json:"maturity_window"`
	WeatherImpact   WeatherImpactSummary `json:"weather_impact"`
	Price           *PricePrediction     `json:"price_prediction,omitempty"`
}

// QualityDistribution holds grade fractions. They should sum to ~1 but are
// not renormalized after weather adjustment.
type QualityDistribution struct {
	GradeA float64 `json:"grade_a"`
	GradeB float64 `json:"grade_b"`
	GradeC float64 `json:"grade_c"`
}

// Fraction returns the fraction for grade "A", "B" or "C".
func (q QualityDistribution) Fraction(grade string) (float64, bool) {
	switch grade {
	case "A":
		return q.GradeA, true
	case "B":
		return q.GradeB, true
	case "C":
		return q.GradeC, true
	}
	return 0, false
}

type MaturityWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether the window intersects [start, end].
func (w MaturityWindow) Overlaps(start, end time.Time) bool {
	return !w.End.Before(start) && !w.Start.After(end)
}

type WeatherImpactSummary struct {
	Factor      float64 `json:"factor"`
	Description string  `json:"description"` // Favorable|Normal|Challenging
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PricePrediction is the forecast for a crop's price at harvest time.
type PricePrediction struct {
	CropType           string     `json:"crop_type"`
	State              string     `json:"state"`
	CurrentPrice       float64    `json:"current_market_price"`
	CurrentPriceSource string     `json:"current_price_source"`
	PredictedPrice     float64    `json:"predicted_price"`
	PriceRange         PriceRange `json:"price_range"`
	Confidence         float64    `json:"confidence"`
	HarvestDate        time.Time  `json:"harvest_date"`
	DaysUntilHarvest   int        `json:"days_until_harvest"`
	Season             string     `json:"season"`
	SeasonalFactor     float64    `json:"seasonal_factor"`
	TrendFactor        float64    `json:"trend_factor"`
	SupplyDemandFactor float64    `json:"supply_demand_factor"`
	Trend              string     `json:"trend"`      // Upward|Downward|Stable
	Volatility         string     `json:"volatility"` // High|Moderate|Low
	Recommendation     string     `json:"recommendation"`
	PriceChangePct     float64    `json:"price_change_pct"`
	Degraded           bool       `json:"degraded,omitempty"`
}
