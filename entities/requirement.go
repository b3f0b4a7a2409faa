package entities

import "time"

const (
	RequirementActive    = "Active"
	RequirementCompleted = "Completed"
	RequirementCancelled = "Cancelled"
)

const (
	FulfillmentPending  = "Pending"
	FulfillmentPartial  = "Partial"
	FulfillmentComplete = "Complete"
)

type Requirement struct {
	RequirementID uint `gorm:"primaryKey" json:"requirement_id"`
	CompanyID     uint `json:"company_id" gorm:"index"`

	CropType     string       `json:"crop_type"`
	QualityGrade string       `json:"quality_grade"` // A|B|C|Any
	QualitySpecs QualitySpecs `json:"quality_specs" gorm:"serializer:json"`
	Quantity     DemandedQty  `json:"quantity" gorm:"serializer:json"`
	Pricing      Pricing      `json:"pricing" gorm:"serializer:json"`
	Logistics    Logistics    `json:"logistics" gorm:"serializer:json"`
	Timeline     Timeline     `json:"timeline" gorm:"serializer:json"`
	Preferences  Preferences  `json:"preferences" gorm:"serializer:json"`

	Fulfillment Fulfillment `json:"fulfillment" gorm:"embedded;embeddedPrefix:fulfillment_"`

	Status string `json:"status"` // Active|Completed|Cancelled

	CreatedAt time.Time
	UpdatedAt time.Time
}

type QualitySpecs struct {
	MinSizeMM        *float64 `json:"min_size_mm,omitempty"`
	MaxSizeMM        *float64 `json:"max_size_mm,omitempty"`
	BlemishTolerance string   `json:"blemish_tolerance,omitempty"` // None|Minor|Moderate
	ColorRequirement string   `json:"color_requirement,omitempty"`
	Photos           []string `json:"photos,omitempty"`
}

type DemandedQty struct {
	TotalKg         float64  `json:"total_kg"`
	DeliveryPattern string   `json:"delivery_pattern"` // Daily|Weekly|One-time
	DailyAmountKg   *float64 `json:"daily_amount_kg,omitempty"`
	DurationDays    *int     `json:"duration_days,omitempty"`
}

type Pricing struct {
	OfferPrice   float64 `json:"offer_price"` // per kg
	PriceType    string  `json:"price_type"`  // Fixed|Market-linked
	PaymentTerms string  `json:"payment_terms,omitempty"`
}

type DeliveryLocation struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

type Logistics struct {
	DeliveryLocation      DeliveryLocation `json:"delivery_location"`
	PreferredDeliveryTime string           `json:"preferred_delivery_time,omitempty"`
	TransportArrangement  string           `json:"transport_arrangement,omitempty"` // Company arranges|Farmer arranges|Platform arranges
}

type Timeline struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Flexible  bool      `json:"flexible"`
}

type Preferences struct {
	MaxFarmers             *int     `json:"max_farmers,omitempty"`
	MinQuantityPerFarmerKg *float64 `json:"min_quantity_per_farmer_kg,omitempty"`
	PreferredRegions       []string `json:"preferred_regions,omitempty"`
	CertificationRequired  []string `json:"certification_required,omitempty"`
}

type Fulfillment struct {
	TotalRequiredKg float64 `json:"total_required_kg"`
	MatchedKg       float64 `json:"matched_kg"`
	Percentage      float64 `json:"percentage"`
	Status          string  `json:"status"` // Pending|Partial|Complete
}

// Apply records matched kilograms and recomputes percentage and status.
// Complete at >= 90% fulfilled.
func (f *Fulfillment) Apply(kg float64) {
	f.MatchedKg += kg
	if f.TotalRequiredKg > 0 {
		f.Percentage = f.MatchedKg / f.TotalRequiredKg * 100
	}
	if f.Percentage >= 90 {
		f.Status = FulfillmentComplete
	} else if f.Percentage > 0 {
		f.Status = FulfillmentPartial
	}
}
