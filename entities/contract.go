package entities

import (
	"math"
	"time"

	"gorm.io/gorm"
)

const (
	ContractPending    = "Pending"
	ContractConfirmed  = "Confirmed"
	ContractInProgress = "In Progress"
	ContractCompleted  = "Completed"
	ContractDisputed   = "Disputed"
	ContractCancelled  = "Cancelled"
)

// contractEdges are the transitions users may drive: the farmer confirms a
// pending contract, the company completes a confirmed one. Everything else
// is rejected.
var contractEdges = map[string]string{
	ContractPending:   ContractConfirmed,
	ContractConfirmed: ContractCompleted,
}

// ValidContractTransition reports whether from -> to is an allowed edge.
func ValidContractTransition(from, to string) bool {
	return contractEdges[from] == to
}

type Contract struct {
	ContractID uint   `gorm:"primaryKey" json:"contract_id"`
	Reference  string `gorm:"uniqueIndex" json:"reference"`

	FarmerID      uint `json:"farmer_id" gorm:"index"`
	CompanyID     uint `json:"company_id" gorm:"index"`
	CropID        uint `json:"crop_id" gorm:"index"`
	RequirementID uint `json:"requirement_id" gorm:"index"`

	Details      ContractDetails `json:"details" gorm:"serializer:json"`
	Payment      Payment         `json:"payment" gorm:"serializer:json"`
	Schedule     []DeliverySlot  `json:"schedule,omitempty" gorm:"serializer:json"`
	QualityCheck *QualityCheck   `json:"quality_check,omitempty" gorm:"serializer:json"`
	Dispute      *Dispute        `json:"dispute,omitempty" gorm:"serializer:json"`

	Status string `json:"status"` // Pending|Confirmed|In Progress|Completed|Disputed|Cancelled

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ContractDetails struct {
	CropType         string           `json:"crop_type"`
	QualityGrade     string           `json:"quality_grade"`
	QuantityKg       float64          `json:"quantity_kg"`
	PricePerKg       float64          `json:"price_per_kg"`
	TotalAmount      float64          `json:"total_amount"`
	HarvestDates     []time.Time      `json:"harvest_dates"`
	DeliveryLocation DeliveryLocation `json:"delivery_location"`
	PickupTime       string           `json:"pickup_time"`
}

type Payment struct {
	AdvanceAmount float64 `json:"advance_amount"` // 20% of total
	BalanceAmount float64 `json:"balance_amount"` // 80% of total
	PlatformFee   float64 `json:"platform_fee"`   // 2% of total
	AdvancePaid   bool    `json:"advance_paid"`
	BalancePaid   bool    `json:"balance_paid"`
}

type DeliverySlot struct {
	Date       time.Time `json:"date"`
	QuantityKg float64   `json:"quantity_kg"`
	Status     string    `json:"status"` // Scheduled|Completed|Cancelled
}

type QualityCheck struct {
	Photos           []string `json:"photos,omitempty"`
	ActualGrade      string   `json:"actual_grade"`
	ActualQuantityKg float64  `json:"actual_quantity_kg"`
	InspectorNotes   string   `json:"inspector_notes,omitempty"`
	Approved         bool     `json:"approved"`
}

type Dispute struct {
	Raised     bool       `json:"raised"`
	RaisedBy   string     `json:"raised_by"` // Farmer|Company
	Reason     string     `json:"reason"`
	Resolution string     `json:"resolution,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// BeforeSave recomputes the financial fields from quantity and price on every
// save. They are derived values and are never stored independently.
func (c *Contract) BeforeSave(tx *gorm.DB) error {
	c.Details.TotalAmount = round2(c.Details.QuantityKg * c.Details.PricePerKg)
	c.Payment.AdvanceAmount = round2(c.Details.TotalAmount * 0.20)
	c.Payment.BalanceAmount = round2(c.Details.TotalAmount * 0.80)
	c.Payment.PlatformFee = round2(c.Details.TotalAmount * 0.02)
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
