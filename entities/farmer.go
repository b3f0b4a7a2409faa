package entities

import "time"

type Farmer struct {
	FarmerID uint   `gorm:"primaryKey" json:"farmer_id"`
	PINHash  string `json:"-"`

	Name     string `json:"name"`
	Phone    string `json:"phone" gorm:"uniqueIndex"`
	Village  string `json:"village"`
	District string `json:"district"`
	State    string `json:"state"`
	Language string `json:"language"` // default English

	TotalLandAcres float64   `json:"total_land_acres"`
	SoilType       string    `json:"soil_type"`       // Black|Loamy|Clay|Sandy
	IrrigationType string    `json:"irrigation_type"` // Drip|Sprinkler|Flood|Rainfed
	GPSLocation    *GeoPoint `json:"gps_location,omitempty" gorm:"serializer:json"`

	AccountNumber     string `json:"-"`
	IFSCCode          string `json:"-"`
	AccountHolderName string `json:"-"`
	UPIID             string `json:"-"`

	WalletBalance float64 `json:"wallet_balance"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type WalletTransaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FarmerID    uint      `gorm:"index" json:"farmer_id"`
	Reference   string    `gorm:"uniqueIndex" json:"reference"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"` // credit|debit
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
