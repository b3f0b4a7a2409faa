package entities

import "time"

type Company struct {
	CompanyID    uint   `gorm:"primaryKey" json:"company_id"`
	PasswordHash string `json:"-"`

	CompanyName        string `json:"company_name"`
	RegistrationNumber string `json:"registration_number" gorm:"uniqueIndex"`
	CompanyType        string `json:"company_type"` // Food Processing|Restaurant Chain|Retail|Export
	GSTNumber          string `json:"gst_number"`

	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`

	ContactName        string `json:"contact_name"`
	ContactDesignation string `json:"contact_designation"`
	ContactEmail       string `json:"contact_email" gorm:"uniqueIndex"`
	ContactPhone       string `json:"contact_phone"`

	DailyCapacityKg   *float64  `json:"daily_capacity_kg,omitempty"`
	StorageCapacityKg *float64  `json:"storage_capacity_kg,omitempty"`
	PlantLocation     *GeoPoint `json:"plant_location,omitempty" gorm:"serializer:json"`

	VerificationStatus string `json:"verification_status"` // Pending|Verified|Rejected

	CreatedAt time.Time
	UpdatedAt time.Time
}
