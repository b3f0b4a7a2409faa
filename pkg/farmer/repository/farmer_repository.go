package repository

import "agrilink/entities"

type FarmerRepository interface {
	Create(f *entities.Farmer) error
	Save(f *entities.Farmer) error
	FindByID(id uint) (*entities.Farmer, error)
	FindByPhone(phone string) (*entities.Farmer, error)
	// CreditWallet atomically adds amount to the farmer's balance and records
	// a transaction row.
	CreditWallet(farmerID uint, amount float64, reference, description string) error
	Transactions(farmerID uint) ([]entities.WalletTransaction, error)
}
