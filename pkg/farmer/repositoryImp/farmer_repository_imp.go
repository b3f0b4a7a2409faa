package repositoryImp

import (
	"gorm.io/gorm"

	"agrilink/entities"
	"agrilink/pkg/farmer/repository"
)

type farmerRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FarmerRepository { return &farmerRepo{db} }

func (r *farmerRepo) Create(f *entities.Farmer) error { return r.db.Create(f).Error }

func (r *farmerRepo) Save(f *entities.Farmer) error { return r.db.Save(f).Error }

func (r *farmerRepo) FindByID(id uint) (*entities.Farmer, error) {
	var f entities.Farmer
	if err := r.db.First(&f, "farmer_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *farmerRepo) FindByPhone(phone string) (*entities.Farmer, error) {
	var f entities.Farmer
	if err := r.db.First(&f, "phone = ?", phone).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *farmerRepo) CreditWallet(farmerID uint, amount float64, reference, description string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Farmer{}).
			Where("farmer_id = ?", farmerID).
			Update("wallet_balance", gorm.Expr("wallet_balance + ?", amount)).Error; err != nil {
			return err
		}
		return tx.Create(&entities.WalletTransaction{
			FarmerID:    farmerID,
			Reference:   reference,
			Amount:      amount,
			Type:        "credit",
			Description: description,
		}).Error
	})
}

func (r *farmerRepo) Transactions(farmerID uint) ([]entities.WalletTransaction, error) {
	var txs []entities.WalletTransaction
	if err := r.db.Where("farmer_id = ?", farmerID).Order("created_at desc").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}
