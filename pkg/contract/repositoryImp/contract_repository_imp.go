package repositoryImp

import (
	"gorm.io/gorm"

	"agrilink/entities"
	"agrilink/pkg/contract/repository"
)

type contractRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ContractRepository { return &contractRepo{db} }

func (r *contractRepo) Create(c *entities.Contract) error { return r.db.Create(c).Error }

func (r *contractRepo) Save(c *entities.Contract) error { return r.db.Save(c).Error }

func (r *contractRepo) FindByID(id uint) (*entities.Contract, error) {
	var c entities.Contract
	if err := r.db.First(&c, "contract_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contractRepo) FindByFarmer(farmerID uint) ([]entities.Contract, error) {
	var cs []entities.Contract
	if err := r.db.Where("farmer_id = ?", farmerID).Order("created_at desc").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

func (r *contractRepo) FindByCompany(companyID uint) ([]entities.Contract, error) {
	var cs []entities.Contract
	if err := r.db.Where("company_id = ?", companyID).Order("created_at desc").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

func (r *contractRepo) FindByRequirement(requirementID, companyID uint) ([]entities.Contract, error) {
	var cs []entities.Contract
	if err := r.db.Where("requirement_id = ? AND company_id = ?", requirementID, companyID).
		Order("created_at desc").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}
