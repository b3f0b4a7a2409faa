package repositoryImp

import (
	"gorm.io/gorm"

	"agrilink/entities"
	"agrilink/pkg/company/repository"
)

type companyRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CompanyRepository { return &companyRepo{db} }

func (r *companyRepo) Create(c *entities.Company) error { return r.db.Create(c).Error }

func (r *companyRepo) Save(c *entities.Company) error { return r.db.Save(c).Error }

func (r *companyRepo) FindByID(id uint) (*entities.Company, error) {
	var c entities.Company
	if err := r.db.First(&c, "company_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepo) FindByEmail(email string) (*entities.Company, error) {
	var c entities.Company
	if err := r.db.First(&c, "contact_email = ?", email).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
