package repositoryImp

import (
	"gorm.io/gorm"

	"agrilink/entities"
	"agrilink/pkg/requirement/repository"
)

type requirementRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.RequirementRepository { return &requirementRepo{db} }

func (r *requirementRepo) Create(req *entities.Requirement) error { return r.db.Create(req).Error }

func (r *requirementRepo) Save(req *entities.Requirement) error { return r.db.Save(req).Error }

func (r *requirementRepo) FindByID(id uint) (*entities.Requirement, error) {
	var req entities.Requirement
	if err := r.db.First(&req, "requirement_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requirementRepo) FindByCompany(companyID uint) ([]entities.Requirement, error) {
	var reqs []entities.Requirement
	if err := r.db.Where("company_id = ?", companyID).Order("created_at desc").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *requirementRepo) FindByStatus(status string) ([]entities.Requirement, error) {
	var reqs []entities.Requirement
	if err := r.db.Where("status = ?", status).Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}
