package repository

import "agrilink/entities"

type RequirementRepository interface {
	Create(r *entities.Requirement) error
	Save(r *entities.Requirement) error
	FindByID(id uint) (*entities.Requirement, error)
	FindByCompany(companyID uint) ([]entities.Requirement, error)
	FindByStatus(status string) ([]entities.Requirement, error)
}
