package repository

import "agrilink/entities"

type ContractRepository interface {
	Create(c *entities.Contract) error
	Save(c *entities.Contract) error
	FindByID(id uint) (*entities.Contract, error)
	FindByFarmer(farmerID uint) ([]entities.Contract, error)
	FindByCompany(companyID uint) ([]entities.Contract, error)
	FindByRequirement(requirementID, companyID uint) ([]entities.Contract, error)
}
