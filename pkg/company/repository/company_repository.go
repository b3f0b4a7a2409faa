package repository

import "agrilink/entities"

type CompanyRepository interface {
	Create(c *entities.Company) error
	Save(c *entities.Company) error
	FindByID(id uint) (*entities.Company, error)
	FindByEmail(email string) (*entities.Company, error)
}
