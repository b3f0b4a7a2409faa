package repository

import "agrilink/entities"

type CropRepository interface {
	Create(c *entities.Crop) error
	Save(c *entities.Crop) error
	FindByID(id uint) (*entities.Crop, error)
	FindByFarmer(farmerID uint) ([]entities.Crop, error)
	FindByStatus(status string) ([]entities.Crop, error)
}
