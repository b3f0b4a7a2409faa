package repositoryImp

import (
	"gorm.io/gorm"

	"agrilink/entities"
	"agrilink/pkg/crop/repository"
)

type cropRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CropRepository { return &cropRepo{db} }

func (r *cropRepo) Create(c *entities.Crop) error { return r.db.Create(c).Error }

func (r *cropRepo) Save(c *entities.Crop) error { return r.db.Save(c).Error }

func (r *cropRepo) FindByID(id uint) (*entities.Crop, error) {
	var c entities.Crop
	if err := r.db.First(&c, "crop_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cropRepo) FindByFarmer(farmerID uint) ([]entities.Crop, error) {
	var crops []entities.Crop
	if err := r.db.Where("farmer_id = ?", farmerID).Order("created_at desc").Find(&crops).Error; err != nil {
		return nil, err
	}
	return crops, nil
}

func (r *cropRepo) FindByStatus(status string) ([]entities.Crop, error) {
	var crops []entities.Crop
	if err := r.db.Where("status = ?", status).Find(&crops).Error; err != nil {
		return nil, err
	}
	return crops, nil
}
