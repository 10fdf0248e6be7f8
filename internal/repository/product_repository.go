package repository

import (
	"errors"

	"pilates_diario_backend/internal/model"
	"pilates_diario_backend/internal/util"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(product *model.Product) error {
	return r.DB.Create(product).Error
}

func (r *ProductRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	err := r.DB.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrProductNotFound
	}
	return &product, err
}

// FindActive returns the store tab feed: active products, newest first,
// optionally filtered by category and bounded by limit.
func (r *ProductRepository) FindActive(category string, limit int) ([]model.Product, error) {
	var products []model.Product
	query := r.DB.Where("active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *ProductRepository) List(page, limit int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.DB.Model(&model.Product{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&products).Error
	return products, total, err
}

func (r *ProductRepository) Update(product *model.Product) error {
	return r.DB.Save(product).Error
}

func (r *ProductRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Product{}, id).Error
}
