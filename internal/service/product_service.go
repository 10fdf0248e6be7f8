package service

import (
	"pilates_diario_backend/internal/model"
	"pilates_diario_backend/internal/repository"
)

const productFeedLimit = 60

// ProductInput is the affiliate product metadata the admin supplies.
type ProductInput struct {
	Title         string
	ImageURL      string
	AffiliateLink string
	Category      string
	Active        *bool
}

type ProductService struct {
	ProductRepo *repository.ProductRepository
}

func NewProductService(productRepo *repository.ProductRepository) *ProductService {
	return &ProductService{ProductRepo: productRepo}
}

// GetFeed returns the active products for the store tab, bounded and
// newest first.
func (s *ProductService) GetFeed(category string) ([]model.Product, error) {
	return s.ProductRepo.FindActive(category, productFeedLimit)
}

func (s *ProductService) List(page, limit int) ([]model.Product, int64, error) {
	return s.ProductRepo.List(page, limit)
}

func (s *ProductService) Create(input ProductInput) (*model.Product, error) {
	product := &model.Product{
		Title:         input.Title,
		ImageURL:      input.ImageURL,
		AffiliateLink: input.AffiliateLink,
		Category:      input.Category,
		Active:        true,
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	if err := s.ProductRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Update(id uint, input ProductInput) (*model.Product, error) {
	product, err := s.ProductRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	product.Title = input.Title
	product.ImageURL = input.ImageURL
	product.AffiliateLink = input.AffiliateLink
	product.Category = input.Category
	if input.Active != nil {
		product.Active = *input.Active
	}

	if err := s.ProductRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(id uint) error {
	if _, err := s.ProductRepo.FindByID(id); err != nil {
		return err
	}
	return s.ProductRepo.Delete(id)
}
