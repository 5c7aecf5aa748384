package service

import (
	"context"
	"license-store/internal/model"
	"license-store/internal/repository"
)

type ProductInput struct {
	FSN             string
	Title           string
	PricePaise      int64
	Currency        string
	DownloadLink    string
	InstallationDoc string
	ProductImage    string
}

type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*model.Product, error)
	Get(ctx context.Context, fsn string) (*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
	Update(ctx context.Context, fsn string, updates map[string]interface{}) (*model.Product, error)
	Delete(ctx context.Context, fsn string) error
}

type productServiceImpl struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productServiceImpl{
		productRepo: productRepo,
	}
}

func (s *productServiceImpl) Create(ctx context.Context, input ProductInput) (*model.Product, error) {
	if input.FSN == "" {
		return nil, NewValidationError("product FSN is required")
	}
	if input.Title == "" {
		return nil, NewValidationError("product title is required")
	}
	if input.PricePaise <= 0 {
		return nil, NewValidationError("price must be positive")
	}

	currency := input.Currency
	if currency == "" {
		currency = "INR"
	}

	product := &model.Product{
		FSN:             input.FSN,
		Title:           input.Title,
		PricePaise:      input.PricePaise,
		Currency:        currency,
		DownloadLink:    input.DownloadLink,
		InstallationDoc: input.InstallationDoc,
		ProductImage:    input.ProductImage,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *productServiceImpl) Get(ctx context.Context, fsn string) (*model.Product, error) {
	return s.productRepo.FindByFSN(ctx, fsn)
}

func (s *productServiceImpl) List(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.ListAll(ctx)
}

func (s *productServiceImpl) Update(ctx context.Context, fsn string, updates map[string]interface{}) (*model.Product, error) {
	if len(updates) == 0 {
		return nil, NewValidationError("no fields to update")
	}
	return s.productRepo.Update(ctx, fsn, updates)
}

func (s *productServiceImpl) Delete(ctx context.Context, fsn string) error {
	return s.productRepo.Delete(ctx, fsn)
}
