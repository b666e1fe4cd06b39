package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-trading/app/entity"
)

type productRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	List(ctx context.Context) ([]*entity.Product, error)
}

type CatalogService interface {
	CreateProduct(ctx context.Context, name string, price float64, description string, sellerID *uint64) (*entity.Product, error)
	ListProducts(ctx context.Context) ([]*entity.Product, error)
}

type catalogService struct {
	productRepo productRepository
}

func NewCatalogService(productRepo productRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

func (s *catalogService) CreateProduct(ctx context.Context, name string, price float64, description string, sellerID *uint64) (*entity.Product, error) {
	product := &entity.Product{
		Name:        name,
		Price:       price,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if sellerID != nil {
		product.SellerID = sql.NullInt64{Int64: int64(*sellerID), Valid: true}
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return s.productRepo.List(ctx)
}
