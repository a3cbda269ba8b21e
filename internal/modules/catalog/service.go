package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/samytrends/retail-api/internal/money"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req ProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, filter ListFilter) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// ProductRequest holds the data for creating or replacing a product. It is
// validated once here so records past this boundary are always well formed.
type ProductRequest struct {
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Price    money.Paise `json:"price"`
	Stock    int         `json:"stock"`
	MinStock int         `json:"min_stock"`
	SKU      string      `json:"sku"`
	ImageURL string      `json:"image_url"`
}

func (req ProductRequest) validate() error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !ValidCategory(req.Category) {
		return fmt.Errorf("invalid category: %s", req.Category)
	}
	if req.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if req.Stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	if req.MinStock < 0 {
		return fmt.Errorf("min_stock cannot be negative")
	}
	return nil
}

type service struct{ repo Repository }

// NewService creates a new catalog service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	minStock := req.MinStock
	if minStock == 0 {
		minStock = 10
	}
	p := &Product{
		ID:       uuid.New(),
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Stock:    req.Stock,
		MinStock: minStock,
		SKU:      req.SKU,
		ImageURL: req.ImageURL,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context, filter ListFilter) ([]*Product, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	p.Name = req.Name
	p.Category = req.Category
	p.Price = req.Price
	p.Stock = req.Stock
	p.MinStock = req.MinStock
	p.SKU = req.SKU
	p.ImageURL = req.ImageURL
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
