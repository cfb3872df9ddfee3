package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/wiraa/pricedesk/internal/domain"
	"github.com/wiraa/pricedesk/internal/domain/price"
	"github.com/wiraa/pricedesk/internal/domain/product"
	"github.com/wiraa/pricedesk/internal/port/database"
)

// ProductService handles catalog product business logic.
type ProductService struct {
	store database.Store
}

// NewProductService creates a new ProductService.
func NewProductService(store database.Store) *ProductService {
	return &ProductService{store: store}
}

// List returns all catalog products.
func (s *ProductService) List(ctx context.Context) ([]product.Product, error) {
	return s.store.ListProducts(ctx)
}

// Get returns a product by slug.
func (s *ProductService) Get(ctx context.Context, slug string) (*product.Product, error) {
	return s.store.GetProductBySlug(ctx, slug)
}

// Create validates and creates a catalog product.
func (s *ProductService) Create(ctx context.Context, req product.CreateRequest) (*product.Product, error) {
	req.Slug = strings.TrimSpace(req.Slug)
	req.Name = strings.TrimSpace(req.Name)
	if req.Slug == "" {
		return nil, fmt.Errorf("%w: slug is required", domain.ErrValidation)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	return s.store.CreateProduct(ctx, req)
}

// ListPrices returns all competitor price records observed for a product.
func (s *ProductService) ListPrices(ctx context.Context, slug string) ([]price.Record, error) {
	if _, err := s.store.GetProductBySlug(ctx, slug); err != nil {
		return nil, err
	}
	return s.store.ListPricesBySlug(ctx, slug)
}
