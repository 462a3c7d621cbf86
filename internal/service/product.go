package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/eliteshop/eliteshop/internal/domain"
	"github.com/eliteshop/eliteshop/internal/repository"
)

// CatalogService exposes the read-only product catalog.
type CatalogService interface {
	ListProducts(ctx context.Context, categoryID int64) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID int64) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type catalogService struct {
	store repository.Store
}

// NewCatalogService creates a new CatalogService instance.
func NewCatalogService(store repository.Store) CatalogService {
	return &catalogService{store: store}
}

// ListProducts returns active products, optionally filtered by category.
// categoryID of zero means no filter.
func (s *catalogService) ListProducts(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	products, err := s.store.ListActiveProducts(ctx, categoryID)
	if err != nil {
		return nil, domain.Internal(err, "catalog.list_products", "failed to fetch products")
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// GetProduct returns a single active product.
func (s *catalogService) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	if productID <= 0 {
		return nil, ErrProductRequired
	}

	product, err := s.store.GetActiveProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, domain.Internal(err, "catalog.get_product", "failed to fetch product")
	}
	return &product, nil
}

// ListCategories returns all categories ordered by name.
func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, domain.Internal(err, "catalog.list_categories", "failed to fetch categories")
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}
