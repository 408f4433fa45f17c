package service

import (
	"context"

	"github.com/ruchelocale/marketplace-api/internal/domain/models"
	"github.com/ruchelocale/marketplace-api/internal/domain/repository"
)

// ShopService serves seller storefronts.
type ShopService struct {
	shops    repository.ShopRepository
	products repository.ProductRepository
}

// NewShopService wires a ShopService.
func NewShopService(shops repository.ShopRepository, products repository.ProductRepository) *ShopService {
	return &ShopService{shops: shops, products: products}
}

// List returns one page of active shops.
func (s *ShopService) List(ctx context.Context, page, limit int) (*models.ShopListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	shops, totalCount, err := s.shops.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	if shops == nil {
		shops = []*models.Shop{}
	}
	return &models.ShopListResult{
		Shops:      shops,
		Pagination: models.NewPagination(page, limit, totalCount),
	}, nil
}

// GetBySlug returns one shop with its theme and customization.
func (s *ShopService) GetBySlug(ctx context.Context, slug string) (*models.Shop, error) {
	return s.shops.GetBySlug(ctx, slug)
}

// Products returns one page of the shop's active listings.
func (s *ShopService) Products(ctx context.Context, slug string, page, limit int) (*models.ProductListResult, error) {
	shop, err := s.shops.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	filters := models.ProductFilters{ShopID: &shop.ID, Page: page, Limit: limit}
	filters.Normalize()

	products, totalCount, err := s.products.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*models.Product{}
	}
	return &models.ProductListResult{
		Products:   products,
		Pagination: models.NewPagination(filters.Page, filters.Limit, totalCount),
	}, nil
}
