package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ruchelocale/marketplace-api/internal/domain/models"
	"github.com/ruchelocale/marketplace-api/internal/domain/repository"
)

// ProductService implements the product catalog.
type ProductService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	logger     *zap.Logger
}

// NewProductService wires a ProductService.
func NewProductService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		logger:     logger,
	}
}

// List returns one page of active products matching the filters.
func (s *ProductService) List(ctx context.Context, filters models.ProductFilters) (*models.ProductListResult, error) {
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

// Get returns one product by ID.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// Create publishes a new listing owned by the given seller. The category
// is resolved up front so a bad ID fails with a category error rather
// than a foreign key violation.
func (s *ProductService) Create(ctx context.Context, sellerID uuid.UUID, req models.CreateProductRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	categoryID := uuid.MustParse(req.CategoryID) // validated above

	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "EUR"
	}
	unit := models.ProductUnit(req.Unit)
	if unit == "" {
		unit = models.ProductUnitPiece
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	product := &models.Product{
		ID:            uuid.New(),
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Currency:      currency,
		Image:         req.Image,
		Status:        models.ProductStatusActive,
		Quantity:      req.Quantity,
		Unit:          unit,
		Tags:          tags,
		IsOrganic:     req.IsOrganic,
		IsFresh:       req.IsFresh,
		SellerID:      sellerID,
		CategoryID:    category.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	product.CategorySlug = category.Slug

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("seller_id", sellerID.String()),
	)
	return product, nil
}
