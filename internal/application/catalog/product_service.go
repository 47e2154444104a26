package catalog

import (
	"context"
	"errors"

	appshared "github.com/codops/backend/internal/application/shared"
	"github.com/codops/backend/internal/domain/catalog"
	"github.com/codops/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, catalog.NormalizeSKU(req.SKU))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "SKU exists")
	}

	product, err := catalog.NewProduct(req.SKU, catalog.ProductDetails{
		Name:             req.Name,
		Category:         req.Category,
		WeightGrams:      req.WeightGrams,
		OriginCost:       valueOr(req.OriginCost, decimal.Zero),
		FirstLegShipCost: valueOr(req.FirstLegShipCost, decimal.Zero),
		AdBudget:         valueOr(req.AdBudget, decimal.Zero),
	})
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created", zap.String("sku", product.SKU))
	appshared.PublishEvents(ctx, s.eventPublisher, s.logger, product)

	response := ToProductResponse(product)
	return &response, nil
}

// GetBySKU retrieves a product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.find(ctx, sku)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves all products ordered by SKU
func (s *ProductService) List(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Update updates a product in place
func (s *ProductService) Update(ctx context.Context, sku string, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.find(ctx, sku)
	if err != nil {
		return nil, err
	}

	details := catalog.ProductDetails{
		Name:             product.Name,
		Category:         product.Category,
		WeightGrams:      product.WeightGrams,
		OriginCost:       valueOr(req.OriginCost, product.OriginCost),
		FirstLegShipCost: valueOr(req.FirstLegShipCost, product.FirstLegShipCost),
		AdBudget:         valueOr(req.AdBudget, product.AdBudget),
	}
	if req.Name != nil {
		details.Name = *req.Name
	}
	if req.Category != nil {
		details.Category = *req.Category
	}
	if req.WeightGrams != nil {
		details.WeightGrams = *req.WeightGrams
	}
	if err := product.Update(details); err != nil {
		return nil, err
	}
	if req.Status != nil {
		if err := product.SetStatus(catalog.ProductStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product and every row that references its SKU
func (s *ProductService) Delete(ctx context.Context, sku string) error {
	product, err := s.find(ctx, sku)
	if err != nil {
		return err
	}

	if err := s.productRepo.DeleteBySKU(ctx, product.SKU); err != nil {
		return err
	}

	s.logger.Info("product deleted", zap.String("sku", product.SKU))
	product.AddDomainEvent(catalog.NewProductDeletedEvent(product))
	appshared.PublishEvents(ctx, s.eventPublisher, s.logger, product)
	return nil
}

func (s *ProductService) find(ctx context.Context, sku string) (*catalog.Product, error) {
	product, err := s.productRepo.FindBySKU(ctx, catalog.NormalizeSKU(sku))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, err
	}
	return product, nil
}
