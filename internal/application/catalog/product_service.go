package catalog

import (
	"context"

	"github.com/potterypos/backend/internal/domain/catalog"
	"github.com/potterypos/backend/internal/domain/shared"
	"github.com/potterypos/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo       catalog.ProductRepository
	lowStockThreshold int64
	logger            *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, lowStockThreshold int64, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo:       productRepo,
		lowStockThreshold: lowStockThreshold,
		logger:            logger,
	}
}

// Create creates a new catalog product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	if existing, err := s.productRepo.FindBySKU(ctx, tenantID, req.SKU); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this SKU already exists")
	}

	price, err := parseAmount(req.Price)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(tenantID, req.SKU, req.Name, req.Category, valueobject.NewMoneyUSD(price), req.Stock)
	if err != nil {
		return nil, err
	}

	if req.Cost != "" {
		cost, err := parseAmount(req.Cost)
		if err != nil {
			return nil, err
		}
		if err := product.SetCostPrice(valueobject.NewMoneyUSD(cost)); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("sku", product.SKU),
		zap.String("category", product.Category),
	)

	response := ToProductResponse(product, s.lowStockThreshold)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product, s.lowStockThreshold)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProductResponse, int64, error) {
	page, err := s.productRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]ProductResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToProductResponse(&page.Items[i], s.lowStockThreshold))
	}
	return items, page.Total, nil
}

// ListLowStock retrieves products at or below the given threshold.
// A zero threshold falls back to the configured default.
func (s *ProductService) ListLowStock(ctx context.Context, tenantID uuid.UUID, threshold int64) ([]ProductResponse, error) {
	if threshold <= 0 {
		threshold = s.lowStockThreshold
	}

	products, err := s.productRepo.FindLowStock(ctx, tenantID, threshold)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i], threshold))
	}
	return responses, nil
}

// Update modifies a product's descriptive fields
func (s *ProductService) Update(ctx context.Context, tenantID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Category); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product, s.lowStockThreshold)
	return &response, nil
}

// SetPrice changes a product's selling price
func (s *ProductService) SetPrice(ctx context.Context, tenantID, productID uuid.UUID, req SetPriceRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	price, err := parseAmount(req.Price)
	if err != nil {
		return nil, err
	}
	if err := product.SetPrice(valueobject.NewMoneyUSD(price)); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product, s.lowStockThreshold)
	return &response, nil
}

// SetCostPrice changes a product's recorded unit cost
func (s *ProductService) SetCostPrice(ctx context.Context, tenantID, productID uuid.UUID, req SetPriceRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	cost, err := parseAmount(req.Price)
	if err != nil {
		return nil, err
	}
	if err := product.SetCostPrice(valueobject.NewMoneyUSD(cost)); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product, s.lowStockThreshold)
	return &response, nil
}

// AdjustStock applies a manual stock correction
func (s *ProductService) AdjustStock(ctx context.Context, tenantID, productID uuid.UUID, req AdjustStockRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	product.AdjustStock(req.Delta)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("stock adjusted manually",
		zap.String("sku", product.SKU),
		zap.Int64("delta", req.Delta),
		zap.Int64("new_stock", product.Stock),
		zap.String("reason", req.Reason),
	)

	response := ToProductResponse(product, s.lowStockThreshold)
	return &response, nil
}

// Archive removes a product from active sale
func (s *ProductService) Archive(ctx context.Context, tenantID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return err
	}

	if err := product.Archive(); err != nil {
		return err
	}

	return s.productRepo.Save(ctx, product)
}

// Activate restores an archived product
func (s *ProductService) Activate(ctx context.Context, tenantID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return err
	}

	product.Activate()

	return s.productRepo.Save(ctx, product)
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, shared.NewDomainError("INVALID_AMOUNT", "Amount is not a valid number")
	}
	return amount, nil
}
