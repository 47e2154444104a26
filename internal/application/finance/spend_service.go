package finance

import (
	"context"
	"errors"

	"github.com/codops/backend/internal/domain/catalog"
	"github.com/codops/backend/internal/domain/finance"
	"github.com/codops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SpendService manages the current daily ad spend per platform
type SpendService struct {
	spendRepo   finance.PlatformSpendRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewSpendService creates a new SpendService
func NewSpendService(spendRepo finance.PlatformSpendRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *SpendService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpendService{spendRepo: spendRepo, productRepo: productRepo, logger: logger}
}

// Upsert replaces the spend of the SKU on the platform in the country
func (s *SpendService) Upsert(ctx context.Context, req UpsertSpendRequest) (*SpendResponse, error) {
	spend, err := finance.NewPlatformSpend(req.SKU, req.Platform, req.CountryCode, req.Amount)
	if err != nil {
		return nil, err
	}
	if _, err := s.productRepo.FindBySKU(ctx, spend.SKU); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	if err := s.spendRepo.Upsert(ctx, spend); err != nil {
		return nil, err
	}
	s.logger.Debug("current spend saved",
		zap.String("sku", spend.SKU),
		zap.String("platform", spend.Platform),
		zap.String("country", spend.CountryCode),
	)

	response := ToSpendResponse(spend)
	return &response, nil
}

// Delete removes a spend row by id
func (s *SpendService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.spendRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Spend not found")
		}
		return err
	}
	return s.spendRepo.Delete(ctx, id)
}

// ListBySKU returns the SKU's current spend rows
func (s *SpendService) ListBySKU(ctx context.Context, sku string) ([]SpendResponse, error) {
	spends, err := s.spendRepo.FindBySKU(ctx, catalog.NormalizeSKU(sku))
	if err != nil {
		return nil, err
	}
	return ToSpendResponses(spends), nil
}

// DailySpendByCountry sums current spend per country
func (s *SpendService) DailySpendByCountry(ctx context.Context) (map[string]SpendTotal, error) {
	spends, err := s.spendRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	totals := make(map[string]SpendTotal)
	for code, amount := range finance.SpendByCountry(spends) {
		totals[code] = SpendTotal{CountryCode: code, Amount: amount}
	}
	return totals, nil
}
