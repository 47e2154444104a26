package finance

import (
	"context"

	"github.com/codops/backend/internal/domain/finance"
	"github.com/codops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultDeliveredLimit caps delivered listings when no limit is given
const DefaultDeliveredLimit = 50

// DeliveredService records delivered order counts
type DeliveredService struct {
	deliveredRepo finance.DailyDeliveredRepository
	logger        *zap.Logger
}

// NewDeliveredService creates a new DeliveredService
func NewDeliveredService(deliveredRepo finance.DailyDeliveredRepository, logger *zap.Logger) *DeliveredService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeliveredService{deliveredRepo: deliveredRepo, logger: logger}
}

// Upsert sets the delivered count for a date and country
func (s *DeliveredService) Upsert(ctx context.Context, req UpsertDeliveredRequest) (*DeliveredResponse, error) {
	row, err := finance.NewDailyDelivered(req.Date, req.CountryCode, req.Delivered)
	if err != nil {
		return nil, err
	}
	if err := s.deliveredRepo.Upsert(ctx, row); err != nil {
		return nil, err
	}
	response := ToDeliveredResponse(row)
	return &response, nil
}

// List returns delivered rows in range, newest first, with their total.
// The total covers the returned rows only.
func (s *DeliveredService) List(ctx context.Context, filter DeliveredFilter) (*DeliveredList, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultDeliveredLimit
	}
	rows, err := s.deliveredRepo.FindRange(ctx, shared.DateRange{From: filter.From, To: filter.To}, limit)
	if err != nil {
		return nil, err
	}

	list := &DeliveredList{
		Rows:  make([]DeliveredResponse, len(rows)),
		Total: finance.TotalDelivered(rows),
	}
	for i := range rows {
		list.Rows[i] = ToDeliveredResponse(&rows[i])
	}
	return list, nil
}
