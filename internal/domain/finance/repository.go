package finance

import (
	"context"

	"github.com/codops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RemitFilter selects remittance rows. A row matches when its start is on
// or after StartFrom and its end on or before EndTo; empty fields match all.
type RemitFilter struct {
	StartFrom   string
	EndTo       string
	CountryCode string
	SKU         string
}

// PeriodRemitRepository persists remittance rows keyed by PeriodKey
type PeriodRemitRepository interface {
	// FindByKey returns the row for key or shared.ErrNotFound
	FindByKey(ctx context.Context, key PeriodKey) (*PeriodRemit, error)

	// Save inserts or updates a row
	Save(ctx context.Context, remit *PeriodRemit) error

	// Find returns rows ordered by country code, then profit descending
	Find(ctx context.Context, filter RemitFilter) ([]PeriodRemit, error)
}

// PlatformSpendRepository persists current platform spend
type PlatformSpendRepository interface {
	// Upsert writes spend, replacing any row with the same SKU, platform
	// and country
	Upsert(ctx context.Context, spend *PlatformSpend) error
	FindByID(ctx context.Context, id uuid.UUID) (*PlatformSpend, error)
	FindBySKU(ctx context.Context, sku string) ([]PlatformSpend, error)
	FindAll(ctx context.Context) ([]PlatformSpend, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DailyDeliveredRepository persists delivered counts keyed by date and country
type DailyDeliveredRepository interface {
	Upsert(ctx context.Context, row *DailyDelivered) error
	// FindRange returns rows within the range, newest first, at most limit
	// rows when limit is positive
	FindRange(ctx context.Context, dates shared.DateRange, limit int) ([]DailyDelivered, error)
}
