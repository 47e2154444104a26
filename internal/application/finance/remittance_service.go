package finance

import (
	"context"
	"errors"
	"io"

	appshared "github.com/codops/backend/internal/application/shared"
	"github.com/codops/backend/internal/domain/catalog"
	"github.com/codops/backend/internal/domain/finance"
	"github.com/codops/backend/internal/domain/inventory"
	"github.com/codops/backend/internal/domain/shared"
	"github.com/codops/backend/internal/domain/shipping"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RemitReportWriter renders a remittance report to a file format
type RemitReportWriter interface {
	WriteRemitReport(w io.Writer, report *RemitReport) error
}

// RemittanceService computes and stores period profit
type RemittanceService struct {
	remitRepo      finance.PeriodRemitRepository
	txScope        appshared.TransactionScope
	reportWriter   RemitReportWriter
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewRemittanceService creates a new RemittanceService
func NewRemittanceService(
	remitRepo finance.PeriodRemitRepository,
	txScope appshared.TransactionScope,
	logger *zap.Logger,
) *RemittanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemittanceService{
		remitRepo: remitRepo,
		txScope:   txScope,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *RemittanceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetReportWriter sets the writer used by ExportReport
func (s *RemittanceService) SetReportWriter(writer RemitReportWriter) {
	s.reportWriter = writer
}

// UpsertPeriodRemit computes unit cost and profit for the period and
// replaces any row with the same start, end, country and SKU. When pieces
// were sold and the country has an active warehouse, the pieces are
// deducted from it. Row and deduction commit together.
func (s *RemittanceService) UpsertPeriodRemit(ctx context.Context, req UpsertRemitRequest) (*UpsertRemitResponse, error) {
	key, err := finance.NewPeriodKey(req.StartDate, req.EndDate, req.CountryCode, req.SKU)
	if err != nil {
		return nil, err
	}
	figures := finance.RemitFigures{
		Orders:  req.Orders,
		Pieces:  req.Pieces,
		Revenue: req.Revenue,
		AdSpend: req.AdSpend,
	}

	var (
		remit         *finance.PeriodRemit
		replaced      bool
		stockDeducted bool
	)
	err = s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		product, err := repos.Products().FindBySKU(ctx, key.SKU)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("NOT_FOUND", "Product not found")
			}
			return err
		}

		routeCost, err := s.routeCost(ctx, repos.Shipments(), key, req.RouteCostOverride)
		if err != nil {
			return err
		}
		unitCost := finance.UnitCost(product, routeCost)

		remit, err = repos.Remits().FindByKey(ctx, key)
		switch {
		case err == nil:
			replaced = true
			remit.Recompute(figures, unitCost)
		case errors.Is(err, shared.ErrNotFound):
			remit = finance.NewPeriodRemit(key, figures, unitCost)
		default:
			return err
		}
		if err := repos.Remits().Save(ctx, remit); err != nil {
			return err
		}

		if remit.Pieces <= 0 {
			return nil
		}
		warehouse, err := repos.Warehouses().FindActiveByCountry(ctx, key.CountryCode)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil
			}
			return err
		}
		movement, err := remit.StockDecrease(warehouse)
		if err != nil || movement == nil {
			return err
		}
		if err := repos.Movements().Create(ctx, movement); err != nil {
			return err
		}
		stockDeducted = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("period remit upserted",
		zap.String("key", key.String()),
		zap.Int("pieces", remit.Pieces),
		zap.String("unit_cost", remit.UnitCost.String()),
		zap.String("profit_total", remit.ProfitTotal.String()),
		zap.Bool("replaced", replaced),
		zap.Bool("stock_deducted", stockDeducted),
	)
	remit.AddDomainEvent(finance.NewPeriodRemitUpsertedEvent(remit, replaced, stockDeducted))
	appshared.PublishEvents(ctx, s.eventPublisher, s.logger, remit)

	return &UpsertRemitResponse{
		Remit:         ToRemitResponse(remit),
		Replaced:      replaced,
		StockDeducted: stockDeducted,
	}, nil
}

// Report returns remittance rows ordered by country, then profit descending
func (s *RemittanceService) Report(ctx context.Context, filter RemitReportFilter) (*RemitReport, error) {
	remits, err := s.remitRepo.Find(ctx, finance.RemitFilter{
		StartFrom:   filter.StartFrom,
		EndTo:       filter.EndTo,
		CountryCode: inventory.NormalizeCountryCode(filter.CountryCode),
		SKU:         catalog.NormalizeSKU(filter.SKU),
	})
	if err != nil {
		return nil, err
	}

	report := &RemitReport{
		Rows: make([]RemitResponse, len(remits)),
		Totals: RemitTotals{
			Revenue:     decimal.Zero,
			AdSpend:     decimal.Zero,
			ProfitTotal: decimal.Zero,
		},
	}
	for i := range remits {
		r := &remits[i]
		report.Rows[i] = ToRemitResponse(r)
		report.Totals.Orders += r.Orders
		report.Totals.Pieces += r.Pieces
		report.Totals.Revenue = report.Totals.Revenue.Add(r.Revenue)
		report.Totals.AdSpend = report.Totals.AdSpend.Add(r.AdSpend)
		report.Totals.ProfitTotal = report.Totals.ProfitTotal.Add(r.ProfitTotal)
	}
	return report, nil
}

// ExportReport writes the filtered report with the configured writer
func (s *RemittanceService) ExportReport(ctx context.Context, filter RemitReportFilter, w io.Writer) error {
	if s.reportWriter == nil {
		return shared.NewDomainError("EXPORT_UNAVAILABLE", "No report writer configured")
	}
	report, err := s.Report(ctx, filter)
	if err != nil {
		return err
	}
	return s.reportWriter.WriteRemitReport(w, report)
}

func (s *RemittanceService) routeCost(ctx context.Context, repo shipping.ShipmentRepository, key finance.PeriodKey, override *decimal.Decimal) (decimal.Decimal, error) {
	if override != nil {
		return *override, nil
	}
	history, err := repo.Find(ctx, shipping.ShipmentFilter{
		Status:             shipping.ShipmentStatusArrived,
		OriginCountry:      inventory.HubCountryCode,
		DestinationCountry: key.CountryCode,
		SKU:                key.SKU,
	})
	if err != nil {
		return decimal.Zero, err
	}
	return finance.ResolveRouteCost(nil, key.SKU, key.CountryCode, history), nil
}
