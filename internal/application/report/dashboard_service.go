package report

import (
	"context"
	"sort"

	appcatalog "github.com/codops/backend/internal/application/catalog"
	appfinance "github.com/codops/backend/internal/application/finance"
	appinventory "github.com/codops/backend/internal/application/inventory"
	appshipping "github.com/codops/backend/internal/application/shipping"
	"github.com/codops/backend/internal/domain/catalog"
	"github.com/codops/backend/internal/domain/finance"
	"github.com/codops/backend/internal/domain/inventory"
	"github.com/codops/backend/internal/domain/shipping"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Repositories groups the read side the dashboard is built from
type Repositories struct {
	Products   catalog.ProductRepository
	Countries  inventory.CountryRepository
	Warehouses inventory.WarehouseRepository
	Movements  inventory.StockMovementRepository
	Shipments  shipping.ShipmentRepository
	Spend      finance.PlatformSpendRepository
	Remits     finance.PeriodRemitRepository
}

// DashboardService assembles read models across contexts
type DashboardService struct {
	repos      Repositories
	products   *appcatalog.ProductService
	stock      *appinventory.StockService
	delivered  *appfinance.DeliveredService
	remittance *appfinance.RemittanceService
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	repos Repositories,
	products *appcatalog.ProductService,
	stock *appinventory.StockService,
	delivered *appfinance.DeliveredService,
	remittance *appfinance.RemittanceService,
) *DashboardService {
	return &DashboardService{
		repos:      repos,
		products:   products,
		stock:      stock,
		delivered:  delivered,
		remittance: remittance,
	}
}

// Dashboard builds the operations overview
func (s *DashboardService) Dashboard(ctx context.Context, filter DashboardFilter) (*Dashboard, error) {
	d := &Dashboard{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := s.counts(gctx)
		d.Counts = counts
		return err
	})

	var inTransit []shipping.Shipment
	g.Go(func() error {
		var err error
		inTransit, err = s.repos.Shipments.Find(gctx, shipping.ShipmentFilter{Status: shipping.ShipmentStatusInTransit})
		return err
	})

	g.Go(func() error {
		list, err := s.delivered.List(gctx, appfinance.DeliveredFilter{
			From: filter.DeliveredFrom,
			To:   filter.DeliveredTo,
		})
		if err == nil {
			d.Delivered = *list
		}
		return err
	})

	if filter.RemitStart != "" && filter.RemitEnd != "" {
		g.Go(func() error {
			report, err := s.remittance.Report(gctx, appfinance.RemitReportFilter{
				StartFrom:   filter.RemitStart,
				EndTo:       filter.RemitEnd,
				CountryCode: filter.RemitCountry,
			})
			d.Remits = report
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	band, err := s.band(ctx, inTransit)
	if err != nil {
		return nil, err
	}
	d.Band = band

	d.FirstLegInTransit = make([]appshipping.ShipmentResponse, 0)
	d.InterCountryInTransit = make([]appshipping.ShipmentResponse, 0)
	for i := range inTransit {
		sh := &inTransit[i]
		resp := appshipping.ToShipmentResponse(sh)
		if sh.OnRoute(inventory.OriginCountryCode, inventory.HubCountryCode) {
			d.FirstLegInTransit = append(d.FirstLegInTransit, resp)
		} else {
			d.InterCountryInTransit = append(d.InterCountryInTransit, resp)
		}
	}
	return d, nil
}

// ProductOverview gathers spend, shipments, stock and profit of one product
func (s *DashboardService) ProductOverview(ctx context.Context, sku string) (*ProductOverview, error) {
	product, err := s.products.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	sku = product.SKU

	overview := &ProductOverview{Product: *product}

	spends, err := s.repos.Spend.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	overview.CurrentSpend = appfinance.ToSpendResponses(spends)

	shipments, err := s.repos.Shipments.Find(ctx, shipping.ShipmentFilter{SKU: sku})
	if err != nil {
		return nil, err
	}
	overview.Shipments = make([]ProductShipment, 0, len(shipments))
	for i := range shipments {
		qty := shipments[i].QuantityOf(sku)
		if qty <= 0 {
			continue
		}
		overview.Shipments = append(overview.Shipments, ProductShipment{
			ShipmentResponse: appshipping.ToShipmentResponse(&shipments[i]),
			QuantityOfSKU:    qty,
		})
	}

	overview.Stock, overview.StockTotal, err = s.stock.OperationalStock(ctx, sku)
	if err != nil {
		return nil, err
	}

	remits, err := s.repos.Remits.Find(ctx, finance.RemitFilter{SKU: sku})
	if err != nil {
		return nil, err
	}
	rows, totals := finance.SummarizeByCountry(remits)
	overview.Profit = make([]CountryProfitRow, len(rows))
	for i, r := range rows {
		overview.Profit[i] = CountryProfitRow{
			CountryCode:    r.CountryCode,
			Pieces:         r.Pieces,
			Revenue:        r.Revenue,
			AdSpend:        r.AdSpend,
			ProfitTotal:    r.ProfitTotal,
			ProfitPerPiece: r.ProfitPerPiece,
		}
	}
	overview.ProfitTotals = ProfitTotalsRow{
		Pieces:      totals.Pieces,
		Revenue:     totals.Revenue,
		AdSpend:     totals.AdSpend,
		ProfitTotal: totals.ProfitTotal,
	}
	return overview, nil
}

func (s *DashboardService) counts(ctx context.Context) (DashboardCounts, error) {
	var c DashboardCounts
	var err error
	if c.Products, err = s.repos.Products.Count(ctx); err != nil {
		return c, err
	}
	if c.Warehouses, err = s.repos.Warehouses.Count(ctx); err != nil {
		return c, err
	}
	c.InTransit, err = s.repos.Shipments.CountByStatus(ctx, shipping.ShipmentStatusInTransit)
	return c, err
}

// band computes stock, in-transit and live ad spend per operational country
func (s *DashboardService) band(ctx context.Context, inTransit []shipping.Shipment) ([]CountryBand, error) {
	countries, err := s.repos.Countries.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	warehouses, err := s.repos.Warehouses.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	movements, err := s.repos.Movements.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	spends, err := s.repos.Spend.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	stock := inventory.BalanceByCountry(movements, inventory.LocationCountryIndex(warehouses))
	heads, items := shipping.Snapshots(inTransit)
	transit := inventory.InTransitByDestinationCountry(heads, items)
	spend := finance.SpendByCountry(spends)

	operational := inventory.OperationalCountries(countries)
	sort.Slice(operational, func(i, j int) bool { return operational[i].Code < operational[j].Code })

	band := make([]CountryBand, len(operational))
	for i, c := range operational {
		amount, ok := spend[c.Code]
		if !ok {
			amount = decimal.Zero
		}
		band[i] = CountryBand{
			CountryCode:  c.Code,
			CountryName:  c.Name,
			Stock:        stock[c.Code],
			InTransit:    transit[c.Code],
			DailyAdSpend: amount,
		}
	}
	return band, nil
}
