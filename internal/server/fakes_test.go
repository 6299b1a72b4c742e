package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	caredomain "github.com/smallbiznis/bizpulse/internal/care/domain"
	"github.com/smallbiznis/bizpulse/internal/clock"
	"github.com/smallbiznis/bizpulse/internal/config"
	crmdomain "github.com/smallbiznis/bizpulse/internal/crm/domain"
	"github.com/smallbiznis/bizpulse/internal/daterange"
	erpdomain "github.com/smallbiznis/bizpulse/internal/erp/domain"
	logisticsdomain "github.com/smallbiznis/bizpulse/internal/logistics/domain"
	"github.com/smallbiznis/bizpulse/internal/observability"
	"github.com/smallbiznis/bizpulse/internal/ratelimit"
)

type fakeERPService struct {
	err        error
	total      erpdomain.SalesTotal
	categories []erpdomain.CategorySales
	overdue    erpdomain.Overdue
	items      []erpdomain.InventoryItem

	lastRange daterange.Range
	lastLimit int
	calls     int
}

func (f *fakeERPService) SalesTotal(ctx context.Context, r daterange.Range) (erpdomain.SalesTotal, error) {
	f.calls++
	f.lastRange = r
	return f.total, f.err
}

func (f *fakeERPService) SalesByCategory(ctx context.Context, r daterange.Range) ([]erpdomain.CategorySales, error) {
	f.calls++
	f.lastRange = r
	if f.err != nil {
		return nil, f.err
	}
	if f.categories == nil {
		return []erpdomain.CategorySales{}, nil
	}
	return f.categories, nil
}

func (f *fakeERPService) OverdueAmount(ctx context.Context, r daterange.Range) (erpdomain.Overdue, error) {
	f.calls++
	f.lastRange = r
	return f.overdue, f.err
}

func (f *fakeERPService) HotSelling(ctx context.Context, limit int) ([]erpdomain.InventoryItem, error) {
	f.calls++
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if limit > 100 {
		return nil, erpdomain.ErrInvalidLimit
	}
	return f.items, nil
}

func (f *fakeERPService) LowStock(ctx context.Context) ([]erpdomain.InventoryItem, error) {
	f.calls++
	return f.items, f.err
}

type fakeLogisticsService struct {
	err        error
	shipments  logisticsdomain.ShipmentSummary
	deliveries logisticsdomain.DeliverySummary
	list       []logisticsdomain.Delivery

	lastRange daterange.Range
	lastType  string
}

func (f *fakeLogisticsService) ShipmentSummary(ctx context.Context, r daterange.Range) (logisticsdomain.ShipmentSummary, error) {
	f.lastRange = r
	return f.shipments, f.err
}

func (f *fakeLogisticsService) DeliverySummary(ctx context.Context, r daterange.Range) (logisticsdomain.DeliverySummary, error) {
	f.lastRange = r
	return f.deliveries, f.err
}

func (f *fakeLogisticsService) DeliveryList(ctx context.Context, r daterange.Range, deliveryType string) ([]logisticsdomain.Delivery, error) {
	f.lastRange = r
	f.lastType = deliveryType
	if f.err != nil {
		return nil, f.err
	}
	if deliveryType != "" && !logisticsdomain.IsDeliveryType(deliveryType) {
		return nil, logisticsdomain.ErrInvalidDeliveryType
	}
	if f.list == nil {
		return []logisticsdomain.Delivery{}, nil
	}
	return f.list, nil
}

type fakeCareService struct {
	err        error
	total      caredomain.TicketTotal
	categories []caredomain.TicketCategory
	trends     []caredomain.TicketTrend

	lastRange daterange.Range
}

func (f *fakeCareService) TotalTickets(ctx context.Context, r daterange.Range) (caredomain.TicketTotal, error) {
	f.lastRange = r
	return f.total, f.err
}

func (f *fakeCareService) TicketsByCategory(ctx context.Context, r daterange.Range) ([]caredomain.TicketCategory, error) {
	f.lastRange = r
	return f.categories, f.err
}

func (f *fakeCareService) TicketTrends(ctx context.Context, r daterange.Range) ([]caredomain.TicketTrend, error) {
	f.lastRange = r
	return f.trends, f.err
}

type fakeCRMService struct {
	err       error
	reporting crmdomain.LeadReporting
	leads     []crmdomain.Lead
	statuses  []crmdomain.LeadStatusCount

	lastRange daterange.Range
}

func (f *fakeCRMService) LeadReporting(ctx context.Context, r daterange.Range) (crmdomain.LeadReporting, error) {
	f.lastRange = r
	return f.reporting, f.err
}

func (f *fakeCRMService) Customers(ctx context.Context, r daterange.Range) ([]crmdomain.Lead, error) {
	f.lastRange = r
	return f.leads, f.err
}

func (f *fakeCRMService) LeadsByStatus(ctx context.Context, r daterange.Range) ([]crmdomain.LeadStatusCount, error) {
	f.lastRange = r
	return f.statuses, f.err
}

type fakeLimiter struct {
	result  ratelimit.Result
	err     error
	clients []string
}

func (f *fakeLimiter) Enabled() bool { return true }

func (f *fakeLimiter) Allow(ctx context.Context, client, endpoint string) (ratelimit.Result, error) {
	f.clients = append(f.clients, client)
	return f.result, f.err
}

type testServices struct {
	clock     *clock.FakeClock
	erp       *fakeERPService
	logistics *fakeLogisticsService
	care      *fakeCareService
	crm       *fakeCRMService
}

var testNow = time.Date(2024, 5, 16, 9, 30, 0, 0, time.UTC)

func newTestServer(t *testing.T, limiter rateLimiter) (*Server, *testServices) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svcs := &testServices{
		clock:     clock.NewFakeClock(testNow),
		erp:       &fakeERPService{},
		logistics: &fakeLogisticsService{},
		care:      &fakeCareService{},
		crm:       &fakeCRMService{},
	}

	engine := NewEngine(EngineParams{
		Config:    config.Config{Environment: "test"},
		ObsConfig: observability.Config{Service: observability.ServiceInfo{Environment: "test"}},
	})
	s := NewServer(ServerParams{
		Gin:          engine,
		Clock:        svcs.clock,
		ERPSvc:       svcs.erp,
		LogisticsSvc: svcs.logistics,
		CareSvc:      svcs.care,
		CRMSvc:       svcs.crm,
	})
	if limiter != nil {
		s.limiter = limiter
	}
	return s, svcs
}

func doGet(s *Server, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = "203.0.113.7:51000"
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	return rec
}
