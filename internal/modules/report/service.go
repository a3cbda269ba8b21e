package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/samytrends/retail-api/internal/modules/catalog"
	"github.com/samytrends/retail-api/internal/modules/order"
)

// Service defines reporting business logic.
type Service interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	Sales(ctx context.Context, from, to time.Time) (*SalesReport, error)
	// RunDailyReport rolls up the given calendar day and persists it.
	// The scheduler calls it with yesterday's date just after midnight.
	RunDailyReport(ctx context.Context, day time.Time) (*DailyReport, error)
	DailyReports(ctx context.Context, limit int) ([]*DailyReport, error)
}

type service struct {
	orders   order.Repository
	products catalog.Repository
	repo     Repository
}

// NewService creates a new report service.
func NewService(orders order.Repository, products catalog.Repository, repo Repository) Service {
	return &service{orders: orders, products: products, repo: repo}
}

func (s *service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	// All-time revenue: the summary window is open on the left.
	summary, err := s.orders.Summary(ctx, time.Time{}, time.Now())
	if err != nil {
		return nil, err
	}

	products, err := s.products.List(ctx, catalog.ListFilter{Limit: 10000})
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalRevenue: summary.Revenue,
		OrderCount:   summary.OrderCount,
		ProductCount: len(products),
	}
	for _, p := range products {
		switch p.Status() {
		case catalog.StockOut:
			stats.OutOfStockCount++
		case catalog.StockLow:
			stats.LowStockCount++
		}
	}
	return stats, nil
}

func (s *service) Sales(ctx context.Context, from, to time.Time) (*SalesReport, error) {
	if to.IsZero() {
		to = time.Now()
	}
	summary, err := s.orders.Summary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &SalesReport{Summary: summary}, nil
}

func (s *service) RunDailyReport(ctx context.Context, day time.Time) (*DailyReport, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	summary, err := s.orders.Summary(ctx, start, end)
	if err != nil {
		return nil, err
	}

	rep := &DailyReport{
		ID:         uuid.New(),
		Date:       start,
		OrderCount: summary.OrderCount,
		Revenue:    summary.Revenue,
		ByMethod:   summary.ByMethod,
	}
	if err := s.repo.Save(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

func (s *service) DailyReports(ctx context.Context, limit int) ([]*DailyReport, error) {
	if limit <= 0 || limit > 365 {
		limit = 30
	}
	return s.repo.List(ctx, limit)
}
