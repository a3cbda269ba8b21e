package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/samytrends/retail-api/internal/modules/order"
	"github.com/samytrends/retail-api/internal/money"
)

// DashboardStats is the back-office landing page summary.
type DashboardStats struct {
	TotalRevenue    money.Paise `json:"total_revenue"`
	OrderCount      int         `json:"order_count"`
	ProductCount    int         `json:"product_count"`
	LowStockCount   int         `json:"low_stock_count"`
	OutOfStockCount int         `json:"out_of_stock_count"`
}

// DailyReport is one persisted end-of-day sales rollup.
type DailyReport struct {
	ID         uuid.UUID              `json:"id"`
	Date       time.Time              `json:"date"`
	OrderCount int                    `json:"order_count"`
	Revenue    money.Paise            `json:"revenue"`
	ByMethod   map[string]money.Paise `json:"by_method"`
	CreatedAt  time.Time              `json:"created_at"`
}

// SalesReport is an on-demand rollup over an arbitrary period.
type SalesReport struct {
	Summary *order.SalesSummary `json:"summary"`
}
