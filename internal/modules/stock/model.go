package stock

import (
	"time"

	"github.com/google/uuid"
)

// AdjustmentType is the direction of a stock movement.
type AdjustmentType string

const (
	AdjustAdd    AdjustmentType = "add"
	AdjustRemove AdjustmentType = "remove"
)

// HistoryEntry is an append-only record of one stock movement. Entries are
// never edited or deleted.
type HistoryEntry struct {
	ID            uuid.UUID      `json:"id"`
	ProductID     uuid.UUID      `json:"product_id"`
	ProductName   string         `json:"product_name"`
	Type          AdjustmentType `json:"type"`
	Quantity      int            `json:"quantity"`
	PreviousStock int            `json:"previous_stock"`
	NewStock      int            `json:"new_stock"`
	Reason        string         `json:"reason"`
	Actor         string         `json:"actor"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Stats summarises the catalog's stock position for the admin dashboard.
type Stats struct {
	TotalProducts int `json:"total_products"`
	TotalStock    int `json:"total_stock"`
	LowStock      int `json:"low_stock"`
	OutOfStock    int `json:"out_of_stock"`
}

// AdjustRequest is the payload for a manual stock adjustment.
type AdjustRequest struct {
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}
