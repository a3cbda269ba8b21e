package report

import (
	"context"
	"time"
)

// Repository persists daily sales rollups.
type Repository interface {
	// Save upserts the rollup for its date so a rerun replaces the row.
	Save(ctx context.Context, r *DailyReport) error
	GetByDate(ctx context.Context, date time.Time) (*DailyReport, error)
	List(ctx context.Context, limit int) ([]*DailyReport, error)
}
