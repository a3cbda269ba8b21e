package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/samytrends/retail-api/internal/money"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL daily report repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Save(ctx context.Context, rep *DailyReport) error {
	byMethod, err := json.Marshal(rep.ByMethod)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO daily_reports (id, report_date, order_count, revenue, by_method)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (report_date) DO UPDATE
		SET order_count = EXCLUDED.order_count,
		    revenue = EXCLUDED.revenue,
		    by_method = EXCLUDED.by_method`,
		rep.ID, rep.Date.Format("2006-01-02"), rep.OrderCount, int64(rep.Revenue), byMethod)
	return err
}

func (r *postgresRepo) GetByDate(ctx context.Context, date time.Time) (*DailyReport, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, report_date, order_count, revenue, by_method, created_at
		FROM daily_reports WHERE report_date = $1`, date.Format("2006-01-02"))
	rep, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.New("report not found")
	}
	return rep, err
}

func (r *postgresRepo) List(ctx context.Context, limit int) ([]*DailyReport, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, report_date, order_count, revenue, by_method, created_at
		FROM daily_reports ORDER BY report_date DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*DailyReport
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(row rowScanner) (*DailyReport, error) {
	rep := &DailyReport{}
	var revenue int64
	var byMethod []byte
	if err := row.Scan(&rep.ID, &rep.Date, &rep.OrderCount, &revenue, &byMethod, &rep.CreatedAt); err != nil {
		return nil, err
	}
	rep.Revenue = money.Paise(revenue)
	if len(byMethod) > 0 {
		if err := json.Unmarshal(byMethod, &rep.ByMethod); err != nil {
			return nil, err
		}
	}
	return rep, nil
}
