package payment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/samytrends/retail-api/internal/money"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL payment repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, rec *Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments
		  (id, provider, order_ref, payment_id, amount, status, last_error)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		rec.ID, rec.Provider, rec.OrderRef, rec.PaymentID, int64(rec.Amount), rec.Status, rec.LastError)
	return err
}

func (r *postgresRepo) GetByOrderRef(ctx context.Context, orderRef string) (*Record, error) {
	rec := &Record{}
	var amount int64
	err := r.db.QueryRowContext(ctx, `
		SELECT id, provider, order_ref, payment_id, amount, status, last_error, created_at, updated_at
		FROM payments WHERE order_ref = $1`, orderRef).
		Scan(&rec.ID, &rec.Provider, &rec.OrderRef, &rec.PaymentID, &amount,
			&rec.Status, &rec.LastError, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.New("payment not found")
	}
	if err != nil {
		return nil, err
	}
	rec.Amount = money.Paise(amount)
	return rec, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, paymentID, lastError string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET status = $1, payment_id = $2, last_error = $3, updated_at = NOW()
		WHERE id = $4`,
		status, paymentID, lastError, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.New("payment not found")
	}
	return nil
}

func (r *postgresRepo) List(ctx context.Context, limit int) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, provider, order_ref, payment_id, amount, status, last_error, created_at, updated_at
		FROM payments ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var amount int64
		if err := rows.Scan(&rec.ID, &rec.Provider, &rec.OrderRef, &rec.PaymentID, &amount,
			&rec.Status, &rec.LastError, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		rec.Amount = money.Paise(amount)
		records = append(records, rec)
	}
	return records, rows.Err()
}
