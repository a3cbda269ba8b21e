package stock

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL stock ledger repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Append(ctx context.Context, e *HistoryEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stock_history
		  (id, product_id, product_name, type, quantity, previous_stock, new_stock, reason, actor)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		e.ID, e.ProductID, e.ProductName, e.Type, e.Quantity, e.PreviousStock, e.NewStock, e.Reason, e.Actor)
	return err
}

func (r *postgresRepo) List(ctx context.Context, productID string, limit int) ([]*HistoryEntry, error) {
	query := `
		SELECT id, product_id, product_name, type, quantity, previous_stock, new_stock, reason, actor, created_at
		FROM stock_history`
	args := []interface{}{}
	if productID != "" {
		args = append(args, productID)
		query += ` WHERE product_id = $1`
	}
	args = append(args, limit)
	if productID != "" {
		query += ` ORDER BY created_at DESC LIMIT $2`
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []*HistoryEntry
	for rows.Next() {
		e := &HistoryEntry{}
		if err := rows.Scan(&e.ID, &e.ProductID, &e.ProductName, &e.Type, &e.Quantity,
			&e.PreviousStock, &e.NewStock, &e.Reason, &e.Actor, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
