package cart

import (
	"context"
	"database/sql"
	"errors"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL cart repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) ListLines(ctx context.Context, userID string) ([]*Line, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, product_id, name, price, stock, quantity, image_url, added_at
		FROM cart_lines WHERE user_id = $1 ORDER BY added_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []*Line
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *postgresRepo) GetLine(ctx context.Context, userID, productID string) (*Line, error) {
	l, err := scanLine(r.db.QueryRowContext(ctx, `
		SELECT user_id, product_id, name, price, stock, quantity, image_url, added_at
		FROM cart_lines WHERE user_id = $1 AND product_id = $2`, userID, productID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLineNotFound
	}
	return l, err
}

func (r *postgresRepo) SaveLine(ctx context.Context, line *Line) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_lines (user_id, product_id, name, price, stock, quantity, image_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity`,
		line.UserID, line.ProductID, line.Name, int64(line.Price), line.Stock, line.Quantity, line.ImageURL)
	return err
}

func (r *postgresRepo) DeleteLine(ctx context.Context, userID, productID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_lines WHERE user_id = $1 AND product_id = $2`, userID, productID)
	return err
}

func (r *postgresRepo) ClearLines(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID)
	return err
}

func (r *postgresRepo) ListWishlist(ctx context.Context, userID string) ([]*WishlistItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, product_id, name, price, image_url, added_at
		FROM wishlist_items WHERE user_id = $1 ORDER BY added_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*WishlistItem
	for rows.Next() {
		it := &WishlistItem{}
		var imageURL sql.NullString
		if err := rows.Scan(&it.UserID, &it.ProductID, &it.Name, &it.Price, &imageURL, &it.AddedAt); err != nil {
			return nil, err
		}
		it.ImageURL = imageURL.String
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *postgresRepo) HasWishlistItem(ctx context.Context, userID, productID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM wishlist_items WHERE user_id = $1 AND product_id = $2)`,
		userID, productID).Scan(&exists)
	return exists, err
}

func (r *postgresRepo) SaveWishlistItem(ctx context.Context, item *WishlistItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wishlist_items (user_id, product_id, name, price, image_url)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (user_id, product_id) DO NOTHING`,
		item.UserID, item.ProductID, item.Name, int64(item.Price), item.ImageURL)
	return err
}

func (r *postgresRepo) DeleteWishlistItem(ctx context.Context, userID, productID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	return err
}

func (r *postgresRepo) ClearWishlist(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM wishlist_items WHERE user_id = $1`, userID)
	return err
}

// ── scanner ───────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanLine(row rowScanner) (*Line, error) {
	l := &Line{}
	var imageURL sql.NullString
	err := row.Scan(&l.UserID, &l.ProductID, &l.Name, &l.Price, &l.Stock, &l.Quantity, &imageURL, &l.AddedAt)
	if err != nil {
		return nil, err
	}
	l.ImageURL = imageURL.String
	return l, nil
}
