package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL product repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, category, price, stock, min_stock, sku, image_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.Name, p.Category, int64(p.Price), p.Stock, p.MinStock, p.SKU, p.ImageURL)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, name, category, price, stock, min_stock, sku, image_url, created_at, updated_at
		FROM products WHERE id = $1`, id))
}

func (r *postgresRepo) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	query := `
		SELECT id, name, category, price, stock, min_stock, sku, image_url, created_at, updated_at
		FROM products WHERE 1=1`
	args := []interface{}{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR sku ILIKE $%d)", len(args), len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}

	switch filter.SortBy {
	case "price":
		query += " ORDER BY price"
	case "stock":
		query += " ORDER BY stock"
	default:
		query += " ORDER BY name"
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []*Product
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name=$1, category=$2, price=$3, stock=GREATEST($4, 0), min_stock=$5, sku=$6, image_url=$7, updated_at=NOW()
		WHERE id=$8`,
		p.Name, p.Category, int64(p.Price), p.Stock, p.MinStock, p.SKU, p.ImageURL, p.ID)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}

func (r *postgresRepo) SetStock(ctx context.Context, id string, stock int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products SET stock = GREATEST($1, 0), updated_at = NOW() WHERE id = $2`, stock, id)
	return err
}

// ── scanner ───────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Product, error) {
	p := &Product{}
	var sku, imageURL sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock, &p.MinStock,
		&sku, &imageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.SKU = sku.String
	p.ImageURL = imageURL.String
	return p, nil
}
