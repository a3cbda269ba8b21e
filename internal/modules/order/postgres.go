package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/samytrends/retail-api/internal/money"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL order repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// Create inserts the order and all its items inside a single transaction.
func (r *postgresRepo) Create(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var details []byte
	if o.CustomerDetails != nil {
		details, err = json.Marshal(o.CustomerDetails)
		if err != nil {
			return fmt.Errorf("encode customer details: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders
		  (id, order_number, invoice_number, channel, status, subtotal, shipping, tax,
		   discount_percent, discount, total, payment_method, payment_ref,
		   customer_id, customer_details, cashier_name)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		o.ID, o.OrderNumber, o.InvoiceNumber, o.Channel, o.Status,
		int64(o.Subtotal), int64(o.Shipping), int64(o.Tax),
		o.DiscountPercent, int64(o.Discount), int64(o.Total),
		o.PaymentMethod, o.PaymentRef, o.CustomerID, nullableJSON(details), o.CashierName)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, quantity, unit_price, line_total)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			o.ID, item.ProductID, item.Name, item.Quantity, int64(item.UnitPrice), int64(item.LineTotal))
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	o, err := r.scanOrder(r.db.QueryRowContext(ctx, selectOrder+` WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	o.Items, err = r.listItems(ctx, o.ID.String())
	return o, err
}

func (r *postgresRepo) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	o, err := r.scanOrder(r.db.QueryRowContext(ctx, selectOrder+` WHERE order_number=$1`, orderNumber))
	if err != nil {
		return nil, err
	}
	o.Items, err = r.listItems(ctx, o.ID.String())
	return o, err
}

func (r *postgresRepo) List(ctx context.Context, channel Channel, status Status, limit int) ([]*Order, error) {
	query := selectOrder + ` WHERE 1=1`
	args := []interface{}{}
	if channel != "" {
		args = append(args, channel)
		query += fmt.Sprintf(" AND channel = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	return r.listOrders(ctx, query, args...)
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]*Order, error) {
	return r.listOrders(ctx, selectOrder+` WHERE customer_id=$1 ORDER BY created_at DESC`, customerID)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	return err
}

func (r *postgresRepo) Summary(ctx context.Context, from, to time.Time) (*SalesSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT payment_method, COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2 AND status <> 'CANCELLED'
		GROUP BY payment_method`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := &SalesSummary{From: from, To: to, ByMethod: map[string]money.Paise{}}
	for rows.Next() {
		var method string
		var count int
		var total int64
		if err := rows.Scan(&method, &count, &total); err != nil {
			return nil, err
		}
		summary.OrderCount += count
		summary.Revenue += money.Paise(total)
		summary.ByMethod[method] = money.Paise(total)
	}
	return summary, rows.Err()
}

// ── internals ─────────────────────────────────────────────────────────────────

const selectOrder = `
	SELECT id, order_number, invoice_number, channel, status, subtotal, shipping, tax,
	       discount_percent, discount, total, payment_method, payment_ref,
	       customer_id, customer_details, cashier_name, created_at, updated_at
	FROM orders`

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scanOrder(row rowScanner) (*Order, error) {
	o := &Order{}
	var invoiceNumber, paymentRef, cashierName sql.NullString
	var details []byte
	err := row.Scan(&o.ID, &o.OrderNumber, &invoiceNumber, &o.Channel, &o.Status,
		&o.Subtotal, &o.Shipping, &o.Tax,
		&o.DiscountPercent, &o.Discount, &o.Total,
		&o.PaymentMethod, &paymentRef, &o.CustomerID, &details, &cashierName,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.InvoiceNumber = invoiceNumber.String
	o.PaymentRef = paymentRef.String
	o.CashierName = cashierName.String
	if len(details) > 0 {
		cd := &CustomerDetails{}
		if err := json.Unmarshal(details, cd); err != nil {
			return nil, fmt.Errorf("decode customer details: %w", err)
		}
		o.CustomerDetails = cd
	}
	return o, nil
}

func (r *postgresRepo) listOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []*Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.Items, err = r.listItems(ctx, o.ID.String()); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) listItems(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name, quantity, unit_price, line_total
		FROM order_items WHERE order_id=$1 ORDER BY name`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func nullableJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}
