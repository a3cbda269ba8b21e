package user

import (
	"context"
	"database/sql"

	"github.com/samytrends/retail-api/internal/money"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, phone, role)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.PasswordHash, user.Name, user.Phone, user.Role)
	return err
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, name, phone, role, order_count, total_spent, created_at, updated_at
		FROM users WHERE id = $1`, id))
}

func (r *postgresRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, name, phone, role, order_count, total_spent, created_at, updated_at
		FROM users WHERE email = $1`, email))
}

func (r *postgresRepository) ListUsers(ctx context.Context) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, password_hash, name, phone, role, order_count, total_spent, created_at, updated_at
		FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []*User
	for rows.Next() {
		u, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *postgresRepository) UpdateUser(ctx context.Context, user *User) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET name = $1, phone = $2, updated_at = NOW() WHERE id = $3`,
		user.Name, user.Phone, user.ID)
	return err
}

func (r *postgresRepository) UpdateRole(ctx context.Context, id string, role Role) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`, role, id)
	return err
}

func (r *postgresRepository) RecordOrder(ctx context.Context, id string, amount money.Paise) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET order_count = order_count + 1, total_spent = total_spent + $1, updated_at = NOW()
		WHERE id = $2`, int64(amount), id)
	return err
}

// ── scanner ───────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepository) scan(row rowScanner) (*User, error) {
	u := &User{}
	var name, phone sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &name, &phone, &u.Role,
		&u.OrderCount, &u.TotalSpent, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Name = name.String
	u.Phone = phone.String
	return u, nil
}
