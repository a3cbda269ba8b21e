package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/samytrends/retail-api/internal/money"
)

type memoryRepo struct {
	byID map[string]*User
}

func newMemoryRepo() *memoryRepo { return &memoryRepo{byID: map[string]*User{}} }

func (r *memoryRepo) CreateUser(_ context.Context, u *User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return errors.New("email already registered")
		}
	}
	r.byID[u.ID.String()] = u
	return nil
}
func (r *memoryRepo) GetUserByID(_ context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}
func (r *memoryRepo) GetUserByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}
func (r *memoryRepo) ListUsers(_ context.Context) ([]*User, error) {
	var out []*User
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}
func (r *memoryRepo) UpdateUser(_ context.Context, u *User) error {
	r.byID[u.ID.String()] = u
	return nil
}
func (r *memoryRepo) UpdateRole(_ context.Context, id string, role Role) error {
	u, ok := r.byID[id]
	if !ok {
		return errors.New("user not found")
	}
	u.Role = role
	return nil
}
func (r *memoryRepo) RecordOrder(_ context.Context, id string, amount money.Paise) error {
	u, ok := r.byID[id]
	if !ok {
		return errors.New("user not found")
	}
	u.OrderCount++
	u.TotalSpent += amount
	return nil
}

func TestRegisterUserHashesPassword(t *testing.T) {
	svc := NewService(newMemoryRepo())

	u, err := svc.RegisterUser(context.Background(), RegisterRequest{
		Email:    "  Priya@Example.com ",
		Password: "s3cret",
		Name:     "Priya Sharma",
	})
	require.NoError(t, err)

	assert.Equal(t, "priya@example.com", u.Email)
	assert.Equal(t, RoleCustomer, u.Role)
	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))
}

func TestRegisterUserValidation(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.RegisterUser(context.Background(), RegisterRequest{Password: "s3cret"})
	assert.EqualError(t, err, "email is required")

	_, err = svc.RegisterUser(context.Background(), RegisterRequest{Email: "a@b.com", Password: "123"})
	assert.EqualError(t, err, "password must be at least 6 characters")
}

func TestRegisterUserIgnoresRoleHint(t *testing.T) {
	svc := NewService(newMemoryRepo())

	for _, hint := range []string{"admin", "cashier", "superuser"} {
		u, err := svc.RegisterUser(context.Background(), RegisterRequest{
			Email:    hint + "@example.com",
			Password: "s3cret",
			RoleHint: hint,
		})
		require.NoError(t, err)
		assert.Equal(t, RoleCustomer, u.Role)
	}
}

func TestUpdateRole(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	u, err := svc.RegisterUser(context.Background(), RegisterRequest{Email: "x@example.com", Password: "s3cret"})
	require.NoError(t, err)

	updated, err := svc.UpdateRole(context.Background(), u.ID.String(), "Cashier")
	require.NoError(t, err)
	assert.Equal(t, RoleCashier, updated.Role)

	_, err = svc.UpdateRole(context.Background(), u.ID.String(), "root")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid role")
}

func TestRecordOrderBumpsStats(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	u, err := svc.RegisterUser(context.Background(), RegisterRequest{Email: "x@example.com", Password: "s3cret"})
	require.NoError(t, err)

	require.NoError(t, repo.RecordOrder(context.Background(), u.ID.String(), money.FromRupeeInt(2500)))
	require.NoError(t, repo.RecordOrder(context.Background(), u.ID.String(), money.FromRupeeInt(900)))

	fetched, err := svc.GetUser(context.Background(), u.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.OrderCount)
	assert.Equal(t, money.FromRupeeInt(3400), fetched.TotalSpent)
}
