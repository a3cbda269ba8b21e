package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/samytrends/retail-api/internal/modules/catalog"
)

// Service defines storefront cart and wishlist business logic.
type Service interface {
	GetCart(ctx context.Context, userID string) (*Cart, error)
	// AddItem puts one unit of the product in the cart, incrementing an
	// existing line only while it stays at or under the stock ceiling.
	AddItem(ctx context.Context, userID, productID string) (*Cart, error)
	// SetQuantity updates a line's quantity. Zero or less removes the line;
	// a value above the stock ceiling is rejected.
	SetQuantity(ctx context.Context, userID, productID string, quantity int) (*Cart, error)
	// RemoveItem deletes a line. Removing an absent line is a no-op.
	RemoveItem(ctx context.Context, userID, productID string) (*Cart, error)
	ClearCart(ctx context.Context, userID string) error

	GetWishlist(ctx context.Context, userID string) ([]*WishlistItem, error)
	// ToggleWishlist adds the product if absent and removes it if present.
	ToggleWishlist(ctx context.Context, userID, productID string) ([]*WishlistItem, error)
	ClearWishlist(ctx context.Context, userID string) error
}

type service struct {
	repo     Repository
	products catalog.Repository
}

// NewService creates a new cart service.
func NewService(repo Repository, products catalog.Repository) Service {
	return &service{repo: repo, products: products}
}

func (s *service) GetCart(ctx context.Context, userID string) (*Cart, error) {
	lines, err := s.repo.ListLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildCart(lines), nil
}

func (s *service) AddItem(ctx context.Context, userID, productID string) (*Cart, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	line, err := s.repo.GetLine(ctx, userID, productID)
	switch {
	case err == nil:
		// Existing line: bump only while under the recorded ceiling.
		if line.Quantity < line.Stock {
			line.Quantity++
			if err := s.repo.SaveLine(ctx, line); err != nil {
				return nil, err
			}
		}
	case errors.Is(err, sql.ErrNoRows) || isNotFound(err):
		p, perr := s.products.GetByID(ctx, productID)
		if perr != nil {
			return nil, fmt.Errorf("product not found: %w", perr)
		}
		if p.Stock == 0 {
			return nil, fmt.Errorf("product %s is out of stock", p.Name)
		}
		nl := &Line{
			UserID:    uid,
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Stock:     p.Stock,
			Quantity:  1,
			ImageURL:  p.ImageURL,
		}
		if err := s.repo.SaveLine(ctx, nl); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

func (s *service) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	line, err := s.repo.GetLine(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isNotFound(err) {
			return s.GetCart(ctx, userID)
		}
		return nil, err
	}

	switch {
	case quantity <= 0:
		if err := s.repo.DeleteLine(ctx, userID, productID); err != nil {
			return nil, err
		}
	case quantity > line.Stock:
		return nil, fmt.Errorf("only %d of %s in stock", line.Stock, line.Name)
	default:
		line.Quantity = quantity
		if err := s.repo.SaveLine(ctx, line); err != nil {
			return nil, err
		}
	}

	return s.GetCart(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, userID, productID string) (*Cart, error) {
	if err := s.repo.DeleteLine(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

func (s *service) ClearCart(ctx context.Context, userID string) error {
	return s.repo.ClearLines(ctx, userID)
}

func (s *service) GetWishlist(ctx context.Context, userID string) ([]*WishlistItem, error) {
	return s.repo.ListWishlist(ctx, userID)
}

func (s *service) ToggleWishlist(ctx context.Context, userID, productID string) ([]*WishlistItem, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	present, err := s.repo.HasWishlistItem(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if present {
		if err := s.repo.DeleteWishlistItem(ctx, userID, productID); err != nil {
			return nil, err
		}
	} else {
		p, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("product not found: %w", err)
		}
		item := &WishlistItem{
			UserID:    uid,
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			ImageURL:  p.ImageURL,
		}
		if err := s.repo.SaveWishlistItem(ctx, item); err != nil {
			return nil, err
		}
	}
	return s.repo.ListWishlist(ctx, userID)
}

func (s *service) ClearWishlist(ctx context.Context, userID string) error {
	return s.repo.ClearWishlist(ctx, userID)
}

func buildCart(lines []*Line) *Cart {
	c := &Cart{Items: lines}
	if c.Items == nil {
		c.Items = []*Line{}
	}
	for _, l := range lines {
		c.Subtotal += l.LineTotal()
	}
	return c
}

func isNotFound(err error) bool {
	return err != nil && errors.Is(err, ErrLineNotFound)
}

// ErrLineNotFound is returned by repositories when a cart line is absent.
var ErrLineNotFound = errors.New("cart line not found")
