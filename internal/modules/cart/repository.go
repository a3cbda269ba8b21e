package cart

import "context"

// Repository defines per-user storage for cart lines and wishlist items.
type Repository interface {
	ListLines(ctx context.Context, userID string) ([]*Line, error)
	GetLine(ctx context.Context, userID, productID string) (*Line, error)
	SaveLine(ctx context.Context, line *Line) error
	DeleteLine(ctx context.Context, userID, productID string) error
	ClearLines(ctx context.Context, userID string) error

	ListWishlist(ctx context.Context, userID string) ([]*WishlistItem, error)
	HasWishlistItem(ctx context.Context, userID, productID string) (bool, error)
	SaveWishlistItem(ctx context.Context, item *WishlistItem) error
	DeleteWishlistItem(ctx context.Context, userID, productID string) error
	ClearWishlist(ctx context.Context, userID string) error
}
