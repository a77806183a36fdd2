package repository

import (
	"context"

	"passr/internal/domain/entity"
)

type WishlistRepository interface {
	Add(ctx context.Context, userID, listingID string) (*entity.WishlistItem, error)
	Remove(ctx context.Context, userID, listingID string) error
	IsInWishlist(ctx context.Context, userID, listingID string) (bool, error)
	GetByUser(ctx context.Context, userID string) ([]*entity.WishlistItem, error)

	// GetUserIDsByListing returns every user who wishlisted the listing.
	GetUserIDsByListing(ctx context.Context, listingID string) ([]string, error)
}
