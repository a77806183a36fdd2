package repository

import (
	"context"
	"time"

	"passr/internal/domain/entity"
)

// ListingFilter narrows List queries; zero values mean "no constraint".
type ListingFilter struct {
	Category    string
	SellerID    string
	MinPrice    float64
	MaxPrice    float64
	ExcludeSold bool
	SortBy      string // "newest", "price_asc", "price_desc"
}

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListingFilter, limit, offset int) ([]*entity.Listing, int64, error)

	// FindExpired returns listings with expiresAt <= now.
	FindExpired(ctx context.Context, now time.Time) ([]*entity.Listing, error)

	// FindExpiringBetween returns listings with from <= expiresAt < to.
	FindExpiringBetween(ctx context.Context, from, to time.Time) ([]*entity.Listing, error)
}
