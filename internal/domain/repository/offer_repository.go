package repository

import (
	"context"

	"passr/internal/domain/entity"
)

type OfferRepository interface {
	Create(ctx context.Context, offer *entity.Offer) error
	GetByID(ctx context.Context, id string) (*entity.Offer, error)
	GetByBuyer(ctx context.Context, buyerID string) ([]*entity.Offer, error)
	GetBySeller(ctx context.Context, sellerID string) ([]*entity.Offer, error)

	// GetByListing returns every offer with a line item referencing the
	// listing, regardless of status.
	GetByListing(ctx context.Context, listingID string) ([]*entity.Offer, error)

	UpdateStatus(ctx context.Context, id, status string) (*entity.Offer, error)

	// DeleteByListing removes all offers referencing the listing and
	// returns how many were removed.
	DeleteByListing(ctx context.Context, listingID string) (int, error)
}
