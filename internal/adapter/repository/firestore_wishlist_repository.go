package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"passr/internal/domain/entity"
	"passr/internal/domain/repository"
	"passr/pkg/errors"
)

type firestoreWishlistRepository struct {
	client *firestore.Client
}

func NewFirestoreWishlistRepository(client *firestore.Client) repository.WishlistRepository {
	return &firestoreWishlistRepository{client: client}
}

// wishlistDocID keys entries by (user, listing) so the pair is unique by
// construction.
func wishlistDocID(userID, listingID string) string {
	return fmt.Sprintf("%s_%s", userID, listingID)
}

func (r *firestoreWishlistRepository) Add(ctx context.Context, userID, listingID string) (*entity.WishlistItem, error) {
	id := wishlistDocID(userID, listingID)

	doc, err := r.client.Collection("wishlists").Doc(id).Get(ctx)
	if err == nil && doc.Exists() {
		var existing entity.WishlistItem
		if err := doc.DataTo(&existing); err != nil {
			return nil, errors.Internal("Failed to parse wishlist item", err)
		}
		return &existing, nil
	}
	if err != nil && status.Code(err) != codes.NotFound {
		return nil, errors.Internal("Failed to check wishlist", err)
	}

	item := entity.WishlistItem{
		ID:        id,
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now(),
	}

	if _, err := r.client.Collection("wishlists").Doc(id).Set(ctx, item); err != nil {
		return nil, errors.Internal("Failed to add to wishlist", err)
	}

	return &item, nil
}

func (r *firestoreWishlistRepository) Remove(ctx context.Context, userID, listingID string) error {
	id := wishlistDocID(userID, listingID)

	if _, err := r.client.Collection("wishlists").Doc(id).Delete(ctx); err != nil {
		return errors.Internal("Failed to remove from wishlist", err)
	}

	return nil
}

func (r *firestoreWishlistRepository) IsInWishlist(ctx context.Context, userID, listingID string) (bool, error) {
	doc, err := r.client.Collection("wishlists").Doc(wishlistDocID(userID, listingID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errors.Internal("Failed to check wishlist", err)
	}

	return doc.Exists(), nil
}

func (r *firestoreWishlistRepository) GetByUser(ctx context.Context, userID string) ([]*entity.WishlistItem, error) {
	query := r.client.Collection("wishlists").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	iter := query.Documents(ctx)
	var items []*entity.WishlistItem

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate wishlist", err)
		}
		var item entity.WishlistItem
		if err := doc.DataTo(&item); err != nil {
			return nil, errors.Internal("Failed to parse wishlist item", err)
		}
		items = append(items, &item)
	}

	return items, nil
}

func (r *firestoreWishlistRepository) GetUserIDsByListing(ctx context.Context, listingID string) ([]string, error) {
	query := r.client.Collection("wishlists").Where("listingId", "==", listingID)

	iter := query.Documents(ctx)
	var userIDs []string

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate wishlist users", err)
		}
		var item entity.WishlistItem
		if err := doc.DataTo(&item); err != nil {
			continue
		}
		userIDs = append(userIDs, item.UserID)
	}

	return userIDs, nil
}
