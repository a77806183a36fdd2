package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"passr/internal/domain/entity"
	"passr/internal/domain/repository"
	"passr/pkg/errors"
)

type firestoreOfferRepository struct {
	client *firestore.Client
}

func NewFirestoreOfferRepository(client *firestore.Client) repository.OfferRepository {
	return &firestoreOfferRepository{
		client: client,
	}
}

func (r *firestoreOfferRepository) Create(ctx context.Context, offer *entity.Offer) error {
	if offer.ID == "" {
		offer.ID = uuid.New().String()
	}

	if len(offer.ListingIDs) == 0 {
		offer.ListingIDs = make([]string, 0, len(offer.Items))
		for _, item := range offer.Items {
			offer.ListingIDs = append(offer.ListingIDs, item.ListingID)
		}
	}

	now := time.Now()
	offer.CreatedAt = now
	offer.UpdatedAt = now

	_, err := r.client.Collection("offers").Doc(offer.ID).Set(ctx, offer)
	if err != nil {
		return errors.Internal("Failed to create offer", err)
	}

	return nil
}

func (r *firestoreOfferRepository) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	doc, err := r.client.Collection("offers").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Offer", err)
		}
		return nil, errors.Internal("Failed to get offer", err)
	}

	var offer entity.Offer
	if err := doc.DataTo(&offer); err != nil {
		return nil, errors.Internal("Failed to parse offer data", err)
	}

	return &offer, nil
}

func (r *firestoreOfferRepository) GetByBuyer(ctx context.Context, buyerID string) ([]*entity.Offer, error) {
	query := r.client.Collection("offers").
		Where("buyerId", "==", buyerID).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query)
}

func (r *firestoreOfferRepository) GetBySeller(ctx context.Context, sellerID string) ([]*entity.Offer, error) {
	query := r.client.Collection("offers").
		Where("sellerId", "==", sellerID).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query)
}

func (r *firestoreOfferRepository) GetByListing(ctx context.Context, listingID string) ([]*entity.Offer, error) {
	query := r.client.Collection("offers").
		Where("listingIds", "array-contains", listingID).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query)
}

func (r *firestoreOfferRepository) UpdateStatus(ctx context.Context, id, newStatus string) (*entity.Offer, error) {
	_, err := r.client.Collection("offers").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: newStatus},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Offer", err)
		}
		return nil, errors.Internal("Failed to update offer status", err)
	}

	return r.GetByID(ctx, id)
}

func (r *firestoreOfferRepository) DeleteByListing(ctx context.Context, listingID string) (int, error) {
	docs, err := r.client.Collection("offers").
		Where("listingIds", "array-contains", listingID).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to query offers for listing", err)
	}

	if len(docs) == 0 {
		return 0, nil
	}

	bw := r.client.BulkWriter(ctx)
	for _, doc := range docs {
		if _, err := bw.Delete(doc.Ref); err != nil {
			bw.End()
			return 0, errors.Internal("Failed to delete offers for listing", err)
		}
	}
	bw.End()

	return len(docs), nil
}

func (r *firestoreOfferRepository) collect(ctx context.Context, query firestore.Query) ([]*entity.Offer, error) {
	iter := query.Documents(ctx)
	var offers []*entity.Offer

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate offers", err)
		}
		var offer entity.Offer
		if err := doc.DataTo(&offer); err != nil {
			return nil, errors.Internal("Failed to parse offer data", err)
		}
		offers = append(offers, &offer)
	}

	return offers, nil
}
