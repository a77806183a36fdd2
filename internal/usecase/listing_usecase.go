package usecase

import (
	"context"
	"time"

	"passr/internal/domain/entity"
	"passr/internal/domain/repository"
	"passr/pkg/errors"
	"passr/pkg/logger"
)

type ListingUseCase struct {
	listingRepo  repository.ListingRepository
	wishlistRepo repository.WishlistRepository
	offerUseCase *OfferUseCase
	chatUseCase  *ChatUseCase
	notifier     Notifier
	ttl          time.Duration
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	wishlistRepo repository.WishlistRepository,
	offerUseCase *OfferUseCase,
	chatUseCase *ChatUseCase,
	notifier Notifier,
	ttl time.Duration,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo:  listingRepo,
		wishlistRepo: wishlistRepo,
		offerUseCase: offerUseCase,
		chatUseCase:  chatUseCase,
		notifier:     notifier,
		ttl:          ttl,
	}
}

type CreateListingInput struct {
	Title           string   `json:"title" validate:"required,min=3,max=100"`
	Description     string   `json:"description" validate:"required,min=10"`
	Price           float64  `json:"price" validate:"required,gt=0"`
	Category        string   `json:"category" validate:"required"`
	Brand           string   `json:"brand"`
	Condition       string   `json:"condition" validate:"required"`
	LivingCommunity string   `json:"living_community"`
	Urgent          bool     `json:"urgent"`
	EventDate       string   `json:"event_date"`
	Venue           string   `json:"venue"`
	Images          []string `json:"images"`
	CoverImage      string   `json:"cover_image"`
}

// CreateListing posts a new listing with the expiry deadline fixed up front
// from the configured TTL.
func (uc *ListingUseCase) CreateListing(ctx context.Context, sellerID string, input CreateListingInput) (*entity.Listing, error) {
	now := time.Now()
	listing := &entity.Listing{
		SellerID:        sellerID,
		Title:           input.Title,
		Description:     input.Description,
		Price:           input.Price,
		Category:        input.Category,
		Brand:           input.Brand,
		Condition:       input.Condition,
		LivingCommunity: input.LivingCommunity,
		Urgent:          input.Urgent,
		EventDate:       input.EventDate,
		Venue:           input.Venue,
		Images:          input.Images,
		CoverImage:      input.CoverImage,
		Status:          entity.ListingStatusActive,
		PostedAt:        now,
		ExpiresAt:       now.Add(uc.ttl),
	}
	if listing.CoverImage == "" && len(listing.Images) > 0 {
		listing.CoverImage = listing.Images[0]
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (uc *ListingUseCase) GetListing(ctx context.Context, id string) (*entity.Listing, error) {
	return uc.listingRepo.GetByID(ctx, id)
}

func (uc *ListingUseCase) ListListings(ctx context.Context, filter repository.ListingFilter, limit, offset int) ([]*entity.Listing, int64, error) {
	return uc.listingRepo.List(ctx, filter, limit, offset)
}

type UpdateListingInput struct {
	Title           *string  `json:"title" validate:"omitempty,min=3,max=100"`
	Description     *string  `json:"description" validate:"omitempty,min=10"`
	Price           *float64 `json:"price" validate:"omitempty,gt=0"`
	Category        *string  `json:"category"`
	Brand           *string  `json:"brand"`
	Condition       *string  `json:"condition"`
	LivingCommunity *string  `json:"living_community"`
	Urgent          *bool    `json:"urgent"`
	EventDate       *string  `json:"event_date"`
	Venue           *string  `json:"venue"`
	Images          []string `json:"images"`
	CoverImage      *string  `json:"cover_image"`
	Sold            *bool    `json:"sold"`
	SoldToUserID    *string  `json:"sold_to_user_id"`
}

// UpdateListing applies a partial edit. Two edits carry side effects: a
// price drop fans out to wishlisters, and marking the listing sold runs the
// full sale flow (offer settlement, chat announcement, notifications).
func (uc *ListingUseCase) UpdateListing(ctx context.Context, listingID, actorID string, input UpdateListingInput) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != actorID {
		return nil, errors.Forbidden("Only the seller can update this listing", nil)
	}

	oldPrice := listing.Price
	wasSold := listing.Sold

	if input.Title != nil {
		listing.Title = *input.Title
	}
	if input.Description != nil {
		listing.Description = *input.Description
	}
	if input.Price != nil {
		listing.Price = *input.Price
	}
	if input.Category != nil {
		listing.Category = *input.Category
	}
	if input.Brand != nil {
		listing.Brand = *input.Brand
	}
	if input.Condition != nil {
		listing.Condition = *input.Condition
	}
	if input.LivingCommunity != nil {
		listing.LivingCommunity = *input.LivingCommunity
	}
	if input.Urgent != nil {
		listing.Urgent = *input.Urgent
	}
	if input.EventDate != nil {
		listing.EventDate = *input.EventDate
	}
	if input.Venue != nil {
		listing.Venue = *input.Venue
	}
	if input.Images != nil {
		listing.Images = input.Images
	}
	if input.CoverImage != nil {
		listing.CoverImage = *input.CoverImage
	}
	if input.Sold != nil {
		listing.Sold = *input.Sold
	}
	if input.SoldToUserID != nil {
		listing.SoldToUserID = *input.SoldToUserID
	}

	if listing.Sold && !wasSold && listing.SoldToUserID == "" {
		return nil, errors.BadRequest("A sold listing needs the buyer it sold to", nil)
	}

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	if listing.Sold && !wasSold {
		uc.runSaleFlow(ctx, listing)
	} else if input.Price != nil && listing.Price < oldPrice {
		uc.notifyPriceDrop(ctx, listing, oldPrice)
	}

	return listing, nil
}

// runSaleFlow settles offers, announces the sale in the buyer chat, and
// notifies the buyer plus everyone who wishlisted the item. Each side effect
// is independent; a failure in one is logged and the rest still run.
func (uc *ListingUseCase) runSaleFlow(ctx context.Context, listing *entity.Listing) {
	if err := uc.offerUseCase.ResolveOnSale(ctx, listing); err != nil {
		logger.Error("Failed to settle offers for sold listing %s: %v", listing.ID, err)
	}

	chat, err := uc.chatUseCase.EnsureChat(ctx, listing.ID, listing.SoldToUserID, listing.SellerID, "")
	if err != nil {
		logger.Error("Failed to ensure chat for sold listing %s: %v", listing.ID, err)
	} else {
		if _, err := uc.chatUseCase.AppendMessage(ctx, AppendMessageInput{
			ChatID:   chat.ID,
			SenderID: listing.SellerID,
			Type:     entity.MessageTypeItemSold,
			Content:  "🎉 Item marked as sold",
		}); err != nil {
			logger.Error("Failed to append sold message to chat %s: %v", chat.ID, err)
		}
	}

	if uc.notifier == nil {
		return
	}

	notifyCtx := context.WithoutCancel(ctx)

	title, body, data := itemSoldPush(listing)
	go func() {
		if err := uc.notifier.Notify(notifyCtx, listing.SoldToUserID, title, body, data); err != nil {
			logger.Error("Failed to notify buyer %s about sold listing %s: %v", listing.SoldToUserID, listing.ID, err)
		}
	}()

	wishers, err := uc.wishlistRepo.GetUserIDsByListing(ctx, listing.ID)
	if err != nil {
		logger.Error("Failed to load wishlist for sold listing %s: %v", listing.ID, err)
		return
	}
	wTitle, wBody, wData := itemSoldToWishlistPush(listing)
	for _, userID := range wishers {
		if userID == listing.SoldToUserID || userID == listing.SellerID {
			continue
		}
		recipient := userID
		go func() {
			if err := uc.notifier.Notify(notifyCtx, recipient, wTitle, wBody, wData); err != nil {
				logger.Error("Failed to notify wishlister %s about sold listing %s: %v", recipient, listing.ID, err)
			}
		}()
	}
}

func (uc *ListingUseCase) notifyPriceDrop(ctx context.Context, listing *entity.Listing, oldPrice float64) {
	if uc.notifier == nil {
		return
	}

	wishers, err := uc.wishlistRepo.GetUserIDsByListing(ctx, listing.ID)
	if err != nil {
		logger.Error("Failed to load wishlist for price drop on %s: %v", listing.ID, err)
		return
	}

	title, body, data := priceDropPush(listing, oldPrice, listing.Price)
	notifyCtx := context.WithoutCancel(ctx)
	for _, userID := range wishers {
		if userID == listing.SellerID {
			continue
		}
		recipient := userID
		go func() {
			if err := uc.notifier.Notify(notifyCtx, recipient, title, body, data); err != nil {
				logger.Error("Failed to notify %s about price drop on %s: %v", recipient, listing.ID, err)
			}
		}()
	}
}

// DeleteListing removes the listing document only. Offers, chats, and
// stored images referencing it are deliberately left in place; the
// cascading sweep applies to expired listings, not owner deletions.
func (uc *ListingUseCase) DeleteListing(ctx context.Context, listingID, actorID string) error {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.SellerID != actorID {
		return errors.Forbidden("Only the seller can delete this listing", nil)
	}
	return uc.listingRepo.Delete(ctx, listingID)
}

// ExpireListing backdates the deadline so the next cleanup tick collects the
// listing. Meant for verifying the cleanup pipeline end to end.
func (uc *ListingUseCase) ExpireListing(ctx context.Context, listingID, actorID string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != actorID {
		return nil, errors.Forbidden("Only the seller can expire this listing", nil)
	}

	listing.ExpiresAt = time.Now().Add(-time.Second)
	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	logger.Info("Listing %s backdated for expiration", listing.ID)
	return listing, nil
}
