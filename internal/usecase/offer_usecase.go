package usecase

import (
	"context"
	"fmt"

	"passr/internal/domain/entity"
	"passr/internal/domain/repository"
	"passr/pkg/errors"
	"passr/pkg/logger"
)

type OfferUseCase struct {
	offerRepo   repository.OfferRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	chatUseCase *ChatUseCase
	notifier    Notifier
}

func NewOfferUseCase(
	offerRepo repository.OfferRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	chatUseCase *ChatUseCase,
	notifier Notifier,
) *OfferUseCase {
	return &OfferUseCase{
		offerRepo:   offerRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		chatUseCase: chatUseCase,
		notifier:    notifier,
	}
}

type CreateOfferInput struct {
	ListingIDs  []string `json:"listing_ids" validate:"required,min=1,dive,required"`
	TotalAmount float64  `json:"total_amount" validate:"required,gt=0"`
	Message     string   `json:"message"`
}

// CreateOffer validates the referenced listings, snapshots them into line
// items, opens (or reuses) the buyer-seller chat, and notifies the seller.
// The seller is derived from the first listing; every listing in a bundle
// must belong to that same seller.
func (uc *OfferUseCase) CreateOffer(ctx context.Context, buyerID string, input CreateOfferInput) (*entity.Offer, error) {
	if len(input.ListingIDs) == 0 {
		return nil, errors.BadRequest("An offer needs at least one listing", nil)
	}

	items := make([]entity.OfferItem, 0, len(input.ListingIDs))
	var listings []*entity.Listing
	sellerID := ""

	for _, listingID := range input.ListingIDs {
		listing, err := uc.listingRepo.GetByID(ctx, listingID)
		if err != nil {
			if errors.IsNotFound(err) {
				return nil, errors.BadRequest(fmt.Sprintf("Listing %s no longer exists", listingID), err)
			}
			return nil, err
		}
		if listing.Sold {
			return nil, errors.BadRequest(fmt.Sprintf("Listing %q is already sold", listing.Title), nil)
		}
		if listing.SellerID == buyerID {
			return nil, errors.BadRequest("You cannot make an offer on your own listing", nil)
		}
		if sellerID == "" {
			sellerID = listing.SellerID
		} else if listing.SellerID != sellerID {
			return nil, errors.BadRequest("All listings in a bundle must belong to the same seller", nil)
		}

		items = append(items, entity.OfferItem{
			ListingID: listing.ID,
			Title:     listing.Title,
			Price:     listing.Price,
		})
		listings = append(listings, listing)
	}

	offer := &entity.Offer{
		BuyerID:     buyerID,
		SellerID:    sellerID,
		Items:       items,
		TotalAmount: input.TotalAmount,
		Message:     input.Message,
		Status:      entity.OfferStatusPending,
	}
	if err := uc.offerRepo.Create(ctx, offer); err != nil {
		return nil, err
	}

	uc.announceOffer(ctx, offer, listings)
	uc.notifySeller(ctx, offer, listings[0])

	return offer, nil
}

// announceOffer drops the offer into the chat anchored on the first listing
// so both parties see it in their conversation. Failures here never fail the
// offer itself.
func (uc *OfferUseCase) announceOffer(ctx context.Context, offer *entity.Offer, listings []*entity.Listing) {
	chat, err := uc.chatUseCase.EnsureChat(ctx, listings[0].ID, offer.BuyerID, offer.SellerID, offer.ID)
	if err != nil {
		logger.Error("Failed to ensure chat for offer %s: %v", offer.ID, err)
		return
	}

	content := fmt.Sprintf("Made an offer: $%.0f for %s", offer.TotalAmount, listings[0].Title)
	if len(offer.Items) > 1 {
		content = fmt.Sprintf("Made a bundle offer: $%.0f for %d items", offer.TotalAmount, len(offer.Items))
	}

	if _, err := uc.chatUseCase.AppendMessage(ctx, AppendMessageInput{
		ChatID:   chat.ID,
		SenderID: offer.BuyerID,
		Type:     entity.MessageTypeOffer,
		Content:  content,
	}); err != nil {
		logger.Error("Failed to append offer message to chat %s: %v", chat.ID, err)
	}

	if offer.Message != "" {
		if _, err := uc.chatUseCase.AppendMessage(ctx, AppendMessageInput{
			ChatID:   chat.ID,
			SenderID: offer.BuyerID,
			Type:     entity.MessageTypeText,
			Content:  offer.Message,
		}); err != nil {
			logger.Error("Failed to append offer note to chat %s: %v", chat.ID, err)
		}
	}
}

func (uc *OfferUseCase) notifySeller(ctx context.Context, offer *entity.Offer, listing *entity.Listing) {
	if uc.notifier == nil {
		return
	}

	buyerName := "Someone"
	if buyer, err := uc.userRepo.GetByID(ctx, offer.BuyerID); err == nil && buyer.Name != "" {
		buyerName = buyer.Name
	}

	itemName := listing.Title
	if len(offer.Items) > 1 {
		itemName = fmt.Sprintf("%s and %d more", listing.Title, len(offer.Items)-1)
	}

	title, body, data := offerReceivedPush(buyerName, offer.TotalAmount, itemName, listing, offer.ID)

	notifyCtx := context.WithoutCancel(ctx)
	go func() {
		if err := uc.notifier.Notify(notifyCtx, offer.SellerID, title, body, data); err != nil {
			logger.Error("Failed to notify seller %s about offer %s: %v", offer.SellerID, offer.ID, err)
		}
	}()
}

func (uc *OfferUseCase) GetOffer(ctx context.Context, offerID, userID string) (*entity.Offer, error) {
	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.BuyerID != userID && offer.SellerID != userID {
		return nil, errors.Forbidden("You do not have access to this offer", nil)
	}
	return offer, nil
}

func (uc *OfferUseCase) ListByBuyer(ctx context.Context, buyerID string) ([]*entity.Offer, error) {
	return uc.offerRepo.GetByBuyer(ctx, buyerID)
}

func (uc *OfferUseCase) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Offer, error) {
	return uc.offerRepo.GetBySeller(ctx, sellerID)
}

// SetStatus moves an offer to accepted or rejected. Only the seller may
// decide; sold is reserved for the sale flow and cannot be set directly.
func (uc *OfferUseCase) SetStatus(ctx context.Context, offerID, actorID, newStatus string) (*entity.Offer, error) {
	if newStatus != entity.OfferStatusAccepted && newStatus != entity.OfferStatusRejected {
		return nil, errors.BadRequest(fmt.Sprintf("Unsupported offer status %q", newStatus), nil)
	}

	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.SellerID != actorID {
		return nil, errors.Forbidden("Only the seller can respond to an offer", nil)
	}
	if !offer.Open() {
		return nil, errors.BadRequest(fmt.Sprintf("Offer is already %s", offer.Status), nil)
	}
	if offer.Status == entity.OfferStatusAccepted && newStatus == entity.OfferStatusAccepted {
		return offer, nil
	}

	updated, err := uc.offerRepo.UpdateStatus(ctx, offerID, newStatus)
	if err != nil {
		return nil, err
	}

	if newStatus == entity.OfferStatusAccepted {
		uc.announceAcceptance(ctx, updated)
	}

	return updated, nil
}

func (uc *OfferUseCase) announceAcceptance(ctx context.Context, offer *entity.Offer) {
	if len(offer.Items) > 0 {
		chat, err := uc.chatUseCase.EnsureChat(ctx, offer.Items[0].ListingID, offer.BuyerID, offer.SellerID, offer.ID)
		if err != nil {
			logger.Error("Failed to ensure chat for accepted offer %s: %v", offer.ID, err)
		} else {
			if _, err := uc.chatUseCase.AppendMessage(ctx, AppendMessageInput{
				ChatID:   chat.ID,
				SenderID: offer.SellerID,
				Type:     entity.MessageTypeText,
				Content:  "🎉 Offer Accepted! Please schedule a pickup time.",
			}); err != nil {
				logger.Error("Failed to append acceptance message to chat %s: %v", chat.ID, err)
			}
		}
	}

	if uc.notifier == nil {
		return
	}

	itemName := "your item"
	if len(offer.Items) > 0 {
		itemName = offer.Items[0].Title
	}
	title, body, data := offerAcceptedPush(itemName, offer.ID)

	notifyCtx := context.WithoutCancel(ctx)
	go func() {
		if err := uc.notifier.Notify(notifyCtx, offer.BuyerID, title, body, data); err != nil {
			logger.Error("Failed to notify buyer %s about accepted offer %s: %v", offer.BuyerID, offer.ID, err)
		}
	}()
}

// ResolveOnSale settles every open offer on a sold listing. The winning
// buyer's accepted offer becomes sold; a pending offer from the winner is
// left alone, since sold is only reachable from accepted. Every other open
// offer is rejected and its buyer told the item went to someone else. Each
// offer is settled independently so one failure cannot strand the rest.
func (uc *OfferUseCase) ResolveOnSale(ctx context.Context, listing *entity.Listing) error {
	offers, err := uc.offerRepo.GetByListing(ctx, listing.ID)
	if err != nil {
		return err
	}

	var firstErr error
	for _, offer := range offers {
		if !offer.Open() {
			continue
		}

		target := entity.OfferStatusRejected
		if offer.BuyerID == listing.SoldToUserID {
			if offer.Status != entity.OfferStatusAccepted {
				continue
			}
			target = entity.OfferStatusSold
		}

		if _, err := uc.offerRepo.UpdateStatus(ctx, offer.ID, target); err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			logger.Error("Failed to settle offer %s for sold listing %s: %v", offer.ID, listing.ID, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if target == entity.OfferStatusRejected {
			uc.notifyLoser(ctx, offer, listing)
		}
	}

	return firstErr
}

func (uc *OfferUseCase) notifyLoser(ctx context.Context, offer *entity.Offer, listing *entity.Listing) {
	if uc.notifier == nil {
		return
	}

	title, body, data := itemSoldToOtherPush(listing)

	notifyCtx := context.WithoutCancel(ctx)
	go func() {
		if err := uc.notifier.Notify(notifyCtx, offer.BuyerID, title, body, data); err != nil {
			logger.Error("Failed to notify buyer %s that listing %s sold: %v", offer.BuyerID, listing.ID, err)
		}
	}()
}
