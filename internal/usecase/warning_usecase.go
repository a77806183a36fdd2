package usecase

import (
	"context"
	"time"

	"passr/internal/domain/entity"
	"passr/internal/domain/repository"
	"passr/pkg/logger"
)

// WarningUseCase notifies sellers and wishlisting users ahead of a listing's
// expiry. The scan window is half-open, so consecutive ticks walking the
// window forward see each listing at most once.
type WarningUseCase struct {
	listingRepo  repository.ListingRepository
	wishlistRepo repository.WishlistRepository
	notifier     Notifier
	windowStart  time.Duration
	windowEnd    time.Duration
}

func NewWarningUseCase(
	listingRepo repository.ListingRepository,
	wishlistRepo repository.WishlistRepository,
	notifier Notifier,
	windowStart, windowEnd time.Duration,
) *WarningUseCase {
	return &WarningUseCase{
		listingRepo:  listingRepo,
		wishlistRepo: wishlistRepo,
		notifier:     notifier,
		windowStart:  windowStart,
		windowEnd:    windowEnd,
	}
}

// RunWarningTick scans [now+windowStart, now+windowEnd) and dispatches
// warnings per listing. Recipients are handled independently; one failed
// push never blocks the others.
func (uc *WarningUseCase) RunWarningTick(ctx context.Context) error {
	now := time.Now()
	listings, err := uc.listingRepo.FindExpiringBetween(ctx, now.Add(uc.windowStart), now.Add(uc.windowEnd))
	if err != nil {
		return err
	}

	for _, listing := range listings {
		if listing.Sold {
			continue
		}
		uc.warnForListing(ctx, listing, now)
	}
	return nil
}

func (uc *WarningUseCase) warnForListing(ctx context.Context, listing *entity.Listing, now time.Time) {
	hoursLeft := int(listing.ExpiresAt.Sub(now).Hours())

	title, body, data := expirationWarningSellerPush(listing, hoursLeft)
	if err := uc.notifier.Notify(ctx, listing.SellerID, title, body, data); err != nil {
		logger.Error("Failed to warn seller %s about expiring listing %s: %v", listing.SellerID, listing.ID, err)
	}

	wishers, err := uc.wishlistRepo.GetUserIDsByListing(ctx, listing.ID)
	if err != nil {
		logger.Error("Failed to load wishlist for expiring listing %s: %v", listing.ID, err)
		return
	}

	wTitle, wBody, wData := expirationWarningWishlistPush(listing, hoursLeft)
	for _, userID := range wishers {
		// The seller already got the seller-facing warning.
		if userID == listing.SellerID {
			continue
		}
		if err := uc.notifier.Notify(ctx, userID, wTitle, wBody, wData); err != nil {
			logger.Error("Failed to warn wishlister %s about expiring listing %s: %v", userID, listing.ID, err)
		}
	}
}
