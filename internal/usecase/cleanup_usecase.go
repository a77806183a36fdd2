package usecase

import (
	"context"
	"time"

	"passr/internal/domain/entity"
	"passr/internal/domain/repository"
	"passr/pkg/errors"
	"passr/pkg/logger"
)

// CleanupUseCase sweeps expired listings and everything referencing them.
// Each cleanup step runs independently so a failure in one does not strand
// the rest, and every entity-store step treats not-found as already done:
// a concurrent tick or a direct user deletion may have raced us there.
type CleanupUseCase struct {
	listingRepo repository.ListingRepository
	offerRepo   repository.OfferRepository
	chatRepo    repository.ChatRepository
	storage     ObjectStorage
}

func NewCleanupUseCase(
	listingRepo repository.ListingRepository,
	offerRepo repository.OfferRepository,
	chatRepo repository.ChatRepository,
	storage ObjectStorage,
) *CleanupUseCase {
	return &CleanupUseCase{
		listingRepo: listingRepo,
		offerRepo:   offerRepo,
		chatRepo:    chatRepo,
		storage:     storage,
	}
}

// RunCleanupTick scans for listings past their deadline and cleans up each
// one. Per-listing failures are logged and the scan continues; the first
// error is returned so the scheduler can surface it.
func (uc *CleanupUseCase) RunCleanupTick(ctx context.Context) error {
	expired, err := uc.listingRepo.FindExpired(ctx, time.Now())
	if err != nil {
		return err
	}
	if len(expired) == 0 {
		return nil
	}

	logger.Info("Cleanup: found %d expired listing(s)", len(expired))

	var firstErr error
	for _, listing := range expired {
		if err := uc.Cleanup(ctx, listing); err != nil {
			logger.Error("Cleanup of listing %s failed: %v", listing.ID, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Cleanup removes the listing's dependents, then the listing, then its
// stored images. Offers and chats go before the listing record so a read
// racing the delete sees a consistent gone state rather than dangling
// references. Image deletion runs last and is best-effort; orphaned objects
// are an accepted cost.
func (uc *CleanupUseCase) Cleanup(ctx context.Context, listing *entity.Listing) error {
	keys := uc.collectImageKeys(listing)

	var firstErr error

	offerCount, err := uc.offerRepo.DeleteByListing(ctx, listing.ID)
	if err != nil && !errors.IsNotFound(err) {
		logger.Error("Cleanup: deleting offers for listing %s: %v", listing.ID, err)
		firstErr = err
	} else if offerCount > 0 {
		logger.Info("Cleanup: removed %d offer(s) for listing %s", offerCount, listing.ID)
	}

	chatCount, err := uc.chatRepo.DeleteByListing(ctx, listing.ID)
	if err != nil && !errors.IsNotFound(err) {
		logger.Error("Cleanup: deleting chats for listing %s: %v", listing.ID, err)
		if firstErr == nil {
			firstErr = err
		}
	} else if chatCount > 0 {
		logger.Info("Cleanup: removed %d chat(s) for listing %s", chatCount, listing.ID)
	}

	if err := uc.listingRepo.Delete(ctx, listing.ID); err != nil && !errors.IsNotFound(err) {
		logger.Error("Cleanup: deleting listing %s: %v", listing.ID, err)
		if firstErr == nil {
			firstErr = err
		}
	}

	if len(keys) > 0 && uc.storage != nil {
		if err := uc.storage.DeleteObjects(ctx, keys); err != nil {
			logger.Error("Cleanup: deleting images for listing %s: %v", listing.ID, err)
		}
	}

	if firstErr == nil {
		logger.Info("Cleanup: listing %s removed", listing.ID)
	}
	return firstErr
}

// collectImageKeys parses the listing's image URLs into storage keys.
// URLs that do not belong to our bucket are skipped.
func (uc *CleanupUseCase) collectImageKeys(listing *entity.Listing) []string {
	if uc.storage == nil {
		return nil
	}

	var keys []string
	for _, url := range listing.Images {
		key, err := uc.storage.ObjectKeyFromURL(url)
		if err != nil {
			logger.Debug("Cleanup: skipping unparseable image URL %q on listing %s", url, listing.ID)
			continue
		}
		keys = append(keys, key)
	}
	return keys
}
