package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passr/internal/domain/entity"
)

type listingFixture struct {
	uc           *ListingUseCase
	listingRepo  *fakeListingRepo
	offerRepo    *fakeOfferRepo
	chatRepo     *fakeChatRepo
	wishlistRepo *fakeWishlistRepo
	notifier     *fakeNotifier
}

func newListingFixture() *listingFixture {
	listingRepo := newFakeListingRepo()
	offerRepo := newFakeOfferRepo()
	chatRepo := newFakeChatRepo()
	wishlistRepo := newFakeWishlistRepo()
	userRepo := newFakeUserRepo(
		&entity.User{ID: "buyer-1", Name: "Alice"},
		&entity.User{ID: "buyer-2", Name: "Carol"},
		&entity.User{ID: "seller-1", Name: "Bob"},
		&entity.User{ID: "wisher-1", Name: "Dan"},
	)
	notifier := newFakeNotifier()
	chatUC := NewChatUseCase(chatRepo, listingRepo, userRepo, notifier, nil)
	offerUC := NewOfferUseCase(offerRepo, listingRepo, userRepo, chatUC, notifier)
	return &listingFixture{
		uc:           NewListingUseCase(listingRepo, wishlistRepo, offerUC, chatUC, notifier, 24*time.Hour),
		listingRepo:  listingRepo,
		offerRepo:    offerRepo,
		chatRepo:     chatRepo,
		wishlistRepo: wishlistRepo,
		notifier:     notifier,
	}
}

func (f *listingFixture) createListing(t *testing.T) *entity.Listing {
	t.Helper()
	listing, err := f.uc.CreateListing(context.Background(), "seller-1", CreateListingInput{
		Title:       "Mini Fridge",
		Description: "Barely used, cold as ever",
		Price:       40,
		Category:    "appliances",
		Condition:   "good",
	})
	require.NoError(t, err)
	return listing
}

func TestCreateListingSetsExpiryFromTTL(t *testing.T) {
	f := newListingFixture()
	listing := f.createListing(t)

	assert.Equal(t, entity.ListingStatusActive, listing.Status)
	assert.WithinDuration(t, listing.PostedAt.Add(24*time.Hour), listing.ExpiresAt, time.Second)
}

func TestUpdateListingOnlySeller(t *testing.T) {
	f := newListingFixture()
	listing := f.createListing(t)

	newTitle := "Mini Fridge Deluxe"
	_, err := f.uc.UpdateListing(context.Background(), listing.ID, "buyer-1", UpdateListingInput{Title: &newTitle})
	assert.Error(t, err)
}

func TestMarkSoldRequiresBuyer(t *testing.T) {
	f := newListingFixture()
	listing := f.createListing(t)

	sold := true
	_, err := f.uc.UpdateListing(context.Background(), listing.ID, "seller-1", UpdateListingInput{Sold: &sold})
	assert.Error(t, err)
}

func TestMarkSoldRunsSaleFlow(t *testing.T) {
	f := newListingFixture()
	ctx := context.Background()
	listing := f.createListing(t)

	winner, err := f.uc.offerUseCase.CreateOffer(ctx, "buyer-1", CreateOfferInput{
		ListingIDs:  []string{listing.ID},
		TotalAmount: 35,
	})
	require.NoError(t, err)
	loser, err := f.uc.offerUseCase.CreateOffer(ctx, "buyer-2", CreateOfferInput{
		ListingIDs:  []string{listing.ID},
		TotalAmount: 30,
	})
	require.NoError(t, err)

	_, err = f.wishlistRepo.Add(ctx, "wisher-1", listing.ID)
	require.NoError(t, err)
	_, err = f.wishlistRepo.Add(ctx, "buyer-1", listing.ID)
	require.NoError(t, err)

	sold := true
	buyer := "buyer-1"
	updated, err := f.uc.UpdateListing(ctx, listing.ID, "seller-1", UpdateListingInput{Sold: &sold, SoldToUserID: &buyer})
	require.NoError(t, err)
	assert.True(t, updated.Sold)

	settledWinner, err := f.offerRepo.GetByID(ctx, winner.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OfferStatusSold, settledWinner.Status)

	settledLoser, err := f.offerRepo.GetByID(ctx, loser.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OfferStatusRejected, settledLoser.Status)

	chat, err := f.chatRepo.FindByListingAndParticipants(ctx, listing.ID, "buyer-1", "seller-1")
	require.NoError(t, err)
	require.NotNil(t, chat)

	soldMessage := f.chatRepo.lastMessageOfType(chat.ID, entity.MessageTypeItemSold)
	require.NotNil(t, soldMessage)
	assert.Equal(t, "🎉 Item marked as sold", soldMessage.Content)

	assert.Eventually(t, func() bool {
		for _, p := range f.notifier.pushesTo("buyer-1") {
			if p.Title == "You got the item! 🎉" {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)

	// The buyer gets the purchase push, not the wishlist one.
	assert.Eventually(t, func() bool {
		return len(f.notifier.pushesTo("wisher-1")) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "Item Sold 🔔", f.notifier.pushesTo("wisher-1")[0].Title)
	for _, p := range f.notifier.pushesTo("buyer-1") {
		assert.NotEqual(t, "Item Sold 🔔", p.Title)
	}
}

func TestPriceDropNotifiesWishlisters(t *testing.T) {
	f := newListingFixture()
	ctx := context.Background()
	listing := f.createListing(t)

	_, err := f.wishlistRepo.Add(ctx, "wisher-1", listing.ID)
	require.NoError(t, err)
	_, err = f.wishlistRepo.Add(ctx, "seller-1", listing.ID)
	require.NoError(t, err)

	lower := 25.0
	_, err = f.uc.UpdateListing(ctx, listing.ID, "seller-1", UpdateListingInput{Price: &lower})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return len(f.notifier.pushesTo("wisher-1")) == 1
	}, time.Second, 10*time.Millisecond)

	push := f.notifier.pushesTo("wisher-1")[0]
	assert.Equal(t, "Price Drop Alert! 📉", push.Title)
	assert.Contains(t, push.Body, "$25")

	// Sellers never get alerts about their own listing.
	assert.Empty(t, f.notifier.pushesTo("seller-1"))
}

func TestPriceIncreaseSendsNothing(t *testing.T) {
	f := newListingFixture()
	ctx := context.Background()
	listing := f.createListing(t)

	_, err := f.wishlistRepo.Add(ctx, "wisher-1", listing.ID)
	require.NoError(t, err)

	higher := 55.0
	_, err = f.uc.UpdateListing(ctx, listing.ID, "seller-1", UpdateListingInput{Price: &higher})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, f.notifier.count())
}

func TestDeleteListingOnlySeller(t *testing.T) {
	f := newListingFixture()
	ctx := context.Background()
	listing := f.createListing(t)

	err := f.uc.DeleteListing(ctx, listing.ID, "buyer-1")
	assert.Error(t, err)

	require.NoError(t, f.uc.DeleteListing(ctx, listing.ID, "seller-1"))
	_, err = f.listingRepo.GetByID(ctx, listing.ID)
	assert.Error(t, err)
}

func TestDeleteListingLeavesDependentsInPlace(t *testing.T) {
	f := newListingFixture()
	ctx := context.Background()
	listing := f.createListing(t)

	offer := &entity.Offer{
		BuyerID:  "buyer-1",
		SellerID: "seller-1",
		Items:    []entity.OfferItem{{ListingID: listing.ID, Title: listing.Title}},
	}
	require.NoError(t, f.offerRepo.Create(ctx, offer))
	chat := &entity.Chat{Participants: []string{"buyer-1", "seller-1"}, ListingID: listing.ID}
	require.NoError(t, f.chatRepo.Create(ctx, chat))

	require.NoError(t, f.uc.DeleteListing(ctx, listing.ID, "seller-1"))

	// Owner deletion removes only the listing; the cascading sweep is for
	// expired listings.
	_, err := f.offerRepo.GetByID(ctx, offer.ID)
	assert.NoError(t, err)
	_, err = f.chatRepo.GetByID(ctx, chat.ID)
	assert.NoError(t, err)
}

func TestExpireListingBackdatesDeadline(t *testing.T) {
	f := newListingFixture()
	ctx := context.Background()
	listing := f.createListing(t)

	expired, err := f.uc.ExpireListing(ctx, listing.ID, "seller-1")
	require.NoError(t, err)
	assert.True(t, expired.ExpiresAt.Before(time.Now()))

	hits, err := f.listingRepo.FindExpired(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, listing.ID, hits[0].ID)
}
