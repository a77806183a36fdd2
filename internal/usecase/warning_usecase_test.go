package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passr/internal/domain/entity"
)

type warningFixture struct {
	uc           *WarningUseCase
	listingRepo  *fakeListingRepo
	wishlistRepo *fakeWishlistRepo
	notifier     *fakeNotifier
}

func newWarningFixture() *warningFixture {
	listingRepo := newFakeListingRepo()
	wishlistRepo := newFakeWishlistRepo()
	notifier := newFakeNotifier()
	return &warningFixture{
		uc:           NewWarningUseCase(listingRepo, wishlistRepo, notifier, 24*time.Hour, 25*time.Hour),
		listingRepo:  listingRepo,
		wishlistRepo: wishlistRepo,
		notifier:     notifier,
	}
}

func (f *warningFixture) seedListing(t *testing.T, expiresIn time.Duration) *entity.Listing {
	t.Helper()
	listing := &entity.Listing{
		SellerID:  "seller-1",
		Title:     "Concert Ticket",
		Price:     60,
		Status:    entity.ListingStatusActive,
		ExpiresAt: time.Now().Add(expiresIn),
	}
	require.NoError(t, f.listingRepo.Create(context.Background(), listing))
	return listing
}

func TestWarningNotifiesSellerAndWishlisters(t *testing.T) {
	f := newWarningFixture()
	ctx := context.Background()

	listing := f.seedListing(t, 24*time.Hour+30*time.Minute)
	_, err := f.wishlistRepo.Add(ctx, "wisher-1", listing.ID)
	require.NoError(t, err)
	_, err = f.wishlistRepo.Add(ctx, "wisher-2", listing.ID)
	require.NoError(t, err)

	require.NoError(t, f.uc.RunWarningTick(ctx))

	sellerPushes := f.notifier.pushesTo("seller-1")
	require.Len(t, sellerPushes, 1)
	assert.Equal(t, "Action Required: Listing Expiring ⏳", sellerPushes[0].Title)
	assert.Contains(t, sellerPushes[0].Body, "24 hours")

	for _, wisher := range []string{"wisher-1", "wisher-2"} {
		pushes := f.notifier.pushesTo(wisher)
		require.Len(t, pushes, 1)
		assert.Equal(t, "Last Chance! ⏳", pushes[0].Title)
	}
	assert.Equal(t, 3, f.notifier.count())
}

func TestWarningSkipsSellerInWishlist(t *testing.T) {
	f := newWarningFixture()
	ctx := context.Background()

	listing := f.seedListing(t, 24*time.Hour+30*time.Minute)
	_, err := f.wishlistRepo.Add(ctx, "seller-1", listing.ID)
	require.NoError(t, err)

	require.NoError(t, f.uc.RunWarningTick(ctx))

	// One seller warning, no wishlist duplicate to the same user.
	assert.Len(t, f.notifier.pushesTo("seller-1"), 1)
	assert.Equal(t, 1, f.notifier.count())
}

func TestWarningSkipsSoldListings(t *testing.T) {
	f := newWarningFixture()
	ctx := context.Background()

	listing := f.seedListing(t, 24*time.Hour+30*time.Minute)
	listing.Sold = true
	listing.SoldToUserID = "buyer-1"
	require.NoError(t, f.listingRepo.Update(ctx, listing))

	require.NoError(t, f.uc.RunWarningTick(ctx))
	assert.Zero(t, f.notifier.count())
}

func TestWarningWindowBounds(t *testing.T) {
	f := newWarningFixture()
	ctx := context.Background()

	f.seedListing(t, 23*time.Hour)
	f.seedListing(t, 26*time.Hour)

	require.NoError(t, f.uc.RunWarningTick(ctx))
	assert.Zero(t, f.notifier.count())

	inside := f.seedListing(t, 24*time.Hour+30*time.Minute)
	require.NoError(t, f.uc.RunWarningTick(ctx))

	pushes := f.notifier.pushesTo("seller-1")
	require.Len(t, pushes, 1)
	assert.Equal(t, inside.ID, pushes[0].Data["listingId"])
}

// failingNotifier rejects pushes to one user while recording all the others.
type failingNotifier struct {
	*fakeNotifier
	failFor string
}

func (n *failingNotifier) Notify(ctx context.Context, userID, title, body string, data map[string]string) error {
	if userID == n.failFor {
		return assert.AnError
	}
	return n.fakeNotifier.Notify(ctx, userID, title, body, data)
}

func TestWarningTickSurvivesFailedSellerPush(t *testing.T) {
	listingRepo := newFakeListingRepo()
	wishlistRepo := newFakeWishlistRepo()
	notifier := &failingNotifier{fakeNotifier: newFakeNotifier(), failFor: "seller-1"}
	uc := NewWarningUseCase(listingRepo, wishlistRepo, notifier, 24*time.Hour, 25*time.Hour)
	ctx := context.Background()

	listing := &entity.Listing{
		SellerID:  "seller-1",
		Title:     "Mini Fridge",
		ExpiresAt: time.Now().Add(24*time.Hour + 30*time.Minute),
	}
	require.NoError(t, listingRepo.Create(ctx, listing))
	_, err := wishlistRepo.Add(ctx, "wisher-1", listing.ID)
	require.NoError(t, err)
	_, err = wishlistRepo.Add(ctx, "wisher-2", listing.ID)
	require.NoError(t, err)

	require.NoError(t, uc.RunWarningTick(ctx))

	assert.Empty(t, notifier.pushesTo("seller-1"))
	assert.Len(t, notifier.pushesTo("wisher-1"), 1)
	assert.Len(t, notifier.pushesTo("wisher-2"), 1)
}
