package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"passr/internal/domain/entity"
	"passr/internal/domain/repository"
	"passr/pkg/errors"
)

// In-memory doubles for the Firestore repositories, the push notifier, and
// the object store. They mirror the adapters' observable behavior: generated
// ids, not-found mapping, and the last-message timestamp guard.

type fakeListingRepo struct {
	mu       sync.Mutex
	listings map[string]*entity.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[string]*entity.Listing)}
}

func (r *fakeListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}
	listing.UpdatedAt = time.Now()
	r.listings[listing.ID] = listing
	return nil
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	listing, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	copied := *listing
	return &copied, nil
}

func (r *fakeListingRepo) Update(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[listing.ID]; !ok {
		return errors.NotFound("Listing", nil)
	}
	listing.UpdatedAt = time.Now()
	r.listings[listing.ID] = listing
	return nil
}

func (r *fakeListingRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[id]; !ok {
		return errors.NotFound("Listing", nil)
	}
	delete(r.listings, id)
	return nil
}

func (r *fakeListingRepo) List(ctx context.Context, filter repository.ListingFilter, limit, offset int) ([]*entity.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Listing
	for _, l := range r.listings {
		if filter.SellerID != "" && l.SellerID != filter.SellerID {
			continue
		}
		if filter.Category != "" && l.Category != filter.Category {
			continue
		}
		if filter.ExcludeSold && l.Sold {
			continue
		}
		copied := *l
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *fakeListingRepo) FindExpired(ctx context.Context, now time.Time) ([]*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Listing
	for _, l := range r.listings {
		if !l.ExpiresAt.After(now) {
			copied := *l
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeListingRepo) FindExpiringBetween(ctx context.Context, from, to time.Time) ([]*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Listing
	for _, l := range r.listings {
		if !l.ExpiresAt.Before(from) && l.ExpiresAt.Before(to) {
			copied := *l
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeOfferRepo struct {
	mu     sync.Mutex
	offers map[string]*entity.Offer
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: make(map[string]*entity.Offer)}
}

func (r *fakeOfferRepo) Create(ctx context.Context, offer *entity.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if offer.ID == "" {
		offer.ID = uuid.New().String()
	}
	for _, item := range offer.Items {
		offer.ListingIDs = append(offer.ListingIDs, item.ListingID)
	}
	offer.CreatedAt = time.Now()
	offer.UpdatedAt = offer.CreatedAt
	r.offers[offer.ID] = offer
	return nil
}

func (r *fakeOfferRepo) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	offer, ok := r.offers[id]
	if !ok {
		return nil, errors.NotFound("Offer", nil)
	}
	copied := *offer
	return &copied, nil
}

func (r *fakeOfferRepo) GetByBuyer(ctx context.Context, buyerID string) ([]*entity.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Offer
	for _, o := range r.offers {
		if o.BuyerID == buyerID {
			copied := *o
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeOfferRepo) GetBySeller(ctx context.Context, sellerID string) ([]*entity.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Offer
	for _, o := range r.offers {
		if o.SellerID == sellerID {
			copied := *o
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeOfferRepo) GetByListing(ctx context.Context, listingID string) ([]*entity.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Offer
	for _, o := range r.offers {
		if o.References(listingID) {
			copied := *o
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeOfferRepo) UpdateStatus(ctx context.Context, id, status string) (*entity.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	offer, ok := r.offers[id]
	if !ok {
		return nil, errors.NotFound("Offer", nil)
	}
	offer.Status = status
	offer.UpdatedAt = time.Now()
	copied := *offer
	return &copied, nil
}

func (r *fakeOfferRepo) DeleteByListing(ctx context.Context, listingID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for id, o := range r.offers {
		if o.References(listingID) {
			delete(r.offers, id)
			count++
		}
	}
	return count, nil
}

type fakeChatRepo struct {
	mu       sync.Mutex
	chats    map[string]*entity.Chat
	messages map[string][]*entity.Message
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    make(map[string]*entity.Chat),
		messages: make(map[string][]*entity.Message),
	}
}

func (r *fakeChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if chat.ID == "" {
		chat.ID = uuid.New().String()
	}
	chat.CreatedAt = time.Now()
	chat.UpdatedAt = chat.CreatedAt
	r.chats[chat.ID] = chat
	return nil
}

func (r *fakeChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	copied := *chat
	return &copied, nil
}

func (r *fakeChatRepo) GetByUser(ctx context.Context, userID string) ([]*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Chat
	for _, c := range r.chats {
		if c.IsParticipant(userID) {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) FindByListingAndParticipants(ctx context.Context, listingID, userA, userB string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.chats {
		if c.ListingID == listingID && c.HasParticipants(userA, userB) {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()
	copied := *message
	r.messages[message.ChatID] = append(r.messages[message.ChatID], &copied)
	return nil
}

func (r *fakeChatRepo) GetMessagesByChat(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.messages[chatID]
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]*entity.Message, 0, end-offset)
	for _, m := range all[offset:end] {
		copied := *m
		out = append(out, &copied)
	}
	return out, total, nil
}

func (r *fakeChatRepo) UpdateLastMessage(ctx context.Context, chatID, text string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[chatID]
	if !ok {
		return errors.NotFound("Chat", nil)
	}
	if chat.LastMessage != nil && at.Before(chat.LastMessage.CreatedAt) {
		return nil
	}
	chat.LastMessage = &entity.LastMessage{Text: text, CreatedAt: at}
	chat.UpdatedAt = time.Now()
	return nil
}

func (r *fakeChatRepo) DeleteByListing(ctx context.Context, listingID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for id, c := range r.chats {
		if c.ListingID == listingID {
			delete(r.chats, id)
			delete(r.messages, id)
			count++
		}
	}
	return count, nil
}

func (r *fakeChatRepo) messageCount(chatID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages[chatID])
}

func (r *fakeChatRepo) lastMessageOfType(chatID, messageType string) *entity.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.messages[chatID]) - 1; i >= 0; i-- {
		if r.messages[chatID][i].Type == messageType {
			copied := *r.messages[chatID][i]
			return &copied
		}
	}
	return nil
}

type fakeWishlistRepo struct {
	mu      sync.Mutex
	entries map[string]*entity.WishlistItem
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{entries: make(map[string]*entity.WishlistItem)}
}

func (r *fakeWishlistRepo) Add(ctx context.Context, userID, listingID string) (*entity.WishlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := userID + "_" + listingID
	if existing, ok := r.entries[key]; ok {
		copied := *existing
		return &copied, nil
	}
	item := &entity.WishlistItem{
		ID:        key,
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now(),
	}
	r.entries[key] = item
	copied := *item
	return &copied, nil
}

func (r *fakeWishlistRepo) Remove(ctx context.Context, userID, listingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, userID+"_"+listingID)
	return nil
}

func (r *fakeWishlistRepo) IsInWishlist(ctx context.Context, userID, listingID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[userID+"_"+listingID]
	return ok, nil
}

func (r *fakeWishlistRepo) GetByUser(ctx context.Context, userID string) ([]*entity.WishlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.WishlistItem
	for _, e := range r.entries {
		if e.UserID == userID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeWishlistRepo) GetUserIDsByListing(ctx context.Context, listingID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.entries {
		if e.ListingID == listingID {
			out = append(out, e.UserID)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			copied := *user
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) SetPushToken(ctx context.Context, userID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.PushToken = token
	return nil
}

type sentPush struct {
	UserID string
	Title  string
	Body   string
	Data   map[string]string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentPush
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{}
}

func (n *fakeNotifier) Notify(ctx context.Context, userID, title, body string, data map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentPush{UserID: userID, Title: title, Body: body, Data: data})
	return nil
}

func (n *fakeNotifier) pushesTo(userID string) []sentPush {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []sentPush
	for _, p := range n.sent {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type fakeStorage struct {
	mu      sync.Mutex
	bucket  string
	deleted [][]string
}

func newFakeStorage(bucket string) *fakeStorage {
	return &fakeStorage{bucket: bucket}
}

func (s *fakeStorage) ObjectKeyFromURL(url string) (string, error) {
	prefix := "https://storage.googleapis.com/" + s.bucket + "/"
	if !strings.HasPrefix(url, prefix) || len(url) == len(prefix) {
		return "", errors.BadRequest("invalid storage URL format", nil)
	}
	return url[len(prefix):], nil
}

func (s *fakeStorage) DeleteObjects(ctx context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, keys)
	return nil
}

func (s *fakeStorage) deletedBatches() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.deleted...)
}
