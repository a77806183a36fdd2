package entity

import "time"

const (
	ListingStatusActive  = "active"
	ListingStatusExpired = "expired"
)

// Listing is a sellable item post. ExpiresAt is fixed at creation from the
// configured TTL; the cleanup scanner removes the listing and everything
// referencing it once the deadline passes.
type Listing struct {
	ID              string    `json:"id" firestore:"id"`
	SellerID        string    `json:"seller_id" firestore:"sellerId"`
	Title           string    `json:"title" firestore:"title"`
	Description     string    `json:"description" firestore:"description"`
	Price           float64   `json:"price" firestore:"price"`
	Category        string    `json:"category" firestore:"category"`
	Brand           string    `json:"brand,omitempty" firestore:"brand,omitempty"`
	Condition       string    `json:"condition" firestore:"condition"`
	LivingCommunity string    `json:"living_community,omitempty" firestore:"livingCommunity,omitempty"`
	Urgent          bool      `json:"urgent" firestore:"urgent"`
	EventDate       string    `json:"event_date,omitempty" firestore:"eventDate,omitempty"`
	Venue           string    `json:"venue,omitempty" firestore:"venue,omitempty"`
	Images          []string  `json:"images" firestore:"images"`
	CoverImage      string    `json:"cover_image,omitempty" firestore:"coverImage,omitempty"`
	Sold            bool      `json:"sold" firestore:"sold"`
	SoldToUserID    string    `json:"sold_to_user_id,omitempty" firestore:"soldToUserId,omitempty"`
	Status          string    `json:"status" firestore:"status"`
	PostedAt        time.Time `json:"posted_at" firestore:"postedAt"`
	ExpiresAt       time.Time `json:"expires_at" firestore:"expiresAt"`
	UpdatedAt       time.Time `json:"updated_at" firestore:"updatedAt"`
}
