package entity

import "time"

const (
	OfferStatusPending  = "pending"
	OfferStatusAccepted = "accepted"
	OfferStatusRejected = "rejected"
	OfferStatusSold     = "sold"
)

// OfferItem is a price snapshot of one listing at the time the offer was
// made; the live listing may change or disappear afterwards.
type OfferItem struct {
	ListingID string  `json:"listing_id" firestore:"listingId"`
	Title     string  `json:"title" firestore:"title"`
	Price     float64 `json:"price" firestore:"price"`
}

type Offer struct {
	ID       string      `json:"id" firestore:"id"`
	BuyerID  string      `json:"buyer_id" firestore:"buyerId"`
	SellerID string      `json:"seller_id" firestore:"sellerId"`
	Items    []OfferItem `json:"items" firestore:"items"`
	// ListingIDs duplicates Items[].ListingID so Firestore array-contains
	// queries can match offers by listing.
	ListingIDs  []string  `json:"-" firestore:"listingIds"`
	TotalAmount float64   `json:"total_amount" firestore:"totalAmount"`
	Message     string    `json:"message,omitempty" firestore:"message,omitempty"`
	Status      string    `json:"status" firestore:"status"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

// References reports whether the offer has a line item for the listing.
func (o *Offer) References(listingID string) bool {
	for _, item := range o.Items {
		if item.ListingID == listingID {
			return true
		}
	}
	return false
}

// Open reports whether the offer can still win or lose the listing.
func (o *Offer) Open() bool {
	return o.Status == OfferStatusPending || o.Status == OfferStatusAccepted
}
