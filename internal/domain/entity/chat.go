package entity

import "time"

// LastMessage is the denormalized summary shown in the chat list. It is the
// only mutable piece of chat/message state after creation.
type LastMessage struct {
	Text      string    `json:"text" firestore:"text"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// Chat is a two-party conversation anchored to one listing. At most one chat
// exists per (listing, unordered participant pair).
type Chat struct {
	ID           string       `json:"id" firestore:"id"`
	Participants []string     `json:"participants" firestore:"participants"`
	ListingID    string       `json:"listing_id" firestore:"listingId"`
	OfferID      string       `json:"offer_id,omitempty" firestore:"offerId,omitempty"`
	LastMessage  *LastMessage `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	CreatedAt    time.Time    `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time    `json:"updated_at" firestore:"updatedAt"`
}

// HasParticipants matches the participant pair regardless of order.
func (c *Chat) HasParticipants(a, b string) bool {
	if len(c.Participants) != 2 {
		return false
	}
	return (c.Participants[0] == a && c.Participants[1] == b) ||
		(c.Participants[0] == b && c.Participants[1] == a)
}

// IsParticipant reports whether userID belongs to the chat.
func (c *Chat) IsParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the participant that is not userID, or "" when
// userID is not in the chat.
func (c *Chat) OtherParticipant(userID string) string {
	if !c.IsParticipant(userID) {
		return ""
	}
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}
