package entity

import "time"

const (
	MessageTypeText                 = "text"
	MessageTypeImage                = "image"
	MessageTypeOffer                = "offer"
	MessageTypeItemSold             = "item_sold"
	MessageTypeSchedule             = "schedule"
	MessageTypeScheduleAcceptance   = "schedule_acceptance"
	MessageTypeScheduleRejection    = "schedule_rejection"
	MessageTypeScheduleCancellation = "schedule_cancellation"
)

// SchedulePayload carries the structured pickup proposal attached to
// schedule-type messages.
type SchedulePayload struct {
	Date     string `json:"date" firestore:"date"`
	Time     string `json:"time" firestore:"time"`
	Location string `json:"location,omitempty" firestore:"location,omitempty"`
}

// Message is immutable once created; only the parent chat's last-message
// summary changes afterwards.
type Message struct {
	ID        string           `json:"id" firestore:"id"`
	ChatID    string           `json:"chat_id" firestore:"chatId"`
	SenderID  string           `json:"sender_id" firestore:"senderId"`
	Content   string           `json:"content,omitempty" firestore:"content,omitempty"`
	ImageURL  string           `json:"image,omitempty" firestore:"imageUrl,omitempty"`
	Type      string           `json:"type" firestore:"type"`
	Schedule  *SchedulePayload `json:"schedule,omitempty" firestore:"schedule,omitempty"`
	CreatedAt time.Time        `json:"created_at" firestore:"createdAt"`
}
