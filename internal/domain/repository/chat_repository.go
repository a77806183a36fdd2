package repository

import (
	"context"
	"time"

	"passr/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	GetByUser(ctx context.Context, userID string) ([]*entity.Chat, error)

	// FindByListingAndParticipants matches the unordered participant pair;
	// nil without error when no chat exists yet.
	FindByListingAndParticipants(ctx context.Context, listingID, userA, userB string) (*entity.Chat, error)

	CreateMessage(ctx context.Context, message *entity.Message) error
	GetMessagesByChat(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error)

	// UpdateLastMessage sets the chat summary only if at is not older than
	// the stored summary, so racing appends resolve deterministically.
	UpdateLastMessage(ctx context.Context, chatID, text string, at time.Time) error

	// DeleteByListing removes every chat anchored to the listing together
	// with its messages in a single store-level cascade, returning the
	// number of chats removed.
	DeleteByListing(ctx context.Context, listingID string) (int, error)
}
