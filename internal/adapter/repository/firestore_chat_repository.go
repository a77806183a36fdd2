package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"passr/internal/domain/entity"
	"passr/internal/domain/repository"
	"passr/pkg/errors"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	if chat.ID == "" {
		chat.ID = uuid.New().String()
	}

	now := time.Now()
	chat.CreatedAt = now
	chat.UpdatedAt = now

	_, err := r.client.Collection("chats").Doc(chat.ID).Set(ctx, chat)
	if err != nil {
		return errors.Internal("Failed to create chat", err)
	}

	return nil
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := r.client.Collection("chats").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat", err)
		}
		return nil, errors.Internal("Failed to get chat", err)
	}

	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, errors.Internal("Failed to parse chat data", err)
	}

	return &chat, nil
}

func (r *firestoreChatRepository) GetByUser(ctx context.Context, userID string) ([]*entity.Chat, error) {
	query := r.client.Collection("chats").
		Where("participants", "array-contains", userID).
		OrderBy("updatedAt", firestore.Desc)

	iter := query.Documents(ctx)
	var chats []*entity.Chat

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate chats", err)
		}
		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			return nil, errors.Internal("Failed to parse chat data", err)
		}
		chats = append(chats, &chat)
	}

	return chats, nil
}

func (r *firestoreChatRepository) FindByListingAndParticipants(ctx context.Context, listingID, userA, userB string) (*entity.Chat, error) {
	// array-contains accepts a single value, so query one participant and
	// match the exact pair in memory.
	query := r.client.Collection("chats").
		Where("listingId", "==", listingID).
		Where("participants", "array-contains", userA)

	iter := query.Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to search chats", err)
		}
		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			continue
		}
		if chat.HasParticipants(userA, userB) {
			return &chat, nil
		}
	}

	return nil, nil
}

func (r *firestoreChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("chats").Doc(message.ChatID).
		Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreChatRepository) GetMessagesByChat(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.client.Collection("chats").Doc(chatID).
		Collection("messages").OrderBy("createdAt", firestore.Asc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count messages for chat", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate messages", err)
		}
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, 0, errors.Internal("Failed to parse message data", err)
		}
		messages = append(messages, &message)
	}

	return messages, total, nil
}

// UpdateLastMessage runs in a transaction so that concurrent appends leave
// the summary of whichever message carries the latest timestamp.
func (r *firestoreChatRepository) UpdateLastMessage(ctx context.Context, chatID, text string, at time.Time) error {
	chatRef := r.client.Collection("chats").Doc(chatID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(chatRef)
		if err != nil {
			return err
		}

		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			return err
		}

		if chat.LastMessage != nil && at.Before(chat.LastMessage.CreatedAt) {
			return nil
		}

		return tx.Update(chatRef, []firestore.Update{
			{Path: "lastMessage", Value: &entity.LastMessage{Text: text, CreatedAt: at}},
			{Path: "updatedAt", Value: at},
		})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Chat", err)
		}
		return errors.Internal("Failed to update chat last message", err)
	}

	return nil
}

// DeleteByListing removes matching chats and their message subcollections in
// one BulkWriter pass, so the store never holds messages without a chat.
func (r *firestoreChatRepository) DeleteByListing(ctx context.Context, listingID string) (int, error) {
	docs, err := r.client.Collection("chats").
		Where("listingId", "==", listingID).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to query chats for listing", err)
	}

	if len(docs) == 0 {
		return 0, nil
	}

	bw := r.client.BulkWriter(ctx)
	for _, chatDoc := range docs {
		msgDocs, err := chatDoc.Ref.Collection("messages").Documents(ctx).GetAll()
		if err != nil {
			bw.End()
			return 0, errors.Internal("Failed to query messages for chat", err)
		}
		for _, msgDoc := range msgDocs {
			if _, err := bw.Delete(msgDoc.Ref); err != nil {
				bw.End()
				return 0, errors.Internal("Failed to delete chat messages", err)
			}
		}
		if _, err := bw.Delete(chatDoc.Ref); err != nil {
			bw.End()
			return 0, errors.Internal("Failed to delete chat", err)
		}
	}
	bw.End()

	return len(docs), nil
}
