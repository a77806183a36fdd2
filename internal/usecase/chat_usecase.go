package usecase

import (
	"context"
	"unicode/utf8"

	"passr/internal/domain/entity"
	"passr/internal/domain/repository"
	"passr/internal/infrastructure/websocket"
	"passr/pkg/errors"
	"passr/pkg/logger"
)

// lastMessageMaxLen bounds the denormalized chat summary text.
const lastMessageMaxLen = 50

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	notifier    Notifier
	wsManager   *websocket.Manager
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
	wsManager *websocket.Manager,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:    chatRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		wsManager:   wsManager,
	}
}

// EnsureChat returns the chat for (listing, participant pair), creating it
// if none exists. The pair is unordered; calling twice yields the same chat.
func (uc *ChatUseCase) EnsureChat(ctx context.Context, listingID, userA, userB, offerID string) (*entity.Chat, error) {
	if userA == userB {
		return nil, errors.BadRequest("Chat requires two distinct participants", nil)
	}

	existing, err := uc.chatRepo.FindByListingAndParticipants(ctx, listingID, userA, userB)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	chat := &entity.Chat{
		Participants: []string{userA, userB},
		ListingID:    listingID,
		OfferID:      offerID,
	}
	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}

	return chat, nil
}

type AppendMessageInput struct {
	ChatID   string
	SenderID string
	Type     string
	Content  string
	ImageURL string
	Schedule *entity.SchedulePayload
}

// AppendMessage inserts the message and recomputes the chat's last-message
// summary. The summary update is timestamp-guarded in the store, so racing
// appends converge on the newest message no matter the arrival order.
func (uc *ChatUseCase) AppendMessage(ctx context.Context, input AppendMessageInput) (*entity.Message, error) {
	if input.Type == "" {
		input.Type = entity.MessageTypeText
	}

	message := &entity.Message{
		ChatID:   input.ChatID,
		SenderID: input.SenderID,
		Content:  input.Content,
		ImageURL: input.ImageURL,
		Type:     input.Type,
		Schedule: input.Schedule,
	}
	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	summary := lastMessageText(message.Type, message.Content, message.ImageURL)
	if err := uc.chatRepo.UpdateLastMessage(ctx, input.ChatID, summary, message.CreatedAt); err != nil {
		// The message itself is durable; a stale summary corrects itself on
		// the next append.
		logger.Error("Failed to update last message for chat %s: %v", input.ChatID, err)
	}

	uc.broadcast(ctx, message)

	return message, nil
}

type SendMessageInput struct {
	Content  string
	Type     string
	ImageURL string
	Schedule *entity.SchedulePayload
}

// SendMessage is the user-facing append: it checks membership, stores the
// message, and pushes a notification to the other participant.
func (uc *ChatUseCase) SendMessage(ctx context.Context, chatID, senderID string, input SendMessageInput) (*entity.Message, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.IsParticipant(senderID) {
		return nil, errors.Forbidden("You are not a participant of this chat", nil)
	}
	if input.Content == "" && input.ImageURL == "" && input.Schedule == nil {
		return nil, errors.BadRequest("Message content is required", nil)
	}

	message, err := uc.AppendMessage(ctx, AppendMessageInput{
		ChatID:   chatID,
		SenderID: senderID,
		Type:     input.Type,
		Content:  input.Content,
		ImageURL: input.ImageURL,
		Schedule: input.Schedule,
	})
	if err != nil {
		return nil, err
	}

	uc.notifyRecipient(ctx, chat, message)

	return message, nil
}

func (uc *ChatUseCase) GetChat(ctx context.Context, chatID, userID string) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.IsParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this chat", nil)
	}
	return chat, nil
}

func (uc *ChatUseCase) ListChats(ctx context.Context, userID string) ([]*entity.Chat, error) {
	return uc.chatRepo.GetByUser(ctx, userID)
}

func (uc *ChatUseCase) GetMessages(ctx context.Context, chatID, userID string, limit, offset int) ([]*entity.Message, int64, error) {
	if _, err := uc.GetChat(ctx, chatID, userID); err != nil {
		return nil, 0, err
	}
	return uc.chatRepo.GetMessagesByChat(ctx, chatID, limit, offset)
}

// broadcast pushes the new message to connected participants over WebSocket.
// Delivery is best-effort; offline users get the push notification instead.
func (uc *ChatUseCase) broadcast(ctx context.Context, message *entity.Message) {
	if uc.wsManager == nil {
		return
	}

	chat, err := uc.chatRepo.GetByID(ctx, message.ChatID)
	if err != nil {
		logger.Debug("Skipping websocket broadcast for chat %s: %v", message.ChatID, err)
		return
	}

	event := websocket.Event{
		Type:    "new_message",
		ChatID:  chat.ID,
		Payload: message,
	}
	for _, participant := range chat.Participants {
		if participant != message.SenderID {
			uc.wsManager.SendToUser(participant, event)
		}
	}
}

func (uc *ChatUseCase) notifyRecipient(ctx context.Context, chat *entity.Chat, message *entity.Message) {
	recipientID := chat.OtherParticipant(message.SenderID)
	if recipientID == "" || uc.notifier == nil {
		return
	}

	senderName := "Someone"
	if sender, err := uc.userRepo.GetByID(ctx, message.SenderID); err == nil && sender.Name != "" {
		senderName = sender.Name
	}

	// The anchoring listing may already be cleaned up; the notification
	// still goes out with what the chat itself knows.
	listing, err := uc.listingRepo.GetByID(ctx, chat.ListingID)
	if err != nil {
		listing = nil
	}

	recipientIsSeller := listing != nil && recipientID == listing.SellerID
	title, body, data := chatMessagePush(senderName, message, chat, listing, recipientIsSeller)

	notifyCtx := context.WithoutCancel(ctx)
	go func() {
		if err := uc.notifier.Notify(notifyCtx, recipientID, title, body, data); err != nil {
			logger.Error("Failed to notify %s about chat message: %v", recipientID, err)
		}
	}()
}

// lastMessageText maps a message onto the summary text shown in the chat
// list. Semantic types get fixed markers; plain text is truncated.
func lastMessageText(messageType, content, imageURL string) string {
	switch messageType {
	case entity.MessageTypeSchedule:
		return "📅 Pickup Scheduled"
	case entity.MessageTypeScheduleAcceptance:
		return "✅ Pickup Confirmed"
	case entity.MessageTypeScheduleRejection:
		return "❌ Pickup Declined"
	case entity.MessageTypeScheduleCancellation:
		return "🚫 Pickup Cancelled"
	}

	if content == "" && imageURL != "" {
		return "Sent an image"
	}

	return truncate(content, lastMessageMaxLen)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}
