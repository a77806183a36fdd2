package push

import (
	"context"

	"firebase.google.com/go/v4/messaging"

	"passr/internal/domain/repository"
	"passr/pkg/errors"
	"passr/pkg/logger"
)

// FCMClient delivers push notifications through Firebase Cloud Messaging.
// A recipient without a registered push token is skipped silently; the
// device may simply never have opted in.
type FCMClient struct {
	client   *messaging.Client
	userRepo repository.UserRepository
}

func NewFCMClient(client *messaging.Client, userRepo repository.UserRepository) *FCMClient {
	return &FCMClient{
		client:   client,
		userRepo: userRepo,
	}
}

func (f *FCMClient) Notify(ctx context.Context, userID, title, body string, data map[string]string) error {
	user, err := f.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.IsNotFound(err) {
			logger.Debug("Push skipped: user %s not found", userID)
			return nil
		}
		return err
	}

	if user.PushToken == "" {
		logger.Debug("Push skipped: user %s has no push token", userID)
		return nil
	}

	message := &messaging.Message{
		Token: user.PushToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := f.client.Send(ctx, message); err != nil {
		return err
	}

	logger.Info("Push sent to %s: %s", userID, title)
	return nil
}
