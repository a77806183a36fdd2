package usecase

import "context"

// Notifier delivers a push notification to a user. Implementations no-op
// when the user has no registered device token; data always carries a
// "type" discriminator and a deep-link "url".
type Notifier interface {
	Notify(ctx context.Context, userID, title, body string, data map[string]string) error
}

// ObjectStorage is the narrow slice of the image store the cleanup engine
// needs: mapping public URLs back to object keys and batch best-effort
// deletion.
type ObjectStorage interface {
	ObjectKeyFromURL(url string) (string, error)
	DeleteObjects(ctx context.Context, keys []string) error
}
