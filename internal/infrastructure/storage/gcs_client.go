package storage

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"passr/pkg/logger"
)

const urlPrefix = "https://storage.googleapis.com/"

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

func NewCloudStorageClient(ctx context.Context, bucketName, credentialsPath string) (*CloudStorageClient, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// ObjectKeyFromURL extracts the object name from a public GCS URL.
// Expected format: https://storage.googleapis.com/bucket-name/object-path
func (c *CloudStorageClient) ObjectKeyFromURL(fileURL string) (string, error) {
	if !strings.HasPrefix(fileURL, urlPrefix) {
		return "", fmt.Errorf("invalid storage URL format")
	}

	path := fileURL[len(urlPrefix):]
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[0] != c.bucketName || parts[1] == "" {
		return "", fmt.Errorf("invalid storage URL format or bucket mismatch")
	}

	return parts[1], nil
}

// DeleteObjects removes the given keys best-effort: a key that fails to
// delete is logged and skipped, the rest of the batch proceeds.
func (c *CloudStorageClient) DeleteObjects(ctx context.Context, keys []string) error {
	var failed int
	for _, key := range keys {
		obj := c.client.Bucket(c.bucketName).Object(key)
		if err := obj.Delete(ctx); err != nil {
			if err == storage.ErrObjectNotExist {
				continue
			}
			logger.Warn("Failed to delete object %s: %v", key, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("failed to delete %d of %d objects", failed, len(keys))
	}

	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
