package s3

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"file-vault-api/config"
)

// Client only renders bucket names and public URLs for file records.
// Blob bytes are written and deleted by the upload service and the
// janitor; this engine never holds object-store credentials with
// delete rights.
type Client struct {
	logger *zap.Logger
	region string
	bucket string
}

func New(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.S3,

) (*Client, error) {
	// ...

	return &Client{
		logger: logger,
		region: cfg.Region,
		bucket: cfg.BucketUploads,
	}, nil
}

func (c *Client) GetPublicURL(key string) string {
	return fmt.Sprintf("https://%s.example.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}

func (c *Client) GetBucket() string { return c.bucket }
