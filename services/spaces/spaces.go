package spaces

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Client handles object storage operations against an S3-compatible Spaces
// bucket fronted by a CDN
type Client struct {
	s3Client *s3.S3
	bucket   string
	endpoint string
	cdnURL   string
}

// Config holds configuration for the Spaces client
type Config struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string
	CDNURL    string
}

// NewClient creates a new Spaces client
func NewClient(config Config) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
		Endpoint:         aws.String(config.Endpoint),
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Spaces session: %w", err)
	}

	return &Client{
		s3Client: s3.New(sess),
		bucket:   config.Bucket,
		endpoint: config.Endpoint,
		cdnURL:   config.CDNURL,
	}, nil
}

// UploadBytes uploads an object and returns its publicly resolvable URL
func (c *Client) UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := c.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        aws.ReadSeekCloser(bytes.NewReader(data)),
		ACL:         aws.String("public-read"), // Served through the CDN
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return c.ObjectURL(key), nil
}

// DeleteObject removes an object from the bucket
func (c *Client) DeleteObject(ctx context.Context, key string) error {
	_, err := c.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// ObjectURL returns the public URL for an object. Prefers the CDN when
// configured.
func (c *Client) ObjectURL(key string) string {
	if c.cdnURL != "" {
		return fmt.Sprintf("%s/%s", c.cdnURL, key)
	}
	return fmt.Sprintf("https://%s.%s/%s", c.bucket, c.endpoint, key)
}
