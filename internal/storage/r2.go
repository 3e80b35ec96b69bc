package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/sapienskid/witch/internal/config"
)

// Uploaded objects are immutable, so downstream caches may hold them for a
// year.
const cacheControl = "public, max-age=31536000"

// Uploader is what the image pipeline needs from object storage: put one
// object, get back its public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string, metadata map[string]string) (string, error)
	Check(ctx context.Context) error
}

// R2 talks to a Cloudflare R2 bucket through the S3-compatible API.
type R2 struct {
	client *s3.Client
	cfg    config.R2
}

// NewR2 builds the client. The R2 endpoint is account-scoped and uses the
// literal region "auto".
func NewR2(ctx context.Context, rc config.R2) (*R2, error) {
	if strings.TrimSpace(rc.Bucket) == "" {
		return nil, errors.New("bucket name is required")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			rc.AccessKeyID,
			rc.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", rc.AccountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	return &R2{client: client, cfg: rc}, nil
}

// Upload puts one object and returns its public URL.
func (r *R2) Upload(ctx context.Context, key string, body []byte, contentType string, metadata map[string]string) (string, error) {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(r.cfg.Bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(cacheControl),
		Metadata:     metadata,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return r.PublicURL(key), nil
}

// Check verifies connectivity and credentials with a HeadBucket call.
func (r *R2) Check(ctx context.Context) error {
	_, err := r.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(r.cfg.Bucket),
	})
	if err != nil {
		return fmt.Errorf("head bucket %s: %w", r.cfg.Bucket, err)
	}
	return nil
}

// PublicURL prefers the configured custom domain, falling back to the
// bucket's r2.dev development URL.
func (r *R2) PublicURL(key string) string {
	if domain := strings.TrimSpace(r.cfg.CustomDomain); domain != "" {
		return fmt.Sprintf("https://%s/%s", domain, key)
	}
	return fmt.Sprintf("https://%s.%s.r2.dev/%s", r.cfg.Bucket, r.cfg.AccountID, key)
}
