// Package storage keeps uploaded files in Cloudflare R2 through its S3 API.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/binna/binna-backend/config"
)

// FileStorage is what the invoice service needs from an object store.
type FileStorage interface {
	Save(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PresignedURL(ctx context.Context, key string) (string, error)
}

// R2FileStorage stores files in Cloudflare R2 (S3-compatible).
type R2FileStorage struct {
	client     *s3.Client
	presigner  *s3.PresignClient
	bucketName string
	presignTTL time.Duration
}

var _ FileStorage = (*R2FileStorage)(nil)

// Option adjusts the S3 client, mainly to point tests at a local endpoint.
type Option func(*s3.Options)

// WithEndpoint replaces the R2 account endpoint and switches to path-style addressing.
func WithEndpoint(endpoint string) Option {
	return func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	}
}

// NewR2FileStorage builds a client for the configured bucket. Credentials
// are only checked when a request is made.
func NewR2FileStorage(ctx context.Context, cfg config.StorageConfig, opts ...Option) (*R2FileStorage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load r2 config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		for _, opt := range opts {
			opt(o)
		}
	})

	ttl := time.Duration(cfg.PresignMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &R2FileStorage{
		client:     client,
		presigner:  s3.NewPresignClient(client),
		bucketName: cfg.R2Bucket,
		presignTTL: ttl,
	}, nil
}

// validateKey rejects storage keys containing path traversal segments.
func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("empty storage key")
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == ".." {
			return fmt.Errorf("path traversal detected in storage key")
		}
	}
	return nil
}

func (s *R2FileStorage) Save(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("r2 put object failed: %w", err)
	}
	return nil
}

func (s *R2FileStorage) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("r2 delete object failed: %w", err)
	}
	return nil
}

// PresignedURL returns a short-lived download URL. The download keeps the
// name the file was uploaded with.
func (s *R2FileStorage) PresignedURL(ctx context.Context, key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	disposition := fmt.Sprintf("attachment; filename=%q", OriginalFilename(key))
	result, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(s.bucketName),
		Key:                        aws.String(key),
		ResponseContentDisposition: aws.String(disposition),
	}, s3.WithPresignExpires(s.presignTTL))
	if err != nil {
		return "", fmt.Errorf("r2 presign failed: %w", err)
	}
	return result.URL, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename reduces an uploaded name to a safe key segment.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "file"
	}
	if len(name) > 120 {
		ext := filepath.Ext(name)
		name = name[:120-len(ext)] + ext
	}
	return name
}

// InvoiceKey is invoices/<store>/<order>/<unix nanos>_<name>.
func InvoiceKey(storeID, orderID, filename string, at time.Time) string {
	return fmt.Sprintf("invoices/%s/%s/%d_%s", storeID, orderID, at.UnixNano(), SanitizeFilename(filename))
}

// OriginalFilename strips the key's directory and timestamp prefix.
func OriginalFilename(key string) string {
	base := filepath.Base(key)
	if idx := strings.Index(base, "_"); idx >= 0 {
		return base[idx+1:]
	}
	return base
}
