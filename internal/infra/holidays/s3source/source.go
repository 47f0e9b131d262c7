package s3source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/workcalc/internal/domain/calendar"
	"github.com/yanqian/workcalc/internal/domain/holiday"
)

const maxObjectSize = 1 << 20

// Source reads a JSON holiday document from an S3 compatible bucket (R2, MinIO, S3).
type Source struct {
	client *minio.Client
	bucket string
	key    string
	logger *slog.Logger
}

// NewSource constructs the object store adapter.
func NewSource(endpoint, accessKey, secretKey, bucket, region, key string, logger *slog.Logger) (*Source, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(key) == "" {
		key = "holidays.json"
	}
	useSSL := !strings.HasPrefix(strings.ToLower(strings.TrimSpace(endpoint)), "http://")
	client, err := minio.New(sanitizeEndpoint(endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       useSSL,
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object store client: %w", err)
	}
	return &Source{
		client: client,
		bucket: bucket,
		key:    key,
		logger: logger.With("component", "holidays.s3source"),
	}, nil
}

// Fetch downloads and decodes the holiday document.
func (s *Source) Fetch(ctx context.Context) ([]calendar.Holiday, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get holidays object: %w", err)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat holidays object: %w", err)
	}
	if info.Size > maxObjectSize {
		return nil, fmt.Errorf("holidays object too large: %d bytes", info.Size)
	}

	payload, err := io.ReadAll(io.LimitReader(obj, maxObjectSize))
	if err != nil {
		return nil, fmt.Errorf("read holidays object: %w", err)
	}
	s.logger.Debug("holidays object downloaded", "bucket", s.bucket, "key", s.key, "etag", info.ETag)
	return holiday.Decode(payload)
}

var _ holiday.Source = (*Source)(nil)

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if idx := strings.Index(raw, "/"); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}
