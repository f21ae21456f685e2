package triprepo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tomoika/tripmag/internal/domain/trip"
)

// S3Repository serves trip documents from an S3-compatible bucket, one
// object per trip at <slug>/trip.json.
type S3Repository struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// NewS3Repository constructs the repository.
func NewS3Repository(endpoint, accessKey, secretKey, bucket, region string, logger *slog.Logger) (*S3Repository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cleanEndpoint := sanitizeEndpoint(endpoint)
	useSSL := strings.HasPrefix(strings.ToLower(endpoint), "https")
	client, err := minio.New(cleanEndpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       useSSL,
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3Repository{
		client: client,
		bucket: bucket,
		logger: logger.With("component", "triprepo.s3"),
	}, nil
}

// Fetch downloads the document object for a slug.
func (r *S3Repository) Fetch(ctx context.Context, slug string) ([]byte, error) {
	if !slugRe.MatchString(slug) {
		return nil, trip.ErrNotFound
	}
	key := slug + "/trip.json"
	obj, err := r.client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get trip object: %w", err)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
			return nil, trip.ErrNotFound
		}
		return nil, fmt.Errorf("read trip object: %w", err)
	}
	return data, nil
}

func sanitizeEndpoint(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")
	return strings.TrimSuffix(endpoint, "/")
}

var _ trip.DocumentRepository = (*S3Repository)(nil)
