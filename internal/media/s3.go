package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MKhiriev/go-video-tube/internal/config"
	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/internal/metrics"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type objectDeleter interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage implements [Storage] backed by an S3-compatible service.
type S3Storage struct {
	uploader      uploader
	deleter       objectDeleter
	bucket        string
	baseURL       string
	uploadTimeout time.Duration
	logger        *logger.Logger
}

// NewS3Storage configures an uploader targeting the provided object store.
// A custom endpoint (MinIO, LocalStack) switches the client to path-style
// addressing.
func NewS3Storage(ctx context.Context, cfg config.Media, log *logger.Logger) (*S3Storage, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, ErrMissingBucket
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	up := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 5 * 1024 * 1024
		u.LeavePartsOnError = false
	})

	log.Info().Str("func", "NewS3Storage").Str("bucket", cfg.Bucket).Msg("media storage configured")

	return newS3Storage(up, client, cfg, log), nil
}

func newS3Storage(up uploader, del objectDeleter, cfg config.Media, log *logger.Logger) *S3Storage {
	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" && cfg.Endpoint != "" {
		baseURL = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	return &S3Storage{
		uploader:      up,
		deleter:       del,
		bucket:        cfg.Bucket,
		baseURL:       baseURL,
		uploadTimeout: cfg.UploadTimeout,
		logger:        log,
	}
}

// Save uploads r under key with a public-read ACL and returns its public URL.
func (s *S3Storage) Save(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	log := logger.FromContext(ctx)

	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", ErrEmptyKey
	}

	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   manager.ReadSeekCloser(r),
		ACL:    s3types.ObjectCannedACLPublicRead,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	start := time.Now()
	_, err := s.uploader.Upload(ctx, input)
	metrics.RecordMediaUpload(time.Since(start), err)
	if err != nil {
		log.Err(err).Str("func", "*S3Storage.Save").Str("key", key).Msg("error uploading object")
		return "", fmt.Errorf("s3 storage upload %s: %w", key, err)
	}

	return s.location(key), nil
}

// Delete removes the object behind location. Locations outside this bucket
// are ignored.
func (s *S3Storage) Delete(ctx context.Context, location string) error {
	log := logger.FromContext(ctx)

	key, ok := s.keyOf(location)
	if !ok {
		return nil
	}

	_, err := s.deleter.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *s3types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil
		}
		log.Err(err).Str("func", "*S3Storage.Delete").Str("key", key).Msg("error deleting object")
		return fmt.Errorf("s3 storage delete %s: %w", key, err)
	}

	return nil
}

func (s *S3Storage) location(key string) string {
	if s.baseURL == "" {
		return key
	}
	return s.baseURL + "/" + key
}

func (s *S3Storage) keyOf(location string) (string, bool) {
	if location == "" {
		return "", false
	}
	if s.baseURL == "" {
		return strings.TrimLeft(location, "/"), true
	}

	key, found := strings.CutPrefix(location, s.baseURL+"/")
	if !found || key == "" {
		return "", false
	}
	return key, true
}
