package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cockroachdb/errors"

	"github.com/bohselecta/luvler-metering/internal/config"
	ierr "github.com/bohselecta/luvler-metering/internal/errors"
	"github.com/bohselecta/luvler-metering/internal/logger"
)

const contentTypeJSON = "application/json"

type s3Store struct {
	client *s3.Client
	config *config.BlobConfig
	log    *logger.Logger
}

// NewS3Store creates a blob store backed by an S3 (or S3-compatible) bucket
func NewS3Store(cfg *config.Configuration, log *logger.Logger) (Store, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(cfg.Blob.Region),
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load aws config").
			Mark(ierr.ErrBlobStore)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Blob.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Blob.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Store{
		client: client,
		config: &cfg.Blob,
		log:    log,
	}, nil
}

func (s *s3Store) objectKey(key string) string {
	if s.config.KeyPrefix != "" {
		return fmt.Sprintf("%s/%s.json", s.config.KeyPrefix, key)
	}
	return fmt.Sprintf("%s.json", key)
}

// key reverses objectKey for keys returned by ListObjectsV2
func (s *s3Store) key(objectKey string) string {
	key := strings.TrimSuffix(objectKey, ".json")
	if s.config.KeyPrefix != "" {
		key = strings.TrimPrefix(key, s.config.KeyPrefix+"/")
	}
	return key
}

func (s *s3Store) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentTypeJSON),
	})
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to store blob %s", key).
			Mark(ierr.ErrBlobStore)
	}
	return nil
}

func (s *s3Store) Fetch(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ierr.NewErrorf("blob not found: %s", key).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHintf("Failed to fetch blob %s", key).
			Mark(ierr.ErrBlobStore)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to read blob %s", key).
			Mark(ierr.ErrBlobStore)
	}
	return data, nil
}

func (s *s3Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, ierr.WithError(err).
			WithHintf("Failed to check blob %s", key).
			Mark(ierr.ErrBlobStore)
	}
	return true, nil
}

func (s *s3Store) List(ctx context.Context, prefix string) ([]string, error) {
	objectPrefix := prefix
	if s.config.KeyPrefix != "" {
		objectPrefix = fmt.Sprintf("%s/%s", s.config.KeyPrefix, prefix)
	}

	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.config.Bucket),
		Prefix: aws.String(objectPrefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHintf("Failed to list blobs with prefix %s", prefix).
				Mark(ierr.ErrBlobStore)
		}
		for _, obj := range page.Contents {
			if obj.Key != nil {
				keys = append(keys, s.key(*obj.Key))
			}
		}
	}
	return keys, nil
}

func isNotFound(err error) bool {
	var nsk *s3types.NoSuchKey
	var nf *s3types.NotFound
	return errors.As(err, &nsk) || errors.As(err, &nf)
}
