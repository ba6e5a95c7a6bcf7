package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Config holds object storage settings. BaseEndpoint is optional and
// allows pointing at an S3-compatible store.
type S3Config struct {
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
	PublicURL    string
}

// S3Storage implements Uploader on top of AWS S3.
type S3Storage struct {
	client *s3.Client
	cfg    S3Config
}

// NewS3Storage builds an S3 client from static credentials.
func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
	})

	return &S3Storage{client: client, cfg: cfg}, nil
}

// Upload streams body into the bucket under folder and returns the stored
// object's metadata. The body is never buffered whole in memory.
func (s *S3Storage) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader, size int64) (*Object, error) {
	key := objectKey(folder, filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	return &Object{
		Key:       key,
		URL:       s.objectURL(key),
		Bytes:     size,
		Folder:    folder,
		CreatedAt: time.Now(),
	}, nil
}

// List returns objects under a folder prefix, newest key naming first is not
// guaranteed by S3; callers get lexical order.
func (s *S3Storage) List(ctx context.Context, folder string, max int32) ([]Object, error) {
	prefix := strings.TrimSuffix(folder, "/") + "/"

	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.cfg.Bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(max),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}

	objects := make([]Object, 0, len(out.Contents))
	for _, item := range out.Contents {
		obj := Object{
			Key:    aws.ToString(item.Key),
			URL:    s.objectURL(aws.ToString(item.Key)),
			Bytes:  aws.ToInt64(item.Size),
			Folder: folder,
		}
		if item.LastModified != nil {
			obj.CreatedAt = *item.LastModified
		}
		objects = append(objects, obj)
	}

	return objects, nil
}

// objectKey builds a unique key preserving the original file extension.
func objectKey(folder, filename string) string {
	ext := path.Ext(filename)
	base := strings.TrimSuffix(path.Base(filename), ext)
	return fmt.Sprintf("%s/%s-%s%s", strings.TrimSuffix(folder, "/"), base, uuid.New().String(), ext)
}

func (s *S3Storage) objectURL(key string) string {
	if s.cfg.PublicURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.cfg.PublicURL, "/"), key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}
