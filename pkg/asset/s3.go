package asset

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"BatiDetect/internal/entity"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type s3Store struct {
	client     s3iface.S3API
	bucketName string
	prefix     string
	cache      *imageCache
}

// NewS3 reads assets from AWS_BUCKET_NAME, keyed by their relative path
// under the optional AWS_ASSET_PREFIX.
func NewS3() (IAssetStore, error) {
	bucket := os.Getenv("AWS_BUCKET_NAME")
	if bucket == "" {
		return nil, errors.New("AWS_BUCKET_NAME is required for the s3 asset source")
	}

	sess, err := newSession()
	if err != nil {
		return nil, err
	}

	return NewS3WithClient(s3.New(sess), bucket, os.Getenv("AWS_ASSET_PREFIX")), nil
}

func NewS3WithClient(client s3iface.S3API, bucket, prefix string) IAssetStore {
	return &s3Store{
		client:     client,
		bucketName: bucket,
		prefix:     strings.Trim(prefix, "/"),
		cache:      newImageCache(),
	}
}

func (s *s3Store) Source() string {
	return "s3"
}

func (s *s3Store) key(ref entity.AssetRef) string {
	if s.prefix == "" {
		return ref.Path
	}
	return s.prefix + "/" + ref.Path
}

func (s *s3Store) Stat(ctx context.Context, ref entity.AssetRef) (*entity.AssetInfo, error) {
	out, err := s.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.key(ref)),
	})
	if err != nil {
		return nil, s.wrap(ref, err)
	}

	contentType := aws.StringValue(out.ContentType)
	if contentType == "" {
		contentType = contentTypeFor(ref.Path, nil)
	}

	return &entity.AssetInfo{
		Ref:         ref,
		Size:        aws.Int64Value(out.ContentLength),
		ContentType: contentType,
	}, nil
}

func (s *s3Store) Open(ctx context.Context, ref entity.AssetRef) ([]byte, string, error) {
	data, err := s.read(ctx, ref)
	if err != nil {
		return nil, "", err
	}
	return data, contentTypeFor(ref.Path, data), nil
}

func (s *s3Store) Image(ctx context.Context, ref entity.AssetRef) (image.Image, error) {
	return s.cache.load(ref, func() ([]byte, error) {
		return s.read(ctx, ref)
	})
}

func (s *s3Store) read(ctx context.Context, ref entity.AssetRef) ([]byte, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.key(ref)),
	})
	if err != nil {
		return nil, s.wrap(ref, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3 object %s: %w", s.key(ref), err)
	}
	return data, nil
}

func (s *s3Store) wrap(ref entity.AssetRef, err error) error {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, "NotFound":
			return notFound(ref)
		}
	}
	return fmt.Errorf("s3 request for %s failed: %w", s.key(ref), err)
}

func newSession() (*session.Session, error) {
	cfg := &aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
	}
	if id := os.Getenv("AWS_ACCESS_KEY_ID"); id != "" {
		cfg.Credentials = credentials.NewStaticCredentials(
			id,
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		)
	}

	return session.NewSession(cfg)
}
