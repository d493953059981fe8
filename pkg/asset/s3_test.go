package asset

import (
	"bytes"
	"context"
	"io"
	"testing"

	"BatiDetect/internal/entity"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	s3iface.S3API
	objects map[string][]byte
}

func (f *fakeS3) HeadObjectWithContext(ctx aws.Context, in *s3.HeadObjectInput, _ ...request.Option) (*s3.HeadObjectOutput, error) {
	data, ok := f.objects[aws.StringValue(in.Key)]
	if !ok {
		return nil, awserr.New("NotFound", "not found", nil)
	}
	return &s3.HeadObjectOutput{ContentLength: aws.Int64(int64(len(data)))}, nil
}

func (f *fakeS3) GetObjectWithContext(ctx aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.StringValue(in.Key)]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "no such key", nil)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestS3StoreUsesPrefix(t *testing.T) {
	t.Parallel()

	client := &fakeS3{objects: map[string][]byte{
		"batidetect/assets/aerienne_exemple.jpg": []byte("jpeg bytes"),
	}}
	store := NewS3WithClient(client, "bucket", "/batidetect/")
	ctx := context.Background()

	info, err := store.Stat(ctx, entity.AssetAerial)
	require.NoError(t, err)
	require.Equal(t, int64(10), info.Size)
	require.Equal(t, "image/jpeg", info.ContentType)

	body, _, err := store.Open(ctx, entity.AssetAerial)
	require.NoError(t, err)
	require.Equal(t, []byte("jpeg bytes"), body)
}

func TestS3StoreMissingObject(t *testing.T) {
	t.Parallel()

	store := NewS3WithClient(&fakeS3{objects: map[string][]byte{}}, "bucket", "")

	_, err := store.Stat(context.Background(), entity.AssetDemoImage)
	require.ErrorIs(t, err, ErrAssetNotFound)

	_, _, err = store.Open(context.Background(), entity.AssetDemoImage)
	require.ErrorIs(t, err, ErrAssetNotFound)
}
