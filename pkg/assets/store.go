package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Store persists published assets.
type Store interface {
	// Put writes one asset under key with the given content type.
	Put(ctx context.Context, key, contentType string, body io.Reader) error
}

// S3Store publishes assets to an S3 bucket.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Store creates a store over an S3 client.
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := assets.NewS3Store(s3.NewFromConfig(cfg), "my-bucket", "flashbar/")
func NewS3Store(client *s3.Client, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// Put implements Store.
func (s *S3Store) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(s.prefix + key),
		Body:         bytes.NewReader(buf.Bytes()),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=86400"),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Publish uploads the embedded client files to the store.
func Publish(ctx context.Context, store Store) error {
	files := []struct {
		name        string
		contentType string
		data        []byte
	}{
		{ScriptName, "application/javascript", Script()},
		{StyleName, "text/css", Style()},
	}
	for _, f := range files {
		if err := store.Put(ctx, f.name, f.contentType, bytes.NewReader(f.data)); err != nil {
			return err
		}
	}
	return nil
}
