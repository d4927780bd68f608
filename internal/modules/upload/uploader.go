// Package upload streams image files to S3 and hands the public URL
// back to the caller, which then writes it into the relevant record
// field. The object store is a one-way boundary: nothing is read back.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/meridian-institute/core/internal/config"
	"github.com/meridian-institute/core/internal/pkg/apperr"
)

// Uploader wraps the S3 client with the bucket and URL settings.
type Uploader struct {
	client *s3.Client
	cfg    config.S3Config
}

// NewUploader builds an S3 client from static credentials. A custom
// endpoint switches to path-style addressing for S3-compatible stores.
func NewUploader(cfg config.S3Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("s3: credentials are required")
	}

	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		UsePathStyle: cfg.ForcePathStyle,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	return &Uploader{client: s3.New(opts), cfg: cfg}, nil
}

// Put writes one object and returns its public URL.
func (u *Uploader) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return "", apperr.Upstream("object storage", err)
	}
	return u.publicURL(key), nil
}

func (u *Uploader) publicURL(key string) string {
	if base := strings.TrimRight(u.cfg.PublicURL, "/"); base != "" {
		return base + "/" + key
	}
	if u.cfg.Endpoint != "" {
		return strings.TrimRight(u.cfg.Endpoint, "/") + "/" + u.cfg.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key)
}

// objectKey namespaces uploads by kind and date, with a fresh uuid so
// filenames never collide.
func objectKey(kind, filename string, now time.Time) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%s/%s%s", kind, now.Format("2006/01"), uuid.New().String(), ext)
}
