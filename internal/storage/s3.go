// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage publishes listing documents to S3-compatible object
// storage. Generated documents go to the public bucket where eBay can load
// them; the editable source of each published version is archived in the
// private bucket. Path-style addressing is used (CEPH/Hetzner).
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// Key prefixes. Exports are public, sources private.
const (
	exportPrefix = "exports/"
	sourcePrefix = "sources/"
)

// exportCacheControl lets CDNs cache a published version; every publish
// writes a new versioned key.
const exportCacheControl = "public, max-age=86400"

// Client wraps an S3 client for the public and private buckets.
type Client struct {
	s3            *s3.Client
	publicBucket  string
	privateBucket string
	endpoint      string
	publicURL     string // optional CDN/direct URL for public files
}

// New creates an S3 storage client configured for CEPH/Hetzner with
// path-style addressing. Returns (nil, nil) if endpoint or credentials
// are empty, allowing the app to start without storage.
func New(endpoint, region, accessKey, secretKey, publicBucket, privateBucket, publicURL string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}

	endpoint = strings.TrimRight(endpoint, "/")

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:            s3Client,
		publicBucket:  publicBucket,
		privateBucket: privateBucket,
		endpoint:      endpoint,
		publicURL:     strings.TrimRight(publicURL, "/"),
	}, nil
}

// Upload stores an object in the specified bucket. Objects in the public
// bucket are public-read and cacheable.
func (c *Client) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	}

	if bucket == c.publicBucket {
		input.ACL = s3types.ObjectCannedACLPublicRead
		input.CacheControl = aws.String(exportCacheControl)
	}

	_, err := c.s3.PutObject(ctx, input)
	if err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", bucket, key, err)
	}
	return nil
}

// PublishExport uploads a generated listing document to the public bucket
// and returns the URL it is served from.
func (c *Client) PublishExport(ctx context.Context, name string, html []byte) (string, error) {
	key := ExportKey(name)
	err := c.Upload(ctx, c.publicBucket, key, "text/html; charset=utf-8", bytes.NewReader(html), int64(len(html)))
	if err != nil {
		return "", err
	}
	return c.FileURL(key), nil
}

// ArchiveSource stores the editable source document of a template version
// in the private bucket and returns its key.
func (c *Client) ArchiveSource(ctx context.Context, templateID uuid.UUID, version int, html []byte) (string, error) {
	key := SourceKey(templateID, version)
	err := c.Upload(ctx, c.privateBucket, key, "text/html; charset=utf-8", bytes.NewReader(html), int64(len(html)))
	if err != nil {
		return "", err
	}
	return key, nil
}

// ExportKey returns the object key for a published document file name.
func ExportKey(name string) string {
	return exportPrefix + strings.TrimLeft(name, "/")
}

// SourceKey returns the private object key of a template version's source.
func SourceKey(templateID uuid.UUID, version int) string {
	return fmt.Sprintf("%s%s/%d.html", sourcePrefix, templateID, version)
}

// FileURL returns the public URL for a file in the public bucket.
// Uses the configured public URL if set, otherwise builds a path-style URL.
func (c *Client) FileURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.publicBucket + "/" + key
}
