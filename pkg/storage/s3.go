// Copyright 2026 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const s3Scheme = "s3://"

// S3Config configures an S3Sink.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// S3Sink writes datasets to an S3-compatible object store.
type S3Sink struct {
	client        *minio.Client
	defaultBucket string
	region        string

	mu      sync.Mutex
	ensured map[string]bool
}

// NewS3Sink creates a sink from cfg. Endpoint and credentials are required;
// Region defaults to us-east-1.
func NewS3Sink(cfg S3Config) (*S3Sink, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &S3Sink{
		client:        client,
		defaultBucket: strings.TrimSpace(cfg.Bucket),
		region:        region,
		ensured:       make(map[string]bool),
	}, nil
}

// IsS3URL reports whether dest names an object store destination.
func IsS3URL(dest string) bool {
	return strings.HasPrefix(dest, s3Scheme)
}

// ParseS3URL splits "s3://bucket/key" into bucket and key. A name without
// the scheme is a key in defaultBucket.
func ParseS3URL(name, defaultBucket string) (bucket, key string, err error) {
	if !IsS3URL(name) {
		bucket, key = defaultBucket, strings.TrimLeft(name, "/")
	} else {
		rest := strings.TrimPrefix(name, s3Scheme)
		bucket, key, _ = strings.Cut(rest, "/")
	}
	if bucket == "" {
		return "", "", fmt.Errorf("no bucket in %q", name)
	}
	if key == "" {
		return "", "", fmt.Errorf("no object key in %q", name)
	}
	return bucket, key, nil
}

func (s *S3Sink) ensureBucket(ctx context.Context, bucket string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ensured[bucket] {
		return nil
	}
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return err
		}
	}
	s.ensured[bucket] = true
	return nil
}

// Put uploads data as a CSV object.
func (s *S3Sink) Put(ctx context.Context, name string, data []byte) error {
	bucket, key, err := ParseS3URL(name, s.defaultBucket)
	if err != nil {
		return err
	}
	if err := s.ensureBucket(ctx, bucket); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}
	_, err = s.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	return err
}

// Get downloads a whole object.
func (s *S3Sink) Get(ctx context.Context, name string) ([]byte, error) {
	bucket, key, err := ParseS3URL(name, s.defaultBucket)
	if err != nil {
		return nil, err
	}
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}
