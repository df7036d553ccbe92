// Package services contains server-side business logic. This file wires
// the S3-compatible object store: presigned PUT URLs for chart/audio
// uploads and object deletion for the guarded delete path.
package services

import (
	"context"
	"time"

	sc "github.com/bandroomhq/bandroom/internal/server/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Seams for testing the AWS SDK wiring without network access.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
		return c.DeleteObject(ctx, in, optFns...)
	}
)

// ObjectStore is the subset of object-storage operations this server
// performs itself. Reads never happen here: download traffic goes through
// the external serve-file endpoint, gated by file access tokens.
type ObjectStore interface {
	// PresignPut returns a temporary URL the client can PUT the object to.
	PresignPut(ctx context.Context, key string) (string, error)

	// Delete removes the object at key. Callers must run the ownership
	// check on key before calling this.
	Delete(ctx context.Context, key string) error
}

const uploadURLExpiry = 15 * time.Minute

// S3ObjectStore implements ObjectStore against an S3-compatible backend
// (MinIO in development).
type S3ObjectStore struct {
	config *sc.Config
}

// NewS3ObjectStore constructs an S3-backed ObjectStore from server config.
func NewS3ObjectStore(config *sc.Config) *S3ObjectStore {
	return &S3ObjectStore{config: config}
}

func (s *S3ObjectStore) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	}), nil
}

// PresignPut returns a presigned PUT URL for key, valid for 15 minutes.
func (s *S3ObjectStore) PresignPut(ctx context.Context, key string) (string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	req, err := presignPutObject(newS3PresignClient(client), ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(uploadURLExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// Delete removes the object at key from the bucket.
func (s *S3ObjectStore) Delete(ctx context.Context, key string) error {
	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}

	bucket := s.config.S3Bucket
	_, err = deleteObject(client, ctx, &s3.DeleteObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	return err
}
