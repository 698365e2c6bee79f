// Package assets hands out presigned S3 URLs for seller profile images.
// The server never proxies image bytes: clients upload and download
// directly against the bucket.
package assets

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/selleradmin/internal/server/config"
	"github.com/google/uuid"
)

const DefaultExpiry = 15 * time.Minute

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
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ProfileImageKey returns a fresh object key under the seller's prefix.
func ProfileImageKey(accountNo int64) string {
	return fmt.Sprintf("sellers/%d/profile/%v", accountNo, uuid.New())
}

// S3Presigner signs URLs against an S3-compatible endpoint (MinIO in dev).
type S3Presigner struct {
	region       string
	accessKey    string
	secretKey    string
	baseEndpoint string
	bucket       string
	expires      time.Duration
}

func NewS3Presigner(cfg *sc.Config) *S3Presigner {
	return &S3Presigner{
		region:       cfg.S3Region,
		accessKey:    cfg.S3RootUser,
		secretKey:    cfg.S3RootPassword,
		baseEndpoint: cfg.S3BaseEndpoint,
		bucket:       cfg.S3Bucket,
		expires:      DefaultExpiry,
	}
}

func (p *S3Presigner) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(p.region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(p.accessKey, p.secretKey, "")))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(p.baseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PutURL returns a presigned PUT for key.
func (p *S3Presigner) PutURL(ctx context.Context, key string) (string, error) {
	pc, err := p.presignClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.expires))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// GetURL returns a presigned GET for key.
func (p *S3Presigner) GetURL(ctx context.Context, key string) (string, error) {
	pc, err := p.presignClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.expires))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
