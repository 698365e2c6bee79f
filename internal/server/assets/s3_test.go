package assets

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/selleradmin/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPresigner() *S3Presigner {
	return NewS3Presigner(&sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "sellers",
	})
}

func stubClients(t *testing.T) *string {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		return aws.Config{}, nil
	}

	var endpoint string
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		require.NotNil(t, opts.BaseEndpoint)
		endpoint = *opts.BaseEndpoint
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}
	return &endpoint
}

func TestProfileImageKey(t *testing.T) {
	re := regexp.MustCompile(`^sellers/42/profile/[0-9a-f-]{36}$`)
	a, b := ProfileImageKey(42), ProfileImageKey(42)
	assert.Regexp(t, re, a)
	assert.NotEqual(t, a, b)
}

func TestPutURL(t *testing.T) {
	endpoint := stubClients(t)

	orig := presignPutObject
	t.Cleanup(func() { presignPutObject = orig })
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		assert.Equal(t, "sellers", *in.Bucket)
		assert.Equal(t, "sellers/1/profile/x", *in.Key)
		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		assert.Equal(t, DefaultExpiry, po.Expires)
		return &v4.PresignedHTTPRequest{URL: "https://put"}, nil
	}

	u, err := newPresigner().PutURL(context.Background(), "sellers/1/profile/x")
	require.NoError(t, err)
	assert.Equal(t, "https://put", u)
	assert.Equal(t, "http://127.0.0.1:9000", *endpoint)
}

func TestGetURL(t *testing.T) {
	stubClients(t)

	orig := presignGetObject
	t.Cleanup(func() { presignGetObject = orig })
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		assert.Equal(t, "k", *in.Key)
		return &v4.PresignedHTTPRequest{URL: "https://get"}, nil
	}

	u, err := newPresigner().GetURL(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "https://get", u)
}

func TestPresignErrors(t *testing.T) {
	stubClients(t)

	origPut, origGet := presignPutObject, presignGetObject
	t.Cleanup(func() { presignPutObject, presignGetObject = origPut, origGet })
	presignPutObject = func(*s3.PresignClient, context.Context, *s3.PutObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("put-fail")
	}
	presignGetObject = func(*s3.PresignClient, context.Context, *s3.GetObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("get-fail")
	}

	_, err := newPresigner().PutURL(context.Background(), "k")
	assert.EqualError(t, err, "put-fail")
	_, err = newPresigner().GetURL(context.Background(), "k")
	assert.EqualError(t, err, "get-fail")
}

func TestLoadConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	_, err := newPresigner().PutURL(context.Background(), "k")
	assert.EqualError(t, err, "load-fail")
	_, err = newPresigner().GetURL(context.Background(), "k")
	assert.EqualError(t, err, "load-fail")
}
