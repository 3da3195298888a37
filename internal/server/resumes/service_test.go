package resumes

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sc "github.com/stujob/stujob/internal/server/config"
)

func testConfig() *sc.Config {
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	return cfg
}

func stubPresign(t *testing.T, putURL, getURL string, presignErr error) {
	t.Helper()

	origPut, origGet := presignPutObject, presignGetObject
	t.Cleanup(func() {
		presignPutObject, presignGetObject = origPut, origGet
	})

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if presignErr != nil {
			return nil, presignErr
		}
		return &v4.PresignedHTTPRequest{URL: putURL + "/" + aws.ToString(in.Key)}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if presignErr != nil {
			return nil, presignErr
		}
		return &v4.PresignedHTTPRequest{URL: getURL + "/" + aws.ToString(in.Key)}, nil
	}
}

func TestGetPresignedPutURL(t *testing.T) {
	stubPresign(t, "https://s3.local/put", "https://s3.local/get", nil)
	s := NewService(testConfig())

	key, url, err := s.GetPresignedPutURL(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "resumes/acc-1/"))
	assert.Contains(t, url, key)
}

func TestStorageKeyFormat(t *testing.T) {
	key, err := storageKey("acc-1")
	require.NoError(t, err)

	parts := strings.Split(key, "/")
	require.Len(t, parts, 6)
	assert.Equal(t, "resumes", parts[0])
	assert.Equal(t, "acc-1", parts[1])
	assert.Len(t, parts[5], 32) // 16 random bytes, hex-encoded
}

func TestPutKeysAreUnique(t *testing.T) {
	stubPresign(t, "https://s3.local/put", "https://s3.local/get", nil)
	s := NewService(testConfig())

	key1, _, err := s.GetPresignedPutURL(context.Background(), "acc-1")
	require.NoError(t, err)
	key2, _, err := s.GetPresignedPutURL(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.NotEqual(t, key1, key2)
}

func TestGetPresignedGetURL(t *testing.T) {
	stubPresign(t, "https://s3.local/put", "https://s3.local/get", nil)
	s := NewService(testConfig())

	url, err := s.GetPresignedGetURL(context.Background(), "resumes/acc-1/2026/1/1/xyz")
	require.NoError(t, err)
	assert.Contains(t, url, "resumes/acc-1/2026/1/1/xyz")
}

func TestPresignError(t *testing.T) {
	stubPresign(t, "", "", errors.New("s3 down"))
	s := NewService(testConfig())

	_, _, err := s.GetPresignedPutURL(context.Background(), "acc-1")
	assert.Error(t, err)

	_, err = s.GetPresignedGetURL(context.Background(), "key")
	assert.Error(t, err)
}

func TestConfigLoadError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("bad config")
	}

	s := NewService(testConfig())
	_, _, err := s.GetPresignedPutURL(context.Background(), "acc-1")
	assert.Error(t, err)
}
