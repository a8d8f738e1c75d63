package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPresigner(t *testing.T) *S3Presigner {
	t.Helper()
	p, err := NewS3Presigner(context.Background(), S3Config{
		Bucket:    "images",
		Region:    "us-west-2",
		Endpoint:  "http://localhost:9000",
		AccessKey: "AKIDEXAMPLE",
		SecretKey: "secret",
	})
	require.NoError(t, err)
	return p
}

func TestNewS3Presigner_RequiresBucket(t *testing.T) {
	_, err := NewS3Presigner(context.Background(), S3Config{Region: "us-west-2"})
	assert.Error(t, err)
}

func TestPresignPut(t *testing.T) {
	p := newTestPresigner(t)

	raw, err := p.PresignPut(context.Background(), "u1/abc.png", "image/png", map[string]string{"userId": "u1"}, 15*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/images/u1/abc.png", u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	assert.Contains(t, u.Query().Get("X-Amz-Credential"), "AKIDEXAMPLE")
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestPresignGet(t *testing.T) {
	p := newTestPresigner(t)

	raw, err := p.PresignGet(context.Background(), "u1/abc.png", time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/images/u1/abc.png", u.Path)
	assert.Equal(t, "60", u.Query().Get("X-Amz-Expires"))
}
