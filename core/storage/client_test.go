package storage_test

import (
	"testing"
	"time"

	"trolley/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{"Plain Endpoint", storage.Config{Endpoint: "localhost:9000", AccessKey: "key", SecretKey: "secret", Bucket: "trolley"}},
		{"HTTP Scheme Stripped", storage.Config{Endpoint: "http://localhost:9000", AccessKey: "key", SecretKey: "secret"}},
		{"HTTPS With Region", storage.Config{Endpoint: "https://s3.amazonaws.com", UseSSL: true, Region: "eu-west-1"}},
		{"Default Timeout", storage.Config{Endpoint: "localhost:9000", TimeoutSeconds: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}

	t.Run("Invalid Endpoint", func(t *testing.T) {
		_, err := storage.NewClient(storage.Config{Endpoint: "bad host:9000"})
		assert.Error(t, err)
	})
}

func TestConfig_HostAndTimeout(t *testing.T) {
	tests := []struct {
		name    string
		cfg     storage.Config
		host    string
		timeout time.Duration
	}{
		{"Bare Host", storage.Config{Endpoint: "minio:9000", TimeoutSeconds: 5}, "minio:9000", 5 * time.Second},
		{"HTTP", storage.Config{Endpoint: "http://minio:9000"}, "minio:9000", storage.DefaultTimeout},
		{"HTTPS", storage.Config{Endpoint: "https://s3.amazonaws.com", TimeoutSeconds: -3}, "s3.amazonaws.com", storage.DefaultTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.host, tt.cfg.Host())
			assert.Equal(t, tt.timeout, tt.cfg.Timeout())
		})
	}
}
