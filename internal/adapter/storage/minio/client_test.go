package minio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/ExerciseTracker/internal/logger"
)

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		cfg  Config
		want string
	}{
		{Config{Endpoint: "localhost:9000"}, "http://localhost:9000"},
		{Config{Endpoint: "minio.internal:9000", UseSSL: true}, "https://minio.internal:9000"},
		{Config{Endpoint: "https://s3.example.com/"}, "https://s3.example.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cfg.EndpointURL())
	}
}

func TestObjectURL(t *testing.T) {
	cfg := Config{Endpoint: "localhost:9000", BucketName: "exercise-archive"}
	assert.Equal(t, "http://localhost:9000/exercise-archive/exercises/u1/e1.json", cfg.ObjectURL("exercises/u1/e1.json"))
}

func TestNewMinioClientRequiresCredentials(t *testing.T) {
	_, err := NewMinioClient(context.Background(), Config{Endpoint: "localhost:9000"}, logger.Discard())
	require.Error(t, err)
}
