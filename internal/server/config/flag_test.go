package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"cmd",
		"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret",
		"-t", "1", "-r", "3", "-f", "https://files.example",
		"-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
	}

	config := &Config{}
	require.NotPanics(t, func() { parseFlags(config) })

	assert.Equal(t, "127.0.0.1:9090", config.EndpointAddr)
	assert.Equal(t, "db", config.DatabaseDSN)
	assert.Equal(t, "secret", config.SecretKey)
	assert.Equal(t, 1*time.Minute, config.AccessTokenValidityDuration)
	assert.Equal(t, 3*time.Minute, config.RefreshTokenValidityDuration)
	assert.Equal(t, "https://files.example", config.FileServeBaseURL)
	assert.Equal(t, "user", config.S3RootUser)
	assert.Equal(t, "password", config.S3RootPassword)
	assert.Equal(t, "bucket", config.S3Bucket)
	assert.Equal(t, "us-west-1", config.S3Region)
	assert.Equal(t, "http://endpoint", config.S3BaseEndpoint)
}

func TestParseFlags_KeepsDefaultsWhenAbsent(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"cmd"}

	config := &Config{}
	config.LoadDefaults()
	parseFlags(config)

	assert.Equal(t, ":8080", config.EndpointAddr)
	assert.Equal(t, 15*time.Minute, config.AccessTokenValidityDuration)
}
