package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"backend": map[string]any{
			"baseUrl":   "",
			"apiPrefix": "/api",
		},
		"push": map[string]any{
			"topicPrefix":    "/topic",
			"connectTimeout": "10s",
		},
		"session": map[string]any{
			"bucketUrl": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "BACKEND_BASEURL", want: "backend.baseUrl"},
		{envKey: "BACKEND_APIPREFIX", want: "backend.apiPrefix"},
		{envKey: "PUSH_CONNECTTIMEOUT", want: "push.connectTimeout"},
		{envKey: "SESSION_BUCKETURL", want: "session.bucketUrl"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestLoadWithEnv_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
backend:
  baseUrl: http://localhost:8080
push:
  endpoint: ws://localhost:8080/ws-cookapp/websocket
  connectTimeout: 3s
sync:
  refreshInterval: 30s
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "local.yaml"), yaml, 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(wd, dir)
	require.NoError(t, err)

	t.Setenv("BACKEND_BASEURL", "http://backend:9000")

	cfg, err := LoadWithEnv[Config]("local", rel)
	require.NoError(t, err)
	cfg.ApplyDefaults()

	assert.Equal(t, "http://backend:9000", cfg.Backend.BaseURL)
	assert.Equal(t, "/api", cfg.Backend.APIPrefix)
	assert.Equal(t, 3*time.Second, cfg.Push.ConnectTimeout)
	assert.Equal(t, "/topic", cfg.Push.TopicPrefix)
	assert.Equal(t, 30*time.Second, cfg.Sync.RefreshInterval)
	assert.Equal(t, defaultFeedLimit, cfg.Feed.Limit)
	assert.Equal(t, defaultSessionBucket, cfg.Session.BucketURL)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	_, err := LoadWithEnv[Config]("does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
