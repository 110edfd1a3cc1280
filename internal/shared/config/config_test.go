package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	feedDomain "feeddeck/internal/modules/feed/domain"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "./data", cfg.StoragePath)
	assert.Equal(t, "https://api.allorigins.win/raw", cfg.ProxyURL)
	assert.Equal(t, AppEnvProduction, cfg.AppEnv)
	assert.Len(t, cfg.Cities, 3)

	urls := cfg.FeedURLs()
	assert.Len(t, urls, 3)
	assert.Contains(t, urls, feedDomain.SourceHatena)
	assert.Contains(t, urls, feedDomain.SourceHackernews)
	assert.Contains(t, urls, feedDomain.SourceNikkei)
}

func TestLoadFromYAMLFile(t *testing.T) {
	t.Chdir(t.TempDir())

	yaml := "http_port: \"9999\"\nfeeds:\n  hatena: https://feeds.example/hatena\n  bogus: https://feeds.example/ignored\n"
	require.NoError(t, os.WriteFile("config.yaml", []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.HTTPPort)

	urls := cfg.FeedURLs()
	assert.Equal(t, "https://feeds.example/hatena", urls[feedDomain.SourceHatena])
	assert.Len(t, urls, 1, "unknown source names are ignored")
}
