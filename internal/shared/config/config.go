package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"

	feedDomain "feeddeck/internal/modules/feed/domain"
	weatherDomain "feeddeck/internal/modules/weather/domain"
)

type Config struct {
	HTTPPort      string               `koanf:"http_port"`
	StoragePath   string               `koanf:"storage_path"`
	ProxyURL      string               `koanf:"proxy_url"`
	Feeds         map[string]string    `koanf:"feeds"`
	WeatherURL    string               `koanf:"weather_url"`
	Cities        []weatherDomain.City `koanf:"cities"`
	TranslatorURL string               `koanf:"translator_url"`
	AppEnv        AppEnv               `koanf:"app_env"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try to load config file from various formats
	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Load environment variables (they override config file values)
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	// Set defaults
	if !k.Exists("http_port") {
		k.Set("http_port", "8080")
	}
	if !k.Exists("storage_path") {
		k.Set("storage_path", "./data")
	}
	if !k.Exists("proxy_url") {
		k.Set("proxy_url", "https://api.allorigins.win/raw")
	}
	if !k.Exists("feeds") {
		k.Set("feeds", map[string]string{
			"hatena":     "https://b.hatena.ne.jp/hotentry/it.rss",
			"hackernews": "https://hnrss.org/frontpage",
			"nikkei":     "https://assets.wor.jp/rss/rdf/nikkei/news.rdf",
		})
	}
	if !k.Exists("weather_url") {
		k.Set("weather_url", "https://api.open-meteo.com")
	}
	if !k.Exists("app_env") {
		k.Set("app_env", "production")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	if len(cfg.Cities) == 0 {
		cfg.Cities = DefaultCities()
	}

	// Parse AppEnv from string if needed
	if appEnvStr := k.String("app_env"); appEnvStr != "" {
		if appEnv, err := ParseAppEnv(appEnvStr); err == nil {
			cfg.AppEnv = appEnv
		} else {
			cfg.AppEnv = AppEnvProduction
		}
	} else {
		cfg.AppEnv = AppEnvProduction
	}

	return &cfg, nil
}

// FeedURLs resolves the configured feed map against the closed Source
// enumeration; entries with unknown source names are ignored.
func (c *Config) FeedURLs() map[feedDomain.Source]string {
	urls := make(map[feedDomain.Source]string, len(c.Feeds))
	for name, url := range c.Feeds {
		source, err := feedDomain.ParseSource(name)
		if err != nil || url == "" {
			continue
		}
		urls[source] = url
	}
	return urls
}

// DefaultCities is the fixed forecast location list.
func DefaultCities() []weatherDomain.City {
	return []weatherDomain.City{
		{Name: "Tokyo", Latitude: 35.6762, Longitude: 139.6503},
		{Name: "Osaka", Latitude: 34.6937, Longitude: 135.5023},
		{Name: "Fukuoka", Latitude: 33.5904, Longitude: 130.4017},
	}
}
