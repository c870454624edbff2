// Package config loads runtime settings from the environment and the
// country→feed mapping from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs. All values come from
// GLOBENEWS_* environment variables with sensible defaults.
type Config struct {
	ListenAddr    string `env:"LISTEN_ADDR" default:":8080"`
	CountriesPath string `env:"COUNTRIES_PATH" default:"configs/countries.yaml"`

	TranslateURL     string        `env:"TRANSLATE_URL" default:"https://libretranslate.com/translate"`
	TargetLang       string        `env:"TARGET_LANG" default:"en"`
	TranslateTimeout time.Duration `env:"TRANSLATE_TIMEOUT" default:"20s"`

	FetchTimeout    time.Duration `env:"FETCH_TIMEOUT" default:"15s"`
	FetchAttempts   int           `env:"FETCH_ATTEMPTS" default:"2"`
	FetchRetryDelay time.Duration `env:"FETCH_RETRY_DELAY" default:"2s"`

	CacheTTL time.Duration `env:"CACHE_TTL" default:"5m"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "GLOBENEWS",
		SkipFiles: true,
		SkipFlags: true,
	})
	if err := loader.Load(); err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// Country maps a display name to the feed URL it is served from. The mapping
// is consumed as given; the pipeline never validates or caches it itself.
type Country struct {
	Name string `yaml:"name"`
	Feed string `yaml:"feed"`
}

type countriesFile struct {
	Countries []Country `yaml:"countries"`
}

// LoadCountries reads the country→feed mapping from a YAML file.
func LoadCountries(path string) ([]Country, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var file countriesFile
	if err := yaml.NewDecoder(f).Decode(&file); err != nil {
		return nil, fmt.Errorf("parse countries file %s: %w", path, err)
	}
	return file.Countries, nil
}

// FeedURL resolves a country name to its feed URL.
func FeedURL(countries []Country, name string) (string, bool) {
	for _, c := range countries {
		if c.Name == name {
			return c.Feed, true
		}
	}
	return "", false
}

// Names lists the configured country names in file order.
func Names(countries []Country) []string {
	return lo.Map(countries, func(c Country, _ int) string {
		return c.Name
	})
}
