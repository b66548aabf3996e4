package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultYandexAPIURL     = "https://translate.yandex.net/api/v1.5/tr.json"
	defaultTranslateTimeout = 10 * time.Second
	defaultGreetDelay       = time.Second
	defaultCacheTTL         = 7 * 24 * time.Hour
	defaultMetricsAddr      = ":9090"
)

type Config struct {
	Token            string
	YandexAPIKey     string
	YandexAPIURL     string
	TranslateTimeout time.Duration
	GreetDelay       time.Duration
	DatabaseURL      string // vide = pas de cache
	CacheTTL         time.Duration
	MetricsAddr      string // vide = pas de serveur HTTP
	LogLevel         string
	LogFormat        string
	Locale           string
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	}
	return fromEnv(os.LookupEnv)
}

func fromEnv(lookupEnv func(string) (string, bool)) (*Config, error) {
	get := func(name, def string) string {
		if v, ok := lookupEnv(name); ok && strings.TrimSpace(v) != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Token:        get("TOKEN", ""),
		YandexAPIKey: get("YANDEX_API_KEY", ""),
		YandexAPIURL: get("YANDEX_API_URL", defaultYandexAPIURL),
		DatabaseURL:  get("DATABASE_URL", ""),
		MetricsAddr:  defaultMetricsAddr,
		LogLevel:     get("LOG_LEVEL", "info"),
		LogFormat:    get("LOG_FORMAT", "text"),
		Locale:       get("LOCALE", "en"),
	}
	// METRICS_ADDR="" désactive explicitement le serveur.
	if v, ok := lookupEnv("METRICS_ADDR"); ok {
		cfg.MetricsAddr = strings.TrimSpace(v)
	}

	durations := []struct {
		name string
		dst  *time.Duration
		def  time.Duration
	}{
		{"TRANSLATE_TIMEOUT", &cfg.TranslateTimeout, defaultTranslateTimeout},
		{"GREET_DELAY", &cfg.GreetDelay, defaultGreetDelay},
		{"CACHE_TTL", &cfg.CacheTTL, defaultCacheTTL},
	}
	for _, d := range durations {
		raw := get(d.name, "")
		if raw == "" {
			*d.dst = d.def
			continue
		}
		v, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("config: invalid %s (%q): %w", d.name, raw, err)
		}
		*d.dst = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate applique toutes les règles sur la configuration chargée.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: TOKEN is required and cannot be empty")
	}

	if strings.TrimSpace(c.YandexAPIKey) == "" {
		return fmt.Errorf("config: YANDEX_API_KEY is required and cannot be empty")
	}

	if err := checkURL("YANDEX_API_URL", c.YandexAPIURL); err != nil {
		return err
	}

	if c.TranslateTimeout <= 0 {
		return fmt.Errorf("config: TRANSLATE_TIMEOUT must be positive (got %s)", c.TranslateTimeout)
	}
	if c.GreetDelay < 0 {
		return fmt.Errorf("config: GREET_DELAY cannot be negative (got %s)", c.GreetDelay)
	}

	if c.CacheEnabled() {
		if err := checkURL("DATABASE_URL", c.DatabaseURL); err != nil {
			return err
		}
		if c.CacheTTL <= 0 {
			return fmt.Errorf("config: CACHE_TTL must be positive (got %s)", c.CacheTTL)
		}
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("config: LOG_FORMAT must be text or json (got %q)", c.LogFormat)
	}

	return nil
}

// CacheEnabled reports whether a translation cache database is configured.
func (c *Config) CacheEnabled() bool {
	return strings.TrimSpace(c.DatabaseURL) != ""
}

func checkURL(name, raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("config: invalid %s (%q): %w", name, raw, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid %s (%q): missing scheme or host", name, raw)
	}
	return nil
}
