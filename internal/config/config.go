package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	DatabaseURL string   `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	// AuthSecret signs/verifies session bearer tokens (HS256). Issuance is
	// handled by the account service; this server only verifies.
	AuthSecret string `mapstructure:"AUTH_SECRET"`

	RateLimitRPS      float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst    int     `mapstructure:"RATE_LIMIT_BURST"`
	RequestTimeoutSec int     `mapstructure:"REQUEST_TIMEOUT_SECONDS"`

	// Triage ranking.
	GeocoderBaseURL    string  `mapstructure:"GEOCODER_BASE_URL"`
	GeocoderTimeoutSec int     `mapstructure:"GEOCODER_TIMEOUT_SECONDS"`
	DefaultOriginLat   float64 `mapstructure:"DEFAULT_ORIGIN_LAT"`
	DefaultOriginLon   float64 `mapstructure:"DEFAULT_ORIGIN_LON"`
	NearestLimit       int     `mapstructure:"NEAREST_LIMIT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 30)
	v.SetDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("GEOCODER_TIMEOUT_SECONDS", 10)
	// Kuala Lumpur city centre; used when a caller has no usable location.
	v.SetDefault("DEFAULT_ORIGIN_LAT", 3.139)
	v.SetDefault("DEFAULT_ORIGIN_LON", 101.6869)
	v.SetDefault("NEAREST_LIMIT", 3)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("AUTH_SECRET")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("REQUEST_TIMEOUT_SECONDS")
	v.BindEnv("GEOCODER_BASE_URL")
	v.BindEnv("GEOCODER_TIMEOUT_SECONDS")
	v.BindEnv("DEFAULT_ORIGIN_LAT")
	v.BindEnv("DEFAULT_ORIGIN_LON")
	v.BindEnv("NEAREST_LIMIT")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() {
		log.Println("WARNING: server is running in DEVELOPMENT mode (ENV=development).")
		if cfg.AuthSecret == "" {
			log.Println("WARNING: AUTH_SECRET is empty; session tokens will not verify.")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Outside development
// AUTH_SECRET must be set so session tokens are actually verified, and the
// default triage origin must be a real coordinate.
func (c *Config) Validate() error {
	if !c.IsDev() && c.AuthSecret == "" {
		return fmt.Errorf("AUTH_SECRET is required when ENV=%q", c.Env)
	}
	if c.DefaultOriginLat < -90 || c.DefaultOriginLat > 90 {
		return fmt.Errorf("DEFAULT_ORIGIN_LAT must be within [-90, 90], got %v", c.DefaultOriginLat)
	}
	if c.DefaultOriginLon < -180 || c.DefaultOriginLon > 180 {
		return fmt.Errorf("DEFAULT_ORIGIN_LON must be within [-180, 180], got %v", c.DefaultOriginLon)
	}
	if c.NearestLimit <= 0 {
		return fmt.Errorf("NEAREST_LIMIT must be positive, got %d", c.NearestLimit)
	}
	if c.GeocoderBaseURL == "" {
		return fmt.Errorf("GEOCODER_BASE_URL is required")
	}
	return nil
}
