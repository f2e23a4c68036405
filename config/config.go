package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                 string        `mapstructure:"PORT"`
	Env                  string        `mapstructure:"ENV"`
	LogLevel             string        `mapstructure:"LOG_LEVEL"`
	MongoURI             string        `mapstructure:"MONGO_URI"`
	MongoDatabase        string        `mapstructure:"MONGO_DATABASE"`
	RedisAddr            string        `mapstructure:"REDIS_ADDR"`
	RedisPassword        string        `mapstructure:"REDIS_PASSWORD"`
	CacheTTL             time.Duration `mapstructure:"CACHE_TTL"`
	JWTSecret            string        `mapstructure:"JWT_SECRET"`
	JWTTTL               time.Duration `mapstructure:"JWT_TTL"`
	ConferenceBaseURL    string        `mapstructure:"CONFERENCE_BASE_URL"`
	ConferenceAPIKey     string        `mapstructure:"CONFERENCE_API_KEY"`
	ConferenceTimeout    time.Duration `mapstructure:"CONFERENCE_TIMEOUT"`
	ConferenceRetrySpec  string        `mapstructure:"CONFERENCE_RETRY_SPEC"`
	TimeZone             string        `mapstructure:"TIMEZONE"`
	EditRequiresUpcoming bool          `mapstructure:"EDIT_REQUIRES_UPCOMING"`
	CORSOrigins          []string      `mapstructure:"CORS_ORIGINS"`
}

var keys = []string{
	"PORT", "ENV", "LOG_LEVEL", "MONGO_URI", "MONGO_DATABASE", "REDIS_ADDR",
	"REDIS_PASSWORD", "CACHE_TTL", "JWT_SECRET", "JWT_TTL", "CONFERENCE_BASE_URL",
	"CONFERENCE_API_KEY", "CONFERENCE_TIMEOUT", "CONFERENCE_RETRY_SPEC", "TIMEZONE",
	"EDIT_REQUIRES_UPCOMING", "CORS_ORIGINS",
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "roboscan")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("CONFERENCE_TIMEOUT", "10s")
	v.SetDefault("CONFERENCE_RETRY_SPEC", "*/15 * * * *")
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("EDIT_REQUIRES_UPCOMING", false)
	v.SetDefault("CORS_ORIGINS", "*")

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if len(cfg.CORSOrigins) == 1 && strings.Contains(cfg.CORSOrigins[0], ",") {
		cfg.CORSOrigins = strings.Split(cfg.CORSOrigins[0], ",")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if !c.IsDev() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required outside development")
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("TIMEZONE %q is not a valid location: %w", c.TimeZone, err)
	}
	if c.MongoDatabase == "" {
		return fmt.Errorf("MONGO_DATABASE is required")
	}
	return nil
}

// Location is the zone appointment dates and times are interpreted in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
