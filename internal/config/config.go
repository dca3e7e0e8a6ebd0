package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	FrontendURL            string
	DatabaseURL            string
	RedisURL               string
	NATSURL                string
	EventsChannel          string
	JWTSecret              string
	JWTTTL                 time.Duration
	ResetTokenTTL          time.Duration
	InviteTokenTTL         time.Duration
	RateLimitMax           int
	RateLimitWindow        time.Duration
	RolesCacheTTL          time.Duration
	UploadMaxSizeMB        int
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	SeedEnabled            bool
	SeedToken              string
	SeedAdminEmail         string
	SeedAdminPassword      string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("THERAPY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Therapy Admin API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("frontend.url", "http://localhost:3000")
	v.SetDefault("events.channel", "therapy")
	v.SetDefault("jwt.ttl", "24h")
	v.SetDefault("reset_token.ttl", "1h")
	v.SetDefault("invite_token.ttl", "168h")
	v.SetDefault("rate_limit.max", 2000)
	v.SetDefault("rate_limit.window", "15m")
	v.SetDefault("roles.cache_ttl", "5m")
	v.SetDefault("upload.max_size_mb", 10)
	v.SetDefault("cloudinary.folder", "therapy/documents")
	v.SetDefault("seed.enabled", false)

	durations := map[string]time.Duration{}
	for _, key := range []string{"jwt.ttl", "reset_token.ttl", "invite_token.ttl", "rate_limit.window", "roles.cache_ttl"} {
		parsed, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return Config{}, fmt.Errorf("invalid duration for %s: %w", key, err)
		}
		durations[key] = parsed
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		FrontendURL:            strings.TrimRight(v.GetString("frontend.url"), "/"),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		NATSURL:                v.GetString("nats.url"),
		EventsChannel:          v.GetString("events.channel"),
		JWTSecret:              v.GetString("jwt.secret"),
		JWTTTL:                 durations["jwt.ttl"],
		ResetTokenTTL:          durations["reset_token.ttl"],
		InviteTokenTTL:         durations["invite_token.ttl"],
		RateLimitMax:           v.GetInt("rate_limit.max"),
		RateLimitWindow:        durations["rate_limit.window"],
		RolesCacheTTL:          durations["roles.cache_ttl"],
		UploadMaxSizeMB:        v.GetInt("upload.max_size_mb"),
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		SeedEnabled:            v.GetBool("seed.enabled"),
		SeedToken:              v.GetString("seed.token"),
		SeedAdminEmail:         v.GetString("seed.admin_email"),
		SeedAdminPassword:      v.GetString("seed.admin_password"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = 2000
	}

	if cfg.UploadMaxSizeMB <= 0 {
		cfg.UploadMaxSizeMB = 10
	}

	return cfg, nil
}
