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
	AppName             string
	AppEnv              string
	AppPort             string
	DatabaseURL         string
	RedisURL            string
	JWTSecret           string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
	SMTPHost            string
	SMTPPort            int
	SMTPSecure          bool
	SMTPUsername        string
	SMTPPassword        string
	SMTPFrom            string
	ContactEmail        string
	MessengerGroupLink  string
	InstagramGroupLink  string
	ApplyRateLimit      int64
	ApplyRateWindow     time.Duration
	UploadMaxSizeMB     int
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
	v.SetEnvPrefix("CLUB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Hosting providers expose the mail transport under un-prefixed names.
	// Accept those too, with CLUB_-prefixed values taking precedence.
	_ = v.BindEnv("smtp.host", "CLUB_SMTP_HOST", "SMTP_HOST")
	_ = v.BindEnv("smtp.port", "CLUB_SMTP_PORT", "SMTP_PORT")
	_ = v.BindEnv("smtp.secure", "CLUB_SMTP_SECURE", "SMTP_SECURE")
	_ = v.BindEnv("smtp.username", "CLUB_SMTP_USERNAME", "SMTP_USER")
	_ = v.BindEnv("smtp.password", "CLUB_SMTP_PASSWORD", "SMTP_PASS")
	_ = v.BindEnv("smtp.from", "CLUB_SMTP_FROM", "SMTP_FROM")
	_ = v.BindEnv("contact.email", "CLUB_CONTACT_EMAIL", "CONTACT_EMAIL")

	v.SetDefault("app.name", "Club API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("cloudinary.folder", "club/gallery")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.secure", false)
	v.SetDefault("apply.rate_limit", 5)
	v.SetDefault("apply.rate_window", "1h")
	v.SetDefault("upload.max_size_mb", 10)

	windowString := v.GetString("apply.rate_window")
	if windowString == "" {
		windowString = "1h"
	}

	window, err := time.ParseDuration(windowString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid apply rate window: %w", err)
	}

	cfg := Config{
		AppName:             v.GetString("app.name"),
		AppEnv:              v.GetString("app.env"),
		AppPort:             v.GetString("app.port"),
		DatabaseURL:         v.GetString("database.url"),
		RedisURL:            v.GetString("redis.url"),
		JWTSecret:           v.GetString("jwt.secret"),
		CloudinaryCloudName: v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:    v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret: v.GetString("cloudinary.api_secret"),
		CloudinaryFolder:    v.GetString("cloudinary.folder"),
		SMTPHost:            v.GetString("smtp.host"),
		SMTPPort:            v.GetInt("smtp.port"),
		SMTPSecure:          v.GetBool("smtp.secure"),
		SMTPUsername:        v.GetString("smtp.username"),
		SMTPPassword:        v.GetString("smtp.password"),
		SMTPFrom:            v.GetString("smtp.from"),
		ContactEmail:        v.GetString("contact.email"),
		MessengerGroupLink:  v.GetString("messenger.group_link"),
		InstagramGroupLink:  v.GetString("instagram.group_link"),
		ApplyRateLimit:      v.GetInt64("apply.rate_limit"),
		ApplyRateWindow:     window,
		UploadMaxSizeMB:     v.GetInt("upload.max_size_mb"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.ApplyRateLimit <= 0 {
		cfg.ApplyRateLimit = 5
	}

	if cfg.UploadMaxSizeMB <= 0 {
		cfg.UploadMaxSizeMB = 10
	}

	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUsername
	}

	return cfg, nil
}
