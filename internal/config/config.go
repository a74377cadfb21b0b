package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. AUCTION_APP_HTTP_ADDR.
const EnvPrefix = "AUCTION"

// Config holds the application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Email    EmailConfig    `mapstructure:"email"`
	Security SecurityConfig `mapstructure:"security"`
}

// AppConfig is the HTTP server and general behaviour
type AppConfig struct {
	Env             string        `mapstructure:"env"`
	LogLevel        string        `mapstructure:"log_level"`
	HTTPAddr        string        `mapstructure:"http_addr"`
	ListingCacheTTL time.Duration `mapstructure:"listing_cache_ttl"`
	PageSize        int           `mapstructure:"page_size"`
	SeedDemoData    bool          `mapstructure:"seed_demo_data"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	LiveBufferSize  int           `mapstructure:"live_buffer_size"`
}

// DatabaseConfig is the SQLite store and its connection pool
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	BusyTimeout     time.Duration `mapstructure:"busy_timeout"`
}

// RedisConfig enables the listing cache and cross-instance broadcast when Addr is set
type RedisConfig struct {
	Addr             string `mapstructure:"addr"`
	Password         string `mapstructure:"password"`
	DB               int    `mapstructure:"db"`
	BroadcastChannel string `mapstructure:"broadcast_channel"`
}

// EmailConfig is the SMTP relay used for OTP mail. An empty host means OTPs are only logged.
type EmailConfig struct {
	SMTPHost  string `mapstructure:"smtp_host"`
	SMTPPort  int    `mapstructure:"smtp_port"`
	SMTPUser  string `mapstructure:"smtp_user"`
	SMTPPass  string `mapstructure:"smtp_pass"`
	FromEmail string `mapstructure:"from_email"`
}

// SecurityConfig is the session token setup
type SecurityConfig struct {
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	CookieName   string        `mapstructure:"cookie_name"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
	OTPTTL       time.Duration `mapstructure:"otp_ttl"`
}

const defaultJWTSecret = "dev_secret_change_me"

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "local")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.http_addr", ":8080")
	v.SetDefault("app.listing_cache_ttl", 60*time.Second)
	v.SetDefault("app.page_size", 10)
	v.SetDefault("app.seed_demo_data", true)
	v.SetDefault("app.shutdown_timeout", 5*time.Second)
	v.SetDefault("app.live_buffer_size", 32)

	v.SetDefault("database.path", "./data/auction.db")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 280*time.Second)
	v.SetDefault("database.busy_timeout", 5*time.Second)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.broadcast_channel", "auctionhub:broadcast")

	v.SetDefault("email.smtp_host", "")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.smtp_user", "")
	v.SetDefault("email.smtp_pass", "")
	v.SetDefault("email.from_email", "")

	v.SetDefault("security.jwt_secret", defaultJWTSecret)
	v.SetDefault("security.token_ttl", 24*time.Hour)
	v.SetDefault("security.cookie_name", "auction_session")
	v.SetDefault("security.cookie_secure", false)
	v.SetDefault("security.otp_ttl", 10*time.Minute)
}

// Load reads configuration from defaults, an optional config file, a .env file
// and AUCTION_* environment variables, in increasing order of precedence.
func Load(configPath ...string) (*Config, error) {
	loadDotenv()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if len(configPath) > 0 && configPath[0] != "" {
		v.SetConfigFile(configPath[0])
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return errors.New("config: app.http_addr is required")
	}
	if c.Database.Path == "" {
		return errors.New("config: database.path is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		return errors.New("config: database.max_open_conns must be positive")
	}
	if c.App.PageSize <= 0 {
		return errors.New("config: app.page_size must be positive")
	}
	if c.Security.JWTSecret == "" {
		return errors.New("config: security.jwt_secret is required")
	}
	if c.App.Env == "prod" && c.Security.JWTSecret == defaultJWTSecret {
		return errors.New("config: security.jwt_secret must be changed in prod")
	}
	return nil
}

// loadDotenv loads the first .env found in the working directory or its parents.
func loadDotenv() {
	for _, p := range []string{".env", "../.env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}
