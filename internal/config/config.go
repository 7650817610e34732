package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Listing   ListingConfig   `yaml:"listing"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	QueryTimeout    time.Duration `yaml:"query_timeout"      env:"DATABASE_QUERY_TIMEOUT"      env-default:"5s"`
}

// AuthConfig holds bearer token validation settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"classifieds"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// ListingConfig holds listing lifecycle and search settings.
type ListingConfig struct {
	TTL             time.Duration `yaml:"ttl"               env:"LISTING_TTL"               env-default:"720h"`
	MaxImages       int           `yaml:"max_images"        env:"LISTING_MAX_IMAGES"        env-default:"8"`
	DefaultPageSize int           `yaml:"default_page_size" env:"LISTING_DEFAULT_PAGE_SIZE" env-default:"20"`
	SearchPageSize  int           `yaml:"search_page_size"  env:"LISTING_SEARCH_PAGE_SIZE"  env-default:"50"`
	MaxPageSize     int           `yaml:"max_page_size"     env:"LISTING_MAX_PAGE_SIZE"     env-default:"100"`
	// MaxUploadBytes caps the whole multipart body of a create or update.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" env:"LISTING_MAX_UPLOAD_BYTES" env-default:"41943040"`
}

// StorageConfig holds the S3-compatible image store settings.
// Empty credentials fall back to the default AWS credential chain.
type StorageConfig struct {
	Bucket        string `yaml:"bucket"          env:"STORAGE_BUCKET"          env-default:"classifieds-images"`
	Region        string `yaml:"region"          env:"STORAGE_REGION"          env-default:"us-east-1"`
	Endpoint      string `yaml:"endpoint"        env:"STORAGE_ENDPOINT"`
	AccessKey     string `yaml:"access_key"      env:"STORAGE_ACCESS_KEY"`
	SecretKey     string `yaml:"secret_key"      env:"STORAGE_SECRET_KEY"`
	PublicBaseURL string `yaml:"public_base_url" env:"STORAGE_PUBLIC_BASE_URL"`
	UsePathStyle  bool   `yaml:"use_path_style"  env:"STORAGE_USE_PATH_STYLE"  env-default:"false"`
	CreateBucket  bool   `yaml:"create_bucket"   env:"STORAGE_CREATE_BUCKET"   env-default:"false"`
}

// ObjectURL returns the public URL of key.
func (c StorageConfig) ObjectURL(key string) string {
	if c.PublicBaseURL != "" {
		return strings.TrimRight(c.PublicBaseURL, "/") + "/" + key
	}
	if c.Endpoint != "" {
		return strings.TrimRight(c.Endpoint, "/") + "/" + c.Bucket + "/" + key
	}
	return "https://" + c.Bucket + ".s3." + c.Region + ".amazonaws.com/" + key
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"RATE_LIMIT_ENABLED"          env-default:"true"`
	ReadPerMinute   int           `yaml:"read_per_minute"  env:"RATE_LIMIT_READ_PER_MINUTE"  env-default:"300"`
	WritePerMinute  int           `yaml:"write_per_minute" env:"RATE_LIMIT_WRITE_PER_MINUTE" env-default:"30"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}
