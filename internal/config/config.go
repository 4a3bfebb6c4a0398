package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads the optional YAML file at configPath, applies environment
// overrides and validates the result. An empty path runs on defaults and
// environment alone.
func LoadConfig(configPath string) (*Config, error) {
	var config Config

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvironmentOverrides(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

var (
	EnvTwitterClientID     = "TWITTER_CLIENT_ID"
	EnvTwitterClientSecret = "TWITTER_CLIENT_SECRET"
	EnvTwitterCallbackURL  = "TWITTER_CALLBACK_URL"
	EnvEnvironment         = "IMAGE_RESIZER_ENV"
	EnvServerPort          = "IMAGE_RESIZER_PORT"
	EnvLogLevel            = "IMAGE_RESIZER_LOG_LEVEL"
	EnvRedisAddress        = "IMAGE_RESIZER_REDIS_ADDRESS"
	EnvRedisPassword       = "IMAGE_RESIZER_REDIS_PASSWORD"
)

func applyEnvironmentOverrides(config *Config) {
	if clientID := os.Getenv(EnvTwitterClientID); clientID != "" {
		config.Twitter.ClientID = clientID
	}

	if clientSecret := os.Getenv(EnvTwitterClientSecret); clientSecret != "" {
		config.Twitter.ClientSecret = clientSecret
	}

	if callbackURL := os.Getenv(EnvTwitterCallbackURL); callbackURL != "" {
		config.Twitter.CallbackURL = callbackURL
	}

	if environment := os.Getenv(EnvEnvironment); environment != "" {
		config.Server.Environment = environment
	}

	if portStr := os.Getenv(EnvServerPort); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			config.Server.Port = port
		}
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		config.Log.Level = level
	}

	if address := os.Getenv(EnvRedisAddress); address != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		config.Redis.Address = address
	}

	if redisPassword := os.Getenv(EnvRedisPassword); redisPassword != "" {
		if config.Redis == nil {
			config.Redis = &RedisConfig{}
		}
		config.Redis.Password = redisPassword
	}
}

func validateConfig(config *Config) error {
	err := config.validateServerConfig()
	if err != nil {
		return err
	}

	err = config.validateLogConfig()
	if err != nil {
		return err
	}

	err = config.validateCORSConfig()
	if err != nil {
		return err
	}

	err = config.validateCookieConfig()
	if err != nil {
		return err
	}

	err = config.validateTwitterConfig()
	if err != nil {
		return err
	}

	err = config.validateResizeConfig()
	if err != nil {
		return err
	}

	err = config.validateCacheConfig()
	if err != nil {
		return err
	}

	if config.Cache.Type == "redis" {
		err = config.validateRedisConfig()
		if err != nil {
			return err
		}
	}

	return nil
}

func (c *Config) validateServerConfig() error {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerConfig.Port
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.Environment == "" {
		c.Server.Environment = DefaultServerConfig.Environment
	}

	if c.Server.ExternalURL != "" {
		if err := validateURL(c.Server.ExternalURL, "server.external_url"); err != nil {
			return err
		}
		c.Server.ExternalURL = strings.TrimRight(c.Server.ExternalURL, "/")
	}

	if c.Server.RequestTimeout < 0 {
		return fmt.Errorf("server.request_timeout cannot be negative")
	}

	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = DefaultServerConfig.MaxBodyBytes
	} else if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("server.max_body_bytes cannot be negative")
	}

	if c.Server.RateLimitPerMinute == 0 {
		c.Server.RateLimitPerMinute = DefaultServerConfig.RateLimitPerMinute
	}

	if c.Server.Debug != nil && c.Server.Debug.Enabled {
		if c.Server.Debug.Host == "" {
			c.Server.Debug.Host = DefaultDebugConfig.Host
		}
		if c.Server.Debug.Port <= 0 || c.Server.Debug.Port >= 65535 {
			c.Server.Debug.Port = DefaultDebugConfig.Port
		}
	}

	return nil
}

func (c *Config) validateLogConfig() error {
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogConfig.Format
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s, options are text or json", c.Log.Format)
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogConfig.Level
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s, options are debug, info, warn, error", c.Log.Level)
	}

	return nil
}

func (c *Config) validateCORSConfig() error {
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = DefaultCORSConfig.AllowedOrigins
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = DefaultCORSConfig.AllowedMethods
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = DefaultCORSConfig.AllowedHeaders
	}
	if c.CORS.MaxAgeSeconds == 0 {
		c.CORS.MaxAgeSeconds = DefaultCORSConfig.MaxAgeSeconds
	}

	return nil
}

func (c *Config) validateCookieConfig() error {
	if c.Cookies.Secure == nil {
		secure := c.Server.IsProduction()
		c.Cookies.Secure = &secure
	}

	if c.Cookies.TokenMaxAge == 0 {
		c.Cookies.TokenMaxAge = DefaultCookieConfig.TokenMaxAge
	} else if c.Cookies.TokenMaxAge < time.Minute {
		return fmt.Errorf("cookies.token_max_age cannot be less than 1 minute")
	}

	if c.Cookies.StateMaxAge == 0 {
		c.Cookies.StateMaxAge = DefaultCookieConfig.StateMaxAge
	} else if c.Cookies.StateMaxAge < time.Minute {
		return fmt.Errorf("cookies.state_max_age cannot be less than 1 minute")
	} else if c.Cookies.StateMaxAge > time.Hour {
		return fmt.Errorf("cookies.state_max_age cannot be more than 1 hour")
	}

	return nil
}

// validateTwitterConfig fills in endpoint defaults. Client credentials are
// deliberately not required here; a missing value surfaces as a failed token
// exchange instead of a startup error.
func (c *Config) validateTwitterConfig() error {
	if c.Twitter.CallbackURL == "" {
		c.Twitter.CallbackURL = DefaultTwitterConfig.CallbackURL
	}

	if len(c.Twitter.Scopes) == 0 {
		c.Twitter.Scopes = DefaultTwitterConfig.Scopes
	}

	if c.Twitter.AuthorizeURL == "" {
		c.Twitter.AuthorizeURL = DefaultTwitterConfig.AuthorizeURL
	}
	if err := validateURL(c.Twitter.AuthorizeURL, "twitter.authorize_url"); err != nil {
		return err
	}

	if c.Twitter.TokenURL == "" {
		c.Twitter.TokenURL = DefaultTwitterConfig.TokenURL
	}
	if err := validateURL(c.Twitter.TokenURL, "twitter.token_url"); err != nil {
		return err
	}

	if c.Twitter.APIBaseURL == "" {
		c.Twitter.APIBaseURL = DefaultTwitterConfig.APIBaseURL
	}
	if err := validateURL(c.Twitter.APIBaseURL, "twitter.api_base_url"); err != nil {
		return err
	}
	c.Twitter.APIBaseURL = strings.TrimRight(c.Twitter.APIBaseURL, "/")

	if c.Twitter.UploadBaseURL == "" {
		c.Twitter.UploadBaseURL = DefaultTwitterConfig.UploadBaseURL
	}
	if err := validateURL(c.Twitter.UploadBaseURL, "twitter.upload_base_url"); err != nil {
		return err
	}
	c.Twitter.UploadBaseURL = strings.TrimRight(c.Twitter.UploadBaseURL, "/")

	if strings.TrimSpace(c.Twitter.Caption) == "" {
		c.Twitter.Caption = DefaultTwitterConfig.Caption
	}

	if c.Twitter.HTTPTimeout < 0 {
		return fmt.Errorf("twitter.http_timeout cannot be negative")
	}

	return nil
}

func (c *Config) validateResizeConfig() error {
	if c.Resize.MaxDimension == 0 {
		c.Resize.MaxDimension = DefaultResizeConfig.MaxDimension
	} else if c.Resize.MaxDimension < 0 {
		return fmt.Errorf("resize.max_dimension must be positive, got %d", c.Resize.MaxDimension)
	}

	return nil
}

func (c *Config) validateCacheConfig() error {
	if c.Cache.Type == "" {
		c.Cache.Type = "memory"
	}

	switch c.Cache.Type {
	case "memory":
		break
	case "redis":
		if c.Redis == nil {
			return fmt.Errorf("redis configuration must be enabled to use redis for the oauth state cache")
		}
	default:
		return fmt.Errorf("invalid cache type: %s, must be 'memory' or 'redis'", c.Cache.Type)
	}

	return nil
}

func (c *Config) validateRedisConfig() error {
	if c.Redis == nil {
		return fmt.Errorf("redis config is nil")
	}

	if c.Redis.Sentinel == nil {
		if c.Redis.Address == "" {
			return fmt.Errorf("redis address is required")
		}

		if _, _, err := net.SplitHostPort(c.Redis.Address); err != nil {
			return fmt.Errorf("invalid redis address format (expected host:port): %w", err)
		}
	}

	if c.Redis.StateIndex < 0 {
		return fmt.Errorf("redis state_index must be non-negative, got %d", c.Redis.StateIndex)
	}

	const maxRedisDB = 15
	if c.Redis.StateIndex > maxRedisDB {
		return fmt.Errorf("redis state_index %d exceeds typical maximum of %d", c.Redis.StateIndex, maxRedisDB)
	}

	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = DefaultRedisConfig.KeyPrefix
	}

	if c.Redis.DialTimeout == 0 {
		c.Redis.DialTimeout = DefaultRedisConfig.DialTimeout
	}

	if c.Redis.Sentinel != nil {
		if c.Redis.Sentinel.MasterName == "" {
			return fmt.Errorf("sentinel master_name is required")
		}
		if len(c.Redis.Sentinel.SentinelAddresses) == 0 {
			return fmt.Errorf("at least one sentinel address is required")
		}
	}

	return nil
}
