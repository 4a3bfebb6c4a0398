package config

import (
	"time"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	CORS    CORSConfig    `yaml:"cors"`
	Cookies CookieConfig  `yaml:"cookies"`
	Twitter TwitterConfig `yaml:"twitter"`
	Resize  ResizeConfig  `yaml:"resize"`
	Cache   CacheConfig   `yaml:"cache"`
	Redis   *RedisConfig  `yaml:"redis"`
}

type ServerConfig struct {
	Port               int                `yaml:"port"`
	Environment        string             `yaml:"environment"`
	ExternalURL        string             `yaml:"external_url"`
	RequestTimeout     time.Duration      `yaml:"request_timeout"` // 0 leaves requests unbounded
	MaxBodyBytes       int64              `yaml:"max_body_bytes"`
	RateLimitPerMinute int                `yaml:"rate_limit_per_minute"`
	Debug              *ServerDebugConfig `yaml:"debug"`
}

var DefaultServerConfig = ServerConfig{
	Port:               3000,
	Environment:        "development",
	MaxBodyBytes:       32 << 20,
	RateLimitPerMinute: 120,
}

// IsProduction reports whether cookies and other environment dependent defaults
// should use their production settings.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

type ServerDebugConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

var DefaultDebugConfig = ServerDebugConfig{
	Enabled: false,
	Host:    "localhost",
	Port:    5123,
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var DefaultLogConfig = LogConfig{
	Level:  "info",
	Format: "text",
}

type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	ExposedHeaders   []string `yaml:"exposed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAgeSeconds    int      `yaml:"max_age_seconds"`
}

var DefaultCORSConfig = CORSConfig{
	AllowedOrigins: []string{"http://localhost:3000"},
	AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	AllowedHeaders: []string{"*"},
	MaxAgeSeconds:  300,
}

// CookieConfig controls the attributes of every cookie the service sets.
// Secure is a pointer so an explicit false in YAML survives defaulting.
type CookieConfig struct {
	Secure      *bool         `yaml:"secure"`
	TokenMaxAge time.Duration `yaml:"token_max_age"`
	StateMaxAge time.Duration `yaml:"state_max_age"`
}

var DefaultCookieConfig = CookieConfig{
	TokenMaxAge: 7 * 24 * time.Hour,
	StateMaxAge: 10 * time.Minute,
}

// IsSecure returns the effective Secure attribute.
func (c CookieConfig) IsSecure() bool {
	return c.Secure != nil && *c.Secure
}

type TwitterConfig struct {
	ClientID      string        `yaml:"client_id"`
	ClientSecret  string        `yaml:"client_secret"`
	CallbackURL   string        `yaml:"callback_url"`
	Scopes        []string      `yaml:"scopes"`
	AuthorizeURL  string        `yaml:"authorize_url"`
	TokenURL      string        `yaml:"token_url"`
	APIBaseURL    string        `yaml:"api_base_url"`
	UploadBaseURL string        `yaml:"upload_base_url"`
	Caption       string        `yaml:"caption"`
	HTTPTimeout   time.Duration `yaml:"http_timeout"`
}

var DefaultTwitterConfig = TwitterConfig{
	CallbackURL:   "http://localhost:3000/api/auth/twitter/callback",
	Scopes:        []string{"tweet.read", "tweet.write", "users.read", "offline.access"},
	AuthorizeURL:  "https://twitter.com/i/oauth2/authorize",
	TokenURL:      "https://api.twitter.com/2/oauth2/token",
	APIBaseURL:    "https://api.twitter.com",
	UploadBaseURL: "https://upload.twitter.com",
	Caption:       "Check out these resized images! 🖼️ #ImageResizer",
}

type ResizeConfig struct {
	MaxDimension int `yaml:"max_dimension"`
}

var DefaultResizeConfig = ResizeConfig{
	MaxDimension: 4096,
}

type CacheConfig struct {
	Type string `yaml:"type"` //  "memory" or "redis"
}

type RedisConfig struct {
	Address     string               `yaml:"address"`
	Username    string               `yaml:"username"`
	Password    string               `yaml:"password"`
	Sentinel    *RedisSentinelConfig `yaml:"sentinel"`
	StateIndex  int                  `yaml:"state_index"`
	KeyPrefix   string               `yaml:"key_prefix"`
	DialTimeout time.Duration        `yaml:"dial_timeout"`
}

var DefaultRedisConfig = RedisConfig{
	StateIndex:  0,
	KeyPrefix:   "image-resizer:oauth_state:",
	DialTimeout: 5 * time.Second,
}

type RedisSentinelConfig struct {
	MasterName        string   `yaml:"master_name"`
	SentinelAddresses []string `yaml:"addresses"`
	SentinelPassword  string   `yaml:"password"`
	SentinelUsername  string   `yaml:"username"`
}
