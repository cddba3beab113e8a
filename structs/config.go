package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Auth      *AuthConfig
	Cache     *CacheConfig
	RateLimit *RateLimitConfig
	Email     *EmailConfig
	Upload    *UploadConfig
	Orders    *OrderConfig
}

type ServerConfig struct {
	AppName         string        // Digistore
	Environment     string        // development, production
	Port            string        // :8080
	ReadTimeout     time.Duration // e.g. 15s
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxHeaderBytes  int   // in bytes
	MaxBodyBytes    int64 // in bytes
	LogLevel        string
	LogShowCaller   bool
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int // in seconds
}

type DatabaseConfig struct {
	URL          string // takes precedence over the individual parts
	Driver       string // pgdriver, pgx
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	MaxIdleTime  time.Duration
	QueryTimeout time.Duration
	AutoMigrate  bool
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	Issuer     string
	BcryptCost int
	CookieName string
}

type CacheConfig struct {
	Enabled  bool
	RedisURL string
	TTL      time.Duration
	Prefix   string
}

type RateLimitConfig struct {
	Enabled       bool
	GeneralLimit  int
	GeneralWindow time.Duration
	LoginLimit    int
	LoginWindow   time.Duration
	OrderLimit    int
	OrderWindow   time.Duration
}

type EmailConfig struct {
	APIKey        string
	From          string
	MerchantEmail string
}

type UploadConfig struct {
	Dir        string
	PublicPath string // URL prefix the files are served from
	MaxBytes   int64
	MaxWidth   uint
}

type OrderConfig struct {
	OrderCodePrefix   string // ORD
	BookingCodePrefix string // TFQ
	UniqueCodeMax     int    // upper bound of the transfer surcharge, at most 999
}
