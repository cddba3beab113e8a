package config

import (
	"digistore_server/structs"
	"sync"
	"time"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = Load()
	})
	return configInstance
}

// Load reads the configuration from the environment without caching it.
func Load() *structs.Config {
	env := getEnvAsString("APP_ENV", "development")

	return &structs.Config{
		Server: &structs.ServerConfig{
			AppName:         getEnvAsString("APP_NAME", "Digistore"),
			Environment:     env,
			Port:            normalizePort(getEnvAsString("PORT", ":8080")),
			ReadTimeout:     getEnvAsTimeDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsTimeDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvAsTimeDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsTimeDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			MaxHeaderBytes:  getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			MaxBodyBytes:    int64(getEnvAsInt("MAX_BODY_BYTES", 1<<20)),
			LogLevel:        getEnvAsString("LOG_LEVEL", defaultLogLevel(env)),
			LogShowCaller:   getEnvAsBool("LOG_SHOW_CALLER", env != "production"),
		},
		Cors: &structs.CorsConfig{
			AllowedOrigins:   getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
			AllowedMethods:   getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
			ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length", "X-Request-Id"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 600),
		},
		Database: &structs.DatabaseConfig{
			URL:          getEnvAsString("DB_URL", ""),
			Driver:       getEnvAsString("DB_DRIVER", "pgdriver"),
			Host:         getEnvAsString("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnvAsString("DB_USER", "postgres"),
			Password:     getEnvAsString("DB_PASSWORD", "password"),
			Name:         getEnvAsString("DB_NAME", "digistore_db"),
			SSLMode:      getEnvAsString("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 2),
			MaxLifetime:  getEnvAsTimeDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			MaxIdleTime:  getEnvAsTimeDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
			QueryTimeout: getEnvAsTimeDuration("DB_QUERY_TIMEOUT", 5*time.Second),
			AutoMigrate:  getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Auth: &structs.AuthConfig{
			JWTSecret:  getEnvAsString("JWT_SECRET", "default_jwt_secret"),
			TokenTTL:   getEnvAsTimeDuration("JWT_TTL", 7*24*time.Hour),
			Issuer:     getEnvAsString("JWT_ISSUER", "digistore"),
			BcryptCost: getEnvAsInt("BCRYPT_COST", 10),
			CookieName: getEnvAsString("AUTH_COOKIE_NAME", "admin_token"),
		},
		Cache: &structs.CacheConfig{
			Enabled:  getEnvAsBool("CACHE_ENABLED", true),
			RedisURL: getEnvAsString("REDIS_URL", "redis://localhost:6379/0"),
			TTL:      getEnvAsTimeDuration("CACHE_TTL", 10*time.Minute),
			Prefix:   getEnvAsString("CACHE_PREFIX", "digistore"),
		},
		RateLimit: &structs.RateLimitConfig{
			Enabled:       getEnvAsBool("RATE_LIMIT_ENABLED", true),
			GeneralLimit:  getEnvAsInt("RATE_LIMIT_REQUESTS", 120),
			GeneralWindow: getEnvAsTimeDuration("RATE_LIMIT_WINDOW", time.Minute),
			LoginLimit:    getEnvAsInt("LOGIN_RATE_LIMIT_REQUESTS", 5),
			LoginWindow:   getEnvAsTimeDuration("LOGIN_RATE_LIMIT_WINDOW", 15*time.Minute),
			OrderLimit:    getEnvAsInt("ORDER_RATE_LIMIT_REQUESTS", 10),
			OrderWindow:   getEnvAsTimeDuration("ORDER_RATE_LIMIT_WINDOW", time.Minute),
		},
		Email: &structs.EmailConfig{
			APIKey:        getEnvAsString("RESEND_API_KEY", ""),
			From:          getEnvAsString("EMAIL_FROM", "Digistore <noreply@digistore.local>"),
			MerchantEmail: getEnvAsString("MERCHANT_EMAIL", ""),
		},
		Upload: &structs.UploadConfig{
			Dir:        getEnvAsString("UPLOAD_DIR", "uploads"),
			PublicPath: getEnvAsString("UPLOAD_PUBLIC_PATH", "/uploads"),
			MaxBytes:   int64(getEnvAsInt("UPLOAD_MAX_BYTES", 5<<20)), // 5 MB
			MaxWidth:   uint(getEnvAsInt("UPLOAD_MAX_WIDTH", 1200)),
		},
		Orders: &structs.OrderConfig{
			OrderCodePrefix:   getEnvAsString("ORDER_CODE_PREFIX", "ORD"),
			BookingCodePrefix: getEnvAsString("BOOKING_CODE_PREFIX", "TFQ"),
			UniqueCodeMax:     clamp(getEnvAsInt("UNIQUE_CODE_MAX", 999), 1, 999),
		},
	}
}

func defaultLogLevel(env string) string {
	if env == "production" {
		return "info"
	}
	return "debug"
}

func GetLogLevel() string {
	return GetConfig().Server.LogLevel
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}

// SeedAdmin returns the credentials cmd/seed creates the super admin with.
func SeedAdmin() (username, password string) {
	return getEnvAsString("SEED_ADMIN_USERNAME", "admin"), getEnvAsString("SEED_ADMIN_PASSWORD", "password123")
}
