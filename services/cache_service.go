package services

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"digistore_server/structs"
	"digistore_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService provides Redis caching with retry logic. With caching
// disabled every read misses and every write is dropped, except rate limit
// counters which fall back to process memory.
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client

	counters *memoryCounters
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	cs := &CacheService{
		logger:   logger,
		config:   cfg,
		counters: newMemoryCounters(),
	}

	if cfg.Cache == nil || !cfg.Cache.Enabled {
		logger.Info("Redis cache disabled")
		return cs
	}

	opts, err := redis.ParseURL(cfg.Cache.RedisURL)
	if err != nil {
		logger.Error("Invalid REDIS_URL, running without cache", gecho.Field("error", err))
		return cs
	}

	opts.DialTimeout = 3 * time.Second
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second
	opts.PoolTimeout = 4 * time.Second
	opts.MaxRetries = 0 // withRetry owns the retry policy

	cs.client = redis.NewClient(opts)
	return cs
}

// Enabled reports whether a Redis client is configured.
func (cs *CacheService) Enabled() bool {
	return cs.client != nil
}

// Close closes the Redis connection pool
func (cs *CacheService) Close() error {
	if cs.client != nil {
		return cs.client.Close()
	}
	return nil
}

func (cs *CacheService) key(parts ...string) string {
	prefix := ""
	if cs.config.Cache != nil {
		prefix = cs.config.Cache.Prefix
	}
	return prefix + strings.Join(parts, ":")
}

func (cs *CacheService) defaultTTL() time.Duration {
	if cs.config.Cache != nil && cs.config.Cache.TTL > 0 {
		return cs.config.Cache.TTL
	}
	return 5 * time.Minute
}

// withRetry executes a Redis operation with exponential backoff retry logic
func (cs *CacheService) withRetry(ctx context.Context, operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt == maxRetries {
			break
		}

		// Only retry on network/connection errors, not on logical errors like key not found
		if !isRetryableError(err) {
			return err
		}

		backoff := min(100*(1<<attempt), 2000)

		// add jitter of up to half the backoff
		var buf [4]byte
		if _, err := rand.Read(buf[:]); err == nil {
			backoff = backoff/2 + int(binary.BigEndian.Uint32(buf[:])%uint32(backoff/2+1))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(backoff) * time.Millisecond):
		}
	}

	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

// isRetryableError determines if an error is worth retrying
func isRetryableError(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}

	errStr := err.Error()
	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}

	for _, retryableErr := range retryableErrors {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}

	return false
}

// Set sets a key with TTL and automatic retry logic
func (cs *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if cs.client == nil {
		return nil
	}
	return cs.withRetry(ctx, func() error {
		return cs.client.Set(ctx, key, value, ttl).Err()
	}, 3)
}

// Get retrieves a key. A missing key yields "" and no error.
func (cs *CacheService) Get(ctx context.Context, key string) (string, error) {
	if cs.client == nil {
		return "", nil
	}

	var result string
	err := cs.withRetry(ctx, func() error {
		val, err := cs.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			result = ""
			return nil
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, 3)
	if err != nil {
		return "", err
	}

	return result, nil
}

// Delete removes keys with automatic retry logic
func (cs *CacheService) Delete(ctx context.Context, keys ...string) error {
	if cs.client == nil || len(keys) == 0 {
		return nil
	}
	return cs.withRetry(ctx, func() error {
		return cs.client.Del(ctx, keys...).Err()
	}, 3)
}

// Exists checks if a key exists with automatic retry logic
func (cs *CacheService) Exists(ctx context.Context, key string) (bool, error) {
	if cs.client == nil {
		return false, nil
	}

	var result bool
	err := cs.withRetry(ctx, func() error {
		count, err := cs.client.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		result = count > 0
		return nil
	}, 3)

	return result, err
}

// DeletePattern removes all keys matching a pattern using SCAN
func (cs *CacheService) DeletePattern(ctx context.Context, pattern string) error {
	if cs.client == nil {
		return nil
	}

	return cs.withRetry(ctx, func() error {
		var cursor uint64
		for {
			keys, nextCursor, err := cs.client.Scan(ctx, cursor, pattern, 100).Result()
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			if len(keys) > 0 {
				if err := cs.client.Del(ctx, keys...).Err(); err != nil {
					return fmt.Errorf("delete failed: %w", err)
				}
			}

			cursor = nextCursor
			if cursor == 0 {
				return nil
			}
		}
	}, 3)
}

func (cs *CacheService) ClearAll(ctx context.Context) error {
	if cs.client == nil {
		cs.counters.reset()
		return nil
	}
	return cs.DeletePattern(ctx, cs.key("*"))
}

// Ping tests the Redis connection
func (cs *CacheService) Ping(ctx context.Context) error {
	if cs.client == nil {
		return nil
	}
	return cs.withRetry(ctx, func() error {
		return cs.client.Ping(ctx).Err()
	}, 1)
}

// GetConnectionStats returns Redis connection pool statistics
func (cs *CacheService) GetConnectionStats() map[string]any {
	if cs.client == nil {
		return map[string]any{"enabled": false}
	}

	stats := cs.client.PoolStats()
	return map[string]any{
		"enabled":     true,
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}

// ============================================================================
// Token blacklist
// ============================================================================

// BlacklistToken stores a token's jti until the token would have expired
func (cs *CacheService) BlacklistToken(ctx context.Context, jti uuid.UUID, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}

	if cs.client == nil {
		cs.counters.blacklist(jti.String(), exp)
		return nil
	}
	return cs.Set(ctx, cs.key("blacklist", jti.String()), "true", ttl)
}

func (cs *CacheService) IsTokenBlacklisted(ctx context.Context, jti uuid.UUID) (bool, error) {
	if cs.client == nil {
		return cs.counters.isBlacklisted(jti.String()), nil
	}

	return cs.Exists(ctx, cs.key("blacklist", jti.String()))
}

// ============================================================================
// Admin profile
// ============================================================================

func (cs *CacheService) adminKey(id int64) string {
	return cs.key("admin", strconv.FormatInt(id, 10))
}

// GetAdmin returns the cached admin row, or nil on a miss.
func (cs *CacheService) GetAdmin(ctx context.Context, id int64) (*tables.Admin, error) {
	return getJSON[tables.Admin](ctx, cs, cs.adminKey(id))
}

// SetAdmin caches the admin row. The password hash is not serialised.
func (cs *CacheService) SetAdmin(ctx context.Context, admin *tables.Admin) error {
	if admin == nil {
		return nil
	}
	return setJSON(ctx, cs, cs.adminKey(admin.ID), admin, cs.defaultTTL())
}

func (cs *CacheService) InvalidateAdmin(ctx context.Context, id int64) error {
	return cs.Delete(ctx, cs.adminKey(id))
}

// ============================================================================
// Store settings
// ============================================================================

func (cs *CacheService) GetSettings(ctx context.Context) (*structs.StoreSettings, error) {
	return getJSON[structs.StoreSettings](ctx, cs, cs.key("settings"))
}

func (cs *CacheService) SetSettings(ctx context.Context, settings *structs.StoreSettings) error {
	return setJSON(ctx, cs, cs.key("settings"), settings, cs.defaultTTL())
}

func (cs *CacheService) InvalidateSettings(ctx context.Context) error {
	return cs.Delete(ctx, cs.key("settings"))
}

// ============================================================================
// Catalog
// ============================================================================

// GetCatalog reads a cached public catalog response, e.g. GetCatalog[[]tables.Category](ctx, cs, "categories").
func GetCatalog[T any](ctx context.Context, cs *CacheService, parts ...string) (*T, error) {
	return getJSON[T](ctx, cs, cs.key(append([]string{"catalog"}, parts...)...))
}

func SetCatalog[T any](ctx context.Context, cs *CacheService, value T, parts ...string) error {
	return setJSON(ctx, cs, cs.key(append([]string{"catalog"}, parts...)...), value, cs.defaultTTL())
}

// InvalidateCatalog drops every cached public catalog response. Call it
// after any write to products, variants, categories, payment methods or flash sales.
func (cs *CacheService) InvalidateCatalog(ctx context.Context) {
	if err := cs.DeletePattern(ctx, cs.key("catalog", "*")); err != nil {
		cs.logger.Warn("Failed to invalidate catalog cache", gecho.Field("error", err))
	}
}

// ============================================================================
// Rate limiting
// ============================================================================

// IncrementRateLimit atomically increments the counter of a client/bucket pair
// and returns the count within the current window.
func (cs *CacheService) IncrementRateLimit(ctx context.Context, ip, bucket string, window time.Duration) (int, error) {
	if cs.client == nil {
		return cs.counters.incr(ip+":"+bucket, window), nil
	}

	key := cs.key("ratelimit", ip, bucket)

	var result int64
	err := cs.withRetry(ctx, func() error {
		val, err := cs.client.Incr(ctx, key).Result()
		if err != nil {
			return err
		}
		result = val

		// Set expiration only on first increment
		if val == 1 {
			return cs.client.Expire(ctx, key, window).Err()
		}
		return nil
	}, 2)

	return int(result), err
}

// GetRateLimitStatus returns current rate limit information for debugging
func (cs *CacheService) GetRateLimitStatus(ctx context.Context, ip, bucket string) (map[string]any, error) {
	if cs.client == nil {
		count, ttl := cs.counters.status(ip + ":" + bucket)
		return map[string]any{"count": count, "ttl": int(ttl.Seconds())}, nil
	}

	key := cs.key("ratelimit", ip, bucket)

	var result map[string]any
	err := cs.withRetry(ctx, func() error {
		val, err := cs.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			result = map[string]any{"count": 0, "ttl": 0}
			return nil
		}
		if err != nil {
			return err
		}

		ttl, err := cs.client.TTL(ctx, key).Result()
		if err != nil {
			return err
		}

		count, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid rate limit value: %w", err)
		}

		result = map[string]any{"count": count, "ttl": int(ttl.Seconds())}
		return nil
	}, 2)

	return result, err
}

// ============================================================================
// Helper Methods
// ============================================================================

func setJSON[T any](ctx context.Context, cs *CacheService, key string, value T, ttl time.Duration) error {
	if cs.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return cs.Set(ctx, key, data, ttl)
}

func getJSON[T any](ctx context.Context, cs *CacheService, key string) (*T, error) {
	val, err := cs.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if val == "" {
		return nil, nil // not found in cache
	}

	var result T
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// memoryCounters backs rate limiting and the token blacklist when Redis is off.
type memoryCounters struct {
	mu      sync.Mutex
	windows map[string]*window
	revoked map[string]time.Time
}

type window struct {
	count   int
	resetAt time.Time
}

func newMemoryCounters() *memoryCounters {
	return &memoryCounters{
		windows: make(map[string]*window),
		revoked: make(map[string]time.Time),
	}
}

func (m *memoryCounters) incr(key string, d time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	w, ok := m.windows[key]
	if !ok || now.After(w.resetAt) {
		m.sweep(now)
		w = &window{resetAt: now.Add(d)}
		m.windows[key] = w
	}
	w.count++
	return w.count
}

func (m *memoryCounters) status(key string) (int, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[key]
	if !ok || time.Now().After(w.resetAt) {
		return 0, 0
	}
	return w.count, time.Until(w.resetAt)
}

func (m *memoryCounters) blacklist(jti string, exp time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = exp
}

func (m *memoryCounters) isBlacklisted(jti string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.revoked[jti]
	if !ok {
		return false
	}
	if time.Now().After(exp) {
		delete(m.revoked, jti)
		return false
	}
	return true
}

// sweep drops expired entries. Caller holds mu.
func (m *memoryCounters) sweep(now time.Time) {
	for k, w := range m.windows {
		if now.After(w.resetAt) {
			delete(m.windows, k)
		}
	}
	for k, exp := range m.revoked {
		if now.After(exp) {
			delete(m.revoked, k)
		}
	}
}

func (m *memoryCounters) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.windows = make(map[string]*window)
	m.revoked = make(map[string]time.Time)
}
