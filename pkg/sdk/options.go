package dinedex

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

const (
	driverRueidis = "rueidis"
	driverGoRedis = "goredis"
)

type clientConfig struct {
	driver   string // "rueidis" or "goredis"
	addrs    []string
	username string
	password string
	db       int

	keyPrefix       string
	cacheTTL        time.Duration
	defaultPageSize int
	maxPageSize     int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRueidis connects through the rueidis driver.
func WithRueidis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRueidis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithGoRedis connects through the go-redis driver.
func WithGoRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverGoRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithAuth sets an ACL username and selects a logical database.
func WithAuth(username string, db int) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.db = db
	})
}

// WithKeyPrefix namespaces every key. Default "app:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithCacheTTL sets how long restaurant snapshots stay cached. Default 300s.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithPagination sets the default and maximum page sizes. Defaults: 10 and 100.
func WithPagination(defaultSize, maxSize int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultPageSize = defaultSize
		c.maxPageSize = maxSize
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
