package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/dinedex/internal/config"
	"github.com/kailas-cloud/dinedex/internal/db"
	"github.com/kailas-cloud/dinedex/internal/db/conn"
	"github.com/kailas-cloud/dinedex/internal/db/goredis"
	dbRedis "github.com/kailas-cloud/dinedex/internal/db/redis"
)

// OpenStore creates the store for the configured driver. It does not wait for the server.
func OpenStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverRueidis, "":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("open rueidis store: %w", err)
		}
		return s, nil
	case config.DriverGoRedis:
		s, err := goredis.NewStore(goredis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("open go-redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// LazyStore returns a process-wide handle that opens the store on first use
// and waits up to the configured readiness timeout for it to answer.
func LazyStore(cfg config.DatabaseConfig) *conn.Lazy {
	return conn.NewLazy(func(ctx context.Context) (db.Store, error) {
		s, err := OpenStore(cfg)
		if err != nil {
			return nil, err
		}
		timeout := time.Duration(cfg.ReadinessTimeout) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		if err := s.WaitForReady(ctx, timeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("database not ready: %w", err)
		}
		return s, nil
	})
}
