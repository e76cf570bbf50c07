// Command provision resets the dedup bloom filter and recreates the restaurant
// search index. Run it once against a fresh store, before the API server.
//
// Resetting the filter forgets every recorded (name, location) pair, so
// -skip-bloom exists for re-indexing a live store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinedex/internal/app"
	"github.com/kailas-cloud/dinedex/internal/config"
	logpkg "github.com/kailas-cloud/dinedex/internal/logger"
	provisionuc "github.com/kailas-cloud/dinedex/internal/usecase/provision"
	"github.com/kailas-cloud/dinedex/internal/version"
)

func main() {
	skipBloom := flag.Bool("skip-bloom", false, "keep the existing bloom filter, only recreate the index")
	skipIndex := flag.Bool("skip-index", false, "keep the existing search index, only reset the bloom filter")
	timeout := flag.Duration("timeout", time.Minute, "overall deadline")
	flag.Parse()

	if err := run(*skipBloom, *skipIndex, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, "provision:", err)
		os.Exit(1)
	}
}

func run(skipBloom, skipIndex bool, timeout time.Duration) error {
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Provisioning store",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.String("key_prefix", cfg.Storage.KeyPrefix),
		zap.Bool("skip_bloom", skipBloom),
		zap.Bool("skip_index", skipIndex),
	)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	handle := app.LazyStore(cfg.Database)
	defer handle.Close()

	store, err := handle.Get(ctx)
	if err != nil {
		return err
	}

	svc, err := app.Build(store, app.Options{KeyPrefix: cfg.Storage.KeyPrefix, Logger: logger})
	if err != nil {
		return err
	}

	if !skipBloom {
		err := svc.Provision.ResetBloom(ctx, provisionuc.BloomConfig{
			Capacity:  cfg.Dedup.Capacity,
			ErrorRate: cfg.Dedup.ErrorRate,
		})
		if err != nil {
			return err
		}
	}

	if !skipIndex {
		def, err := svc.RestaurantIndex()
		if err != nil {
			return fmt.Errorf("build index definition: %w", err)
		}
		if err := svc.Provision.RecreateIndex(ctx, def); err != nil {
			return err
		}
	}

	logger.Info("Provisioning finished")
	return nil
}
