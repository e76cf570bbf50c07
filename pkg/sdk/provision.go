package dinedex

import (
	"context"
	"fmt"
	"time"

	provisionuc "github.com/kailas-cloud/dinedex/internal/usecase/provision"
)

// Default dedup filter sizing.
const (
	DefaultBloomCapacity  int64 = 1_000_000
	DefaultBloomErrorRate       = 0.0001
)

// ProvisionOptions controls Provision. Zero sizing picks the defaults.
type ProvisionOptions struct {
	BloomCapacity  int64
	BloomErrorRate float64
	// SkipBloom keeps the current filter; resetting it forgets every recorded restaurant.
	SkipBloom bool
	SkipIndex bool
}

// Provision resets the dedup filter and recreates the restaurant search index.
func (c *Client) Provision(ctx context.Context, opts ProvisionOptions) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("provision", start, err) }()

	if !opts.SkipBloom {
		bloom := provisionuc.BloomConfig{Capacity: opts.BloomCapacity, ErrorRate: opts.BloomErrorRate}
		if bloom.Capacity == 0 {
			bloom.Capacity = DefaultBloomCapacity
		}
		if bloom.ErrorRate == 0 {
			bloom.ErrorRate = DefaultBloomErrorRate
		}
		if err = c.provisionSvc.ResetBloom(ctx, bloom); err != nil {
			return fmt.Errorf("provision: %w", err)
		}
	}

	if !opts.SkipIndex {
		def, err := c.indexDef()
		if err != nil {
			return fmt.Errorf("provision: %w", err)
		}
		if err = c.provisionSvc.RecreateIndex(ctx, def); err != nil {
			return fmt.Errorf("provision: %w", err)
		}
	}
	return nil
}
