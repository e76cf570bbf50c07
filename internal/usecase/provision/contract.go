package provision

import (
	"context"

	"github.com/kailas-cloud/dinedex/internal/db"
)

// BloomProvisioner recreates the dedup filter.
type BloomProvisioner interface {
	Provision(ctx context.Context, capacity int64, errorRate float64) error
}

// IndexManager manages the full-text index lifecycle.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
}
