// Package provision prepares a fresh store: an empty dedup filter and the
// restaurant search index.
package provision

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinedex/internal/db"
)

// BloomConfig sizes the dedup filter.
type BloomConfig struct {
	Capacity  int64
	ErrorRate float64
}

// Service runs provisioning steps.
type Service struct {
	bloom   BloomProvisioner
	indexes IndexManager
	logger  *zap.Logger
}

// New creates a provisioning service.
func New(bloom BloomProvisioner, indexes IndexManager, logger *zap.Logger) *Service {
	return &Service{bloom: bloom, indexes: indexes, logger: logger}
}

// ResetBloom drops and reserves the dedup filter. Every recorded fingerprint is lost.
func (s *Service) ResetBloom(ctx context.Context, cfg BloomConfig) error {
	if err := s.bloom.Provision(ctx, cfg.Capacity, cfg.ErrorRate); err != nil {
		return fmt.Errorf("provision bloom filter: %w", err)
	}
	s.logger.Info("bloom filter reserved",
		zap.Int64("capacity", cfg.Capacity),
		zap.Float64("error_rate", cfg.ErrorRate),
	)
	return nil
}

// RecreateIndex drops the index if present and creates it from def.
// Existing hashes are re-indexed by the server in the background.
func (s *Service) RecreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := s.indexes.DropIndex(ctx, def.Name); err != nil {
		if !errors.Is(err, db.ErrIndexNotFound) {
			return fmt.Errorf("drop index %s: %w", def.Name, err)
		}
		s.logger.Debug("index absent, nothing to drop", zap.String("index", def.Name))
	}
	if err := s.indexes.CreateIndex(ctx, def); err != nil {
		return fmt.Errorf("create index %s: %w", def.Name, err)
	}
	s.logger.Info("search index created", zap.String("index", def.Name), zap.String("definition", def.String()))
	return nil
}

// Run resets the bloom filter and recreates the index.
func (s *Service) Run(ctx context.Context, bloom BloomConfig, def *db.IndexDefinition) error {
	if err := s.ResetBloom(ctx, bloom); err != nil {
		return err
	}
	return s.RecreateIndex(ctx, def)
}
