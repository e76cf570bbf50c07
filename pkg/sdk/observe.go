package dinedex

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation outcomes, used as the "status" metric label.
const (
	outcomeOK       = "ok"
	outcomePartial  = "partial"
	outcomeNotFound = "not_found"
	outcomeConflict = "conflict"
	outcomeInvalid  = "invalid"
	outcomeError    = "error"
)

// outcomeOf classifies an operation error. A partial index failure still
// produced a restaurant or review, so it is reported apart from failures.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrPartialIndex):
		return outcomePartial
	case errors.Is(err, ErrNotFound):
		return outcomeNotFound
	case errors.Is(err, ErrAlreadyExists):
		return outcomeConflict
	case errors.Is(err, ErrInvalidInput):
		return outcomeInvalid
	default:
		return outcomeError
	}
}

type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dinedex",
		Subsystem: "sdk",
		Name:      "operations_total",
		Help:      "Directory operations by name and outcome (ok, partial, not_found, conflict, invalid, error).",
	}, []string{"operation", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dinedex",
		Subsystem: "sdk",
		Name:      "operation_duration_seconds",
		Help:      "Directory operation latency in seconds.",
		Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"operation"})

	var err error
	if operations, err = registerOrReuse(reg, operations); err != nil {
		return nil, err
	}
	if duration, err = registerOrReuse(reg, duration); err != nil {
		return nil, err
	}
	return &sdkMetrics{operations: operations, duration: duration}, nil
}

// registerOrReuse lets several clients share one registerer.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return c, fmt.Errorf("dinedex: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return c, fmt.Errorf("dinedex: metric registered with incompatible type %T", are.ExistingCollector)
	}
	return existing, nil
}

// observer records every client operation. A nil observer, or one without
// logger and registerer, does nothing.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)
	outcome := outcomeOf(err)

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(op, outcome).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	switch outcome {
	case outcomeOK:
		o.logger.Debug("operation completed", "op", op, "duration", dur)
	case outcomePartial:
		var pie *PartialIndexError
		var failed []string
		if errors.As(err, &pie) {
			failed = pie.Failed
		}
		o.logger.Warn("operation stored with missing index entries",
			"op", op, "duration", dur, "failed", failed, "error", err)
	case outcomeError:
		o.logger.Warn("operation failed", "op", op, "duration", dur, "error", err)
	default:
		// rejected by the directory, not a fault
		o.logger.Debug("operation rejected", "op", op, "outcome", outcome, "error", err)
	}
}
