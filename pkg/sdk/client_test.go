package dinedex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/dinedex/internal/db"
	"github.com/kailas-cloud/dinedex/internal/domain"
)

func TestNew_NoAddress(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &clientConfig{driver: "valkey", addrs: []string{"localhost:1234"}}
	_, err := createStore(cfg)
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithRueidis("localhost:6379", "secret").apply(cfg)
	if cfg.driver != driverRueidis {
		t.Errorf("driver = %q, want rueidis", cfg.driver)
	}
	if cfg.addrs[0] != "localhost:6379" {
		t.Errorf("addr = %q, want localhost:6379", cfg.addrs[0])
	}
	if cfg.password != "secret" {
		t.Errorf("password = %q, want secret", cfg.password)
	}

	cfg2 := &clientConfig{}
	WithGoRedis("localhost:6380", "pass").apply(cfg2)
	if cfg2.driver != driverGoRedis {
		t.Errorf("driver = %q, want goredis", cfg2.driver)
	}

	cfg3 := &clientConfig{}
	WithAuth("svc", 2).apply(cfg3)
	WithKeyPrefix("tenant1:").apply(cfg3)
	WithCacheTTL(time.Minute).apply(cfg3)
	WithPagination(20, 50).apply(cfg3)
	if cfg3.username != "svc" || cfg3.db != 2 {
		t.Errorf("auth = (%q, %d), want (svc, 2)", cfg3.username, cfg3.db)
	}
	if cfg3.keyPrefix != "tenant1:" {
		t.Errorf("keyPrefix = %q", cfg3.keyPrefix)
	}
	if cfg3.cacheTTL != time.Minute {
		t.Errorf("cacheTTL = %v", cfg3.cacheTTL)
	}
	if cfg3.defaultPageSize != 20 || cfg3.maxPageSize != 50 {
		t.Errorf("pagination = (%d, %d), want (20, 50)", cfg3.defaultPageSize, cfg3.maxPageSize)
	}

	cfg4 := &clientConfig{}
	logger := slog.Default()
	WithLogger(logger).apply(cfg4)
	if cfg4.logger != logger {
		t.Error("expected logger to be set")
	}

	cfg5 := &clientConfig{}
	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg5)
	if cfg5.metricsReg != reg {
		t.Error("expected metricsReg to be set")
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{store: nil}
	c.Close()
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("restaurant.get", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("restaurant.get", time.Now(), errors.New("fail"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "dinedex_sdk_operations_total" {
			found = true
			if len(f.GetMetric()) != 2 {
				t.Errorf("expected 2 metric samples, got %d", len(f.GetMetric()))
			}
		}
	}
	if !found {
		t.Error("dinedex_sdk_operations_total not found")
	}
}

func TestObserver_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("first observer: %v", err)
	}
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("second observer on the same registry: %v", err)
	}
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(slog.Default(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("test.op", time.Now(), nil)
	obs.observe("test.op", time.Now(), errors.New("test error"))
}

func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, outcomeOK},
		{fmt.Errorf("create restaurant: %w", domain.NewPartialIndex([]string{"ranking"}, errors.New("timeout"))), outcomePartial},
		{fmt.Errorf("get restaurant: %w", ErrRestaurantNotFound), outcomeNotFound},
		{ErrAlreadyExists, outcomeConflict},
		{fmt.Errorf("validate: %w", ErrInvalidInput), outcomeInvalid},
		{domain.StoreFailure("get restaurant", errors.New("reset")), outcomeError},
	}
	for _, tc := range tests {
		if got := outcomeOf(tc.err); got != tc.want {
			t.Errorf("outcomeOf(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestObserver_PartialCreateCounted(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, store := newTestClient(t, WithPrometheus(reg))
	store.FailOn(db.OpZAdd, errors.New("connection reset"))

	r, err := c.Restaurants().Create(context.Background(), "Nonna", "1,2", "italian")
	if !errors.Is(err, ErrPartialIndex) {
		t.Fatalf("expected ErrPartialIndex, got %v", err)
	}
	if r.ID == "" {
		t.Fatal("expected the stored restaurant alongside the error")
	}

	partial := testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("restaurant.create", outcomePartial))
	failed := testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("restaurant.create", outcomeError))
	if partial != 1 || failed != 0 {
		t.Errorf("create outcomes: partial=%v error=%v, want 1 and 0", partial, failed)
	}
}
