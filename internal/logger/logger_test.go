package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_Environments(t *testing.T) {
	for _, env := range []string{EnvProd, EnvLocal, EnvDev, EnvDocker, EnvTest} {
		l, err := NewLogger(env)
		if err != nil {
			t.Fatalf("NewLogger(%q): %v", env, err)
		}
		_ = l.Sync()
	}
}

func TestNewLogger_UnknownEnv(t *testing.T) {
	if _, err := NewLogger("staging"); err == nil {
		t.Fatal("expected error for unknown env")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger(EnvProd, "warn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !l.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled")
	}

	if _, err := NewLogger(EnvProd, "loud"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestNewLogger_TestEnvIsQuiet(t *testing.T) {
	l, err := NewLogger(EnvTest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Core().Enabled(zapcore.WarnLevel) {
		t.Error("test env should only log errors")
	}
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	reqLogger := zap.New(core).With(zap.String("request_id", "req-1"))

	ctx := ContextWithLogger(context.Background(), reqLogger)
	FromContext(ctx).Info("hello")

	if logs.Len() != 1 {
		t.Fatalf("got %d entries, want 1", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["request_id"]; got != "req-1" {
		t.Errorf("request_id = %v, want req-1", got)
	}
}

func TestFromContextOr_Fallback(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	fallback := zap.New(core)

	FromContextOr(context.Background(), fallback).Info("fallback")
	if logs.Len() != 1 {
		t.Errorf("fallback logger not used")
	}

	// No logger anywhere: must not panic.
	FromContext(context.Background()).Info("dropped")
	FromContextOr(context.Background(), nil).Info("dropped")
}
