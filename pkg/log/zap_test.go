package log

import (
	"context"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestContextIDs(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithSessionID(ctx, "sess-1")

	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("expected req-1, got %q", got)
	}
	if got := SessionIDFromContext(ctx); got != "sess-1" {
		t.Errorf("expected sess-1, got %q", got)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty request id, got %q", got)
	}
}

func TestInit_DoesNotPanic(t *testing.T) {
	l := Init(ZapConfig{Level: "debug", Mode: "debug", Encoding: "console"})
	l.Infof(WithRequestID(context.Background(), "r"), "hello %s", "world")

	j := Init(ZapConfig{Level: "info", Mode: "production", Encoding: "json"})
	j.Info(context.Background(), "json line")
}
