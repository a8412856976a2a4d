package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_RejectsUnknownLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatalf("expected error for invalid level")
	}
	if _, err := New(Options{Level: "debug", Format: FormatConsole, App: "getpet"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogger_WithMergesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With(map[string]any{"request_id": "r-1"})

	l.Warn("choice rejected", map[string]any{
		"user_id": int64(7),
		"err":     errors.New("boom"),
		"":        "ignored",
	})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["request_id"] != "r-1" {
		t.Fatalf("missing base field: %#v", ctx)
	}
	if ctx["user_id"] != int64(7) {
		t.Fatalf("missing user_id: %#v", ctx)
	}
	if ctx["err"] != "boom" {
		t.Fatalf("error field not encoded: %#v", ctx)
	}
	if _, ok := ctx[""]; ok {
		t.Fatalf("empty key should be dropped")
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("TEXT") != FormatConsole {
		t.Fatalf("text should map to console")
	}
	if ParseFormat("") != FormatJSON {
		t.Fatalf("default should be json")
	}
}
