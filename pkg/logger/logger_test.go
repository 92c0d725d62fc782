package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != zerolog.DebugLevel {
		t.Fatal("expected debug level")
	}
	if ParseLevel("") != zerolog.InfoLevel {
		t.Fatal("expected info default for empty input")
	}
	if ParseLevel("nonsense") != zerolog.InfoLevel {
		t.Fatal("expected info default for unknown input")
	}
}

func TestContextFieldsPropagate(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-123")
	ctx = logg.WithField(ctx, "entity", "media")
	logg.Info(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["request_id"] != "req-123" {
		t.Fatalf("expected request_id field, got %v", entry["request_id"])
	}
	if entry["entity"] != "media" {
		t.Fatalf("expected entity field, got %v", entry["entity"])
	}
	if entry["service"] != "test" {
		t.Fatalf("expected service field, got %v", entry["service"])
	}
}

func TestErrorIncludesStack(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	logg.Error(context.Background(), "boom", nil)

	if !strings.Contains(buf.String(), "stack") {
		t.Fatal("expected stack field on error logs")
	}
}
