package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestJSONLogger_WritesFieldsAndBase(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "hub", Out: &buf})

	l.With(map[string]any{"request_id": "r-1"}).Info("adoption approved", map[string]any{
		"animal_id": "a-1",
		"err":       errors.New("boom"),
		"  ":        "ignored",
	})

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("invalid json output %q: %v", buf.String(), err)
	}
	if entry["message"] != "adoption approved" {
		t.Fatalf("unexpected message: %v", entry["message"])
	}
	if entry["app"] != "hub" || entry["request_id"] != "r-1" || entry["animal_id"] != "a-1" {
		t.Fatalf("missing fields: %v", entry)
	}
	if entry["err"] != "boom" {
		t.Fatalf("expected error rendered as string, got %v", entry["err"])
	}
	if _, ok := entry["  "]; ok {
		t.Fatalf("blank keys must be dropped")
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Format: FormatText, Out: &buf})

	l.Info("hidden", nil)
	l.Warn("shown", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("expected warn entry, got %q", out)
	}
}
