package logger

import (
	"testing"
)

func TestSanitizeKVs(t *testing.T) {
	in := []interface{}{"album_id", 3, "Authorization", "Bearer abc", "dangling"}
	out := sanitizeKVs(in)

	if len(out) != len(in) {
		t.Fatalf("length: got %d want %d", len(out), len(in))
	}
	if out[1] != 3 {
		t.Fatalf("plain value altered: %v", out[1])
	}
	if out[3] != "[REDACTED]" {
		t.Fatalf("authorization not redacted: %v", out[3])
	}
	if out[4] != "dangling" {
		t.Fatalf("odd trailing key lost: %v", out[4])
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "test"} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		l.With("mode", mode).Debug("hello")
	}
}
