package source

import "testing"

func TestNewUnconfigured(t *testing.T) {
	src, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if src != nil {
		t.Errorf("expected nil source when unconfigured, got %T", src)
	}
}

func TestNewUnknownType(t *testing.T) {
	if _, err := New(Config{Type: "midi"}); err == nil {
		t.Error("expected error for unknown source type")
	}
}

func TestIsCommand(t *testing.T) {
	for d := byte('0'); d <= '9'; d++ {
		if !IsCommand(d) {
			t.Errorf("IsCommand(%q) = false", d)
		}
	}
	for _, c := range []byte{'a', '/', ':', '\n', '\r', ' ', 0x00} {
		if IsCommand(c) {
			t.Errorf("IsCommand(0x%02x) = true", c)
		}
	}
}
