package utils

import (
	"testing"
	"time"
)

func TestToLocal(t *testing.T) {
	got, ok, err := ToLocal("2025-03-07T01:30:00Z", 0)
	if err != nil || !ok {
		t.Fatalf("ToLocal returned ok=%v err=%v", ok, err)
	}
	want := time.Date(2025, 3, 7, 1, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestToLocalOffset(t *testing.T) {
	got, ok, err := ToLocal("2025-03-07T01:30:00Z", -5)
	if err != nil || !ok {
		t.Fatalf("ToLocal returned ok=%v err=%v", ok, err)
	}
	want := time.Date(2025, 3, 6, 20, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestToLocalFractionalOffset(t *testing.T) {
	got, ok, err := ToLocal("2025-03-07T00:00:00Z", 5.5)
	if err != nil || !ok {
		t.Fatalf("ToLocal returned ok=%v err=%v", ok, err)
	}
	want := time.Date(2025, 3, 7, 5, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestToLocalNoSuffix(t *testing.T) {
	_, ok, err := ToLocal("2025-03-07T01:30:00", 0)
	if err != nil || !ok {
		t.Fatalf("timestamp without Z suffix should parse, got ok=%v err=%v", ok, err)
	}
}

func TestToLocalEmpty(t *testing.T) {
	_, ok, err := ToLocal("", 3)
	if err != nil {
		t.Fatalf("empty timestamp should not error: %v", err)
	}
	if ok {
		t.Error("empty timestamp should yield ok=false")
	}
}

func TestToLocalMalformed(t *testing.T) {
	_, _, err := ToLocal("next tuesday", 0)
	if err == nil {
		t.Error("expected error for malformed timestamp")
	}
}
