package logging

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRingHook_RetainsRecentLines(t *testing.T) {
	hook := NewRingHook(3)
	base := zerolog.New(nil).Hook(hook)
	for _, msg := range []string{"one", "two", "three", "four"} {
		base.Info().Msg(msg)
	}

	recent := hook.Recent(0)
	if len(recent) != 3 {
		t.Fatalf("want 3 retained lines, got %d", len(recent))
	}
	if !strings.Contains(recent[0], "two") || !strings.Contains(recent[2], "four") {
		t.Fatalf("eviction order wrong: %v", recent)
	}
}

func TestRingHook_SkipsLowLevels(t *testing.T) {
	hook := NewRingHook(10)
	base := zerolog.New(nil).Hook(hook)

	base.Debug().Msg("noise")
	base.Info().Msg("signal")

	recent := hook.Recent(0)
	if len(recent) != 1 || !strings.Contains(recent[0], "signal") {
		t.Fatalf("debug lines must not be retained: %v", recent)
	}
}

func TestRingHook_RecentLimit(t *testing.T) {
	hook := NewRingHook(10)
	base := zerolog.New(nil).Hook(hook)
	for _, msg := range []string{"a", "b", "c"} {
		base.Warn().Msg(msg)
	}

	recent := hook.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("want 2 lines, got %d", len(recent))
	}
	if !strings.Contains(recent[1], "c") {
		t.Fatalf("newest line must come last: %v", recent)
	}
}
