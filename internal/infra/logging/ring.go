package logging

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// RingHook retains the most recent log lines in memory so the admin
// "logs" view can show them without touching disk. Oldest entries are
// evicted once the buffer is full.
type RingHook struct {
	mu      sync.Mutex
	entries []string
	size    int
}

var _ zerolog.Hook = (*RingHook)(nil)

func NewRingHook(size int) *RingHook {
	if size <= 0 {
		size = 50
	}
	return &RingHook{size: size}
}

func (h *RingHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	if level < zerolog.InfoLevel || msg == "" {
		return
	}
	line := fmt.Sprintf("%s %s %s", time.Now().Format("15:04:05"), level.String(), msg)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, line)
	if len(h.entries) > h.size {
		h.entries = h.entries[len(h.entries)-h.size:]
	}
}

// Recent returns up to n of the newest retained lines, oldest first.
func (h *RingHook) Recent(n int) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n <= 0 || n > len(h.entries) {
		n = len(h.entries)
	}
	out := make([]string, n)
	copy(out, h.entries[len(h.entries)-n:])
	return out
}
