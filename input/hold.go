package input

import (
	"sort"
	"time"
)

// Terminals report presses and auto-repeats but never releases
// HoldTracker infers a release once repeats stop arriving
const (
	DefaultInitialHold = 600 * time.Millisecond // Covers the OS auto-repeat delay
	DefaultRepeatHold  = 150 * time.Millisecond // Gap tolerated between repeats
)

type heldKey struct {
	lastSeen time.Time
	repeats  int
}

// HoldTracker converts a stream of key presses into down/up transitions
type HoldTracker struct {
	InitialHold time.Duration
	RepeatHold  time.Duration

	held map[string]*heldKey
}

func NewHoldTracker(initial, repeat time.Duration) *HoldTracker {
	if initial <= 0 {
		initial = DefaultInitialHold
	}
	if repeat <= 0 {
		repeat = DefaultRepeatHold
	}
	return &HoldTracker{
		InitialHold: initial,
		RepeatHold:  repeat,
		held:        make(map[string]*heldKey),
	}
}

// Press records a press of key at now, returns true on the initial press only
func (h *HoldTracker) Press(key string, now time.Time) bool {
	if k, ok := h.held[key]; ok {
		k.lastSeen = now
		k.repeats++
		return false
	}
	h.held[key] = &heldKey{lastSeen: now}
	return true
}

// Expire releases keys whose repeats stopped, returned in name order
func (h *HoldTracker) Expire(now time.Time) []string {
	var released []string
	for key, k := range h.held {
		limit := h.RepeatHold
		if k.repeats == 0 {
			limit = h.InitialHold
		}
		if now.Sub(k.lastSeen) > limit {
			released = append(released, key)
		}
	}
	for _, key := range released {
		delete(h.held, key)
	}
	sort.Strings(released)
	return released
}

// ReleaseAll drops every held key, used on focus loss and quit
func (h *HoldTracker) ReleaseAll() []string {
	released := make([]string, 0, len(h.held))
	for key := range h.held {
		released = append(released, key)
	}
	clear(h.held)
	sort.Strings(released)
	return released
}

func (h *HoldTracker) IsHeld(key string) bool {
	_, ok := h.held[key]
	return ok
}
