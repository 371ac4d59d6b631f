package input

import (
	"github.com/gdamore/tcell/v2"
)

// UpSuffix turns a key name into its release event name
const UpSuffix = "-up"

// Key names used as event bus names
const (
	KeySpace  = "space"
	KeyFire   = "f"
	KeyEscape = "escape"
)

// UpEvent returns the release event name for key
func UpEvent(key string) string { return key + UpSuffix }

// AxisBindings maps each movement axis to the key that holds it
var AxisBindings = map[Axis]string{
	AxisForward:     KeySpace,
	AxisStrafeLeft:  "q",
	AxisStrafeRight: "e",
	AxisTurnLeft:    "a",
	AxisTurnRight:   "d",
	AxisTurnUp:      "w",
	AxisTurnDown:    "s",
}

// KeyTable resolves terminal key events to key names
type KeyTable struct {
	Runes map[rune]string
	Keys  map[tcell.Key]string
}

// DefaultKeyTable returns the flight bindings
// Arrow keys mirror the WASD turn keys
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Runes: map[rune]string{
			' ': KeySpace,
			'w': "w", 'W': "w",
			'a': "a", 'A': "a",
			's': "s", 'S': "s",
			'd': "d", 'D': "d",
			'q': "q", 'Q': "q",
			'e': "e", 'E': "e",
			'f': KeyFire, 'F': KeyFire,
		},
		Keys: map[tcell.Key]string{
			tcell.KeyEscape: KeyEscape,
			tcell.KeyCtrlC:  KeyEscape,
			tcell.KeyUp:     "w",
			tcell.KeyDown:   "s",
			tcell.KeyLeft:   "a",
			tcell.KeyRight:  "d",
		},
	}
}

// Resolve returns the key name for ev
func (kt *KeyTable) Resolve(ev *tcell.EventKey) (string, bool) {
	if ev.Key() == tcell.KeyRune {
		name, ok := kt.Runes[ev.Rune()]
		return name, ok
	}
	name, ok := kt.Keys[ev.Key()]
	return name, ok
}

// IsHoldKey reports whether key drives a movement axis and therefore produces release events
func IsHoldKey(key string) bool {
	for _, k := range AxisBindings {
		if k == key {
			return true
		}
	}
	return false
}
