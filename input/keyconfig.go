package input

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Unbind is the binding value that removes a key
const Unbind = "none"

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
	"dot":       '.',
}

// keysByName maps lower-cased tcell key names ("up", "esc", "ctrl-c") to keys
var keysByName = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	return m
}()

// EventNames lists every bus event a key may be bound to
func EventNames() []string {
	names := []string{KeyFire, KeyEscape}
	for _, key := range AxisBindings {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}

func isEventName(name string) bool {
	for _, n := range EventNames() {
		if n == name {
			return true
		}
	}
	return false
}

// Apply overrides bindings in place, key → event name, applied in key order
// Keys are single characters, rune aliases or tcell key names; letters bind both cases
// Returns an error on unknown keys or event names, leaving earlier keys applied
func (kt *KeyTable) Apply(bindings map[string]string) error {
	keys := make([]string, 0, len(bindings))
	for k := range bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, keyStr := range keys {
		event := strings.ToLower(strings.TrimSpace(bindings[keyStr]))
		if event != Unbind && !isEventName(event) {
			return fmt.Errorf("key %q: unknown event: %q", keyStr, event)
		}

		if r, ok := resolveRune(keyStr); ok {
			for _, v := range runeVariants(r) {
				if event == Unbind {
					delete(kt.Runes, v)
				} else {
					kt.Runes[v] = event
				}
			}
			continue
		}

		k, ok := keysByName[strings.ToLower(keyStr)]
		if !ok {
			return fmt.Errorf("unknown key name: %q", keyStr)
		}
		if event == Unbind {
			delete(kt.Keys, k)
		} else {
			kt.Keys[k] = event
		}
	}
	return nil
}

// resolveRune accepts single characters and named aliases
func resolveRune(s string) (rune, bool) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, true
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], true
	}
	return 0, false
}

func runeVariants(r rune) []rune {
	lo, up := unicode.ToLower(r), unicode.ToUpper(r)
	if lo == up {
		return []rune{r}
	}
	return []rune{lo, up}
}
