// Package platform normalizes key descriptions from the configuration so they
// compare equal to the strings bubbletea reports for key presses.
package platform

import (
	"runtime"
	"sort"
	"strings"
)

// IsMac reports whether we run on macOS (darwin).
func IsMac() bool {
	return runtime.GOOS == "darwin"
}

// modifier aliases and their canonical names
var modifierAliases = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	// terminals deliver the command key as ctrl
	"cmd":     "ctrl",
	"command": "ctrl",
	"⌘":       "ctrl",
	"alt":     "alt",
	"option":  "alt",
	"opt":     "alt",
	"⌥":       "alt",
	"meta":    "alt",
	"shift":   "shift",
	"⇧":       "shift",
}

var modifierRank = map[string]int{"ctrl": 0, "alt": 1, "shift": 2}

var mainAliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"del":      "delete",
	"pageup":   "pgup",
	"pagedown": "pgdown",
	" ":        "space",
}

// CanonicalKeyForLookup normalizes a key description: modifiers lower-cased,
// de-duplicated and ordered ctrl, alt, shift; aliases mapped to the names
// bubbletea uses. "Cmd+S", "control+s" and "ctrl+s" all become "ctrl+s".
func CanonicalKeyForLookup(key string) string {
	if strings.TrimSpace(key) == "" {
		return ""
	}
	var mods, main []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(key, "+") {
		if part == "" {
			continue
		}
		if part != " " {
			part = strings.ToLower(strings.TrimSpace(part))
		}
		if mod, ok := modifierAliases[part]; ok {
			if !seen[mod] {
				seen[mod] = true
				mods = append(mods, mod)
			}
			continue
		}
		if alias, ok := mainAliases[part]; ok {
			part = alias
		}
		main = append(main, part)
	}
	sort.Slice(mods, func(i, j int) bool { return modifierRank[mods[i]] < modifierRank[mods[j]] })
	return strings.Join(append(mods, main...), "+")
}

// MatchesKey returns true if two key descriptions should be considered equivalent.
func MatchesKey(actual string, binding string) bool {
	return CanonicalKeyForLookup(actual) == CanonicalKeyForLookup(binding)
}

// DisplayKey formats a binding for hints in the kilo style, e.g. "Ctrl-Q".
func DisplayKey(key string) string {
	canonical := CanonicalKeyForLookup(key)
	if canonical == "" {
		return ""
	}
	parts := strings.Split(canonical, "+")
	for i, p := range parts {
		switch {
		case p == "alt" && IsMac():
			parts[i] = "Option"
		case len(p) == 1:
			parts[i] = strings.ToUpper(p)
		default:
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "-")
}
