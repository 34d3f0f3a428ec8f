// Package policy evaluates product-policy flags defined in a simple
// key=value list, e.g. "replies_touch_thread=on,mod_override_lock=off".
// Flags cover behavior the engine deliberately leaves configurable rather
// than structural.
package policy

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// Known policy flags.
const (
	// RepliesTouchThread controls whether creating a reply bumps the owning
	// topic's last-post timestamp. Off by default: last-post pointers track
	// topic/post granularity only.
	RepliesTouchThread = "replies_touch_thread"
	// ModOverrideLock controls whether moderators may post into locked
	// topics. On by default.
	ModOverrideLock = "mod_override_lock"
)

// Defaults applied when a flag is absent from the configured list.
var defaults = map[string]bool{
	RepliesTouchThread: false,
	ModOverrideLock:    true,
}

// Flags evaluates policy flags for the forum engine.
type Flags struct {
	flags map[string]string
}

// New creates a flag set from a comma-separated config string.
func New(raw string) *Flags {
	out := make(map[string]string)

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := normalize(parts[0])
		value := normalize(parts[1])
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}

	return &Flags{flags: out}
}

// Enabled returns whether a flag is enabled for a given user.
// Supported values:
// - on/true/1
// - off/false/0
// - N% (deterministic user rollout, e.g. 25%)
// Unconfigured flags fall back to their documented default.
func (f *Flags) Enabled(name string, userID uint) bool {
	if f == nil {
		return defaults[normalize(name)]
	}

	value, ok := f.flags[normalize(name)]
	if !ok {
		return defaults[normalize(name)]
	}

	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}

	if strings.HasSuffix(value, "%") {
		pct, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
		if err != nil {
			return false
		}
		if pct <= 0 {
			return false
		}
		if pct >= 100 {
			return true
		}
		if userID == 0 {
			return false
		}
		return rolloutBucket(name, userID) < pct
	}

	return false
}

// Snapshot returns evaluated flag status for one user, including defaults.
func (f *Flags) Snapshot(userID uint) map[string]bool {
	out := make(map[string]bool, len(defaults))
	for name := range defaults {
		out[name] = f.Enabled(name, userID)
	}
	if f != nil {
		for name := range f.flags {
			out[name] = f.Enabled(name, userID)
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rolloutBucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fmt.Sprintf("%s:%d", normalize(name), userID)))
	return int(h.Sum32() % 100)
}
