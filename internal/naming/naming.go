// Package naming expands output filename patterns.
//
// Supported placeholders:
//
//	%n%          1-based source ordinal
//	%batch_num%  alias for %n%
//	%uuid%       random UUIDv4
//	%timestamp%  local time as 20060102_150405
package naming

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jacoelho/jx/internal/format"
)

const timestampLayout = "20060102_150405"

var placeholders = []string{"%n%", "%batch_num%", "%uuid%", "%timestamp%"}

// HasPlaceholder reports whether the pattern contains any placeholder.
func HasPlaceholder(pattern string) bool {
	for _, p := range placeholders {
		if strings.Contains(pattern, p) {
			return true
		}
	}
	return false
}

// Expand substitutes placeholders for the n-th source.
func Expand(pattern string, n int) string {
	return ExpandAt(pattern, n, time.Now())
}

// ExpandAt is Expand with an explicit timestamp, for deterministic callers.
func ExpandAt(pattern string, n int, now time.Time) string {
	ordinal := strconv.Itoa(n)
	replacer := strings.NewReplacer(
		"%n%", ordinal,
		"%batch_num%", ordinal,
		"%uuid%", uuid.New().String(),
		"%timestamp%", now.Format(timestampLayout),
	)
	return replacer.Replace(pattern)
}

// WithExtension appends an extension matching the output mode unless the
// name already carries one.
func WithExtension(name string, mode format.Mode) string {
	if filepath.Ext(name) != "" {
		return name
	}
	if mode == format.ModeRaw {
		return name + ".txt"
	}
	return name + ".json"
}

// Disambiguate appends "_%n%" to patterns without placeholders so
// multiple sources do not overwrite each other's output. An empty
// pattern is left alone.
func Disambiguate(pattern string, sources int) string {
	if pattern != "" && sources > 1 && !HasPlaceholder(pattern) {
		return pattern + "_%n%"
	}
	return pattern
}
