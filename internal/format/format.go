// Package format renders resolved JSON values as strings.
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jacoelho/jx/internal/document"
)

// Mode selects the output rendering for a resolved value.
type Mode int

const (
	// ModeRaw renders scalars with their natural string form and
	// composites as compact JSON.
	ModeRaw Mode = iota

	// ModeCompact renders valid JSON with no insignificant whitespace.
	ModeCompact

	// ModePretty renders valid JSON indented with two spaces per level,
	// object members in insertion order.
	ModePretty
)

// ParseMode maps a mode name to its Mode value.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "raw", "string":
		return ModeRaw, nil
	case "json", "compact":
		return ModeCompact, nil
	case "pretty", "pretty_json":
		return ModePretty, nil
	default:
		return ModeRaw, fmt.Errorf("unknown output format %q (valid: raw, json, pretty)", name)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeCompact:
		return "json"
	case ModePretty:
		return "pretty"
	default:
		return "raw"
	}
}

// Format renders value in the given mode. A nil value formats to the
// empty string regardless of mode.
func Format(value any, mode Mode) (string, error) {
	if value == nil {
		return "", nil
	}

	switch mode {
	case ModeCompact:
		return compact(value)
	case ModePretty:
		return pretty(value)
	default:
		return raw(value)
	}
}

func compact(value any) (string, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode JSON: %w", err)
	}
	return string(payload), nil
}

func pretty(value any) (string, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode JSON: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return "", fmt.Errorf("indent JSON: %w", err)
	}
	return buf.String(), nil
}

// raw renders scalars without JSON quoting; composites fall back to
// compact JSON.
func raw(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case json.Number:
		return v.String(), nil
	case *document.Object, map[string]any, []any:
		return compact(v)
	default:
		// YAML scalars arrive as native Go numbers.
		return compact(v)
	}
}
