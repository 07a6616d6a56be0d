// Package extract applies the caller policy around path resolution:
// input decoding, default substitution, and output formatting.
package extract

import (
	"fmt"
	"strings"

	"github.com/theory/jsonpath"

	"github.com/jacoelho/jx/internal/document"
	"github.com/jacoelho/jx/internal/format"
	"github.com/jacoelho/jx/internal/path"
)

// InputType selects how the raw input text is interpreted.
type InputType int

const (
	// TypeJSON decodes the input as JSON before resolution.
	TypeJSON InputType = iota

	// TypeYAML decodes the input as YAML before resolution.
	TypeYAML

	// TypeString returns the input verbatim, bypassing parsing.
	TypeString
)

// ParseInputType maps an input type name to its InputType value.
func ParseInputType(name string) (InputType, error) {
	switch name {
	case "json":
		return TypeJSON, nil
	case "yaml":
		return TypeYAML, nil
	case "string":
		return TypeString, nil
	default:
		return TypeJSON, fmt.Errorf("unknown input type %q (valid: json, yaml, string)", name)
	}
}

func (t InputType) String() string {
	switch t {
	case TypeYAML:
		return "yaml"
	case TypeString:
		return "string"
	default:
		return "json"
	}
}

// Options configures a single extraction.
type Options struct {
	// Path is a dotted/bracketed path expression, or a full JSONPath
	// query when it starts with '$'. Empty selects the whole document.
	Path string

	// Mode selects the output rendering.
	Mode format.Mode

	// Default substitutes the result when resolution fails or yields
	// JSON null. Empty means no default.
	Default string

	// InputType selects how Input text is decoded.
	InputType InputType
}

// Outcome is the pair of strings handed back to the caller, plus whether
// the extraction counts as failed (parse error, or an unresolved path
// with no default configured).
type Outcome struct {
	Result     string
	Diagnostic string
	Failed     bool
}

// Extract decodes input, resolves the configured path, and formats the
// result. It never returns an error: every failure mode is folded into
// the Outcome per the default-substitution policy.
func Extract(input string, opts Options) Outcome {
	if opts.InputType == TypeString {
		return Outcome{Result: input, Diagnostic: "string input returned verbatim"}
	}

	root, err := decode(input, opts.InputType)
	if err != nil {
		return Outcome{
			Diagnostic: fmt.Sprintf("%s parse error: %v", opts.InputType, err),
			Failed:     true,
		}
	}

	if strings.HasPrefix(strings.TrimSpace(opts.Path), "$") {
		return extractJSONPath(root, opts)
	}

	resolution, err := path.Resolve(root, opts.Path)
	if err != nil {
		return substituteDefault(opts, err.Error(), true)
	}

	if resolution.Value == nil {
		// The path resolved; null just has no rendering of its own.
		return substituteDefault(opts, fmt.Sprintf("resolved path '%s' to null", strings.Join(resolution.Trace, ".")), false)
	}

	return render(resolution.Value, opts, fmt.Sprintf("resolved path '%s'", strings.Join(resolution.Trace, ".")))
}

func decode(input string, inputType InputType) (any, error) {
	if inputType == TypeYAML {
		return document.FromYAML([]byte(input))
	}
	return document.DecodeString(strings.TrimSpace(input))
}

// extractJSONPath delegates '$'-prefixed paths to the RFC 9535 engine.
// The first match wins; no match is treated like a resolution failure.
func extractJSONPath(root any, opts Options) Outcome {
	query, err := jsonpath.Parse(strings.TrimSpace(opts.Path))
	if err != nil {
		return substituteDefault(opts, fmt.Sprintf("invalid JSONPath %s: %v", opts.Path, err), true)
	}

	results := query.Select(document.Plain(root))
	if len(results) == 0 {
		return substituteDefault(opts, fmt.Sprintf("no match for JSONPath %s", opts.Path), true)
	}

	value := results[0]
	if value == nil {
		return substituteDefault(opts, fmt.Sprintf("JSONPath %s matched null", opts.Path), false)
	}

	return render(value, opts, fmt.Sprintf("matched JSONPath %s", opts.Path))
}

// substituteDefault applies the caller escalation policy: a configured
// non-empty default replaces the result, otherwise the result is empty.
// A defaulted outcome never counts as failed; a null resolution without
// a default does not either, since the path did resolve.
func substituteDefault(opts Options, diagnostic string, failed bool) Outcome {
	if opts.Default != "" {
		return Outcome{
			Result:     opts.Default,
			Diagnostic: fmt.Sprintf("using default value: %s", diagnostic),
		}
	}
	return Outcome{Diagnostic: diagnostic, Failed: failed}
}

func render(value any, opts Options, diagnostic string) Outcome {
	result, err := format.Format(value, opts.Mode)
	if err != nil {
		return Outcome{Diagnostic: fmt.Sprintf("format error: %v", err), Failed: true}
	}
	return Outcome{Result: result, Diagnostic: diagnostic}
}
