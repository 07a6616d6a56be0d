// Package config parses jx command-line arguments.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/jacoelho/jx/internal/exit"
	"github.com/jacoelho/jx/internal/extract"
	"github.com/jacoelho/jx/internal/format"
)

const (
	// DefaultTimeout is the default timeout for HTTP document fetches.
	DefaultTimeout = 30 * time.Second
)

var (
	ErrNoArguments      = errors.New("no arguments provided")
	ErrNegativeTimeout  = errors.New("timeout must be positive")
	ErrNegativeRate     = errors.New("rate limit cannot be negative")
	ErrDefaultWithEmpty = errors.New("default value has no effect on string input")
)

// Config is the complete configuration for a jx run.
type Config struct {
	// Extraction
	Path      string
	Mode      format.Mode
	InputType extract.InputType
	Default   string

	// Source loading
	Timeout   time.Duration
	RateLimit float64 // HTTP fetches per second (0 = unlimited)
	ViewRoot  string

	// Output
	OutputPattern string // empty writes results to stdout
	Quiet         bool   // suppress per-source diagnostics

	// Sources are files, URLs, data URIs, view paths, or "-" for stdin.
	Sources []string
}

// Validate checks cross-flag consistency.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrNegativeTimeout
	}
	if c.RateLimit < 0 {
		return ErrNegativeRate
	}
	if c.InputType == extract.TypeString && c.Default != "" {
		return ErrDefaultWithEmpty
	}
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// On parse failure or help request it returns a nil config and an exit
// result describing the outcome.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Usage and errors are rendered by this package, not the flag set.
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		path       = fs.String("path", "", "Path expression to resolve (dotted/bracketed, or JSONPath when starting with $)")
		formatName = fs.String("format", "raw", "Output format: raw, json, or pretty")
		typeName   = fs.String("type", "json", "Input type: json, yaml, or string")
		defaultVal = fs.String("default", "", "Value substituted when the path fails to resolve or resolves to null")
		timeout    = fs.Duration("timeout", DefaultTimeout, "HTTP fetch timeout")
		rateLimit  = fs.Float64("rate-limit", 0, "Rate limit for HTTP fetches in requests per second (0 for unlimited)")
		output     = fs.String("output", "", "Output filename pattern; results go to stdout when empty")
		viewRoot   = fs.String("view-root", "", "Base directory for /view? sources")
		quiet      = fs.Bool("quiet", false, "Suppress per-source diagnostics on stderr")
	)

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	mode, err := format.ParseMode(*formatName)
	if err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	inputType, err := extract.ParseInputType(*typeName)
	if err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	sources := fs.Args()
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	config := &Config{
		Path:          *path,
		Mode:          mode,
		InputType:     inputType,
		Default:       *defaultVal,
		Timeout:       *timeout,
		RateLimit:     *rateLimit,
		ViewRoot:      *viewRoot,
		OutputPattern: *output,
		Quiet:         *quiet,
		Sources:       sources,
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

// Usage returns the command help text.
func Usage() string {
	return fmt.Sprintf(`jx - extract values from JSON and YAML documents by path

Usage: jx [options] [source1] [source2] ...

Sources may be file paths, http(s) URLs, file:// URLs, data: URIs,
host-internal /view? paths, or "-" for stdin (the default).

Options:
  --path EXPR        Path expression, e.g. data.items[0].name
                     (a leading $ switches to RFC 9535 JSONPath)
  --format FORMAT    Output format: raw, json, or pretty (default: raw)
  --type TYPE        Input type: json, yaml, or string (default: json)
  --default VALUE    Substituted when the path fails or resolves to null
  --output PATTERN   Write results to files; supports %%n%%, %%batch_num%%,
                     %%uuid%%, and %%timestamp%% placeholders
  --timeout DURATION HTTP fetch timeout (default: 30s)
  --rate-limit N     HTTP fetches per second (0 for unlimited)
  --view-root DIR    Base directory for /view? sources
  --quiet            Suppress per-source diagnostics
  -h, --help         Show this help message

Examples:
  jx --path data.items[0].name response.json
  curl -s api.example.com/user | jx --path address.city
  jx --path '$.store.book[0].title' --format pretty catalog.json
  jx --path missing.key --default n/a response.json
  jx --path version --output release_%%n%% a.json b.json`)
}
