// Package execute wires source loading, extraction, and output for a jx run.
package execute

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jacoelho/jx/internal/config"
	"github.com/jacoelho/jx/internal/exit"
	"github.com/jacoelho/jx/internal/extract"
	"github.com/jacoelho/jx/internal/fetch"
	"github.com/jacoelho/jx/internal/naming"
)

// Runner processes each configured source in order.
type Runner struct {
	config    *config.Config
	fetcher   *fetch.Fetcher
	output    io.Writer
	errOutput io.Writer
}

// New creates a Runner from a validated configuration.
func New(cfg *config.Config) (*Runner, *exit.Result) {
	if cfg == nil {
		return nil, exit.Error("Error: no configuration\n")
	}

	r := &Runner{
		config:    cfg,
		output:    os.Stdout,
		errOutput: os.Stderr,
	}
	r.fetcher = fetch.New(fetch.Options{
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		ViewRoot:  cfg.ViewRoot,
		Warn:      r.errorWriter(),
	})

	return r, nil
}

// SetOutput redirects results away from stdout.
func (r *Runner) SetOutput(w io.Writer) {
	r.output = w
}

// SetErrorOutput redirects diagnostics away from stderr.
func (r *Runner) SetErrorOutput(w io.Writer) {
	r.errOutput = w
}

// SetStdin overrides the reader backing the "-" source.
func (r *Runner) SetStdin(stdin io.Reader) {
	r.fetcher = fetch.New(fetch.Options{
		Timeout:   r.config.Timeout,
		RateLimit: r.config.RateLimit,
		ViewRoot:  r.config.ViewRoot,
		Warn:      r.errorWriter(),
		Stdin:     stdin,
	})
}

func (r *Runner) payloadWriter() io.Writer {
	if r.output == nil {
		return io.Discard
	}
	return r.output
}

func (r *Runner) errorWriter() io.Writer {
	if r.errOutput == nil {
		return io.Discard
	}
	return r.errOutput
}

func (r *Runner) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.errorWriter(), format, args...)
}

// Run processes every source and returns the process exit code:
// 0 when all sources were fetched and resolved (or defaulted), 1 otherwise.
func (r *Runner) Run(ctx context.Context) int {
	opts := extract.Options{
		Path:      r.config.Path,
		Mode:      r.config.Mode,
		Default:   r.config.Default,
		InputType: r.config.InputType,
	}

	pattern := naming.Disambiguate(r.config.OutputPattern, len(r.config.Sources))

	failed := 0
	for i, source := range r.config.Sources {
		if err := ctx.Err(); err != nil {
			r.logf("jx: interrupted: %v\n", err)
			return 1
		}

		data, err := r.fetcher.Fetch(ctx, source)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				r.logf("jx: interrupted: %v\n", err)
				return 1
			}
			r.logf("jx: %s: %v\n", source, err)
			failed++
			continue
		}

		outcome := extract.Extract(string(data), opts)
		if outcome.Failed {
			failed++
		}
		if !r.config.Quiet && outcome.Diagnostic != "" {
			r.logf("jx: %s: %s\n", source, outcome.Diagnostic)
		}

		if err := r.writeResult(pattern, i+1, outcome.Result); err != nil {
			r.logf("jx: %s: %v\n", source, err)
			failed++
		}
	}

	if failed > 0 {
		return 1
	}
	return 0
}

func (r *Runner) writeResult(pattern string, ordinal int, result string) error {
	if pattern == "" {
		_, err := fmt.Fprintln(r.payloadWriter(), result)
		return err
	}

	name := naming.WithExtension(naming.Expand(pattern, ordinal), r.config.Mode)
	if err := os.WriteFile(name, []byte(result+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	return nil
}
