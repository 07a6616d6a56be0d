package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jacoelho/jx/internal/extract"
	"github.com/jacoelho/jx/internal/format"
)

func TestParseDefaults(t *testing.T) {
	t.Parallel()

	cfg, result := Parse([]string{"jx"})
	if result != nil {
		t.Fatalf("Parse() exit result = %+v, want nil", result)
	}

	if cfg.Path != "" {
		t.Fatalf("Path = %q, want empty", cfg.Path)
	}
	if cfg.Mode != format.ModeRaw {
		t.Fatalf("Mode = %v, want ModeRaw", cfg.Mode)
	}
	if cfg.InputType != extract.TypeJSON {
		t.Fatalf("InputType = %v, want TypeJSON", cfg.InputType)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Fatalf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if want := []string{"-"}; !reflect.DeepEqual(cfg.Sources, want) {
		t.Fatalf("Sources = %v, want %v", cfg.Sources, want)
	}
}

func TestParseFlags(t *testing.T) {
	t.Parallel()

	cfg, result := Parse([]string{
		"jx",
		"-path", "data.items[0]",
		"-format", "pretty",
		"-type", "yaml",
		"-default", "n/a",
		"-timeout", "5s",
		"-rate-limit", "2.5",
		"-output", "out_%n%",
		"-quiet",
		"a.yaml", "b.yaml",
	})
	if result != nil {
		t.Fatalf("Parse() exit result = %+v, want nil", result)
	}

	if cfg.Path != "data.items[0]" {
		t.Fatalf("Path = %q", cfg.Path)
	}
	if cfg.Mode != format.ModePretty {
		t.Fatalf("Mode = %v, want ModePretty", cfg.Mode)
	}
	if cfg.InputType != extract.TypeYAML {
		t.Fatalf("InputType = %v, want TypeYAML", cfg.InputType)
	}
	if cfg.Default != "n/a" {
		t.Fatalf("Default = %q", cfg.Default)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.RateLimit != 2.5 {
		t.Fatalf("RateLimit = %v, want 2.5", cfg.RateLimit)
	}
	if cfg.OutputPattern != "out_%n%" {
		t.Fatalf("OutputPattern = %q", cfg.OutputPattern)
	}
	if !cfg.Quiet {
		t.Fatal("Quiet = false, want true")
	}
	if want := []string{"a.yaml", "b.yaml"}; !reflect.DeepEqual(cfg.Sources, want) {
		t.Fatalf("Sources = %v, want %v", cfg.Sources, want)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: nil},
		{name: "unknown format", args: []string{"jx", "-format", "xml"}},
		{name: "unknown type", args: []string{"jx", "-type", "toml"}},
		{name: "unknown flag", args: []string{"jx", "-bogus"}},
		{name: "negative rate limit", args: []string{"jx", "-rate-limit", "-1"}},
		{name: "zero timeout", args: []string{"jx", "-timeout", "0s"}},
		{name: "default with string input", args: []string{"jx", "-type", "string", "-default", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, result := Parse(tt.args)
			if cfg != nil {
				t.Fatalf("Parse() config = %+v, want nil", cfg)
			}
			if result == nil || result.ExitCode == 0 {
				t.Fatalf("Parse() result = %+v, want error exit", result)
			}
		})
	}
}

func TestParseHelp(t *testing.T) {
	t.Parallel()

	cfg, result := Parse([]string{"jx", "-h"})
	if cfg != nil {
		t.Fatalf("Parse() config = %+v, want nil", cfg)
	}
	if result == nil || result.ExitCode != 0 {
		t.Fatalf("Parse() result = %+v, want success exit", result)
	}
	if !strings.Contains(result.Message, "Usage:") {
		t.Fatalf("help message = %q, want usage text", result.Message)
	}
}
