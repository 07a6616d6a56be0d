package format

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/jacoelho/jx/internal/document"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    Mode
		wantErr bool
	}{
		{name: "raw", want: ModeRaw},
		{name: "string", want: ModeRaw},
		{name: "json", want: ModeCompact},
		{name: "pretty", want: ModePretty},
		{name: "pretty_json", want: ModePretty},
		{name: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseMode(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMode(%q) error = nil, want error", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMode(%q) error = %v", tt.name, err)
			}
			if got != tt.want {
				t.Fatalf("ParseMode(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestFormatNil(t *testing.T) {
	t.Parallel()

	for _, mode := range []Mode{ModeRaw, ModeCompact, ModePretty} {
		got, err := Format(nil, mode)
		if err != nil {
			t.Fatalf("Format(nil, %v) error = %v", mode, err)
		}
		if got != "" {
			t.Fatalf("Format(nil, %v) = %q, want empty", mode, got)
		}
	}
}

func TestFormatRawScalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "string unquoted", value: "hello", want: "hello"},
		{name: "empty string", value: "", want: ""},
		{name: "true", value: true, want: "true"},
		{name: "false", value: false, want: "false"},
		{name: "integer", value: json.Number("42"), want: "42"},
		{name: "fraction", value: json.Number("1.5"), want: "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Format(tt.value, ModeRaw)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("Format(%v, raw) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestFormatRawComposite(t *testing.T) {
	t.Parallel()

	value, err := document.DecodeString(`{"b": 1, "a": [2, 3]}`)
	if err != nil {
		t.Fatalf("DecodeString() error = %v", err)
	}

	got, err := Format(value, ModeRaw)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if want := `{"b":1,"a":[2,3]}`; got != want {
		t.Fatalf("Format(raw) = %q, want %q", got, want)
	}
}

func TestFormatPretty(t *testing.T) {
	t.Parallel()

	value, err := document.DecodeString(`{"x": 1, "y": [1, 2]}`)
	if err != nil {
		t.Fatalf("DecodeString() error = %v", err)
	}

	got, err := Format(value, ModePretty)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "{\n  \"x\": 1,\n  \"y\": [\n    1,\n    2\n  ]\n}"
	if got != want {
		t.Fatalf("Format(pretty) = %q, want %q", got, want)
	}
}

// Compact output must parse back to a value equal to the input.
func TestFormatCompactRoundTrip(t *testing.T) {
	t.Parallel()

	input := `{"x":1,"y":[1,2],"z":{"nested":null}}`

	value, err := document.DecodeString(input)
	if err != nil {
		t.Fatalf("DecodeString() error = %v", err)
	}

	got, err := Format(value, ModeCompact)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got != input {
		t.Fatalf("Format(json) = %q, want %q", got, input)
	}

	reparsed, err := document.DecodeString(got)
	if err != nil {
		t.Fatalf("reparse error = %v", err)
	}
	if !reflect.DeepEqual(reparsed, value) {
		t.Fatalf("round-trip mismatch: %v != %v", reparsed, value)
	}
}
