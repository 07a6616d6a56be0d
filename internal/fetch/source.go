package fetch

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Kind classifies a source string by how its bytes are obtained.
type Kind int

const (
	// KindFilePath is a plain filesystem path (the fallback).
	KindFilePath Kind = iota

	// KindHTTP is an http:// or https:// URL.
	KindHTTP

	// KindDataURI is an inline data: URI.
	KindDataURI

	// KindFileURL is a file:// URL.
	KindFileURL

	// KindViewPath is a host-internal /view? or /api/view? path.
	KindViewPath

	// KindStdin is the conventional "-" argument.
	KindStdin
)

func (k Kind) String() string {
	switch k {
	case KindHTTP:
		return "http"
	case KindDataURI:
		return "data-uri"
	case KindFileURL:
		return "file-url"
	case KindViewPath:
		return "view-path"
	case KindStdin:
		return "stdin"
	default:
		return "file"
	}
}

// Classify selects the loading strategy for a raw source string.
func Classify(raw string) Kind {
	switch {
	case raw == "-":
		return KindStdin
	case strings.HasPrefix(raw, "data:"):
		return KindDataURI
	case strings.HasPrefix(raw, "file://"):
		return KindFileURL
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return KindHTTP
	case strings.HasPrefix(raw, "/view?"), strings.HasPrefix(raw, "/api/view?"):
		return KindViewPath
	default:
		return KindFilePath
	}
}

var (
	// ErrInvalidDataURI indicates a data: URI without a payload separator.
	ErrInvalidDataURI = errors.New("fetch: invalid data URI")

	// ErrInvalidViewPath indicates a view path without a filename parameter.
	ErrInvalidViewPath = errors.New("fetch: view path has no filename")
)

// ViewQuery is the parsed query of a host-internal view path.
type ViewQuery struct {
	Filename  string
	Subfolder string
	Type      string // input, output, or temp
}

// ParseViewQuery extracts the file reference from a /view? style path.
// The filename comes from the "name" or "filename" parameter; the
// directory type defaults to "output".
func ParseViewQuery(raw string) (ViewQuery, error) {
	idx := strings.IndexByte(raw, '?')
	if idx < 0 {
		return ViewQuery{}, fmt.Errorf("%w: %s", ErrInvalidViewPath, raw)
	}

	values, err := url.ParseQuery(raw[idx+1:])
	if err != nil {
		return ViewQuery{}, fmt.Errorf("fetch: parse view query: %w", err)
	}

	filename := values.Get("name")
	if filename == "" {
		filename = values.Get("filename")
	}
	if filename == "" {
		return ViewQuery{}, fmt.Errorf("%w: %s", ErrInvalidViewPath, raw)
	}

	dirType := values.Get("type")
	if dirType == "" {
		dirType = "output"
	}

	return ViewQuery{
		Filename:  filename,
		Subfolder: values.Get("subfolder"),
		Type:      dirType,
	}, nil
}

// Resolve returns the filesystem path of the referenced file below root.
func (q ViewQuery) Resolve(root string) string {
	return filepath.Join(root, q.Type, q.Subfolder, q.Filename)
}
