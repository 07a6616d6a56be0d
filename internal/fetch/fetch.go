// Package fetch loads raw document bytes from heterogeneous sources:
// filesystem paths, HTTP(S) URLs, file:// URLs, inline data URIs,
// host-internal view paths, and stdin.
package fetch

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single HTTP fetch.
const DefaultTimeout = 30 * time.Second

// maxResponseBytes caps HTTP response bodies to keep a misbehaving
// server from exhausting memory.
const maxResponseBytes = 64 << 20 // 64 MiB

// Options configures a Fetcher.
type Options struct {
	// Timeout bounds each HTTP request. Zero means DefaultTimeout.
	Timeout time.Duration

	// RateLimit throttles HTTP fetches in requests per second.
	// Zero or negative means unlimited.
	RateLimit float64

	// ViewRoot is the base directory for view-path sources.
	// Empty means the current directory.
	ViewRoot string

	// Stdin supplies bytes for the "-" source.
	Stdin io.Reader

	// Warn receives non-fatal notices such as unexpected content types.
	// Nil discards them.
	Warn io.Writer
}

// Fetcher loads source bytes. The zero value is not usable; use New.
type Fetcher struct {
	client   *http.Client
	limiter  *rate.Limiter
	viewRoot string
	stdin    io.Reader
	warn     io.Writer
}

// New creates a Fetcher with a tuned HTTP client.
func New(opts Options) *Fetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	viewRoot := opts.ViewRoot
	if viewRoot == "" {
		viewRoot = "."
	}

	warn := opts.Warn
	if warn == nil {
		warn = io.Discard
	}

	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	return &Fetcher{
		client:   newHTTPClient(timeout),
		limiter:  rate.NewLimiter(limit, 1),
		viewRoot: viewRoot,
		stdin:    stdin,
		warn:     warn,
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                  http.ProxyFromEnvironment,
		DialContext:            dialer.DialContext,
		TLSHandshakeTimeout:    10 * time.Second,
		ResponseHeaderTimeout:  10 * time.Second,
		IdleConnTimeout:        60 * time.Second,
		MaxIdleConns:           10,
		MaxResponseHeaderBytes: 1 << 20, // 1 MiB
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// Fetch loads the bytes of a single source according to its Kind.
func (f *Fetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	switch Classify(source) {
	case KindStdin:
		return io.ReadAll(f.stdin)
	case KindDataURI:
		return decodeDataURI(source)
	case KindFileURL:
		return os.ReadFile(strings.TrimPrefix(source, "file://"))
	case KindHTTP:
		return f.fetchHTTP(ctx, source)
	case KindViewPath:
		query, err := ParseViewQuery(source)
		if err != nil {
			return nil, err
		}
		return os.ReadFile(query.Resolve(f.viewRoot))
	default:
		return os.ReadFile(source)
	}
}

func (f *Fetcher) fetchHTTP(ctx context.Context, source string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", source, resp.Status)
	}

	if contentType := resp.Header.Get("Content-Type"); !looksTextual(contentType) {
		fmt.Fprintf(f.warn, "warning: %s has content type %q\n", source, contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: read body: %w", source, err)
	}

	return body, nil
}

func looksTextual(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return true
	case mediaType == "application/json", mediaType == "application/yaml":
		return true
	case strings.HasSuffix(mediaType, "+json"), strings.HasSuffix(mediaType, "+yaml"):
		return true
	default:
		return false
	}
}

// decodeDataURI returns the payload of a data: URI. Payloads marked
// ;base64 are decoded; plain payloads are percent-decoded.
func decodeDataURI(source string) ([]byte, error) {
	idx := strings.IndexByte(source, ',')
	if idx < 0 {
		return nil, fmt.Errorf("%w: missing payload separator", ErrInvalidDataURI)
	}

	meta := source[len("data:"):idx]
	payload := source[idx+1:]

	if strings.HasSuffix(meta, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
		}
		return decoded, nil
	}

	decoded, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return []byte(decoded), nil
}
