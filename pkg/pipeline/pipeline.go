// Package pipeline wires parse → layout → render into the two public
// entry points, Render and Validate, shared by the CLI and the server.
//
// Both functions are pure: output depends only on the input text, no
// state survives a call, and concurrent calls share nothing. Identical
// input always produces byte-identical output, which is what allows
// callers to cache results keyed by a hash of the input.
//
// # Usage
//
//	out, err := pipeline.Render("flowchart TD\nA --> B")
//	if err != nil {
//	    // fall back to showing the raw input
//	}
//
// Server and CLI use a [Runner] for the cached variant:
//
//	runner := pipeline.NewRunner(cache, logger)
//	res, err := runner.Render(ctx, text, pipeline.Options{})
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dnl-fm/ascii/pkg/cache"
	"github.com/dnl-fm/ascii/pkg/layout"
	"github.com/dnl-fm/ascii/pkg/parser"
	"github.com/dnl-fm/ascii/pkg/render"
)

// DefaultTTL is how long cached render output lives. Output is content
// addressed, so the TTL only bounds storage, never correctness.
const DefaultTTL = 30 * 24 * time.Hour

// Options configures one render call.
type Options struct {
	// Framed wraps the output in one extra border layer.
	Framed bool
	// Refresh bypasses the cache read (the result is still stored).
	Refresh bool
}

// Render compiles diagram text into fixed-width ASCII art. It is a pure
// function of its input and safe for concurrent use.
func Render(text string) (string, error) {
	return RenderWithOptions(text, Options{})
}

// RenderWithOptions is Render with explicit options.
func RenderWithOptions(text string, opts Options) (string, error) {
	d, err := parser.Parse(text)
	if err != nil {
		return "", err
	}
	geo, err := layout.Layout(d)
	if err != nil {
		return "", err
	}
	return render.Text(geo, opts.Framed)
}

// Validate runs parse and layout without rendering. It succeeds exactly
// when Render succeeds: rendering itself cannot fail on a geometry that
// layout accepted, short of an internal bug.
func Validate(text string) error {
	d, err := parser.Parse(text)
	if err != nil {
		return err
	}
	_, err = layout.Layout(d)
	return err
}

// Result is the outcome of a cached render.
type Result struct {
	Output   string
	Hash     string // SHA-256 of the input text
	Kind     string // diagram kind keyword
	CacheHit bool
	Duration time.Duration
}

// Runner executes renders against a cache. The zero value is not
// usable; construct with NewRunner.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
	ttl    time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil
// logger discards logs.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{cache: c, logger: logger, ttl: DefaultTTL}
}

// SetTTL overrides how long newly cached output lives. Non-positive
// durations keep DefaultTTL.
func (r *Runner) SetTTL(d time.Duration) {
	if d > 0 {
		r.ttl = d
	}
}

// Render returns the rendered output for text, serving from cache when
// possible. Errors from the cache backend degrade to a cache miss; a
// broken cache must not take rendering down with it.
func (r *Runner) Render(ctx context.Context, text string, opts Options) (*Result, error) {
	start := time.Now()
	hash := cache.Hash([]byte(text))
	key := cache.RenderKey(hash, opts.Framed)

	if !opts.Refresh {
		data, found, err := r.cache.Get(ctx, key)
		if err != nil {
			r.logger.Warn("cache read failed", "key", key, "error", err)
		} else if found {
			r.logger.Debug("cache hit", "hash", hash)
			return &Result{
				Output:   string(data),
				Hash:     hash,
				Kind:     kindOf(text),
				CacheHit: true,
				Duration: time.Since(start),
			}, nil
		}
	}

	out, err := RenderWithOptions(text, opts)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, key, []byte(out), r.ttl); err != nil {
		r.logger.Warn("cache write failed", "key", key, "error", err)
	}

	r.logger.Debug("rendered", "hash", hash, "duration", time.Since(start))
	return &Result{
		Output:   out,
		Hash:     hash,
		Kind:     kindOf(text),
		CacheHit: false,
		Duration: time.Since(start),
	}, nil
}

// kindOf extracts the kind keyword for logging and stats. Best effort:
// unparseable input reports as unknown.
func kindOf(text string) string {
	d, err := parser.Parse(text)
	if err != nil {
		return "unknown"
	}
	return d.Kind.String()
}
