// Package pipeline runs the planarity pipeline shared by the CLI and the
// server: test → embed → render, with caching at each stage.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Test: decide whether the graph is planar
//  2. Embed: compute a combinatorial embedding for planar graphs
//  3. Render: produce output artifacts (JSON, DOT, SVG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, g, pipeline.Options{
//	    Formats: []string{pipeline.FormatJSON},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Planar)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Cache TTLs per stage. Verdicts and embeddings are pure functions of the
// graph, so the TTLs only bound cache growth.
const (
	TTLPlanarity = 30 * 24 * time.Hour
	TTLEmbedding = 30 * 24 * time.Hour
)

// Output format constants.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// Options configures a pipeline run. The zero value tests planarity, computes
// an embedding when possible, and renders JSON.
type Options struct {
	// Formats lists the artifacts to render. Defaults to ["json"].
	Formats []string `json:"formats,omitempty"`

	// SkipEmbed stops after the planarity verdict.
	SkipEmbed bool `json:"skip_embed,omitempty"`

	// Refresh bypasses the cache and overwrites it with fresh results.
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and applies defaults. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg)", f)
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Stats contains timing and size information for one run.
type Stats struct {
	VertexCount int
	EdgeCount   int
	TestTime    time.Duration
	EmbedTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks which stages were answered from cache.
type CacheInfo struct {
	PlanarityHit bool
	EmbeddingHit bool
}
