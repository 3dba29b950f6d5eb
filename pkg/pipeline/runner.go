package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/planark/planark/pkg/cache"
	"github.com/planark/planark/pkg/graph"
	"github.com/planark/planark/pkg/observability"
	"github.com/planark/planark/pkg/planar"
)

// Result contains the outputs of a pipeline run.
type Result struct {
	// GraphHash is the content hash of the input graph.
	GraphHash string

	// Planar is the verdict.
	Planar bool

	// Embedding is the rotation system, nil for non-planar graphs or when
	// embedding was skipped.
	Embedding *graph.Embedding

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Runner executes the planarity pipeline with caching. It is stateless apart
// from the cache and logger; one Runner may serve multiple goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer falls back to the default keyer, a
// nil cache disables caching, a nil logger falls back to the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete test → embed → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid graph: %w", err)
	}

	data, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, fmt.Errorf("serialize graph: %w", err)
	}
	result := &Result{
		GraphHash: cache.Hash(data),
		Artifacts: make(map[string][]byte),
	}
	result.Stats.VertexCount = g.NumVertices()
	result.Stats.EdgeCount = g.NumEdges()

	testStart := time.Now()
	observability.Pipeline().OnTestStart(ctx, result.Stats.VertexCount, result.Stats.EdgeCount)
	planarity, testHit, err := r.TestWithCacheInfo(ctx, g, result.GraphHash, opts)
	if err != nil {
		return nil, fmt.Errorf("test: %w", err)
	}
	result.Planar = planarity
	result.Stats.TestTime = time.Since(testStart)
	result.CacheInfo.PlanarityHit = testHit
	observability.Pipeline().OnTestComplete(ctx, planarity, result.Stats.TestTime)

	opts.Logger.Info("tested planarity",
		"vertices", result.Stats.VertexCount,
		"edges", result.Stats.EdgeCount,
		"planar", result.Planar,
		"duration", result.Stats.TestTime)

	if result.Planar && !opts.SkipEmbed {
		embedStart := time.Now()
		observability.Pipeline().OnEmbedStart(ctx, result.Stats.VertexCount)
		emb, embedHit, err := r.EmbedWithCacheInfo(ctx, g, result.GraphHash, opts)
		observability.Pipeline().OnEmbedComplete(ctx, time.Since(embedStart), err)
		if err != nil {
			return nil, fmt.Errorf("embed: %w", err)
		}
		result.Embedding = emb
		result.Stats.EmbedTime = time.Since(embedStart)
		result.CacheInfo.EmbeddingHit = embedHit

		opts.Logger.Info("computed embedding",
			"rotations", len(emb.Rotations),
			"duration", result.Stats.EmbedTime)
	}

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	for _, format := range opts.Formats {
		artifact, err := Render(g, result, format)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = artifact
	}
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// TestWithCacheInfo decides planarity with caching and reports whether the
// verdict came from cache.
func (r *Runner) TestWithCacheInfo(ctx context.Context, g *graph.Graph, graphHash string, opts Options) (bool, bool, error) {
	key := r.Keyer.PlanarityKey(graphHash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit && len(data) == 1 {
			observability.Cache().OnCacheHit(ctx, "planarity")
			return data[0] == 1, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "planarity")
	}

	verdict := planar.IsPlanar(g)
	cached := []byte{0}
	if verdict {
		cached[0] = 1
	}
	if err := r.Cache.Set(ctx, key, cached, TTLPlanarity); err == nil {
		observability.Cache().OnCacheSet(ctx, "planarity", len(cached))
	}
	return verdict, false, nil
}

// EmbedWithCacheInfo computes an embedding with caching and reports whether
// it came from cache. The graph must be planar.
func (r *Runner) EmbedWithCacheInfo(ctx context.Context, g *graph.Graph, graphHash string, opts Options) (*graph.Embedding, bool, error) {
	key := r.Keyer.EmbeddingKey(graphHash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var emb graph.Embedding
			if err := json.Unmarshal(data, &emb); err == nil {
				observability.Cache().OnCacheHit(ctx, "embedding")
				return &emb, true, nil
			}
			// Corrupted entry, fall through and recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "embedding")
	}

	emb, err := planar.Rotations(g)
	if err != nil {
		return nil, false, err
	}
	if data, err := json.Marshal(emb); err == nil {
		if err := r.Cache.Set(ctx, key, data, TTLEmbedding); err == nil {
			observability.Cache().OnCacheSet(ctx, "embedding", len(data))
		}
	}
	return emb, false, nil
}

// Close releases resources held by the runner, primarily the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
