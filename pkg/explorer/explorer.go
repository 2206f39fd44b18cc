// Package explorer orchestrates the exploration pipeline: catalog lookup,
// tree building, documentation links, and artifact rendering, with caching
// around the expensive stages.
//
// The [Runner] is the single entry point shared by the CLI, the TUI, and
// the HTTP server. It is stateless except for the cache and logger, so one
// Runner serves concurrent callers.
package explorer

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ionutms/schemascope/pkg/cache"
	"github.com/ionutms/schemascope/pkg/docs"
	"github.com/ionutms/schemascope/pkg/errors"
	"github.com/ionutms/schemascope/pkg/export"
	"github.com/ionutms/schemascope/pkg/observability"
	"github.com/ionutms/schemascope/pkg/schema"
	"github.com/ionutms/schemascope/pkg/treemap"
)

// Result is the output of one Explore call.
type Result struct {
	// Schema is the catalog name the tree was built from.
	Schema string `json:"schema"`

	// Tree is the parallel-sequence hierarchy.
	Tree treemap.Tree `json:"tree"`

	// Counts carries the unfiltered per-level size bounds for range
	// controls.
	Counts treemap.Counts `json:"counts"`

	// TreeHash is a content hash of the tree, used to key rendered
	// artifacts.
	TreeHash string `json:"tree_hash"`

	// Stats describes how the result was produced.
	Stats Stats `json:"stats"`
}

// Stats captures per-call timing and cache behavior.
type Stats struct {
	// Nodes is the number of nodes in the tree.
	Nodes int `json:"nodes"`

	// SearchTime is how long the tree build took. Zero on a cache hit.
	SearchTime time.Duration `json:"search_time"`

	// TreeCacheHit reports whether the tree came from the cache.
	TreeCacheHit bool `json:"tree_cache_hit"`
}

// DocLink is a resolved documentation link for one tree node.
type DocLink struct {
	// URL is the documentation address the node maps to.
	URL string `json:"url"`

	// Anchored reports whether the URL targets a property subsection
	// rather than the unanchored page.
	Anchored bool `json:"anchored"`

	// Exists reports whether the linked section could be verified. A
	// failed check degrades to false; the link is hidden, not broken.
	Exists bool `json:"exists"`
}

// Runner executes explorations against a catalog.
type Runner struct {
	registry *schema.Registry
	cache    cache.Cache
	keyer    cache.Keyer
	resolver *docs.Resolver
	checker  *docs.Checker
	logger   *log.Logger
}

// RunnerOptions configures a Runner. Zero values select defaults: the
// embedded catalog, no caching, the standard keyer and documentation base,
// and the default logger.
type RunnerOptions struct {
	Registry *schema.Registry
	Cache    cache.Cache
	Keyer    cache.Keyer
	Resolver *docs.Resolver
	Checker  *docs.Checker
	Logger   *log.Logger
}

// NewRunner creates a Runner. The only error source is loading the
// embedded catalog when no registry is supplied.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Registry == nil {
		reg, err := schema.Load()
		if err != nil {
			return nil, err
		}
		opts.Registry = reg
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Resolver == nil {
		opts.Resolver = docs.NewResolver("")
	}
	if opts.Checker == nil {
		opts.Checker = docs.NewChecker(docs.CheckerOptions{Cache: opts.Cache, Keyer: opts.Keyer})
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Runner{
		registry: opts.Registry,
		cache:    opts.Cache,
		keyer:    opts.Keyer,
		resolver: opts.Resolver,
		checker:  opts.Checker,
		logger:   opts.Logger,
	}, nil
}

// Names returns the catalog's schema names, sorted.
func (r *Runner) Names() []string {
	return r.registry.Names()
}

// Entry returns the catalog entry for name.
func (r *Runner) Entry(name string) (*schema.Entry, error) {
	e, ok := r.registry.Lookup(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeSchemaNotFound, "schema %q is not in the catalog", name)
	}
	return e, nil
}

// Explore builds the tree for opts.Schema with opts.Filter applied.
// Results are cached by schema name and filter; pass Refresh to rebuild.
func (r *Runner) Explore(ctx context.Context, opts *Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.loggerFor(opts)

	entry, err := r.Entry(opts.Schema)
	if err != nil {
		return nil, err
	}

	key := r.keyer.TreeKey(opts.Schema, opts.Filter.String())
	if !opts.Refresh {
		if res, ok := r.cachedResult(ctx, key); ok {
			logger.Debug("tree cache hit", "schema", opts.Schema, "nodes", res.Stats.Nodes)
			return res, nil
		}
	}

	start := time.Now()
	observability.Explorer().OnSearchStart(ctx, opts.Schema)
	sr, err := treemap.Search(entry.New(), opts.Filter)
	elapsed := time.Since(start)

	nodes := 0
	if sr != nil {
		nodes = sr.Tree.Len()
	}
	observability.Explorer().OnSearchComplete(ctx, opts.Schema, nodes, elapsed, err)
	if err != nil {
		return nil, err
	}

	treeJSON, err := json.Marshal(sr.Tree)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode tree")
	}

	res := &Result{
		Schema:   opts.Schema,
		Tree:     sr.Tree,
		Counts:   sr.Counts,
		TreeHash: cache.Hash(treeJSON),
		Stats:    Stats{Nodes: nodes, SearchTime: elapsed},
	}
	r.storeResult(ctx, key, res)

	logger.Info("built tree",
		"schema", opts.Schema,
		"nodes", nodes,
		"filter", opts.Filter.String(),
		"took", elapsed)
	return res, nil
}

// cachedResult fetches and decodes a cached Result. A decode failure is
// treated as a miss; the entry will be overwritten by the rebuild.
func (r *Runner) cachedResult(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "tree")
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		observability.Cache().OnCacheMiss(ctx, "tree")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "tree")
	res.Stats.TreeCacheHit = true
	return &res, true
}

// storeResult writes a Result to the cache. Cache failures are dropped;
// the result is already in hand.
func (r *Runner) storeResult(ctx context.Context, key string, res *Result) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, data, cache.TTLTree); err == nil {
		observability.Cache().OnCacheSet(ctx, "tree", len(data))
	}
}

// Doc resolves a clicked node id to its documentation link and verifies
// the section is live.
func (r *Runner) Doc(ctx context.Context, schemaName, nodeID string) (*DocLink, error) {
	entry, err := r.Entry(schemaName)
	if err != nil {
		return nil, err
	}
	url, err := r.resolver.Resolve(entry, nodeID)
	if err != nil {
		return nil, err
	}
	return &DocLink{
		URL:      url,
		Anchored: strings.Contains(url, "#"),
		Exists:   r.checker.SectionExists(ctx, url),
	}, nil
}

// Render produces an artifact from an explored result in opts.Format.
// Image artifacts are cached by tree hash and render parameters.
func (r *Runner) Render(ctx context.Context, res *Result, opts *Options) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.loggerFor(opts)

	if opts.Format == export.FormatJSON {
		return json.MarshalIndent(res, "", "  ")
	}

	key := r.keyer.ArtifactKey(res.TreeHash, cache.ArtifactKeyOpts{
		Format:     opts.Format,
		Colorscale: opts.Colorscale,
		Sorted:     opts.Sorted,
	})
	if !opts.Refresh {
		if data, hit, err := r.cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			logger.Debug("artifact cache hit", "format", opts.Format, "bytes", len(data))
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	start := time.Now()
	observability.Explorer().OnRenderStart(ctx, opts.Format)
	data, err := r.renderArtifact(ctx, res, opts)
	observability.Explorer().OnRenderComplete(ctx, opts.Format, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	logger.Info("rendered artifact",
		"schema", res.Schema,
		"format", opts.Format,
		"bytes", len(data))
	return data, nil
}

func (r *Runner) renderArtifact(ctx context.Context, res *Result, opts *Options) ([]byte, error) {
	dot := export.ToDOT(&res.Tree, export.Options{
		Colorscale: opts.Colorscale,
		Sorted:     opts.Sorted,
	})

	switch opts.Format {
	case export.FormatDOT:
		return []byte(dot), nil
	case export.FormatSVG:
		return export.RenderSVG(ctx, dot)
	case export.FormatPNG:
		return export.RenderPNG(ctx, dot)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", opts.Format)
}

// Close releases the runner's cache backend.
func (r *Runner) Close() error {
	return r.cache.Close()
}

// loggerFor returns the per-call logger override, or the runner's own.
func (r *Runner) loggerFor(opts *Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.logger
}
