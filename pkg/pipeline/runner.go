// Package pipeline runs validate → generate → verify → assemble for a
// project, with optional scene caching. The CLI and the dev server share it.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ChicagoDave/citygen/pkg/cache"
	"github.com/ChicagoDave/citygen/pkg/layout"
	"github.com/ChicagoDave/citygen/pkg/random"
	"github.com/ChicagoDave/citygen/pkg/scene"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

// ErrLayoutInvariant is returned when a generated layout fails verification.
var ErrLayoutInvariant = errors.New("generated layout violates placement invariants")

// Result is the output of one pipeline run.
type Result struct {
	Seed       uint64             `json:"seed"`
	Cached     bool               `json:"cached"`
	Validation *validation.Report `json:"validation"`
	Stats      layout.Stats       `json:"stats"`
	Buildings  []layout.Building  `json:"buildings"`
	SceneGraph *scene.Graph       `json:"scene_graph"`
}

// Runner executes the pipeline. It holds no per-run state, so one Runner
// may serve concurrent calls.
type Runner struct {
	Cache  cache.Cache
	TTL    time.Duration
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil
// logger falls back to log.Default().
func NewRunner(c cache.Cache, ttl time.Duration, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, TTL: ttl, Logger: logger}
}

// ResolveSeed picks the seed for a run: the explicit seed, else the
// project seed, else a fresh one.
func ResolveSeed(p *spec.Project, seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	if p.Seed != 0 {
		return p.Seed
	}
	return random.NewSeed()
}

// Execute runs the pipeline for p with the given seed (0 resolves via
// ResolveSeed). An invalid spec returns the partial result carrying the
// validation report together with a *validation.ConfigurationError.
func (r *Runner) Execute(ctx context.Context, p *spec.Project, seed uint64) (*Result, error) {
	seed = ResolveSeed(p, seed)
	report := validation.Validate(p.City)
	result := &Result{Seed: seed, Validation: report}
	if err := report.Err(); err != nil {
		r.Logger.Debug("spec rejected", "rules", report.Rules())
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := cache.SceneKey(p.City, seed)
	if err != nil {
		return result, err
	}
	var cached Result
	hit, err := cache.GetJSON(ctx, r.Cache, key, &cached)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	if hit {
		cached.Cached = true
		r.Logger.Debug("scene cache hit", "seed", seed)
		return &cached, nil
	}

	start := time.Now()
	buildings, placement := layout.PlaceBuildings(p.City, random.New(seed))
	report.Merge(placement)

	audit := layout.Verify(p.City, buildings)
	report.Merge(audit)
	if !audit.Valid {
		return result, fmt.Errorf("%w: %v", ErrLayoutInvariant, audit.Rules())
	}

	graph := scene.Assemble(p, seed, buildings)
	report.Merge(scene.ValidateGraph(graph))

	result.Buildings = buildings
	result.Stats = layout.Summarize(p.City, buildings)
	result.SceneGraph = graph

	r.Logger.Info("generated city",
		"seed", seed,
		"buildings", result.Stats.Count,
		"rows", result.Stats.Rows,
		"duration", time.Since(start).Round(time.Microsecond))

	if err := cache.SetJSON(ctx, r.Cache, key, result, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
	}
	return result, nil
}
