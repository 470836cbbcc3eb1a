package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ChicagoDave/citygen/internal/server"
	"github.com/ChicagoDave/citygen/pkg/cache"
	"github.com/ChicagoDave/citygen/pkg/pipeline"
	"github.com/ChicagoDave/citygen/pkg/scene2d"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

const (
	formatJSON  = "json"
	formatTable = "table"
	formatPlan  = "plan"
)

var errSpecInvalid = errors.New("spec has validation errors")

type generateOptions struct {
	seed     uint64
	format   string
	cacheDir string
}

type batchOptions struct {
	count   int
	workers int
	seed    uint64
}

type serveOptions struct {
	port     int
	redisURL string
	ttl      time.Duration
}

// loadAndValidate loads the project and runs spec validation.
func loadAndValidate(projectPath string) (*spec.Project, *validation.Report, error) {
	project, err := spec.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading spec: %w", err)
	}
	return project, validation.Validate(project.City), nil
}

func runValidate(ctx context.Context, w io.Writer, projectPath string) error {
	_, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("validated spec", "project", projectPath, "summary", report.Summary)

	printValidationReport(w, report)
	if !report.Valid {
		return errSpecInvalid
	}
	return nil
}

func runGenerate(ctx context.Context, w io.Writer, projectPath string, opts generateOptions) error {
	switch opts.format {
	case formatJSON, formatTable, formatPlan:
	default:
		return fmt.Errorf("unknown format %q (want %s, %s or %s)", opts.format, formatJSON, formatTable, formatPlan)
	}
	logger := loggerFromContext(ctx)

	project, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(w, report)
		return errSpecInvalid
	}

	var c cache.Cache = cache.NewNullCache()
	if opts.cacheDir != "" {
		fc, err := cache.NewFileCache(opts.cacheDir)
		if err != nil {
			return err
		}
		c = fc
	}
	defer c.Close()

	result, err := pipeline.NewRunner(c, 0, logger).Execute(ctx, project, opts.seed)
	if err != nil {
		return err
	}

	switch opts.format {
	case formatTable:
		printValidationReport(w, result.Validation)
		fmt.Fprintln(w)
		printStats(w, result)
		fmt.Fprintln(w)
		printBuildingTable(w, result.Buildings)
		return nil
	case formatPlan:
		return writeJSON(w, scene2d.Assemble2D(project.City, result.Seed, result.Buildings))
	}
	return writeJSON(w, map[string]any{
		"seed":        result.Seed,
		"cached":      result.Cached,
		"stats":       result.Stats,
		"validation":  result.Validation,
		"scene_graph": result.SceneGraph,
	})
}

func runBatch(ctx context.Context, w io.Writer, projectPath string, opts batchOptions) error {
	if opts.count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", opts.count)
	}
	if opts.workers < 1 {
		opts.workers = 1
	}
	logger := loggerFromContext(ctx)

	project, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(w, report)
		return errSpecInvalid
	}

	base := pipeline.ResolveSeed(project, opts.seed)
	runner := pipeline.NewRunner(nil, 0, logger)
	results := make([]*pipeline.Result, opts.count)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers)
	for i := range opts.count {
		seed := base + uint64(i)
		g.Go(func() error {
			res, err := runner.Execute(gctx, project, seed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("batch complete", "variants", opts.count, "workers", opts.workers,
		"duration", time.Since(start).Round(time.Millisecond))

	printBatch(w, results)
	return nil
}

func runServe(ctx context.Context, projectPath string, opts serveOptions) error {
	logger := loggerFromContext(ctx)

	var c cache.Cache = cache.NewNullCache()
	if opts.redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, opts.redisURL, "citygen:")
		if err != nil {
			return err
		}
		c = rc
		logger.Info("scene cache enabled", "backend", "redis")
	}
	defer c.Close()

	srv := server.New(server.Config{
		ProjectPath: projectPath,
		Port:        opts.port,
		Cache:       c,
		CacheTTL:    opts.ttl,
		Logger:      logger,
	})
	return srv.Start(ctx)
}
