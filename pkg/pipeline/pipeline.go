// Package pipeline provides the core analysis pipeline for Trisect.
//
// This package implements the validate → search → record pipeline that
// can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline wraps the cluster search with three concerns:
//
//  1. Caching: search results are keyed by graph fingerprint plus the
//     semantic options, so repeated analyses of the same graph are free
//  2. Recording: outcomes are packaged as store.Run records ready for
//     persistence
//  3. Instrumentation: timings, cache hit tracking, and observability
//     hooks
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Criterion: "power",
//	    Parameter: "max",
//	}
//	result, err := runner.Execute(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	best := result.Run.Result.Best
//
// Run the search stage alone when the run record is not needed:
//
//	res, err := runner.Search(ctx, g, opts)
package pipeline

import (
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/neurotopo/trisect/pkg/cache"
	"github.com/neurotopo/trisect/pkg/cluster"
	"github.com/neurotopo/trisect/pkg/store"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultCriterion is the search objective used when none is given.
	DefaultCriterion = string(cluster.CriterionPower)

	// DefaultParameter selects best-only search mode.
	DefaultParameter = cluster.ParameterMax
)

// DefaultWorkers is the worker count applied when Options.Workers is zero.
// A single worker falls back to the sequential scan.
var DefaultWorkers = runtime.NumCPU()

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the analysis pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Search options
	Criterion    string `json:"criterion,omitempty"`
	Parameter    string `json:"parameter,omitempty"`
	ExcludeInter bool   `json:"exclude_inter,omitempty"`
	Workers      int    `json:"workers,omitempty"`
	Refresh      bool   `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger        *log.Logger          `json:"-"`
	Progress      cluster.ProgressFunc `json:"-"`
	ProgressEvery int                  `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// GraphHash is the canonical fingerprint of the analyzed graph.
	GraphHash string

	// Run is the analysis record, ready for persistence.
	Run *store.Run

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount      int
	EdgeCount      int
	CandidateCount int
	SearchTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SearchHit bool // Whether the search result came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the search configuration and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetSearchDefaults()
	if err := o.ClusterOptions().Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetSearchDefaults sets default values for the search stage. Defaults are
// applied before cache keys are built, so "power"/"max" and empty spellings
// share a key.
func (o *Options) SetSearchDefaults() {
	if o.Criterion == "" {
		o.Criterion = DefaultCriterion
	}
	if o.Parameter == "" {
		o.Parameter = DefaultParameter
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
}

// ClusterOptions maps the pipeline configuration onto search options.
func (o *Options) ClusterOptions() cluster.Options {
	return cluster.Options{
		Criterion:     cluster.Criterion(o.Criterion),
		Parameter:     o.Parameter,
		ExcludeInter:  o.ExcludeInter,
		Workers:       o.Workers,
		Progress:      o.Progress,
		ProgressEvery: o.ProgressEvery,
	}
}

// SearchKeyOpts returns cache key options for the search stage.
func (o *Options) SearchKeyOpts() cache.SearchKeyOpts {
	return cache.SearchKeyOpts{
		Criterion:    o.Criterion,
		Parameter:    o.Parameter,
		ExcludeInter: o.ExcludeInter,
	}
}

// RunOptions returns the semantic options recorded on a run.
func (o *Options) RunOptions() store.RunOptions {
	return store.RunOptions{
		Criterion:    o.Criterion,
		Parameter:    o.Parameter,
		ExcludeInter: o.ExcludeInter,
	}
}
