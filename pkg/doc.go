// Package pkg provides the core libraries for Trisect graph partitioning.
//
// # Overview
//
// Trisect splits a directed graph into two internally wired clusters, R and
// B, leaving the remaining nodes as G connectors. The pkg directory is
// organized into four main areas:
//
//  1. [graph] / [cluster] - Domain logic (graph structure, partition search)
//  2. [cache] / [store] - Infrastructure (result caching, run persistence)
//  3. [connectome] - Dataset loading (whitespace adjacency lists)
//  4. [pipeline] - Orchestration (validate → search → record)
//
// # Architecture
//
// The typical data flow through Trisect:
//
//	Graph file (JSON or adjacency list)
//	         ↓
//	    [graph] package (dense bitset representation)
//	         ↓
//	    [cluster] package (candidate pairs, growth, search)
//	         ↓
//	    [pipeline] package (caching + run records)
//	         ↓
//	    CLI report / REST API / MongoDB
//
// # Quick Start
//
// Load a graph and search for the best partition:
//
//	import (
//	    "context"
//	    "github.com/neurotopo/trisect/pkg/cluster"
//	    "github.com/neurotopo/trisect/pkg/connectome"
//	)
//
//	// 1. Load an adjacency-list dataset
//	g, _ := connectome.Load("celegans.txt")
//
//	// 2. Search for the highest-power partition
//	res, _ := cluster.Search(context.Background(), g, cluster.Options{
//	    Criterion: cluster.CriterionPower,
//	    Parameter: cluster.ParameterMax,
//	})
//
//	// 3. Inspect the winning clusters
//	fmt.Println(res.R, res.B, res.Best.Power)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [graph] - Dense directed graph with bitset adjacency rows, label
// interning, and a content fingerprint. Includes a JSON codec, a seeded
// G(n,m) random model, and a gonum adapter.
//
// [cluster] - The partition search: candidate seed pairs, unique-successor
// cluster growth with conflict pruning, the optional interconnection
// filter, and the four search policies (power/size × max/threshold).
//
// [connectome] - Loader for whitespace adjacency lists, the format
// connectivity datasets ship in.
//
// ## Infrastructure
//
// [cache] - Search result caching behind a single Cache interface.
// FileCache for the CLI (filesystem), RedisCache for the API (shared
// between replicas), NullCache for tests and --no-cache.
//
// [store] - Persisted analysis runs. MemoryStore for development and
// tests, MongoStore for the API service.
//
// [errors] - Structured errors with machine-readable codes, shared by the
// CLI and the REST error envelope.
//
// [observability] - Process-wide hook registry for search, cache, and
// server instrumentation. Noop by default.
//
// [buildinfo] - Build-time version information set via ldflags.
//
// ## Orchestration
//
// [pipeline] - Complete analysis pipeline (validate → search → record)
// used by CLI and API. Ensures consistent behavior across all entry
// points, including cache keys shared between equivalent option
// spellings.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/cluster/...   # Specific package
//	go test -run Example        # Examples only
//
// [graph]: https://pkg.go.dev/github.com/neurotopo/trisect/pkg/graph
// [cluster]: https://pkg.go.dev/github.com/neurotopo/trisect/pkg/cluster
// [connectome]: https://pkg.go.dev/github.com/neurotopo/trisect/pkg/connectome
// [cache]: https://pkg.go.dev/github.com/neurotopo/trisect/pkg/cache
// [store]: https://pkg.go.dev/github.com/neurotopo/trisect/pkg/store
// [errors]: https://pkg.go.dev/github.com/neurotopo/trisect/pkg/errors
// [observability]: https://pkg.go.dev/github.com/neurotopo/trisect/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/neurotopo/trisect/pkg/buildinfo
// [pipeline]: https://pkg.go.dev/github.com/neurotopo/trisect/pkg/pipeline
package pkg
