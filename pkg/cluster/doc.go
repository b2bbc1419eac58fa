// Package cluster implements the R/B/G partition search over directed
// graphs.
//
// # Overview
//
// The search divides a directed graph into three groups: two clusters R
// and B with no edges between them in either direction, and the connector
// remainder G holding every node assigned to neither. G is never
// materialized; its size is the node count minus the cluster sizes.
//
// The algorithm is a greedy heuristic evaluated exhaustively over seed
// pairs:
//
//  1. [Pairs] enumerates every unordered pair of distinct, mutually
//     non-adjacent nodes as candidate seeds.
//  2. [Grow] expands each seed pair into clusters by repeatedly assigning
//     "unique successors" (nodes reachable from exactly one side) and
//     pruning members whose edges contradict pure-side membership.
//  3. [FilterInter] optionally strips residual cross-talk: members whose
//     only directional signal points at the opposite cluster.
//  4. [Search] scores every candidate's partition and retains the best
//     (or, in threshold mode, every qualifying solution).
//
// # Scoring
//
// Two criteria are supported. The power criterion scores a partition by
// the relative saving of a quadratic cost model:
//
//	power = 100 * (1 - p_after/p_before)
//	p_before = n^2
//	p_after  = r*(r+g) + b*(b+g) + n*g
//
// The size criterion scores by r+b, the combined cluster size. With
// parameter "max" the single best candidate is retained; with a numeric
// parameter every candidate clearing the threshold is collected and the
// highest-power qualifier becomes the primary result. All comparisons are
// strict, so the earliest candidate in [Pairs] order wins ties.
//
// # Growth Bounds
//
// Cluster growth stops when a round fails to push either cluster past its
// previously recorded size, or after 15 rounds, whichever comes first.
// The round cap bounds runtime on graphs where growth converges slowly.
//
// # Concurrency
//
// The search is CPU-bound over an immutable graph. [Options.Workers]
// shards candidates across goroutines; the reduction is deterministic, so
// a parallel search returns exactly the sequential result. Candidate
// evaluation itself shares nothing between goroutines beyond the
// read-only graph.
package cluster
