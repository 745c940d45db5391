// Package lineage implements pedigree graph analysis: ancestor enumeration
// with line-path tracking, common-ancestor resolution, Wright's coefficient
// of inbreeding, descendant counting, and brick-wall (line terminal)
// detection with research-priority scoring.
//
// All operations are pure functions over a read-only [pedigree.Store]. They
// allocate fresh result values per call and keep no state between calls, so
// any number of queries may run concurrently against the same store.
//
// # Pedigree collapse vs. cycles
//
// The same ancestor being reachable through several distinct lines (pedigree
// collapse) is a correct and expected structure in any closed population;
// every such line is reported as its own [AncestorRecord]. A person appearing
// on their own ancestral line, by contrast, is corrupt input. Traversals
// guard each branch with a visited set and a generation cap, so malformed
// input truncates the affected branch instead of recursing forever; the
// truncation is surfaced through [Enumeration.CycleDetected].
//
// # Traversal depth
//
// Every ancestor-walking operation takes a maxGenerations parameter and
// rejects values below 1 with [ErrGenerationsOutOfRange]. The cap bounds both
// runtime and the completeness of results: an empty result means "nothing
// found within the cap", never "proven complete".
package lineage
