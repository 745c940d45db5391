// Package report builds whole-tree analysis reports on top of the lineage
// engine and the pedigree store: a consanguineous-marriage survey and
// lifespan statistics. Reports are plain data; formatting belongs to the
// callers (CLI and HTTP API).
package report
