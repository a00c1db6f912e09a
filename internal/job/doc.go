// Package job models one source-to-destination conversion and sequences the
// pipeline for it: tracked resource scope, conduit creation, the two-stage
// coordinator, and the conditional multiplex step. Batches run jobs strictly
// one after another; a failed job never affects the jobs behind it.
package job
