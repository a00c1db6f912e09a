// Package cleanup tracks transient filesystem paths created during a
// conversion job and removes them when the job's scope exits, whether the job
// succeeded or failed. Removal is best-effort: paths already deleted by a
// downstream step are ignored.
package cleanup
