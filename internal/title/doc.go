// Package title composes per-file output titles and destination paths.
//
// A batch run names each output from the shared base title plus an episode
// number pulled from the input filename. Number extraction is a strategy
// owned by the run: either a regular expression over the basename or a plain
// incrementing counter for inputs that carry no usable markers. Standalone
// runs skip numbering entirely and use the base title as-is.
//
// Destination paths are probed for collisions and suffixed (-1, -2, ...)
// unless the caller asked to overwrite.
package title
