// Package services defines shared error classification used across the
// conversion pipeline.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper so failures surface with
//     consistent stage and operation context.
//   - Context helpers that stamp job identifiers and stage names for logging.
//
// Use these helpers when wiring new pipeline logic so error handling and
// observability stay uniform across components.
package services
