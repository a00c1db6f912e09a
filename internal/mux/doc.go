// Package mux runs the final multiplex step: the freshly encoded video track
// is combined with the original source's audio into the destination .m4v
// container, with the job title embedded as metadata. It runs only when both
// pipeline stages succeeded, and removes the intermediate video file itself
// on success so only the destination persists.
package mux
