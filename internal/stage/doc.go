// Package stage launches and supervises one external pipeline process. Each
// stage is an opaque tool invoked with a fixed argument vector; the package
// models only its observable contract: launch, wait for terminal status, and
// request termination.
package stage
