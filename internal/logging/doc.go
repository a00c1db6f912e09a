// Package logging constructs the application's slog loggers and provides
// standardized attribute helpers so components emit consistent structured
// fields (component, job_id, stage, event_type).
package logging
