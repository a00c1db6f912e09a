// Package ledger persists a history of conversion attempts in a SQLite
// database under the log directory. One row per job records the source,
// title, destination, both stage exit statuses, and the terminal state, so
// failed batches can be inspected after the fact with `loom history`.
package ledger
