package ledger

import "time"

// Entry is one recorded conversion attempt.
type Entry struct {
	ID           int64
	SourcePath   string
	Title        string
	Destination  string
	State        string
	DecodeStatus string
	EncodeStatus string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Failed reports whether the entry ended in a failure state.
func (e *Entry) Failed() bool {
	return e.State == "failed"
}
