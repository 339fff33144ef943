package database

import "time"

// Entry is one executed tree command in the journal.
type Entry struct {
	ID         string    `json:"id"`
	Command    string    `json:"command"`
	Path       string    `json:"path,omitempty"`
	Name       string    `json:"name,omitempty"`
	Succeeded  bool      `json:"succeeded"`
	Error      *string   `json:"error,omitempty"` // nil when the command succeeded
	ExecutedAt time.Time `json:"executed_at"`
}

// Stats holds aggregate journal statistics.
type Stats struct {
	TotalCommands  int64 `json:"total_commands"`
	FailedCommands int64 `json:"failed_commands"`
	Mutations      int64 `json:"mutations"`
}
