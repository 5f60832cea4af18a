package models

import "time"

// ChangeOp enumerates write operations announced on the change feed.
type ChangeOp string

const (
	ChangeOpInsert ChangeOp = "INSERT"
	ChangeOpUpdate ChangeOp = "UPDATE"
	ChangeOpDelete ChangeOp = "DELETE"
)

// Change is the envelope published on the realtime feed after a write.
// Consumers re-run their fetch/filter/bucket pipeline on receipt; the
// pipeline is stateless, so duplicates and reordering cost at most a
// redundant recomputation.
type Change struct {
	Collection string    `json:"collection"`
	Op         ChangeOp  `json:"op"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}
