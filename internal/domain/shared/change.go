package shared

import "github.com/google/uuid"

// ChangeOp discriminates the two kinds of link change records
type ChangeOp int

const (
	// ChangeKeep upserts the row on its natural key (insert or update in place)
	ChangeKeep ChangeOp = iota
	// ChangeDelete removes the row identified by LinkID
	ChangeDelete
)

// Change is one record of a reconciliation batch against a link relation.
// A batch is an ordered sequence of these; Keep rows are upserted on the
// relation's natural key, Delete rows are removed by id. The two cases are
// constructed through Keep/KeepExisting/Remove so a record is never both.
type Change[R any] struct {
	Op     ChangeOp
	LinkID uuid.UUID
	Row    R
}

// Keep returns a change record that inserts or updates the given row
func Keep[R any](row R) Change[R] {
	return Change[R]{Op: ChangeKeep, Row: row}
}

// KeepExisting returns a keep record that also names the existing link id.
// The id is informational; the upsert keys on the natural key regardless.
func KeepExisting[R any](id uuid.UUID, row R) Change[R] {
	return Change[R]{Op: ChangeKeep, LinkID: id, Row: row}
}

// Remove returns a change record that deletes the link with the given id.
// Deleting an absent or non-owned id is a no-op, never an error.
func Remove[R any](id uuid.UUID) Change[R] {
	return Change[R]{Op: ChangeDelete, LinkID: id}
}
