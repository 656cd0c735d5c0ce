// Package reconcile applies batches of link-table changes inside a single
// transaction. A batch mixes Keep records (create-or-update against a natural
// key) and Delete records (remove by link id). Either every record lands or
// the whole batch rolls back.
package reconcile

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mystore/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Engine reconciles a set of desired link rows of type L against the database
// and resolves each surviving row into an enriched detail view of type D.
//
// Conflict names the natural key columns the upsert targets, Updates the
// columns rewritten when the key already exists. Scope restricts deletes to
// the calling owner's rows so a forged link id silently deletes nothing.
// Prepare forces parent and owner ids on each row before it is written,
// overriding whatever the caller supplied.
type Engine[L any, D any] struct {
	Conflict []clause.Column
	Updates  []string
	Scope    func(tx *gorm.DB) *gorm.DB
	Prepare  func(link *L)
	Resolve  func(tx *gorm.DB, link *L) (*D, error)
}

// Apply executes the batch against tx. Deletes run first so a row removed and
// re-added under the same natural key lands as a fresh insert. The returned
// slice holds the resolved detail for every kept row, in input order.
//
// Apply never commits or rolls back tx itself. Callers run it inside
// gorm's Transaction so an error unwinds everything, including any rows
// already written by earlier records of the same batch.
func (e *Engine[L, D]) Apply(tx *gorm.DB, changes []shared.Change[L]) ([]D, error) {
	deleteIDs := make([]uuid.UUID, 0, len(changes))
	keeps := make([]*shared.Change[L], 0, len(changes))

	for i := range changes {
		switch changes[i].Op {
		case shared.ChangeDelete:
			if changes[i].LinkID != uuid.Nil {
				deleteIDs = append(deleteIDs, changes[i].LinkID)
			}
		case shared.ChangeKeep:
			keeps = append(keeps, &changes[i])
		default:
			return nil, fmt.Errorf("%w: unknown change op %d", shared.ErrReconciliation, changes[i].Op)
		}
	}

	if len(deleteIDs) > 0 {
		scoped := tx
		if e.Scope != nil {
			scoped = e.Scope(tx)
		}
		// Deleting an id that is already gone is not an error, the end
		// state is what the batch asked for.
		var zero L
		if err := scoped.Where("id IN ?", deleteIDs).Delete(&zero).Error; err != nil {
			return nil, mapError(err)
		}
	}

	results := make([]D, 0, len(keeps))
	for _, change := range keeps {
		row := change.Row
		if e.Prepare != nil {
			e.Prepare(&row)
		}

		err := tx.Clauses(
			clause.OnConflict{
				Columns:   e.Conflict,
				DoUpdates: clause.AssignmentColumns(e.Updates),
			},
			clause.Returning{},
		).Create(&row).Error
		if err != nil {
			return nil, mapError(err)
		}

		detail, err := e.Resolve(tx, &row)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: kept link references a missing record", shared.ErrReconciliation)
			}
			return nil, mapError(err)
		}
		results = append(results, *detail)
	}

	return results, nil
}

// mapError translates driver-level failures into domain errors so callers
// never see raw database errors.
func mapError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", shared.ErrConstraintViolation, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", shared.ErrConstraintViolation, err)
	default:
		return fmt.Errorf("%w: %v", shared.ErrReconciliation, err)
	}
}
