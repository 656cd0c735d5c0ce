package owner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/mystore/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Callback provides GORM callback hooks for automatic owner filtering
type Callback struct {
	ownerColumn string
	required    bool
}

// NewCallback creates a new owner callback handler
func NewCallback(ownerColumn string, required bool) *Callback {
	if ownerColumn == "" {
		ownerColumn = "owner_id"
	}
	return &Callback{
		ownerColumn: ownerColumn,
		required:    required,
	}
}

// RegisterCallbacks registers owner callbacks with GORM.
// Create is intentionally not hooked; owner_id is set explicitly by the
// repositories when building rows.
func (oc *Callback) RegisterCallbacks(db *gorm.DB) {
	_ = db.Callback().Query().Before("gorm:query").Register("owner:before_query", oc.beforeQuery)
	_ = db.Callback().Update().Before("gorm:update").Register("owner:before_update", oc.beforeUpdate)
	_ = db.Callback().Delete().Before("gorm:delete").Register("owner:before_delete", oc.beforeDelete)
	_ = db.Callback().Row().Before("gorm:row").Register("owner:before_row", oc.beforeQuery)
}

func (oc *Callback) beforeQuery(db *gorm.DB) {
	oc.addOwnerFilter(db)
}

func (oc *Callback) beforeUpdate(db *gorm.DB) {
	oc.addOwnerFilter(db)
}

func (oc *Callback) beforeDelete(db *gorm.DB) {
	oc.addOwnerFilter(db)
}

func (oc *Callback) addOwnerFilter(db *gorm.DB) {
	if db.Statement.Context == nil {
		return
	}

	if db.Statement.Unscoped {
		return
	}

	// Tables without the owner column (users, sale line items scoped
	// through their sale) are out of the filter's reach
	if db.Statement.Schema == nil || db.Statement.Schema.LookUpField(oc.ownerColumn) == nil {
		return
	}

	if oc.hasOwnerCondition(db) {
		return
	}

	ownerID := logger.GetOwnerID(db.Statement.Context)
	if ownerID == "" {
		if oc.required {
			_ = db.AddError(ErrOwnerIDRequired)
		}
		return
	}

	if _, err := uuid.Parse(ownerID); err != nil {
		_ = db.AddError(ErrInvalidOwnerID)
		return
	}

	db.Statement.AddClause(clause.Where{
		Exprs: []clause.Expression{
			clause.Eq{
				Column: clause.Column{Table: clause.CurrentTable, Name: oc.ownerColumn},
				Value:  ownerID,
			},
		},
	})
}

// hasOwnerCondition checks if an owner_id condition is already present
func (oc *Callback) hasOwnerCondition(db *gorm.DB) bool {
	if db.Statement.Unscoped {
		return true
	}

	if whereClause, ok := db.Statement.Clauses["WHERE"]; ok {
		if where, ok := whereClause.Expression.(clause.Where); ok {
			for _, expr := range where.Exprs {
				if oc.exprContainsOwner(expr) {
					return true
				}
			}
		}
	}

	sql := db.Statement.SQL.String()
	if sql != "" && strings.Contains(sql, oc.ownerColumn) {
		return true
	}

	return false
}

func (oc *Callback) exprContainsOwner(expr clause.Expression) bool {
	switch e := expr.(type) {
	case clause.Expr:
		return strings.Contains(e.SQL, oc.ownerColumn)
	case clause.Eq:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == oc.ownerColumn
		}
	case clause.IN:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == oc.ownerColumn
		}
	case clause.AndConditions:
		for _, cond := range e.Exprs {
			if oc.exprContainsOwner(cond) {
				return true
			}
		}
	case clause.OrConditions:
		for _, cond := range e.Exprs {
			if oc.exprContainsOwner(cond) {
				return true
			}
		}
	}
	return false
}

// EnableAutoOwnerFilter registers callbacks that add owner_id filtering to all queries
func EnableAutoOwnerFilter(db *gorm.DB, required bool) {
	oc := NewCallback("owner_id", required)
	oc.RegisterCallbacks(db)
}

// DisableAutoOwnerFilter removes the owner callbacks, mainly for tests
func DisableAutoOwnerFilter(db *gorm.DB) {
	_ = db.Callback().Query().Remove("owner:before_query")
	_ = db.Callback().Update().Remove("owner:before_update")
	_ = db.Callback().Delete().Remove("owner:before_delete")
	_ = db.Callback().Row().Remove("owner:before_row")
}
