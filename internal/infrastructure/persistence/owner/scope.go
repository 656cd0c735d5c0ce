// Package owner provides per-owner database scoping for GORM.
//
// Every aggregate row carries an owner_id column. Repositories apply the
// filter explicitly through Scope, and the callbacks registered by
// EnableAutoOwnerFilter act as a safety net: any query on an owned table
// that reaches the database without an owner condition gets one injected
// from the request context.
//
// Usage:
//
//	owner.EnableAutoOwnerFilter(gormDB, false)                 // once, at startup
//	db.Scopes(owner.Scope(ownerID)).Find(&products)            // in repositories
package owner

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrOwnerIDRequired is returned when owner_id is required but not found
var ErrOwnerIDRequired = errors.New("owner_id is required but not found in context")

// ErrInvalidOwnerID is returned when owner_id format is invalid
var ErrInvalidOwnerID = errors.New("invalid owner_id format")

// Scope restricts a GORM query to one owner's rows
func Scope(ownerID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", ownerID)
	}
}
