package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetOwnerID() uuid.UUID
}

// OwnedAggregateRoot provides common fields for owner-scoped aggregate roots.
// Every row persisted from one of these carries the owner id of the acting
// caller; repositories must never trust an owner id found in client input.
type OwnedAggregateRoot struct {
	BaseEntity
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// GetOwnerID returns the owning caller's id
func (a *OwnedAggregateRoot) GetOwnerID() uuid.UUID {
	return a.OwnerID
}

// NewOwnedAggregateRoot creates a new owner-scoped aggregate root
func NewOwnedAggregateRoot(ownerID uuid.UUID) OwnedAggregateRoot {
	return OwnedAggregateRoot{
		BaseEntity: NewBaseEntity(),
		OwnerID:    ownerID,
	}
}
