package shared

import "time"

// AggregateRoot is the entry point of a consistency boundary.
// Every mutation goes through it and it records the domain events
// that the unit of work drains after a successful save.
type AggregateRoot interface {
	// AggregateID returns the identifier as carried by events and outbox rows.
	AggregateID() string

	// Version is used by the persistence layer for optimistic locking.
	Version() int

	// PullEvents returns the pending events and clears the buffer.
	PullEvents() []DomainEvent
}

// Identity gives an entity equality by id only, never by attributes.
// Concrete entities embed it instead of inheriting from a base type.
type Identity[ID comparable] struct {
	id ID
}

// NewIdentity wraps an identifier.
func NewIdentity[ID comparable](id ID) Identity[ID] {
	return Identity[ID]{id: id}
}

// ID returns the wrapped identifier.
func (i Identity[ID]) ID() ID {
	return i.id
}

// SameIdentity reports whether both identities carry the same id.
func (i Identity[ID]) SameIdentity(other Identity[ID]) bool {
	return i.id == other.id
}

// AssignID is called by repositories once the storage has generated the surrogate key.
func (i *Identity[ID]) AssignID(id ID) {
	i.id = id
}

// Audit tracks creation and last-mutation timestamps.
type Audit struct {
	criadoEm     time.Time
	atualizadoEm *time.Time
}

// NewAudit starts an audit trail at now.
func NewAudit(now time.Time) Audit {
	return Audit{criadoEm: now}
}

// RestoreAudit rebuilds an audit trail from stored values.
func RestoreAudit(criadoEm time.Time, atualizadoEm *time.Time) Audit {
	return Audit{criadoEm: criadoEm, atualizadoEm: atualizadoEm}
}

func (a Audit) CriadoEm() time.Time { return a.criadoEm }

// AtualizadoEm is nil until the first mutation.
func (a Audit) AtualizadoEm() *time.Time { return a.atualizadoEm }

// MarcarComoAtualizado stamps the mutation time.
func (a *Audit) MarcarComoAtualizado(now time.Time) {
	a.atualizadoEm = &now
}
