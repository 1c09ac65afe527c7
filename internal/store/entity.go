package store

import "time"

// Meta carries the identity every stored record embeds. The store assigns
// both fields exactly once at insertion; they are never rewritten by updates.
type Meta struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *Meta) EntityID() int { return m.ID }

func (m *Meta) stamp(id int, at time.Time) {
	m.ID = id
	m.CreatedAt = at
}

// Entity is satisfied by any pointer to a struct embedding Meta. The stamp
// method is unexported so identity can only be assigned by this package.
type Entity interface {
	EntityID() int
	stamp(id int, at time.Time)
}
