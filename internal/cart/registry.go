package cart

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Registry tracks live cart sessions by ID. Sessions live for the process
// lifetime or until explicitly deleted; nothing is persisted.
type Registry struct {
	prices PriceSource
	rate   decimal.Decimal

	mu    sync.RWMutex
	carts map[string]*Ledger
}

func NewRegistry(prices PriceSource, taxRate decimal.Decimal) *Registry {
	return &Registry{
		prices: prices,
		rate:   taxRate,
		carts:  make(map[string]*Ledger),
	}
}

// Create opens a new empty cart session and returns its ID.
func (r *Registry) Create() string {
	id := "c_" + uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[id] = NewLedger(r.prices, r.rate)
	return id
}

// Get returns the ledger for a session, or false when the ID is unknown.
func (r *Registry) Get(id string) (*Ledger, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.carts[id]
	return l, ok
}

// Delete discards a session and reports whether it existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[id]; !ok {
		return false
	}
	delete(r.carts, id)
	return true
}
