// Package cart implements per-session shopping carts whose line prices come
// from an external price API and whose totals are computed with fixed
// two-decimal rounding.
package cart

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"StoreFront/internal/store"
)

// DefaultTaxRate is applied to the cart subtotal unless a rate is configured.
var DefaultTaxRate = decimal.New(125, -3) // 12.5%

// Item is one accumulated cart line. The price is the value fetched when the
// product first entered the cart and is reused for every later addition of
// the same product.
type Item struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// State is an immutable cart snapshot. Subtotal, tax and total are each
// rounded to two decimals (half away from zero) at computation time, never
// accumulated pre-rounded.
type State struct {
	Items    []Item          `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Ledger accumulates cart lines for one session. Product names are keyed
// case-insensitively; the casing of the first add is kept for display.
type Ledger struct {
	prices PriceSource
	rate   decimal.Decimal

	mu    sync.Mutex
	items map[string]*Item
	order []string
}

func NewLedger(prices PriceSource, taxRate decimal.Decimal) *Ledger {
	return &Ledger{
		prices: prices,
		rate:   taxRate,
		items:  make(map[string]*Item),
	}
}

// AddProduct adds quantity units of the named product. A blank name or a
// quantity below 1 is rejected before the price source is contacted. The
// first add of a product fetches its price exactly once; later adds only
// increment the quantity. Price source failures propagate unchanged and
// leave the cart untouched.
//
// The whole check-then-act sequence runs under the ledger mutex so a ledger
// shared between goroutines can neither fetch the same price twice nor lose
// an increment. That serializes concurrent adds across the price fetch,
// which is acceptable for a per-session cart.
func (l *Ledger) AddProduct(ctx context.Context, name string, quantity int) error {
	if strings.TrimSpace(name) == "" {
		return &store.ArgumentError{Name: "name", Reason: "must not be blank"}
	}
	if quantity < 1 {
		return &store.ArgumentError{Name: "quantity", Reason: "must be at least 1"}
	}

	key := strings.ToLower(name)

	l.mu.Lock()
	defer l.mu.Unlock()

	if it, ok := l.items[key]; ok {
		it.Quantity += quantity
		return nil
	}

	price, err := l.prices.GetPrice(ctx, name)
	if err != nil {
		return err
	}

	l.items[key] = &Item{ProductName: name, Quantity: quantity, Price: price}
	l.order = append(l.order, key)
	return nil
}

// QuantityOf returns the accumulated quantity for the named product, or 0
// when it is not in the cart.
func (l *Ledger) QuantityOf(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if it, ok := l.items[strings.ToLower(name)]; ok {
		return it.Quantity
	}
	return 0
}

// State computes the current snapshot. Items appear in the order their
// products first entered the cart.
func (l *Ledger) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]Item, 0, len(l.order))
	subtotal := decimal.Zero
	for _, key := range l.order {
		it := l.items[key]
		items = append(items, *it)
		subtotal = subtotal.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(l.rate).Round(2)
	total := subtotal.Add(tax).Round(2)

	return State{Items: items, Subtotal: subtotal, Tax: tax, Total: total}
}
