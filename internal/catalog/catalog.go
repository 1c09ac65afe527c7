// Package catalog holds the product and category stores and the product
// search/ranking logic layered on top of the generic entity store.
package catalog

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"StoreFront/internal/store"
)

// Catalog stores products and adds name-aware insertion on top of the
// generic store: inserting a product whose name already exists (compared
// case-insensitively) merges into the existing product instead of creating
// a duplicate.
type Catalog struct {
	*store.Store[*Product]

	// Serializes the name lookup and insert inside AddOrMerge so two
	// concurrent inserts of the same name cannot both miss the lookup.
	mergeMu sync.Mutex
}

func NewCatalog() *Catalog {
	return &Catalog{Store: store.New(validateProduct, mergeProduct)}
}

// AddOrMerge inserts the product, or merges it into an existing product with
// the same name. On a merge the incoming quantity is added to the existing
// one, the price overwrites only when the incoming price is positive, and
// description, SKU and category overwrite only when set. The returned
// product is the stored instance; a merge never issues a new ID.
func (c *Catalog) AddOrMerge(p *Product) (*Product, error) {
	if p == nil {
		return nil, store.ErrNilEntity
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, &store.ArgumentError{Name: "name", Reason: "must not be blank"}
	}
	if p.Quantity < 0 {
		return nil, &store.ArgumentError{Name: "quantity", Reason: "must not be negative"}
	}

	c.mergeMu.Lock()
	defer c.mergeMu.Unlock()

	existing, ok := c.FindFirst(func(e *Product) bool { return strings.EqualFold(e.Name, p.Name) })
	if !ok {
		return c.Add(p)
	}

	existing.Quantity += p.Quantity
	if p.Price.GreaterThan(decimal.Zero) {
		existing.Price = p.Price
	}
	if p.Description != "" {
		existing.Description = p.Description
	}
	if p.SKU != "" {
		existing.SKU = p.SKU
	}
	if p.CategoryID != nil {
		existing.CategoryID = p.CategoryID
	}
	return existing, nil
}

// GetByName returns the product with the given name, compared
// case-insensitively. A blank name is an argument error.
func (c *Catalog) GetByName(name string) (*Product, bool, error) {
	if strings.TrimSpace(name) == "" {
		return nil, false, &store.ArgumentError{Name: "name", Reason: "must not be blank"}
	}
	p, ok := c.FindFirst(func(e *Product) bool { return strings.EqualFold(e.Name, name) })
	return p, ok, nil
}

// QuantityOf returns the stocked quantity for the named product, or 0 when
// the product is absent.
func (c *Catalog) QuantityOf(name string) (int, error) {
	p, ok, err := c.GetByName(name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return p.Quantity, nil
}

// ByCategory returns the products of one category, sorted by name.
func (c *Catalog) ByCategory(categoryID int) []*Product {
	out := c.Find(func(p *Product) bool {
		return p.CategoryID != nil && *p.CategoryID == categoryID
	})
	sortByName(out)
	return out
}

// ListByName returns all products sorted by name ascending. The underlying
// List is ID-ordered; product listings are presented name-ordered.
func (c *Catalog) ListByName() []*Product {
	out := c.List()
	sortByName(out)
	return out
}

// PageByName returns one page of the name-ordered listing with the same
// clamping rules as the generic Page.
func (c *Catalog) PageByName(page, size int) []*Product {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = store.DefaultPageSize
	}

	all := c.ListByName()
	start := (page - 1) * size
	if start >= len(all) {
		return []*Product{}
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
