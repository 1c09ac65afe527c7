package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"StoreFront/internal/store"
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 500
	maxSKULen         = 50
)

// Product is a catalog item. Names are unique case-insensitively, enforced
// by Catalog.AddOrMerge rather than by rejecting duplicates. CategoryID is a
// plain foreign key with no referential-integrity enforcement.
type Product struct {
	store.Meta
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CategoryID  *int            `json:"category_id,omitempty"`
}

func validateProduct(p *Product) *store.ValidationError {
	var fields []store.FieldError

	if strings.TrimSpace(p.Name) == "" {
		fields = append(fields, store.FieldError{Field: "name", Message: "is required"})
	}
	if len(p.Name) > maxNameLen {
		fields = append(fields, store.FieldError{Field: "name", Message: "must be at most 100 characters"})
	}
	if len(p.Description) > maxDescriptionLen {
		fields = append(fields, store.FieldError{Field: "description", Message: "must be at most 500 characters"})
	}
	if len(p.SKU) > maxSKULen {
		fields = append(fields, store.FieldError{Field: "sku", Message: "must be at most 50 characters"})
	}
	if p.Price.IsNegative() {
		fields = append(fields, store.FieldError{Field: "price", Message: "must not be negative"})
	}
	if p.Quantity < 0 {
		fields = append(fields, store.FieldError{Field: "quantity", Message: "must not be negative"})
	}

	if len(fields) == 0 {
		return nil
	}
	return store.NewValidationError(fields...)
}

// mergeProduct applies the patch semantics for partial updates: only fields
// carrying a non-zero value overwrite the stored product.
func mergeProduct(existing, patch *Product) {
	if patch.Name != "" {
		existing.Name = patch.Name
	}
	if patch.Description != "" {
		existing.Description = patch.Description
	}
	if patch.SKU != "" {
		existing.SKU = patch.SKU
	}
	if !patch.Price.IsZero() {
		existing.Price = patch.Price
	}
	if patch.Quantity != 0 {
		existing.Quantity = patch.Quantity
	}
	if patch.CategoryID != nil {
		existing.CategoryID = patch.CategoryID
	}
}

func sortByName(products []*Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
	})
}
