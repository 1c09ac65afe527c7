package catalog

import (
	"sort"
	"strings"

	"StoreFront/internal/store"
)

// Category is a flat record; child relationships are derived from
// ParentCategoryID on demand and never stored. There is no cycle detection
// on the parent reference.
type Category struct {
	store.Meta
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	ParentCategoryID *int   `json:"parent_category_id,omitempty"`
}

// CategoryNode is the transient tree view of a category. Nodes are rebuilt
// from the flat store on every Tree call.
type CategoryNode struct {
	*Category
	Children []*CategoryNode `json:"children"`
}

func validateCategory(c *Category) *store.ValidationError {
	var fields []store.FieldError

	if strings.TrimSpace(c.Name) == "" {
		fields = append(fields, store.FieldError{Field: "name", Message: "is required"})
	}
	if len(c.Name) > maxNameLen {
		fields = append(fields, store.FieldError{Field: "name", Message: "must be at most 100 characters"})
	}
	if len(c.Description) > maxDescriptionLen {
		fields = append(fields, store.FieldError{Field: "description", Message: "must be at most 500 characters"})
	}

	if len(fields) == 0 {
		return nil
	}
	return store.NewValidationError(fields...)
}

func mergeCategory(existing, patch *Category) {
	if patch.Name != "" {
		existing.Name = patch.Name
	}
	if patch.Description != "" {
		existing.Description = patch.Description
	}
	if patch.ParentCategoryID != nil {
		existing.ParentCategoryID = patch.ParentCategoryID
	}
}

// Categories stores the flat category collection.
type Categories struct {
	*store.Store[*Category]
}

func NewCategories() *Categories {
	return &Categories{Store: store.New(validateCategory, mergeCategory)}
}

// Tree groups the flat collection by ParentCategoryID and returns the root
// categories (those without a parent) sorted by name, each carrying its
// children sorted by name. A category whose parent no longer exists is
// neither a root nor attached anywhere, so it drops out of the view.
func (c *Categories) Tree() []*CategoryNode {
	all := c.List()

	nodes := make(map[int]*CategoryNode, len(all))
	for _, cat := range all {
		nodes[cat.ID] = &CategoryNode{Category: cat, Children: []*CategoryNode{}}
	}

	roots := make([]*CategoryNode, 0)
	for _, cat := range all {
		if cat.ParentCategoryID == nil {
			roots = append(roots, nodes[cat.ID])
			continue
		}
		if parent, ok := nodes[*cat.ParentCategoryID]; ok {
			parent.Children = append(parent.Children, nodes[cat.ID])
		}
	}

	for _, n := range nodes {
		sortNodes(n.Children)
	}
	sortNodes(roots)
	return roots
}

func sortNodes(nodes []*CategoryNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return strings.ToLower(nodes[i].Name) < strings.ToLower(nodes[j].Name)
	})
}
