package catalog

import (
	"sort"
	"strings"
)

// Relevance weights for search ranking. Scores are additive: an exact name
// match that also appears in the description scores 100+50+25.
const (
	scoreExactName    = 100
	scoreNameContains = 50
	scoreSKUContains  = 30
	scoreDescContains = 25
)

// Search returns products matching the term, ordered by descending
// relevance. A blank term returns the full ID-ordered listing. When
// categoryID is non-nil only products of that category are considered.
//
// A product matches when the term appears case-insensitively in its name,
// description or SKU, or when the name is a near-miss of the term per
// likelyMatch.
func (c *Catalog) Search(term string, categoryID *int) []*Product {
	if strings.TrimSpace(term) == "" {
		return c.List()
	}

	matches := c.Find(func(p *Product) bool {
		if categoryID != nil && (p.CategoryID == nil || *p.CategoryID != *categoryID) {
			return false
		}
		return matchesTerm(p, term)
	})

	sort.SliceStable(matches, func(i, j int) bool {
		return relevance(matches[i], term) > relevance(matches[j], term)
	})
	return matches
}

func matchesTerm(p *Product, term string) bool {
	if containsFold(p.Name, term) {
		return true
	}
	if p.Description != "" && containsFold(p.Description, term) {
		return true
	}
	if p.SKU != "" && containsFold(p.SKU, term) {
		return true
	}
	return likelyMatch(p.Name, term)
}

func relevance(p *Product, term string) int {
	score := 0
	if strings.EqualFold(p.Name, term) {
		score += scoreExactName
	}
	if containsFold(p.Name, term) {
		score += scoreNameContains
	}
	if p.Description != "" && containsFold(p.Description, term) {
		score += scoreDescContains
	}
	if p.SKU != "" && containsFold(p.SKU, term) {
		score += scoreSKUContains
	}
	return score
}

// likelyMatch accepts a name whose length is within 2 of the term's and
// whose position-aligned characters differ in at most 2 places over the
// shared prefix. This is a positional heuristic, not an edit distance:
// characters shifted by an insertion count as mismatches from that point on.
// Search behavior depends on those quirks, so they are kept.
func likelyMatch(name, term string) bool {
	nr := []rune(strings.ToLower(name))
	tr := []rune(strings.ToLower(term))

	delta := len(nr) - len(tr)
	if delta < -2 || delta > 2 {
		return false
	}

	diffs := 0
	for i := 0; i < min(len(nr), len(tr)); i++ {
		if nr[i] != tr[i] {
			diffs++
			if diffs > 2 {
				return false
			}
		}
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
