package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSearchCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog()
	cereal, snacks := 1, 2

	for _, p := range []*Product{
		{Name: "Cornflakes", Description: "classic breakfast cereal", SKU: "CER-001", Quantity: 5, CategoryID: &cereal},
		{Name: "Cornflakes Deluxe", Description: "with extra crunch", SKU: "CER-002", Quantity: 5, CategoryID: &cereal},
		{Name: "Weetabix", Description: "whole grain", SKU: "CER-003", Quantity: 5, CategoryID: &cereal},
		{Name: "Crisps", Description: "salted snack, goes well with cornflakes apparently", SKU: "SNK-001", Quantity: 5, CategoryID: &snacks},
	} {
		addProduct(t, c, p)
	}
	return c
}

func TestSearchBlankTermReturnsFullListing(t *testing.T) {
	c := seedSearchCatalog(t)

	got := c.Search("   ", nil)
	want := c.List()

	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
	}
}

func TestSearchOrdersByRelevance(t *testing.T) {
	c := seedSearchCatalog(t)

	got := c.Search("cornflakes", nil)
	require.Len(t, got, 3)

	// Exact name match (100+50) beats name-contains (50) beats
	// description-contains (25).
	assert.Equal(t, "Cornflakes", got[0].Name)
	assert.Equal(t, "Cornflakes Deluxe", got[1].Name)
	assert.Equal(t, "Crisps", got[2].Name)
}

func TestSearchScoresAreAdditive(t *testing.T) {
	c := NewCatalog()
	addProduct(t, c, &Product{Name: "Granola", Description: "granola clusters", SKU: "GRN-granola", Quantity: 1})

	p := c.Search("granola", nil)[0]
	assert.Equal(t, scoreExactName+scoreNameContains+scoreDescContains+scoreSKUContains, relevance(p, "granola"))
}

func TestSearchMatchesSKU(t *testing.T) {
	c := seedSearchCatalog(t)

	got := c.Search("SNK", nil)
	require.Len(t, got, 1)
	assert.Equal(t, "Crisps", got[0].Name)
}

func TestSearchFiltersByCategory(t *testing.T) {
	c := seedSearchCatalog(t)
	snacks := 2

	got := c.Search("cornflakes", &snacks)
	require.Len(t, got, 1)
	assert.Equal(t, "Crisps", got[0].Name)
}

func TestSearchFindsFuzzyNameMatch(t *testing.T) {
	c := seedSearchCatalog(t)

	// One aligned mismatch, length delta 1.
	got := c.Search("cornflaks", nil)

	names := make([]string, 0, len(got))
	for _, p := range got {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "Cornflakes")
}

func TestLikelyMatchMismatchBoundary(t *testing.T) {
	// "cornflukes" differs from "cornflakes" in 1 aligned position,
	// "cornflukez" in 2, "cornflukiz" in 3.
	assert.True(t, likelyMatch("Cornflakes", "cornflukes"))
	assert.True(t, likelyMatch("Cornflakes", "cornflukez"))
	assert.False(t, likelyMatch("Cornflakes", "cornflukiz"))
}

func TestLikelyMatchLengthDeltaBoundary(t *testing.T) {
	// Shared prefix matches fully; only the length delta decides.
	assert.True(t, likelyMatch("Cornflakes", "cornflakesxy"))
	assert.False(t, likelyMatch("Cornflakes", "cornflakesxyz"))

	assert.True(t, likelyMatch("Cornflakes", "cornflak"))
	assert.False(t, likelyMatch("Cornflakes", "cornfla"))
}

func TestLikelyMatchIsPositionalNotEditDistance(t *testing.T) {
	// A single dropped leading character shifts every later position, so a
	// true edit distance of 1 still fails the aligned comparison.
	assert.False(t, likelyMatch("Cornflakes", "ornflakesx"))

	// An adjacent transposition costs 2 aligned mismatches and squeaks in.
	assert.True(t, likelyMatch("Cornflakes", "cornflakse"))
}
