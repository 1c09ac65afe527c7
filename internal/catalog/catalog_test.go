package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StoreFront/internal/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func addProduct(t *testing.T, c *Catalog, p *Product) *Product {
	t.Helper()
	added, err := c.AddOrMerge(p)
	require.NoError(t, err)
	return added
}

func TestAddOrMergeInsertsNewProduct(t *testing.T) {
	c := NewCatalog()

	p := addProduct(t, c, &Product{Name: "Cornflakes", Price: dec("2.52"), Quantity: 10})

	assert.Equal(t, 1, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, 1, c.Count())
}

func TestAddOrMergeMergesCaseInsensitively(t *testing.T) {
	c := NewCatalog()

	orig := addProduct(t, c, &Product{Name: "Cornflakes", Price: dec("2.52"), Quantity: 10})
	merged, err := c.AddOrMerge(&Product{Name: "CORNFLAKES", Quantity: 5})
	require.NoError(t, err)

	assert.Same(t, orig, merged, "merge returns the existing instance")
	assert.Equal(t, orig.ID, merged.ID, "no new ID on merge")
	assert.Equal(t, 15, merged.Quantity, "quantities accumulate")
	assert.Equal(t, 1, c.Count())
}

func TestAddOrMergePriceOverwrittenOnlyWhenPositive(t *testing.T) {
	c := NewCatalog()

	addProduct(t, c, &Product{Name: "Cornflakes", Price: dec("2.52"), Quantity: 1})

	merged, err := c.AddOrMerge(&Product{Name: "cornflakes", Quantity: 1})
	require.NoError(t, err)
	assert.True(t, merged.Price.Equal(dec("2.52")), "zero price does not overwrite")

	merged, err = c.AddOrMerge(&Product{Name: "cornflakes", Quantity: 1, Price: dec("3.10")})
	require.NoError(t, err)
	assert.True(t, merged.Price.Equal(dec("3.10")))
}

func TestAddOrMergeOptionalFieldsOverwriteOnlyWhenSet(t *testing.T) {
	c := NewCatalog()
	catID := 7

	addProduct(t, c, &Product{Name: "Cornflakes", Description: "breakfast", SKU: "CF-1", Quantity: 1})

	merged, err := c.AddOrMerge(&Product{Name: "cornflakes", Quantity: 0})
	require.NoError(t, err)
	assert.Equal(t, "breakfast", merged.Description)
	assert.Equal(t, "CF-1", merged.SKU)
	assert.Nil(t, merged.CategoryID)

	merged, err = c.AddOrMerge(&Product{Name: "cornflakes", Description: "cereal", SKU: "CF-2", CategoryID: &catID})
	require.NoError(t, err)
	assert.Equal(t, "cereal", merged.Description)
	assert.Equal(t, "CF-2", merged.SKU)
	require.NotNil(t, merged.CategoryID)
	assert.Equal(t, 7, *merged.CategoryID)
}

func TestAddOrMergeRejectsBadInput(t *testing.T) {
	c := NewCatalog()

	_, err := c.AddOrMerge(&Product{Name: "   "})
	assert.True(t, store.IsArgument(err))

	_, err = c.AddOrMerge(&Product{Name: "Cornflakes", Quantity: -1})
	assert.True(t, store.IsArgument(err))

	_, err = c.AddOrMerge(nil)
	assert.ErrorIs(t, err, store.ErrNilEntity)

	assert.Equal(t, 0, c.Count())
}

func TestQuantityOf(t *testing.T) {
	c := NewCatalog()
	addProduct(t, c, &Product{Name: "Cornflakes", Quantity: 9})

	qty, err := c.QuantityOf("cornFLAKES")
	require.NoError(t, err)
	assert.Equal(t, 9, qty)

	qty, err = c.QuantityOf("weetabix")
	require.NoError(t, err)
	assert.Equal(t, 0, qty)

	_, err = c.QuantityOf("  ")
	assert.True(t, store.IsArgument(err))
}

func TestGetByName(t *testing.T) {
	c := NewCatalog()
	addProduct(t, c, &Product{Name: "Cornflakes", Quantity: 1})

	p, ok, err := c.GetByName("CornFlakes")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Cornflakes", p.Name)

	_, ok, err = c.GetByName("granola")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestByCategorySortedByName(t *testing.T) {
	c := NewCatalog()
	cereal, snacks := 1, 2

	addProduct(t, c, &Product{Name: "Weetabix", Quantity: 1, CategoryID: &cereal})
	addProduct(t, c, &Product{Name: "Cornflakes", Quantity: 1, CategoryID: &cereal})
	addProduct(t, c, &Product{Name: "Crisps", Quantity: 1, CategoryID: &snacks})
	addProduct(t, c, &Product{Name: "Granola", Quantity: 1})

	got := c.ByCategory(cereal)
	require.Len(t, got, 2)
	assert.Equal(t, "Cornflakes", got[0].Name)
	assert.Equal(t, "Weetabix", got[1].Name)
}

func TestValidationAggregatesAllFieldErrors(t *testing.T) {
	c := NewCatalog()

	long := make([]byte, maxNameLen+1)
	for i := range long {
		long[i] = 'x'
	}

	_, err := c.Add(&Product{Name: string(long), Price: dec("-1")})
	require.Error(t, err)

	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.Equal(t, 0, c.Count())
}

func TestListByNameAndPaging(t *testing.T) {
	c := NewCatalog()
	for _, name := range []string{"weetabix", "Cornflakes", "granola", "Bran"} {
		addProduct(t, c, &Product{Name: name, Quantity: 1})
	}

	byName := c.ListByName()
	require.Len(t, byName, 4)
	assert.Equal(t, "Bran", byName[0].Name)
	assert.Equal(t, "Cornflakes", byName[1].Name)
	assert.Equal(t, "granola", byName[2].Name)
	assert.Equal(t, "weetabix", byName[3].Name)

	page := c.PageByName(2, 3)
	require.Len(t, page, 1)
	assert.Equal(t, "weetabix", page[0].Name)

	assert.Len(t, c.PageByName(0, 0), 4, "clamped page covers whole set")
}
