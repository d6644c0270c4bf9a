package food

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	data := `[
		{"Dish Name": "Idli", "Calories (kcal)": 132, "Carbohydrates (g)": 27.1, "Protein (g)": 4.1, "Fats (g)": 0.4, "Free Sugar (g)": 0.3, "Fibre (g)": 1.5, "Sodium (mg)": 290},
		{"Dish Name": "  ", "Calories (kcal)": 10},
		{"Dish Name": "IDLI", "Calories (kcal)": 999}
	]`

	items, err := LoadCatalog(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Idli", items[0].Name)
	assert.Equal(t, 132.0, items[0].Calories)
	assert.Equal(t, 290.0, items[0].Sodium)
}

func TestLoadCatalogRejectsMalformedInput(t *testing.T) {
	_, err := LoadCatalog(strings.NewReader(`{"Dish Name": "Idli"}`))
	assert.Error(t, err)
}

func TestDefaultCatalogResolvesAlternateNames(t *testing.T) {
	items, err := DefaultCatalog()
	require.NoError(t, err)
	require.NotEmpty(t, items)

	r := NewResolver(items)
	item, ok := r.Resolve("chawal")
	require.True(t, ok)
	assert.Equal(t, "Plain Rice (Chawal)", item.Name)

	item, ok = r.Resolve("rajma")
	require.True(t, ok)
	assert.Equal(t, "Kidney Bean Curry (Rajma)", item.Name)
}
