package food

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glycofit/backend/internal/models"
)

func testCatalog() []models.FoodItem {
	return []models.FoodItem{
		{Name: "Brown Rice", Calories: 111, Carbs: 23, Protein: 2.6, Fat: 0.9, Sugar: 0.4, Fiber: 1.8, Sodium: 5},
		{Name: "Rice", Calories: 130, Carbs: 28.2, Protein: 2.7, Fat: 0.3, Sugar: 0.1, Fiber: 0.4, Sodium: 1},
		{Name: "Lentil Soup (Dal/Daal)", Calories: 116, Carbs: 16.3, Protein: 7.6, Fat: 1.9, Sugar: 0.9, Fiber: 4.5, Sodium: 238},
		{Name: "Chicken Curry", Calories: 172, Carbs: 4.8, Protein: 16.5, Fat: 9.9, Sugar: 1.8, Fiber: 1, Sodium: 380},
		{Name: "Guava (Amrood)", Calories: 68, Carbs: 14.3, Protein: 2.6, Fat: 1, Sugar: 8.9, Fiber: 5.4, Sodium: 2},
		{Name: "Roasted Chana", Calories: 369, Carbs: 58, Protein: 22.5, Fat: 5.2, Sugar: 1.5, Fiber: 16.8, Sodium: 29},
	}
}

func TestResolveExactMatchWinsOverSubstring(t *testing.T) {
	r := NewResolver(testCatalog())

	item, ok := r.Resolve("rice")
	require.True(t, ok)
	assert.Equal(t, "Rice", item.Name)

	item, ok = r.Resolve("  RICE ")
	require.True(t, ok)
	assert.Equal(t, "Rice", item.Name)
}

func TestResolveSubstringEitherDirection(t *testing.T) {
	r := NewResolver(testCatalog())

	item, ok := r.Resolve("brown")
	require.True(t, ok)
	assert.Equal(t, "Brown Rice", item.Name)

	item, ok = r.Resolve("homemade chicken curry")
	require.True(t, ok)
	assert.Equal(t, "Chicken Curry", item.Name)
}

func TestResolveAlternateName(t *testing.T) {
	r := NewResolver(testCatalog())

	item, ok := r.Resolve("Daal Tadka")
	require.True(t, ok)
	assert.Equal(t, "Lentil Soup (Dal/Daal)", item.Name)

	item, ok = r.Resolve("amrood")
	require.True(t, ok)
	assert.Equal(t, "Guava (Amrood)", item.Name)
}

func TestResolveWordFallback(t *testing.T) {
	r := NewResolver(testCatalog())

	item, ok := r.Resolve("spicy chicken wings")
	require.True(t, ok)
	assert.Equal(t, "Chicken Curry", item.Name)

	_, ok = r.Resolve("an ox")
	assert.False(t, ok, "words of two characters or fewer never match")
}

func TestResolveNotFound(t *testing.T) {
	r := NewResolver(testCatalog())

	for _, q := range []string{"pizza", "", "   "} {
		_, ok := r.Resolve(q)
		assert.False(t, ok, q)
	}

	_, ok := NewResolver(nil).Resolve("rice")
	assert.False(t, ok)
}

func TestResolveCustomStrategyChain(t *testing.T) {
	r := NewResolver(testCatalog(), ExactMatch{})

	_, ok := r.Resolve("brown")
	assert.False(t, ok)
}

// aliasMatch maps fixed nicknames onto catalog names.
type aliasMatch map[string]string

func (aliasMatch) Name() string { return "alias" }

func (a aliasMatch) Match(query string, entries []Entry) (int, bool) {
	target, ok := a[query]
	if !ok {
		return 0, false
	}
	for _, e := range entries {
		if e.Name == target {
			return e.Index, true
		}
	}
	return 0, false
}

func TestLookupReportsMatchingStage(t *testing.T) {
	r := NewResolver(testCatalog())

	tests := []struct {
		query string
		want  string
		stage string
	}{
		{"rice", "Rice", "exact"},
		{"brown", "Brown Rice", "partial"},
		{"daal", "Lentil Soup (Dal/Daal)", "partial"},
		{"spicy chicken wings", "Chicken Curry", "word"},
	}
	for _, tt := range tests {
		item, stage, ok := r.Lookup(tt.query)
		require.True(t, ok, tt.query)
		assert.Equal(t, tt.want, item.Name, tt.query)
		assert.Equal(t, tt.stage, stage, tt.query)
	}

	_, stage, ok := r.Lookup("pizza")
	assert.False(t, ok)
	assert.Empty(t, stage)
}

func TestResolvePluggableStrategy(t *testing.T) {
	r := NewResolver(testCatalog(), ExactMatch{}, aliasMatch{"chawal": "rice", "bhuna chana": "roasted chana"})

	item, stage, ok := r.Lookup("Chawal")
	require.True(t, ok)
	assert.Equal(t, "Rice", item.Name)
	assert.Equal(t, "alias", stage)

	n, ok := r.Compute("bhuna chana", 50)
	require.True(t, ok)
	assert.Equal(t, "Roasted Chana", n.FoodName)
	assert.Equal(t, "alias", n.MatchedBy)

	_, ok = r.Resolve("brown")
	assert.False(t, ok)
}

func TestComputeScalesAndRounds(t *testing.T) {
	r := NewResolver(testCatalog())

	n, ok := r.Compute("Rice", 150)
	require.True(t, ok)
	assert.Equal(t, Nutrition{
		FoodName:  "Rice",
		Quantity:  150,
		Calories:  195,
		Carbs:     42.3,
		Protein:   4.05,
		Fat:       0.45,
		Sugar:     0.15,
		Fiber:     0.6,
		Sodium:    1.5,
		MatchedBy: "exact",
	}, n)

	n, ok = r.Compute("chicken curry", 33)
	require.True(t, ok)
	assert.Equal(t, 56.76, n.Calories)
	assert.Equal(t, 1.58, n.Carbs)
	assert.Equal(t, 5.45, n.Protein)

	_, ok = r.Compute("pizza", 100)
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	r := NewResolver(testCatalog())

	got := r.Search("ri", 0)
	require.Len(t, got, 2)
	assert.Equal(t, "Brown Rice", got[0].Name)
	assert.Equal(t, "Rice", got[1].Name)

	assert.Len(t, r.Search("ri", 1), 1)
	assert.Empty(t, r.Search("r", 10))

	got = r.Search("daal", 10)
	require.Len(t, got, 1)
	assert.Equal(t, "Lentil Soup (Dal/Daal)", got[0].Name)
}

func TestSuggestionsPreferPrefix(t *testing.T) {
	r := NewResolver(testCatalog())

	assert.Equal(t, []string{"Rice", "Brown Rice"}, r.Suggestions("ri"))
	assert.Nil(t, r.Suggestions("c"))

	items := make([]models.FoodItem, 0, 12)
	for _, n := range []string{"Tea", "Green Tea", "Masala Tea", "Lemon Tea", "Iced Tea", "Mint Tea", "Ginger Tea", "Black Tea", "Milk Tea", "Tulsi Tea"} {
		items = append(items, models.FoodItem{Name: n})
	}
	assert.Len(t, NewResolver(items).Suggestions("tea"), MaxSuggestions)
}

func TestDiabeticFriendly(t *testing.T) {
	r := NewResolver(testCatalog())

	got := r.DiabeticFriendly(0)
	names := make([]string, len(got))
	for i, item := range got {
		names[i] = item.Name
	}
	// Guava fails the sugar limit; rice fails the fiber floor.
	assert.Equal(t, []string{"Roasted Chana", "Lentil Soup (Dal/Daal)"}, names)
	assert.Len(t, r.DiabeticFriendly(1), 1)
}
