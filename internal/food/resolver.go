// Package food resolves free-text food names against the reference catalog
// and scales per-100 g nutrients to a logged quantity.
package food

import (
	"math"
	"sort"
	"strings"

	"github.com/glycofit/backend/internal/models"
)

const (
	DefaultSearchLimit           = 10
	MaxSuggestions               = 8
	DefaultDiabeticFriendlyLimit = 20
	minQueryLength               = 2

	diabeticMaxSugar = 5.0
	diabeticMinFiber = 2.0
)

// Nutrition is a resolved food scaled to a quantity in grams.
type Nutrition struct {
	FoodName string  `json:"foodName"`
	Quantity float64 `json:"quantity"`
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Sugar    float64 `json:"sugar"`
	Fiber    float64 `json:"fiber"`
	Sodium   float64 `json:"sodium"`

	// MatchedBy names the strategy that resolved the food.
	MatchedBy string `json:"-"`
}

// Resolver is an immutable view over a catalog and is safe for concurrent use.
type Resolver struct {
	items      []models.FoodItem
	entries    []Entry
	strategies []MatchStrategy
}

// NewResolver builds a resolver over items. Without strategies the default chain is used.
func NewResolver(items []models.FoodItem, strategies ...MatchStrategy) *Resolver {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	r := &Resolver{
		items:      append([]models.FoodItem(nil), items...),
		entries:    make([]Entry, len(items)),
		strategies: strategies,
	}
	for i, item := range r.items {
		r.entries[i] = newEntry(i, item.Name)
	}
	return r
}

// Len returns the catalog size.
func (r *Resolver) Len() int {
	return len(r.items)
}

// Resolve returns the first catalog item matched by the strategy chain.
func (r *Resolver) Resolve(name string) (models.FoodItem, bool) {
	item, _, ok := r.Lookup(name)
	return item, ok
}

// Lookup is Resolve that also reports the name of the matching strategy.
func (r *Resolver) Lookup(name string) (models.FoodItem, string, bool) {
	query := fold(name)
	if query == "" {
		return models.FoodItem{}, "", false
	}
	for _, s := range r.strategies {
		if i, ok := s.Match(query, r.entries); ok && i >= 0 && i < len(r.items) {
			return r.items[i], s.Name(), true
		}
	}
	return models.FoodItem{}, "", false
}

// Compute resolves name and scales its nutrients to grams.
func (r *Resolver) Compute(name string, grams float64) (Nutrition, bool) {
	item, stage, ok := r.Lookup(name)
	if !ok {
		return Nutrition{}, false
	}
	n := Scale(item, grams)
	n.MatchedBy = stage
	return n, true
}

// Scale multiplies every per-100 g field by grams/100, rounding each to two decimals.
func Scale(item models.FoodItem, grams float64) Nutrition {
	m := grams / 100
	return Nutrition{
		FoodName: item.Name,
		Quantity: grams,
		Calories: round2(item.Calories * m),
		Carbs:    round2(item.Carbs * m),
		Protein:  round2(item.Protein * m),
		Fat:      round2(item.Fat * m),
		Sugar:    round2(item.Sugar * m),
		Fiber:    round2(item.Fiber * m),
		Sodium:   round2(item.Sodium * m),
	}
}

// Search lists items whose name or alternate name contains query.
func (r *Resolver) Search(query string, limit int) []models.FoodItem {
	term := fold(query)
	if len([]rune(term)) < minQueryLength {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	var out []models.FoodItem
	for _, e := range r.entries {
		if strings.Contains(e.Name, term) || e.MatchesAlternate(term) {
			out = append(out, r.items[e.Index])
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Suggestions returns up to eight catalog names for autocompletion, prefix matches first.
func (r *Resolver) Suggestions(partial string) []string {
	term := fold(partial)
	if len([]rune(term)) < minQueryLength {
		return nil
	}
	var prefixed, others []string
	for _, e := range r.entries {
		switch {
		case strings.HasPrefix(e.Name, term):
			prefixed = append(prefixed, r.items[e.Index].Name)
		case strings.Contains(e.Name, term) || e.MatchesAlternate(term):
			others = append(others, r.items[e.Index].Name)
		}
	}
	out := append(prefixed, others...)
	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

// DiabeticFriendly lists low-sugar, high-fiber items, most fiber first.
func (r *Resolver) DiabeticFriendly(limit int) []models.FoodItem {
	if limit <= 0 {
		limit = DefaultDiabeticFriendlyLimit
	}
	var out []models.FoodItem
	for _, item := range r.items {
		if item.Sugar <= diabeticMaxSugar && item.Fiber >= diabeticMinFiber {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Fiber > out[j].Fiber })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
