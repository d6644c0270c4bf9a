package food

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/glycofit/backend/internal/models"
)

//go:embed data/foods.json
var defaultCatalog []byte

// datasetRow is one record of the reference dataset export.
type datasetRow struct {
	Name     string  `json:"Dish Name"`
	Calories float64 `json:"Calories (kcal)"`
	Carbs    float64 `json:"Carbohydrates (g)"`
	Protein  float64 `json:"Protein (g)"`
	Fat      float64 `json:"Fats (g)"`
	Sugar    float64 `json:"Free Sugar (g)"`
	Fiber    float64 `json:"Fibre (g)"`
	Sodium   float64 `json:"Sodium (mg)"`
}

// LoadCatalog decodes a JSON array in the reference dataset format.
// Rows without a name are skipped; later duplicates of a name are dropped.
func LoadCatalog(r io.Reader) ([]models.FoodItem, error) {
	var rows []datasetRow
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode food catalog: %w", err)
	}

	seen := make(map[string]bool, len(rows))
	items := make([]models.FoodItem, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" || seen[fold(name)] {
			continue
		}
		seen[fold(name)] = true
		items = append(items, models.FoodItem{
			Name:     name,
			Calories: row.Calories,
			Carbs:    row.Carbs,
			Protein:  row.Protein,
			Fat:      row.Fat,
			Sugar:    row.Sugar,
			Fiber:    row.Fiber,
			Sodium:   row.Sodium,
		})
	}
	return items, nil
}

// DefaultCatalog returns the dataset compiled into the binary.
func DefaultCatalog() ([]models.FoodItem, error) {
	return LoadCatalog(bytes.NewReader(defaultCatalog))
}
