package domain

import "encoding/json"

// Product is the normalized product record consumed by all presentation and
// insight logic. Both product sources map into this one shape; fields a source
// does not carry stay zero rather than being filled with display defaults.
type Product struct {
	ProductID                string         `json:"productID"`
	Code                     string         `json:"code"`
	Brand                    string         `json:"brand,omitempty"`
	ProductName              string         `json:"productName,omitempty"`
	FoodGroup                string         `json:"foodGroup,omitempty"`
	Allergens                string         `json:"allergens,omitempty"`
	AllergensFromIngredients string         `json:"allergensFromIngredients,omitempty"`
	AllergensTags            []string       `json:"allergensTags,omitempty"`
	Ingredients              []Ingredient   `json:"ingredients,omitempty"`
	IngredientsAnalysisTags  []string       `json:"ingredientsAnalysisTags,omitempty"`
	ImageURLs                ImageURLs      `json:"imageUrls"`
	NutrientLevels           NutrientLevels `json:"nutrientLevels,omitempty"`
	Nutriments               Nutriments     `json:"nutriments,omitempty"`
	NutriscoreGrade          string         `json:"nutriscoreGrade,omitempty"`
	NutriscoreScore          *float64       `json:"nutriscoreScore,omitempty"`
}

// Ingredient is a single entry of a product's structured ingredient list.
// Field names follow the Open Food Facts ingredient taxonomy.
type Ingredient struct {
	ID              string   `json:"id,omitempty"`
	Text            string   `json:"text,omitempty"`
	PercentEstimate *float64 `json:"percent_estimate,omitempty"`
	Vegan           string   `json:"vegan,omitempty"`
	Vegetarian      string   `json:"vegetarian,omitempty"`
}

// ImageURLs maps the four product image slots to URLs. Absent slots stay empty.
type ImageURLs struct {
	Front       string `json:"front,omitempty"`
	Ingredients string `json:"ingredients,omitempty"`
	Nutrition   string `json:"nutrition,omitempty"`
	Packaging   string `json:"packaging,omitempty"`
}

// Nutriments maps nutrient keys (e.g. "carbohydrates", "energy-kcal") to
// numeric quantities. Source documents mix numeric values with unit strings
// ("energy-kcal_unit": "kcal"), so decoding keeps only the numeric entries
// and every consumer sees the same shape regardless of origin.
type Nutriments map[string]float64

// UnmarshalJSON keeps numeric entries and drops everything else.
func (n *Nutriments) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m := make(Nutriments, len(raw))
	for key, value := range raw {
		if f, ok := value.(float64); ok {
			m[key] = f
		}
	}
	*n = m
	return nil
}

// NutrientLevels maps nutrient keys to qualitative levels
// ("low", "moderate", "high"). Unknown nutrients are simply absent.
type NutrientLevels map[string]string

// UnmarshalJSON keeps string entries and drops everything else.
func (n *NutrientLevels) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m := make(NutrientLevels, len(raw))
	for key, value := range raw {
		if s, ok := value.(string); ok {
			m[key] = s
		}
	}
	*n = m
	return nil
}
