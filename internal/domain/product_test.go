package domain

import (
	"encoding/json"
	"testing"
)

func TestNutrimentsUnmarshal(t *testing.T) {
	input := `{
		"carbohydrates": 57.5,
		"energy-kcal": 539,
		"energy-kcal_unit": "kcal",
		"fat_100g": 30.9,
		"nutrition-score-fr": "26"
	}`

	var n Nutriments
	if err := json.Unmarshal([]byte(input), &n); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if n["carbohydrates"] != 57.5 {
		t.Errorf("carbohydrates = %v, want 57.5", n["carbohydrates"])
	}
	if n["energy-kcal"] != 539 {
		t.Errorf("energy-kcal = %v, want 539", n["energy-kcal"])
	}
	if _, ok := n["energy-kcal_unit"]; ok {
		t.Error("unit string survived into the numeric map")
	}
	if _, ok := n["nutrition-score-fr"]; ok {
		t.Error("string-typed score survived into the numeric map")
	}
}

func TestNutrientLevelsUnmarshal(t *testing.T) {
	input := `{"fat": "high", "salt": "low", "sugars-value": 47.5}`

	var n NutrientLevels
	if err := json.Unmarshal([]byte(input), &n); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if n["fat"] != "high" || n["salt"] != "low" {
		t.Errorf("levels = %v", n)
	}
	if _, ok := n["sugars-value"]; ok {
		t.Error("numeric entry survived into the level map")
	}
}

func TestProductJSONShape(t *testing.T) {
	score := 26.0
	product := &Product{
		ProductID:       "prod-1",
		Code:            "3017620422003",
		ProductName:     "Nutella",
		Nutriments:      Nutriments{"carbohydrates": 57.5},
		NutriscoreScore: &score,
	}

	data, err := json.Marshal(product)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]any
	json.Unmarshal(data, &decoded)
	for _, key := range []string{"productID", "code", "productName", "nutriments", "nutriscoreScore"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("marshalled product is missing %q", key)
		}
	}
	// Empty optional fields stay off the wire
	if _, ok := decoded["brand"]; ok {
		t.Error("empty brand serialized")
	}
}
