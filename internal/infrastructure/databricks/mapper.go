package databricks

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/productgoat/backend/internal/domain"
)

// Column positions of the product table as returned by the statement
// execution endpoint. Positions 13-16 hold JSON-encoded sub-documents.
const (
	colProductID = iota
	colAllergens
	colAllergensFromIngredients
	colAllergensTags
	colBrand
	colCode
	colFoodGroup
	_ // 7 unused
	colImageFront
	colImageIngredients
	colImageNutrition
	colImagePackaging
	_ // 12 unused
	colIngredients
	colIngredientsAnalysisTags
	colNutrientLevels
	colNutriments
	colNutriscoreGrade
	colNutriscoreScore
	colProductName
)

// mapRow converts one positional warehouse row into the normalized product
// record. A decode failure on any sub-document column is ErrPrimaryDecode,
// which the resolver treats like a miss and falls through to the fallback.
func mapRow(row []any) (*domain.Product, error) {
	product := &domain.Product{
		ProductID:                stringAt(row, colProductID),
		Allergens:                stringAt(row, colAllergens),
		AllergensFromIngredients: stringAt(row, colAllergensFromIngredients),
		AllergensTags:            splitTags(stringAt(row, colAllergensTags)),
		Brand:                    stringAt(row, colBrand),
		Code:                     stringAt(row, colCode),
		FoodGroup:                stringAt(row, colFoodGroup),
		ImageURLs: domain.ImageURLs{
			Front:       stringAt(row, colImageFront),
			Ingredients: stringAt(row, colImageIngredients),
			Nutrition:   stringAt(row, colImageNutrition),
			Packaging:   stringAt(row, colImagePackaging),
		},
		NutriscoreGrade: stringAt(row, colNutriscoreGrade),
		NutriscoreScore: floatAt(row, colNutriscoreScore),
		ProductName:     stringAt(row, colProductName),
	}

	if err := decodeColumn(row, colIngredients, &product.Ingredients); err != nil {
		return nil, fmt.Errorf("%w: ingredients: %v", domain.ErrPrimaryDecode, err)
	}
	if err := decodeColumn(row, colIngredientsAnalysisTags, &product.IngredientsAnalysisTags); err != nil {
		return nil, fmt.Errorf("%w: ingredients analysis tags: %v", domain.ErrPrimaryDecode, err)
	}
	if err := decodeColumn(row, colNutrientLevels, &product.NutrientLevels); err != nil {
		return nil, fmt.Errorf("%w: nutrient levels: %v", domain.ErrPrimaryDecode, err)
	}
	if err := decodeColumn(row, colNutriments, &product.Nutriments); err != nil {
		return nil, fmt.Errorf("%w: nutriments: %v", domain.ErrPrimaryDecode, err)
	}

	return product, nil
}

// decodeColumn decodes a JSON-encoded sub-document column into dst.
// A NULL or empty column is absent data, not a decode failure.
func decodeColumn(row []any, idx int, dst any) error {
	text := stringAt(row, idx)
	if text == "" {
		return nil
	}
	return json.Unmarshal([]byte(text), dst)
}

// stringAt returns the column as a string, treating NULL and short rows as absent.
func stringAt(row []any, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	switch v := row[idx].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// floatAt returns the column as a number if present. The statement endpoint
// serializes row values as strings, so both forms are accepted.
func floatAt(row []any, idx int) *float64 {
	if idx >= len(row) || row[idx] == nil {
		return nil
	}
	switch v := row[idx].(type) {
	case float64:
		return &v
	case string:
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// splitTags splits a comma-separated tag column ("en:milk,en:nuts") into a
// normalized tag list.
func splitTags(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.Split(text, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}
