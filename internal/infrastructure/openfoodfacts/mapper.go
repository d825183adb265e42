package openfoodfacts

import "github.com/productgoat/backend/internal/domain"

// rawProduct is the subset of the Open Food Facts product document this
// application consumes.
type rawProduct struct {
	ID                       string                `json:"id"`
	Allergens                string                `json:"allergens"`
	AllergensFromIngredients string                `json:"allergens_from_ingredients"`
	AllergensTags            []string              `json:"allergens_tags"`
	Brands                   string                `json:"brands"`
	Code                     string                `json:"code"`
	FoodGroups               string                `json:"food_groups"`
	ImageFrontURL            string                `json:"image_front_url"`
	ImageIngredientsURL      string                `json:"image_ingredients_url"`
	ImageNutritionURL        string                `json:"image_nutrition_url"`
	ImagePackagingURL        string                `json:"image_packaging_url"`
	Ingredients              []domain.Ingredient   `json:"ingredients"`
	IngredientsAnalysisTags  []string              `json:"ingredients_analysis_tags"`
	NutrientLevels           domain.NutrientLevels `json:"nutrient_levels"`
	Nutriments               domain.Nutriments     `json:"nutriments"`
	NutriscoreGrade          string                `json:"nutriscore_grade"`
	NutriscoreScore          *float64              `json:"nutriscore_score"`
	ProductName              string                `json:"product_name"`
}

// mapProduct converts the nested API document into the normalized product
// record, the same shape the warehouse mapper produces.
func mapProduct(raw *rawProduct) *domain.Product {
	return &domain.Product{
		ProductID:                raw.ID,
		Allergens:                raw.Allergens,
		AllergensFromIngredients: raw.AllergensFromIngredients,
		AllergensTags:            raw.AllergensTags,
		Brand:                    raw.Brands,
		Code:                     raw.Code,
		FoodGroup:                raw.FoodGroups,
		ImageURLs: domain.ImageURLs{
			Front:       raw.ImageFrontURL,
			Ingredients: raw.ImageIngredientsURL,
			Nutrition:   raw.ImageNutritionURL,
			Packaging:   raw.ImagePackagingURL,
		},
		Ingredients:             raw.Ingredients,
		IngredientsAnalysisTags: raw.IngredientsAnalysisTags,
		NutrientLevels:          raw.NutrientLevels,
		Nutriments:              raw.Nutriments,
		NutriscoreGrade:         raw.NutriscoreGrade,
		NutriscoreScore:         raw.NutriscoreScore,
		ProductName:             raw.ProductName,
	}
}
