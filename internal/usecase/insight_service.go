package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/productgoat/backend/internal/domain"
	"go.uber.org/zap"
)

// exampleProfile stands in when no onboarding profile has been persisted, so
// the generation prompt always has a concrete persona to reason about.
// Insight generation must never block on onboarding completion.
var exampleProfile = &domain.Profile{
	Name:                     "User",
	Age:                      "28",
	DietaryPreferences:       []string{"vegan", "gluten-free"},
	HealthGoals:              []string{"weight-management", "improve-gut-health"},
	Allergies:                []string{"nuts", "soy"},
	ShoppingPreferences:      []string{"organic", "moderate-budget"},
	ActivityLevel:            "moderately-active",
	Alerts:                   []string{"sugar", "high-sodium"},
	SpecialInstructions:      "Display eco-friendly product options",
	ConsumptionTipPreference: domain.TipDirectComparisons,
	FavoriteFoods:            []string{"Kale", "Quinoa", "Almond milk"},
}

// InsightService requests a generated markdown summary for a resolved
// product. One round trip to the generation service per product view; the
// result is never cached.
type InsightService struct {
	generator domain.TextGenerator
	profiles  domain.ProfileRepository
	log       *zap.SugaredLogger
}

// NewInsightService creates an insight service. The generator may be nil when
// the generation backend is unconfigured; Generate then fails with
// ErrInsightGeneration and the rest of the product view stays functional.
func NewInsightService(generator domain.TextGenerator, profiles domain.ProfileRepository, log *zap.SugaredLogger) *InsightService {
	return &InsightService{
		generator: generator,
		profiles:  profiles,
		log:       log,
	}
}

// Generate builds the analysis prompt for the product and the stored profile
// (or the built-in example profile when none exists) and performs a single
// generation call.
func (s *InsightService) Generate(ctx context.Context, product *domain.Product) (string, error) {
	if s.generator == nil {
		return "", fmt.Errorf("%w: generation service not configured", domain.ErrInsightGeneration)
	}

	profile, err := s.profiles.Load(ctx)
	if err != nil {
		s.log.Debugw("no stored profile, using example profile", "reason", err)
		profile = exampleProfile
	}

	prompt, err := buildInsightPrompt(product, profile)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInsightGeneration, err)
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.log.Warnw("insight generation failed", "barcode", product.Code, "error", err)
		return "", fmt.Errorf("%w: %v", domain.ErrInsightGeneration, err)
	}
	return text, nil
}

// insightInstructions is the fixed analysis brief sent with every product.
const insightInstructions = `Analyze the ingredient data of the scanned food item and provide a clear, one-line summary of its nutritional characteristics. Consider key indicators and offer personalized consumption advice based on the user's health profile. Follow these guidelines:

1. Carbohydrate & Sugar Content: Mention if the food is high or low in carbohydrates and sugar relative to fiber, protein, and fat. Provide a consumption tip based on balance and portion control.

2. Blood Sugar Index: Indicate whether the food has a high, moderate, or low impact on blood sugar. Tailor guidance based on potential effects on energy and blood glucose levels.

3. Potassium/Sodium Ratio: Summarize the potassium-to-sodium balance. If sodium is high and potassium low, advise caution for users monitoring blood pressure.

4. Potential Renal Acid Load (PRAL) Score: Note the PRAL score, indicating if the food is acidic or alkaline. Suggest moderation if the user has dietary restrictions related to acid levels.

5. Amino Acid Completeness: Evaluate if the food provides a complete amino acid profile or lacks certain essential amino acids. Suggest complementary foods if necessary.

6. Other Key Indicators: Highlight any other key nutrients or potential dietary concerns (e.g., additives, trans fats). Offer brief, actionable advice for healthier choices.

Give the answer in markdown form containing 4 insights with a title and a one-line description each.`

// buildInsightPrompt embeds the instruction text, the profile, and the
// product record into a single textual prompt.
func buildInsightPrompt(product *domain.Product, profile *domain.Profile) (string, error) {
	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode profile: %w", err)
	}
	productJSON, err := json.MarshalIndent(product, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode product: %w", err)
	}

	return fmt.Sprintf(`%s

{USER DATA}
%s
{USER DATA}

{PRODUCT JSON}
%s
{PRODUCT JSON}
`, insightInstructions, profileJSON, productJSON), nil
}
