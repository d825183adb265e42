package domain

// Consumption tip preference values offered by the onboarding wizard.
const (
	TipDirectComparisons = "direct-comparisons"
	TipDetailedAnalysis  = "detailed-analysis"
)

// Profile holds the user's onboarding answers. It is the only entity this
// application persists; there is a single instance per local client, stored
// under a fixed key.
type Profile struct {
	Name                     string   `json:"name"`
	Age                      string   `json:"age"`
	DietaryPreferences       []string `json:"dietaryPreferences"`
	HealthGoals              []string `json:"healthGoals"`
	Allergies                []string `json:"allergies"`
	ShoppingPreferences      []string `json:"shoppingPreferences"`
	ActivityLevel            string   `json:"activityLevel"`
	Alerts                   []string `json:"alerts"`
	SpecialInstructions      string   `json:"specialInstructions"`
	ConsumptionTipPreference string   `json:"consumptionTipPreference"`
	FavoriteFoods            []string `json:"favoriteFoods"`
}

// NewProfile returns an all-empty profile with multi-select fields
// initialized, the state a fresh wizard starts from.
func NewProfile() *Profile {
	return &Profile{
		DietaryPreferences:  []string{},
		HealthGoals:         []string{},
		Allergies:           []string{},
		ShoppingPreferences: []string{},
		Alerts:              []string{},
		FavoriteFoods:       []string{},
	}
}
