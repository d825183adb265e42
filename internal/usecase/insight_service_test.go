package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/productgoat/backend/internal/domain"
)

// fakeProfiles is an in-memory profile repository.
type fakeProfiles struct {
	profile *domain.Profile
	saved   *domain.Profile
	saveErr error
}

func (f *fakeProfiles) Load(ctx context.Context) (*domain.Profile, error) {
	if f.profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	return f.profile, nil
}

func (f *fakeProfiles) Save(ctx context.Context, profile *domain.Profile) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = profile
	f.profile = profile
	return nil
}

func (f *fakeProfiles) Exists(ctx context.Context) (bool, error) {
	return f.profile != nil, nil
}

// fakeGenerator records the last prompt it was asked to complete.
type fakeGenerator struct {
	text   string
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func insightProduct() *domain.Product {
	return &domain.Product{
		Code:        "3017620422003",
		ProductName: "Nutella",
		Nutriments:  domain.Nutriments{"carbohydrates": 57.5, "energy-kcal": 539},
	}
}

func TestGenerate_WithStoredProfile(t *testing.T) {
	profile := domain.NewProfile()
	profile.Name = "Dana"
	profile.Allergies = []string{"peanuts"}

	gen := &fakeGenerator{text: "## Insights"}
	svc := NewInsightService(gen, &fakeProfiles{profile: profile}, testLogger())

	text, err := svc.Generate(context.Background(), insightProduct())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != "## Insights" {
		t.Errorf("Generate() = %q", text)
	}
	if !strings.Contains(gen.prompt, `"Dana"`) {
		t.Errorf("prompt does not carry the stored profile:\n%s", gen.prompt)
	}
	if !strings.Contains(gen.prompt, `"Nutella"`) {
		t.Errorf("prompt does not carry the product record")
	}
	if !strings.Contains(gen.prompt, "{USER DATA}") || !strings.Contains(gen.prompt, "{PRODUCT JSON}") {
		t.Errorf("prompt is missing section delimiters")
	}
}

func TestGenerate_SubstitutesExampleProfile(t *testing.T) {
	gen := &fakeGenerator{text: "## Insights"}
	svc := NewInsightService(gen, &fakeProfiles{}, testLogger())

	text, err := svc.Generate(context.Background(), insightProduct())
	if err != nil {
		t.Fatalf("Generate() error = %v, want example profile substitution", err)
	}
	if text == "" {
		t.Error("Generate() returned empty text")
	}
	if !strings.Contains(gen.prompt, "Display eco-friendly product options") {
		t.Errorf("prompt does not carry the example profile:\n%s", gen.prompt)
	}
}

func TestGenerate_GeneratorFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	svc := NewInsightService(gen, &fakeProfiles{}, testLogger())

	_, err := svc.Generate(context.Background(), insightProduct())
	if !errors.Is(err, domain.ErrInsightGeneration) {
		t.Errorf("Generate() error = %v, want ErrInsightGeneration", err)
	}
}

func TestGenerate_NilGenerator(t *testing.T) {
	svc := NewInsightService(nil, &fakeProfiles{}, testLogger())

	_, err := svc.Generate(context.Background(), insightProduct())
	if !errors.Is(err, domain.ErrInsightGeneration) {
		t.Errorf("Generate() error = %v, want ErrInsightGeneration", err)
	}
}
