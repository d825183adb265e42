package domain

import "context"

// ProductSource looks up one product by barcode. Implementations return
// ErrProductNotFound for a legitimate miss and a source-specific sentinel
// for failures.
type ProductSource interface {
	Lookup(ctx context.Context, barcode string) (*Product, error)
}

// ProfileRepository persists the single onboarding profile.
type ProfileRepository interface {
	Load(ctx context.Context) (*Profile, error)
	Save(ctx context.Context, profile *Profile) error
	Exists(ctx context.Context) (bool, error)
}

// TextGenerator produces text from a single prompt, one round trip per call.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
