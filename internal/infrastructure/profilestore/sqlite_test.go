package profilestore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/productgoat/backend/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_LoadBeforeSave(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background())
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("Load() error = %v, want ErrProfileNotFound", err)
	}

	exists, err := store.Exists(context.Background())
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("Exists() = true before any save")
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	profile := domain.NewProfile()
	profile.Name = "Dana"
	profile.Age = "31"
	profile.DietaryPreferences = []string{"vegan"}
	profile.Allergies = []string{"nuts", "soy"}
	profile.ConsumptionTipPreference = domain.TipDetailedAnalysis
	profile.FavoriteFoods = []string{"Kale"}

	if err := store.Save(ctx, profile); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Name != "Dana" || loaded.Age != "31" {
		t.Errorf("loaded = %+v", loaded)
	}
	if len(loaded.Allergies) != 2 || loaded.Allergies[0] != "nuts" {
		t.Errorf("Allergies = %v", loaded.Allergies)
	}
	if loaded.ConsumptionTipPreference != domain.TipDetailedAnalysis {
		t.Errorf("ConsumptionTipPreference = %q", loaded.ConsumptionTipPreference)
	}

	exists, err := store.Exists(ctx)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Error("Exists() = false after save")
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := domain.NewProfile()
	first.Name = "Dana"
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	second := domain.NewProfile()
	second.Name = "Robin"
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Name != "Robin" {
		t.Errorf("Name = %q, want Robin", loaded.Name)
	}
}

func TestStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	ctx := context.Background()

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	profile := domain.NewProfile()
	profile.Name = "Dana"
	if err := store.Save(ctx, profile); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	store.Close()

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() reopen error = %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("Load() after reopen error = %v", err)
	}
	if loaded.Name != "Dana" {
		t.Errorf("Name = %q, want Dana", loaded.Name)
	}
}
