package session

import (
	"testing"
	"time"
)

func TestStore_SetGet(t *testing.T) {
	store := NewStore(time.Minute)
	defer store.Close()

	store.Set("a", "value-a")
	store.Set("b", 42)

	value, ok := store.Get("a")
	if !ok || value != "value-a" {
		t.Errorf("Get(a) = %v, %v", value, ok)
	}
	value, ok = store.Get("b")
	if !ok || value != 42 {
		t.Errorf("Get(b) = %v, %v", value, ok)
	}
	if _, ok := store.Get("missing"); ok {
		t.Error("Get(missing) reported a hit")
	}
	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}
}

func TestStore_Overwrite(t *testing.T) {
	store := NewStore(time.Minute)
	defer store.Close()

	store.Set("a", "old")
	store.Set("a", "new")

	value, _ := store.Get("a")
	if value != "new" {
		t.Errorf("Get(a) = %v, want new", value)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(time.Minute)
	defer store.Close()

	store.Set("a", 1)
	store.Delete("a")
	store.Delete("never-existed")

	if _, ok := store.Get("a"); ok {
		t.Error("Get(a) reported a hit after Delete")
	}
}

func TestStore_Expiration(t *testing.T) {
	store := NewStore(20 * time.Millisecond)
	defer store.Close()

	store.Set("a", 1)
	time.Sleep(40 * time.Millisecond)

	if _, ok := store.Get("a"); ok {
		t.Error("expired entry still readable")
	}
}

func TestStore_SetResetsExpiration(t *testing.T) {
	store := NewStore(60 * time.Millisecond)
	defer store.Close()

	store.Set("a", 1)
	time.Sleep(40 * time.Millisecond)
	store.Set("a", 2)
	time.Sleep(40 * time.Millisecond)

	value, ok := store.Get("a")
	if !ok || value != 2 {
		t.Errorf("Get(a) = %v, %v, want refreshed entry", value, ok)
	}
}
