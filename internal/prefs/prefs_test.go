package prefs

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "prefs.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_GetMissing(t *testing.T) {
	s := openTestStore(t)
	v, ok, err := s.Get(context.Background(), KeyLayout)
	if err != nil || ok || v != "" {
		t.Errorf("Get = %q, %v, %v; want miss", v, ok, err)
	}
}

func TestStore_SetGet(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.Set(ctx, KeyThemeMode, "light"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, KeyThemeMode, "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := s.Get(ctx, KeyThemeMode)
	if err != nil || !ok || v != "dark" {
		t.Errorf("Get = %q, %v, %v; want dark", v, ok, err)
	}
}

func TestStore_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.sqlite")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Set(ctx, KeyFilterMaxAgeDays, "30"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	v, ok, err := reopened.Get(ctx, KeyFilterMaxAgeDays)
	if err != nil || !ok || v != "30" {
		t.Errorf("Get after reopen = %q, %v, %v", v, ok, err)
	}
}

func TestStore_AllAndClear(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	want := map[string]string{
		KeyLayout:           "card",
		KeyFilterPriority:   "high",
		KeyFilterVisibility: "starred",
	}
	for k, v := range want {
		if err := s.Set(ctx, k, v); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}

	got, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("All = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("All[%s] = %q, want %q", k, got[k], v)
		}
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, err = s.All(ctx)
	if err != nil || len(got) != 0 {
		t.Errorf("All after Clear = %v, %v", got, err)
	}
}

func TestStore_NilSafe(t *testing.T) {
	var s *Store
	ctx := context.Background()
	if err := s.Set(ctx, KeyLayout, "card"); err != nil {
		t.Errorf("Set on nil store: %v", err)
	}
	if _, ok, err := s.Get(ctx, KeyLayout); ok || err != nil {
		t.Errorf("Get on nil store = %v, %v", ok, err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close on nil store: %v", err)
	}
}
