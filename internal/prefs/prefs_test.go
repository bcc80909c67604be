package prefs

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLoadMissingFile(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "nested", "prefs.json"))
	p, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Prefs{}, p); diff != "" {
		t.Errorf("expected zero prefs (-want +got):\n%s", diff)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "prefs.json"))
	want := Prefs{
		Theme:    "dark",
		Language: "es",
		Grids: map[string]Grid{
			"people": {SortKey: "age", Direction: "desc", PageSize: 10},
		},
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be stamped")
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Prefs{}, "UpdatedAt")); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}

	if _, err := os.Stat(s.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestSetGridKeepsOtherFields(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "prefs.json"))
	if err := s.Save(Prefs{Theme: "light"}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetGrid("a", Grid{PageSize: 5}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetGrid("b", Grid{SortKey: "name", Direction: "asc"}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	want := Prefs{
		Theme: "light",
		Grids: map[string]Grid{
			"a": {PageSize: 5},
			"b": {SortKey: "name", Direction: "asc"},
		},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Prefs{}, "UpdatedAt")); diff != "" {
		t.Errorf("prefs (-want +got):\n%s", diff)
	}
}

func TestConcurrentUpdates(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "prefs.json"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Update(func(p *Prefs) {
				if p.Grids == nil {
					p.Grids = make(map[string]Grid)
				}
				g := p.Grids["counter"]
				g.PageSize++
				p.Grids["counter"] = g
			}); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if n := got.Grids["counter"].PageSize; n != 20 {
		t.Errorf("counter = %d, want 20", n)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path).Load(); err == nil {
		t.Error("expected an error for a corrupt file")
	}
}
