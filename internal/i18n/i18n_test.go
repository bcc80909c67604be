package i18n

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTranslator(t *testing.T, lang string) *Translator {
	t.Helper()
	tr, err := New(lang, "")
	if err != nil {
		t.Fatalf("New(%q): %v", lang, err)
	}
	return tr
}

func TestTranslate(t *testing.T) {
	tr := newTranslator(t, "en")

	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "nested key", key: "presentation.mainTitle", want: "T-Rek Components"},
		{name: "list item", key: "presentation.typewriter.2", want: "and our T-Rek Progress component, built on top of signals, streams and a braille canvas."},
		{name: "missing key", key: "presentation.nope", want: "presentation.nope"},
		{name: "branch is not a value", key: "presentation", want: "presentation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.Translate(tt.key); got != tt.want {
				t.Errorf("Translate(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestLanguages(t *testing.T) {
	tr := newTranslator(t, "")
	if tr.Language() != DefaultLanguage {
		t.Errorf("Language() = %q, want %q", tr.Language(), DefaultLanguage)
	}
	if diff := cmp.Diff([]string{"en", "es"}, tr.Languages()); diff != "" {
		t.Errorf("Languages() (-want +got):\n%s", diff)
	}

	if _, err := New("fr", ""); !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("New(fr) err = %v, want ErrUnknownLanguage", err)
	}
	if err := tr.SetLanguage("fr"); !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("SetLanguage(fr) err = %v, want ErrUnknownLanguage", err)
	}
	if tr.Language() != "en" {
		t.Errorf("failed switch changed language to %q", tr.Language())
	}
}

func TestSelectTranslateFollowsLanguage(t *testing.T) {
	tr := newTranslator(t, "en")
	title, stop := tr.SelectTranslate("presentation.mainTitle")

	var seen []string
	title.Subscribe(func(s string) { seen = append(seen, s) })

	if err := tr.SetLanguage("es"); err != nil {
		t.Fatal(err)
	}
	if err := tr.SetLanguage("es"); err != nil {
		t.Fatal(err)
	}

	stop()
	if err := tr.SetLanguage("en"); err != nil {
		t.Fatal(err)
	}

	want := []string{"T-Rek Components", "Componentes T-Rek"}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("published titles (-want +got):\n%s", diff)
	}
}

func TestList(t *testing.T) {
	tr := newTranslator(t, "es")

	got := tr.List("presentation.typewriter")
	if len(got) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d: %q", len(got), got)
	}
	if got[0] == tr.lookup("en", "presentation.typewriter.0") {
		t.Error("expected the Spanish paragraph")
	}
	if tr.List("missing") != nil {
		t.Error("expected nil for a missing list")
	}
}

func TestCatalogDirectory(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("fr.yaml", "presentation:\n  mainTitle: Composants T-Rek\n")
	write("en.yaml", "presentation:\n  gridTitle: The Grid\n")
	write("notes.txt", "ignored")

	tr, err := New("fr", dir)
	if err != nil {
		t.Fatal(err)
	}

	if got := tr.Translate("presentation.mainTitle"); got != "Composants T-Rek" {
		t.Errorf("fr title = %q", got)
	}
	if got := tr.Translate("presentation.gridTitle"); got != "The Grid" {
		t.Errorf("fallback to overridden en = %q", got)
	}
	if diff := cmp.Diff([]string{"en", "es", "fr"}, tr.Languages()); diff != "" {
		t.Errorf("Languages() (-want +got):\n%s", diff)
	}
}

func TestBadCatalog(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "de.yaml"), []byte("a: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New("en", dir); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}
