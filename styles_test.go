package mdpreview

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestStyleCatalog_BuiltIns(t *testing.T) {
	t.Parallel()

	cat, err := NewStyleCatalog("")
	if err != nil {
		t.Fatalf("NewStyleCatalog() unexpected error: %v", err)
	}

	wantNames := []string{"default", "github", "solarized-light", "solarized-dark"}
	if got := cat.Names(); !slices.Equal(got, wantNames) {
		t.Errorf("Names() = %v, want %v", got, wantNames)
	}

	tests := []struct {
		name      string
		codeStyle string
	}{
		{"default", "friendly"},
		{"github", "github"},
		{"solarized-light", "solarized-light"},
		{"solarized-dark", "solarized-dark"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := cat.LookupStyle(tt.name)
			if err != nil {
				t.Fatalf("LookupStyle(%q) unexpected error: %v", tt.name, err)
			}
			if s.CodeStyle != tt.codeStyle {
				t.Errorf("CodeStyle = %q, want %q", s.CodeStyle, tt.codeStyle)
			}
			if !CodeStyleExists(s.CodeStyle) {
				t.Errorf("Chroma has no style %q", s.CodeStyle)
			}
			if !s.BuiltIn || s.Label == "" || !strings.Contains(s.CSS, "body") {
				t.Errorf("incomplete style: %+v", s)
			}
		})
	}

	all, err := cat.Styles()
	if err != nil {
		t.Fatalf("Styles() unexpected error: %v", err)
	}
	if len(all) != len(wantNames) {
		t.Errorf("Styles() returned %d styles, want %d", len(all), len(wantNames))
	}
}

func TestStyleCatalog_LookupUnknown(t *testing.T) {
	t.Parallel()

	cat, err := NewStyleCatalog("")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cat.LookupStyle("neon"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LookupStyle(neon) error = %v, want ErrStyleNotFound", err)
	}
}

func TestStyleCatalog_CustomAssets(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stylesDir := filepath.Join(dir, "styles")
	if err := os.MkdirAll(stylesDir, 0o750); err != nil {
		t.Fatal(err)
	}
	catalog := `styles:
  - name: paper
    label: Paper
    codeStyle: monokai
  - name: ghost
    label: Ghost
`
	files := map[string]string{
		"catalog.yaml": catalog,
		"paper.css":    "body { background: ivory; }",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(stylesDir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	cat, err := NewStyleCatalog(dir)
	if err != nil {
		t.Fatalf("NewStyleCatalog() unexpected error: %v", err)
	}

	paper, err := cat.LookupStyle("paper")
	if err != nil {
		t.Fatalf("LookupStyle(paper) unexpected error: %v", err)
	}
	if paper.BuiltIn || paper.CodeStyle != "monokai" || !strings.Contains(paper.CSS, "ivory") {
		t.Errorf("paper = %+v", paper)
	}

	if _, err := cat.LookupStyle("github"); err != nil {
		t.Errorf("built-in lost after merge: %v", err)
	}

	// ghost has a catalog entry but no stylesheet.
	if _, err := cat.LookupStyle("ghost"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LookupStyle(ghost) error = %v, want ErrStyleNotFound", err)
	}
	if _, err := cat.Styles(); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("Styles() error = %v, want ErrStyleNotFound", err)
	}
}

func TestCodeStyleNames(t *testing.T) {
	t.Parallel()

	names := CodeStyleNames()
	if !slices.Contains(names, "friendly") || !slices.Contains(names, "github") {
		t.Errorf("CodeStyleNames() missing expected styles: %v", names)
	}
}
