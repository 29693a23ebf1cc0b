package cards

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cards-config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}

func TestCatalogDefinition(t *testing.T) {
	path := writeCatalogFile(t, `{"cards": {
		"pikachu": {"name": "Pikachu", "type": "electric", "rarity": "common"}
	}}`)
	catalog := NewCatalog(path)

	tmpl, err := catalog.Definition("pikachu")
	if err != nil {
		t.Fatalf("Definition failed: %v", err)
	}
	if tmpl.Name != "Pikachu" || tmpl.Rarity != RarityCommon {
		t.Fatalf("unexpected template: %+v", tmpl)
	}

	if _, err := catalog.Definition("missingno"); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestCatalogMissingResourceDegradesToEmpty(t *testing.T) {
	catalog := NewCatalog(filepath.Join(t.TempDir(), "nope.json"))
	if defs := catalog.Definitions(); len(defs) != 0 {
		t.Fatalf("expected empty catalog, got %d definitions", len(defs))
	}
	if _, err := catalog.Definition("pikachu"); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestCatalogMalformedResourceDegradesToEmpty(t *testing.T) {
	catalog := NewCatalog(writeCatalogFile(t, `{not json`))
	if defs := catalog.Definitions(); len(defs) != 0 {
		t.Fatalf("expected empty catalog, got %d definitions", len(defs))
	}
}
