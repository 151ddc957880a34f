package brand

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeAliases(t *testing.T) {
	c := New(map[string][]string{
		"Emaar Properties": {"emaar", "EMAAR PJSC"},
		"Noon":             {"noon.com"},
	})

	tests := []struct {
		raw  string
		want string
	}{
		{"emaar", "Emaar Properties"},
		{"  Emaar   pjsc ", "Emaar Properties"},
		{"emaar properties", "Emaar Properties"},
		{"NOON.COM", "Noon"},
		{"Careem", "Careem"},
		{"  Dubai Mall ", "Dubai Mall"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := c.Normalize(tt.raw); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeConflictingTable(t *testing.T) {
	table := map[string][]string{
		"Noon":    {"noon ae", "nn"},
		"Noon AE": nil,
		"Namshi":  {"nn"},
	}
	for i := 0; i < 50; i++ {
		c := New(table)
		// A canonical name keeps its own spelling.
		if got := c.Normalize("noon ae"); got != "Noon AE" {
			t.Fatalf("build %d: Normalize(noon ae) = %q, want Noon AE", i, got)
		}
		// A shared alias goes to the canonical that sorts first.
		if got := c.Normalize("NN"); got != "Namshi" {
			t.Fatalf("build %d: Normalize(NN) = %q, want Namshi", i, got)
		}
	}
}

func TestNormalizeComposesUnicode(t *testing.T) {
	c := New(map[string][]string{"Caf\u00e9 Nero": nil})
	// "e" followed by a combining acute accent
	if got := c.Normalize("Cafe\u0301 Nero"); got != "Caf\u00e9 Nero" {
		t.Errorf("expected composed canonical name, got %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing alias file should not fail: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty table, got %d entries", c.Len())
	}
	if got := c.Normalize("Acme"); got != "Acme" {
		t.Errorf("unknown names must pass through, got %q", got)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	body := "aliases:\n  Majid Al Futtaim:\n    - maf\n    - majid al futtaim group\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Normalize("MAF"); got != "Majid Al Futtaim" {
		t.Errorf("got %q", got)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	if err := os.WriteFile(path, []byte("aliases: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
