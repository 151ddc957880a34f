package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sarahselama/SerhSalesLead/internal/config"
)

func TestSeedCopiesOnce(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sample.csv")
	dst := filepath.Join(dir, "data", "leads.csv")
	if err := os.WriteFile(src, []byte("Brand Name\nAcme\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	copied, err := seed(src, dst)
	if err != nil || !copied {
		t.Fatalf("first seed should copy, got %v %v", copied, err)
	}

	if err := os.WriteFile(dst, []byte("Brand Name\nLive\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	copied, err = seed(src, dst)
	if err != nil || copied {
		t.Fatalf("second seed should skip, got %v %v", copied, err)
	}
	b, _ := os.ReadFile(dst)
	if string(b) != "Brand Name\nLive\n" {
		t.Errorf("existing data was overwritten: %q", b)
	}
}

func TestSeedMissingSample(t *testing.T) {
	dir := t.TempDir()
	if _, err := seed(filepath.Join(dir, "nope.csv"), filepath.Join(dir, "leads.csv")); err == nil {
		t.Error("expected an error for a missing sample")
	}
}

func TestSeedFilesUseConfig(t *testing.T) {
	cfg := &config.Config{LeadsCSVPath: "a.csv", BrandAliasesPath: "b.yaml"}
	files := seedFiles(cfg)
	if files["seed/ooh_leads_sample.csv"] != "a.csv" || files["seed/brand_aliases.yaml"] != "b.yaml" {
		t.Errorf("unexpected targets %v", files)
	}
}

func TestSeedSamplesParse(t *testing.T) {
	for _, name := range []string{"ooh_leads_sample.csv", "brand_aliases.yaml"} {
		if _, err := os.Stat(filepath.Join("..", "..", "seed", name)); err != nil {
			t.Errorf("sample %s missing: %v", name, err)
		}
	}
}
