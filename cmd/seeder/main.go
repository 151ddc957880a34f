// cmd/seeder/main.go
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sarahselama/SerhSalesLead/internal/config"
)

// seedFiles maps each sample under seed/ to the configured path it fills.
func seedFiles(cfg *config.Config) map[string]string {
	return map[string]string{
		"seed/ooh_leads_sample.csv": cfg.LeadsCSVPath,
		"seed/brand_aliases.yaml":   cfg.BrandAliasesPath,
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}
	cfg := config.Load()

	for src, dst := range seedFiles(cfg) {
		copied, err := seed(src, dst)
		if err != nil {
			log.Fatalf("❌ failed to seed %s: %v", dst, err)
		}
		if copied {
			fmt.Printf("Seeded: %s -> %s\n", src, dst)
		} else {
			fmt.Printf("Skipped: %s already exists\n", dst)
		}
	}

	fmt.Println("Seeding completed successfully!")
}

// seed copies src to dst unless dst already exists. Existing data is never
// overwritten.
func seed(src, dst string) (bool, error) {
	if _, err := os.Stat(dst); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	content, err := os.ReadFile(src)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", src, err)
	}
	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, err
		}
	}
	if err := os.WriteFile(dst, content, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", dst, err)
	}
	return true, nil
}
