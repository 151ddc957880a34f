package brand

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// SuggestionFile collects alias suggestions from brand corrections in the
// same YAML shape as the alias table, so a reviewer can merge entries by hand.
type SuggestionFile struct {
	Path string

	mu sync.Mutex
}

func NewSuggestionFile(path string) *SuggestionFile {
	return &SuggestionFile{Path: path}
}

// Suggest records spelling as an alias of canonical. Spellings that already
// fold to a known entry are skipped.
func (s *SuggestionFile) Suggest(canonical, spelling string) error {
	canonical, spelling = clean(canonical), clean(spelling)
	if canonical == "" || spelling == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.read()
	if err != nil {
		return err
	}
	known := New(table.Aliases)
	if known.key(spelling) == known.key(canonical) || known.Normalize(spelling) == canonical {
		return nil
	}
	if table.Aliases == nil {
		table.Aliases = map[string][]string{}
	}
	table.Aliases[canonical] = append(table.Aliases[canonical], spelling)
	return s.write(table)
}

// Aliases returns the suggestions recorded so far.
func (s *SuggestionFile) Aliases() (map[string][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	table, err := s.read()
	if err != nil {
		return nil, err
	}
	return table.Aliases, nil
}

func (s *SuggestionFile) read() (aliasFile, error) {
	var table aliasFile
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return table, nil
	}
	if err != nil {
		return table, fmt.Errorf("read alias suggestions: %w", err)
	}
	if err := yaml.Unmarshal(b, &table); err != nil {
		return table, fmt.Errorf("parse alias suggestions %s: %w", s.Path, err)
	}
	return table, nil
}

func (s *SuggestionFile) write(table aliasFile) error {
	b, err := yaml.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode alias suggestions: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create suggestions dir: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, b, 0o644); err != nil {
		return fmt.Errorf("write alias suggestions: %w", err)
	}
	return nil
}
