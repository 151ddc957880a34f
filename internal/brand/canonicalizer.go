// Package brand maps raw brand names from the extraction output to a
// canonical spelling.
//
// The alias table is a YAML file of canonical name to spellings:
//
//	aliases:
//	  Emaar Properties:
//	    - emaar
//	    - emaar properties pjsc
//
// Names with no alias come back with only whitespace and Unicode cleanup applied.
package brand

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

type aliasFile struct {
	Aliases map[string][]string `yaml:"aliases"`
}

// Canonicalizer is safe for concurrent use once built.
type Canonicalizer struct {
	aliases map[string]string
}

// New builds a canonicalizer from an in-memory alias table. The result does
// not depend on map order: a canonical name always maps to itself, and when
// two canonicals claim the same spelling the one that sorts first keeps it.
func New(aliases map[string][]string) *Canonicalizer {
	c := &Canonicalizer{aliases: make(map[string]string)}
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if canonical := clean(name); canonical != "" {
			c.add(canonical, canonical)
		}
	}
	for _, name := range names {
		canonical := clean(name)
		if canonical == "" {
			continue
		}
		for _, s := range aliases[name] {
			c.add(clean(s), canonical)
		}
	}
	return c
}

// add keeps the first mapping for a spelling.
func (c *Canonicalizer) add(spelling, canonical string) {
	k := c.key(spelling)
	if k == "" {
		return
	}
	if _, taken := c.aliases[k]; !taken {
		c.aliases[k] = canonical
	}
}

// Load reads the alias table at path. A missing file yields an empty table.
func Load(path string) (*Canonicalizer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(nil), nil
		}
		return nil, fmt.Errorf("read brand aliases: %w", err)
	}
	var f aliasFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse brand aliases %s: %w", path, err)
	}
	return New(f.Aliases), nil
}

// Normalize returns the canonical brand name for raw.
func (c *Canonicalizer) Normalize(raw string) string {
	cleaned := clean(raw)
	if canonical, ok := c.aliases[c.key(cleaned)]; ok {
		return canonical
	}
	return cleaned
}

// Len reports how many spellings are known.
func (c *Canonicalizer) Len() int {
	return len(c.aliases)
}

// key folds case for lookups. A Caser holds state, so each call gets its own.
func (c *Canonicalizer) key(s string) string {
	return cases.Fold().String(s)
}

func clean(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}
