// internal/model/form_state.go
package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RowKey identifies one campaign row on the dashboard: the brand and the
// 1-based position of the campaign in that brand's newest-first list.
type RowKey struct {
	Brand string
	Index int
}

// ID is the stable string form used in URLs and form fields.
func (k RowKey) ID() string {
	return fmt.Sprintf("%d:%s", k.Index, k.Brand)
}

func ParseRowKey(id string) (RowKey, error) {
	idx, brand, ok := strings.Cut(id, ":")
	if !ok || brand == "" {
		return RowKey{}, fmt.Errorf("invalid row id %q", id)
	}
	n, err := strconv.Atoi(idx)
	if err != nil || n < 1 {
		return RowKey{}, fmt.Errorf("invalid row index in %q", id)
	}
	return RowKey{Brand: brand, Index: n}, nil
}

// FormState records which rows have their feedback form open. It belongs to
// a single request and is rebuilt from the request every time.
type FormState map[RowKey]bool

// FormStateFromIDs builds the state from row ids, skipping malformed ones.
func FormStateFromIDs(ids []string) FormState {
	st := FormState{}
	for _, id := range ids {
		if k, err := ParseRowKey(id); err == nil {
			st[k] = true
		}
	}
	return st
}

func (s FormState) IsOpen(k RowKey) bool {
	return s[k]
}

func (s FormState) Open(k RowKey) {
	s[k] = true
}

func (s FormState) Close(k RowKey) {
	delete(s, k)
}

// IDs returns the ids of the open rows in sorted order.
func (s FormState) IDs() []string {
	out := make([]string, 0, len(s))
	for k, open := range s {
		if open {
			out = append(out, k.ID())
		}
	}
	sort.Strings(out)
	return out
}
