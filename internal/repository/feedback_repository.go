package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	appErrors "github.com/sarahselama/SerhSalesLead/internal/errors"
	"github.com/sarahselama/SerhSalesLead/internal/model"
)

type FeedbackRepositoryInterface interface {
	Append(rec model.FeedbackRecord) error
	ReadAll() ([]model.FeedbackRecord, error)
}

// FeedbackRepository keeps the correction log as a pretty-printed JSON array.
//
// Append is read-modify-write on the whole file with no locking: two writers
// appending at once can lose one record.
type FeedbackRepository struct {
	Path string
}

func NewFeedbackRepository(path string) *FeedbackRepository {
	return &FeedbackRepository{Path: path}
}

// ReadAll returns every stored record in insertion order, or an empty slice
// when the store does not exist yet.
func (r *FeedbackRepository) ReadAll() ([]model.FeedbackRecord, error) {
	b, err := os.ReadFile(r.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []model.FeedbackRecord{}, nil
		}
		return nil, appErrors.NewStoreIO(r.Path, "read", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return []model.FeedbackRecord{}, nil
	}

	records := []model.FeedbackRecord{}
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, appErrors.NewStoreIO(r.Path, "decode", err)
	}
	return records, nil
}

// Append adds rec to the end of the log and rewrites the file.
func (r *FeedbackRepository) Append(rec model.FeedbackRecord) error {
	records, err := r.ReadAll()
	if err != nil {
		return err
	}
	records = append(records, rec)
	return r.write(records)
}

func (r *FeedbackRepository) write(records []model.FeedbackRecord) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return appErrors.NewStoreIO(r.Path, "encode", err)
	}

	if dir := filepath.Dir(r.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return appErrors.NewStoreIO(r.Path, "write", err)
		}
	}

	// readers see either the old array or the new one, never a partial file
	tmp := r.Path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return appErrors.NewStoreIO(r.Path, "write", err)
	}
	if err := os.Rename(tmp, r.Path); err != nil {
		_ = os.Remove(tmp)
		return appErrors.NewStoreIO(r.Path, "write", err)
	}
	return nil
}

var _ FeedbackRepositoryInterface = (*FeedbackRepository)(nil)
