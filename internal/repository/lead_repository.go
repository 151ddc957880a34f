package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	appErrors "github.com/sarahselama/SerhSalesLead/internal/errors"
)

// RawRecord is one CSV row keyed by header name. A missing key means the
// column is absent from the file; an empty value means the cell was null.
type RawRecord map[string]string

// Get returns the value for column and whether the column exists.
func (r RawRecord) Get(column string) (string, bool) {
	v, ok := r[column]
	return v, ok
}

type LeadRepositoryInterface interface {
	Load() ([]RawRecord, error)
	Source() string
}

// LeadRepository reads the extracted leads CSV. Results are cached by file
// modification time and size, so an unchanged file is parsed once.
// Returned records are shared and must not be modified.
type LeadRepository struct {
	Path string

	mu      sync.Mutex
	cached  []RawRecord
	modTime time.Time
	size    int64
}

func NewLeadRepository(path string) *LeadRepository {
	return &LeadRepository{Path: path}
}

func (r *LeadRepository) Source() string {
	return r.Path
}

// Load returns every row of the leads file.
// It fails with MissingSourceError when the file does not exist and with
// EmptyInputError when it has no data rows.
func (r *LeadRepository) Load() ([]RawRecord, error) {
	info, err := os.Stat(r.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, appErrors.NewMissingSource(r.Path)
		}
		return nil, fmt.Errorf("stat leads file: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil && info.ModTime().Equal(r.modTime) && info.Size() == r.size {
		return r.cached, nil
	}

	f, err := os.Open(r.Path)
	if err != nil {
		return nil, fmt.Errorf("open leads file: %w", err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("read leads file %s: %w", r.Path, err)
	}
	if len(records) == 0 {
		return nil, appErrors.NewEmptyInput(r.Path)
	}

	log.Printf("📥 Loaded %d leads from %s", len(records), r.Path)
	r.cached = records
	r.modTime = info.ModTime()
	r.size = info.Size()
	return records, nil
}

// ReadRecords parses CSV with a header row. Short rows leave the trailing
// columns absent; extra cells are ignored.
func ReadRecords(in io.Reader) ([]RawRecord, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return []RawRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	records := []RawRecord{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		rec := make(RawRecord, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

var _ LeadRepositoryInterface = (*LeadRepository)(nil)
