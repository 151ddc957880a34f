package service

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/sarahselama/SerhSalesLead/internal/model"
)

// AliasSuggester receives brand corrections as alias candidates.
type AliasSuggester interface {
	Suggest(canonical, spelling string) error
}

// FeedbackWorker consumes feedback events. It keeps a tally per issue type
// and turns brand corrections into alias suggestions.
type FeedbackWorker struct {
	Aliases AliasSuggester // optional

	mu    sync.Mutex
	tally map[model.IssueType]int
}

func NewFeedbackWorker(aliases AliasSuggester) *FeedbackWorker {
	return &FeedbackWorker{
		Aliases: aliases,
		tally:   make(map[model.IssueType]int),
	}
}

// Handle processes one correction. A correction is counted once it has been
// handled, so a retried event is tallied a single time.
func (w *FeedbackWorker) Handle(rec model.FeedbackRecord) error {
	log.Printf("📥 Correction for %s (%s): %s %q -> %q",
		rec.BrandName, rec.CampaignDate, rec.IssueType, rec.ExtractedValue, rec.CorrectValue)

	if w.suggests(rec) {
		if err := w.Aliases.Suggest(rec.CorrectValue, rec.ExtractedValue); err != nil {
			return fmt.Errorf("suggest alias for %s: %w", rec.ExtractedValue, err)
		}
	}

	w.mu.Lock()
	w.tally[rec.IssueType]++
	w.mu.Unlock()
	return nil
}

func (w *FeedbackWorker) suggests(rec model.FeedbackRecord) bool {
	if rec.IssueType != model.WrongBrand || w.Aliases == nil {
		return false
	}
	return rec.CorrectValue != "" && rec.CorrectValue != rec.ExtractedValue
}

// HandlePayload decodes a queue payload and handles it.
func (w *FeedbackWorker) HandlePayload(payload any) error {
	rec, err := DecodeFeedback(payload)
	if err != nil {
		return err
	}
	return w.Handle(rec)
}

// Tally returns the number of corrections seen per issue type.
func (w *FeedbackWorker) Tally() map[model.IssueType]int {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[model.IssueType]int, len(w.tally))
	for k, v := range w.tally {
		out[k] = v
	}
	return out
}

// DecodeFeedback accepts a record published in process or the JSON body of
// a broker delivery.
func DecodeFeedback(payload any) (model.FeedbackRecord, error) {
	var raw []byte
	switch p := payload.(type) {
	case model.FeedbackRecord:
		return p, nil
	case *model.FeedbackRecord:
		return *p, nil
	case json.RawMessage:
		raw = p
	case []byte:
		raw = p
	default:
		return model.FeedbackRecord{}, fmt.Errorf("unexpected feedback payload %T", payload)
	}
	var rec model.FeedbackRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return model.FeedbackRecord{}, fmt.Errorf("decode feedback event: %w", err)
	}
	return rec, nil
}
