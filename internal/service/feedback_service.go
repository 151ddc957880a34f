// internal/service/feedback_service.go
package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sarahselama/SerhSalesLead/internal/model"
	"github.com/sarahselama/SerhSalesLead/internal/queue"
	"github.com/sarahselama/SerhSalesLead/internal/repository"
	"github.com/sarahselama/SerhSalesLead/internal/util"
)

const (
	DefaultFeedbackTopic = "lead_feedback"
	timestampLayout      = "2006-01-02T15:04:05.000000"
)

// FeedbackService records manual corrections to extracted leads.
type FeedbackService struct {
	Repo  repository.FeedbackRepositoryInterface
	Queue queue.Queue // optional
	Topic string
	Now   func() time.Time

	// RetryDelay is the pause before the single retry of a failed append.
	RetryDelay time.Duration
}

// FeedbackInput is what the user submits about one campaign row.
type FeedbackInput struct {
	IssueType    model.IssueType
	CorrectValue string
	Notes        string
}

func (s *FeedbackService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ExtractedValue picks the lead field the issue is about.
func ExtractedValue(lead model.Lead, issue model.IssueType) string {
	switch issue {
	case model.WrongBrand, model.NotABrand:
		return lead.BrandName
	case model.WrongLocation:
		return lead.Location
	default:
		return lead.Industry
	}
}

// NewRecord builds the record for a correction on lead.
func (s *FeedbackService) NewRecord(lead model.Lead, in FeedbackInput) model.FeedbackRecord {
	date := lead.PostDate
	if date == "" {
		date = "Unknown"
	}
	return model.FeedbackRecord{
		Timestamp:      s.now().Format(timestampLayout),
		BrandName:      lead.BrandName,
		CampaignDate:   date,
		IssueType:      in.IssueType,
		ExtractedValue: ExtractedValue(lead, in.IssueType),
		CorrectValue:   strings.TrimSpace(in.CorrectValue),
		Notes:          strings.TrimSpace(in.Notes),
	}
}

// Submit appends a correction for lead to the log, retrying the append once.
// Once stored, the record is also published to the feedback topic; a
// publish failure is logged and does not fail the submission.
func (s *FeedbackService) Submit(lead model.Lead, in FeedbackInput) (model.FeedbackRecord, error) {
	rec := s.NewRecord(lead, in)

	err := util.RetryWithBackoff(2, s.RetryDelay, func() error {
		return s.Repo.Append(rec)
	})
	if err != nil {
		log.Println("❌ Failed to store feedback:", err)
		return rec, err
	}
	log.Printf("✅ Feedback stored: %s / %s", rec.BrandName, rec.IssueType)

	if s.Queue != nil {
		topic := s.Topic
		if topic == "" {
			topic = DefaultFeedbackTopic
		}
		if err := s.Queue.Publish(topic, rec); err != nil {
			log.Println("⚠️ Failed to publish feedback event:", err)
		}
	}
	return rec, nil
}

// List returns every stored correction, oldest first.
func (s *FeedbackService) List() ([]model.FeedbackRecord, error) {
	return s.Repo.ReadAll()
}

var feedbackColumns = []string{
	"timestamp", "brand_name", "campaign_date", "issue_type",
	"extracted_value", "correct_value", "notes",
}

// FeedbackCSV serialises the log for download.
func FeedbackCSV(records []model.FeedbackRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(feedbackColumns); err != nil {
		return nil, fmt.Errorf("write feedback header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Timestamp, r.BrandName, r.CampaignDate, r.IssueLabel(),
			r.ExtractedValue, r.CorrectValue, r.Notes,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write feedback row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush feedback csv: %w", err)
	}
	return buf.Bytes(), nil
}
