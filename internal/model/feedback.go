// internal/model/feedback.go
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type IssueType int

const (
	WrongBrand IssueType = iota
	WrongIndustry
	WrongLocation
	NotABrand
	Other
)

// IssueTypes lists the choices in the order the feedback form offers them.
var IssueTypes = []IssueType{WrongBrand, WrongIndustry, WrongLocation, NotABrand, Other}

var issueLabels = map[IssueType]string{
	WrongBrand:    "Wrong Brand",
	WrongIndustry: "Wrong Industry",
	WrongLocation: "Wrong Location",
	NotABrand:     "Publisher (not a brand)",
	Other:         "Other",
}

var issueNames = map[IssueType]string{
	WrongBrand:    "WrongBrand",
	WrongIndustry: "WrongIndustry",
	WrongLocation: "WrongLocation",
	NotABrand:     "NotABrand",
	Other:         "Other",
}

// String returns the label stored in the feedback file.
func (t IssueType) String() string {
	if s, ok := issueLabels[t]; ok {
		return s
	}
	return fmt.Sprintf("IssueType(%d)", int(t))
}

// Name returns the identifier form, e.g. "WrongBrand".
func (t IssueType) Name() string {
	return issueNames[t]
}

// ParseIssueType accepts either the stored label or the identifier, case-insensitively.
func ParseIssueType(s string) (IssueType, error) {
	s = strings.TrimSpace(s)
	for _, t := range IssueTypes {
		if strings.EqualFold(s, issueLabels[t]) || strings.EqualFold(s, issueNames[t]) {
			return t, nil
		}
	}
	return Other, fmt.Errorf("unknown issue type %q", s)
}

func (t IssueType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *IssueType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseIssueType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// FeedbackRecord is one manual correction. Field names and order match the
// JSON file read by the extraction tooling.
type FeedbackRecord struct {
	Timestamp      string    `json:"timestamp"`
	BrandName      string    `json:"brand_name"`
	CampaignDate   string    `json:"campaign_date"`
	IssueType      IssueType `json:"issue_type"`
	ExtractedValue string    `json:"extracted_value"`
	CorrectValue   string    `json:"correct_value"`
	Notes          string    `json:"notes"`

	// UnknownIssue keeps a stored issue label this build does not recognise.
	UnknownIssue string `json:"-"`
}

// IssueLabel is the issue as stored, which may be a label this build does
// not know.
func (r FeedbackRecord) IssueLabel() string {
	if r.UnknownIssue != "" {
		return r.UnknownIssue
	}
	return r.IssueType.String()
}

type feedbackJSON struct {
	Timestamp      string  `json:"timestamp"`
	BrandName      string  `json:"brand_name"`
	CampaignDate   string  `json:"campaign_date"`
	IssueType      *string `json:"issue_type"`
	ExtractedValue string  `json:"extracted_value"`
	CorrectValue   string  `json:"correct_value"`
	Notes          string  `json:"notes"`
}

func (r FeedbackRecord) MarshalJSON() ([]byte, error) {
	label := r.IssueLabel()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(feedbackJSON{
		Timestamp:      r.Timestamp,
		BrandName:      r.BrandName,
		CampaignDate:   r.CampaignDate,
		IssueType:      &label,
		ExtractedValue: r.ExtractedValue,
		CorrectValue:   r.CorrectValue,
		Notes:          r.Notes,
	})
	return bytes.TrimRight(buf.Bytes(), "\n"), err
}

// UnmarshalJSON reads a stored record. A missing, null or unrecognised issue
// type reads as Other, and an unrecognised label is written back unchanged,
// so one odd entry never makes the log unreadable.
func (r *FeedbackRecord) UnmarshalJSON(b []byte) error {
	var raw feedbackJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = FeedbackRecord{
		Timestamp:      raw.Timestamp,
		BrandName:      raw.BrandName,
		CampaignDate:   raw.CampaignDate,
		IssueType:      Other,
		ExtractedValue: raw.ExtractedValue,
		CorrectValue:   raw.CorrectValue,
		Notes:          raw.Notes,
	}
	if raw.IssueType == nil {
		return nil
	}
	if t, err := ParseIssueType(*raw.IssueType); err == nil {
		r.IssueType = t
	} else {
		r.UnknownIssue = *raw.IssueType
	}
	return nil
}
