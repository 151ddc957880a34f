package repository

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	appErrors "github.com/sarahselama/SerhSalesLead/internal/errors"
	"github.com/sarahselama/SerhSalesLead/internal/model"
)

func TestReadAllMissingStore(t *testing.T) {
	repo := NewFeedbackRepository(filepath.Join(t.TempDir(), "ai_feedback.json"))

	records, err := repo.ReadAll()
	if err != nil {
		t.Fatalf("missing store is not an error: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("expected empty slice, got %#v", records)
	}
}

func TestAppendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ai_feedback.json")
	repo := NewFeedbackRepository(path)

	r1 := model.FeedbackRecord{
		Timestamp:      "2024-03-01T10:00:00.000000",
		BrandName:      "XYZ Mall",
		CampaignDate:   "2024-02-01",
		IssueType:      model.WrongIndustry,
		ExtractedValue: "Retail",
		CorrectValue:   "Real Estate",
	}
	r2 := model.FeedbackRecord{
		Timestamp:      "2024-03-01T10:05:00.000000",
		BrandName:      "insiteooh",
		CampaignDate:   "2024-01-15",
		IssueType:      model.NotABrand,
		ExtractedValue: "Retail",
		Notes:          "publisher account",
	}

	if err := repo.Append(r1); err != nil {
		t.Fatal(err)
	}
	if err := repo.Append(r2); err != nil {
		t.Fatal(err)
	}

	got, err := repo.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]model.FeedbackRecord{r1, r2}, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendWritesIndentedArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ai_feedback.json")
	repo := NewFeedbackRepository(path)

	if err := repo.Append(model.FeedbackRecord{BrandName: "A&B", IssueType: model.WrongBrand}); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	body := string(b)
	if !strings.HasPrefix(body, "[\n  {\n    \"timestamp\"") {
		t.Errorf("expected 2-space indented array, got:\n%s", body)
	}
	if !strings.Contains(body, `"issue_type": "Wrong Brand"`) {
		t.Errorf("issue type should be stored as its label, got:\n%s", body)
	}
	if !strings.Contains(body, `"brand_name": "A&B"`) {
		t.Errorf("brand name should not be HTML-escaped, got:\n%s", body)
	}
	for _, key := range []string{"campaign_date", "extracted_value", "correct_value", "notes"} {
		if !strings.Contains(body, `"`+key+`"`) {
			t.Errorf("missing key %s", key)
		}
	}
}

func TestReadAllCorruptStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ai_feedback.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFeedbackRepository(path).ReadAll()
	var storeErr *appErrors.StoreIOError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreIOError, got %v", err)
	}
	if storeErr.Op != "decode" {
		t.Errorf("expected decode op, got %q", storeErr.Op)
	}
}

func TestAppendAfterUnknownIssueLabel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ai_feedback.json")
	stored := `[{"timestamp":"t0","brand_name":"Noon","campaign_date":"Unknown","issue_type":"Wrong Colour","extracted_value":"","correct_value":"","notes":""},
{"timestamp":"t1","brand_name":"Noon","campaign_date":"Unknown","issue_type":null,"extracted_value":"","correct_value":"","notes":""}]`
	if err := os.WriteFile(path, []byte(stored), 0o644); err != nil {
		t.Fatal(err)
	}
	repo := NewFeedbackRepository(path)

	if err := repo.Append(model.FeedbackRecord{Timestamp: "t2", BrandName: "Noon", IssueType: model.WrongBrand}); err != nil {
		t.Fatalf("append after an unknown label: %v", err)
	}
	got, err := repo.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	labels := []string{}
	for _, r := range got {
		labels = append(labels, r.IssueLabel())
	}
	if diff := cmp.Diff([]string{"Wrong Colour", "Other", "Wrong Brand"}, labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "feedback", "ai_feedback.json")
	repo := NewFeedbackRepository(path)

	if err := repo.Append(model.FeedbackRecord{BrandName: "Acme"}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file should not remain")
	}
}
