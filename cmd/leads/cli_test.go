package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sarahselama/SerhSalesLead/internal/brand"
)

const leadsCSV = `Brand Name,Industry,Location,Post Date,Campaign Type,Brand Confidence
XYZ Mall,Real Estate,Dubai,2024-01-01,Launch,HIGH
XYZ Mall,Real Estate,Sharjah,2024-02-01,Seasonal,HIGH
ABC Corp,Retail,Riyadh,2024-03-01,Sale,LOW
`

func setup(t *testing.T) (dir string) {
	t.Helper()
	dir = t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "leads.csv"), []byte(leadsCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LEADS_CSV_PATH", filepath.Join(dir, "leads.csv"))
	t.Setenv("FEEDBACK_PATH", filepath.Join(dir, "feedback.json"))
	t.Setenv("BRAND_ALIASES_PATH", filepath.Join(dir, "aliases.yaml"))
	t.Setenv("ALIAS_SUGGESTIONS_PATH", filepath.Join(dir, "suggested.yaml"))
	t.Setenv("AMQP_URL", "")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBrandsCommand(t *testing.T) {
	setup(t)
	out, err := run(t, "brands", "--uae", "--campaigns")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"SHOWING 1 BRANDS WITH 2 CAMPAIGNS", "XYZ Mall", "1. 2024-02-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ABC Corp") {
		t.Errorf("ABC Corp has no UAE campaign")
	}
}

func TestBrandsCommandRejectsBadMinimum(t *testing.T) {
	setup(t)
	if _, err := run(t, "brands", "--min-campaigns", "0"); err == nil || !strings.Contains(err.Error(), "min_campaigns") {
		t.Errorf("expected an invalid filter error, got %v", err)
	}
}

func TestAnalysisCommand(t *testing.T) {
	setup(t)
	out, err := run(t, "analysis")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "TOP BRANDS BY CAMPAIGN COUNT") || !strings.Contains(out, "▓▓") {
		t.Errorf("unexpected analysis output:\n%s", out)
	}
}

func TestExportCommand(t *testing.T) {
	dir := setup(t)
	target := filepath.Join(dir, "out.csv")
	out, err := run(t, "export", "--excel", "-o", target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "High Quality Leads    : 2") {
		t.Errorf("summary missing:\n%s", out)
	}
	b, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("\xef\xbb\xbfCompany Name,")) {
		t.Errorf("excel export should start with a BOM")
	}

	out, err = run(t, "export", "-o", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "Company Name,") {
		t.Errorf("stdout export should be plain CSV, got %q", out)
	}
}

func TestFeedbackCommands(t *testing.T) {
	setup(t)
	out, err := run(t, "feedback", "add", "--brand", "XYZ Mall", "--row", "2", "--issue", "wrong location", "--correct", "Dubai Hills")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"Dubai" -> "Dubai Hills"`) {
		t.Errorf("unexpected add output: %s", out)
	}

	out, err = run(t, "feedback", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "1 corrections submitted") || !strings.Contains(out, "Wrong Location") {
		t.Errorf("unexpected list output:\n%s", out)
	}

	if _, err := run(t, "feedback", "add", "--brand", "XYZ Mall", "--row", "7", "--issue", "Other"); err == nil {
		t.Errorf("unknown row should fail")
	}
}

func TestFeedbackAddSuggestsAlias(t *testing.T) {
	dir := setup(t)
	if _, err := run(t, "feedback", "add", "--brand", "XYZ Mall", "--row", "1", "--issue", "Wrong Brand", "--correct", "XYZ Malls"); err != nil {
		t.Fatal(err)
	}

	aliases, err := brand.NewSuggestionFile(filepath.Join(dir, "suggested.yaml")).Aliases()
	if err != nil {
		t.Fatal(err)
	}
	if got := aliases["XYZ Malls"]; len(got) != 1 || got[0] != "XYZ Mall" {
		t.Errorf("expected the correction to reach the alias suggestions, got %v", aliases)
	}
}

func TestMissingLeadsFile(t *testing.T) {
	setup(t)
	t.Setenv("LEADS_CSV_PATH", filepath.Join(t.TempDir(), "none.csv"))
	if _, err := run(t, "brands"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected a missing source error, got %v", err)
	}
}
