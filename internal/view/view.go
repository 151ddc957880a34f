// Package view renders the dashboard page.
package view

import (
	_ "embed"
	"html"
	"html/template"
	"io"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/sarahselama/SerhSalesLead/internal/model"
	"github.com/sarahselama/SerhSalesLead/internal/service"
)

const (
	TabBrands   = "brands"
	TabAnalysis = "analysis"
	TabExport   = "export"

	GuidanceMissing = "missing"
	GuidanceEmpty   = "empty"

	messagePreviewRunes = 200
	exportPreviewRows   = 10
)

//go:embed templates/dashboard.html
var dashboardHTML string

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

// Campaign messages come from scraped captions and may carry markup.
var sanitizer = bluemonday.StrictPolicy()

// Page is everything the dashboard template needs for one request.
type Page struct {
	Tab             string
	Filter          service.Filter
	Industries      []string
	MinCampaignsMax int
	IssueTypes      []model.IssueType

	// Query is the filter plus open rows, without the tab.
	Query url.Values

	Summary           *service.Summary
	Brands            []BrandCard
	FilteredCampaigns int
	Analysis          *AnalysisView
	Export            *ExportView

	Feedback      []model.FeedbackRecord
	FeedbackError string

	Notice     string
	Error      string
	Guidance   string
	SourcePath string
}

type BrandCard struct {
	Name      string
	Industry  string
	Handle    string
	Campaigns int
	Locations int
	Rows      []CampaignRow
}

type CampaignRow struct {
	ID        string
	Number    int
	Date      string
	Type      string
	Location  string
	Formats   string
	Message   string
	Open      bool
	ToggleURL string
}

type Bar struct {
	Label   string
	Count   int
	Percent int
}

type AnalysisView struct {
	TopBrands  []Bar
	Industries []Bar
	Locations  []Bar
}

type ExportView struct {
	Summary       service.ExportSummary
	Header        []string
	Preview       [][]string
	Rows          int
	FileName      string
	ExcelFileName string
}

// NormalizeTab maps unknown tab names to the brands tab.
func NormalizeTab(tab string) string {
	switch tab {
	case TabAnalysis, TabExport:
		return tab
	}
	return TabBrands
}

// TabURL links to tab keeping the current filter and open rows.
func (p Page) TabURL(tab string) string {
	q := url.Values{}
	for k, v := range p.Query {
		q[k] = v
	}
	if tab != TabBrands {
		q.Set("tab", tab)
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

// Link builds a dashboard URL for tab carrying the filter and open rows.
func Link(tab string, f service.Filter, form model.FormState) string {
	q := f.Query()
	if tab != TabBrands {
		q.Set("tab", tab)
	}
	for _, id := range form.IDs() {
		q.Add("open", id)
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

// MessagePreview strips markup from msg and cuts it to 200 characters.
// The result is plain text; the template escapes it.
func MessagePreview(msg string) string {
	clean := strings.TrimSpace(html.UnescapeString(sanitizer.Sanitize(msg)))
	if utf8.RuneCountInString(clean) <= messagePreviewRunes {
		return clean
	}
	return string([]rune(clean)[:messagePreviewRunes]) + "..."
}

// Bars scales counts against the largest one.
func Bars(counts []service.Count) []Bar {
	max := 0
	for _, c := range counts {
		if c.Count > max {
			max = c.Count
		}
	}
	bars := make([]Bar, 0, len(counts))
	for _, c := range counts {
		pct := 0
		if max > 0 {
			pct = c.Count * 100 / max
		}
		bars = append(bars, Bar{Label: c.Label, Count: c.Count, Percent: pct})
	}
	return bars
}

// SetReport fills the page from a built report. form decides which
// feedback forms are shown open.
func (p *Page) SetReport(rep *service.Report, form model.FormState, exp *service.ExportService) {
	p.Filter = rep.Filter
	p.Summary = &rep.Summary
	p.Industries = rep.Summary.Industries
	p.FilteredCampaigns = rep.FilteredCampaigns

	p.Query = rep.Filter.Query()
	for _, id := range form.IDs() {
		p.Query.Add("open", id)
	}

	p.Brands = make([]BrandCard, 0, len(rep.Filtered))
	for _, g := range rep.Filtered {
		p.Brands = append(p.Brands, newBrandCard(g, rep.Filter, form))
	}

	p.Analysis = &AnalysisView{
		TopBrands:  Bars(rep.Analysis.TopBrands),
		Industries: Bars(rep.Analysis.Industries),
		Locations:  Bars(rep.Analysis.Locations),
	}

	table := exp.Project(rep.Leads)
	preview := table.Rows
	if len(preview) > exportPreviewRows {
		preview = preview[:exportPreviewRows]
	}
	p.Export = &ExportView{
		Summary:       exp.Summarize(rep.Leads),
		Header:        table.Header,
		Preview:       preview,
		Rows:          len(table.Rows),
		FileName:      exp.FileName(false),
		ExcelFileName: exp.FileName(true),
	}
}

func newBrandCard(g model.BrandGroup, f service.Filter, form model.FormState) BrandCard {
	card := BrandCard{
		Name:      g.BrandName,
		Industry:  g.Industry(),
		Handle:    g.Handle(),
		Campaigns: g.Count(),
		Locations: g.LocationCount(),
	}
	for i, l := range g.ByDateDesc() {
		key := model.RowKey{Brand: g.BrandName, Index: i + 1}
		card.Rows = append(card.Rows, CampaignRow{
			ID:        key.ID(),
			Number:    key.Index,
			Date:      orUnknown(l.PostDate),
			Type:      l.CampaignType,
			Location:  l.Location,
			Formats:   l.OOHFormats,
			Message:   MessagePreview(l.CampaignMessage),
			Open:      form.IsOpen(key),
			ToggleURL: Link(TabBrands, f, toggled(form, key)),
		})
	}
	return card
}

func toggled(form model.FormState, key model.RowKey) model.FormState {
	next := model.FormState{}
	for k, open := range form {
		next[k] = open
	}
	if next.IsOpen(key) {
		next.Close(key)
	} else {
		next.Open(key)
	}
	return next
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// Render writes the dashboard HTML.
func Render(w io.Writer, p Page) error {
	return dashboardTmpl.Execute(w, p)
}
