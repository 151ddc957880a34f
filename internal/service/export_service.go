// internal/service/export_service.go
package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/sarahselama/SerhSalesLead/internal/model"
)

// Sales-facing column labels. CRM import tooling keys off these exact strings.
const (
	SalesCompanyName       = "Company Name"
	SalesIndustrySector    = "Industry Sector"
	SalesTargetMarket      = "Target Market"
	SalesCampaignDate      = "Campaign Date"
	SalesCampaignCategory  = "Campaign Category"
	SalesAdvertisingFormat = "Advertising Formats"
	SalesCampaignDesc      = "Campaign Description"
	SalesInstagramHandle   = "Instagram Handle"
	SalesQualityBrand      = "Data Quality (Brand)"
	SalesQualityIndustry   = "Data Quality (Industry)"
)

// SalesColumnRenames maps source CSV columns to sales labels.
var SalesColumnRenames = map[string]string{
	ColPostDate:           SalesCampaignDate,
	ColBrandName:          SalesCompanyName,
	ColBrandHandle:        SalesInstagramHandle,
	ColIndustry:           SalesIndustrySector,
	ColCampaignType:       SalesCampaignCategory,
	ColCampaignMessage:    SalesCampaignDesc,
	ColOOHFormats:         SalesAdvertisingFormat,
	ColLocation:           SalesTargetMarket,
	ColBrandConfidence:    SalesQualityBrand,
	ColIndustryConfidence: SalesQualityIndustry,
}

// SalesColumnOrder is the column order of the export.
var SalesColumnOrder = []string{
	SalesCompanyName,
	SalesIndustrySector,
	SalesTargetMarket,
	SalesCampaignDate,
	SalesCampaignCategory,
	SalesAdvertisingFormat,
	SalesCampaignDesc,
	SalesInstagramHandle,
	SalesQualityBrand,
	SalesQualityIndustry,
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SalesTable is the projected export, ready to serialise.
type SalesTable struct {
	Header []string
	Rows   [][]string
}

// ExportSummary backs the lead summary on the export tab.
type ExportSummary struct {
	TotalCompanies  int `json:"total_companies"`
	TotalCampaigns  int `json:"total_campaigns"`
	HighQuality     int `json:"high_quality_leads"`
	RecentCampaigns int `json:"campaigns_last_30d"`
}

type ExportService struct {
	Now func() time.Time
}

func (s *ExportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Project renames and reorders lead fields for the sales team and sorts
// rows by campaign date (newest first) then company name. Empty sort keys
// go last.
func (s *ExportService) Project(leads []model.Lead) SalesTable {
	table := SalesTable{
		Header: append([]string(nil), SalesColumnOrder...),
		Rows:   make([][]string, 0, len(leads)),
	}

	for _, l := range leads {
		byLabel := make(map[string]string, len(SalesColumnRenames))
		for source, label := range SalesColumnRenames {
			byLabel[label] = sourceValue(l, source)
		}
		row := make([]string, len(SalesColumnOrder))
		for i, label := range SalesColumnOrder {
			row[i] = byLabel[label]
		}
		table.Rows = append(table.Rows, row)
	}

	const dateCol, nameCol = 3, 0
	sort.SliceStable(table.Rows, func(i, j int) bool {
		a, b := table.Rows[i], table.Rows[j]
		if a[dateCol] != b[dateCol] {
			return emptyLast(a[dateCol], b[dateCol], func(x, y string) bool { return x > y })
		}
		return emptyLast(a[nameCol], b[nameCol], func(x, y string) bool { return x < y })
	})
	return table
}

func emptyLast(a, b string, less func(a, b string) bool) bool {
	if a == "" || b == "" {
		return a != ""
	}
	return less(a, b)
}

func sourceValue(l model.Lead, column string) string {
	switch column {
	case ColBrandName:
		return l.BrandName
	case ColIndustry:
		return l.Industry
	case ColLocation:
		return l.Location
	case ColPostDate:
		return l.PostDate
	case ColCampaignType:
		return l.CampaignType
	case ColCampaignMessage:
		return l.CampaignMessage
	case ColBrandHandle:
		return l.BrandHandle
	case ColOOHFormats:
		return l.OOHFormats
	case ColBrandConfidence:
		return l.BrandConfidence
	case ColIndustryConfidence:
		return l.IndustryConfidence
	}
	return ""
}

// WriteCSV serialises table as UTF-8 CSV with a header row.
func WriteCSV(w io.Writer, table SalesTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Header); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("write export rows: %w", err)
	}
	return nil
}

// CSV returns the plain sales export.
func (s *ExportService) CSV(leads []model.Lead) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, s.Project(leads)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExcelCSV returns the sales export prefixed with a UTF-8 byte-order mark,
// which spreadsheet tools need to detect the encoding.
func (s *ExportService) ExcelCSV(leads []model.Lead) ([]byte, error) {
	body, err := s.CSV(leads)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, utf8BOM...), body...), nil
}

// FileName returns the download name for the export variant.
func (s *ExportService) FileName(excel bool) string {
	stamp := s.now().Format("20060102")
	if excel {
		return "ooh_sales_leads_excel_" + stamp + ".csv"
	}
	return "ooh_sales_leads_" + stamp + ".csv"
}

var campaignDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"01/02/2006",
}

func parseCampaignDate(s string) (time.Time, bool) {
	for _, layout := range campaignDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Summarize computes the export summary. Unparseable dates are not recent.
func (s *ExportService) Summarize(leads []model.Lead) ExportSummary {
	sum := ExportSummary{TotalCampaigns: len(leads)}
	cutoff := s.now().AddDate(0, 0, -30)
	companies := map[string]bool{}
	for _, l := range leads {
		companies[l.BrandName] = true
		if l.BrandConfidence == "HIGH" {
			sum.HighQuality++
		}
		if t, ok := parseCampaignDate(l.PostDate); ok && !t.Before(cutoff) {
			sum.RecentCampaigns++
		}
	}
	sum.TotalCompanies = len(companies)
	return sum
}
