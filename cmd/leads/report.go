package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sarahselama/SerhSalesLead/internal/model"
	"github.com/sarahselama/SerhSalesLead/internal/service"
)

const width = 60

func header(w io.Writer, title string) {
	border := strings.Repeat("═", width)
	fmt.Fprintf(w, "\n╔%s╗\n", border)
	fmt.Fprintf(w, "║%s║\n", center(title, width))
	fmt.Fprintf(w, "╚%s╝\n", border)
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n %s\n%s\n", title, strings.Repeat("─", width))
}

func printBrands(w io.Writer, rep *service.Report, limit int, campaigns bool) {
	header(w, "OOH ADVERTISING SALES LEADS")

	s := rep.Summary
	section(w, "OVERVIEW")
	fmt.Fprintf(w, "  Total Brands         : %d\n", s.TotalBrands)
	fmt.Fprintf(w, "  Total Campaigns      : %d\n", s.TotalCampaigns)
	fmt.Fprintf(w, "  Avg Campaigns/Brand  : %.1f\n", s.AvgCampaigns)
	fmt.Fprintf(w, "  Industries           : %d\n", s.IndustryCount)

	section(w, fmt.Sprintf("SHOWING %d BRANDS WITH %d CAMPAIGNS", len(rep.Filtered), rep.FilteredCampaigns))
	if len(rep.Filtered) == 0 {
		fmt.Fprintln(w, "  No brands match your filters")
	}
	for i, g := range rep.Filtered {
		if limit > 0 && i >= limit {
			fmt.Fprintf(w, "  ... %d more\n", len(rep.Filtered)-limit)
			break
		}
		fmt.Fprintf(w, "  %-30s %3d campaigns  %s\n", truncate(g.BrandName, 30), g.Count(), g.Industry())
		if !campaigns {
			continue
		}
		for n, l := range g.ByDateDesc() {
			fmt.Fprintf(w, "      %d. %-12s %-18s %s\n", n+1, orUnknown(l.PostDate), truncate(l.Location, 18), truncate(l.CampaignType, 20))
		}
	}
	fmt.Fprintln(w)
}

func printAnalysis(w io.Writer, rep *service.Report) {
	header(w, "CAMPAIGN ANALYSIS")
	printCounts(w, "TOP BRANDS BY CAMPAIGN COUNT", rep.Analysis.TopBrands)
	printCounts(w, "CAMPAIGNS BY INDUSTRY", rep.Analysis.Industries)
	printCounts(w, "CAMPAIGNS BY LOCATION", rep.Analysis.Locations)
	fmt.Fprintln(w)
}

func printCounts(w io.Writer, title string, counts []service.Count) {
	section(w, title)
	for _, c := range counts {
		fmt.Fprintf(w, "  %-25s %3d  %s\n", truncate(c.Label, 24)+":", c.Count, strings.Repeat("▓", c.Count))
	}
}

func printExportSummary(w io.Writer, path string, s service.ExportSummary) {
	fmt.Fprintf(w, "✅ Wrote %s\n", path)
	section(w, "LEAD SUMMARY")
	fmt.Fprintf(w, "  Total Companies       : %d\n", s.TotalCompanies)
	fmt.Fprintf(w, "  Total Campaigns       : %d\n", s.TotalCampaigns)
	fmt.Fprintf(w, "  High Quality Leads    : %d\n", s.HighQuality)
	fmt.Fprintf(w, "  Campaigns (Last 30d)  : %d\n", s.RecentCampaigns)
}

func printFeedback(w io.Writer, records []model.FeedbackRecord) {
	header(w, "QUALITY FEEDBACK LOG")
	fmt.Fprintf(w, "\n  %d corrections submitted\n", len(records))
	for _, r := range records {
		fmt.Fprintf(w, "  %-26s %-22s %-24s %s\n", r.Timestamp, truncate(r.BrandName, 22), r.IssueLabel(), r.CorrectValue)
	}
	fmt.Fprintln(w)
}

func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
