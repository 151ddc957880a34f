// internal/model/lead.go
package model

import "sort"

// Lead is one normalized row of the extracted leads CSV.
// Empty strings mean the column was absent or null in the source.
type Lead struct {
	BrandName          string `json:"brand_name"`
	Industry           string `json:"industry,omitempty"`
	Location           string `json:"location,omitempty"`
	PostDate           string `json:"post_date,omitempty"`
	CampaignType       string `json:"campaign_type,omitempty"`
	CampaignMessage    string `json:"campaign_message"`
	BrandHandle        string `json:"brand_handle,omitempty"`
	OOHFormats         string `json:"ooh_formats,omitempty"`
	BrandConfidence    string `json:"brand_confidence,omitempty"`
	IndustryConfidence string `json:"industry_confidence,omitempty"`
	IsUAE              bool   `json:"is_uae"`
}

// BrandGroup holds every lead of one brand in source order.
type BrandGroup struct {
	BrandName string `json:"brand_name"`
	Leads     []Lead `json:"leads"`
}

func (g BrandGroup) Count() int {
	return len(g.Leads)
}

// Industry reports the first non-empty industry seen for the brand.
// Members that disagree are not reconciled.
func (g BrandGroup) Industry() string {
	for _, l := range g.Leads {
		if l.Industry != "" {
			return l.Industry
		}
	}
	return "Unknown"
}

// Handle reports the first non-empty brand handle seen for the brand.
func (g BrandGroup) Handle() string {
	for _, l := range g.Leads {
		if l.BrandHandle != "" {
			return l.BrandHandle
		}
	}
	return ""
}

// LocationCount counts distinct locations, with a missing one counted as "Unknown".
func (g BrandGroup) LocationCount() int {
	seen := map[string]bool{}
	for _, l := range g.Leads {
		loc := l.Location
		if loc == "" {
			loc = "Unknown"
		}
		seen[loc] = true
	}
	return len(seen)
}

// ByDateDesc returns a copy of the leads, newest post date first.
func (g BrandGroup) ByDateDesc() []Lead {
	out := make([]Lead, len(g.Leads))
	copy(out, g.Leads)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PostDate > out[j].PostDate
	})
	return out
}
