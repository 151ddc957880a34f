// internal/service/lead_service.go
package service

import (
	"sort"
	"strings"

	appErrors "github.com/sarahselama/SerhSalesLead/internal/errors"
	"github.com/sarahselama/SerhSalesLead/internal/model"
	"github.com/sarahselama/SerhSalesLead/internal/repository"
)

// Source CSV columns.
const (
	ColBrandName          = "Brand Name"
	ColIndustry           = "Industry"
	ColLocation           = "Location"
	ColPostDate           = "Post Date"
	ColCampaignType       = "Campaign Type"
	ColCampaignMessage    = "Campaign Message"
	ColBrandHandle        = "Brand Handle"
	ColOOHFormats         = "OOH Formats"
	ColBrandConfidence    = "Brand Confidence"
	ColIndustryConfidence = "Industry Confidence"
)

const (
	UnknownBrand         = "Unknown"
	NoMessagePlaceholder = "No description available"
)

var uaeTokens = []string{
	"uae", "dubai", "sharjah", "abu dhabi", "ajman",
	"ras al khaimah", "fujairah", "umm al quwain",
}

// BrandCanonicalizer maps a raw brand name to its canonical spelling.
// Unrecognised names may be returned unchanged.
type BrandCanonicalizer interface {
	Normalize(raw string) string
}

type LeadService struct {
	Brands BrandCanonicalizer
}

// Normalize turns raw CSV records into leads. Absent or null optional
// columns never fail the batch; they leave the field empty, except the
// campaign message which falls back to a placeholder.
func (s *LeadService) Normalize(records []repository.RawRecord) ([]model.Lead, error) {
	if len(records) == 0 {
		return nil, appErrors.NewEmptyInput("")
	}

	leads := make([]model.Lead, 0, len(records))
	for _, rec := range records {
		var l model.Lead

		l.BrandName = UnknownBrand
		if raw, ok := rec.Get(ColBrandName); ok {
			name := raw
			if s.Brands != nil {
				name = s.Brands.Normalize(raw)
			}
			if strings.TrimSpace(name) != "" {
				l.BrandName = name
			}
		}

		l.Industry = rec[ColIndustry]
		l.Location = rec[ColLocation]
		l.PostDate = rec[ColPostDate]
		l.CampaignType = rec[ColCampaignType]
		l.BrandHandle = rec[ColBrandHandle]
		l.OOHFormats = rec[ColOOHFormats]
		l.BrandConfidence = rec[ColBrandConfidence]
		l.IndustryConfidence = rec[ColIndustryConfidence]

		l.CampaignMessage = rec[ColCampaignMessage]
		if strings.TrimSpace(l.CampaignMessage) == "" {
			l.CampaignMessage = NoMessagePlaceholder
		}

		l.IsUAE = IsUAELocation(l.Location)
		leads = append(leads, l)
	}
	return leads, nil
}

// IsUAELocation reports whether location names the UAE or one of its emirates.
func IsUAELocation(location string) bool {
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "" {
		return false
	}
	for _, token := range uaeTokens {
		if strings.Contains(loc, token) {
			return true
		}
	}
	return false
}

// GroupByBrand partitions leads by brand name, keeping source order inside
// each group, and orders groups by descending size. Equal sizes keep the
// order in which the brands were first seen.
func GroupByBrand(leads []model.Lead) []model.BrandGroup {
	index := make(map[string]int)
	groups := []model.BrandGroup{}

	for _, l := range leads {
		i, ok := index[l.BrandName]
		if !ok {
			i = len(groups)
			index[l.BrandName] = i
			groups = append(groups, model.BrandGroup{BrandName: l.BrandName})
		}
		groups[i].Leads = append(groups[i].Leads, l)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return len(groups[a].Leads) > len(groups[b].Leads)
	})
	return groups
}
