package service

import (
	"math"
	"sort"

	"github.com/sarahselama/SerhSalesLead/internal/model"
)

// Count is one bar of a chart.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Analysis backs the analysis tab.
type Analysis struct {
	TopBrands  []Count `json:"top_brands"`
	Industries []Count `json:"industries"`
	Locations  []Count `json:"locations"`
}

// Summary holds the headline metrics.
type Summary struct {
	TotalBrands    int      `json:"total_brands"`
	TotalCampaigns int      `json:"total_campaigns"`
	AvgCampaigns   float64  `json:"avg_campaigns_per_brand"`
	IndustryCount  int      `json:"industry_count"`
	Industries     []string `json:"industries"`
}

// Analyze computes the three chart series over groups.
func Analyze(groups []model.BrandGroup, topBrands, topLocations int) Analysis {
	return Analysis{
		TopBrands:  TopBrands(groups, topBrands),
		Industries: CountByIndustry(groups),
		Locations:  CountByLocation(groups, topLocations),
	}
}

// TopBrands returns the n brands with the most campaigns. n <= 0 means all.
func TopBrands(groups []model.BrandGroup, n int) []Count {
	counts := make([]Count, 0, len(groups))
	for _, g := range groups {
		counts = append(counts, Count{Label: g.BrandName, Count: len(g.Leads)})
	}
	return topN(sortDesc(counts), n)
}

// CountByIndustry counts campaigns per industry; a missing industry counts as "Unknown".
func CountByIndustry(groups []model.BrandGroup) []Count {
	return countLeads(groups, func(l model.Lead) string { return l.Industry })
}

// CountByLocation counts campaigns per location and keeps the top k. k <= 0 means all.
func CountByLocation(groups []model.BrandGroup, k int) []Count {
	return topN(countLeads(groups, func(l model.Lead) string { return l.Location }), k)
}

func countLeads(groups []model.BrandGroup, key func(model.Lead) string) []Count {
	index := map[string]int{}
	counts := []Count{}
	for _, g := range groups {
		for _, l := range g.Leads {
			label := key(l)
			if label == "" {
				label = "Unknown"
			}
			i, ok := index[label]
			if !ok {
				i = len(counts)
				index[label] = i
				counts = append(counts, Count{Label: label})
			}
			counts[i].Count++
		}
	}
	return sortDesc(counts)
}

// sortDesc orders by count descending; ties keep first-seen order.
func sortDesc(counts []Count) []Count {
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

func topN(counts []Count, n int) []Count {
	if n > 0 && len(counts) > n {
		return counts[:n]
	}
	return counts
}

// Summarize computes the headline metrics for groups.
func Summarize(groups []model.BrandGroup) Summary {
	s := Summary{TotalBrands: len(groups), Industries: []string{}}
	seen := map[string]bool{}
	for _, g := range groups {
		s.TotalCampaigns += len(g.Leads)
		for _, l := range g.Leads {
			if l.Industry != "" && !seen[l.Industry] {
				seen[l.Industry] = true
				s.Industries = append(s.Industries, l.Industry)
			}
		}
	}
	sort.Strings(s.Industries)
	s.IndustryCount = len(s.Industries)
	if s.TotalBrands > 0 {
		s.AvgCampaigns = math.Round(float64(s.TotalCampaigns)/float64(s.TotalBrands)*10) / 10
	}
	return s
}
