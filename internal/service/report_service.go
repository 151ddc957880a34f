// internal/service/report_service.go
package service

import (
	"github.com/sarahselama/SerhSalesLead/internal/model"
	"github.com/sarahselama/SerhSalesLead/internal/repository"
)

// ReportService runs load, normalize, group and filter in full on every
// call. The only memoisation is the lead repository's file cache.
type ReportService struct {
	Leads        repository.LeadRepositoryInterface
	LeadService  *LeadService
	TopBrands    int
	TopLocations int
}

// Report is everything the dashboard shows for one filter.
type Report struct {
	Leads             []model.Lead       `json:"-"`
	Groups            []model.BrandGroup `json:"-"`
	Filtered          []model.BrandGroup `json:"brands"`
	Filter            Filter             `json:"filter"`
	Summary           Summary            `json:"summary"`
	FilteredCampaigns int                `json:"filtered_campaigns"`
	Analysis          Analysis           `json:"analysis"`
}

// LoadLeads reads and normalizes the leads file.
func (s *ReportService) LoadLeads() ([]model.Lead, error) {
	records, err := s.Leads.Load()
	if err != nil {
		return nil, err
	}
	leads, err := s.LeadService.Normalize(records)
	if err != nil {
		return nil, err
	}
	return leads, nil
}

// Build produces the report for f. An invalid filter fails before any I/O.
func (s *ReportService) Build(f Filter) (*Report, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	leads, err := s.LoadLeads()
	if err != nil {
		return nil, err
	}

	groups := GroupByBrand(leads)
	filtered, err := ApplyFilter(groups, f)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Leads:    leads,
		Groups:   groups,
		Filtered: filtered,
		Filter:   f,
		Summary:  Summarize(groups),
		Analysis: Analyze(filtered, s.TopBrands, s.TopLocations),
	}
	for _, g := range filtered {
		rep.FilteredCampaigns += len(g.Leads)
	}
	return rep, nil
}

// FindLead resolves a dashboard row to its lead. Rows are numbered from 1
// in the brand's newest-first order.
func FindLead(groups []model.BrandGroup, key model.RowKey) (model.Lead, bool) {
	for _, g := range groups {
		if g.BrandName != key.Brand {
			continue
		}
		leads := g.ByDateDesc()
		if key.Index < 1 || key.Index > len(leads) {
			return model.Lead{}, false
		}
		return leads[key.Index-1], true
	}
	return model.Lead{}, false
}
