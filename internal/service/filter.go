package service

import (
	"net/url"
	"strconv"
	"strings"

	appErrors "github.com/sarahselama/SerhSalesLead/internal/errors"
	"github.com/sarahselama/SerhSalesLead/internal/model"
)

const (
	RegionAll = "All"
	RegionUAE = "UAE"
)

// Filter selects brand groups. Every field's zero value switches its
// predicate off; active predicates are combined with AND.
//
// MinCampaigns 0 means unset and behaves like 1, since every group has at
// least one campaign. A negative value is an InvalidFilterError. Industry is
// matched literally, so any industry name, "All" included, can be selected.
type Filter struct {
	Region       string `json:"region,omitempty"`
	Industry     string `json:"industry,omitempty"`
	Search       string `json:"search,omitempty"`
	MinCampaigns int    `json:"min_campaigns,omitempty"`
}

// Validate rejects values no predicate can evaluate.
func (f Filter) Validate() error {
	switch f.Region {
	case "", RegionAll, RegionUAE:
	default:
		return appErrors.NewInvalidFilter("region", f.Region, "expected All or UAE")
	}
	if f.MinCampaigns < 0 {
		return appErrors.NewInvalidFilter("min_campaigns", strconv.Itoa(f.MinCampaigns), "must be at least 1")
	}
	return nil
}

func (f Filter) IsZero() bool {
	return !f.uaeOnly() && f.Industry == "" && f.Search == "" && f.MinCampaigns <= 1
}

func (f Filter) uaeOnly() bool {
	return f.Region == RegionUAE
}

// Query encodes the active predicates as URL parameters, the inverse of ParseFilter.
func (f Filter) Query() url.Values {
	q := url.Values{}
	if f.uaeOnly() {
		q.Set("region", RegionUAE)
	}
	if f.Industry != "" {
		q.Set("industry", f.Industry)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.MinCampaigns > 1 {
		q.Set("min_campaigns", strconv.Itoa(f.MinCampaigns))
	}
	return q
}

// Match reports whether g satisfies every active predicate.
func (f Filter) Match(g model.BrandGroup) bool {
	if f.uaeOnly() && !anyLead(g, func(l model.Lead) bool { return l.IsUAE }) {
		return false
	}
	if ind := f.Industry; ind != "" && !anyLead(g, func(l model.Lead) bool { return l.Industry == ind }) {
		return false
	}
	if f.Search != "" && !containsFold(g.BrandName, f.Search) {
		return false
	}
	if f.MinCampaigns > 0 && len(g.Leads) < f.MinCampaigns {
		return false
	}
	return true
}

// ApplyFilter returns the groups matching f, in their original order.
// An inactive filter returns groups unchanged.
func ApplyFilter(groups []model.BrandGroup, f Filter) ([]model.BrandGroup, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.IsZero() {
		return groups, nil
	}

	out := []model.BrandGroup{}
	for _, g := range groups {
		if f.Match(g) {
			out = append(out, g)
		}
	}
	return out, nil
}

// ParseFilter reads region, industry, search and min_campaigns from q.
// When a parameter is invalid the returned filter has that parameter
// dropped, so callers can keep showing the rest, and the error says which.
func ParseFilter(q url.Values) (Filter, error) {
	f := Filter{
		Industry: strings.TrimSpace(q.Get("industry")),
		Search:   strings.TrimSpace(q.Get("search")),
	}
	var firstErr error

	region := strings.TrimSpace(q.Get("region"))
	if strings.EqualFold(region, RegionUAE) {
		region = RegionUAE
	}
	f.Region = region
	if err := (Filter{Region: region}).Validate(); err != nil {
		f.Region = ""
		firstErr = err
	}

	if raw := strings.TrimSpace(q.Get("min_campaigns")); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			if firstErr == nil {
				firstErr = appErrors.NewInvalidFilter("min_campaigns", raw, "not a whole number")
			}
		case n < 1:
			if firstErr == nil {
				firstErr = appErrors.NewInvalidFilter("min_campaigns", raw, "must be at least 1")
			}
		default:
			f.MinCampaigns = n
		}
	}

	return f, firstErr
}

func anyLead(g model.BrandGroup, pred func(model.Lead) bool) bool {
	for _, l := range g.Leads {
		if pred(l) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
