package service_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	appErrors "github.com/sarahselama/SerhSalesLead/internal/errors"
	"github.com/sarahselama/SerhSalesLead/internal/model"
	"github.com/sarahselama/SerhSalesLead/internal/service"
)

func fixtureGroups() []model.BrandGroup {
	leads := []model.Lead{
		{BrandName: "XYZ Mall", Industry: "Real Estate", Location: "Dubai Marina", IsUAE: true},
		{BrandName: "XYZ Mall", Industry: "Retail", Location: "Riyadh"},
		{BrandName: "XYZ Mall", Industry: "Real Estate", Location: "Sharjah", IsUAE: true},
		{BrandName: "ABC Corp", Industry: "Retail", Location: "Doha"},
		{BrandName: "abc foods", Industry: "F&B", Location: "Abu Dhabi", IsUAE: true},
		{BrandName: "abc foods", Industry: "F&B", Location: "Ajman", IsUAE: true},
		{BrandName: "Noon", Industry: "Retail", Location: "Riyadh"},
		{BrandName: "Noon", Industry: "E-commerce", Location: "Dubai", IsUAE: true},
	}
	return service.GroupByBrand(leads)
}

func names(groups []model.BrandGroup) []string {
	out := []string{}
	for _, g := range groups {
		out = append(out, g.BrandName)
	}
	return out
}

func mustFilter(t *testing.T, groups []model.BrandGroup, f service.Filter) []model.BrandGroup {
	t.Helper()
	out, err := service.ApplyFilter(groups, f)
	if err != nil {
		t.Fatalf("ApplyFilter(%+v): %v", f, err)
	}
	return out
}

func TestFilterNoneReturnsInput(t *testing.T) {
	groups := fixtureGroups()
	got := mustFilter(t, groups, service.Filter{})
	if diff := cmp.Diff(groups, got); diff != "" {
		t.Errorf("unfiltered result changed (-want +got):\n%s", diff)
	}
	got = mustFilter(t, groups, service.Filter{Region: "All"})
	if len(got) != len(groups) {
		t.Errorf("region All should be inactive, got %v", names(got))
	}
}

func TestFilterIndustryNamedAll(t *testing.T) {
	groups := service.GroupByBrand([]model.Lead{
		{BrandName: "Everything Store", Industry: "All"},
		{BrandName: "Noon", Industry: "Retail"},
	})
	got := names(mustFilter(t, groups, service.Filter{Industry: "All"}))
	if diff := cmp.Diff([]string{"Everything Store"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	f, err := service.ParseFilter(url.Values{"industry": {"All"}})
	if err != nil {
		t.Fatal(err)
	}
	if f.Industry != "All" || f.Query().Get("industry") != "All" {
		t.Errorf("industry All should round trip, got %+v", f)
	}
}

func TestFilterMinCampaignsZeroIsUnset(t *testing.T) {
	groups := fixtureGroups()
	unset := mustFilter(t, groups, service.Filter{MinCampaigns: 0})
	one := mustFilter(t, groups, service.Filter{MinCampaigns: 1})
	if diff := cmp.Diff(one, unset); diff != "" {
		t.Errorf("zero should behave like 1 (-want +got):\n%s", diff)
	}
	_, err := service.ApplyFilter(groups, service.Filter{MinCampaigns: -1})
	var invalid *appErrors.InvalidFilterError
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidFilterError for a negative count, got %v", err)
	}
}

func TestFilterPredicates(t *testing.T) {
	groups := fixtureGroups()
	tests := []struct {
		name   string
		filter service.Filter
		want   []string
	}{
		{"uae", service.Filter{Region: service.RegionUAE}, []string{"XYZ Mall", "abc foods", "Noon"}},
		{"industry", service.Filter{Industry: "Retail"}, []string{"XYZ Mall", "Noon", "ABC Corp"}},
		{"industry is case sensitive", service.Filter{Industry: "retail"}, []string{}},
		{"search ignores case", service.Filter{Search: "ABC"}, []string{"abc foods", "ABC Corp"}},
		{"min campaigns", service.Filter{MinCampaigns: 2}, []string{"XYZ Mall", "abc foods", "Noon"}},
		{"combined", service.Filter{Region: service.RegionUAE, Industry: "Retail", Search: "o"}, []string{"Noon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(mustFilter(t, groups, tt.filter))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func permutations(fs []service.Filter) [][]service.Filter {
	if len(fs) <= 1 {
		return [][]service.Filter{fs}
	}
	var out [][]service.Filter
	for i := range fs {
		rest := append(append([]service.Filter{}, fs[:i]...), fs[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]service.Filter{fs[i]}, p...))
		}
	}
	return out
}

func TestFilterPredicatesCommute(t *testing.T) {
	groups := fixtureGroups()
	single := []service.Filter{
		{Region: service.RegionUAE},
		{Industry: "Retail"},
		{Search: "o"},
		{MinCampaigns: 2},
	}
	want := names(mustFilter(t, groups, service.Filter{
		Region: service.RegionUAE, Industry: "Retail", Search: "o", MinCampaigns: 2,
	}))

	perms := permutations(single)
	if len(perms) != 24 {
		t.Fatalf("expected 24 orders, got %d", len(perms))
	}
	for _, order := range perms {
		current := groups
		for _, f := range order {
			current = mustFilter(t, current, f)
		}
		if diff := cmp.Diff(want, names(current)); diff != "" {
			t.Errorf("order %+v gave a different result (-want +got):\n%s", order, diff)
		}
	}
}

func TestFilterIdempotent(t *testing.T) {
	groups := fixtureGroups()
	f := service.Filter{Region: service.RegionUAE, MinCampaigns: 2}
	once := mustFilter(t, groups, f)
	twice := mustFilter(t, once, f)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second application changed the result (-once +twice):\n%s", diff)
	}
}

func TestMinCampaignsBoundaries(t *testing.T) {
	groups := fixtureGroups()
	max := groups[0].Count()

	if got := mustFilter(t, groups, service.Filter{MinCampaigns: 1}); len(got) != len(groups) {
		t.Errorf("min 1 should keep all %d groups, got %d", len(groups), len(got))
	}
	atMax := mustFilter(t, groups, service.Filter{MinCampaigns: max})
	if len(atMax) != 1 || atMax[0].Count() != max {
		t.Errorf("min=max should keep only the largest groups, got %v", names(atMax))
	}
	if got := mustFilter(t, groups, service.Filter{MinCampaigns: max + 1}); len(got) != 0 {
		t.Errorf("min=max+1 should be empty, got %v", names(got))
	}
}

func TestScenarioMinCampaigns(t *testing.T) {
	groups := service.GroupByBrand([]model.Lead{
		{BrandName: "XYZ Mall", PostDate: "2024-01-01"},
		{BrandName: "XYZ Mall", PostDate: "2024-02-01"},
		{BrandName: "XYZ Mall", PostDate: "2024-01-15"},
		{BrandName: "ABC Corp", PostDate: "2024-03-01"},
	})
	got := mustFilter(t, groups, service.Filter{MinCampaigns: 2})
	if len(got) != 1 || got[0].BrandName != "XYZ Mall" || got[0].Count() != 3 {
		t.Errorf("expected only XYZ Mall with 3 leads, got %v", names(got))
	}
}

func TestFilterInvalid(t *testing.T) {
	groups := fixtureGroups()
	for _, f := range []service.Filter{{MinCampaigns: -1}, {Region: "KSA"}} {
		_, err := service.ApplyFilter(groups, f)
		var invalid *appErrors.InvalidFilterError
		if !errors.As(err, &invalid) {
			t.Errorf("filter %+v: expected InvalidFilterError, got %v", f, err)
		}
	}
}

func TestParseFilter(t *testing.T) {
	q := url.Values{
		"region":        {"uae"},
		"industry":      {"Retail"},
		"search":        {"  noon "},
		"min_campaigns": {"3"},
	}
	f, err := service.ParseFilter(q)
	if err != nil {
		t.Fatal(err)
	}
	want := service.Filter{Region: service.RegionUAE, Industry: "Retail", Search: "noon", MinCampaigns: 3}
	if f != want {
		t.Errorf("got %+v, want %+v", f, want)
	}
	if got, _ := service.ParseFilter(f.Query()); got != want {
		t.Errorf("Query round trip: got %+v", got)
	}
}

func TestParseFilterRejectsBadMinimum(t *testing.T) {
	for _, raw := range []string{"0", "-2", "many"} {
		f, err := service.ParseFilter(url.Values{"min_campaigns": {raw}, "search": {"xyz"}})
		var invalid *appErrors.InvalidFilterError
		if !errors.As(err, &invalid) {
			t.Fatalf("min_campaigns=%s: expected InvalidFilterError, got %v", raw, err)
		}
		if invalid.Param != "min_campaigns" {
			t.Errorf("expected param min_campaigns, got %s", invalid.Param)
		}
		if f.MinCampaigns != 0 || f.Search != "xyz" {
			t.Errorf("bad parameter should be dropped and the rest kept, got %+v", f)
		}
	}
}

func TestParseFilterRejectsUnknownRegion(t *testing.T) {
	f, err := service.ParseFilter(url.Values{"region": {"Qatar"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if f.Region != "" {
		t.Errorf("invalid region should be dropped, got %q", f.Region)
	}
}
