// internal/handler/lead_handler.go
package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sarahselama/SerhSalesLead/internal/model"
	"github.com/sarahselama/SerhSalesLead/internal/service"
)

// LeadHandler serves the JSON API over the same report the dashboard renders.
type LeadHandler struct {
	Reports  *service.ReportService
	Feedback *service.FeedbackService
	Export   *service.ExportService
}

// Routes returns the API router, mounted under /api by the server.
func (h *LeadHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/brands", h.ListBrands)
	r.Get("/analysis", h.GetAnalysis)
	r.Get("/summary", h.GetSummary)
	r.Get("/feedback", h.ListFeedback)
	r.Post("/feedback", h.CreateFeedback)
	return r
}

type brandView struct {
	BrandName     string       `json:"brand_name"`
	Industry      string       `json:"industry"`
	Handle        string       `json:"handle,omitempty"`
	Campaigns     int          `json:"campaigns"`
	LocationCount int          `json:"location_count"`
	Leads         []model.Lead `json:"leads"`
}

func newBrandView(g model.BrandGroup) brandView {
	return brandView{
		BrandName:     g.BrandName,
		Industry:      g.Industry(),
		Handle:        g.Handle(),
		Campaigns:     g.Count(),
		LocationCount: g.LocationCount(),
		Leads:         g.ByDateDesc(),
	}
}

func (h *LeadHandler) report(w http.ResponseWriter, r *http.Request) (*service.Report, bool) {
	f, err := service.ParseFilter(r.URL.Query())
	if err != nil {
		WriteAppError(w, r, err)
		return nil, false
	}
	rep, err := h.Reports.Build(f)
	if err != nil {
		log.Println("❌ Error building report:", err)
		WriteAppError(w, r, err)
		return nil, false
	}
	return rep, true
}

// ListBrands returns the filtered brand groups, newest campaign first within each.
func (h *LeadHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.report(w, r)
	if !ok {
		return
	}
	brands := make([]brandView, 0, len(rep.Filtered))
	for _, g := range rep.Filtered {
		brands = append(brands, newBrandView(g))
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data":               brands,
		"filter":             rep.Filter,
		"filtered_brands":    len(rep.Filtered),
		"filtered_campaigns": rep.FilteredCampaigns,
	})
}

func (h *LeadHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.report(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, rep.Analysis)
}

// GetSummary returns the header metrics and the export summary. Both cover
// every lead regardless of the filter.
func (h *LeadHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.report(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"summary": rep.Summary,
		"export":  h.Export.Summarize(rep.Leads),
	})
}

func (h *LeadHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	records, err := h.Feedback.List()
	if err != nil {
		log.Println("❌ Error reading feedback:", err)
		WriteAppError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data":  records,
		"count": len(records),
	})
}

// CreateFeedback records a correction for one campaign row. The row is
// addressed the way the dashboard addresses it: brand plus 1-based index in
// newest-first order.
func (h *LeadHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	var body struct {
		BrandName    string           `json:"brand_name"`
		Row          int              `json:"row"`
		IssueType    *model.IssueType `json:"issue_type"`
		CorrectValue string           `json:"correct_value"`
		Notes        string           `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_body", "invalid request body: "+err.Error())
		return
	}
	if body.IssueType == nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_body", "issue_type is required")
		return
	}

	rep, err := h.Reports.Build(service.Filter{})
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	lead, ok := service.FindLead(rep.Groups, model.RowKey{Brand: body.BrandName, Index: body.Row})
	if !ok {
		WriteError(w, r, http.StatusNotFound, "unknown_row", "no campaign row for that brand and index")
		return
	}

	rec, err := h.Feedback.Submit(lead, service.FeedbackInput{
		IssueType:    *body.IssueType,
		CorrectValue: body.CorrectValue,
		Notes:        body.Notes,
	})
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, rec)
}
