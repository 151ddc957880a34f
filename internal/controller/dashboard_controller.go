// internal/controller/dashboard_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"

	appErrors "github.com/sarahselama/SerhSalesLead/internal/errors"
	"github.com/sarahselama/SerhSalesLead/internal/model"
	"github.com/sarahselama/SerhSalesLead/internal/service"
	"github.com/sarahselama/SerhSalesLead/internal/view"
)

const feedbackLogFileName = "ai_feedback_log.csv"

// DashboardController serves the HTML report and its downloads. Every
// request rebuilds the report from the leads file.
type DashboardController struct {
	Reports         *service.ReportService
	Feedback        *service.FeedbackService
	Export          *service.ExportService
	MinCampaignsMax int
}

// Dashboard renders GET /. Query parameters: tab, the filter parameters and
// open (row ids whose feedback form is shown).
func (c *DashboardController) Dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := c.newPage(q)
	if q.Get("submitted") != "" {
		page.Notice = "✅ Feedback submitted! This will help improve AI extraction."
	}
	c.render(w, page, q, http.StatusOK)
}

// SubmitFeedback handles POST /feedback from a campaign row's form and
// redirects back to the dashboard state the form was opened from.
func (c *DashboardController) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	back, _ := url.ParseQuery(r.PostForm.Get("return"))
	page := c.newPage(back)

	key, err := model.ParseRowKey(r.PostForm.Get("row"))
	if err != nil {
		page.Error = err.Error()
		c.render(w, page, back, http.StatusBadRequest)
		return
	}
	issue, err := model.ParseIssueType(r.PostForm.Get("issue_type"))
	if err != nil {
		page.Error = err.Error()
		c.render(w, page, back, http.StatusBadRequest)
		return
	}

	rep, err := c.Reports.Build(service.Filter{})
	if err != nil {
		log.Println("❌ Error loading leads for feedback:", err)
		page.Error = err.Error()
		c.render(w, page, back, http.StatusInternalServerError)
		return
	}
	lead, ok := service.FindLead(rep.Groups, key)
	if !ok {
		page.Error = fmt.Sprintf("campaign %d of %s no longer exists", key.Index, key.Brand)
		c.render(w, page, back, http.StatusNotFound)
		return
	}

	_, err = c.Feedback.Submit(lead, service.FeedbackInput{
		IssueType:    issue,
		CorrectValue: r.PostForm.Get("correct_value"),
		Notes:        r.PostForm.Get("notes"),
	})
	if err != nil {
		page.Error = "Could not save feedback: " + err.Error()
		c.render(w, page, back, http.StatusInternalServerError)
		return
	}

	f, _ := service.ParseFilter(back)
	form := model.FormStateFromIDs(back["open"])
	form.Close(key)
	loc := view.Link(view.TabBrands, f, form)
	if loc == "/" {
		loc += "?submitted=1"
	} else {
		loc += "&submitted=1"
	}
	http.Redirect(w, r, loc, http.StatusSeeOther)
}

// SalesCSV serves the plain sales export of every lead.
func (c *DashboardController) SalesCSV(w http.ResponseWriter, r *http.Request) {
	c.salesExport(w, false)
}

// SalesExcelCSV serves the sales export with a byte-order mark for spreadsheets.
func (c *DashboardController) SalesExcelCSV(w http.ResponseWriter, r *http.Request) {
	c.salesExport(w, true)
}

func (c *DashboardController) salesExport(w http.ResponseWriter, excel bool) {
	leads, err := c.Reports.LoadLeads()
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	var body []byte
	if excel {
		body, err = c.Export.ExcelCSV(leads)
	} else {
		body, err = c.Export.CSV(leads)
	}
	if err != nil {
		log.Println("❌ Error writing export:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeDownload(w, c.Export.FileName(excel), body)
}

// FeedbackCSV serves the feedback log as CSV.
func (c *DashboardController) FeedbackCSV(w http.ResponseWriter, r *http.Request) {
	records, err := c.Feedback.List()
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	body, err := service.FeedbackCSV(records)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeDownload(w, feedbackLogFileName, body)
}

func writeDownload(w http.ResponseWriter, name string, body []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(body)
}

func statusFor(err error) int {
	var (
		missing *appErrors.MissingSourceError
		empty   *appErrors.EmptyInputError
	)
	switch {
	case errors.As(err, &missing):
		return http.StatusNotFound
	case errors.As(err, &empty):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (c *DashboardController) newPage(q url.Values) view.Page {
	return view.Page{
		Tab:             view.NormalizeTab(q.Get("tab")),
		MinCampaignsMax: c.MinCampaignsMax,
		IssueTypes:      model.IssueTypes,
	}
}

// render builds the report for q into page. A bad filter parameter is
// reported inline and the rest of the filter still applies. Missing and
// empty leads files render guidance instead of the report.
func (c *DashboardController) render(w http.ResponseWriter, page view.Page, q url.Values, status int) {
	f, err := service.ParseFilter(q)
	if err != nil && page.Error == "" {
		page.Error = err.Error()
	}

	rep, err := c.Reports.Build(f)
	var (
		missing *appErrors.MissingSourceError
		empty   *appErrors.EmptyInputError
	)
	switch {
	case errors.As(err, &missing):
		page.Guidance = view.GuidanceMissing
		page.SourcePath = missing.Path
	case errors.As(err, &empty):
		page.Guidance = view.GuidanceEmpty
		page.SourcePath = c.Reports.Leads.Source()
	case err != nil:
		log.Println("❌ Error building report:", err)
		page.Error = err.Error()
		status = http.StatusInternalServerError
	default:
		page.SetReport(rep, model.FormStateFromIDs(q["open"]), c.Export)
	}

	if page.Tab == view.TabExport {
		records, err := c.Feedback.List()
		if err != nil {
			page.FeedbackError = err.Error()
		} else {
			page.Feedback = records
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := view.Render(w, page); err != nil {
		log.Println("❌ Error rendering dashboard:", err)
	}
}
