package main

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sarahselama/SerhSalesLead/internal/brand"
	"github.com/sarahselama/SerhSalesLead/internal/config"
	"github.com/sarahselama/SerhSalesLead/internal/repository"
	"github.com/sarahselama/SerhSalesLead/internal/service"
)

// app holds the services a command needs, built once flags are parsed.
type app struct {
	cfg      *config.Config
	reports  *service.ReportService
	feedback *service.FeedbackService
	export   *service.ExportService

	closeQueue func()
}

type filterFlags struct {
	uaeOnly      bool
	industry     string
	search       string
	minCampaigns int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.uaeOnly, "uae", false, "only brands with a UAE campaign")
	cmd.Flags().StringVar(&f.industry, "industry", "", "only brands with a campaign in this industry")
	cmd.Flags().StringVar(&f.search, "search", "", "case-insensitive substring of the brand name")
	cmd.Flags().IntVar(&f.minCampaigns, "min-campaigns", 1, "minimum campaigns per brand")
}

// filter validates the flags the same way the dashboard validates its query.
func (f *filterFlags) filter() (service.Filter, error) {
	q := url.Values{}
	if f.uaeOnly {
		q.Set("region", service.RegionUAE)
	}
	q.Set("industry", f.industry)
	q.Set("search", f.search)
	q.Set("min_campaigns", strconv.Itoa(f.minCampaigns))
	return service.ParseFilter(q)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var leadsPath, feedbackPath string

	root := &cobra.Command{
		Use:   "leads",
		Short: "Inspect OOH sales leads from the terminal",
		Long: `Browse the AI-extracted OOH leads grouped by brand, print the
analysis charts, export the sales CSV and manage the feedback log.

Paths default to LEADS_CSV_PATH, FEEDBACK_PATH and BRAND_ALIASES_PATH.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(leadsPath, feedbackPath)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	root.PersistentFlags().StringVar(&leadsPath, "leads", "", "leads CSV path (overrides LEADS_CSV_PATH)")
	root.PersistentFlags().StringVar(&feedbackPath, "feedback", "", "feedback JSON path (overrides FEEDBACK_PATH)")

	root.AddCommand(newBrandsCmd(a), newAnalysisCmd(a), newExportCmd(a), newFeedbackCmd(a))
	return root
}

func (a *app) init(leadsPath, feedbackPath string) error {
	a.cfg = config.Load()
	if leadsPath != "" {
		a.cfg.LeadsCSVPath = leadsPath
	}
	if feedbackPath != "" {
		a.cfg.FeedbackPath = feedbackPath
	}

	canon, err := brand.Load(a.cfg.BrandAliasesPath)
	if err != nil {
		return err
	}
	a.reports = &service.ReportService{
		Leads:        repository.NewLeadRepository(a.cfg.LeadsCSVPath),
		LeadService:  &service.LeadService{Brands: canon},
		TopBrands:    a.cfg.TopBrands,
		TopLocations: a.cfg.TopLocations,
	}
	q, closeQueue := service.NewFeedbackQueue(a.cfg)
	a.closeQueue = closeQueue
	a.feedback = &service.FeedbackService{
		Repo:  repository.NewFeedbackRepository(a.cfg.FeedbackPath),
		Queue: q,
		Topic: a.cfg.FeedbackQueue,
	}
	a.export = &service.ExportService{}
	return nil
}

// close lets queued feedback events finish before the process exits.
func (a *app) close() {
	if a.closeQueue != nil {
		a.closeQueue()
	}
}
