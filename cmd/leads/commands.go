package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarahselama/SerhSalesLead/internal/model"
	"github.com/sarahselama/SerhSalesLead/internal/service"
)

func newBrandsCmd(a *app) *cobra.Command {
	var ff filterFlags
	var limit int
	var campaigns bool
	cmd := &cobra.Command{
		Use:   "brands",
		Short: "List brands and their campaigns",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ff.filter()
			if err != nil {
				return err
			}
			rep, err := a.reports.Build(f)
			if err != nil {
				return err
			}
			printBrands(cmd.OutOrStdout(), rep, limit, campaigns)
			return nil
		},
	}
	ff.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many brands (0 = all)")
	cmd.Flags().BoolVar(&campaigns, "campaigns", false, "list each brand's campaigns")
	return cmd
}

func newAnalysisCmd(a *app) *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:   "analysis",
		Short: "Print top brands, industries and locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ff.filter()
			if err != nil {
				return err
			}
			rep, err := a.reports.Build(f)
			if err != nil {
				return err
			}
			printAnalysis(cmd.OutOrStdout(), rep)
			return nil
		},
	}
	ff.register(cmd)
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var excel bool
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the sales-ready CSV",
		Long: `Write every lead as a sales-ready CSV with CRM column names.

--excel prefixes the file with a UTF-8 byte-order mark. Use -o - to write
to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			leads, err := a.reports.LoadLeads()
			if err != nil {
				return err
			}
			var body []byte
			if excel {
				body, err = a.export.ExcelCSV(leads)
			} else {
				body, err = a.export.CSV(leads)
			}
			if err != nil {
				return err
			}

			if out == "-" {
				_, err = cmd.OutOrStdout().Write(body)
				return err
			}
			if out == "" {
				out = a.export.FileName(excel)
			}
			if err := os.WriteFile(out, body, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			printExportSummary(cmd.OutOrStdout(), out, a.export.Summarize(leads))
			return nil
		},
	}
	cmd.Flags().BoolVar(&excel, "excel", false, "prefix the CSV with a UTF-8 BOM")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default ooh_sales_leads_YYYYMMDD.csv)")
	return cmd
}

func newFeedbackCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Read or add extraction corrections",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print the feedback log",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.feedback.List()
			if err != nil {
				return err
			}
			printFeedback(cmd.OutOrStdout(), records)
			return nil
		},
	}

	var (
		brandName, issue, correct, notes string
		row                              int
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a correction for one campaign",
		Long: `Record a correction for one campaign of a brand. --row is the 1-based
position of the campaign in the brand's newest-first list, as shown by
"leads brands --campaigns".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			issueType, err := model.ParseIssueType(issue)
			if err != nil {
				return err
			}
			rep, err := a.reports.Build(service.Filter{})
			if err != nil {
				return err
			}
			lead, ok := service.FindLead(rep.Groups, model.RowKey{Brand: brandName, Index: row})
			if !ok {
				return fmt.Errorf("no campaign %d for brand %q", row, brandName)
			}
			rec, err := a.feedback.Submit(lead, service.FeedbackInput{
				IssueType:    issueType,
				CorrectValue: correct,
				Notes:        notes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Recorded %s for %s (%s): %q -> %q\n",
				rec.IssueType, rec.BrandName, rec.CampaignDate, rec.ExtractedValue, rec.CorrectValue)
			return nil
		},
	}
	add.Flags().StringVar(&brandName, "brand", "", "brand name as shown in the report")
	add.Flags().IntVar(&row, "row", 1, "campaign number within the brand")
	add.Flags().StringVar(&issue, "issue", "", `issue type, e.g. "Wrong Industry" or WrongIndustry`)
	add.Flags().StringVar(&correct, "correct", "", "the correct value")
	add.Flags().StringVar(&notes, "notes", "", "optional notes")
	add.MarkFlagRequired("brand")
	add.MarkFlagRequired("issue")

	cmd.AddCommand(list, add)
	return cmd
}
