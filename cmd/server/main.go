// cmd/server/main.go
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/sarahselama/SerhSalesLead/internal/brand"
	"github.com/sarahselama/SerhSalesLead/internal/config"
	"github.com/sarahselama/SerhSalesLead/internal/controller"
	"github.com/sarahselama/SerhSalesLead/internal/handler"
	"github.com/sarahselama/SerhSalesLead/internal/repository"
	"github.com/sarahselama/SerhSalesLead/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}
	cfg := config.Load()

	canon, err := brand.Load(cfg.BrandAliasesPath)
	if err != nil {
		log.Fatal("❌ Failed to load brand aliases:", err)
	}
	log.Printf("✅ Loaded %d brand spellings from %s", canon.Len(), cfg.BrandAliasesPath)

	q, closeQueue := service.NewFeedbackQueue(cfg)
	defer closeQueue()

	leadRepo := repository.NewLeadRepository(cfg.LeadsCSVPath)
	feedbackRepo := repository.NewFeedbackRepository(cfg.FeedbackPath)

	reportService := &service.ReportService{
		Leads:        leadRepo,
		LeadService:  &service.LeadService{Brands: canon},
		TopBrands:    cfg.TopBrands,
		TopLocations: cfg.TopLocations,
	}
	feedbackService := &service.FeedbackService{
		Repo:  feedbackRepo,
		Queue: q,
		Topic: cfg.FeedbackQueue,
	}
	exportService := &service.ExportService{}

	dashboardController := &controller.DashboardController{
		Reports:         reportService,
		Feedback:        feedbackService,
		Export:          exportService,
		MinCampaignsMax: cfg.MinCampaignsMax,
	}
	leadHandler := &handler.LeadHandler{
		Reports:  reportService,
		Feedback: feedbackService,
		Export:   exportService,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(handler.EchoRequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(handler.Recover)

	// Dashboard routes
	r.Get("/", dashboardController.Dashboard)
	r.Post("/feedback", dashboardController.SubmitFeedback)
	r.Get("/export/sales.csv", dashboardController.SalesCSV)
	r.Get("/export/sales-excel.csv", dashboardController.SalesExcelCSV)
	r.Get("/export/feedback.csv", dashboardController.FeedbackCSV)

	// JSON API
	r.Mount("/api", leadHandler.Routes())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		handler.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Println("🚀 Server running on", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
