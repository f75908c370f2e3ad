package main

import (
	"mailsift/internal/analysis"
	"mailsift/internal/analyzer"
	"mailsift/internal/config"
	"mailsift/internal/database"
	"mailsift/internal/ingest"
	"mailsift/internal/server"
	"mailsift/internal/store"
)

// @title MailSift API
// @version 1.0
// @description Email ingestion and AI analysis service
// @BasePath /
func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger
	logger := cfg.SetupLogger()

	// Initialize database connection
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Database connection failed")
	}
	logger.Info().Msg("Database connection established successfully")

	if err := database.EnsureSchema(db); err != nil {
		logger.Fatal().Err(err).Msg("Schema migration failed")
	}

	repo := store.New(db, logger)

	// Analyzer client for the external analysis service
	client, err := analyzer.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Analyzer initialization failed")
	}

	analysisSvc := analysis.New(client, repo, cfg.AnalysisConcurrency, logger)
	ingestSvc := ingest.New(repo, logger)

	// Create and initialize server
	srv := server.New(cfg, db, repo, analysisSvc, ingestSvc, logger)
	srv.Initialize()

	// Start server
	if err := srv.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Server failed to start")
	}
}
