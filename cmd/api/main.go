package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spendly/config"
	_ "spendly/docs" // Swagger docs
	"spendly/internal/advisor"
	chatHTTP "spendly/internal/chat/delivery/http"
	chatUC "spendly/internal/chat/usecase"
	"spendly/internal/document"
	"spendly/internal/httpserver"
	"spendly/internal/llm"
	"spendly/internal/middleware"
	"spendly/internal/session/backend"
	uploadHTTP "spendly/internal/upload/delivery/http"
	uploadUC "spendly/internal/upload/usecase"
	"spendly/pkg/llmprovider"
	"spendly/pkg/log"
)

// @title       Spendly API
// @description Conversational personal-finance backend: spending plans, tax intake, investment and loan eligibility.
// @version     1
// @host        localhost:8000
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Spendly...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. LLM providers
	manager, err := llmprovider.NewManagerFromConfig(ctx, &cfg.LLM, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		os.Exit(1)
	}
	if manager.Model() == "" {
		logger.Warn(ctx, "No LLM provider enabled: narratives, summaries and tax answers will degrade")
	}
	generator := llm.NewGenerator(manager, config.Duration(cfg.Chat.NarrativeTimeout, llm.DefaultGenerateTimeout), logger)
	extractor := llm.NewExtractor(manager, config.Duration(cfg.Chat.ExtractionTimeout, llm.DefaultExtractTimeout), logger)

	// 4. Document parser
	docOpt := document.Options{UnidocLicenseKey: cfg.Document.UnidocLicenseKey}
	if cfg.Document.LLMCategorise {
		docOpt.Generator = generator
	}
	parser, err := document.New(logger, docOpt)
	if err != nil {
		logger.Error(ctx, "Failed to initialize document parser: ", err)
		os.Exit(1)
	}
	if cfg.Document.UnidocLicenseKey == "" {
		logger.Warn(ctx, "UNIDOC_LICENSE_API_KEY not set: PDF payslips are disabled")
	}

	// 5. Session store
	repo, closeRepo, err := backend.Open(ctx, cfg.Session, logger)
	if err != nil {
		logger.Error(ctx, "Failed to open session store: ", err)
		os.Exit(1)
	}
	defer closeRepo()
	logger.Infof(ctx, "Session store: %s (cache: %t)", cfg.Session.Driver, cfg.Session.Cache.Enabled)

	// 6. Chat domain
	chat := chatUC.New(logger, repo, parser, advisor.New(generator, logger), extractor, generator, chatUC.Config{
		UploadDir:           cfg.Upload.Dir,
		HistoryWindow:       cfg.Chat.HistoryWindow,
		DefaultAnnualIncome: cfg.Chat.DefaultAnnualIncome,
	})
	chatHandler := chatHTTP.New(logger, chat)

	// 7. Upload domain
	maxBytes := cfg.Upload.MaxSizeMB << 20
	uploads := uploadUC.New(logger, uploadUC.Config{Dir: cfg.Upload.Dir, MaxBytes: maxBytes})
	uploadHandler := uploadHTTP.New(logger, uploads, maxBytes)

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ShutdownTimeout: 10 * time.Second,
		Middleware: middleware.New(logger, middleware.Config{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RequestsPerMin:   cfg.RateLimit.RequestsPerMin,
			Burst:            cfg.RateLimit.Burst,
		}),
		ChatHandler:   chatHandler,
		UploadHandler: uploadHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
