package main

import (
	"context"
	"fmt"
	"log"

	"procura/internal/catalog"
	"procura/internal/classify"
	"procura/internal/config"
	"procura/internal/email/noop"
	"procura/internal/email/ses"
	"procura/internal/extraction"
	"procura/internal/handler"
	"procura/internal/llm"
	"procura/internal/port"
	"procura/internal/repository/postgres"
	"procura/internal/router"
	"procura/internal/service"
	s3storage "procura/internal/storage/s3"

	_ "procura/internal/llm/claude"
	_ "procura/internal/llm/openai"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	requestRepo := postgres.NewRequestRepo(db)
	historyRepo := postgres.NewStatusHistoryRepo(db)
	groupRepo := postgres.NewCommodityGroupRepo(db)
	attachmentRepo := postgres.NewAttachmentRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email delivery
	emailSender, err := newEmailSender(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Initialize model client. A missing API key disables model calls;
	// offer parsing then fails fast and classification uses keywords.
	var modelClient llm.Client
	llmCfg := llm.Config{
		Provider:    cfg.LLM.Provider,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		TimeoutSecs: cfg.LLM.TimeoutSecs,
	}
	if llmCfg.Configured() {
		modelClient, err = llm.NewClient(llmCfg)
		if err != nil {
			return fmt.Errorf("failed to initialize model client: %w", err)
		}
	} else {
		log.Printf("no model API key configured; offer parsing disabled, classification uses keyword fallback")
	}

	keywords, err := loadKeywordTable(cfg.LLM.KeywordsFile)
	if err != nil {
		return fmt.Errorf("failed to load classification keywords: %w", err)
	}

	extractor := extraction.NewService(modelClient, extraction.Config{
		UseTOON:        cfg.LLM.UseTOON,
		FallbackToJSON: cfg.LLM.FallbackToJSON,
		MaxTokens:      cfg.LLM.MaxTokens,
	})
	classifier := classify.NewService(modelClient, loadCatalog(groupRepo), keywords)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	requestSvc := service.NewRequestService(requestRepo, historyRepo, groupRepo, userRepo, emailSender)
	attachmentSvc := service.NewAttachmentService(attachmentRepo, requestSvc, s3Client, cfg.S3, cfg.Upload)
	statsSvc := service.NewStatsService(statsRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	requestH := handler.NewRequestHandler(requestSvc)
	attachmentH := handler.NewAttachmentHandler(attachmentSvc)
	offerH := handler.NewOfferHandler(extractor, classifier, groupRepo)
	groupH := handler.NewCommodityGroupHandler(groupRepo)
	statsH := handler.NewStatsHandler(statsSvc)
	exportH := handler.NewExportHandler(requestSvc, groupRepo)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins,
		authH, requestH, attachmentH, offerH, groupH, statsH, exportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// loadCatalog prefers the seeded commodity groups; an empty or
// unreachable table falls back to the builtin seed.
func loadCatalog(groups port.CommodityGroupRepository) *catalog.Catalog {
	stored, err := groups.List(context.Background())
	if err != nil || len(stored) == 0 {
		if err != nil {
			log.Printf("loading commodity groups from database failed, using builtin catalog: %v", err)
		}
		return catalog.Builtin()
	}
	entries := make([]catalog.Entry, len(stored))
	for i, g := range stored {
		entries[i] = catalog.Entry{Category: g.Category, Name: g.Name, Description: g.Description}
	}
	return catalog.New(entries)
}

func loadKeywordTable(path string) (*classify.KeywordTable, error) {
	if path == "" {
		return classify.LoadKeywordTable()
	}
	return classify.LoadKeywordTableFromFile(path)
}

func newEmailSender(cfg *config.Config) (port.EmailSender, error) {
	switch cfg.Email.Provider {
	case "ses":
		return ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
	default:
		return noop.NewNoopSender(), nil
	}
}
