package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"networkingbude/config"
	"networkingbude/internal/adapters/email"
	"networkingbude/internal/adapters/scraper"
	"networkingbude/internal/adapters/storage"
	"networkingbude/internal/domain"
	"networkingbude/internal/repository/postgres"
	"networkingbude/internal/services"

	_ "github.com/lib/pq"
)

const scrapeTimeout = 20 * time.Second

// app holds the wired services shared by the subcommands.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *sql.DB
	profiles domain.ProfileRepository
	slots    domain.SlotService
	media    domain.MediaService
	autoFill domain.AutoFillService
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slotRepo := postgres.NewSlotRepository(db)

	var mediaStorage domain.MediaStorage
	var mediaService domain.MediaService
	if cfg.Storage.Bucket != "" {
		mediaStorage, err = storage.NewS3Storage(storage.S3Config{
			Region:          cfg.Storage.Region,
			Bucket:          cfg.Storage.Bucket,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Endpoint:        cfg.Storage.Endpoint,
			UsePathStyle:    cfg.Storage.UsePathStyle,
			PublicBaseURL:   cfg.Storage.PublicBaseURL,
		}, logger)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("init storage: %w", err)
		}
		mediaService = services.NewMediaService(mediaStorage, cfg.Storage.MaxImageWidth, logger)
	} else {
		logger.Warn("STORAGE_BUCKET not set, image upload is disabled")
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SESRegion,
			AccessKeyID:        cfg.Email.SESAccessKeyID,
			SecretAccessKey:    cfg.Email.SESSecretKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init mailer: %w", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	catalog, err := scraper.LoadCatalog(cfg.AutoFill.SourcesFile)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load autofill sources: %w", err)
	}
	pageScraper := scraper.NewPageScraper(&http.Client{Timeout: scrapeTimeout}, logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		profiles: postgres.NewProfileRepository(db),
		slots:    services.NewSlotService(slotRepo, mediaStorage, cfg.Regions, cfg.AtomicSwaps(), logger, cfg.RequestTimeout),
		media:    mediaService,
		autoFill: services.NewAutoFillService(slotRepo, catalog, pageScraper, emailService, services.AutoFillConfig{
			Lookahead:   cfg.AutoFill.Lookahead,
			Concurrency: cfg.AutoFill.Concurrency,
			ReportEmail: cfg.AutoFill.ReportEmail,
		}, logger),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
