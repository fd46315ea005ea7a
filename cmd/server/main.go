package main

import (
	"database/sql"
	"net/http"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/procureflow/procureflow/internal/api"
	"github.com/procureflow/procureflow/internal/config"
	"github.com/procureflow/procureflow/internal/mail"
	"github.com/procureflow/procureflow/internal/services"
	"github.com/procureflow/procureflow/internal/store"
)

func main() {
	cfg := config.Load()

	var log *zap.Logger
	var err error
	if cfg.Production() {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	var st store.Store
	if cfg.SQLitePath != "" {
		db, err := sql.Open("sqlite3", cfg.SQLitePath)
		if err != nil {
			log.Fatal("open sqlite database", zap.Error(err))
		}
		defer func() { _ = db.Close() }()
		sq, err := store.NewSQLiteStore(db, log)
		if err != nil {
			log.Fatal("init sqlite store", zap.Error(err))
		}
		st = sq
		log.Info("using sqlite store", zap.String("path", cfg.SQLitePath))
	} else {
		st = store.NewMemoryStore()
		log.Info("using in-memory store")
	}
	if cfg.Seed {
		store.Seed(st, time.Now().UTC())
		log.Info("seeded demo data")
	}

	// Without an API key the intake endpoints answer 502 and comparisons
	// fall back to the deterministic narrative.
	var ai services.Completer
	if cfg.OpenAIKey != "" {
		ai = services.NewChatClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, nil)
	} else {
		log.Warn("OPENAI_API_KEY not set, extraction and narrative generation disabled")
	}

	var mailer services.RfpMailer
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom, log)
	} else {
		mailer = mail.NewLogMailer(log)
		log.Info("SMTP_HOST not set, RFP emails will be logged instead of sent")
	}

	intake := services.NewIntakeService(ai)
	rfps := services.NewRfpService(st, mailer, log)
	vendors := services.NewVendorService(st)
	proposals := services.NewProposalService(st, intake, log)
	advisor := services.NewNarrativeAdvisor(ai, log)
	comparisons := services.NewComparisonService(st, advisor, log)

	server := api.NewServer(rfps, vendors, proposals, comparisons, intake, log)

	log.Info("listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, server.Routes()); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
