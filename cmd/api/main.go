package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"voice-task-automation/config"
	"voice-task-automation/internal/command"
	"voice-task-automation/internal/command/extractor"
	"voice-task-automation/internal/dedupe"
	"voice-task-automation/internal/httpserver"
	"voice-task-automation/internal/pipeline"
	pipelineDelivery "voice-task-automation/internal/pipeline/delivery/http"
	"voice-task-automation/internal/pipeline/usecase"
	"voice-task-automation/pkg/datemath"
	"voice-task-automation/pkg/gcalendar"
	"voice-task-automation/pkg/log"
	"voice-task-automation/pkg/omnifocus"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
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

	logger.Info(ctx, "Starting voice task ingest server...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Command extraction
	dateParser, dtErr := datemath.NewParser(cfg.Environment.Timezone)
	if dtErr != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Environment.Timezone, dtErr)
		dateParser, _ = datemath.NewParser("UTC")
	}

	vocab := command.DefaultVocabulary()
	if cfg.Vocabulary.GroceryTag != "" {
		vocab.GroceryTag = cfg.Vocabulary.GroceryTag
	}
	if len(cfg.Vocabulary.GroceryTerms) > 0 {
		vocab.GroceryTerms = cfg.Vocabulary.GroceryTerms
	}
	if cfg.Vocabulary.BulletWord != "" {
		vocab.BulletWord = cfg.Vocabulary.BulletWord
	}

	cmdExtractor, err := extractor.New(vocab, dateParser)
	if err != nil {
		logger.Error(ctx, "Failed to build command extractor: ", err)
		return
	}

	// 4. Submission side
	window := dedupe.NewWindow(cfg.Dedupe.Window, cfg.Dedupe.MaxEntries)
	submitter := omnifocus.NewClient(cfg.OmniFocus.Scheme, cfg.OmniFocus.Autosave)

	var calendar pipeline.CalendarClient
	if cfg.GoogleCalendar.Enabled {
		gcal, gErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if gErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", gErr)
		} else {
			logger.Info(ctx, "Google Calendar initialized")
			calendar = gcal
		}
	}

	// 5. Pipeline
	pipelineUC, err := usecase.New(logger, cmdExtractor, nil, submitter, window, calendar, usecase.Config{
		RatePerMinute: cfg.Submission.RatePerMinute,
		Timezone:      cfg.Environment.Timezone,
		CalendarID:    cfg.GoogleCalendar.CalendarID,
		EventDuration: cfg.Submission.EventDuration,
	})
	if err != nil {
		logger.Error(ctx, "Failed to build pipeline: ", err)
		return
	}
	transcriptHandler := pipelineDelivery.New(logger, pipelineUC)

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:              cfg.HTTPServer.Port,
		Mode:              cfg.HTTPServer.Mode,
		Environment:       cfg.Environment.Name,
		TranscriptHandler: transcriptHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
