package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"voice-task-automation/config"
	"voice-task-automation/internal/command"
	"voice-task-automation/internal/command/extractor"
	"voice-task-automation/internal/dedupe"
	"voice-task-automation/internal/model"
	"voice-task-automation/internal/pipeline"
	"voice-task-automation/internal/pipeline/usecase"
	"voice-task-automation/internal/watcher"
	"voice-task-automation/pkg/datemath"
	"voice-task-automation/pkg/gcalendar"
	"voice-task-automation/pkg/log"
	"voice-task-automation/pkg/omnifocus"
	"voice-task-automation/pkg/stt"
)

func main() {
	watch := pflag.Bool("watch", false, "poll the inbox directory for new recordings")
	file := pflag.String("file", "", "process a single audio or transcript file and exit")
	text := pflag.String("text", "", "parse and submit a transcript given on the command line")
	pflag.Parse()

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
		os.Exit(1)
	}

	// 4. Transcription backend
	var transcriber stt.Transcriber
	switch cfg.STT.Backend {
	case "whisper_cpp":
		transcriber = stt.NewWhisperCPP(cfg.STT.WhisperExec, cfg.STT.WhisperModel)
	case "openai":
		transcriber = stt.NewOpenAI(cfg.STT.OpenAIKey, cfg.STT.OpenAIModel)
	default:
		logger.Warn(ctx, "No STT backend configured, audio files will be skipped")
	}

	// 5. Submission side
	window := dedupe.NewWindow(cfg.Dedupe.Window, cfg.Dedupe.MaxEntries)
	submitter := omnifocus.NewClient(cfg.OmniFocus.Scheme, cfg.OmniFocus.Autosave)

	var calendar pipeline.CalendarClient
	if cfg.GoogleCalendar.Enabled {
		gcal, gErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if gErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", gErr)
		} else {
			calendar = gcal
		}
	}

	// 6. Pipeline
	uc, err := usecase.New(logger, cmdExtractor, transcriber, submitter, window, calendar, usecase.Config{
		RatePerMinute: cfg.Submission.RatePerMinute,
		Timezone:      cfg.Environment.Timezone,
		CalendarID:    cfg.GoogleCalendar.CalendarID,
		EventDuration: cfg.Submission.EventDuration,
	})
	if err != nil {
		logger.Error(ctx, "Failed to build pipeline: ", err)
		os.Exit(1)
	}

	switch {
	case *text != "":
		runText(ctx, logger, uc, *text)
	case *file != "":
		runFile(ctx, logger, uc, *file, cfg.Inbox.SaveTranscripts)
	case *watch:
		runWatch(ctx, logger, uc, cfg.Inbox)
	default:
		pflag.Usage()
		os.Exit(2)
	}
}

func runText(ctx context.Context, logger log.Logger, uc pipeline.UseCase, transcript string) {
	sc := model.Scope{UserID: "cli", Source: "cli"}
	out, err := uc.ProcessTranscript(ctx, sc, pipeline.TranscriptInput{Transcript: transcript})
	report(ctx, logger, out, err)
}

func runFile(ctx context.Context, logger log.Logger, uc pipeline.UseCase, path string, saveTranscript bool) {
	sc := model.Scope{UserID: filepath.Base(path), Source: "cli"}

	var out pipeline.Result
	var err error
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		var raw []byte
		raw, err = os.ReadFile(path)
		if err == nil {
			out, err = uc.ProcessTranscript(ctx, sc, pipeline.TranscriptInput{Transcript: string(raw)})
		}
	} else {
		out, err = uc.ProcessRecording(ctx, sc, pipeline.RecordingInput{
			AudioPath:      path,
			SaveTranscript: saveTranscript,
		})
	}
	report(ctx, logger, out, err)
}

func runWatch(ctx context.Context, logger log.Logger, uc pipeline.UseCase, inbox config.InboxConfig) {
	w, err := watcher.New(logger, uc, watcher.Config{
		InboxDir:        inbox.Dir,
		ArchiveDir:      inbox.ArchiveDir,
		PollInterval:    inbox.PollInterval,
		AudioExtensions: inbox.AudioExtensions,
		LockStaleAfter:  inbox.LockStaleAfter,
		SaveTranscripts: inbox.SaveTranscripts,
	})
	if err != nil {
		logger.Error(ctx, "Failed to build watcher: ", err)
		os.Exit(1)
	}

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(ctx, "Watcher stopped: ", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Watcher stopped gracefully")
}

func report(ctx context.Context, logger log.Logger, out pipeline.Result, err error) {
	switch {
	case err == nil:
		logger.Infof(ctx, "Submitted task %q", out.Task.Name)
		if out.SubmittedURL != "" {
			fmt.Println(out.SubmittedURL)
		}
		if out.CalendarLink != "" {
			fmt.Println(out.CalendarLink)
		}
	case errors.Is(err, pipeline.ErrDuplicateSuppressed):
		logger.Infof(ctx, "Duplicate of recent task %q, skipped", out.Task.Name)
	default:
		logger.Error(ctx, "Processing failed: ", err)
		os.Exit(1)
	}
}
