package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DotenvName is an optional per-user env file loaded before viper runs,
// so desktop installs can keep secrets out of config.yaml.
const DotenvName = ".voice-task-automation.env"

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Voice capture pipeline specifics
	Inbox          InboxConfig
	OmniFocus      OmniFocusConfig
	Dedupe         DedupeConfig
	Submission     SubmissionConfig
	STT            STTConfig
	Vocabulary     VocabularyConfig
	GoogleCalendar GoogleCalendarConfig
}

type EnvironmentConfig struct {
	Name     string
	Timezone string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type InboxConfig struct {
	Dir             string
	ArchiveDir      string
	PollInterval    time.Duration
	AudioExtensions []string
	LockStaleAfter  time.Duration
	SaveTranscripts bool
}

type OmniFocusConfig struct {
	Scheme   string
	Autosave bool
}

type DedupeConfig struct {
	Window     time.Duration
	MaxEntries int
}

type SubmissionConfig struct {
	RatePerMinute int
	EventDuration time.Duration
}

// STTConfig selects the transcription backend. Backend is "whisper_cpp",
// "openai" or "" (transcription disabled, text ingest only).
type STTConfig struct {
	Backend      string
	WhisperExec  string
	WhisperModel string
	OpenAIKey    string
	OpenAIModel  string
}

type VocabularyConfig struct {
	GroceryTag   string
	GroceryTerms []string
	BulletWord   string
}

type GoogleCalendarConfig struct {
	Enabled         bool
	CredentialsPath string
	CalendarID      string
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	loadDotenv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.Environment.Timezone = viper.GetString("environment.timezone")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Inbox watcher
	cfg.Inbox.Dir = expandHome(viper.GetString("inbox.dir"))
	cfg.Inbox.ArchiveDir = expandHome(viper.GetString("inbox.archive_dir"))
	cfg.Inbox.PollInterval = viper.GetDuration("inbox.poll_interval")
	cfg.Inbox.AudioExtensions = viper.GetStringSlice("inbox.audio_extensions")
	cfg.Inbox.LockStaleAfter = viper.GetDuration("inbox.lock_stale_after")
	cfg.Inbox.SaveTranscripts = viper.GetBool("inbox.save_transcripts")
	if cfg.Inbox.ArchiveDir == "" && cfg.Inbox.Dir != "" {
		cfg.Inbox.ArchiveDir = filepath.Join(cfg.Inbox.Dir, "archive")
	}

	// OmniFocus submission
	cfg.OmniFocus.Scheme = viper.GetString("omnifocus.scheme")
	cfg.OmniFocus.Autosave = viper.GetBool("omnifocus.autosave")

	// Duplicate suppression
	cfg.Dedupe.Window = viper.GetDuration("dedupe.window")
	cfg.Dedupe.MaxEntries = viper.GetInt("dedupe.max_entries")

	// Submission throttling
	cfg.Submission.RatePerMinute = viper.GetInt("submission.rate_per_minute")
	cfg.Submission.EventDuration = viper.GetDuration("submission.event_duration")

	// Speech to text
	cfg.STT.Backend = viper.GetString("stt.backend")
	cfg.STT.WhisperExec = expandHome(viper.GetString("stt.whisper_exec"))
	cfg.STT.WhisperModel = expandHome(viper.GetString("stt.whisper_model"))
	cfg.STT.OpenAIKey = viper.GetString("stt.openai_api_key")
	cfg.STT.OpenAIModel = viper.GetString("stt.openai_model")
	if key := viper.GetString("openai_api_key"); key != "" {
		cfg.STT.OpenAIKey = key
	}

	// Extraction vocabulary overrides
	cfg.Vocabulary.GroceryTag = viper.GetString("vocabulary.grocery_tag")
	cfg.Vocabulary.GroceryTerms = viper.GetStringSlice("vocabulary.grocery_terms")
	cfg.Vocabulary.BulletWord = viper.GetString("vocabulary.bullet_word")

	// Google Calendar mirroring
	cfg.GoogleCalendar.Enabled = viper.GetBool("google_calendar.enabled")
	cfg.GoogleCalendar.CredentialsPath = expandHome(viper.GetString("google_calendar.credentials_path"))
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = expandHome(googleCreds)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("environment.timezone", "Local")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("inbox.dir", "~/VoiceInbox")
	viper.SetDefault("inbox.poll_interval", "5s")
	viper.SetDefault("inbox.lock_stale_after", "10m")
	viper.SetDefault("inbox.save_transcripts", true)

	viper.SetDefault("omnifocus.scheme", "omnifocus")
	viper.SetDefault("omnifocus.autosave", true)

	viper.SetDefault("dedupe.window", "60s")
	viper.SetDefault("dedupe.max_entries", 1000)

	viper.SetDefault("submission.rate_per_minute", 30)
	viper.SetDefault("submission.event_duration", "1h")

	viper.SetDefault("stt.openai_model", "whisper-1")

	viper.SetDefault("vocabulary.grocery_tag", "groceries")
}

func validate(cfg *Config) error {
	switch cfg.STT.Backend {
	case "", "whisper_cpp", "openai":
	default:
		return fmt.Errorf("unknown stt backend %q", cfg.STT.Backend)
	}
	if cfg.STT.Backend == "whisper_cpp" && (cfg.STT.WhisperExec == "" || cfg.STT.WhisperModel == "") {
		return fmt.Errorf("stt backend whisper_cpp requires stt.whisper_exec and stt.whisper_model")
	}
	if cfg.STT.Backend == "openai" && cfg.STT.OpenAIKey == "" {
		return fmt.Errorf("stt backend openai requires stt.openai_api_key")
	}
	if cfg.GoogleCalendar.Enabled && cfg.GoogleCalendar.CredentialsPath == "" {
		return fmt.Errorf("google_calendar.enabled requires google_calendar.credentials_path")
	}
	if cfg.Dedupe.Window <= 0 {
		return fmt.Errorf("dedupe.window must be positive")
	}
	return nil
}

// loadDotenv merges ~/.voice-task-automation.env (if present) into the
// process environment so viper picks the values up via AutomaticEnv.
func loadDotenv() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	_ = godotenv.Load(filepath.Join(home, DotenvName))
}

// expandHome resolves a leading "~/" against the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
