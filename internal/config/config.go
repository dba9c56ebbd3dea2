package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"astroinsight/internal/textproc"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("invalid config")

// Source modes.
const (
	ModeQA        = "qa"
	ModeWikipedia = "wikipedia"
	ModeLocal     = "local"
)

// QAConfig holds the question-answering endpoint settings.
type QAConfig struct {
	BaseURL     string `yaml:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	MaxRetries  int    `yaml:"max_retries"`
}

// WikipediaConfig configures the Wikipedia fallback source.
type WikipediaConfig struct {
	BaseURL        string  `yaml:"base_url"`
	TimeoutSecs    int     `yaml:"timeout_secs"`
	RequestsPerSec float64 `yaml:"requests_per_sec"`
	UserAgent      string  `yaml:"user_agent"`
}

// Local retrieval backends.
const (
	EmbedderTFIDF  = "tfidf"
	EmbedderRemote = "remote"
	StoreMemory    = "memory"
	StoreQdrant    = "qdrant"
)

// RemoteEmbedderConfig configures an OpenAI-compatible embeddings endpoint.
type RemoteEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env,omitempty"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	MaxRetries  int    `yaml:"max_retries"`
}

// QdrantConfig configures the Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key,omitempty"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// LocalConfig configures answering from local text files.
type LocalConfig struct {
	Paths             []string             `yaml:"paths"`
	SentencesPerChunk int                  `yaml:"sentences_per_chunk"`
	OverlapSentences  int                  `yaml:"overlap_sentences"`
	TopK              int                  `yaml:"top_k"`
	Embedder          string               `yaml:"embedder"`
	Remote            RemoteEmbedderConfig `yaml:"remote"`
	Store             string               `yaml:"store"`
	Qdrant            QdrantConfig         `yaml:"qdrant"`
}

// SourceConfig selects where answers come from.
type SourceConfig struct {
	Mode         string          `yaml:"mode"`
	Fallback     []string        `yaml:"fallback,omitempty"`
	CacheTTLSecs int             `yaml:"cache_ttl_secs"`
	QA           QAConfig        `yaml:"qa"`
	Wikipedia    WikipediaConfig `yaml:"wikipedia"`
	Local        LocalConfig     `yaml:"local"`
}

// StopwordConfig adjusts the excluded-word set. Replace swaps out the
// built-in list entirely; Extra is added on top.
type StopwordConfig struct {
	Replace []string `yaml:"replace,omitempty"`
	Extra   []string `yaml:"extra,omitempty"`
}

// AnalysisConfig holds the limits passed to the summarizer and highlighter.
type AnalysisConfig struct {
	SummarySentences   int            `yaml:"summary_sentences"`
	Keywords           int            `yaml:"keywords"`
	HighlightSentences int            `yaml:"highlight_sentences"`
	EmphasisTerms      []string       `yaml:"emphasis_terms"`
	Stopwords          StopwordConfig `yaml:"stopwords"`
}

// HistoryConfig controls recent-search persistence.
type HistoryConfig struct {
	Path string `yaml:"path"`
	Max  int    `yaml:"max"`
}

// LogConfig controls logging. File is used while the TUI owns the terminal.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Source   SourceConfig   `yaml:"source"`
	Analysis AnalysisConfig `yaml:"analysis"`
	History  HistoryConfig  `yaml:"history"`
	Log      LogConfig      `yaml:"log"`
}

// Stopwords builds the effective stopword set.
func (c *AppConfig) Stopwords() textproc.StopwordSet {
	base := textproc.DefaultStopwords()
	if len(c.Analysis.Stopwords.Replace) > 0 {
		base = textproc.NewStopwordSet(c.Analysis.Stopwords.Replace...)
	}
	return base.With(c.Analysis.Stopwords.Extra...)
}

// Validate checks settings that defaults cannot repair.
func (c *AppConfig) Validate() error {
	modes := append([]string{c.Source.Mode}, c.Source.Fallback...)
	for _, m := range modes {
		switch m {
		case ModeQA, ModeWikipedia, ModeLocal:
		default:
			return fmt.Errorf("%w: unknown source mode %q", ErrInvalid, m)
		}
	}
	if c.Analysis.SummarySentences < 0 || c.Analysis.Keywords < 0 || c.Analysis.HighlightSentences < 0 {
		return fmt.Errorf("%w: analysis limits must not be negative", ErrInvalid)
	}
	switch c.Source.Local.Embedder {
	case EmbedderTFIDF, EmbedderRemote:
	default:
		return fmt.Errorf("%w: unknown embedder %q", ErrInvalid, c.Source.Local.Embedder)
	}
	switch c.Source.Local.Store {
	case StoreMemory, StoreQdrant:
	default:
		return fmt.Errorf("%w: unknown vector store %q", ErrInvalid, c.Source.Local.Store)
	}
	if c.Source.Mode == ModeLocal && len(c.Source.Local.Paths) == 0 {
		return fmt.Errorf("%w: local mode needs source.local.paths", ErrInvalid)
	}
	return nil
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/astroinsight/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := DefaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultUserConfigPath returns ~/.config/astroinsight/config.yaml.
func DefaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "astroinsight", "config.yaml"), nil
}

// ApplyEnv overrides settings from environment variables.
func ApplyEnv(cfg *AppConfig) {
	if v := os.Getenv("ASTROINSIGHT_QA_URL"); v != "" {
		cfg.Source.QA.BaseURL = v
	}
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	cfg := &AppConfig{
		Source: SourceConfig{Mode: ModeQA, Fallback: []string{ModeWikipedia}},
		Analysis: AnalysisConfig{
			EmphasisTerms: []string{"immune cells", "radiation", "gravity"},
		},
	}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Source.Mode == "" {
		cfg.Source.Mode = ModeQA
	}
	if cfg.Source.CacheTTLSecs == 0 {
		cfg.Source.CacheTTLSecs = 300
	}
	if cfg.Source.QA.BaseURL == "" {
		cfg.Source.QA.BaseURL = "http://127.0.0.1:5000"
	}
	if cfg.Source.QA.TimeoutSecs == 0 {
		cfg.Source.QA.TimeoutSecs = 30
	}
	if cfg.Source.QA.MaxRetries == 0 {
		cfg.Source.QA.MaxRetries = 3
	}
	if cfg.Source.Wikipedia.BaseURL == "" {
		cfg.Source.Wikipedia.BaseURL = "https://en.wikipedia.org"
	}
	if cfg.Source.Wikipedia.TimeoutSecs == 0 {
		cfg.Source.Wikipedia.TimeoutSecs = 15
	}
	if cfg.Source.Wikipedia.RequestsPerSec == 0 {
		cfg.Source.Wikipedia.RequestsPerSec = 2
	}
	if cfg.Source.Wikipedia.UserAgent == "" {
		cfg.Source.Wikipedia.UserAgent = "astroinsight/0.1"
	}
	if cfg.Source.Local.SentencesPerChunk == 0 {
		cfg.Source.Local.SentencesPerChunk = 5
	}
	if cfg.Source.Local.TopK == 0 {
		cfg.Source.Local.TopK = 3
	}
	if cfg.Source.Local.Embedder == "" {
		cfg.Source.Local.Embedder = EmbedderTFIDF
	}
	if cfg.Source.Local.Remote.BaseURL == "" {
		cfg.Source.Local.Remote.BaseURL = "http://127.0.0.1:11434/v1"
	}
	if cfg.Source.Local.Remote.Model == "" {
		cfg.Source.Local.Remote.Model = "nomic-embed-text"
	}
	if cfg.Source.Local.Remote.TimeoutSecs == 0 {
		cfg.Source.Local.Remote.TimeoutSecs = 30
	}
	if cfg.Source.Local.Store == "" {
		cfg.Source.Local.Store = StoreMemory
	}
	if cfg.Source.Local.Qdrant.URL == "" {
		cfg.Source.Local.Qdrant.URL = "http://127.0.0.1:6333"
	}
	if cfg.Source.Local.Qdrant.Collection == "" {
		cfg.Source.Local.Qdrant.Collection = "astroinsight"
	}
	if cfg.Source.Local.Qdrant.TimeoutSecs == 0 {
		cfg.Source.Local.Qdrant.TimeoutSecs = 15
	}
	if cfg.Analysis.SummarySentences == 0 {
		cfg.Analysis.SummarySentences = 4
	}
	if cfg.Analysis.Keywords == 0 {
		cfg.Analysis.Keywords = 5
	}
	if cfg.Analysis.HighlightSentences == 0 {
		cfg.Analysis.HighlightSentences = 4
	}
	if cfg.History.Max == 0 {
		cfg.History.Max = 6
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
