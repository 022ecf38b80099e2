package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"pontolink/internal/classify"
	"pontolink/internal/oracle"
	"pontolink/internal/routing"
	"pontolink/internal/scoring"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory configuration.
type Paths struct {
	Workbook  string `toml:"workbook"`
	FilesRoot string `toml:"files_root"`
	SessionDB string `toml:"session_db"`
	LogDir    string `toml:"log_dir"`
}

// Matching contains the scoring and decision constants. They are empirically
// tuned; the defaults come from the engine packages.
type Matching struct {
	MinScore        float64 `toml:"min_score"`
	DateBoost       float64 `toml:"date_boost"`
	ExtensionBoost  float64 `toml:"extension_boost"`
	SequenceBoost   float64 `toml:"sequence_boost"`
	DecisiveScore   float64 `toml:"decisive_score"`
	AmbiguityMargin float64 `toml:"ambiguity_margin"`
	MaxCandidates   int     `toml:"max_candidates"`
}

// RoutingRange is one inclusive row range mapped to a folder label.
type RoutingRange struct {
	First  int    `toml:"first"`
	Last   int    `toml:"last"`
	Folder string `toml:"folder"`
}

// Routing contains the static row-to-folder table.
type Routing struct {
	Ranges []RoutingRange `toml:"ranges"`
}

// Oracle contains configuration for the optional disambiguation oracle.
type Oracle struct {
	Enabled        bool   `toml:"enabled"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for pontolink.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Matching Matching `toml:"matching"`
	Routing  Routing  `toml:"routing"`
	Oracle   Oracle   `toml:"oracle"`
	Logging  Logging  `toml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	th := scoring.DefaultThresholds()
	opts := classify.DefaultOptions()
	return Config{
		Paths: Paths{
			SessionDB: "~/.local/share/pontolink/sessions.db",
		},
		Matching: Matching{
			MinScore:        th.MinScore,
			DateBoost:       th.DateBoost,
			ExtensionBoost:  th.ExtensionBoost,
			SequenceBoost:   th.SequenceBoost,
			DecisiveScore:   opts.DecisiveScore,
			AmbiguityMargin: opts.AmbiguityMargin,
			MaxCandidates:   opts.MaxCandidates,
		},
		Oracle: Oracle{
			BaseURL:        "https://openrouter.ai/api/v1/chat/completions",
			TimeoutSeconds: 15,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/pontolink/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("pontolink.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// RoutingTable builds the row-to-folder lookup from configuration.
func (c *Config) RoutingTable() (*routing.Table, error) {
	ranges := make([]routing.Range, 0, len(c.Routing.Ranges))
	for _, r := range c.Routing.Ranges {
		ranges = append(ranges, routing.Range{First: r.First, Last: r.Last, Folder: r.Folder})
	}
	return routing.New(ranges)
}

// ClassifyOptions returns the decision constants as engine options.
func (c *Config) ClassifyOptions() classify.Options {
	return classify.Options{
		Thresholds: scoring.Thresholds{
			MinScore:       c.Matching.MinScore,
			DateBoost:      c.Matching.DateBoost,
			ExtensionBoost: c.Matching.ExtensionBoost,
			SequenceBoost:  c.Matching.SequenceBoost,
		},
		DecisiveScore:   c.Matching.DecisiveScore,
		AmbiguityMargin: c.Matching.AmbiguityMargin,
		MaxCandidates:   c.Matching.MaxCandidates,
	}
}

// OracleConfig returns the oracle client settings.
func (c *Config) OracleConfig() oracle.Config {
	return oracle.Config{
		APIKey:         strings.TrimSpace(c.Oracle.APIKey),
		BaseURL:        strings.TrimSpace(c.Oracle.BaseURL),
		Model:          strings.TrimSpace(c.Oracle.Model),
		TimeoutSeconds: c.Oracle.TimeoutSeconds,
	}
}

// EnsureDirectories creates the directories the tool writes to.
func (c *Config) EnsureDirectories() error {
	dirs := []string{filepath.Dir(c.Paths.SessionDB)}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		dirs = append(dirs, c.Paths.LogDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
