package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/gzhole/cwebench/internal/analyzer"
	"github.com/gzhole/cwebench/internal/bench"
)

const (
	DefaultCorpusDir  = "tests/generated_variants"
	DefaultScratchDir = "tests/temp_safe_variants"
	DefaultConfigName = "cwebench"
	DefaultEnvFile    = ".env"
	EnvPrefix         = "CWEBENCH"

	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Viper keys.
const (
	KeyCorpusDir       = "corpus_dir"
	KeyScratchDir      = "scratch_dir"
	KeyExtensions      = "extensions"
	KeyClassesFile     = "classes_file"
	KeyFormat          = "format"
	KeyLogLevel        = "log_level"
	KeyAnalyzerKinds   = "analyzer.kinds"
	KeyAnalyzerRules   = "analyzer.rules_dir"
	KeyAnalyzerCommand = "analyzer.command"
)

type Config struct {
	CorpusDir   string
	ScratchDir  string
	Extensions  []string
	ClassesFile string // empty: built-in registry
	Format      string
	LogLevel    string
	Analyzer    AnalyzerConfig
}

// AnalyzerConfig selects the analyzers under test.
type AnalyzerConfig struct {
	// Kinds lists analyzers to chain. Default: ["pattern"].
	Kinds []string
	// RulesDir holds extra YAML rule packs for the pattern analyzer.
	RulesDir string
	// Command is the external scanner command line for the command analyzer.
	Command string
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyCorpusDir, DefaultCorpusDir)
	v.SetDefault(KeyScratchDir, DefaultScratchDir)
	v.SetDefault(KeyExtensions, []string{".py"})
	v.SetDefault(KeyClassesFile, "")
	v.SetDefault(KeyFormat, FormatMarkdown)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyAnalyzerKinds, []string{analyzer.KindPattern})
	v.SetDefault(KeyAnalyzerRules, "")
	v.SetDefault(KeyAnalyzerCommand, "")
}

// NewViper loads envFile (if present) into the process environment, then
// returns a viper instance reading CWEBENCH_* variables and the config file.
// Without cfgFile, ./cwebench.yaml and $HOME/.cwebench.yaml are tried; a
// missing file is not an error.
func NewViper(cfgFile, envFile string) (*viper.Viper, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return v, nil
	}

	v.SetConfigName(DefaultConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if home, herr := os.UserHomeDir(); herr == nil {
			v.SetConfigName("." + DefaultConfigName)
			v.AddConfigPath(home)
			if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}
	return v, nil
}

// Load resolves and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		CorpusDir:   v.GetString(KeyCorpusDir),
		ScratchDir:  v.GetString(KeyScratchDir),
		Extensions:  normalizeExtensions(splitList(v.GetStringSlice(KeyExtensions))),
		ClassesFile: v.GetString(KeyClassesFile),
		Format:      strings.ToLower(v.GetString(KeyFormat)),
		LogLevel:    v.GetString(KeyLogLevel),
		Analyzer: AnalyzerConfig{
			Kinds:    splitList(v.GetStringSlice(KeyAnalyzerKinds)),
			RulesDir: v.GetString(KeyAnalyzerRules),
			Command:  v.GetString(KeyAnalyzerCommand),
		},
	}

	if cfg.ScratchDir == "" {
		return nil, errors.New("scratch_dir must not be empty")
	}
	if err := bench.CheckScratchDir(cfg.ScratchDir, cfg.CorpusDir); err != nil {
		return nil, fmt.Errorf("scratch_dir is deleted after every run: %w", err)
	}
	if len(cfg.Extensions) == 0 {
		return nil, errors.New("extensions must list at least one file extension")
	}
	switch cfg.Format {
	case FormatMarkdown, FormatJSON:
	default:
		return nil, fmt.Errorf("unknown format %q (want %s or %s)", cfg.Format, FormatMarkdown, FormatJSON)
	}
	for _, kind := range cfg.Analyzer.Kinds {
		if kind == analyzer.KindCommand && cfg.Analyzer.Command == "" {
			return nil, errors.New("analyzer.command is required for the command analyzer")
		}
	}

	return cfg, nil
}

// splitList accepts both YAML lists and comma-separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func normalizeExtensions(exts []string) []string {
	for i, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			exts[i] = "." + ext
		}
	}
	return exts
}
