package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gzhole/cwebench/internal/analyzer"
	"github.com/gzhole/cwebench/internal/bench"
	"github.com/gzhole/cwebench/internal/config"
	"github.com/gzhole/cwebench/internal/logger"
	"github.com/gzhole/cwebench/internal/report"
	"github.com/gzhole/cwebench/internal/taxonomy"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Benchmark the analyzer and print the per-class report",
	Long: `Run the analyzer on every corpus file and every safe sample, then print
a table of TP/FP/TN/FN counts with precision and recall per weakness class.

Examples:
  cwebench run
  cwebench run --corpus ./tests/generated_variants --format json
  cwebench run --analyzer pattern,command --scanner-cmd "bandit -q -f json {}"`,
	Args: cobra.NoArgs,
	RunE: runBenchmark,
}

func init() {
	f := runCmd.Flags()
	f.String("corpus", config.DefaultCorpusDir, "Directory with one subdirectory of vulnerable files per class")
	f.String("scratch", config.DefaultScratchDir, "Scratch directory for safe samples (deleted after the run)")
	f.StringSlice("ext", []string{bench.DefaultExtension}, "Corpus file extensions; the first names scratch files")
	f.String("classes-file", "", "YAML registry of weakness classes (default: built-in)")
	f.String("format", config.FormatMarkdown, "Report format: markdown or json")
	addAnalyzerFlags(f)
	rootCmd.AddCommand(runCmd)
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	factory, err := buildFactory(cfg, reg, log)
	if err != nil {
		return err
	}

	runner, err := bench.NewRunner(bench.Options{
		Classes:     reg.IDs(),
		NewAnalyzer: factory,
		CorpusDir:   cfg.CorpusDir,
		ScratchDir:  cfg.ScratchDir,
		Extensions:  cfg.Extensions,
		Logger:      log,
	})
	if err != nil {
		return err
	}

	res, err := runner.Run()
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}

	if degraded := res.Degraded(); len(degraded) > 0 {
		warnf(cmd.ErrOrStderr(), "no curated safe samples for %s; FP/TN counts (marked %s) use a placeholder",
			strings.Join(degraded, ", "), report.DegradedMarker)
	}

	return writeReport(cmd.OutOrStdout(), cfg.Format, res)
}

func writeReport(w io.Writer, format string, res *bench.Result) error {
	if format == config.FormatJSON {
		return report.WriteJSON(w, res)
	}
	return report.WriteMarkdown(w, res)
}

func loadRegistry(cfg *config.Config) (*taxonomy.Registry, error) {
	if cfg.ClassesFile == "" {
		return taxonomy.DefaultRegistry(), nil
	}
	reg, err := taxonomy.LoadRegistry(cfg.ClassesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load classes: %w", err)
	}
	return reg, nil
}

// loadRules returns the built-in rules plus the enabled packs in the rules
// directory. Broken packs are skipped with a warning.
func loadRules(cfg *config.Config, log *zap.SugaredLogger) ([]analyzer.Rule, []analyzer.PackInfo, error) {
	rules := analyzer.DefaultPack().Rules
	if cfg.Analyzer.RulesDir == "" {
		return rules, nil, nil
	}

	rules, infos, err := analyzer.LoadRulePacks(cfg.Analyzer.RulesDir, rules)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load rule packs: %w", err)
	}
	for _, info := range infos {
		if info.Err != nil {
			log.Warnw("skipping rule pack", "path", info.Path, "error", info.Err)
		}
	}
	return rules, infos, nil
}

func buildFactory(cfg *config.Config, reg *taxonomy.Registry, log *zap.SugaredLogger) (analyzer.Factory, error) {
	rules, _, err := loadRules(cfg, log)
	if err != nil {
		return nil, err
	}
	for _, cwe := range analyzer.UnknownClasses(rules, reg.Contains) {
		log.Warnw("rules reference a class outside the registry; its findings are never counted", "cwe", cwe)
	}

	factory, err := analyzer.NewFactory(analyzer.FactoryConfig{
		Kinds:   cfg.Analyzer.Kinds,
		Rules:   rules,
		Command: cfg.Analyzer.Command,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build analyzer: %w", err)
	}
	return factory, nil
}
