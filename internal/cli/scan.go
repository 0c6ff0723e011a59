package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gzhole/cwebench/internal/analyzer"
	"github.com/gzhole/cwebench/internal/logger"
)

var scanCmd = &cobra.Command{
	Use:   "scan <file>...",
	Short: "Run the configured analyzer on files and print its findings",
	Long: `Run the same analyzer the benchmark uses on individual files. Useful for
checking why a fixture was (or was not) flagged.

  cwebench scan tests/generated_variants/CWE-78/variant_1.py`,
	Args: cobra.MinimumNArgs(1),
	RunE: scanFiles,
}

type scanResult struct {
	Path     string             `json:"path"`
	Analyzer string             `json:"analyzer"`
	Findings []analyzer.Finding `json:"findings"`
}

func init() {
	f := scanCmd.Flags()
	addAnalyzerFlags(f)
	f.Bool("json", false, "Print findings as JSON")
	rootCmd.AddCommand(scanCmd)
}

func scanFiles(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
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

	var results []scanResult
	for _, path := range args {
		a, err := factory()
		if err != nil {
			return err
		}
		findings, err := a.Analyze(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if findings == nil {
			findings = []analyzer.Finding{}
		}
		results = append(results, scanResult{Path: path, Analyzer: a.Name(), Findings: findings})
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for _, res := range results {
		if len(res.Findings) == 0 {
			fmt.Fprintf(out, "%s: no findings\n", res.Path)
			continue
		}
		for _, f := range res.Findings {
			cwe := f.CWE
			if cwe == "" {
				cwe = "-"
			}
			fmt.Fprintf(out, "%s:%d  %-8s %-24s %s\n", res.Path, f.Line, cwe, f.RuleID, f.Message)
		}
	}
	return nil
}
