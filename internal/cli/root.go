package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/gzhole/cwebench/internal/config"
)

var (
	cfgFile string
	envFile string
	noColor bool
)

// flagKeys maps command-line flags onto config keys. Flags only override
// the config when set explicitly.
var flagKeys = map[string]string{
	"log-level":    config.KeyLogLevel,
	"corpus":       config.KeyCorpusDir,
	"scratch":      config.KeyScratchDir,
	"ext":          config.KeyExtensions,
	"classes-file": config.KeyClassesFile,
	"format":       config.KeyFormat,
	"analyzer":     config.KeyAnalyzerKinds,
	"rules-dir":    config.KeyAnalyzerRules,
	"scanner-cmd":  config.KeyAnalyzerCommand,
}

var rootCmd = &cobra.Command{
	Use:   "cwebench",
	Short: "cwebench - precision/recall benchmark for vulnerability analyzers",
	Long: `cwebench measures how well a static analyzer detects weakness classes (CWEs).
Known-vulnerable files under the corpus directory supply true positives and
false negatives; curated safe code samples supply false positives and true
negatives. Results are reported per class and in total.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		color.NoColor = noColor || !term.IsTerminal(int(os.Stderr.Fd()))
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default: ./cwebench.yaml, then ~/.cwebench.yaml)")
	pf.StringVar(&envFile, "env-file", config.DefaultEnvFile, "Dotenv file loaded into the environment when present")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.BoolVar(&noColor, "no-color", false, "Disable colored warnings")
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig layers defaults, config file, environment and the flags of cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v, err := config.NewViper(cfgFile, envFile)
	if err != nil {
		return nil, err
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

var warnColor = color.New(color.FgYellow)

func warnf(w io.Writer, format string, args ...any) {
	warnColor.Fprintf(w, "warning: "+format+"\n", args...)
}
