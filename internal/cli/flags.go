package cli

import (
	"github.com/spf13/pflag"

	"github.com/gzhole/cwebench/internal/analyzer"
)

func addAnalyzerFlags(f *pflag.FlagSet) {
	f.StringSlice("analyzer", []string{analyzer.KindPattern}, "Analyzers to chain: pattern, command")
	f.String("rules-dir", "", "Directory of extra YAML rule packs for the pattern analyzer")
	f.String("scanner-cmd", "", `External scanner command line; "{}" is replaced by the file path`)
}
