package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gzhole/cwebench/internal/fixture"
	"github.com/gzhole/cwebench/internal/taxonomy"
)

var samplesCmd = &cobra.Command{
	Use:   "samples <CWE>",
	Short: "Print the safe code samples of a weakness class",
	Long: `Print the safe samples the benchmark writes to the scratch directory for
a class. Accepts "CWE-78", "cwe_78" or "78".`,
	Args: cobra.ExactArgs(1),
	RunE: showSamples,
}

func init() {
	rootCmd.AddCommand(samplesCmd)
}

func showSamples(cmd *cobra.Command, args []string) error {
	class := taxonomy.NormalizeID(args[0])
	samples := fixture.Safe(class)
	if !samples.Curated {
		warnf(cmd.ErrOrStderr(), "no curated safe samples for %s; the benchmark uses a placeholder", class)
	}

	out := cmd.OutOrStdout()
	for i, snippet := range samples.Snippets {
		fmt.Fprintf(out, "# %s sample %d\n%s\n\n", class, i, snippet)
	}
	return nil
}
