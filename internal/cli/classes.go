package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gzhole/cwebench/internal/fixture"
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List the weakness classes the benchmark measures",
	Args:  cobra.NoArgs,
	RunE:  listClasses,
}

func init() {
	classesCmd.Flags().String("classes-file", "", "YAML registry of weakness classes (default: built-in)")
	rootCmd.AddCommand(classesCmd)
}

func listClasses(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-10s %-9s %s\n", "CLASS", "SAMPLES", "NAME")
	fmt.Fprintln(out, strings.Repeat("─", 60))
	for _, c := range reg.Classes() {
		samples := fixture.Safe(c.ID)
		coverage := fmt.Sprintf("%d", len(samples.Snippets))
		if !samples.Curated {
			coverage = "none"
		}
		fmt.Fprintf(out, "%-10s %-9s %s\n", c.ID, coverage, c.Name)
	}
	fmt.Fprintf(out, "\n%d classes\n", reg.Len())
	return nil
}
