package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gzhole/cwebench/internal/analyzer"
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Manage rule packs for the pattern analyzer",
	Long: `Manage the YAML rule packs the pattern analyzer loads on top of its
built-in rules.

Packs live in the rules directory (analyzer.rules_dir / --rules-dir). A pack
whose file name starts with "_" is disabled.

Examples:
  cwebench pack list --rules-dir ./packs
  cwebench pack disable django --rules-dir ./packs
  cwebench pack show builtin`,
}

var packListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in pack and the packs in the rules directory",
	Args:  cobra.NoArgs,
	RunE:  packList,
}

var packEnableCmd = &cobra.Command{
	Use:   "enable <pack-name>",
	Short: "Enable a disabled rule pack",
	Args:  cobra.ExactArgs(1),
	RunE:  packEnable,
}

var packDisableCmd = &cobra.Command{
	Use:   "disable <pack-name>",
	Short: "Disable a rule pack (prefix with underscore)",
	Args:  cobra.ExactArgs(1),
	RunE:  packDisable,
}

var packShowCmd = &cobra.Command{
	Use:   "show <pack-name>",
	Short: `Print a rule pack ("builtin" for the embedded one)`,
	Args:  cobra.ExactArgs(1),
	RunE:  packShow,
}

const builtinPack = "builtin"

func init() {
	packCmd.PersistentFlags().String("rules-dir", "", "Directory of YAML rule packs")
	packCmd.AddCommand(packListCmd)
	packCmd.AddCommand(packEnableCmd)
	packCmd.AddCommand(packDisableCmd)
	packCmd.AddCommand(packShowCmd)
	rootCmd.AddCommand(packCmd)
}

func packsDir(cmd *cobra.Command) (string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	return cfg.Analyzer.RulesDir, nil
}

func requirePacksDir(cmd *cobra.Command) (string, error) {
	dir, err := packsDir(cmd)
	if err != nil {
		return "", err
	}
	if dir == "" {
		return "", errors.New("no rules directory configured (set analyzer.rules_dir or --rules-dir)")
	}
	return dir, nil
}

func packList(cmd *cobra.Command, args []string) error {
	dir, err := packsDir(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	def := analyzer.DefaultPack()
	fmt.Fprintln(out, "Rule Packs:")
	fmt.Fprintln(out, strings.Repeat("─", 60))
	fmt.Fprintf(out, "  %-8s %-25s v%s (%d rules)\n", builtinPack, def.Name, def.Version, len(def.Rules))

	if dir == "" {
		fmt.Fprintln(out, strings.Repeat("─", 60))
		return nil
	}

	_, infos, err := analyzer.LoadRulePacks(dir, nil)
	if err != nil {
		return err
	}
	for _, info := range infos {
		status := "enabled"
		if !info.Enabled {
			status = "disabled"
		}
		if info.Err != nil {
			fmt.Fprintf(out, "  %-8s %-25s %v\n", "broken", info.Name, info.Err)
			continue
		}
		fmt.Fprintf(out, "  %-8s %-25s v%s (%d rules)\n", status, info.Name, info.Version, info.RuleCount)
	}
	fmt.Fprintln(out, strings.Repeat("─", 60))
	fmt.Fprintf(out, "\nRules directory: %s\n", dir)
	return nil
}

func packEnable(cmd *cobra.Command, args []string) error {
	dir, err := requirePacksDir(cmd)
	if err != nil {
		return err
	}

	name := args[0]
	out := cmd.OutOrStdout()
	if path, ok := findPack(dir, "_"+name); ok {
		if err := os.Rename(path, filepath.Join(dir, name+filepath.Ext(path))); err != nil {
			return fmt.Errorf("failed to enable pack: %w", err)
		}
		fmt.Fprintf(out, "Pack '%s' enabled.\n", name)
		return nil
	}
	if _, ok := findPack(dir, name); ok {
		fmt.Fprintf(out, "Pack '%s' is already enabled.\n", name)
		return nil
	}
	return fmt.Errorf("pack '%s' not found in %s", name, dir)
}

func packDisable(cmd *cobra.Command, args []string) error {
	dir, err := requirePacksDir(cmd)
	if err != nil {
		return err
	}

	name := args[0]
	out := cmd.OutOrStdout()
	if path, ok := findPack(dir, name); ok {
		if err := os.Rename(path, filepath.Join(dir, "_"+name+filepath.Ext(path))); err != nil {
			return fmt.Errorf("failed to disable pack: %w", err)
		}
		fmt.Fprintf(out, "Pack '%s' disabled.\n", name)
		return nil
	}
	if _, ok := findPack(dir, "_"+name); ok {
		fmt.Fprintf(out, "Pack '%s' is already disabled.\n", name)
		return nil
	}
	return fmt.Errorf("pack '%s' not found in %s", name, dir)
}

func packShow(cmd *cobra.Command, args []string) error {
	name := args[0]
	out := cmd.OutOrStdout()
	if name == builtinPack {
		_, err := out.Write(analyzer.DefaultPackSource())
		return err
	}

	dir, err := requirePacksDir(cmd)
	if err != nil {
		return err
	}
	path, ok := findPack(dir, name)
	if !ok {
		if path, ok = findPack(dir, "_"+name); !ok {
			return fmt.Errorf("pack '%s' not found in %s", name, dir)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// findPack returns the path of base.yaml or base.yml in dir.
func findPack(dir, base string) (string, bool) {
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(dir, base+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}
