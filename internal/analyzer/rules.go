package analyzer

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules/python.yaml
var defaultPackYAML []byte

// Rule is one line-level detection rule.
type Rule struct {
	ID       string `yaml:"id"`
	CWE      string `yaml:"cwe"` // empty: general finding
	Severity string `yaml:"severity"`
	Message  string `yaml:"message"`
	Regex    string `yaml:"regex"`
	// Unless suppresses a match when it also matches the same line.
	Unless string `yaml:"unless"`
}

// Pack is a named collection of rules loaded from one YAML file.
type Pack struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
	Rules       []Rule `yaml:"rules"`
}

// PackInfo is a summary of a pack for listing.
type PackInfo struct {
	Name      string
	Version   string
	Enabled   bool
	Path      string
	RuleCount int
	Err       error // set when the file could not be parsed; the pack is skipped
}

// DefaultPack returns the embedded Python rule pack.
func DefaultPack() *Pack {
	pack, err := parsePack(defaultPackYAML)
	if err != nil {
		panic(fmt.Sprintf("analyzer: embedded rule pack is invalid: %v", err))
	}
	return pack
}

// DefaultPackSource returns the YAML of the embedded pack.
func DefaultPackSource() []byte {
	return append([]byte(nil), defaultPackYAML...)
}

// LoadRulePacks reads every .yaml/.yml file in dir and appends its rules to
// base. Files whose name starts with "_" are listed but disabled. A missing
// directory yields base unchanged.
func LoadRulePacks(dir string, base []Rule) ([]Rule, []PackInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil, nil
		}
		return nil, nil, fmt.Errorf("reading rule packs: %w", err)
	}

	rules := append([]Rule(nil), base...)
	var infos []PackInfo

	for _, entry := range entries {
		if entry.IsDir() || !isYAMLFile(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		baseName := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		enabled := !strings.HasPrefix(baseName, "_")

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("reading pack %s: %w", path, err)
		}
		pack, err := parsePack(data)
		if err != nil {
			infos = append(infos, PackInfo{Name: baseName, Enabled: enabled, Path: path, Err: err})
			continue
		}

		info := PackInfo{
			Name:      pack.Name,
			Version:   pack.Version,
			Enabled:   enabled,
			Path:      path,
			RuleCount: len(pack.Rules),
		}
		if info.Name == "" {
			info.Name = baseName
		}
		infos = append(infos, info)

		if enabled {
			rules = append(rules, pack.Rules...)
		}
	}

	return rules, infos, nil
}

// UnknownClasses returns the CWE ids referenced by rules that known rejects,
// in rule order and without repeats.
func UnknownClasses(rules []Rule, known func(string) bool) []string {
	var unknown []string
	seen := map[string]bool{}
	for _, r := range rules {
		if r.CWE == "" || seen[r.CWE] {
			continue
		}
		seen[r.CWE] = true
		if !known(r.CWE) {
			unknown = append(unknown, r.CWE)
		}
	}
	return unknown
}

func parsePack(data []byte) (*Pack, error) {
	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parsing rule pack: %w", err)
	}
	if _, err := compileRules(pack.Rules); err != nil {
		return nil, err
	}
	return &pack, nil
}

func isYAMLFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
