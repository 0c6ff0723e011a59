package analyzer

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/gzhole/cwebench/internal/taxonomy"
)

// compiledRule is a Rule with its expressions compiled once.
type compiledRule struct {
	Rule
	re     *regexp.Regexp
	unless *regexp.Regexp
}

// PatternAnalyzer matches rule expressions line by line against a source
// file. Findings are de-duplicated by rule and source line across every
// file one instance scans, so a project scan reports a copy-pasted bad
// line once. That memory is per instance.
type PatternAnalyzer struct {
	rules []compiledRule
	seen  map[string]struct{}
}

// NewPatternAnalyzer compiles rules and returns an analyzer with empty state.
func NewPatternAnalyzer(rules []Rule) (*PatternAnalyzer, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return newPatternAnalyzer(compiled), nil
}

// NewPatternFactory compiles rules once and returns a Factory whose
// analyzers share the compiled rules but nothing else.
func NewPatternFactory(rules []Rule) (Factory, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return func() (Analyzer, error) {
		return newPatternAnalyzer(compiled), nil
	}, nil
}

func newPatternAnalyzer(rules []compiledRule) *PatternAnalyzer {
	return &PatternAnalyzer{
		rules: rules,
		seen:  make(map[string]struct{}),
	}
}

func (a *PatternAnalyzer) Name() string { return "pattern" }

// Analyze reads the file and returns one Finding per matching rule per line.
func (a *PatternAnalyzer) Analyze(path string) ([]Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pattern: %w", err)
	}

	var findings []Finding
	for i, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		for _, rule := range a.rules {
			if !rule.re.MatchString(line) {
				continue
			}
			if rule.unless != nil && rule.unless.MatchString(line) {
				continue
			}

			key := rule.ID + "\x00" + trimmed
			if _, dup := a.seen[key]; dup {
				continue
			}
			a.seen[key] = struct{}{}

			findings = append(findings, Finding{
				RuleID:   rule.ID,
				CWE:      rule.CWE,
				Severity: rule.Severity,
				Message:  rule.Message,
				Line:     i + 1,
			})
		}
	}
	return findings, nil
}

func compileRules(rules []Rule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		if r.ID == "" {
			return nil, fmt.Errorf("rule with empty id")
		}
		if r.Regex == "" {
			return nil, fmt.Errorf("rule %s: missing regex", r.ID)
		}
		re, err := regexp.Compile(r.Regex)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.ID, err)
		}
		cr := compiledRule{Rule: r, re: re}
		cr.CWE = taxonomy.NormalizeID(r.CWE)
		if r.Unless != "" {
			if cr.unless, err = regexp.Compile(r.Unless); err != nil {
				return nil, fmt.Errorf("rule %s: unless: %w", r.ID, err)
			}
		}
		compiled = append(compiled, cr)
	}
	return compiled, nil
}
