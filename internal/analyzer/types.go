package analyzer

import "github.com/gzhole/cwebench/internal/taxonomy"

// Analyzer is the contract the benchmark consumes. An implementation may
// keep state between calls; callers that need isolation build a fresh
// instance per file through a Factory.
type Analyzer interface {
	// Name returns the analyzer's identifier (e.g., "pattern", "command").
	Name() string

	// Analyze scans the file at path and returns its findings in order.
	// An error means the scan itself failed, not that something was found.
	Analyze(path string) ([]Finding, error)
}

// Factory builds a new, independent Analyzer.
type Factory func() (Analyzer, error)

// Finding is a single result from an analyzer.
type Finding struct {
	RuleID   string `json:"rule_id"`
	CWE      string `json:"cwe,omitempty"` // empty for general findings with no weakness class
	Severity string `json:"severity,omitempty"`
	Message  string `json:"message,omitempty"`
	Line     int    `json:"line,omitempty"`
}

// Flags reports whether at least one finding is attributed to class.
func Flags(findings []Finding, class string) bool {
	class = taxonomy.NormalizeID(class)
	for _, f := range findings {
		if f.CWE != "" && taxonomy.NormalizeID(f.CWE) == class {
			return true
		}
	}
	return false
}
