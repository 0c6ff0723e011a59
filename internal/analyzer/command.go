package analyzer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/shell"

	"github.com/gzhole/cwebench/internal/taxonomy"
)

// PathPlaceholder in a command line is replaced with the fixture path.
const PathPlaceholder = "{}"

// CommandAnalyzer runs an external scanner once per file and decodes its
// JSON output. The scanner must print either an array of findings or an
// object with a "findings" array on stdout.
type CommandAnalyzer struct {
	argv []string
}

// NewCommandAnalyzer splits cmdline with shell quoting rules. Environment
// references such as $SCANNER_HOME are expanded from the process
// environment.
func NewCommandAnalyzer(cmdline string) (*CommandAnalyzer, error) {
	argv, err := shell.Fields(cmdline, nil)
	if err != nil {
		return nil, fmt.Errorf("parsing analyzer command: %w", err)
	}
	if len(argv) == 0 {
		return nil, errors.New("analyzer command is empty")
	}
	return &CommandAnalyzer{argv: argv}, nil
}

// NewCommandFactory validates cmdline once and returns a Factory.
func NewCommandFactory(cmdline string) (Factory, error) {
	proto, err := NewCommandAnalyzer(cmdline)
	if err != nil {
		return nil, err
	}
	return func() (Analyzer, error) {
		return &CommandAnalyzer{argv: append([]string(nil), proto.argv...)}, nil
	}, nil
}

func (a *CommandAnalyzer) Name() string { return "command:" + filepath.Base(a.argv[0]) }

// Args returns the arguments the scanner is invoked with for path.
func (a *CommandAnalyzer) Args(path string) []string {
	args := make([]string, 0, len(a.argv))
	replaced := false
	for _, arg := range a.argv[1:] {
		if arg == PathPlaceholder {
			arg = path
			replaced = true
		}
		args = append(args, arg)
	}
	if !replaced {
		args = append(args, path)
	}
	return args
}

// Analyze runs the scanner on path. A non-zero exit is accepted when the
// scanner still printed a report, since many scanners exit 1 on findings.
func (a *CommandAnalyzer) Analyze(path string) ([]Finding, error) {
	cmd := exec.Command(a.argv[0], a.Args(path)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || len(bytes.TrimSpace(stdout.Bytes())) == 0 {
			return nil, fmt.Errorf("%s failed: %w: %s", a.argv[0], err, strings.TrimSpace(stderr.String()))
		}
	}

	findings, err := decodeFindings(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.argv[0], err)
	}
	return findings, nil
}

func decodeFindings(out []byte) ([]Finding, error) {
	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return nil, nil
	}

	var findings []Finding
	if out[0] == '[' {
		if err := json.Unmarshal(out, &findings); err != nil {
			return nil, fmt.Errorf("decoding findings: %w", err)
		}
	} else {
		var report struct {
			Findings []Finding `json:"findings"`
		}
		if err := json.Unmarshal(out, &report); err != nil {
			return nil, fmt.Errorf("decoding report: %w", err)
		}
		findings = report.Findings
	}

	for i := range findings {
		findings[i].CWE = taxonomy.NormalizeID(findings[i].CWE)
	}
	return findings, nil
}
