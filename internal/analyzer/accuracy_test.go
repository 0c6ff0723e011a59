package analyzer_test

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/gzhole/cwebench/internal/analyzer"
	"github.com/gzhole/cwebench/internal/analyzer/testdata"
	"github.com/gzhole/cwebench/internal/fixture"
	"github.com/gzhole/cwebench/internal/taxonomy"
)

// scanSnippet writes code to a temp file and runs a fresh default pattern
// analyzer on it.
func scanSnippet(t *testing.T, code string) []analyzer.Finding {
	t.Helper()

	a, err := analyzer.NewPatternAnalyzer(analyzer.DefaultPack().Rules)
	if err != nil {
		t.Fatalf("NewPatternAnalyzer failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "snippet.py")
	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		t.Fatal(err)
	}
	findings, err := a.Analyze(path)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	return findings
}

func ruleIDs(findings []analyzer.Finding) []string {
	ids := make([]string, 0, len(findings))
	for _, f := range findings {
		ids = append(ids, f.RuleID)
	}
	return ids
}

// TestAccuracy runs every TP/TN case through the default rules. FP and FN
// cases document known limitations and are skipped.
func TestAccuracy(t *testing.T) {
	for _, tc := range testdata.AllTestCases() {
		t.Run(tc.ID, func(t *testing.T) {
			switch tc.Classification {
			case "FN":
				t.Skipf("KNOWN FALSE NEGATIVE: %s", tc.Description)
			case "FP":
				t.Skipf("KNOWN FALSE POSITIVE: %s", tc.Description)
			}

			findings := scanSnippet(t, tc.Code)
			got := analyzer.Flags(findings, tc.Class)
			if got != tc.Vulnerable() {
				t.Errorf(
					"[%s] %s\n"+
						"  Code:      %q\n"+
						"  Flagged:   %v\n"+
						"  Triggered: %v\n"+
						"  Reason:    %s",
					tc.Classification, tc.ID, tc.Code, got, ruleIDs(findings), tc.Description)
			}
		})
	}
}

// TestAccuracy_KnownLimitationsStillHold fails when an FP or FN case starts
// behaving correctly, so it gets promoted to TN or TP.
func TestAccuracy_KnownLimitationsStillHold(t *testing.T) {
	for _, tc := range testdata.AllTestCases() {
		if tc.Classification != "FP" && tc.Classification != "FN" {
			continue
		}
		findings := scanSnippet(t, tc.Code)
		flagged := analyzer.Flags(findings, tc.Class)
		if flagged == tc.Vulnerable() {
			t.Errorf("[%s] now handled correctly; reclassify as %s", tc.ID,
				map[bool]string{true: "TP", false: "TN"}[tc.Vulnerable()])
		}
	}
}

// TestAccuracy_CuratedSafeSamples checks the default rules against the safe
// samples the benchmark writes to the scratch directory.
func TestAccuracy_CuratedSafeSamples(t *testing.T) {
	knownFP := map[string]bool{
		"secret = 'REDACTED'": true,
	}

	for _, class := range fixture.Curated() {
		for i, snippet := range fixture.Safe(class).Snippets {
			findings := scanSnippet(t, snippet)
			flagged := analyzer.Flags(findings, class)
			if flagged != knownFP[snippet] {
				t.Errorf("%s sample %d (%q): flagged=%v, triggered %v",
					class, i, snippet, flagged, ruleIDs(findings))
			}
		}
	}
}

// TestAccuracyMetrics logs TP/FP/FN/TN counts per class.
// Run with: go test -v -run TestAccuracyMetrics
func TestAccuracyMetrics(t *testing.T) {
	counts := map[string]int{}
	byClass := map[string]map[string]int{}

	for _, tc := range testdata.AllTestCases() {
		counts[tc.Classification]++
		if byClass[tc.Class] == nil {
			byClass[tc.Class] = map[string]int{}
		}
		byClass[tc.Class][tc.Classification]++
	}

	t.Logf("=== Pattern Analyzer Accuracy ===")
	t.Logf("  TP: %d  TN: %d  FP: %d  FN: %d", counts["TP"], counts["TN"], counts["FP"], counts["FN"])

	tp, fp, fn := float64(counts["TP"]), float64(counts["FP"]), float64(counts["FN"])
	if tp+fp > 0 {
		t.Logf("  Precision: %.1f%%", 100*tp/(tp+fp))
	}
	if tp+fn > 0 {
		t.Logf("  Recall:    %.1f%%", 100*tp/(tp+fn))
	}

	classes := make([]string, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	for _, c := range classes {
		k := byClass[c]
		t.Logf("  %-8s TP:%d TN:%d FP:%d FN:%d", c, k["TP"], k["TN"], k["FP"], k["FN"])
	}
}

func TestCaseIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, tc := range testdata.AllTestCases() {
		if seen[tc.ID] {
			t.Errorf("duplicate test case ID: %s", tc.ID)
		}
		seen[tc.ID] = true
	}
}

func TestCaseIDsMatchClassification(t *testing.T) {
	valid := map[string]bool{}
	for _, c := range testdata.AllClassifications {
		valid[c] = true
	}

	for _, tc := range testdata.AllTestCases() {
		if !valid[tc.Classification] {
			t.Errorf("[%s] invalid classification %q", tc.ID, tc.Classification)
		}
		want := tc.Classification + "-" + strings.ReplaceAll(tc.Class, "-", "") + "-"
		if !strings.HasPrefix(tc.ID, want) {
			t.Errorf("[%s] id should start with %q", tc.ID, want)
		}
	}
}

// TestEveryRegisteredClassHasCases keeps the case table in step with the
// built-in registry.
func TestEveryRegisteredClassHasCases(t *testing.T) {
	for _, id := range taxonomy.DefaultRegistry().IDs() {
		var tp, tn bool
		for _, tc := range testdata.CasesFor(id) {
			tp = tp || tc.Classification == "TP"
			tn = tn || tc.Classification == "TN"
		}
		if !tp || !tn {
			t.Errorf("%s needs at least one TP and one TN case (tp=%v tn=%v)", id, tp, tn)
		}
	}
}
