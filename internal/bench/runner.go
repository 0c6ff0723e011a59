// Package bench measures an analyzer's precision and recall per weakness
// class. Known-vulnerable corpus files give the TP/FN side; curated safe
// samples, written to a scratch directory for the duration of the run,
// give the FP/TN side.
package bench

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/gzhole/cwebench/internal/analyzer"
	"github.com/gzhole/cwebench/internal/fixture"
)

// Truth is a fixture's ground-truth label.
type Truth string

const (
	Vulnerable Truth = "vulnerable"
	Safe       Truth = "safe"
)

// Fixture is one file the analyzer is run on.
type Fixture struct {
	Class string
	Path  string
	Truth Truth
}

// DefaultExtension names scratch files when Options.Extensions is empty.
const DefaultExtension = ".py"

// Options configures a Runner.
type Options struct {
	// Classes is the universe of weakness classes to measure. Corpus
	// directories for other classes are ignored.
	Classes []string
	// NewAnalyzer is called once per fixture.
	NewAnalyzer analyzer.Factory
	// Samples returns the safe samples of a class. Defaults to fixture.Safe.
	Samples func(class string) fixture.Samples
	// CorpusDir holds one subdirectory of vulnerable files per class.
	// It may not exist.
	CorpusDir string
	// ScratchDir is created for the safe pass and removed afterwards,
	// along with anything already in it.
	ScratchDir string
	// Extensions filters corpus files; the first one names scratch files.
	// Empty means DefaultExtension.
	Extensions []string
	Logger     *zap.SugaredLogger
}

// Runner executes one benchmark. Fixtures are evaluated sequentially.
type Runner struct {
	classes     []string
	newAnalyzer analyzer.Factory
	samples     func(string) fixture.Samples
	corpusDir   string
	scratchDir  string
	extensions  []string
	log         *zap.SugaredLogger
}

// NewRunner validates opts and fills in defaults.
func NewRunner(opts Options) (*Runner, error) {
	if len(opts.Classes) == 0 {
		return nil, ErrNoClasses
	}
	if opts.NewAnalyzer == nil {
		return nil, ErrNoFactory
	}
	if opts.ScratchDir == "" {
		return nil, ErrNoScratchDir
	}

	if err := CheckScratchDir(opts.ScratchDir, opts.CorpusDir); err != nil {
		return nil, err
	}

	classes := append([]string(nil), opts.Classes...)
	sort.Strings(classes)
	classes = slices.Compact(classes)

	r := &Runner{
		classes:     classes,
		newAnalyzer: opts.NewAnalyzer,
		samples:     opts.Samples,
		corpusDir:   opts.CorpusDir,
		scratchDir:  opts.ScratchDir,
		extensions:  opts.Extensions,
		log:         opts.Logger,
	}
	if r.samples == nil {
		r.samples = fixture.Safe
	}
	if len(r.extensions) == 0 {
		r.extensions = []string{DefaultExtension}
	}
	if r.log == nil {
		r.log = zap.NewNop().Sugar()
	}
	return r, nil
}

// Run evaluates the corpus, then the safe samples, and returns the counters.
// Any analyzer error aborts the run. The scratch directory is removed on
// every exit path.
func (r *Runner) Run() (*Result, error) {
	res := NewResult(r.classes)

	if err := r.evaluateCorpus(res); err != nil {
		return nil, err
	}
	if err := r.evaluateSafe(res); err != nil {
		return nil, err
	}

	total := res.Total()
	r.log.Infow("benchmark complete",
		"classes", len(r.classes),
		"fixtures", total.Total(),
		"precision", total.Precision(),
		"recall", total.Recall())
	return res, nil
}

func (r *Runner) evaluateCorpus(res *Result) error {
	if r.corpusDir == "" {
		r.log.Infow("no corpus directory configured, skipping vulnerable fixtures")
		return nil
	}

	entries, err := os.ReadDir(r.corpusDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.log.Infow("corpus directory not found, skipping vulnerable fixtures", "dir", r.corpusDir)
			return nil
		}
		return fmt.Errorf("reading corpus: %w", err)
	}

	r.log.Infow("evaluating vulnerable fixtures", "dir", r.corpusDir)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		class := entry.Name()
		if !res.Measures(class) {
			r.log.Debugw("skipping corpus directory for unregistered class", "class", class)
			continue
		}

		paths, err := r.corpusFiles(filepath.Join(r.corpusDir, class))
		if err != nil {
			return err
		}
		for _, path := range paths {
			fx := Fixture{Class: class, Path: path, Truth: Vulnerable}
			flagged, err := r.evaluate(fx)
			if err != nil {
				return err
			}
			if err := res.Record(fx, flagged); err != nil {
				return err
			}
		}
	}
	return nil
}

// corpusFiles lists the regular files in dir that carry a corpus extension,
// sorted by name.
func (r *Runner) corpusFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus class directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !r.hasExtension(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

func (r *Runner) hasExtension(name string) bool {
	ext := filepath.Ext(name)
	for _, want := range r.extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

func (r *Runner) evaluateSafe(res *Result) (err error) {
	if err := os.MkdirAll(r.scratchDir, 0o755); err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(r.scratchDir); rmErr != nil {
			r.log.Warnw("failed to remove scratch directory", "dir", r.scratchDir, "error", rmErr)
			err = errors.Join(err, fmt.Errorf("removing scratch directory: %w", rmErr))
		}
	}()

	r.log.Infow("evaluating safe fixtures", "dir", r.scratchDir)
	for _, class := range r.classes {
		samples := r.samples(class)
		if !samples.Curated {
			res.MarkDegraded(class)
			r.log.Warnw("no curated safe samples, using placeholder", "class", class)
		}

		for i, src := range samples.Snippets {
			path := ScratchPath(r.scratchDir, class, i, r.extensions[0])
			if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
				return fmt.Errorf("writing safe fixture: %w", err)
			}

			fx := Fixture{Class: class, Path: path, Truth: Safe}
			flagged, err := r.evaluate(fx)
			if err != nil {
				return err
			}
			if err := res.Record(fx, flagged); err != nil {
				return err
			}
		}
	}
	return nil
}

// CheckScratchDir returns ErrScratchHoldsCorpus when scratch resolves to
// corpus or to one of its ancestors. An empty corpus is always accepted.
func CheckScratchDir(scratch, corpus string) error {
	if scratch == "" || corpus == "" {
		return nil
	}
	s, err := filepath.Abs(scratch)
	if err != nil {
		return fmt.Errorf("resolving scratch directory: %w", err)
	}
	c, err := filepath.Abs(corpus)
	if err != nil {
		return fmt.Errorf("resolving corpus directory: %w", err)
	}

	rel, err := filepath.Rel(s, c)
	if err != nil {
		// Different volumes.
		return nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return fmt.Errorf("%w: %s holds %s", ErrScratchHoldsCorpus, scratch, corpus)
}

// ScratchPath names the file for sample i of class. The index is the last
// underscore-separated field, so names never collide across classes.
func ScratchPath(dir, class string, i int, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("safe_%s_%d%s", class, i, ext))
}

// evaluate runs a fresh analyzer on fx and reports whether it flagged
// fx's class.
func (r *Runner) evaluate(fx Fixture) (bool, error) {
	a, err := r.newAnalyzer()
	if err != nil {
		return false, &AnalysisError{Fixture: fx, Err: fmt.Errorf("creating analyzer: %w", err)}
	}

	findings, err := a.Analyze(fx.Path)
	if err != nil {
		return false, &AnalysisError{Fixture: fx, Err: err}
	}

	flagged := analyzer.Flags(findings, fx.Class)
	r.log.Debugw("fixture evaluated",
		"class", fx.Class,
		"truth", fx.Truth,
		"path", fx.Path,
		"findings", len(findings),
		"flagged", flagged)
	return flagged, nil
}
