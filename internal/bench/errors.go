package bench

import (
	"errors"
	"fmt"
)

var (
	ErrNoClasses    = errors.New("bench: no weakness classes to measure")
	ErrNoFactory    = errors.New("bench: no analyzer factory")
	ErrNoScratchDir = errors.New("bench: scratch directory not set")
	// ErrScratchHoldsCorpus rejects a scratch directory that is, or is an
	// ancestor of, the corpus. The scratch directory is deleted after a run.
	ErrScratchHoldsCorpus = errors.New("bench: scratch directory must not be or contain the corpus")
)

// AnalysisError is a failed analyzer run on one fixture. It aborts the
// benchmark: a result without that fixture would be wrong.
type AnalysisError struct {
	Fixture Fixture
	Err     error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analyzing %s fixture %s (%s): %v", e.Fixture.Truth, e.Fixture.Path, e.Fixture.Class, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }
