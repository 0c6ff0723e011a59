package analyzer

import (
	"fmt"
	"strings"
)

// Chain runs several analyzers over the same file in order and
// concatenates their findings. The first error stops the chain.
type Chain struct {
	analyzers []Analyzer
}

// NewChain creates a chain. Analyzers are executed in the order provided.
func NewChain(analyzers ...Analyzer) *Chain {
	return &Chain{analyzers: analyzers}
}

func (c *Chain) Name() string {
	names := make([]string, len(c.analyzers))
	for i, a := range c.analyzers {
		names[i] = a.Name()
	}
	return strings.Join(names, "+")
}

// Analyze executes all analyzers in order and collects their findings.
func (c *Chain) Analyze(path string) ([]Finding, error) {
	var all []Finding
	for _, a := range c.analyzers {
		findings, err := a.Analyze(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", a.Name(), err)
		}
		all = append(all, findings...)
	}
	return all, nil
}

// Analyzers returns the chained analyzers (for inspection/testing).
func (c *Chain) Analyzers() []Analyzer {
	return c.analyzers
}

// ChainFactory builds a fresh member from every factory on each call.
// A single factory is returned as is.
func ChainFactory(factories ...Factory) Factory {
	if len(factories) == 1 {
		return factories[0]
	}
	return func() (Analyzer, error) {
		members := make([]Analyzer, 0, len(factories))
		for _, f := range factories {
			a, err := f()
			if err != nil {
				return nil, err
			}
			members = append(members, a)
		}
		return NewChain(members...), nil
	}
}
