package analyzer

import (
	"errors"
	"fmt"
)

// Analyzer kinds accepted by NewFactory.
const (
	KindPattern = "pattern"
	KindCommand = "command"
)

// FactoryConfig selects and configures the analyzers a benchmark runs.
type FactoryConfig struct {
	// Kinds lists analyzers to chain, in order. Empty means pattern only.
	Kinds []string
	// Rules feed the pattern analyzer.
	Rules []Rule
	// Command is the external scanner command line for the command analyzer.
	Command string
}

// NewFactory validates cfg and returns a Factory producing independent
// analyzers.
func NewFactory(cfg FactoryConfig) (Factory, error) {
	kinds := cfg.Kinds
	if len(kinds) == 0 {
		kinds = []string{KindPattern}
	}

	factories := make([]Factory, 0, len(kinds))
	for _, kind := range kinds {
		switch kind {
		case KindPattern:
			if len(cfg.Rules) == 0 {
				return nil, errors.New("pattern analyzer has no rules")
			}
			f, err := NewPatternFactory(cfg.Rules)
			if err != nil {
				return nil, err
			}
			factories = append(factories, f)
		case KindCommand:
			f, err := NewCommandFactory(cfg.Command)
			if err != nil {
				return nil, err
			}
			factories = append(factories, f)
		default:
			return nil, fmt.Errorf("unknown analyzer kind %q (want %s or %s)", kind, KindPattern, KindCommand)
		}
	}
	return ChainFactory(factories...), nil
}
