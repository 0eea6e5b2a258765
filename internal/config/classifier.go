package config

import "git.home.luguber.info/inful/docsite/internal/foundation/normalization"

// ClassifierStrategy names a section classification strategy.
type ClassifierStrategy string

const (
	// StrategyPrefix matches full slugs against path prefixes and exact slugs.
	StrategyPrefix ClassifierStrategy = "prefix"
	// StrategyBasename matches the final slug segment against name lists.
	StrategyBasename ClassifierStrategy = "basename"
)

var strategyNormalizer = normalization.NewNormalizer("classifier strategy", map[string]ClassifierStrategy{
	"prefix":   StrategyPrefix,
	"basename": StrategyBasename,
}, StrategyPrefix)

// ParseClassifierStrategy validates a raw strategy name.
func ParseClassifierStrategy(raw string) (ClassifierStrategy, error) {
	return strategyNormalizer.Parse(raw)
}
