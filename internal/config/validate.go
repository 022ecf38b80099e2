package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks configuration consistency. Path existence is checked at
// use time, not here, so a config can be written before its folders exist.
func (c *Config) Validate() error {
	var problems []string

	m := c.Matching
	if m.MinScore < 0 {
		problems = append(problems, "matching.min_score must not be negative")
	}
	for name, boost := range map[string]float64{
		"matching.date_boost":      m.DateBoost,
		"matching.extension_boost": m.ExtensionBoost,
		"matching.sequence_boost":  m.SequenceBoost,
	} {
		if boost < 0 {
			problems = append(problems, name+" must not be negative")
		}
	}
	if m.DecisiveScore <= m.MinScore {
		problems = append(problems, "matching.decisive_score must exceed matching.min_score")
	}
	if m.AmbiguityMargin < 0 {
		problems = append(problems, "matching.ambiguity_margin must not be negative")
	}
	if m.MaxCandidates <= 0 {
		problems = append(problems, "matching.max_candidates must be positive")
	}

	if _, err := c.RoutingTable(); err != nil {
		problems = append(problems, err.Error())
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format: unsupported value %q", c.Logging.Format))
	}

	if c.Oracle.Enabled {
		if strings.TrimSpace(c.Oracle.APIKey) == "" {
			problems = append(problems, "oracle.api_key required when oracle.enabled")
		}
		if strings.TrimSpace(c.Oracle.Model) == "" {
			problems = append(problems, "oracle.model required when oracle.enabled")
		}
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
