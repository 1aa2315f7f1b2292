package services

import (
	"strings"

	"github.com/yeremiapane/business-manager/models"
)

// NormalizeOptionStates checks the states list against the option model and
// returns the trimmed non-blank entries. Single-valued models always get nil.
func NormalizeOptionStates(model string, states []string) ([]string, error) {
	if !models.IsMultiValued(model) {
		return nil, nil
	}

	cleaned := make([]string, 0, len(states))
	for _, s := range states {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return nil, invalid("states", "at least one non-empty state is required for model %s", model)
	}
	return cleaned, nil
}
