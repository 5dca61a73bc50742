package ctx

import "fmt"

// SoftTrimStrategy keeps the head and tail of unstructured text and drops
// the middle. It is the fallback for content that does not parse as a
// document.
type SoftTrimStrategy struct {
	headChars int
	tailChars int
}

// NewSoftTrimStrategy creates a new SoftTrim strategy.
// headChars and tailChars control how many characters to keep from each end.
func NewSoftTrimStrategy(headChars, tailChars int) *SoftTrimStrategy {
	return &SoftTrimStrategy{
		headChars: max(headChars, 0),
		tailChars: max(tailChars, 0),
	}
}

func (s *SoftTrimStrategy) Name() string {
	return "soft_trim"
}

func (s *SoftTrimStrategy) Apply(content string, budgetTokens int) (string, int) {
	if budgetTokens <= 0 {
		return "", 0
	}

	tokens := EstimateTokens(content)
	if tokens <= budgetTokens {
		return content, tokens
	}

	runes := []rune(content)
	if keep := s.headChars + s.tailChars; len(runes) > keep {
		dropped := len(runes) - keep
		trimmed := string(runes[:s.headChars]) +
			fmt.Sprintf("\n\n… [%d characters omitted] …\n\n", dropped) +
			string(runes[len(runes)-s.tailChars:])
		if trimmedTokens := EstimateTokens(trimmed); trimmedTokens <= budgetTokens {
			return trimmed, trimmedTokens
		}
		runes = []rune(trimmed)
	}

	// Still too big: hard-cap to the budget.
	if limit := CharsForTokens(budgetTokens); len(runes) > limit {
		runes = runes[:limit]
	}
	capped := string(runes)
	return capped, EstimateTokens(capped)
}
