package ctx

import (
	"strings"

	"github.com/kcaldas/treepeek/pkg/logging"
	"github.com/kcaldas/treepeek/pkg/summary"
	"github.com/kcaldas/treepeek/pkg/value"
)

// StructuralStrategy summarizes JSON and YAML documents by collapsing deep
// or wide parts of the tree instead of cutting text. Content that is not a
// structured document is handed to the fallback strategy.
type StructuralStrategy struct {
	options  summary.Options
	fallback BudgetStrategy
	logger   logging.Logger
}

// NewStructuralStrategy creates a structural strategy. A nil fallback
// defaults to a soft trim keeping 1500 characters at each end.
func NewStructuralStrategy(options summary.Options, fallback BudgetStrategy) *StructuralStrategy {
	if fallback == nil {
		fallback = NewSoftTrimStrategy(1500, 1500)
	}
	logger := logging.NewComponentLogger("structural")
	if options.Logger == nil {
		options.Logger = logger
	}
	return &StructuralStrategy{options: options, fallback: fallback, logger: logger}
}

func (s *StructuralStrategy) Name() string {
	return "structural"
}

func (s *StructuralStrategy) Apply(content string, budgetTokens int) (string, int) {
	if budgetTokens <= 0 {
		return "", 0
	}

	tokens := EstimateTokens(content)
	if tokens <= budgetTokens {
		return content, tokens
	}

	doc, ok := parseDocument(content)
	if !ok {
		s.logger.Debug("content is not a document, using fallback", "fallback", s.fallback.Name())
		return s.fallback.Apply(content, budgetTokens)
	}

	chars := CharsForTokens(budgetTokens)
	opts := s.options
	opts.TargetSize = chars
	res, err := summary.Summarize(doc, opts)
	if err != nil {
		s.logger.Debug("summarize failed, using fallback", "error", err)
		return s.fallback.Apply(content, budgetTokens)
	}

	// A depth-0 overflow may exceed the character budget; the token budget
	// is strict.
	text := summary.HardTruncate(res.Text, chars)
	return text, EstimateTokens(text)
}

// parseDocument decodes content as JSON or YAML. Only objects and arrays
// count as documents, since YAML reads any plain text as a string.
func parseDocument(content string) (value.Value, bool) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return value.Value{}, false
	}

	if trimmed[0] == '{' || trimmed[0] == '[' {
		if v, err := value.FromJSON([]byte(trimmed)); err == nil {
			return v, true
		}
	}
	v, err := value.FromYAML([]byte(content))
	if err != nil || !v.IsContainer() {
		return value.Value{}, false
	}
	return v, true
}
