package ctx

// BudgetStrategy fits a piece of content within a token budget. Strategies
// are interchangeable so callers can pick one per content type.
type BudgetStrategy interface {
	// Name returns a short identifier for logging.
	Name() string

	// Apply returns content reduced to fit budgetTokens together with the
	// estimated tokens of the result.
	Apply(content string, budgetTokens int) (trimmed string, tokensUsed int)
}
