package ctx

import "unicode/utf8"

// charsPerToken is the heuristic ratio used when no tokenizer is available.
const charsPerToken = 4

// EstimateTokens provides a conservative token estimate for a string: one
// token per four characters, rounded up.
func EstimateTokens(content string) int {
	n := utf8.RuneCountInString(content)
	if n == 0 {
		return 0
	}
	return (n + charsPerToken - 1) / charsPerToken
}

// CharsForTokens converts a token budget into the character budget that
// EstimateTokens maps back onto it.
func CharsForTokens(tokens int) int {
	if tokens <= 0 {
		return 0
	}
	return tokens * charsPerToken
}
