package ctx

import (
	"github.com/pkoukk/tiktoken-go"

	"github.com/kcaldas/treepeek/pkg/logging"
)

const (
	// fallbackEncoding is used for models tiktoken does not know.
	fallbackEncoding = "cl100k_base"

	heuristicName = "heuristic"
)

// TokenCounter counts the tokens of a piece of text.
type TokenCounter interface {
	Name() string
	Count(text string) int
}

// NewTokenCounter returns a tiktoken counter for model, falling back to the
// cl100k_base encoding for unknown models and to the chars/4 heuristic when
// no encoding can be loaded. The model name "heuristic" (or "") selects the
// heuristic directly.
func NewTokenCounter(model string) TokenCounter {
	if model == "" || model == heuristicName {
		return NewHeuristicCounter()
	}
	logger := logging.NewComponentLogger("tokens")

	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		logger.Debug("no encoding for model, using fallback", "model", model, "encoding", fallbackEncoding)
		return NewTokenCounterForEncoding(fallbackEncoding)
	}
	return &tiktokenCounter{name: model, enc: enc}
}

// NewTokenCounterForEncoding returns a counter for a named tiktoken encoding
// such as "cl100k_base" or "o200k_base".
func NewTokenCounterForEncoding(encoding string) TokenCounter {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		logging.NewComponentLogger("tokens").Warn("tiktoken encoding unavailable, estimating tokens", "encoding", encoding, "error", err)
		return NewHeuristicCounter()
	}
	return &tiktokenCounter{name: encoding, enc: enc}
}

// NewHeuristicCounter returns a counter based on EstimateTokens.
func NewHeuristicCounter() TokenCounter {
	return heuristicCounter{}
}

type tiktokenCounter struct {
	name string
	enc  *tiktoken.Tiktoken
}

func (c *tiktokenCounter) Name() string {
	return c.name
}

func (c *tiktokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(c.enc.Encode(text, nil, nil))
}

type heuristicCounter struct{}

func (heuristicCounter) Name() string {
	return heuristicName
}

func (heuristicCounter) Count(text string) int {
	return EstimateTokens(text)
}
