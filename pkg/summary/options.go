package summary

import (
	"unicode/utf8"

	"github.com/kcaldas/treepeek/pkg/logging"
)

const (
	// DefaultMaxItemCap is the number of entries kept per container before
	// the rest collapse into one trailing marker.
	DefaultMaxItemCap = 10

	// DefaultMaxDepthCap bounds the nesting a document may have.
	DefaultMaxDepthCap = 64

	// DefaultStringThreshold is the rune length above which strings are cut.
	DefaultStringThreshold = 120

	// DefaultIndent is the per-level indentation of pretty output.
	DefaultIndent = "  "

	// Overhead is how far a depth-0 rendering may exceed the target before
	// it is hard truncated instead.
	Overhead = 24

	// MinMarkerSize is the smallest target for which a depth-0 overflow
	// within Overhead is accepted. It is a chosen threshold, not the width of
	// a rendered marker (the shortest, "{… 1 key omitted}", is 17 runes).
	// Targets below it always take the hard truncation path.
	MinMarkerSize = 3
)

// Options configures a summarization request. Sizes are counted in runes.
type Options struct {
	// TargetSize is the character budget of the rendered summary.
	TargetSize int

	// Pretty selects multi-line indented output.
	Pretty bool

	// Indent is the per-level indentation in pretty mode (default "  ").
	Indent string

	// MaxItemCap is the per-container entry ceiling (default 10).
	MaxItemCap int

	// MaxDepthCap rejects documents nested deeper than this (default 64).
	MaxDepthCap int

	// StringThreshold is the rune length above which strings are cut
	// (default 120).
	StringThreshold int

	// MaxPasses caps the reduce+estimate passes of the search; 0 means
	// unlimited. The depth-0 fallback pass is never skipped.
	MaxPasses int

	// Logger receives debug traces of the search. Defaults to the global
	// component logger.
	Logger logging.Logger
}

// DefaultOptions returns compact options for the given budget.
func DefaultOptions(targetSize int) Options {
	return Options{
		TargetSize:      targetSize,
		Indent:          DefaultIndent,
		MaxItemCap:      DefaultMaxItemCap,
		MaxDepthCap:     DefaultMaxDepthCap,
		StringThreshold: DefaultStringThreshold,
	}
}

// normalized fills unset fields with their defaults.
func (o Options) normalized() Options {
	if o.Indent == "" {
		o.Indent = DefaultIndent
	}
	if o.MaxItemCap <= 0 {
		o.MaxItemCap = DefaultMaxItemCap
	}
	if o.MaxDepthCap <= 0 {
		o.MaxDepthCap = DefaultMaxDepthCap
	}
	if o.StringThreshold <= 0 {
		o.StringThreshold = DefaultStringThreshold
	}
	if o.Logger == nil {
		o.Logger = logging.NewComponentLogger("summary")
	}
	return o
}

func (o Options) layout() layout {
	indent := o.Indent
	if indent == "" {
		indent = DefaultIndent
	}
	return layout{pretty: o.Pretty, indent: indent, indentWidth: utf8.RuneCountInString(indent)}
}
