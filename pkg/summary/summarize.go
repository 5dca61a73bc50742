package summary

import (
	"fmt"
	"unicode/utf8"

	"github.com/kcaldas/treepeek/pkg/logging"
	"github.com/kcaldas/treepeek/pkg/value"
)

// Result is the outcome of Summarize.
type Result struct {
	// Summary is the accepted tree. On the hard truncation path it is the
	// depth-0 tree whose rendering was cut.
	Summary Node

	// Text is the rendering of Summary, cut to TargetSize runes when
	// TruncatedHard is set.
	Text string

	// DepthUsed is the number of container levels expanded.
	DepthUsed int

	// TruncatedHard is set when no structural reduction fit and the depth-0
	// rendering was cut.
	TruncatedHard bool

	// MaxDepth is the nesting depth of the whole document.
	MaxDepth int

	// ItemCap is the per-container cap of the accepted tree, 0 when the
	// document is shown whole.
	ItemCap int

	// Passes counts the reduce+estimate passes spent.
	Passes int

	// Size is the rune length of Text.
	Size int
}

// Summarize finds the richest summary of v whose rendering fits within
// opts.TargetSize runes.
//
// The document is shown whole when it fits. Otherwise the deepest level that
// fits at opts.MaxItemCap is found by binary search over [1, MaxDepth]; the
// rendered width never decreases with depth, so O(log MaxDepth) passes
// suffice. Failing that, the item cap is shrunk at depth 1 so a prefix of the
// top level stays visible, and after that the depth-0 rendering is used. A
// depth-0 rendering at most Overhead runes over budget is accepted as is;
// anything larger is cut to exactly TargetSize runes ending in "…".
//
// Errors are returned for a non-positive budget (ErrInvalidBudget), invalid
// numbers (ErrInvalidInput) and documents nested deeper than
// opts.MaxDepthCap (ErrMaxNestingExceeded). Running out of budget is never an
// error.
func Summarize(v value.Value, opts Options) (Result, error) {
	if opts.TargetSize <= 0 {
		return Result{}, fmt.Errorf("%w: target size %d must be positive", ErrInvalidBudget, opts.TargetSize)
	}
	opts = opts.normalized()

	if err := value.Validate(v); err != nil {
		return Result{}, fmt.Errorf("summarize: %w", err)
	}
	maxDepth := value.Depth(v)
	if maxDepth > opts.MaxDepthCap {
		return Result{}, fmt.Errorf("%w: document depth %d exceeds cap %d", ErrMaxNestingExceeded, maxDepth, opts.MaxDepthCap)
	}

	l := opts.layout()
	s := &search{
		value:    v,
		opts:     opts,
		layout:   l,
		tree:     measure(v, l),
		maxDepth: maxDepth,
		logger:   opts.Logger,
	}
	return s.run(), nil
}

// AdaptiveSummarize returns the accepted summary tree and the depth used.
func AdaptiveSummarize(v value.Value, targetSize int, pretty bool) (Node, int, error) {
	opts := DefaultOptions(targetSize)
	opts.Pretty = pretty
	res, err := Summarize(v, opts)
	if err != nil {
		return Node{}, 0, err
	}
	return res.Summary, res.DepthUsed, nil
}

// AdaptiveSummarizeText returns the rendered summary and the depth used.
func AdaptiveSummarizeText(v value.Value, targetSize int, pretty bool) (string, int, error) {
	opts := DefaultOptions(targetSize)
	opts.Pretty = pretty
	res, err := Summarize(v, opts)
	if err != nil {
		return "", 0, err
	}
	return res.Text, res.DepthUsed, nil
}

type search struct {
	value    value.Value
	opts     Options
	layout   layout
	tree     measured
	maxDepth int
	passes   int
	logger   logging.Logger
}

type candidate struct {
	node    Node
	width   int
	depth   int
	itemCap int
}

func (s *search) run() Result {
	target := s.opts.TargetSize

	if s.tree.size <= target {
		full := candidate{node: s.tree.verbatimNode(s.value), width: s.tree.size, depth: s.maxDepth}
		return s.accept(full, "full")
	}
	if best, ok := s.deepest(s.opts.MaxItemCap); ok {
		return s.accept(best, "depth")
	}
	if best, ok := s.widest(); ok {
		return s.accept(best, "shrunk_cap")
	}

	base := s.pass(0, s.opts.MaxItemCap)
	if base.width <= target {
		return s.accept(base, "depth_zero")
	}
	if target >= MinMarkerSize && base.width <= target+Overhead {
		return s.accept(base, "overflow")
	}
	return s.hardTruncate(base)
}

// deepest binary searches [1, maxDepth] for the greatest depth whose
// rendering fits at itemCap.
func (s *search) deepest(itemCap int) (candidate, bool) {
	var best candidate
	found := false
	lo, hi := 1, s.maxDepth
	for lo <= hi {
		mid := lo + (hi-lo)/2
		c, ok := s.try(mid, itemCap)
		if !ok {
			break
		}
		if c.width <= s.opts.TargetSize {
			best, found = c, true
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return best, found
}

// widest binary searches for the largest cap below MaxItemCap that lets the
// top level be expanded.
func (s *search) widest() (candidate, bool) {
	if s.maxDepth < 1 {
		return candidate{}, false
	}
	var best candidate
	found := false
	lo, hi := 1, s.opts.MaxItemCap-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		c, ok := s.try(1, mid)
		if !ok {
			break
		}
		if c.width <= s.opts.TargetSize {
			best, found = c, true
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return best, found
}

// try runs a pass unless the pass ceiling has been reached.
func (s *search) try(depth, itemCap int) (candidate, bool) {
	if s.opts.MaxPasses > 0 && s.passes >= s.opts.MaxPasses {
		s.logger.Debug("pass ceiling reached", "passes", s.passes)
		return candidate{}, false
	}
	return s.pass(depth, itemCap), true
}

func (s *search) pass(depth, itemCap int) candidate {
	s.passes++
	r := reducer{layout: s.layout, itemCap: itemCap, threshold: s.opts.StringThreshold}
	node, width := r.reduce(s.value, &s.tree, depth, 0)
	s.logger.Debug("reduce pass", "depth", depth, "item_cap", itemCap, "width", width, "target", s.opts.TargetSize)
	return candidate{node: node, width: width, depth: depth, itemCap: itemCap}
}

func (s *search) accept(c candidate, stage string) Result {
	text := Render(c.node, s.opts)
	s.logger.Debug("summary accepted", "stage", stage, "depth", c.depth, "item_cap", c.itemCap, "width", c.width, "passes", s.passes)
	return Result{
		Summary:   c.node,
		Text:      text,
		DepthUsed: c.depth,
		MaxDepth:  s.maxDepth,
		ItemCap:   c.itemCap,
		Passes:    s.passes,
		Size:      utf8.RuneCountInString(text),
	}
}

// hardTruncate cuts the depth-0 rendering to exactly TargetSize runes, the
// last of which is the marker.
func (s *search) hardTruncate(base candidate) Result {
	target := s.opts.TargetSize
	text := HardTruncate(Render(base.node, s.opts), target)
	s.logger.Debug("summary hard truncated", "width", base.width, "target", target, "passes", s.passes)
	return Result{
		Summary:       base.node,
		Text:          text,
		DepthUsed:     0,
		TruncatedHard: true,
		MaxDepth:      s.maxDepth,
		ItemCap:       base.itemCap,
		Passes:        s.passes,
		Size:          utf8.RuneCountInString(text),
	}
}

// HardTruncate cuts text to exactly size runes, the last of which is "…".
// Text that already fits is returned unchanged.
func HardTruncate(text string, size int) string {
	if utf8.RuneCountInString(text) <= size {
		return text
	}
	if size <= 0 {
		return ""
	}
	return firstRunes(text, size-1) + ellipsis
}
