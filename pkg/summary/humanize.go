package summary

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/kcaldas/treepeek/pkg/value"
)

// FormatForHumans renders n in pretty layout with the elision markers spelled
// out: counts are digit-grouped and omitted object keys are sampled, as in
// `… and 9,990 more items not shown`. The output is for display only; it is
// longer than Render's and is not held to any budget.
func FormatForHumans(n Node) string {
	opts := Options{Pretty: true}
	r := renderer{layout: opts.layout(), markers: humanMarkers{}}
	r.emit(n, 0)
	return r.sb.String()
}

type humanMarkers struct{}

func (humanMarkers) elided(e Elision) string {
	open, closing := brackets(e.Of)
	return open + ellipsis + " " + humanize.Comma(int64(e.Omitted)) + " " + noun(e.Of, e.Omitted) + " not shown" + sampleSuffix(e) + closing
}

func (humanMarkers) trailing(e Elision) string {
	return ellipsis + " and " + humanize.Comma(int64(e.Omitted)) + " more " + noun(e.Of, e.Omitted) + " not shown" + sampleSuffix(e)
}

func (humanMarkers) truncated(remaining int) string {
	unit := "characters"
	if remaining == 1 {
		unit = "character"
	}
	return ellipsis + " (" + humanize.Comma(int64(remaining)) + " more " + unit + ")"
}

func sampleSuffix(e Elision) string {
	if e.Of != value.KindObject || len(e.Sample) == 0 {
		return ""
	}
	suffix := ": " + strings.Join(e.Sample, ", ")
	if e.Omitted > len(e.Sample) {
		suffix += ", " + ellipsis
	}
	return suffix
}
