package summary

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/x/exp/golden"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kcaldas/treepeek/pkg/value"
)

// goldenDoc has a capped array, a depth-elided object and a scalar.
func goldenDoc(t *testing.T) value.Value {
	t.Helper()
	tags := make([]string, 20)
	for i := range tags {
		tags[i] = fmt.Sprintf("%q", string(rune('a'+i)))
	}
	return mustJSON(t, `{"name":"treepeek","tags":[`+strings.Join(tags, ",")+`],"meta":{"owner":{"id":7,"roles":["admin"]}}}`)
}

func TestRender_GoldenPretty(t *testing.T) {
	opts := DefaultOptions(1)
	opts.Pretty = true

	n, err := Reduce(goldenDoc(t), 2, 10, opts)
	require.NoError(t, err)

	golden.RequireEqual(t, []byte(Render(n, opts)))
}

func TestFormatForHumans_Golden(t *testing.T) {
	n, err := Reduce(goldenDoc(t), 2, 10, DefaultOptions(1))
	require.NoError(t, err)

	golden.RequireEqual(t, []byte(FormatForHumans(n)))
}

func TestFormatForHumans_Markers(t *testing.T) {
	n, err := Reduce(intArray(10000), 1, 10, DefaultOptions(1))
	require.NoError(t, err)
	assert.Contains(t, FormatForHumans(n), "  … and 9,990 more items not shown\n")

	n, err = Reduce(mustJSON(t, `{"a":[1,2,3,4,5,6,7,8,9,10],"b":{"x":[1,2,3,4,5,6,7,8,9,10]},"c":[1,2,3,4,5,6,7,8,9,10],"d":[1,2,3,4,5,6,7,8,9,10]}`), 0, 10, DefaultOptions(1))
	require.NoError(t, err)
	assert.Equal(t, "{… 4 keys not shown: a, b, c, …}", FormatForHumans(n))

	long := value.String(strings.Repeat("y", 1300))
	n, err = Reduce(long, 0, 10, DefaultOptions(1))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(FormatForHumans(n), `"… (1,180 more characters)`))
}

func TestEstimate_MatchesRender(t *testing.T) {
	for name, v := range corpus(t) {
		for _, pretty := range []bool{false, true} {
			for _, indent := range []string{"  ", "\t", "····"} {
				opts := DefaultOptions(1)
				opts.Pretty = pretty
				opts.Indent = indent

				assert.Equal(t, utf8.RuneCountInString(Render(mustVerbatim(t, v), opts)), EstimateValue(v, opts), "%s verbatim", name)

				for depth := 0; depth <= value.Depth(v); depth++ {
					for _, itemCap := range []int{1, 3, 10} {
						n, err := Reduce(v, depth, itemCap, opts)
						require.NoError(t, err)

						got := utf8.RuneCountInString(Render(n, opts))
						assert.Equal(t, got, Estimate(n, opts), "%s pretty=%v depth=%d cap=%d", name, pretty, depth, itemCap)
					}
				}
			}
		}
	}
}

func TestRender_EscapesStrings(t *testing.T) {
	v := value.Object(value.Member{Key: "k\"ey", Value: value.String("a\tb\nc\\d\u0001\x7f")})

	got := Render(mustVerbatim(t, v), DefaultOptions(1))
	assert.Equal(t, `{"k\"ey":"a\tb\nc\\d\u0001`+"\x7f"+`"}`, got)
	assert.Equal(t, utf8.RuneCountInString(got), Estimate(mustVerbatim(t, v), DefaultOptions(1)))
}

func TestRender_InvalidUTF8IsEscaped(t *testing.T) {
	v := value.String("a\xffb")

	got := Render(mustVerbatim(t, v), DefaultOptions(1))
	assert.Equal(t, `"a\ufffdb"`, got)
	assert.Equal(t, utf8.RuneCountInString(got), EstimateValue(v, DefaultOptions(1)))
}

func TestRender_MarkerIsNeverQuoted(t *testing.T) {
	v := value.Array(value.String("…"), intArray(50))

	n, err := Reduce(v, 1, 10, DefaultOptions(1))
	require.NoError(t, err)

	assert.Equal(t, `["…",[… 50 items omitted]]`, Render(n, DefaultOptions(1)))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "truncated_string", KindTruncatedString.String())
	assert.Equal(t, "elided", KindElided.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
