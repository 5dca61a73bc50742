package summary

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kcaldas/treepeek/pkg/value"
)

func mustJSON(t *testing.T, doc string) value.Value {
	t.Helper()
	v, err := value.FromJSON([]byte(doc))
	require.NoError(t, err)
	return v
}

// mustVerbatim returns the unreduced summary of v.
func mustVerbatim(t *testing.T, v value.Value) Node {
	t.Helper()
	n, err := FromValue(v, DefaultOptions(1))
	require.NoError(t, err)
	return n
}

// scenarioA is the small nested object used throughout these tests.
const scenarioA = `{"a":1,"b":{"c":[1,2,3,4,5]}}`

func intArray(n int) value.Value {
	items := make([]value.Value, n)
	for i := range items {
		items[i] = value.Int(int64(i))
	}
	return value.Array(items...)
}

// corpus returns documents of assorted shapes for property checks.
func corpus(t *testing.T) map[string]value.Value {
	t.Helper()

	users := make([]string, 30)
	for i := range users {
		users[i] = fmt.Sprintf(`{"id":%d,"name":"user-%02d","tags":["x","y"],"active":%t}`, i, i, i%2 == 0)
	}

	chain := value.String("leaf")
	for i := range 20 {
		chain = value.Array(value.Int(int64(i)), chain, value.String("s"))
	}

	return map[string]value.Value{
		"scenario":  mustJSON(t, scenarioA),
		"ints":      intArray(500),
		"users":     mustJSON(t, "["+strings.Join(users, ",")+"]"),
		"chain":     chain,
		"empty":     mustJSON(t, `{"a":{},"b":[],"c":[[]],"d":{"e":{}}}`),
		"scalar":    value.String(strings.Repeat("long text ", 40)),
		"config":    mustJSON(t, configDoc),
		"unicode":   mustJSON(t, `{"héllo":"wörld ✓","emoji":"😀😀😀","ctl":"a\tb\u0001c","q":"say \"hi\""}`),
		"zero":      value.Null(),
		"emptyList": value.Array(),
	}
}

const configDoc = `{
	"service": "billing",
	"version": "2.4.1",
	"replicas": 3,
	"description": "` + "Handles invoices, payment reconciliation and the monthly statement run for every active customer account in all supported regions worldwide." + `",
	"env": {"LOG_LEVEL": "info", "REGION": "eu-west-1", "FEATURE_FLAGS": ["a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"]},
	"ports": [{"name": "http", "port": 8080}, {"name": "grpc", "port": 9090}, {"name": "metrics", "port": 9100}],
	"limits": {"cpu": "500m", "memory": "512Mi", "nested": {"deeper": {"deepest": [1, 2, {"bottom": true}]}}}
}`

// randomDocs returns n reproducible trees up to five levels deep with at
// most nine entries per container. Strings mix escapes, invalid UTF-8 and
// multi-byte runes.
func randomDocs(n int) []value.Value {
	rng := rand.New(rand.NewPCG(7, 11))
	docs := make([]value.Value, n)
	for i := range docs {
		docs[i] = randomValue(rng, 1+rng.IntN(5))
	}
	return docs
}

var randomFragments = []string{"a", "key", "\"", "\n", "\t", "\x01", "\xff", "é", "日本", "…", " "}

func randomString(rng *rand.Rand) string {
	var sb strings.Builder
	for range rng.IntN(30) {
		sb.WriteString(randomFragments[rng.IntN(len(randomFragments))])
	}
	return sb.String()
}

func randomValue(rng *rand.Rand, depth int) value.Value {
	if depth == 0 || rng.IntN(4) == 0 {
		switch rng.IntN(5) {
		case 0:
			return value.Null()
		case 1:
			return value.Bool(rng.IntN(2) == 0)
		case 2:
			return value.Int(rng.Int64N(100000) - 500)
		case 3:
			return value.Float(rng.Float64() * 1000)
		default:
			return value.String(randomString(rng))
		}
	}

	n := rng.IntN(10)
	if rng.IntN(2) == 0 {
		items := make([]value.Value, n)
		for i := range items {
			items[i] = randomValue(rng, depth-1)
		}
		return value.Array(items...)
	}
	members := make([]value.Member, n)
	for i := range members {
		members[i] = value.Member{Key: randomString(rng), Value: randomValue(rng, depth-1)}
	}
	return value.Object(members...)
}
