package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kcaldas/treepeek/pkg/config"
	"github.com/kcaldas/treepeek/pkg/logging"
)

// runCLI executes a fresh command tree with its own config file, returning
// stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	for _, key := range []string{config.EnvTargetSize, config.EnvItemCap, config.EnvMaxDepth, config.EnvStringThreshold, config.EnvPretty, config.EnvModel, logging.EnvDebugFile} {
		t.Setenv(key, "")
	}

	original := logging.GetGlobalLogger()
	t.Cleanup(func() { logging.SetGlobalLogger(original) })

	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("target_size: 2000\nmodel: heuristic\n"), 0o600))

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--config", configFile, "--env-file", filepath.Join(dir, "missing.env")))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func numbers(n int) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := range n {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strings.Repeat("1", 1+i%3))
	}
	sb.WriteByte(']')
	return sb.String()
}

func TestSummarizeCommand(t *testing.T) {
	t.Run("should summarize stdin within the size budget", func(t *testing.T) {
		stdout, _, err := runCLI(t, `{"a":1,"b":{"c":[1,2,3,4,5]}}`, "summarize", "--size", "10")

		require.NoError(t, err)
		assert.Equal(t, "{… 2 keys omitted}\n", stdout)
	})

	t.Run("should print small documents unchanged", func(t *testing.T) {
		stdout, _, err := runCLI(t, `{"a": [1, 2]}`, "summarize")

		require.NoError(t, err)
		assert.Equal(t, "{\"a\":[1,2]}\n", stdout)
	})

	t.Run("should read a file argument", func(t *testing.T) {
		path := writeFile(t, "items.json", numbers(10000))

		stdout, _, err := runCLI(t, "", "summarize", "-s", "100", path)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout, "[1,11,111,1,11,111,1,11,111,1,… 9990 more items omitted]"))
	})

	t.Run("should convert a token budget to characters", func(t *testing.T) {
		stdout, _, err := runCLI(t, numbers(10000), "summarize", "--tokens", "25")

		require.NoError(t, err)
		assert.LessOrEqual(t, len([]rune(strings.TrimSuffix(stdout, "\n"))), 100)
	})

	t.Run("should indent with --pretty", func(t *testing.T) {
		stdout, _, err := runCLI(t, `{"a":[1,2]}`, "summarize", "--pretty")

		require.NoError(t, err)
		assert.Equal(t, "{\n  \"a\": [\n    1,\n    2\n  ]\n}\n", stdout)
	})

	t.Run("should spell out markers with --human", func(t *testing.T) {
		stdout, _, err := runCLI(t, numbers(10000), "summarize", "-s", "100", "--human")

		require.NoError(t, err)
		assert.Contains(t, stdout, "… and 9,990 more items not shown")
	})

	t.Run("should decode YAML by extension", func(t *testing.T) {
		path := writeFile(t, "config.yml", "name: svc\nports:\n  - 80\n  - 443\n")

		stdout, _, err := runCLI(t, "", "summarize", path)

		require.NoError(t, err)
		assert.Equal(t, "{\"name\":\"svc\",\"ports\":[80,443]}\n", stdout)
	})

	t.Run("should select a sub-document with --path", func(t *testing.T) {
		stdout, _, err := runCLI(t, `{"data":{"items":[{"id":1},{"id":2}]}}`, "summarize", "--path", "data.items.#.id")

		require.NoError(t, err)
		assert.Equal(t, "[1,2]\n", stdout)
	})

	t.Run("should honour --item-cap", func(t *testing.T) {
		stdout, _, err := runCLI(t, numbers(100), "summarize", "-s", "40", "--item-cap", "3")

		require.NoError(t, err)
		assert.Equal(t, "[1,11,111,… 97 more items omitted]\n", stdout)
	})

	t.Run("should print statistics to stderr", func(t *testing.T) {
		stdout, stderr, err := runCLI(t, numbers(10000), "summarize", "-s", "100", "--stats")

		require.NoError(t, err)
		assert.NotContains(t, stdout, "passes")
		assert.Contains(t, stderr, "depth:   1 of 1")
		assert.Contains(t, stderr, "(heuristic)")
		assert.Contains(t, stderr, "omitted: 9,990 entries in 1 markers")
	})

	t.Run("should report hard truncation in statistics", func(t *testing.T) {
		stdout, stderr, err := runCLI(t, `{"a":1,"b":{"c":[1,2,3,4,5]}}`, "summarize", "-s", "2", "--stats")

		require.NoError(t, err)
		assert.Equal(t, "{…\n", stdout)
		assert.Contains(t, stderr, "(hard truncated)")
	})
}

func TestSummarizeCommand_Errors(t *testing.T) {
	t.Run("should reject malformed JSON", func(t *testing.T) {
		_, _, err := runCLI(t, `{"a":`, "summarize")
		assert.ErrorContains(t, err, "failed to decode stdin as json")
	})

	t.Run("should reject empty input", func(t *testing.T) {
		_, _, err := runCLI(t, "  \n", "summarize")
		assert.ErrorContains(t, err, "stdin is empty")
	})

	t.Run("should reject a missing file", func(t *testing.T) {
		_, _, err := runCLI(t, "", "summarize", filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorContains(t, err, "failed to read")
	})

	t.Run("should reject --path on YAML", func(t *testing.T) {
		_, _, err := runCLI(t, "a: 1\n", "summarize", "--format", "yaml", "--path", "a")
		assert.ErrorContains(t, err, "--path requires JSON input")
	})

	t.Run("should reject unknown formats", func(t *testing.T) {
		_, _, err := runCLI(t, "{}", "summarize", "--format", "toml")
		assert.ErrorContains(t, err, "unknown format")
	})

	t.Run("should reject documents deeper than --max-depth", func(t *testing.T) {
		_, _, err := runCLI(t, `[[[[1]]]]`, "summarize", "--max-depth", "2")
		assert.ErrorContains(t, err, "exceeds cap 2")
	})

	t.Run("should reject a missing explicit config file", func(t *testing.T) {
		original := logging.GetGlobalLogger()
		t.Cleanup(func() { logging.SetGlobalLogger(original) })

		cmd := NewRootCommand()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetIn(strings.NewReader("{}"))
		cmd.SetArgs([]string{"summarize", "--config", filepath.Join(t.TempDir(), "missing.yaml")})

		assert.Error(t, cmd.Execute())
	})
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
		want string
	}{
		{"json extension", "a.json", "x: 1", formatJSON},
		{"jsonc extension", "a.jsonc", "{}", formatJSON},
		{"yaml extension", "a.yaml", "{}", formatYAML},
		{"object on stdin", "stdin", "  {\"a\":1}", formatJSON},
		{"array on stdin", "stdin", "[1]", formatJSON},
		{"mapping on stdin", "stdin", "a: 1", formatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectFormat([]byte(tt.data), tt.file))
		})
	}
}

func TestHasStdinInput(t *testing.T) {
	assert.True(t, hasStdinInput(strings.NewReader("x")))
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "", "version", "--short")

	require.NoError(t, err)
	assert.Equal(t, "treepeek version dev\n", stdout)
}
