package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/kcaldas/treepeek/pkg/config"
	"github.com/kcaldas/treepeek/pkg/ctx"
	"github.com/kcaldas/treepeek/pkg/logging"
	"github.com/kcaldas/treepeek/pkg/summary"
	"github.com/kcaldas/treepeek/pkg/value"
)

// Input formats accepted by --format.
const (
	formatAuto = "auto"
	formatJSON = "json"
	formatYAML = "yaml"
)

var errNoInput = errors.New("no input: pass a file or pipe a document on stdin")

type summarizeFlags struct {
	size            int
	tokens          int
	pretty          bool
	human           bool
	format          string
	path            string
	itemCap         int
	maxDepth        int
	stringThreshold int
	maxPasses       int
	stats           bool
	copy            bool
	model           string
}

func newSummarizeCommand(configProvider func() config.Manager) *cobra.Command {
	f := &summarizeFlags{}

	cmd := &cobra.Command{
		Use:   "summarize [file]",
		Short: "Print a summary of a document that fits the budget",
		Long: `Summarize reads a JSON or YAML document from a file or stdin and prints the
richest summary whose rendering fits the budget.

Examples:
  treepeek summarize data.json                # default budget
  treepeek summarize -s 500 -p data.json      # 500 characters, indented
  curl -s api/items | treepeek summarize --tokens 200 --stats
  treepeek summarize --path data.items big.json`,
		Aliases: []string{"sum"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := configProvider()
			if manager == nil {
				manager = config.NewConfigManager()
			}
			return runSummarize(cmd, args, f, manager.GetSummaryDefaults())
		},
	}

	cmd.Flags().IntVarP(&f.size, "size", "s", 0, "character budget (default from config)")
	cmd.Flags().IntVar(&f.tokens, "tokens", 0, "token budget; overrides --size")
	cmd.Flags().BoolVarP(&f.pretty, "pretty", "p", false, "indent the output, one entry per line")
	cmd.Flags().BoolVar(&f.human, "human", false, "spell out the omission markers for reading")
	cmd.Flags().StringVar(&f.format, "format", formatAuto, "input format: json, yaml or auto")
	cmd.Flags().StringVar(&f.path, "path", "", "summarize only the part selected by a gjson path (JSON input)")
	cmd.Flags().IntVar(&f.itemCap, "item-cap", 0, "entries kept per container (default from config)")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "reject documents nested deeper than this (default from config)")
	cmd.Flags().IntVar(&f.stringThreshold, "string-threshold", 0, "cut strings longer than this many characters (default from config)")
	cmd.Flags().IntVar(&f.maxPasses, "max-passes", 0, "stop the search after this many passes (0 = unlimited)")
	cmd.Flags().BoolVar(&f.stats, "stats", false, "print size and token statistics to stderr")
	cmd.Flags().BoolVar(&f.copy, "copy", false, "copy the summary to the clipboard")
	cmd.Flags().StringVar(&f.model, "model", "", "tokenizer model for --stats (default from config)")

	return cmd
}

func runSummarize(cmd *cobra.Command, args []string, f *summarizeFlags, defaults config.SummaryDefaults) error {
	logger := logging.NewOperationLogger("cli", "summarize")

	data, name, err := readDocument(cmd, args)
	if err != nil {
		return err
	}

	doc, err := decodeDocument(data, name, f.format, f.path)
	if err != nil {
		return err
	}

	opts := f.options(cmd, defaults)
	logger.Debug("summarizing", "input", name, "bytes", len(data), "target", opts.TargetSize, "pretty", opts.Pretty)

	res, err := summary.Summarize(doc, opts)
	if err != nil {
		return fmt.Errorf("failed to summarize %s: %w", name, err)
	}

	text := res.Text
	if f.human && !res.TruncatedHard {
		text = summary.FormatForHumans(res.Summary)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)

	if f.stats {
		model := f.model
		if model == "" {
			model = defaults.Model
		}
		printStats(cmd, res, opts.TargetSize, ctx.NewTokenCounter(model))
	}

	if f.copy {
		if err := clipboard.WriteAll(text); err != nil {
			logging.LogError(logger, "failed to copy summary to clipboard", err)
		} else {
			logger.Info("summary copied to clipboard", "chars", res.Size)
		}
	}
	return nil
}

// options merges explicit flags over the configured defaults.
func (f *summarizeFlags) options(cmd *cobra.Command, defaults config.SummaryDefaults) summary.Options {
	target := defaults.TargetSize
	switch {
	case f.tokens > 0:
		target = ctx.CharsForTokens(f.tokens)
	case f.size > 0:
		target = f.size
	}

	opts := summary.DefaultOptions(target)
	opts.Pretty = defaults.Pretty
	if cmd.Flags().Changed("pretty") {
		opts.Pretty = f.pretty
	}
	opts.MaxItemCap = firstPositive(f.itemCap, defaults.ItemCap)
	opts.MaxDepthCap = firstPositive(f.maxDepth, defaults.MaxDepth)
	opts.StringThreshold = firstPositive(f.stringThreshold, defaults.StringThreshold)
	opts.MaxPasses = f.maxPasses
	opts.Logger = logging.NewComponentLogger("summary")
	return opts
}

// readDocument reads the file named by args, or stdin when no file (or "-")
// is given.
func readDocument(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return data, args[0], nil
	}

	in := cmd.InOrStdin()
	if !hasStdinInput(in) {
		return nil, "", errNoInput
	}
	data, err := readStdinInput(in)
	if err != nil {
		return nil, "", err
	}
	return data, "stdin", nil
}

// decodeDocument parses data according to format. In auto mode the file
// extension decides, then the first non-space byte.
func decodeDocument(data []byte, name, format, path string) (value.Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return value.Value{}, fmt.Errorf("%s is empty", name)
	}

	if format == formatAuto {
		format = detectFormat(data, name)
	}

	var (
		doc value.Value
		err error
	)
	switch format {
	case formatJSON:
		doc, err = value.FromJSONPath(data, path)
	case formatYAML:
		if path != "" {
			return value.Value{}, errors.New("--path requires JSON input")
		}
		doc, err = value.FromYAML(data)
	default:
		return value.Value{}, fmt.Errorf("unknown format %q (want json, yaml or auto)", format)
	}
	if err != nil {
		return value.Value{}, fmt.Errorf("failed to decode %s as %s: %w", name, format, err)
	}
	return doc, nil
}

func detectFormat(data []byte, name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".jsonc":
		return formatJSON
	case ".yaml", ".yml":
		return formatYAML
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[' || trimmed[0] == '"') {
		return formatJSON
	}
	return formatYAML
}

func printStats(cmd *cobra.Command, res summary.Result, target int, counter ctx.TokenCounter) {
	st := res.Summary.Stats()
	w := cmd.ErrOrStderr()

	fmt.Fprintf(w, "size:    %s / %s chars", humanize.Comma(int64(res.Size)), humanize.Comma(int64(target)))
	switch {
	case res.TruncatedHard:
		fmt.Fprint(w, " (hard truncated)")
	case res.Size > target:
		fmt.Fprintf(w, " (%d over, depth-0 overflow)", res.Size-target)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "tokens:  %s (%s)\n", humanize.Comma(int64(counter.Count(res.Text))), counter.Name())
	fmt.Fprintf(w, "depth:   %d of %d\n", res.DepthUsed, res.MaxDepth)
	if res.ItemCap > 0 {
		fmt.Fprintf(w, "cap:     %d items per container\n", res.ItemCap)
	}
	fmt.Fprintf(w, "omitted: %s entries in %d markers, %d strings cut\n",
		humanize.Comma(int64(st.OmittedEntries)), st.Elisions, st.TruncatedStrings)
	fmt.Fprintf(w, "passes:  %d\n", res.Passes)
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
