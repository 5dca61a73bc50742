package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kcaldas/treepeek/pkg/config"
	"github.com/kcaldas/treepeek/pkg/logging"
	"github.com/kcaldas/treepeek/pkg/version"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = NewRootCommand()

// globalFlags holds the flags shared by every subcommand.
type globalFlags struct {
	verbose    bool
	quiet      bool
	configPath string
	envFile    string

	manager config.Manager
}

// NewRootCommand builds the command tree. Each call returns an independent
// tree, which keeps tests free of shared flag state.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "treepeek",
		Short: "Summarize large JSON and YAML documents within a size budget",
		Long: `treepeek prints the most informative summary of a JSON or YAML document that
fits within a character (or token) budget. Deep levels collapse into markers
such as {… 3 keys omitted}, long arrays keep their first entries and long
strings are cut, so the overall shape stays visible.`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetGlobalLogger(g.logger(cmd))

			if err := config.LoadDotEnv(g.envFiles()...); err != nil {
				return err
			}
			manager, err := config.NewConfigManagerFromFile(g.configPath)
			if err != nil {
				return err
			}
			g.manager = manager
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "verbose output (debug level)")
	cmd.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "quiet output (errors only)")
	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", fmt.Sprintf("config file (default %s)", config.DefaultConfigPath))
	cmd.PersistentFlags().StringVar(&g.envFile, "env-file", "", "load environment variables from this file (default .env)")

	cmd.AddCommand(
		newSummarizeCommand(func() config.Manager { return g.manager }),
		newVersionCommand(),
	)
	return cmd
}

// logger picks the global logger from the flags. TREEPEEK_DEBUG_FILE sends
// logs to a file instead of stderr.
func (g *globalFlags) logger(cmd *cobra.Command) logging.Logger {
	if os.Getenv(logging.EnvDebugFile) != "" {
		return logging.NewFileLoggerFromEnv("treepeek-debug.log")
	}

	level := slog.LevelInfo
	switch {
	case g.quiet:
		level = slog.LevelError
	case g.verbose:
		level = slog.LevelDebug
	}
	return logging.NewLogger(logging.Config{
		Level:  level,
		Format: logging.FormatText,
		Output: cmd.ErrOrStderr(),
	})
}

func (g *globalFlags) envFiles() []string {
	if g.envFile == "" {
		return nil
	}
	return []string{g.envFile}
}
