// Package cmd wires the CLI: flag handling, config, container detection,
// and either the interactive TUI or a one-shot snapshot render.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/oakwood-commons/h5x/internal/provider"
	"github.com/oakwood-commons/h5x/internal/session"
	"github.com/oakwood-commons/h5x/internal/ui"
	"github.com/oakwood-commons/h5x/pkg/logger"
	"github.com/oakwood-commons/h5x/pkg/settings"
)

var (
	debug        bool
	noColor      bool
	providerFlag string
	configFile   string
	snapshot     bool
	snapshotPath string

	rootCtx = context.Background()
)

var rootCmd = &cobra.Command{
	Use:     settings.CliBinaryName + " <file>",
	Short:   "Browse HDF5 containers without loading them into memory",
	Long: "h5x opens an HDF5 container and lets you walk its groups, datasets\n" +
		"and attributes. All binary decoding is delegated to an external\n" +
		"provider process; h5x itself only navigates.",
	Example: "\n  h5x measurements.h5\n  h5x measurements.h5 --snapshot --path /g1\n  h5x measurements.h5 --provider 'python3 h5parse.py'\n",
	Args:    cobra.ExactArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		var level int8 = 0
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, logger.CommandKey, cmd.Name())
		rootCtx = logger.WithLogger(context.Background(), lgr)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		container := args[0]

		cfg, err := loadConfig(resolveConfigPath(configFile))
		if err != nil {
			return err
		}
		run := buildRunSettings(cmd.Flags(), cfg, container)

		if err := detectContainer(container); err != nil {
			return err
		}

		lgr := logger.FromContext(rootCtx)
		rootCtx = logger.WithLogger(rootCtx,
			logger.WithValues(lgr, logger.ContainerKey, container))

		client := provider.NewExecClient(container, run.Provider)
		ctrl := session.NewController(client)

		if snapshot {
			return renderSnapshot(cmd, ctrl, snapshotPath)
		}

		title := ui.ViewTitle(filepath.Base(container), nil)
		return ui.Run(rootCtx, title, ctrl, run.NoColor)
	},
}

// buildRunSettings merges flag, config, and default values. Flags win
// when explicitly set.
func buildRunSettings(flags *pflag.FlagSet, cfg Config, container string) settings.Run {
	run := settings.Run{
		Container: container,
		Provider:  cfg.Provider,
		NoColor:   noColor || cfg.NoColor,
	}
	if flags.Changed("provider") || len(run.Provider) == 0 {
		if fields := strings.Fields(providerFlag); len(fields) > 0 {
			run.Provider = fields
		}
	}
	if debug {
		run.MinLogLevel = -1
	}
	return run
}

// renderSnapshot prints one listing non-interactively: the navigation
// path is walked with the same controller the TUI uses, so snapshot
// output and interactive output cannot drift apart.
func renderSnapshot(cmd *cobra.Command, ctrl *session.Controller, path string) error {
	view, err := ctrl.Open(rootCtx)
	if err != nil {
		return err
	}
	if p := strings.TrimSpace(path); p != "" && p != "/" {
		res, err := ctrl.Jump(rootCtx, p)
		if err != nil {
			return err
		}
		switch {
		case res == nil:
			return fmt.Errorf("%s: no such field", p)
		case res.Leaf != nil:
			fmt.Fprintf(cmd.OutOrStdout(), "dtype: %s    shape: %s\n%s\n",
				res.Leaf.Dtype, res.Leaf.Shape, res.Leaf.Data)
			return nil
		default:
			view = res.View
		}
	}
	out := view.Listing.Text()
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		// Piped consumers get the bare listing without a cursor marker.
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), markCursorLine(view))
	return nil
}

// markCursorLine prefixes the cursor row with "> " so an interactive
// snapshot shows where the session would start.
func markCursorLine(view *session.View) string {
	cursorLine := -1
	if row, ok := view.Listing.RowAt(view.Cursor); ok {
		cursorLine = row.Line
	}
	lines := make([]string, len(view.Listing.Lines))
	for i, line := range view.Listing.Lines {
		if i == cursorLine {
			lines[i] = "> " + line
		} else {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
	},
}

func cliVersionString() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)",
		settings.CliBinaryName,
		settings.VersionInformation.BuildVersion,
		settings.VersionInformation.Commit,
		settings.VersionInformation.BuildTime)
}

func init() {
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.Flags().StringVar(&providerFlag, "provider", strings.Join(provider.DefaultCommand, " "),
		"provider command used to decode the container")
	rootCmd.Flags().StringVar(&configFile, "config-file", "", "path to a YAML config file")
	rootCmd.Flags().BoolVar(&snapshot, "snapshot", false, "render one listing to stdout and exit")
	rootCmd.Flags().StringVar(&snapshotPath, "path", "/", "path to render with --snapshot")

	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(versionCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
