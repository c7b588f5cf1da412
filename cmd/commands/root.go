package commands

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/blackarck/werename/pkg/config"
	"github.com/blackarck/werename/pkg/gui"
	"github.com/blackarck/werename/pkg/rename"
	"github.com/blackarck/werename/pkg/tui"
)

// Flags shared by every command
var (
	configPath string
	showHidden bool
	noHidden   bool
	sortMode   string
	strictMode bool
	checkNames bool
	outputFlag string
	rootHost   string
)

// NewRootCommand creates the werename command tree.
func NewRootCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "werename [dir]",
		Short: "Rename the files of a directory by editing their names as text",
		Long: `werename lists a directory and lets you edit the names as a block of
text, one name per line. Closing the editor with pending changes asks
whether to rename: yes renames and exits, no exits without renaming,
cancel goes back to editing.

The interactive host is the terminal UI unless ui.host in the settings
file, or --host, says gui.

Examples:
  # Edit the names in the current directory
  werename

  # Edit a directory in the desktop window
  werename --host gui ~/Pictures/trip

  # Rename from a prepared names file
  werename list > names.txt && $EDITOR names.txt && werename apply --from names.txt`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			host := settings.UI.Host
			if cmd.Flags().Changed("host") {
				host = rootHost
			}
			return runInteractive(cmd, dirArg(args), host, settings)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Settings file (default is werename/config.yaml in the user config directory)")
	pf.BoolVarP(&showHidden, "all", "a", false, "List hidden entries even if ui.show_hidden is false")
	pf.BoolVar(&noHidden, "no-hidden", false, "Leave out hidden entries even if ui.show_hidden is true (the default)")
	pf.StringVar(&sortMode, "sort", "", "Listing order: none, name or natural")
	pf.BoolVar(&strictMode, "strict", false, "Rename through temporary names so swaps succeed and collisions fail up front")
	pf.BoolVar(&checkNames, "check", true, "Warn about invalid names and collisions before renaming")
	pf.StringVarP(&outputFlag, "output", "o", "", "Report format: text, json or yaml")

	cmd.Flags().StringVar(&rootHost, "host", "", "Interactive host: tui or gui")

	cmd.AddCommand(
		NewTUICommand(),
		NewGUICommand(),
		NewEditCommand(),
		NewListCommand(),
		NewApplyCommand(),
		NewConfigCommand(),
		NewVersionCommand(version),
	)
	return cmd
}

// NewTUICommand creates the tui command
func NewTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [dir]",
		Short: "Edit names in the terminal user interface",
		Long: `Open the two-pane terminal editor: original names on the left, new
names on the right. Tab switches to a read-only review of the changed
names, ctrl+y copies the new names, esc closes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			return runInteractive(cmd, dirArg(args), "tui", settings)
		},
	}
}

// NewGUICommand creates the gui command
func NewGUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gui [dir]",
		Short: "Edit names in a desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			return runInteractive(cmd, dirArg(args), "gui", settings)
		},
	}
}

func runInteractive(cmd *cobra.Command, dir, host string, settings *config.Settings) error {
	plan, err := loadPlan(dir, settings)
	if err != nil {
		return err
	}

	// the UI owns the screen until it exits
	var logBuf bytes.Buffer
	session := rename.NewSession(plan, log.New(&logBuf, "", 0))
	session.Strict = settings.Rename.Strict

	switch host {
	case "gui":
		err = gui.Run(session, gui.Options{Dir: dir, Check: settings.Rename.Check})
	case "tui":
		err = tui.Run(session, tui.Options{Dir: dir, Check: settings.Rename.Check})
	default:
		return fmt.Errorf("unknown host %q, want tui or gui", host)
	}
	if _, cerr := io.Copy(cmd.ErrOrStderr(), &logBuf); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	return finishReport(cmd, session.Report(), settings)
}

// finishReport prints the summary of a committed session and turns
// per-entry failures into the command's error.
func finishReport(cmd *cobra.Command, rep *rename.Report, settings *config.Settings) error {
	if rep == nil {
		return nil
	}
	if settings.Output.Format == "text" {
		fmt.Fprintln(cmd.OutOrStdout(), rep.Summary())
	} else if err := writeReport(cmd, rep, settings); err != nil {
		return err
	}
	if n := rep.Failed(); n > 0 {
		return fmt.Errorf("%d of %d renames failed", n, n+rep.Renamed())
	}
	return nil
}
