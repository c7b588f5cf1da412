package commands

import (
	"bufio"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/blackarck/werename/internal/cli"
	"github.com/blackarck/werename/pkg/rename"
)

// NewEditCommand creates the edit command
func NewEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [dir]",
		Short: "Edit names in your $EDITOR",
		Long: `Write the names of a directory to a temporary file, one per line, and
open it in your editor. After the editor exits the pending renames are
listed and you are asked whether to rename them. Answering cancel opens
the editor again with your edits.

The editor is editor.command from the settings file, then $EDITOR,
then vi.

Examples:
  # Edit the names in the current directory
  werename edit

  # Edit with a specific editor
  EDITOR=nano werename edit ~/Music`,
		Args: cobra.MaximumNArgs(1),
		RunE: runEdit,
	}
	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	dir := dirArg(args)
	plan, err := loadPlan(dir, settings)
	if err != nil {
		return err
	}

	session := rename.NewSession(plan, log.New(cmd.ErrOrStderr(), "", 0))
	session.Strict = settings.Rename.Strict
	launcher := cli.NewEditorLauncher(settings.Editor.Command)
	in := bufio.NewReader(cmd.InOrStdin())

	text := plan.NewText() + "\n"
	for !session.Done() {
		edited, err := launcher.EditText("werename-*.txt", text)
		if err != nil {
			return err
		}
		text = edited
		if err := session.Edit(text); err != nil {
			return err
		}

		if !session.NeedsConfirm(text) {
			fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
			return session.Discard()
		}
		previewChanges(cmd, plan, settings)

		d, err := cli.Confirm(in, cmd.OutOrStdout(), "Rename?")
		if err != nil {
			return err
		}
		if _, err := session.Resolve(d, text); err != nil {
			return err
		}
	}
	return finishReport(cmd, session.Report(), settings)
}
