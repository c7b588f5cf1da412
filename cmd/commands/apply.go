package commands

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/blackarck/werename/internal/cli"
	"github.com/blackarck/werename/pkg/rename"
)

var (
	applyFrom     string
	applyYes      bool
	applyDryRun   bool
	applyProgress bool
)

// NewApplyCommand creates the apply command
func NewApplyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [dir] --from FILE",
		Short: "Rename from a file of new names",
		Long: `Read new names from a file, one per line, and pair them with the
directory listing by position: line 1 renames the first listed entry,
line 2 the second, and so on. Missing lines leave their entries
unchanged and extra lines are ignored.

Use 'werename list' with the same --sort and --all flags to produce the
starting file. --from - reads the names from standard input.

Examples:
  # Review, confirm, rename
  werename apply --from names.txt

  # Only show what would change
  werename apply --from names.txt --dry-run

  # No prompt, with a progress bar, swaps allowed
  werename apply --from names.txt --yes --progress --strict`,
		Args: cobra.MaximumNArgs(1),
		RunE: runApply,
	}

	cmd.Flags().StringVarP(&applyFrom, "from", "f", "", "File with the new names, - for standard input")
	cmd.Flags().BoolVarP(&applyYes, "yes", "y", false, "Rename without asking")
	cmd.Flags().BoolVarP(&applyDryRun, "dry-run", "n", false, "Show the pending renames and stop")
	cmd.Flags().BoolVar(&applyProgress, "progress", false, "Show a progress bar while renaming")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

func runApply(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if applyFrom == "-" && !applyYes && !applyDryRun {
		return fmt.Errorf("--from - reads standard input, so it needs --yes or --dry-run")
	}
	text, err := readNames(cmd, applyFrom)
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
	if !session.NeedsConfirm(text) {
		fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
		return session.Discard()
	}
	n := previewChanges(cmd, plan, settings)
	if applyDryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Dry run: %d of %d entries would be renamed\n", n, len(plan.Entries))
		return session.Discard()
	}

	decision := rename.Yes
	if !applyYes {
		decision, err = cli.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Rename?")
		if err != nil {
			return err
		}
	}
	if decision == rename.Cancel {
		// nothing to go back to
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return session.Discard()
	}

	var bar *progressbar.ProgressBar
	if applyProgress && decision == rename.Yes {
		bar = progressbar.NewOptions(n,
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("Renaming"),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(cmd.ErrOrStderr()) }),
		)
		session.OnResult = func(res rename.Result) {
			if res.Outcome != rename.Unchanged {
				_ = bar.Add(1)
			}
		}
	}

	rep, err := session.Resolve(decision, text)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}
	if rep == nil {
		return nil
	}
	if err := writeReport(cmd, rep, settings); err != nil {
		return err
	}
	if n := rep.Failed(); n > 0 {
		return fmt.Errorf("%d of %d renames failed", n, n+rep.Renamed())
	}
	return nil
}

func readNames(cmd *cobra.Command, from string) (string, error) {
	var data []byte
	var err error
	if from == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(from)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read names: %w", err)
	}
	return cli.NormalizeNewlines(string(data)), nil
}
