package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/blackarck/werename/internal/cli"
	"github.com/blackarck/werename/pkg/rename"
)

// ListResult represents the output structure for list command
type ListResult struct {
	Dir   string     `json:"dir" yaml:"dir"`
	Items []ListItem `json:"items" yaml:"items"`
	Count int        `json:"count" yaml:"count"`
}

// ListItem represents a single entry in the list
type ListItem struct {
	Name string      `json:"name" yaml:"name"`
	Kind rename.Kind `json:"kind" yaml:"kind"`
}

var (
	listLong bool
	listCopy bool
)

// copyToClipboard is replaced in tests
var copyToClipboard = clipboard.WriteAll

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "Print the names of a directory, one per line",
		Long: `Print the names of a directory in the order the editor shows them.
The output is a valid starting point for 'werename apply --from'.

Examples:
  # Names of the current directory
  werename list

  # Natural order, with kinds
  werename list --sort natural --long

  # Copy the names to the clipboard
  werename list --copy

  # JSON output
  werename list -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runList,
	}

	cmd.Flags().BoolVarP(&listLong, "long", "l", false, "Show the kind of each entry")
	cmd.Flags().BoolVar(&listCopy, "copy", false, "Copy the names to the clipboard")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	dir := dirArg(args)
	plan, err := loadPlan(dir, settings)
	if err != nil {
		return err
	}

	if listCopy {
		if err := copyToClipboard(plan.OldText()); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Copied %d names to the clipboard\n", len(plan.Entries))
		return nil
	}

	result := ListResult{Dir: dir, Items: make([]ListItem, len(plan.Entries))}
	for i, e := range plan.Entries {
		result.Items[i] = ListItem{Name: e.OldName(), Kind: e.Kind()}
	}
	result.Count = len(result.Items)

	switch settings.Output.Format {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), settings.Output.Format, result)
	default:
		return outputListText(cmd, result)
	}
}

func outputListText(cmd *cobra.Command, result ListResult) error {
	if !listLong {
		for _, it := range result.Items {
			fmt.Fprintln(cmd.OutOrStdout(), it.Name)
		}
		return nil
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	for _, it := range result.Items {
		table.Row(it.Kind.String(), it.Name)
	}
	table.Flush()
	return nil
}
