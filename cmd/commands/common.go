package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackarck/werename/internal/cli"
	"github.com/blackarck/werename/pkg/config"
	"github.com/blackarck/werename/pkg/rename"
)

func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func settingsPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultPath()
}

// loadSettings reads the settings file and lays the flags the user set
// on top of it.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	path, err := settingsPath()
	if err != nil {
		return nil, err
	}
	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("all") && flags.Changed("no-hidden") {
		return nil, fmt.Errorf("--all and --no-hidden cannot be used together")
	}
	if flags.Changed("all") {
		settings.UI.ShowHidden = showHidden
	}
	if flags.Changed("no-hidden") {
		settings.UI.ShowHidden = !noHidden
	}
	if flags.Changed("sort") {
		settings.UI.Sort = sortMode
	}
	if flags.Changed("strict") {
		settings.Rename.Strict = strictMode
	}
	if flags.Changed("check") {
		settings.Rename.Check = checkNames
	}
	if flags.Changed("output") {
		settings.Output.Format = outputFlag
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// loadPlan lists dir the way settings ask for.
func loadPlan(dir string, settings *config.Settings) (*rename.Plan, error) {
	sort, err := rename.ParseSortMode(settings.UI.Sort)
	if err != nil {
		return nil, err
	}
	items, err := rename.ListDirectory(dir, rename.ListOptions{
		ShowHidden: settings.UI.ShowHidden,
		Sort:       sort,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	return rename.Build(dir, items), nil
}

func writeReport(cmd *cobra.Command, rep *rename.Report, settings *config.Settings) error {
	return cli.WriteReport(cmd.OutOrStdout(), settings.Output.Format, rep)
}

// previewChanges prints the pending renames and, when enabled, the
// advisory issues. It returns the number of changed entries.
func previewChanges(cmd *cobra.Command, plan *rename.Plan, settings *config.Settings) int {
	n := cli.WriteChanges(cmd.OutOrStdout(), plan)
	if settings.Rename.Check {
		cli.WriteIssues(cmd.ErrOrStderr(), plan.Check(nil))
	}
	return n
}
