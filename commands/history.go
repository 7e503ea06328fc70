package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rhpds/showroom-tool/storage"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past analysis runs",
	Long: `Lists runs recorded in the workspace history index, newest first:
when they ran, what they analyzed, which backend answered, and where
the result was saved.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "maximum number of runs to list (0 means all)")
	addWorkspaceFlag(historyCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	hist, err := storage.OpenHistory(settings.Output.Workspace)
	if err != nil {
		return err
	}
	defer hist.Close()

	runs, err := hist.List(historyLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for i, run := range runs {
		cmd.Printf("  [%d] %s  %-11s %s (%s)\n",
			i+1, run.CreatedAt.Local().Format("2006-01-02 15:04"), run.Kind, run.LabName, run.Revision)
		cmd.Printf("      %s/%s in %s\n", run.Provider, run.Model, run.Duration.Round(time.Millisecond))
		if run.Path != "" {
			cmd.Printf("      saved: %s\n", run.Path)
		}
		cmd.Println()
	}
	return nil
}
