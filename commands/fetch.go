package commands

import (
	"github.com/spf13/cobra"

	"github.com/rhpds/showroom-tool/output"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [repo-url]",
	Short: "Fetch a lab and report its structure",
	Long: `Fetches the lab and prints its structure without calling any model:
site title, modules in navigation order with size metrics, orphan
pages, and cache diagnostics.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	addSourceFlags(fetchCmd)
	addOutputFlag(fetchCmd)
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	location, err := resolveLocation(args)
	if err != nil {
		return err
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(settings.Output.Format)
	if err != nil {
		return err
	}
	renderer := output.NewRenderer(format)

	lab, report, err := newFetcher(settings).Fetch(cmd.Context(), location, sourceRef)
	if err != nil {
		return err
	}

	return renderer.FetchReport(cmd.OutOrStdout(), lab, report)
}
