package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rhpds/showroom-tool/analysis"
	"github.com/rhpds/showroom-tool/output"
	"github.com/rhpds/showroom-tool/prompt"
)

var promptCmd = &cobra.Command{
	Use:   "prompt <kind> [repo-url]",
	Short: "Print the assembled prompt for an analysis kind",
	Long: `Assembles the exact prompt an analysis would send - base instructions,
per-field behavioral blocks, and the serialized lab - without calling
any model. What prints here is byte for byte what the model receives.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPrompt,
}

func init() {
	addSourceFlags(promptCmd)
	addOutputFlag(promptCmd)
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}

	location, err := resolveLocation(args[1:])
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

	lab, _, err := newFetcher(settings).Fetch(cmd.Context(), location, sourceRef)
	if err != nil {
		return err
	}

	bundle, err := analysis.Bundle(kind, lab, analysisOptions(cmd, settings, kind))
	if err != nil {
		return err
	}

	return printBundle(cmd, format, bundle)
}

// printBundle writes the assembled bundle as two labeled sections, or
// as one JSON object in json mode.
func printBundle(cmd *cobra.Command, format output.Format, bundle prompt.Bundle) error {
	switch format {
	case output.FormatJSON:
		data, err := json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal bundle: %w", err)
		}
		cmd.Println(string(data))
		return nil
	case output.FormatAdoc:
		return fmt.Errorf("adoc output does not apply to prompts")
	}

	cmd.Println("=== System Instructions ===")
	cmd.Println(bundle.System)
	cmd.Println()
	cmd.Println("=== User Content ===")
	cmd.Println(bundle.User)
	return nil
}
