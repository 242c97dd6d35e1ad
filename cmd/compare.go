package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"debt-planner/export"
)

var compareCmd = &cobra.Command{
	Use:   "compare <scenario-file>",
	Short: "Compare avalanche and snowball for a scenario file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().StringVarP(&flagExtra, "extra", "e", "", "Extra monthly payment on top of the minimums")
	compareCmd.Flags().IntVar(&flagCap, "cap", 0, "Maximum months to simulate (default from config)")
	compareCmd.Flags().StringVarP(&flagFormat, "format", "f", "table", "Output format: table or json")
	compareCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	input, err := scenarioInput(args[0])
	if err != nil {
		return err
	}

	planner, closeFn, err := newPlanner(ctx, false)
	if err != nil {
		return err
	}
	defer closeFn()

	cmp, err := planner.Compare(ctx, input)
	if err != nil {
		return err
	}

	w, err := output(cmd, flagOutput)
	if err != nil {
		return err
	}
	defer w.Close()

	switch flagFormat {
	case "json":
		return writeJSON(w, cmp)
	case "table":
		fmt.Fprintln(w)
		fmt.Fprint(w, export.ComparisonTable(cmp, cfg.Planner.Precision).Render())
		fmt.Fprintf(w, "\n  Recommended: %s\n", cmp.Recommended)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want table or json)", flagFormat)
	}
}
