package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PetroleumCyberneticsGroup/opm-parser/pkg/schedule"
)

var (
	reportGranularity string
	reportFrequency   int
	reportAnchor      int
)

var reportCmd = &cobra.Command{
	Use:   "report <deck>",
	Short: "Print the steps selected by the periodic report predicate",
	Long: `report lists the steps flagged by the periodic boundary predicate:
counting month (or year) boundary steps from the anchor as position 1,
every frequency-th boundary is a report step.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Flags override the configured report settings.
		if reportGranularity == "" {
			reportGranularity = cfg.Report.Granularity
		}
		if reportFrequency < 1 {
			reportFrequency = cfg.Report.Frequency
		}
		if reportAnchor < 0 {
			reportAnchor = cfg.Report.Anchor
		}

		granularity := schedule.Granularity(reportGranularity)
		if !granularity.IsValid() {
			return fmt.Errorf("granularity must be %q or %q, got %q",
				schedule.GranularityMonth, schedule.GranularityYear, reportGranularity)
		}

		tm, err := buildTimeMap(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		for step := 1; step <= tm.NumSteps(); step++ {
			if !tm.IsReportStep(step, granularity, reportAnchor, reportFrequency) {
				continue
			}
			at, err := tm.InstantAt(step)
			if err != nil {
				return err
			}
			fmt.Printf("%4d  %s\n", step, at)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportGranularity, "granularity", "g", "", "boundary granularity: month or year (default from config)")
	reportCmd.Flags().IntVarP(&reportFrequency, "frequency", "n", 0, "flag every n-th boundary (default from config)")
	reportCmd.Flags().IntVarP(&reportAnchor, "anchor", "a", -1, "step the periodic count is anchored at (default from config)")
	rootCmd.AddCommand(reportCmd)
}
