package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:     "schedule FILE...",
	Aliases: []string{"sched"},
	Short:   "Print the resolved schedule of each document",
	Long: `Load each document in order and print every event on its timeline,
sorted, with the spans assigned to duration-only and delayed events.
Documents that share a name and axis are loaded onto the same timeline.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	qs, err := load(args...)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, q := range qs {
		r := q.Report()
		fmt.Fprintf(w, "%s (%s, %s, %s)\n", r.Name, r.Mode, r.Policy, r.Axis)
		printPlacements(w, r.Events)
		if r.Dropped > 0 {
			fmt.Fprintf(w, "  dropped: %d\n", r.Dropped)
		}
	}
	return nil
}
