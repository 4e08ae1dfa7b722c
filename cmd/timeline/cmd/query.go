package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var atCmd = &cobra.Command{
	Use:   "at FILE TIME",
	Short: "List the active events running at a point in time",
	Args:  cobra.ExactArgs(2),
	RunE:  runAt,
}

var betweenCmd = &cobra.Command{
	Use:   "between FILE START END",
	Short: "List the active events overlapping a range",
	Long: `List the active events that share at least one point with the
inclusive range from START to END. START may not be after END.`,
	Args: cobra.ExactArgs(3),
	RunE: runBetween,
}

var sweepCmd = &cobra.Command{
	Use:   "sweep FILE",
	Short: "Remove inactive events and report what was removed",
	Args:  cobra.ExactArgs(1),
	RunE:  runSweep,
}

func init() {
	rootCmd.AddCommand(atCmd)
	rootCmd.AddCommand(betweenCmd)
	rootCmd.AddCommand(sweepCmd)
}

func runAt(cmd *cobra.Command, args []string) error {
	qs, err := load(args[0])
	if err != nil {
		return err
	}
	res, err := qs[0].At(args[1])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s at %s\n", qs[0].Report().Name, args[1])
	printPlacements(w, res)
	return nil
}

func runBetween(cmd *cobra.Command, args []string) error {
	qs, err := load(args[0])
	if err != nil {
		return err
	}
	res, err := qs[0].Between(args[1], args[2])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s between %s and %s\n",
		qs[0].Report().Name, args[1], args[2],
	)
	printPlacements(w, res)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	qs, err := load(args[0])
	if err != nil {
		return err
	}
	removed := qs[0].Sweep()

	w := cmd.OutOrStdout()
	r := qs[0].Report()
	fmt.Fprintf(w, "%s: removed %d inactive, %d remaining\n",
		r.Name, len(removed), len(r.Events),
	)
	printPlacements(w, removed)
	return nil
}
