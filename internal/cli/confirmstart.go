package cli

import (
	"fmt"

	"github.com/plaisir-app/plaisir/internal/daemon"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(confirmStartCmd)
}

var confirmStartCmd = &cobra.Command{
	Use:   "confirm-start",
	Short: "Confirm today as the start of your first tracking week",
	RunE:  runConfirmStart,
}

func runConfirmStart(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	d.Bank.EnsureWeekInitialized()
	if !d.Bank.IsFirstTime() {
		fmt.Printf("Week already started on %s.\n", d.Bank.Snapshot().WeekStartDate)
		return nil
	}

	d.Bank.ConfirmStartDay()
	fmt.Printf("Week confirmed. Day 1 of 7 starts today (%s).\n", d.Bank.Snapshot().WeekStartDate)

	return nil
}
