package cli

import (
	"fmt"

	"github.com/plaisir-app/plaisir/internal/daemon"
	"github.com/spf13/cobra"
)

func init() {
	bonusCmd.AddCommand(bonusActivateCmd)
	bonusCmd.AddCommand(bonusDeactivateCmd)
	rootCmd.AddCommand(bonusCmd)
}

var bonusCmd = &cobra.Command{
	Use:   "bonus",
	Short: "Manage the automatic pleasure meal bonus",
}

var bonusActivateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Activate a pleasure meal bonus for today",
	RunE:  runBonusActivate,
}

var bonusDeactivateCmd = &cobra.Command{
	Use:   "deactivate",
	Short: "Cancel today's pleasure meal bonus and refund it",
	RunE:  runBonusDeactivate,
}

func runBonusActivate(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	d.Bank.EnsureWeekInitialized()
	result := d.Bank.ActivateBonus()
	if result.Success {
		fmt.Printf("Bonus activated: %d kcal added to today's allowance.\n", result.Bonus)
	} else {
		fmt.Println(result.Message)
	}

	return nil
}

func runBonusDeactivate(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if d.Bank.DeactivateBonus() {
		fmt.Printf("Bonus cancelled. %d kcal back in the bank.\n", d.Bank.Snapshot().CheatMealBudget)
	} else {
		fmt.Println("No active bonus to cancel today.")
	}

	return nil
}
