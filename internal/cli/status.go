package cli

import (
	"fmt"

	"github.com/plaisir-app/plaisir/internal/daemon"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current state of the reward bank",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	state := d.Bank.Snapshot()

	fmt.Printf("Week start:       %s\n", orDash(state.WeekStartDate))
	fmt.Printf("Day of cycle:     %d/7\n", d.Bank.CurrentDayIndex()+1)
	fmt.Printf("Days logged:      %d\n", len(state.DailyBalances))
	fmt.Printf("Total balance:    %d kcal\n", d.Bank.TotalBalance())
	fmt.Printf("Pleasure budget:  %d kcal\n", state.CheatMealBudget)
	fmt.Printf("Meals remaining:  %d\n", d.Bank.RemainingPlaisirMeals())
	fmt.Printf("Last redeemed:    %s\n", orDash(state.LastCheatMealDate))
	if bonus := d.Bank.ActiveBonus(); bonus > 0 {
		fmt.Printf("Active bonus:     %d kcal\n", bonus)
	}
	fmt.Println()
	fmt.Println(d.Bank.Suggestion())

	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
