package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/plaisir-app/plaisir/internal/daemon"
	"github.com/spf13/cobra"
)

// timeNow is package-level so tests can substitute a fixed clock.
var timeNow = time.Now

func init() {
	rootCmd.AddCommand(redeemCmd)
}

var redeemCmd = &cobra.Command{
	Use:   "redeem CALORIES",
	Short: "Spend banked calories on a pleasure meal",
	Args:  cobra.ExactArgs(1),
	RunE:  runRedeem,
}

func runRedeem(cmd *cobra.Command, args []string) error {
	calories, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid calorie amount %q", args[0])
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	d.Bank.EnsureWeekInitialized()
	if d.Bank.Redeem(calories) {
		fmt.Printf("Enjoy! %d kcal redeemed. %d kcal left in the bank.\n",
			calories, d.Bank.Snapshot().CheatMealBudget)
	} else {
		fmt.Println("Cannot redeem that pleasure meal right now.")
		fmt.Println(d.Bank.Suggestion())
	}

	return nil
}
