package cli

import (
	"fmt"
	"strconv"

	"github.com/plaisir-app/plaisir/internal/daemon"
	"github.com/plaisir-app/plaisir/internal/domain"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(recordCmd)
}

var recordCmd = &cobra.Command{
	Use:   "record DATE TARGET CONSUMED",
	Short: "Record a daily calorie balance",
	Long: `Record the calories consumed against the target for a given day.
DATE is in YYYY-MM-DD form; use "today" for the current day.`,
	Args: cobra.ExactArgs(3),
	RunE: runRecord,
}

func runRecord(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	date := args[0]
	if date == "today" {
		date = domain.DayKeyOf(timeNow())
	}
	target, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid target calories %q", args[1])
	}
	consumed, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid consumed calories %q", args[2])
	}

	d.Bank.EnsureWeekInitialized()
	if err := d.Bank.RecordDailyBalance(date, target, consumed); err != nil {
		return err
	}

	fmt.Printf("Recorded %s: %d kcal consumed of %d target (balance %+d)\n",
		date, consumed, target, target-consumed)
	fmt.Printf("Pleasure budget: %d kcal\n", d.Bank.Snapshot().CheatMealBudget)

	return nil
}
