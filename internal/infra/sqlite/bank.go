package sqlite

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/plaisir-app/plaisir/internal/domain"
)

// Bank snapshot persistence. SaveBankState replaces the whole snapshot in
// one transaction; LoadBankState rebuilds it. Only the contract fields of
// the snapshot are stored — everything else the bank derives.

// Snapshot field keys in bank_state.
const (
	keySchemaVersion      = "schema_version"
	keyWeekStartDate      = "week_start_date"
	keyIsFirstTime        = "is_first_time"
	keyCheatMealBudget    = "cheat_meal_budget"
	keyLastCheatMealDate  = "last_cheat_meal_date"
	keyWeeklyPlaisirCount = "weekly_plaisir_count"
	keyPlaisirDates       = "plaisir_dates_this_week"
	keyActiveBonus        = "active_plaisir_bonus"
	keyActiveBonusDate    = "active_plaisir_date"
)

// SaveBankState writes the full snapshot atomically.
func (d *DB) SaveBankState(state domain.BankState) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM daily_balances`); err != nil {
		return fmt.Errorf("clear ledger: %w", err)
	}
	for _, day := range state.DailyBalances {
		_, err := tx.Exec(
			`INSERT INTO daily_balances (date, target_kcal, consumed_kcal, balance_kcal, is_cheat_day)
			 VALUES (?, ?, ?, ?, ?)`,
			day.Date, day.TargetCalories, day.ConsumedCalories, day.Balance, day.IsCheatDay,
		)
		if err != nil {
			return fmt.Errorf("insert balance %s: %w", day.Date, err)
		}
	}

	fields := map[string]string{
		keySchemaVersion:      strconv.Itoa(state.SchemaVersion),
		keyWeekStartDate:      state.WeekStartDate,
		keyIsFirstTime:        boolStr(state.IsFirstTime),
		keyCheatMealBudget:    strconv.Itoa(state.CheatMealBudget),
		keyLastCheatMealDate:  state.LastCheatMealDate,
		keyWeeklyPlaisirCount: strconv.Itoa(state.WeeklyPlaisirCount),
		keyPlaisirDates:       strings.Join(state.PlaisirDatesThisWeek, ","),
		keyActiveBonus:        strconv.Itoa(state.ActivePlaisirBonus),
		keyActiveBonusDate:    state.ActivePlaisirDate,
	}
	for key, value := range fields {
		_, err := tx.Exec(
			`INSERT INTO bank_state (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
			key, value,
		)
		if err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// LoadBankState rebuilds the snapshot. ok is false when no snapshot was
// ever written.
func (d *DB) LoadBankState() (domain.BankState, bool, error) {
	var state domain.BankState

	version, found, err := d.stateField(keySchemaVersion)
	if err != nil {
		return state, false, err
	}
	if !found {
		return state, false, nil
	}
	state.SchemaVersion, err = strconv.Atoi(version)
	if err != nil {
		return state, false, fmt.Errorf("schema version %q: %w", version, domain.ErrMalformedState)
	}

	read := func(key string) (string, error) {
		value, _, err := d.stateField(key)
		return value, err
	}
	readInt := func(key string) (int, error) {
		value, err := read(key)
		if err != nil || value == "" {
			return 0, err
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("%s=%q: %w", key, value, domain.ErrMalformedState)
		}
		return n, nil
	}

	if state.WeekStartDate, err = read(keyWeekStartDate); err != nil {
		return state, false, err
	}
	firstTime, err := read(keyIsFirstTime)
	if err != nil {
		return state, false, err
	}
	state.IsFirstTime = firstTime == "1"
	if state.CheatMealBudget, err = readInt(keyCheatMealBudget); err != nil {
		return state, false, err
	}
	if state.LastCheatMealDate, err = read(keyLastCheatMealDate); err != nil {
		return state, false, err
	}
	if state.WeeklyPlaisirCount, err = readInt(keyWeeklyPlaisirCount); err != nil {
		return state, false, err
	}
	dates, err := read(keyPlaisirDates)
	if err != nil {
		return state, false, err
	}
	if dates != "" {
		state.PlaisirDatesThisWeek = strings.Split(dates, ",")
	}
	if state.ActivePlaisirBonus, err = readInt(keyActiveBonus); err != nil {
		return state, false, err
	}
	if state.ActivePlaisirDate, err = read(keyActiveBonusDate); err != nil {
		return state, false, err
	}

	rows, err := d.db.Query(
		`SELECT date, target_kcal, consumed_kcal, balance_kcal, is_cheat_day
		 FROM daily_balances ORDER BY date DESC`,
	)
	if err != nil {
		return state, false, fmt.Errorf("load ledger: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var day domain.DailyBalance
		if err := rows.Scan(&day.Date, &day.TargetCalories, &day.ConsumedCalories,
			&day.Balance, &day.IsCheatDay); err != nil {
			return state, false, fmt.Errorf("scan balance: %w", err)
		}
		state.DailyBalances = append(state.DailyBalances, day)
	}
	if err := rows.Err(); err != nil {
		return state, false, err
	}

	return state, true, nil
}

func (d *DB) stateField(key string) (string, bool, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM bank_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

// ─── Bonus History ──────────────────────────────────────────────────────────

// AppendBonusEvent records a budget movement. Append-only: no update, no
// delete.
func (d *DB) AppendBonusEvent(event domain.BonusEvent) error {
	_, err := d.db.Exec(
		`INSERT INTO bonus_history (id, kind, date, calories, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		event.ID, string(event.Kind), event.Date, event.Calories, event.CreatedAt.Unix(),
	)
	return err
}

// ListBonusEvents returns recent history entries, newest first.
func (d *DB) ListBonusEvents(limit int) ([]domain.BonusEvent, error) {
	rows, err := d.db.Query(
		`SELECT id, kind, date, calories, created_at
		 FROM bonus_history ORDER BY created_at DESC, id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.BonusEvent
	for rows.Next() {
		var event domain.BonusEvent
		var createdAt int64
		if err := rows.Scan(&event.ID, &event.Kind, &event.Date,
			&event.Calories, &createdAt); err != nil {
			return nil, err
		}
		event.CreatedAt = time.Unix(createdAt, 0)
		events = append(events, event)
	}
	return events, rows.Err()
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
