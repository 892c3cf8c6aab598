package api

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// ─── Read Surface ───────────────────────────────────────────────────────────

// bankSummary is the full read-only view the app renders from. All
// fields come from side-effect-free getters, safe on every render.
type bankSummary struct {
	Budget                   int    `json:"budget"`
	WeekStartDate            string `json:"week_start_date"`
	IsFirstTime              bool   `json:"is_first_time"`
	CurrentDayIndex          int    `json:"current_day_index"`
	DaysUntilNewWeek         int    `json:"days_until_new_week"`
	CanHavePlaisir           bool   `json:"can_have_plaisir"`
	MaxPlaisirPerMeal        int    `json:"max_plaisir_per_meal"`
	RequiresSplitConsumption bool   `json:"requires_split_consumption"`
	RemainingPlaisirMeals    int    `json:"remaining_plaisir_meals"`
	ActiveBonus              int    `json:"active_bonus"`
	BonusActiveToday         bool   `json:"bonus_active_today"`
	Suggestion               string `json:"suggestion"`
}

func (s *Server) handleBankSummary(w http.ResponseWriter, r *http.Request) {
	state := s.bank.Snapshot()
	writeJSON(w, http.StatusOK, bankSummary{
		Budget:                   s.bank.TotalBalance(),
		WeekStartDate:            state.WeekStartDate,
		IsFirstTime:              state.IsFirstTime,
		CurrentDayIndex:          s.bank.CurrentDayIndex(),
		DaysUntilNewWeek:         s.bank.DaysUntilNewWeek(),
		CanHavePlaisir:           s.bank.CanHavePlaisir(),
		MaxPlaisirPerMeal:        s.bank.MaxPlaisirPerMeal(),
		RequiresSplitConsumption: s.bank.RequiresSplitConsumption(),
		RemainingPlaisirMeals:    s.bank.RemainingPlaisirMeals(),
		ActiveBonus:              s.bank.ActiveBonus(),
		BonusActiveToday:         s.bank.IsBonusActiveToday(),
		Suggestion:               s.bank.Suggestion(),
	})
}

func (s *Server) handleSuggestion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"suggestion": s.bank.Suggestion(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	events, err := s.bank.History(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

// ─── Inbound Collaborator Contract ──────────────────────────────────────────

type recordBalanceRequest struct {
	Date             string `json:"date"`
	TargetCalories   int    `json:"target_calories"`
	ConsumedCalories int    `json:"consumed_calories"`
}

// handleRecordBalance is the meals collaborator endpoint: one call per
// logging update, idempotent per date.
func (s *Server) handleRecordBalance(w http.ResponseWriter, r *http.Request) {
	var req recordBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.bank.RecordDailyBalance(req.Date, req.TargetCalories, req.ConsumedCalories); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"budget": s.bank.TotalBalance(),
	})
}

// handleRefresh runs the idempotent rollover check — the app calls it on
// every foreground event.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var rolled bool
	if s.sched != nil {
		rolled = s.sched.RunRolloverNow()
	} else {
		rolled = s.bank.EnsureWeekInitialized()
	}
	writeJSON(w, http.StatusOK, map[string]bool{"rolled": rolled})
}

// ─── Mutations ──────────────────────────────────────────────────────────────

type redeemRequest struct {
	Calories int `json:"calories"`
}

type redeemResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) handleRedeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.bank.Redeem(req.Calories) {
		writeJSON(w, http.StatusOK, redeemResponse{
			Success: true,
			Message: "pleasure meal redeemed",
		})
		return
	}
	writeJSON(w, http.StatusOK, redeemResponse{
		Message: "redemption rejected",
	})
}

func (s *Server) handleActivateBonus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.bank.ActivateBonus())
}

func (s *Server) handleDeactivateBonus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{
		"deactivated": s.bank.DeactivateBonus(),
	})
}

func (s *Server) handleConfirmStart(w http.ResponseWriter, r *http.Request) {
	s.bank.ConfirmStartDay()
	writeJSON(w, http.StatusOK, map[string]bool{"is_first_time": false})
}
