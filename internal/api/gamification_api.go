package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/plaisir-app/plaisir/internal/domain"
)

// ─── Gamification Read Surface ──────────────────────────────────────────────

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	level, err := s.rewards.CurrentLevel()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	toNext, err := s.rewards.XPToNextLevel()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	progress, err := s.rewards.ProgressPct()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"level":            level.Level,
		"xp":               level.CurrentXP,
		"xp_to_next_level": toNext,
		"progress_pct":     progress,
	})
}

func (s *Server) handleGamificationSummary(w http.ResponseWriter, r *http.Request) {
	level, err := s.rewards.CurrentLevel()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	earned, err := s.rewards.Metric(domain.MetricPlaisirEarned)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"level":               level.Level,
		"xp":                  level.CurrentXP,
		domain.MetricPlaisirEarned: earned,
	})
}

func (s *Server) handleNudges(w http.ResponseWriter, r *http.Request) {
	nudges, err := s.nudges.Pending(20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"nudges": nudges})
}

func (s *Server) handleNudgeShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "nudge id must be an integer")
		return
	}

	if err := s.nudges.MarkShown(id); err != nil {
		if errors.Is(err, domain.ErrNudgeNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"shown": true})
}
