// Package gamification implements the reward system the bank notifies on
// every redemption: XP with an exponential level curve, named metric
// counters, and coaching nudges. It owns its own state; the bank never
// waits on it and never rolls anything back when it fails.
package gamification

import (
	"math"
	"strconv"

	"github.com/plaisir-app/plaisir/internal/domain"
)

// MaxLevel caps the level curve. A mobile coaching app does not need an
// open-ended ladder.
const MaxLevel = 50

// XPForLevel returns the cumulative XP required to reach a given level.
// Exponential curve: 100 * 1.25^(level-1) for level >= 2.
func XPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	return int64(100 * math.Pow(1.25, float64(level-1)))
}

// LevelForXP returns the level for a given XP amount.
func LevelForXP(xp int64) int {
	level := 1
	for level < MaxLevel {
		if xp < XPForLevel(level+1) {
			return level
		}
		level++
	}
	return MaxLevel
}

// CurrentLevel returns the user's current level and XP.
func (s *Service) CurrentLevel() (domain.UserLevel, error) {
	var ul domain.UserLevel

	xpStr, err := s.db.GetEngagement("xp")
	if err != nil {
		return ul, err
	}
	if xpStr != "" {
		ul.CurrentXP, _ = strconv.ParseInt(xpStr, 10, 64)
	}

	ul.Level = LevelForXP(ul.CurrentXP)
	return ul, nil
}

// XPToNextLevel returns XP remaining until the next level, zero at the cap.
func (s *Service) XPToNextLevel() (int64, error) {
	current, err := s.CurrentLevel()
	if err != nil {
		return 0, err
	}
	if current.Level >= MaxLevel {
		return 0, nil
	}
	remaining := XPForLevel(current.Level+1) - current.CurrentXP
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// ProgressPct returns progress toward the next level (0.0-100.0).
func (s *Service) ProgressPct() (float64, error) {
	current, err := s.CurrentLevel()
	if err != nil {
		return 0, err
	}
	if current.Level >= MaxLevel {
		return 100.0, nil
	}
	floor := XPForLevel(current.Level)
	ceil := XPForLevel(current.Level + 1)
	span := ceil - floor
	if span <= 0 {
		return 100.0, nil
	}
	progress := float64(current.CurrentXP-floor) / float64(span) * 100.0
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return progress, nil
}
