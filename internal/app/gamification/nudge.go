package gamification

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/plaisir-app/plaisir/internal/domain"
	"github.com/plaisir-app/plaisir/internal/infra/sqlite"
)

// NudgeService queues coaching nudges for the app to display, under a
// restraint policy: a hard daily cap and quiet hours. Suppressed nudges
// are dropped silently, never deferred.
type NudgeService struct {
	db     *sqlite.DB
	policy domain.NudgePolicy
	now    func() time.Time
}

// NewNudgeService creates a nudge service with the default policy.
func NewNudgeService(db *sqlite.DB) *NudgeService {
	return &NudgeService{db: db, policy: domain.DefaultNudgePolicy(), now: time.Now}
}

// NewNudgeServiceWithPolicy creates a nudge service with a custom policy.
func NewNudgeServiceWithPolicy(db *sqlite.DB, policy domain.NudgePolicy) *NudgeService {
	return &NudgeService{db: db, policy: policy, now: time.Now}
}

// SetClock overrides the nudge service's notion of "now". Tests only.
func (n *NudgeService) SetClock(now func() time.Time) { n.now = now }

// Create queues a nudge if the policy allows it. Returns the nudge ID,
// zero when suppressed.
func (n *NudgeService) Create(nudge domain.Nudge) (int64, error) {
	at := n.now()

	startOfDay := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	todayCount, err := n.db.NudgeCountSince(startOfDay)
	if err != nil {
		return 0, fmt.Errorf("count today: %w", err)
	}
	if todayCount >= n.policy.MaxPerDay {
		return 0, nil // suppressed: daily cap
	}
	if n.isQuietHour(at) {
		return 0, nil // suppressed: quiet hours
	}

	nudge.CreatedAt = at
	nudge.Shown = false
	id, err := n.db.InsertNudge(nudge)
	if err != nil {
		return 0, fmt.Errorf("insert nudge: %w", err)
	}
	return id, nil
}

// Pending returns unshown nudges, newest first.
func (n *NudgeService) Pending(limit int) ([]domain.Nudge, error) {
	return n.db.ListPendingNudges(limit)
}

// MarkShown acknowledges a nudge.
func (n *NudgeService) MarkShown(id int64) error {
	return n.db.MarkNudgeShown(id)
}

// isQuietHour reports whether t falls inside the policy's quiet window.
// The window wraps midnight ("22:00" to "08:00").
func (n *NudgeService) isQuietHour(t time.Time) bool {
	start, okStart := parseClock(n.policy.QuietStart)
	end, okEnd := parseClock(n.policy.QuietEnd)
	if !okStart || !okEnd {
		return false
	}

	minutes := t.Hour()*60 + t.Minute()
	if start <= end {
		return minutes >= start && minutes < end
	}
	return minutes >= start || minutes < end
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return hours*60 + mins, true
}
