package bank

// Quota tracking. Invariant, independent of everything else: the weekly
// count always equals the size of the date set, and both reset exactly at
// cycle rollover and nowhere else. All helpers assume the caller holds
// the lock.

// addPlaisirDate records a redemption date. Same-day redemptions do not
// grow the set, so the count never double-counts a date.
func (b *Bank) addPlaisirDate(date string) {
	if b.hasPlaisirDate(date) {
		b.syncPlaisirCount()
		return
	}
	b.state.PlaisirDatesThisWeek = append(b.state.PlaisirDatesThisWeek, date)
	b.syncPlaisirCount()
}

// removePlaisirDate drops a redemption date, used by the deactivation
// refund path.
func (b *Bank) removePlaisirDate(date string) {
	kept := b.state.PlaisirDatesThisWeek[:0]
	for _, d := range b.state.PlaisirDatesThisWeek {
		if d != date {
			kept = append(kept, d)
		}
	}
	b.state.PlaisirDatesThisWeek = kept
	b.syncPlaisirCount()
}

func (b *Bank) hasPlaisirDate(date string) bool {
	for _, d := range b.state.PlaisirDatesThisWeek {
		if d == date {
			return true
		}
	}
	return false
}

// syncPlaisirCount recomputes the count from the date set, never the
// other way around.
func (b *Bank) syncPlaisirCount() {
	b.state.WeeklyPlaisirCount = len(b.state.PlaisirDatesThisWeek)
}

// resetQuota clears the quota state. Only the weekly cycle calls this.
func (b *Bank) resetQuota() {
	b.state.PlaisirDatesThisWeek = nil
	b.state.WeeklyPlaisirCount = 0
}
