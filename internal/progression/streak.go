package progression

import "time"

// Streak is the consecutive-day completion counter. LastDate is the most
// recent calendar day credited to the streak; its zero value means no day
// has ever been credited.
type Streak struct {
	Count    int
	LastDate time.Time
}

// HasLastDate reports whether any day has been credited yet.
func (s Streak) HasLastDate() bool { return !s.LastDate.IsZero() }

// OnTaskCompleted credits today to the streak. A second completion on the
// same calendar day is a no-op. Callers must apply OnView first so a lapsed
// streak is zeroed before the new day is credited.
func (s Streak) OnTaskCompleted(today time.Time) Streak {
	day := civilDay(today)
	if s.HasLastDate() && !day.After(s.LastDate) {
		return s
	}
	return Streak{Count: s.Count + 1, LastDate: day}
}

// OnView zeroes the streak when a full calendar day has been skipped since
// the last credited day. LastDate is left untouched; OnTaskCompleted will
// advance it when the user completes something again.
func (s Streak) OnView(today time.Time) Streak {
	if !s.HasLastDate() {
		return s
	}
	if daysBetween(s.LastDate, civilDay(today)) > 1 {
		s.Count = 0
	}
	return s
}

// civilDay normalizes a timestamp to its calendar day. Streak rules compare
// days, never clock times.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
