// Package league derives tiers from seasonal points, serves the ranking
// board and runs the monthly season rollover.
package league

import (
	"goodtime/internal/settings"
	"goodtime/internal/user"
)

// TierFor maps seasonal points onto a tier using the configured cutoffs.
// Points below the silver cutoff are Bronze.
func TierFor(points int, t settings.Thresholds) user.Tier {
	switch {
	case points >= t.Diamond:
		return user.TierDiamond
	case points >= t.Platinum:
		return user.TierPlatinum
	case points >= t.Gold:
		return user.TierGold
	case points >= t.Silver:
		return user.TierSilver
	default:
		return user.TierBronze
	}
}

// AddPoints credits seasonal points and keeps the tier consistent with them.
// Tiers only move up during a season; the reset back to Bronze happens at
// rollover.
func AddPoints(u *user.User, points int, t settings.Thresholds) {
	if points <= 0 {
		return
	}
	u.LeaguePoints += points
	u.Tier = TierFor(u.LeaguePoints, t)
}
