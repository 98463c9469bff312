// Package progression holds the pure arithmetic of player progression:
// experience-to-level conversion and daily streak bookkeeping. Nothing here
// touches a store or a clock; callers pass state in and get state back,
// which keeps the rules trivially testable and the orchestration layer in
// charge of the single commit.
package progression

// RequiredXP returns the experience needed to go from level-1 to level.
// The curve is piecewise so early levels come fast and later ones demand
// real effort.
func RequiredXP(level int) int {
	switch {
	case level <= 15:
		return 40*level + 50
	case level <= 30:
		return 80*level - 200
	default:
		return 100*level - 500
	}
}

// ApplyXPGain adds gain to the current xp and consumes level-ups while the
// remainder covers the next level's requirement. Large rewards can jump
// several levels in one call. Gain is assumed non-negative; the result never
// carries xp at or above the next level's requirement.
func ApplyXPGain(level, xp, gain int) (newLevel, newXP int) {
	xp += gain
	for next := RequiredXP(level + 1); xp >= next; next = RequiredXP(level + 1) {
		xp -= next
		level++
	}
	return level, xp
}
