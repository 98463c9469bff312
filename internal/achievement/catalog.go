// Package achievement holds the fixed badge catalog and the evaluation
// pass that grants badges against a snapshot of a user's progress.
package achievement

import (
	"fmt"
	"time"

	"goodtime/internal/user"
)

// Completion describes the task completion that triggered an evaluation,
// when there was one. Login-driven evaluations leave it nil.
type Completion struct {
	CompletedAt time.Time
	ExpiresAt   time.Time
}

// Snapshot is everything a badge predicate may look at. It is assembled by
// the caller from the user aggregate and the task history so predicates
// stay pure.
type Snapshot struct {
	Level          int
	StreakDays     int
	Tier           user.Tier
	CompletedTasks int
	JustCompleted  *Completion
}

// Achievement is one badge definition. RewardXP is granted once, on unlock.
type Achievement struct {
	ID          string
	Name        string
	Description string
	RewardXP    int
	unlocked    func(Snapshot) bool
}

const closeCallWindow = 5 * time.Minute

func completedTasksAtLeast(n int) func(Snapshot) bool {
	return func(s Snapshot) bool { return s.CompletedTasks >= n }
}

func levelAtLeast(n int) func(Snapshot) bool {
	return func(s Snapshot) bool { return s.Level >= n }
}

func streakAtLeast(n int) func(Snapshot) bool {
	return func(s Snapshot) bool { return s.StreakDays >= n }
}

func tierAtLeast(t user.Tier) func(Snapshot) bool {
	return func(s Snapshot) bool { return s.Tier.AtLeast(t) }
}

func morningCompletion(s Snapshot) bool {
	if s.JustCompleted == nil {
		return false
	}
	h := s.JustCompleted.CompletedAt.Hour()
	return h >= 6 && h < 8
}

func closeCallCompletion(s Snapshot) bool {
	if s.JustCompleted == nil {
		return false
	}
	lead := s.JustCompleted.ExpiresAt.Sub(s.JustCompleted.CompletedAt)
	return lead >= 0 && lead <= closeCallWindow
}

func catalogEntries() []Achievement {
	return []Achievement{
		{ID: "JOIN_APP", Name: "Welcome aboard", Description: "Create an account", RewardXP: 0,
			unlocked: func(Snapshot) bool { return true }},
		{ID: "COMPLETE_1_TASK", Name: "First step", Description: "Complete your first task", RewardXP: 50,
			unlocked: completedTasksAtLeast(1)},
		{ID: "COMPLETE_10_TASKS", Name: "Getting things done", Description: "Complete 10 tasks", RewardXP: 150,
			unlocked: completedTasksAtLeast(10)},
		{ID: "COMPLETE_50_TASKS", Name: "Unstoppable", Description: "Complete 50 tasks", RewardXP: 300,
			unlocked: completedTasksAtLeast(50)},
		{ID: "REACH_LEVEL_5", Name: "Apprentice", Description: "Reach level 5", RewardXP: 100,
			unlocked: levelAtLeast(5)},
		{ID: "REACH_LEVEL_20", Name: "Veteran", Description: "Reach level 20", RewardXP: 200,
			unlocked: levelAtLeast(20)},
		{ID: "REACH_LEVEL_35", Name: "Living legend", Description: "Reach level 35", RewardXP: 500,
			unlocked: levelAtLeast(35)},
		{ID: "7_DAY_STREAK", Name: "One solid week", Description: "Keep a 7 day streak", RewardXP: 150,
			unlocked: streakAtLeast(7)},
		{ID: "30_DAY_STREAK", Name: "Iron habit", Description: "Keep a 30 day streak", RewardXP: 500,
			unlocked: streakAtLeast(30)},
		{ID: "MORNING_TASK", Name: "Early bird", Description: "Complete a task between 06:00 and 08:00", RewardXP: 50,
			unlocked: morningCompletion},
		{ID: "CLOSE_CALL", Name: "Close call", Description: "Complete a task within 5 minutes of its deadline", RewardXP: 50,
			unlocked: closeCallCompletion},
		// TODO: needs a ranking feed into the snapshot before it can unlock.
		{ID: "TOP_10_RANKING", Name: "Top of the league", Description: "Finish a day inside the top 10", RewardXP: 500,
			unlocked: func(Snapshot) bool { return false }},
		{ID: "REACH_GOLD", Name: "Gold league", Description: "Reach the Gold tier", RewardXP: 200,
			unlocked: tierAtLeast(user.TierGold)},
		{ID: "REACH_PLATINUM", Name: "Platinum league", Description: "Reach the Platinum tier", RewardXP: 350,
			unlocked: tierAtLeast(user.TierPlatinum)},
		{ID: "REACH_DIAMOND", Name: "Diamond league", Description: "Reach the Diamond tier", RewardXP: 500,
			unlocked: tierAtLeast(user.TierDiamond)},
	}
}

// Catalog is the immutable badge set shared by all users.
type Catalog struct {
	entries []Achievement
	byID    map[string]Achievement
}

func NewCatalog() *Catalog {
	entries := catalogEntries()
	byID := make(map[string]Achievement, len(entries))
	for _, a := range entries {
		if _, ok := byID[a.ID]; ok {
			panic(fmt.Sprintf("duplicate achievement id %q", a.ID))
		}
		byID[a.ID] = a
	}
	return &Catalog{entries: entries, byID: byID}
}

// All returns the catalog in definition order.
func (c *Catalog) All() []Achievement {
	return append([]Achievement(nil), c.entries...)
}

// Get looks a badge up by id.
func (c *Catalog) Get(achievementID string) (Achievement, bool) {
	a, ok := c.byID[achievementID]
	return a, ok
}

// Evaluate returns the badges the user has not unlocked yet whose predicate
// holds for the snapshot, in definition order.
func (c *Catalog) Evaluate(u *user.User, snap Snapshot) []Achievement {
	var granted []Achievement
	for _, a := range c.entries {
		if u.HasUnlock(a.ID) {
			continue
		}
		if a.unlocked(snap) {
			granted = append(granted, a)
		}
	}
	return granted
}

// Unlock records the granted badges on the user and returns the total
// reward xp. Badges already present are skipped, so a double evaluation of
// the same event cannot double-grant.
func Unlock(u *user.User, granted []Achievement, now time.Time) int {
	reward := 0
	for _, a := range granted {
		if u.AddUnlock(a.ID, now) {
			reward += a.RewardXP
		}
	}
	return reward
}
