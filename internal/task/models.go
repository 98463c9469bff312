// Package task implements the task lifecycle: creation with difficulty-based
// rewards, pending-set uniqueness, completion, cancellation and expiry.
// Tasks are one-way: Pending -> Completed, with cancellation only while
// pending.
package task

import (
	"strings"
	"time"

	id "goodtime/pkg/domain"
	dErrors "goodtime/pkg/domain-errors"
)

// Difficulty selects the reward and lifetime of a task from a fixed table.
type Difficulty string

const (
	DifficultyVeryEasy Difficulty = "Very Easy"
	DifficultyEasy     Difficulty = "Easy"
	DifficultyMedium   Difficulty = "Medium"
	DifficultyHard     Difficulty = "Hard"
	DifficultyVeryHard Difficulty = "Very Hard"
)

type reward struct {
	xp       int
	lifetime time.Duration
}

var rewardTable = map[Difficulty]reward{
	DifficultyVeryEasy: {xp: 10, lifetime: 24 * time.Hour},
	DifficultyEasy:     {xp: 25, lifetime: 2 * 24 * time.Hour},
	DifficultyMedium:   {xp: 50, lifetime: 3 * 24 * time.Hour},
	DifficultyHard:     {xp: 100, lifetime: 4 * 24 * time.Hour},
	DifficultyVeryHard: {xp: 150, lifetime: 5 * 24 * time.Hour},
}

// ParseDifficulty validates an external difficulty string.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if _, ok := rewardTable[d]; !ok {
		return "", dErrors.Newf(dErrors.CodeValidation, "unknown difficulty %q", s)
	}
	return d, nil
}

// XPReward returns the xp granted on completion for the difficulty.
func (d Difficulty) XPReward() int { return rewardTable[d].xp }

// Lifetime returns how long a task of this difficulty stays completable.
func (d Difficulty) Lifetime() time.Duration { return rewardTable[d].lifetime }

const minExpirationLead = time.Hour

// Task is a single unit of work owned by one user.
//
// Invariants:
//   - Name 5-30 chars, Description 5-70 chars
//   - Among one owner's pending tasks, names and descriptions are unique
//     case-insensitively (enforced by the service against the pending set)
//   - ExpiresAt is at least one hour after creation
//   - CompletedAt is nil until completion and immutable afterwards
type Task struct {
	ID          id.TaskID
	OwnerID     id.UserID
	Name        string
	Description string
	XPReward    int
	CreatedAt   time.Time
	ExpiresAt   time.Time
	CompletedAt *time.Time
	WeatherTag  string // optional compatibility hint for recommendations
}

// New builds a validated pending task. The expiration lead is always
// satisfied by the reward table but re-checked defensively in case the
// table ever changes.
func New(taskID id.TaskID, ownerID id.UserID, name, description string, difficulty Difficulty, now time.Time) (*Task, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ValidateDescription(description); err != nil {
		return nil, err
	}
	if _, ok := rewardTable[difficulty]; !ok {
		return nil, dErrors.Newf(dErrors.CodeValidation, "unknown difficulty %q", string(difficulty))
	}
	expires := now.Add(difficulty.Lifetime())
	if expires.Before(now.Add(minExpirationLead)) {
		return nil, dErrors.New(dErrors.CodeValidation, "task must expire at least one hour in the future")
	}
	return &Task{
		ID:          taskID,
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		XPReward:    difficulty.XPReward(),
		CreatedAt:   now,
		ExpiresAt:   expires,
	}, nil
}

// ValidateName enforces the 5-30 character bound.
func ValidateName(name string) error {
	if name == "" {
		return dErrors.New(dErrors.CodeValidation, "task name is required")
	}
	if len(name) < 5 || len(name) > 30 {
		return dErrors.New(dErrors.CodeValidation, "task name must be between 5 and 30 characters")
	}
	return nil
}

// ValidateDescription enforces the 5-70 character bound.
func ValidateDescription(description string) error {
	if description == "" {
		return dErrors.New(dErrors.CodeValidation, "task description is required")
	}
	if len(description) < 5 || len(description) > 70 {
		return dErrors.New(dErrors.CodeValidation, "task description must be between 5 and 70 characters")
	}
	return nil
}

func (t *Task) IsCompleted() bool { return t.CompletedAt != nil }

// IsExpired reports whether a pending task's deadline has passed.
func (t *Task) IsExpired(now time.Time) bool {
	return !t.IsCompleted() && now.After(t.ExpiresAt)
}

// CanComplete checks the one-way lifecycle rule.
func (t *Task) CanComplete() error {
	if t.IsCompleted() {
		return dErrors.Newf(dErrors.CodeConflict, "task %q has already been completed", t.Name)
	}
	return nil
}

// ApplyCompletion stamps the completion time. Call CanComplete first.
func (t *Task) ApplyCompletion(now time.Time) {
	completed := now
	t.CompletedAt = &completed
}

// CanCancel mirrors CanComplete: only pending tasks may be cancelled.
func (t *Task) CanCancel() error {
	if t.IsCompleted() {
		return dErrors.Newf(dErrors.CodeConflict, "task %q has already been completed", t.Name)
	}
	return nil
}
