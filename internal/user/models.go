// Package user holds the user aggregate: identity, progression stats, league
// standing and achievement unlocks. The aggregate is the unit of mutual
// exclusion for every write in the core; services load it, run the pure
// progression pipeline over it, and commit it once.
package user

import (
	"regexp"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"goodtime/internal/progression"
	id "goodtime/pkg/domain"
	dErrors "goodtime/pkg/domain-errors"
)

// Tier is the league rank derived from seasonal points.
type Tier string

const (
	TierBronze   Tier = "Bronze"
	TierSilver   Tier = "Silver"
	TierGold     Tier = "Gold"
	TierPlatinum Tier = "Platinum"
	TierDiamond  Tier = "Diamond"
)

var tierOrder = map[Tier]int{
	TierBronze:   0,
	TierSilver:   1,
	TierGold:     2,
	TierPlatinum: 3,
	TierDiamond:  4,
}

// AtLeast reports whether t ranks at or above other. Unknown tiers rank
// below Bronze.
func (t Tier) AtLeast(other Tier) bool {
	return tierOrder[t] >= tierOrder[other]
}

// Role separates regular members from admins. Authorization itself lives in
// the web layer; the core only records the role.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// AchievementUnlock records that an achievement was granted to the user.
// Unlocks are monotonic: once appended they are never removed, and the
// reward xp is granted exactly once.
type AchievementUnlock struct {
	AchievementID string
	UnlockedAt    time.Time
}

// User is the aggregate root.
//
// Invariants:
//   - Username and Email are unique case-insensitively (enforced by the store)
//   - XP >= 0, Level >= 1, LeaguePoints >= 0, PointsLastSeason >= 0
//   - Tier is always TierFor(LeaguePoints, current thresholds)
//   - Unlocks hold at most one entry per achievement id
type User struct {
	ID               id.UserID
	Username         string
	Email            string
	CredentialHash   string // opaque credential handle; hashing is external
	XP               int
	Level            int
	Streak           progression.Streak
	Role             Role
	RegisteredAt     time.Time
	LeaguePoints     int
	Tier             Tier
	PointsLastSeason int
	Unlocks          []AchievementUnlock
}

// New constructs a freshly registered user after validating identity fields.
func New(userID id.UserID, username, email, credentialHash string, now time.Time) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	return &User{
		ID:             userID,
		Username:       username,
		Email:          email,
		CredentialHash: credentialHash,
		Level:          1,
		Role:           RoleMember,
		RegisteredAt:   now,
		Tier:           TierBronze,
	}, nil
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// ValidateUsername enforces 3-20 characters of letters, digits and
// underscores.
func ValidateUsername(username string) error {
	if username == "" {
		return dErrors.New(dErrors.CodeValidation, "username is required")
	}
	if !usernamePattern.MatchString(username) {
		return dErrors.New(dErrors.CodeValidation, "username must be 3-20 letters, digits or underscores")
	}
	return nil
}

// ValidateEmail enforces a syntactically valid address.
func ValidateEmail(email string) error {
	if email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if !govalidator.IsEmail(email) {
		return dErrors.Newf(dErrors.CodeValidation, "email %q is not valid", email)
	}
	return nil
}

// HasUnlock reports whether the achievement has already been granted.
func (u *User) HasUnlock(achievementID string) bool {
	for _, unlock := range u.Unlocks {
		if unlock.AchievementID == achievementID {
			return true
		}
	}
	return false
}

// AddUnlock appends an unlock. The caller guards against duplicates via
// HasUnlock; a second add for the same id is refused to keep the monotonic
// once-only invariant even under caller bugs.
func (u *User) AddUnlock(achievementID string, now time.Time) bool {
	if u.HasUnlock(achievementID) {
		return false
	}
	u.Unlocks = append(u.Unlocks, AchievementUnlock{AchievementID: achievementID, UnlockedAt: now})
	return true
}

// ResetSeason moves the current points into last-season bookkeeping and
// drops the user back to Bronze. Used only by the season rollover batch.
func (u *User) ResetSeason() {
	u.PointsLastSeason = u.LeaguePoints
	u.LeaguePoints = 0
	u.Tier = TierBronze
}
