package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"goodtime/internal/user"
	id "goodtime/pkg/domain"
	"goodtime/pkg/platform/sentinel"
)

type UserStoreSuite struct {
	suite.Suite
	store *user.InMemoryStore
	ctx   context.Context
	now   time.Time
}

func TestUserStoreSuite(t *testing.T) {
	suite.Run(t, new(UserStoreSuite))
}

func (s *UserStoreSuite) SetupTest() {
	s.store = user.NewInMemoryStore()
	s.ctx = context.Background()
	s.now = time.Date(2025, time.October, 14, 9, 0, 0, 0, time.UTC)
}

func (s *UserStoreSuite) newUser(username, email string) *user.User {
	u, err := user.New(id.NewUserID(), username, email, "hash", s.now)
	s.Require().NoError(err)
	return u
}

func (s *UserStoreSuite) TestCreate() {
	s.Run("stores and finds by id, username and email", func() {
		u := s.newUser("alice", "alice@example.com")
		s.Require().NoError(s.store.Create(s.ctx, u))

		byID, err := s.store.FindByID(s.ctx, u.ID)
		s.Require().NoError(err)
		s.Equal("alice", byID.Username)

		byName, err := s.store.FindByUsername(s.ctx, "ALICE")
		s.Require().NoError(err)
		s.Equal(u.ID, byName.ID)

		byEmail, err := s.store.FindByEmail(s.ctx, "Alice@Example.com")
		s.Require().NoError(err)
		s.Equal(u.ID, byEmail.ID)
	})

	s.Run("rejects duplicate username case-insensitively", func() {
		s.Require().NoError(s.store.Create(s.ctx, s.newUser("bob", "bob@example.com")))
		err := s.store.Create(s.ctx, s.newUser("BOB", "other@example.com"))
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)
	})

	s.Run("rejects duplicate email case-insensitively", func() {
		s.Require().NoError(s.store.Create(s.ctx, s.newUser("carol", "carol@example.com")))
		err := s.store.Create(s.ctx, s.newUser("carol2", "CAROL@example.com"))
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)
	})
}

func (s *UserStoreSuite) TestSaveIsolation() {
	u := s.newUser("alice", "alice@example.com")
	s.Require().NoError(s.store.Create(s.ctx, u))

	// Mutating the caller's copy must not leak into the store.
	u.XP = 999
	stored, err := s.store.FindByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(0, stored.XP)

	s.Require().NoError(s.store.Save(s.ctx, u))
	stored, err = s.store.FindByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(999, stored.XP)
}

func (s *UserStoreSuite) TestSaveAll() {
	s.Run("commits the whole batch", func() {
		a := s.newUser("alice", "alice@example.com")
		b := s.newUser("bob", "bob@example.com")
		s.Require().NoError(s.store.Create(s.ctx, a))
		s.Require().NoError(s.store.Create(s.ctx, b))

		a.LeaguePoints = 100
		b.LeaguePoints = 200
		s.Require().NoError(s.store.SaveAll(s.ctx, []*user.User{a, b}))

		got, err := s.store.FindByID(s.ctx, b.ID)
		s.Require().NoError(err)
		s.Equal(200, got.LeaguePoints)
	})

	s.Run("a missing user aborts the batch untouched", func() {
		a := s.newUser("carol", "carol@example.com")
		s.Require().NoError(s.store.Create(s.ctx, a))

		a.LeaguePoints = 50
		ghost := s.newUser("ghost", "ghost@example.com")
		err := s.store.SaveAll(s.ctx, []*user.User{a, ghost})
		s.ErrorIs(err, sentinel.ErrNotFound)

		got, err := s.store.FindByID(s.ctx, a.ID)
		s.Require().NoError(err)
		s.Equal(0, got.LeaguePoints)
	})
}

func (s *UserStoreSuite) TestTopByPoints() {
	users := map[string]int{"alice": 300, "bob": 500, "carol": 300, "dave": 100}
	for name, points := range users {
		u := s.newUser(name, name+"@example.com")
		s.Require().NoError(s.store.Create(s.ctx, u))
		u.LeaguePoints = points
		s.Require().NoError(s.store.Save(s.ctx, u))
	}

	top, err := s.store.TopByPoints(s.ctx, 3)
	s.Require().NoError(err)
	s.Require().Len(top, 3)
	s.Equal("bob", top[0].Username)
	// Ties break alphabetically for a stable board.
	s.Equal("alice", top[1].Username)
	s.Equal("carol", top[2].Username)
}
