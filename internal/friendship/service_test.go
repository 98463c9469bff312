package friendship_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"goodtime/internal/friendship"
	"goodtime/internal/user"
	id "goodtime/pkg/domain"
	dErrors "goodtime/pkg/domain-errors"
)

type FriendshipSuite struct {
	suite.Suite
	ctx   context.Context
	users *user.InMemoryStore
	svc   *friendship.Service
	alice *user.User
	bob   *user.User
	carol *user.User
}

func TestFriendshipSuite(t *testing.T) {
	suite.Run(t, new(FriendshipSuite))
}

func (s *FriendshipSuite) SetupTest() {
	s.ctx = context.Background()
	s.users = user.NewInMemoryStore()
	s.svc = friendship.NewService(friendship.NewInMemoryStore(), s.users)
	s.alice = s.addUser("alice")
	s.bob = s.addUser("bob")
	s.carol = s.addUser("carol")
}

func (s *FriendshipSuite) addUser(name string) *user.User {
	now := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	u, err := user.New(id.NewUserID(), name, name+"@example.com", "hash", now)
	s.Require().NoError(err)
	s.Require().NoError(s.users.Create(s.ctx, u))
	return u
}

func (s *FriendshipSuite) TestSend() {
	s.Run("creates a pending request", func() {
		r, err := s.svc.Send(s.ctx, s.alice.ID, "bob")
		s.Require().NoError(err)
		s.Equal(friendship.StatusPending, r.Status)

		inbox, err := s.svc.PendingReceived(s.ctx, s.bob.ID)
		s.Require().NoError(err)
		s.Require().Len(inbox, 1)
		s.Equal("alice", inbox[0].RequesterUsername)
	})

	s.Run("a counter-request while pending is a conflict", func() {
		_, err := s.svc.Send(s.ctx, s.bob.ID, "alice")
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("self requests are invalid", func() {
		_, err := s.svc.Send(s.ctx, s.alice.ID, "alice")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown receiver is not found", func() {
		_, err := s.svc.Send(s.ctx, s.alice.ID, "nobody")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *FriendshipSuite) TestRespond() {
	var acceptedID id.FriendRequestID

	s.Run("accept makes the pair mutual friends", func() {
		r, err := s.svc.Send(s.ctx, s.alice.ID, "bob")
		s.Require().NoError(err)
		acceptedID = r.ID
		s.Require().NoError(s.svc.Respond(s.ctx, s.bob.ID, r.ID, true))

		aliceFriends, err := s.svc.Friends(s.ctx, s.alice.ID)
		s.Require().NoError(err)
		s.Require().Len(aliceFriends, 1)
		s.Equal("bob", aliceFriends[0].Username)

		bobFriends, err := s.svc.Friends(s.ctx, s.bob.ID)
		s.Require().NoError(err)
		s.Require().Len(bobFriends, 1)
		s.Equal("alice", bobFriends[0].Username)
	})

	s.Run("only the receiver can respond", func() {
		r, err := s.svc.Send(s.ctx, s.alice.ID, "carol")
		s.Require().NoError(err)
		err = s.svc.Respond(s.ctx, s.alice.ID, r.ID, true)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("reject deletes the record so the pair can retry", func() {
		r, err := s.svc.Send(s.ctx, s.bob.ID, "carol")
		s.Require().NoError(err)
		s.Require().NoError(s.svc.Respond(s.ctx, s.carol.ID, r.ID, false))

		inbox, err := s.svc.PendingReceived(s.ctx, s.carol.ID)
		s.Require().NoError(err)
		s.NotContains(usernames(inbox), "bob")

		_, err = s.svc.Send(s.ctx, s.bob.ID, "carol")
		s.NoError(err)
	})

	s.Run("responding twice to an accepted request is a conflict", func() {
		err := s.svc.Respond(s.ctx, s.bob.ID, acceptedID, true)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("a third party responding to an accepted request is forbidden", func() {
		err := s.svc.Respond(s.ctx, s.carol.ID, acceptedID, true)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("responding to an unknown request is not found", func() {
		err := s.svc.Respond(s.ctx, s.bob.ID, id.NewFriendRequestID(), true)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *FriendshipSuite) TestRemove() {
	s.Run("ends an accepted friendship for both sides", func() {
		r, err := s.svc.Send(s.ctx, s.alice.ID, "bob")
		s.Require().NoError(err)
		s.Require().NoError(s.svc.Respond(s.ctx, s.bob.ID, r.ID, true))

		s.Require().NoError(s.svc.Remove(s.ctx, s.alice.ID, s.bob.ID))

		bobFriends, err := s.svc.Friends(s.ctx, s.bob.ID)
		s.Require().NoError(err)
		s.Empty(bobFriends)
	})

	s.Run("removing a non-existent relationship is not found", func() {
		err := s.svc.Remove(s.ctx, s.alice.ID, s.carol.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func usernames(views []friendship.PendingView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.RequesterUsername)
	}
	return out
}
