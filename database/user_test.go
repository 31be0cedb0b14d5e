package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type UserStoreTestSuite struct {
	suite.Suite
	client *Client
}

func (s *UserStoreTestSuite) SetupTest() {
	client, err := New(":memory:")
	s.Require().NoError(err)
	s.client = client
}

func (s *UserStoreTestSuite) TearDownTest() {
	s.Require().NoError(s.client.Close())
}

func (s *UserStoreTestSuite) TestCreateUser() {
	ctx := context.Background()

	user, err := s.client.CreateUser(ctx, "alice", "$2a$10$somehash", false)
	s.Require().NoError(err)
	s.NotZero(user.ID)
	s.Equal("alice", user.Username)
	s.False(user.IsAdmin)

	got, err := s.client.GetUserByUsername(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(user.ID, got.ID)
	s.Equal("$2a$10$somehash", got.Password)
}

func (s *UserStoreTestSuite) TestCreateUserDuplicate() {
	ctx := context.Background()

	_, err := s.client.CreateUser(ctx, "alice", "hash-one", false)
	s.Require().NoError(err)

	_, err = s.client.CreateUser(ctx, "alice", "hash-two", true)
	s.Require().ErrorIs(err, ErrUserExists)

	// the failed registration must not leave a second row
	count, err := s.client.CountUsers(ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *UserStoreTestSuite) TestGetUserByUsernameNotFound() {
	_, err := s.client.GetUserByUsername(context.Background(), "nobody")
	s.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *UserStoreTestSuite) TestGetUserByID() {
	ctx := context.Background()

	user, err := s.client.CreateUser(ctx, "bob", "hash", true)
	s.Require().NoError(err)

	got, err := s.client.GetUserByID(ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("bob", got.Username)
	s.True(got.IsAdmin)

	_, err = s.client.GetUserByID(ctx, user.ID+1)
	s.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func TestUserStoreTestSuite(t *testing.T) {
	suite.Run(t, new(UserStoreTestSuite))
}
