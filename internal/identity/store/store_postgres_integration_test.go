//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"landregistry/internal/identity/store"
	id "landregistry/pkg/domain"
	"landregistry/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "inspectors", "account_roles", "users"))
}

func (s *PostgresStoreSuite) TestRoles() {
	ctx := context.Background()
	account := id.NewAccountID()

	s.Run("no roles before a grant", func() {
		has, err := s.store.HasRole(ctx, account, id.RoleInspector)
		s.Require().NoError(err)
		s.False(has)
	})

	s.Run("granted role is held and listed", func() {
		changed, err := s.store.GrantRole(ctx, account, id.RoleInspector)
		s.Require().NoError(err)
		s.True(changed)

		has, err := s.store.HasRole(ctx, account, id.RoleInspector)
		s.Require().NoError(err)
		s.True(has)

		has, err = s.store.HasRole(ctx, account, id.RoleAdmin)
		s.Require().NoError(err)
		s.False(has)

		roles, err := s.store.ListRoles(ctx, account)
		s.Require().NoError(err)
		s.Equal([]id.Role{id.RoleInspector}, roles)
	})

	s.Run("revoked role is no longer held", func() {
		changed, err := s.store.RevokeRole(ctx, account, id.RoleInspector)
		s.Require().NoError(err)
		s.True(changed)

		has, err := s.store.HasRole(ctx, account, id.RoleInspector)
		s.Require().NoError(err)
		s.False(has)
	})
}
