package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	assetmodels "landregistry/internal/asset/models"
	assetservice "landregistry/internal/asset/service"
	assetstore "landregistry/internal/asset/store"
	"landregistry/internal/dispute/metrics"
	"landregistry/internal/dispute/models"
	"landregistry/internal/dispute/store"
	"landregistry/internal/registrytest"
	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/platform/audit"
)

type DisputeServiceSuite struct {
	suite.Suite
	env     *registrytest.Env
	assets  *assetservice.Service
	store   *store.InMemoryStore
	metrics *metrics.Metrics
	service *Service
	raiser  id.AccountID
	landID  id.LandID
}

func TestDisputeServiceSuite(t *testing.T) {
	suite.Run(t, new(DisputeServiceSuite))
}

func (s *DisputeServiceSuite) SetupTest() {
	s.env = registrytest.New(s.T())
	guard := s.env.Identity.Guard()

	landStore := assetstore.NewInMemoryStore()
	s.store = store.NewInMemoryStore()
	s.env.Ledger.Register(landStore, s.store)

	s.assets = assetservice.New(landStore, s.env.Ledger, s.env.Sequencer, guard)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = New(s.store, s.env.Ledger, s.env.Sequencer, guard, s.assets,
		WithAuditPublisher(s.env.Audit),
		WithMetrics(s.metrics),
	)

	owner := s.env.VerifiedUser(s.T())
	land, err := s.assets.AddLand(s.env.As(owner), assetmodels.AddLandRequest{
		Area:         800,
		Location:     "Plot 3, Aundh",
		Price:        10,
		Coordinates:  "18.56,73.81",
		PropertyID:   "PRP-3",
		SurveyNumber: "3/1",
		DocumentHash: "QmDeed",
	})
	s.Require().NoError(err)
	s.landID = land.ID
	s.raiser = s.env.VerifiedUser(s.T())
}

func (s *DisputeServiceSuite) requireCode(err error, code dErrors.Code) {
	s.T().Helper()
	s.Require().Error(err)
	s.Require().True(dErrors.HasCode(err, code), "expected %s, got %v", code, err)
}

func (s *DisputeServiceSuite) raise(reason string) *models.Dispute {
	s.T().Helper()
	d, err := s.service.RaiseDispute(s.env.As(s.raiser), s.landID, reason, models.CategoryBoundary)
	s.Require().NoError(err)
	return d
}

func (s *DisputeServiceSuite) TestRaiseDispute() {
	s.Run("ids are scoped per land", func() {
		first := s.raise("fence moved")
		second := s.raise("well encroaches")
		s.Equal(first.ID+1, second.ID)
		s.Equal(s.raiser, first.Raiser)
		s.False(first.Resolved)

		d, err := s.service.GetDispute(context.Background(), s.landID, second.ID)
		s.Require().NoError(err)
		s.Equal("well encroaches", d.Reason)
	})

	s.Run("accepts a lower-case category", func() {
		d, err := s.service.RaiseDispute(s.env.As(s.raiser), s.landID, "forged deed", "fraud")
		s.Require().NoError(err)
		s.Equal(models.CategoryFraud, d.Category)
	})

	s.Run("requires VERIFIED_USER", func() {
		_, err := s.service.RaiseDispute(s.env.As(s.env.RegisteredUser(s.T())), s.landID, "x", models.CategoryOther)
		s.requireCode(err, dErrors.CodeForbidden)
	})

	s.Run("land must exist", func() {
		_, err := s.service.RaiseDispute(s.env.As(s.raiser), 999, "x", models.CategoryOther)
		s.requireCode(err, dErrors.CodeNotFound)
	})

	s.Run("rejects an unknown category", func() {
		_, err := s.service.RaiseDispute(s.env.As(s.raiser), s.landID, "x", "ZONING")
		s.requireCode(err, dErrors.CodeValidation)
	})

	s.Run("blocked while paused", func() {
		s.Require().NoError(s.env.Identity.Pause(s.env.As(s.env.Owner)))
		defer func() { s.Require().NoError(s.env.Identity.Unpause(s.env.As(s.env.Owner))) }()

		_, err := s.service.RaiseDispute(s.env.As(s.raiser), s.landID, "x", models.CategoryOther)
		s.requireCode(err, dErrors.CodeInvalidState)
	})

	s.Run("records the category metric", func() {
		before := testutil.ToFloat64(s.metrics.DisputesRaised.WithLabelValues("BOUNDARY"))
		s.raise("hedge")
		s.Equal(before+1, testutil.ToFloat64(s.metrics.DisputesRaised.WithLabelValues("BOUNDARY")))
	})
}

func (s *DisputeServiceSuite) TestResolveDispute() {
	s.Run("inspector resolves once", func() {
		d := s.raise("fence moved")
		s.Require().NoError(s.service.ResolveDispute(s.env.As(s.env.Inspector), s.landID, d.ID, "resurveyed"))

		got, err := s.service.GetDispute(context.Background(), s.landID, d.ID)
		s.Require().NoError(err)
		s.True(got.Resolved)
		s.Equal("resurveyed", got.Resolution)
		s.Equal(s.env.Inspector, got.ResolvedBy)

		err = s.service.ResolveDispute(s.env.As(s.env.Inspector), s.landID, d.ID, "again")
		s.requireCode(err, dErrors.CodeInvalidState)
		s.Equal("dispute already resolved", dErrors.MessageOf(err))
	})

	s.Run("requires INSPECTOR", func() {
		d := s.raise("fence moved")
		err := s.service.ResolveDispute(s.env.As(s.raiser), s.landID, d.ID, "mine")
		s.requireCode(err, dErrors.CodeForbidden)
	})

	s.Run("unknown dispute", func() {
		err := s.service.ResolveDispute(s.env.As(s.env.Inspector), s.landID, 999, "x")
		s.requireCode(err, dErrors.CodeNotFound)
		s.Equal("dispute not found", dErrors.MessageOf(err))
	})

	s.Run("resolution is required", func() {
		d := s.raise("fence moved")
		err := s.service.ResolveDispute(s.env.As(s.env.Inspector), s.landID, d.ID, " ")
		s.requireCode(err, dErrors.CodeValidation)
	})
}

func (s *DisputeServiceSuite) TestOpenCount() {
	a := s.raise("a")
	s.raise("b")
	n, err := s.service.CountOpenDisputes(context.Background(), s.landID)
	s.Require().NoError(err)
	s.Equal(2, n)

	s.Require().NoError(s.service.ResolveDispute(s.env.As(s.env.Inspector), s.landID, a.ID, "done"))
	n, err = s.service.CountOpenDisputes(context.Background(), s.landID)
	s.Require().NoError(err)
	s.Equal(1, n)

	_, err = s.service.CountOpenDisputes(context.Background(), 999)
	s.requireCode(err, dErrors.CodeNotFound)
}

func (s *DisputeServiceSuite) TestGetLandDisputes() {
	for i := range 5 {
		s.raise(fmt.Sprintf("claim %d", i))
	}

	s.Run("pages concatenate to the full log", func() {
		var reasons []string
		for offset := 0; offset < 5; offset += 2 {
			page, err := s.service.GetLandDisputes(context.Background(), s.landID, offset, 2)
			s.Require().NoError(err)
			for _, d := range page {
				reasons = append(reasons, d.Reason)
			}
		}
		s.Equal([]string{"claim 0", "claim 1", "claim 2", "claim 3", "claim 4"}, reasons)
	})

	s.Run("offset at the end is empty", func() {
		page, err := s.service.GetLandDisputes(context.Background(), s.landID, 5, 2)
		s.Require().NoError(err)
		s.Empty(page)
	})

	s.Run("offset past the end fails", func() {
		_, err := s.service.GetLandDisputes(context.Background(), s.landID, 6, 2)
		s.requireCode(err, dErrors.CodeValidation)
		s.Equal("invalid offset", dErrors.MessageOf(err))
	})

	s.Run("unknown land", func() {
		_, err := s.service.GetLandDisputes(context.Background(), 999, 0, 2)
		s.requireCode(err, dErrors.CodeNotFound)
	})
}

func (s *DisputeServiceSuite) TestAuditTrail() {
	d := s.raise("fence moved")
	s.Require().NoError(s.service.ResolveDispute(s.env.As(s.env.Inspector), s.landID, d.ID, "settled"))

	events, err := s.env.Events.ListAll(context.Background())
	s.Require().NoError(err)
	subject := fmt.Sprintf("land:%d/dispute:%d", s.landID, d.ID)
	var actions []string
	for _, e := range events {
		if e.Subject == subject {
			actions = append(actions, e.Action)
		}
	}
	s.Equal([]string{string(audit.EventDisputeRaised), string(audit.EventDisputeResolved)}, actions)
}
