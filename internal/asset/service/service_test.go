package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"landregistry/internal/asset/metrics"
	"landregistry/internal/asset/models"
	"landregistry/internal/asset/store"
	"landregistry/internal/registrytest"
	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/platform/audit"
	"landregistry/pkg/requestcontext"
)

type AssetServiceSuite struct {
	suite.Suite
	env     *registrytest.Env
	store   *store.InMemoryStore
	metrics *metrics.Metrics
	service *Service
	seller  id.AccountID
}

func TestAssetServiceSuite(t *testing.T) {
	suite.Run(t, new(AssetServiceSuite))
}

func (s *AssetServiceSuite) SetupTest() {
	s.env = registrytest.New(s.T())
	s.store = store.NewInMemoryStore()
	s.env.Ledger.Register(s.store)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = New(s.store, s.env.Ledger, s.env.Sequencer, s.env.Identity.Guard(),
		WithAuditPublisher(s.env.Audit),
		WithMetrics(s.metrics),
		WithMaxDocuments(3),
	)
	s.seller = s.env.VerifiedUser(s.T())
}

func landRequest() models.AddLandRequest {
	return models.AddLandRequest{
		Area:         1200,
		Location:     "Survey 14, Baner",
		Price:        5000,
		Coordinates:  "18.559,73.786",
		PropertyID:   "PRP-001",
		SurveyNumber: "14/2A",
		DocumentHash: "QmDeed",
	}
}

func (s *AssetServiceSuite) requireCode(err error, code dErrors.Code) {
	s.T().Helper()
	s.Require().Error(err)
	s.Require().True(dErrors.HasCode(err, code), "expected %s, got %v", code, err)
}

func (s *AssetServiceSuite) addLand(owner id.AccountID) id.LandID {
	s.T().Helper()
	land, err := s.service.AddLand(s.env.As(owner), landRequest())
	s.Require().NoError(err)
	return land.ID
}

// listedLand returns a verified land owned by the seller and put up for sale.
func (s *AssetServiceSuite) listedLand() id.LandID {
	s.T().Helper()
	landID := s.addLand(s.seller)
	s.Require().NoError(s.service.VerifyLand(s.env.As(s.env.Inspector), landID, true, "boundaries match"))
	s.Require().NoError(s.service.PutLandForSale(s.env.As(s.seller), landID))
	return landID
}

func (s *AssetServiceSuite) history(landID id.LandID) []string {
	s.T().Helper()
	entries, err := s.service.GetLandHistory(context.Background(), landID, 0, 100)
	s.Require().NoError(err)
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Description
	}
	return out
}

func (s *AssetServiceSuite) TestAddLand() {
	s.Run("assigns sequential ids and starts unverified", func() {
		first := s.addLand(s.seller)
		second := s.addLand(s.seller)
		s.Equal(first+1, second)

		land, err := s.service.GetLand(context.Background(), first)
		s.Require().NoError(err)
		s.Equal(s.seller, land.Owner)
		s.False(land.Verified)
		s.False(land.ForSale)
		s.Len(s.history(first), 1)
	})

	s.Run("requires VERIFIED_USER", func() {
		unverified := s.env.RegisteredUser(s.T())
		_, err := s.service.AddLand(s.env.As(unverified), landRequest())
		s.requireCode(err, dErrors.CodeForbidden)
	})

	s.Run("requires a caller", func() {
		_, err := s.service.AddLand(context.Background(), landRequest())
		s.requireCode(err, dErrors.CodeUnauthorized)
	})

	s.Run("rejects zero price", func() {
		req := landRequest()
		req.Price = 0
		_, err := s.service.AddLand(s.env.As(s.seller), req)
		s.requireCode(err, dErrors.CodeValidation)
	})

	s.Run("blocked while paused", func() {
		s.Require().NoError(s.env.Identity.Pause(s.env.As(s.env.Owner)))
		defer func() { s.Require().NoError(s.env.Identity.Unpause(s.env.As(s.env.Owner))) }()

		_, err := s.service.AddLand(s.env.As(s.seller), landRequest())
		s.requireCode(err, dErrors.CodeInvalidState)
	})

	s.Run("counts registrations", func() {
		before, err := s.service.GetTotalLands(context.Background())
		s.Require().NoError(err)
		s.addLand(s.seller)
		after, err := s.service.GetTotalLands(context.Background())
		s.Require().NoError(err)
		s.Equal(before+1, after)
	})
}

func (s *AssetServiceSuite) TestVerifyLand() {
	s.Run("is single-shot whatever the outcome", func() {
		landID := s.addLand(s.seller)
		s.Require().NoError(s.service.VerifyLand(s.env.As(s.env.Inspector), landID, false, "survey mismatch"))

		land, err := s.service.GetLand(context.Background(), landID)
		s.Require().NoError(err)
		s.False(land.Verified)
		s.Equal("survey mismatch", land.Remark)

		err = s.service.VerifyLand(s.env.As(s.env.Inspector), landID, true, "")
		s.requireCode(err, dErrors.CodeInvalidState)
		s.Equal("already verified", dErrors.MessageOf(err))
	})

	s.Run("requires INSPECTOR", func() {
		landID := s.addLand(s.seller)
		err := s.service.VerifyLand(s.env.As(s.seller), landID, true, "")
		s.requireCode(err, dErrors.CodeForbidden)
	})

	s.Run("unknown land", func() {
		err := s.service.VerifyLand(s.env.As(s.env.Inspector), 999, true, "")
		s.requireCode(err, dErrors.CodeNotFound)
	})

	s.Run("records the outcome metric", func() {
		landID := s.addLand(s.seller)
		before := testutil.ToFloat64(s.metrics.LandsVerified.WithLabelValues("approved"))
		s.Require().NoError(s.service.VerifyLand(s.env.As(s.env.Inspector), landID, true, ""))
		s.Equal(before+1, testutil.ToFloat64(s.metrics.LandsVerified.WithLabelValues("approved")))
	})
}

func (s *AssetServiceSuite) TestSaleStatus() {
	s.Run("listing requires verification", func() {
		landID := s.addLand(s.seller)
		err := s.service.PutLandForSale(s.env.As(s.seller), landID)
		s.requireCode(err, dErrors.CodeInvalidState)
		s.Equal("land not verified", dErrors.MessageOf(err))
	})

	s.Run("list then delist", func() {
		landID := s.listedLand()
		forSale, err := s.service.ListLandsForSale(context.Background())
		s.Require().NoError(err)
		s.Contains(landIDs(forSale), landID)

		s.Require().NoError(s.service.TakeLandOffSale(s.env.As(s.seller), landID))
		err = s.service.TakeLandOffSale(s.env.As(s.seller), landID)
		s.requireCode(err, dErrors.CodeInvalidState)
	})

	s.Run("only the owner may list", func() {
		landID := s.addLand(s.seller)
		s.Require().NoError(s.service.VerifyLand(s.env.As(s.env.Inspector), landID, true, ""))
		err := s.service.PutLandForSale(s.env.As(s.env.VerifiedUser(s.T())), landID)
		s.requireCode(err, dErrors.CodeForbidden)
	})

	s.Run("unknown land is not found before ownership is checked", func() {
		err := s.service.PutLandForSale(s.env.As(s.seller), 4242)
		s.requireCode(err, dErrors.CodeNotFound)
	})
}

func (s *AssetServiceSuite) TestUpdates() {
	s.Run("price must be positive", func() {
		landID := s.addLand(s.seller)
		err := s.service.UpdateLandPrice(s.env.As(s.seller), landID, 0)
		s.requireCode(err, dErrors.CodeValidation)

		s.Require().NoError(s.service.UpdateLandPrice(s.env.As(s.seller), landID, 7500))
		land, err := s.service.GetLand(context.Background(), landID)
		s.Require().NoError(err)
		s.Equal(int64(7500), land.Price)
		s.Contains(s.history(landID)[1], "7500")
	})

	s.Run("details update bumps the timestamp", func() {
		landID := s.addLand(s.seller)
		later := time.Date(2031, 1, 2, 3, 4, 5, 0, time.UTC)
		ctx := requestcontext.WithTime(s.env.As(s.seller), later)
		s.Require().NoError(s.service.UpdateLandDetails(ctx, landID, models.LandDetails{
			Area: 900, Location: "Plot 7", Coordinates: "1,2", PropertyID: "PRP-9", SurveyNumber: "7/1",
		}))

		land, err := s.service.GetLand(context.Background(), landID)
		s.Require().NoError(err)
		s.Equal(uint64(900), land.Area)
		s.True(land.UpdatedAt.Equal(later))
	})

	s.Run("details are validated", func() {
		landID := s.addLand(s.seller)
		err := s.service.UpdateLandDetails(s.env.As(s.seller), landID, models.LandDetails{Area: 1})
		s.requireCode(err, dErrors.CodeValidation)
	})
}

func (s *AssetServiceSuite) TestDocuments() {
	landID := s.addLand(s.seller)
	for i := range 3 {
		s.Require().NoError(s.service.AddLandDocument(s.env.As(s.seller), landID, fmt.Sprintf("QmDoc%d", i), "scan"))
	}

	err := s.service.AddLandDocument(s.env.As(s.seller), landID, "QmDoc3", "scan")
	s.requireCode(err, dErrors.CodeResourceLimit)
	s.Equal("maximum documents reached", dErrors.MessageOf(err))

	docs, err := s.service.GetLandDocuments(context.Background(), landID)
	s.Require().NoError(err)
	s.Len(docs, 3)
	s.Equal("QmDoc0", docs[0].Hash)

	err = s.service.AddLandDocument(s.env.As(s.seller), landID, "", "scan")
	s.requireCode(err, dErrors.CodeValidation)
}

func (s *AssetServiceSuite) TestHistoryPagination() {
	landID := s.addLand(s.seller)
	for price := int64(1); price <= 4; price++ {
		s.Require().NoError(s.service.UpdateLandPrice(s.env.As(s.seller), landID, price*1000))
	}
	full := s.history(landID)
	s.Require().Len(full, 5)

	var pages []string
	for offset := 0; offset < len(full); offset += 2 {
		page, err := s.service.GetLandHistory(context.Background(), landID, offset, 2)
		s.Require().NoError(err)
		for _, e := range page {
			pages = append(pages, e.Description)
		}
	}
	s.Equal(full, pages)

	page, err := s.service.GetLandHistory(context.Background(), landID, 5, 10)
	s.Require().NoError(err)
	s.Empty(page)

	_, err = s.service.GetLandHistory(context.Background(), landID, 6, 1)
	s.requireCode(err, dErrors.CodeValidation)
	s.Equal("invalid offset", dErrors.MessageOf(err))
}

func (s *AssetServiceSuite) TestContracts() {
	contract := id.NewAccountID()

	s.Run("only the registry owner manages the allow-list", func() {
		err := s.service.AuthorizeContract(s.env.As(s.seller), contract)
		s.requireCode(err, dErrors.CodeForbidden)
	})

	s.Run("authorize is idempotent", func() {
		s.Require().NoError(s.service.AuthorizeContract(s.env.As(s.env.Owner), contract))
		s.Require().NoError(s.service.AuthorizeContract(s.env.As(s.env.Owner), contract))

		ok, err := s.service.IsAuthorizedContract(context.Background(), contract)
		s.Require().NoError(err)
		s.True(ok)

		all, err := s.service.ListAuthorizedContracts(context.Background())
		s.Require().NoError(err)
		s.Equal([]id.AccountID{contract}, all)
	})

	s.Run("deauthorize", func() {
		s.Require().NoError(s.service.DeauthorizeContract(s.env.As(s.env.Owner), contract))
		ok, err := s.service.IsAuthorizedContract(context.Background(), contract)
		s.Require().NoError(err)
		s.False(ok)
	})
}

type rejectingPublisher struct{}

func (rejectingPublisher) Emit(context.Context, audit.Event) error {
	return errors.New("outbox unavailable")
}

func (s *AssetServiceSuite) TestContractChangeRolledBackOnAuditFailure() {
	var logs bytes.Buffer
	svc := New(s.store, s.env.Ledger, s.env.Sequencer, s.env.Identity.Guard(),
		WithAuditPublisher(rejectingPublisher{}),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)
	contract := id.NewAccountID()

	err := svc.AuthorizeContract(s.env.As(s.env.Owner), contract)
	s.Require().Error(err)

	ok, err := svc.IsAuthorizedContract(context.Background(), contract)
	s.Require().NoError(err)
	s.False(ok)
	s.NotContains(logs.String(), "contract allow-list changed")
}

func (s *AssetServiceSuite) TestTransferOwnership() {
	buyer := s.env.VerifiedUser(s.T())
	contract := id.NewAccountID()
	s.Require().NoError(s.service.AuthorizeContract(s.env.As(s.env.Owner), contract))

	s.Run("allow-listed principal moves the land and delists it", func() {
		landID := s.listedLand()
		s.Require().NoError(s.service.TransferOwnership(s.env.As(contract), landID, buyer, "QmNewDeed"))

		land, err := s.service.GetLand(context.Background(), landID)
		s.Require().NoError(err)
		s.Equal(buyer, land.Owner)
		s.False(land.ForSale)
		s.Equal("QmNewDeed", land.DocumentHash)

		owned, err := s.service.GetLandsByOwner(context.Background(), buyer)
		s.Require().NoError(err)
		s.Contains(owned, landID)
		previous, err := s.service.GetLandsByOwner(context.Background(), s.seller)
		s.Require().NoError(err)
		s.NotContains(previous, landID)

		h := s.history(landID)
		s.True(strings.HasPrefix(h[len(h)-1], "Ownership transferred"))
	})

	s.Run("the land owner may transfer directly", func() {
		landID := s.addLand(s.seller)
		s.Require().NoError(s.service.TransferOwnership(s.env.As(s.seller), landID, buyer, ""))
		land, err := s.service.GetLand(context.Background(), landID)
		s.Require().NoError(err)
		s.Equal("QmDeed", land.DocumentHash)
	})

	s.Run("strangers are refused", func() {
		landID := s.addLand(s.seller)
		err := s.service.TransferOwnership(s.env.As(buyer), landID, buyer, "")
		s.requireCode(err, dErrors.CodeForbidden)
	})

	s.Run("new owner must differ", func() {
		landID := s.addLand(s.seller)
		err := s.service.TransferOwnership(s.env.As(contract), landID, s.seller, "")
		s.requireCode(err, dErrors.CodeValidation)
	})

	s.Run("emits an audit event", func() {
		landID := s.addLand(s.seller)
		s.Require().NoError(s.service.TransferOwnership(s.env.As(contract), landID, buyer, ""))
		events, err := s.env.Events.ListAll(context.Background())
		s.Require().NoError(err)
		last := events[len(events)-1]
		s.Equal(string(audit.EventLandTransferred), last.Action)
		s.Equal("land:"+landID.String(), last.Subject)
	})
}

func (s *AssetServiceSuite) TestFailedMutationLeavesNoTrace() {
	landID := s.addLand(s.seller)
	before := s.history(landID)

	err := s.service.UpdateLandPrice(s.env.As(s.env.VerifiedUser(s.T())), landID, 1)
	s.requireCode(err, dErrors.CodeForbidden)
	s.Equal(before, s.history(landID))
}
