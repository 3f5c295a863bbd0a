package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"landregistry/internal/dispute/handler/mocks"
	"landregistry/internal/dispute/models"
	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/testutil"
)

type DisputeHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestDisputeHandlerSuite(t *testing.T) {
	suite.Run(t, new(DisputeHandlerSuite))
}

func (s *DisputeHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
}

func (s *DisputeHandlerSuite) TestRaiseDispute() {
	s.Run("created with an upper-cased category", func() {
		s.service.EXPECT().RaiseDispute(gomock.Any(), id.LandID(4), "fence moved", models.CategoryBoundary).
			Return(&models.Dispute{ID: 1, LandID: 4, Category: models.CategoryBoundary, Reason: "fence moved"}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/disputes/4/", RaiseDisputeRequest{
			Category: "boundary", Reason: " fence moved ",
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		d := testutil.UnmarshalResponse[models.Dispute](s.T(), rr)
		s.Equal(id.DisputeID(1), d.ID)
		s.Equal(models.CategoryBoundary, d.Category)
	})

	s.Run("unknown category never reaches the service", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/disputes/4/", RaiseDisputeRequest{
			Category: "zoning", Reason: "x",
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})

	s.Run("missing land maps to 404", func() {
		s.service.EXPECT().RaiseDispute(gomock.Any(), id.LandID(9), "x", models.CategoryOther).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "land not found"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/disputes/9/", RaiseDisputeRequest{
			Category: "OTHER", Reason: "x",
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, string(dErrors.CodeNotFound))
	})

	s.Run("malformed land id", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/disputes/abc/", RaiseDisputeRequest{
			Category: "OTHER", Reason: "x",
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})
}

func (s *DisputeHandlerSuite) TestResolveDispute() {
	s.Run("no content", func() {
		s.service.EXPECT().ResolveDispute(gomock.Any(), id.LandID(4), id.DisputeID(2), "resurveyed").Return(nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/disputes/4/2/resolve",
			ResolveDisputeRequest{Resolution: "resurveyed"})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
	})

	s.Run("already resolved maps to 409", func() {
		s.service.EXPECT().ResolveDispute(gomock.Any(), id.LandID(4), id.DisputeID(2), "again").
			Return(dErrors.New(dErrors.CodeInvalidState, "dispute already resolved"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/disputes/4/2/resolve",
			ResolveDisputeRequest{Resolution: "again"})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusConflict)
		s.Equal("dispute already resolved", testutil.UnmarshalErrorResponse(s.T(), rr).ErrorDescription)
	})

	s.Run("blank resolution", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/disputes/4/2/resolve",
			ResolveDisputeRequest{Resolution: "  "})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})
}

func (s *DisputeHandlerSuite) TestListDisputes() {
	s.Run("forwards paging", func() {
		s.service.EXPECT().GetLandDisputes(gomock.Any(), id.LandID(4), 2, 5).
			Return([]*models.Dispute{{ID: 3, LandID: 4}}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/disputes/4/?offset=2&limit=5"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[DisputesResponse](s.T(), rr)
		s.Equal(2, resp.Offset)
		s.Len(resp.Disputes, 1)
	})

	s.Run("empty list is an array", func() {
		s.service.EXPECT().GetLandDisputes(gomock.Any(), id.LandID(4), 0, 50).Return(nil, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/disputes/4/"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.Contains(string(testutil.ReadBody(s.T(), rr)), `"disputes":[]`)
	})

	s.Run("bad offset", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/disputes/4/?offset=-1"))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})
}

func (s *DisputeHandlerSuite) TestGetDispute() {
	s.service.EXPECT().GetDispute(gomock.Any(), id.LandID(4), id.DisputeID(1)).
		Return(&models.Dispute{ID: 1, LandID: 4, Resolved: true, Resolution: "settled"}, nil)

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/disputes/4/1"))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	d := testutil.UnmarshalResponse[models.Dispute](s.T(), rr)
	s.True(d.Resolved)
	s.Equal("settled", d.Resolution)
}

func (s *DisputeHandlerSuite) TestOpenCount() {
	s.service.EXPECT().CountOpenDisputes(gomock.Any(), id.LandID(4)).Return(3, nil)

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/disputes/4/open"))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.Equal(3, testutil.UnmarshalResponse[OpenCountResponse](s.T(), rr).Open)
}
