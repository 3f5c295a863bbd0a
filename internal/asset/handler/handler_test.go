package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"landregistry/internal/asset/handler/mocks"
	"landregistry/internal/asset/models"
	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/testutil"
)

type AssetHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
	caller  id.AccountID
}

func TestAssetHandlerSuite(t *testing.T) {
	suite.Run(t, new(AssetHandlerSuite))
}

func (s *AssetHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
	s.caller = id.NewAccountID()
}

func (s *AssetHandlerSuite) TestAddLand() {
	s.Run("created", func() {
		s.service.EXPECT().AddLand(gomock.Any(), models.AddLandRequest{
			Area: 100, Location: "Baner", Price: 10, Coordinates: "1,2",
			PropertyID: "P1", SurveyNumber: "S1", DocumentHash: "QmDeed",
		}).Return(&models.Land{ID: 7, Owner: s.caller, Price: 10}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/lands/", AddLandRequest{
			Area: 100, Location: "Baner", Price: 10, Coordinates: "1,2",
			PropertyID: "P1", SurveyNumber: "S1", DocumentHash: "QmDeed",
		})
		rr := testutil.DoRequest(s.router, testutil.WithCaller(req, s.caller.String()))

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		var land models.Land
		s.Require().NoError(json.Unmarshal(testutil.ReadBody(s.T(), rr), &land))
		s.Equal(id.LandID(7), land.ID)
		s.Equal(s.caller, land.Owner)
	})

	s.Run("forbidden maps to 403", func() {
		s.service.EXPECT().AddLand(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeForbidden, "missing required role: VERIFIED_USER"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/lands/", AddLandRequest{Area: 1})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, string(dErrors.CodeForbidden))
	})
}

func (s *AssetHandlerSuite) TestVerifyLand() {
	s.Run("approve flag is required", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/lands/3/verify", `{"remark":"ok"}`)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})

	s.Run("rejection is forwarded", func() {
		s.service.EXPECT().VerifyLand(gomock.Any(), id.LandID(3), false, "survey mismatch").Return(nil)
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/lands/3/verify",
			`{"approve":false,"remark":"  survey mismatch "}`)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
	})

	s.Run("already verified is a conflict", func() {
		s.service.EXPECT().VerifyLand(gomock.Any(), id.LandID(3), true, "").
			Return(dErrors.New(dErrors.CodeInvalidState, "already verified"))
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/lands/3/verify", `{"approve":true}`)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, string(dErrors.CodeInvalidState))
	})
}

func (s *AssetHandlerSuite) TestLandIDParsing() {
	for _, raw := range []string{"0", "abc", "-1"} {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/lands/"+raw)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	}
}

func (s *AssetHandlerSuite) TestListing() {
	s.service.EXPECT().PutLandForSale(gomock.Any(), id.LandID(5)).Return(nil)
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, "/lands/5/listing"))
	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)

	s.service.EXPECT().TakeLandOffSale(gomock.Any(), id.LandID(5)).
		Return(dErrors.New(dErrors.CodeInvalidState, "land not for sale"))
	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodDelete, "/lands/5/listing"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, string(dErrors.CodeInvalidState))
}

func (s *AssetHandlerSuite) TestDocuments() {
	s.Run("limit reached maps to 422", func() {
		s.service.EXPECT().AddLandDocument(gomock.Any(), id.LandID(2), "QmScan", "survey scan").
			Return(dErrors.New(dErrors.CodeResourceLimit, "maximum documents reached"))
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/lands/2/documents",
			AddDocumentRequest{Hash: "QmScan", Description: "survey scan"})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, string(dErrors.CodeResourceLimit))
	})

	s.Run("empty list renders as an array", func() {
		s.service.EXPECT().GetLandDocuments(gomock.Any(), id.LandID(2)).Return(nil, nil)
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/lands/2/documents"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.Contains(string(testutil.ReadBody(s.T(), rr)), `"documents":[]`)
	})
}

func (s *AssetHandlerSuite) TestHistory() {
	s.Run("passes pagination through", func() {
		s.service.EXPECT().GetLandHistory(gomock.Any(), id.LandID(9), 2, 3).
			Return([]models.HistoryEntry{{Description: "Price updated"}}, nil)
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/lands/9/history?offset=2&limit=3"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)

		var resp HistoryResponse
		s.Require().NoError(json.Unmarshal(testutil.ReadBody(s.T(), rr), &resp))
		s.Equal(2, resp.Offset)
		s.Len(resp.Entries, 1)
	})

	s.Run("offset beyond the log", func() {
		s.service.EXPECT().GetLandHistory(gomock.Any(), id.LandID(9), 40, 50).
			Return(nil, dErrors.New(dErrors.CodeValidation, "invalid offset"))
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/lands/9/history?offset=40"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})
}

func (s *AssetHandlerSuite) TestTransfer() {
	newOwner := id.NewAccountID()
	s.service.EXPECT().TransferOwnership(gomock.Any(), id.LandID(4), newOwner, "QmNew").Return(nil)
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/lands/4/transfer",
		TransferLandRequest{NewOwner: newOwner.String(), DocumentHash: "QmNew"})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)

	req = testutil.NewJSONRequest(s.T(), http.MethodPost, "/lands/4/transfer", TransferLandRequest{NewOwner: "nope"})
	rr = testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
}

func (s *AssetHandlerSuite) TestContracts() {
	contract := id.NewAccountID()
	s.service.EXPECT().AuthorizeContract(gomock.Any(), contract).Return(nil)
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPut, "/lands/contracts/"+contract.String()))
	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)

	s.service.EXPECT().ListAuthorizedContracts(gomock.Any()).Return([]id.AccountID{contract}, nil)
	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/lands/contracts"))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.Contains(string(testutil.ReadBody(s.T(), rr)), contract.String())
}

func (s *AssetHandlerSuite) TestLandsByOwner() {
	owner := id.NewAccountID()
	s.service.EXPECT().GetLandsByOwner(gomock.Any(), owner).Return([]id.LandID{1, 3}, nil)
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/lands/owners/"+owner.String()))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)

	var resp LandIDsResponse
	s.Require().NoError(json.Unmarshal(testutil.ReadBody(s.T(), rr), &resp))
	s.Equal([]id.LandID{1, 3}, resp.Lands)
}
