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

	"landregistry/internal/transfer/handler/mocks"
	"landregistry/internal/transfer/models"
	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/testutil"
)

type TransferHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
	buyer   id.AccountID
}

func TestTransferHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransferHandlerSuite))
}

func (s *TransferHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
	s.buyer = id.NewAccountID()
}

func (s *TransferHandlerSuite) TestCreate() {
	s.Run("created with status name", func() {
		s.service.EXPECT().CreatePurchaseRequest(gomock.Any(), id.LandID(3)).
			Return(&models.PurchaseRequest{ID: 1, LandID: 3, Buyer: s.buyer, Status: models.StatusPending}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/purchases/", CreateRequest{LandID: 3})
		rr := testutil.DoRequest(s.router, testutil.WithCaller(req, s.buyer.String()))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		testutil.AssertJSONContains(s.T(), rr, "status", "PENDING")
	})

	s.Run("land id is required", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/purchases/", `{}`)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})
}

func (s *TransferHandlerSuite) TestPayment() {
	s.Run("incorrect amount", func() {
		s.service.EXPECT().MakePayment(gomock.Any(), id.RequestID(8), int64(5)).
			Return(nil, dErrors.New(dErrors.CodeValidation, "incorrect payment amount"))
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/purchases/8/payment", PaymentRequest{Amount: 5})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation), "incorrect payment amount")
	})

	s.Run("already paid is a conflict", func() {
		s.service.EXPECT().MakePayment(gomock.Any(), id.RequestID(8), int64(10)).
			Return(nil, dErrors.New(dErrors.CodeInvalidState, "payment already done"))
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/purchases/8/payment", PaymentRequest{Amount: 10})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, string(dErrors.CodeInvalidState))
	})

	s.Run("completed", func() {
		s.service.EXPECT().MakePayment(gomock.Any(), id.RequestID(8), int64(10)).
			Return(&models.PurchaseRequest{ID: 8, Status: models.StatusCompleted, PaymentDone: true, Amount: 10}, nil)
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/purchases/8/payment", PaymentRequest{Amount: 10})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		testutil.AssertJSONContains(s.T(), rr, "status", "COMPLETED")
	})
}

func (s *TransferHandlerSuite) TestDecisions() {
	s.Run("single", func() {
		s.service.EXPECT().ProcessPurchaseRequest(gomock.Any(), id.RequestID(2), false).Return(nil)
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/purchases/2/decision", `{"approve":false}`)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
	})

	s.Run("batch forwards both arrays", func() {
		s.service.EXPECT().BatchProcessRequests(gomock.Any(), []id.RequestID{1, 2}, []bool{true}).
			Return(dErrors.New(dErrors.CodeValidation, "array length mismatch"))
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/purchases/decisions",
			`{"request_ids":[1,2],"decisions":[true]}`)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})
}

func (s *TransferHandlerSuite) TestFinalize() {
	s.service.EXPECT().TransferLandOwnership(gomock.Any(), id.RequestID(4), "QmNew").Return(nil)
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/purchases/4/finalize", FinalizeRequest{DocumentHash: " QmNew "})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
}

func (s *TransferHandlerSuite) TestQueries() {
	s.Run("buyer requests are paginated", func() {
		seller := id.NewAccountID()
		s.service.EXPECT().GetUserPurchaseRequests(gomock.Any(), s.buyer, 0, 2).
			Return([]*models.PurchaseRequest{
				{ID: 1, LandID: 3, Buyer: s.buyer, Seller: seller, Status: models.StatusPending},
				{ID: 2, LandID: 4, Buyer: s.buyer, Seller: seller, Status: models.StatusAccepted},
			}, nil)
		rr := testutil.DoRequest(s.router,
			testutil.NewRequest(s.T(), http.MethodGet, "/purchases/buyers/"+s.buyer.String()+"?limit=2"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[RequestsResponse](s.T(), rr)
		s.Require().Len(resp.Requests, 2)
		s.Equal(s.buyer, resp.Requests[0].Buyer)
		s.Equal(seller, resp.Requests[1].Seller)
	})

	s.Run("empty history renders as an array", func() {
		s.service.EXPECT().GetUserTransactionHistory(gomock.Any(), s.buyer, 0, 50).Return(nil, nil)
		rr := testutil.DoRequest(s.router,
			testutil.NewRequest(s.T(), http.MethodGet, "/purchases/transactions/"+s.buyer.String()))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.Contains(string(testutil.ReadBody(s.T(), rr)), `"transactions":[]`)
	})

	s.Run("unknown request", func() {
		s.service.EXPECT().GetPurchaseRequest(gomock.Any(), id.RequestID(99)).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "request not found"))
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/purchases/99"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, string(dErrors.CodeNotFound))
	})

	s.Run("land requests", func() {
		s.service.EXPECT().GetLandPurchaseRequests(gomock.Any(), id.LandID(6)).Return(nil, nil)
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/purchases/lands/6"))
		testutil.AssertStatus(s.T(), rr, http.StatusOK)
	})
}
