package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"landregistry/internal/transfer/models"
	id "landregistry/pkg/domain"
	"landregistry/pkg/platform/httputil"
	"landregistry/pkg/requestcontext"
)

// Service is the purchase workflow surface exposed over HTTP.
type Service interface {
	CreatePurchaseRequest(ctx context.Context, landID id.LandID) (*models.PurchaseRequest, error)
	ProcessPurchaseRequest(ctx context.Context, requestID id.RequestID, approve bool) error
	BatchProcessRequests(ctx context.Context, requestIDs []id.RequestID, decisions []bool) error
	MakePayment(ctx context.Context, requestID id.RequestID, amount int64) (*models.PurchaseRequest, error)
	TransferLandOwnership(ctx context.Context, requestID id.RequestID, newDocHash string) error

	GetPurchaseRequest(ctx context.Context, requestID id.RequestID) (*models.PurchaseRequest, error)
	GetUserPurchaseRequests(ctx context.Context, buyer id.AccountID, offset, limit int) ([]*models.PurchaseRequest, error)
	GetLandPurchaseRequests(ctx context.Context, landID id.LandID) ([]*models.PurchaseRequest, error)
	GetUserTransactionHistory(ctx context.Context, account id.AccountID, offset, limit int) ([]models.Transaction, error)
}

// Handler wires purchase endpoints to the transfer engine.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts purchase endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/purchases", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Post("/decisions", h.HandleBatchDecision)
		r.Get("/buyers/{account}", h.HandleBuyerRequests)
		r.Get("/lands/{landID}", h.HandleLandRequests)
		r.Get("/transactions/{account}", h.HandleTransactions)

		r.Get("/{requestID}", h.HandleGet)
		r.Post("/{requestID}/decision", h.HandleDecision)
		r.Post("/{requestID}/payment", h.HandlePayment)
		r.Post("/{requestID}/finalize", h.HandleFinalize)
	})
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	created, err := h.service.CreatePurchaseRequest(ctx, req.LandID)
	if err != nil {
		h.fail(ctx, w, "create purchase request failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	requestID, ok := h.requestParam(w, r)
	if !ok {
		return
	}
	req, err := h.service.GetPurchaseRequest(r.Context(), requestID)
	if err != nil {
		h.fail(r.Context(), w, "get purchase request failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) HandleDecision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, ok := h.requestParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[DecisionRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.ProcessPurchaseRequest(ctx, requestID, *req.Approve); err != nil {
		h.fail(ctx, w, "process purchase request failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleBatchDecision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[BatchDecisionRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.BatchProcessRequests(ctx, req.RequestIDs, req.Decisions); err != nil {
		h.fail(ctx, w, "batch process failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandlePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, ok := h.requestParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[PaymentRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	done, err := h.service.MakePayment(ctx, requestID, req.Amount)
	if err != nil {
		h.fail(ctx, w, "make payment failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, done)
}

func (h *Handler) HandleFinalize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, ok := h.requestParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[FinalizeRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.TransferLandOwnership(ctx, requestID, req.DocumentHash); err != nil {
		h.fail(ctx, w, "finalize purchase failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleBuyerRequests(w http.ResponseWriter, r *http.Request) {
	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}
	offset, limit, err := httputil.PageParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reqs, err := h.service.GetUserPurchaseRequests(r.Context(), account, offset, limit)
	if err != nil {
		h.fail(r.Context(), w, "list purchase requests failed", err)
		return
	}
	if reqs == nil {
		reqs = []*models.PurchaseRequest{}
	}
	httputil.WriteJSON(w, http.StatusOK, RequestsResponse{Offset: offset, Requests: reqs})
}

func (h *Handler) HandleLandRequests(w http.ResponseWriter, r *http.Request) {
	landID, err := id.ParseLandID(chi.URLParam(r, "landID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reqs, err := h.service.GetLandPurchaseRequests(r.Context(), landID)
	if err != nil {
		h.fail(r.Context(), w, "list land purchase requests failed", err)
		return
	}
	if reqs == nil {
		reqs = []*models.PurchaseRequest{}
	}
	httputil.WriteJSON(w, http.StatusOK, RequestsResponse{Requests: reqs})
}

func (h *Handler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}
	offset, limit, err := httputil.PageParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	txs, err := h.service.GetUserTransactionHistory(r.Context(), account, offset, limit)
	if err != nil {
		h.fail(r.Context(), w, "list transactions failed", err)
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	httputil.WriteJSON(w, http.StatusOK, TransactionsResponse{Offset: offset, Transactions: txs})
}

func (h *Handler) requestParam(w http.ResponseWriter, r *http.Request) (id.RequestID, bool) {
	requestID, err := id.ParseRequestID(chi.URLParam(r, "requestID"))
	if err != nil {
		httputil.WriteError(w, err)
		return 0, false
	}
	return requestID, true
}

func (h *Handler) accountParam(w http.ResponseWriter, r *http.Request) (id.AccountID, bool) {
	account, err := id.ParseAccountID(chi.URLParam(r, "account"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.NilAccount, false
	}
	return account, true
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	httputil.LogAndWriteError(ctx, h.logger, w, requestcontext.RequestID(ctx), msg, err)
}
