package funds

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/platform/httputil"
	"landregistry/pkg/requestcontext"
)

type Accounts interface {
	Deposit(ctx context.Context, account id.AccountID, amount int64) error
	Balance(ctx context.Context, account id.AccountID) (int64, error)
}

type DepositRequest struct {
	Amount int64 `json:"amount"`
}

func (r *DepositRequest) Validate() error {
	if r.Amount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "amount must be greater than zero")
	}
	return nil
}

type BalanceResponse struct {
	Account string `json:"account"`
	Balance int64  `json:"balance"`
}

type Handler struct {
	accounts Accounts
	logger   *slog.Logger
}

func NewHandler(accounts Accounts, logger *slog.Logger) *Handler {
	return &Handler{accounts: accounts, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/funds/{account}", func(r chi.Router) {
		r.Get("/", h.HandleBalance)
		r.Post("/deposits", h.HandleDeposit)
	})
}

func (h *Handler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	account, err := id.ParseAccountID(chi.URLParam(r, "account"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	balance, err := h.accounts.Balance(ctx, account)
	if err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, requestcontext.RequestID(ctx), "read balance failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BalanceResponse{Account: account.String(), Balance: balance})
}

func (h *Handler) HandleDeposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	account, err := id.ParseAccountID(chi.URLParam(r, "account"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[DepositRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.accounts.Deposit(ctx, account, req.Amount); err != nil {
		httputil.LogAndWriteError(ctx, h.logger, w, requestcontext.RequestID(ctx), "deposit failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
