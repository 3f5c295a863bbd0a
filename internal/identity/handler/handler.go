package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"landregistry/internal/identity/models"
	id "landregistry/pkg/domain"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/platform/httputil"
	"landregistry/pkg/requestcontext"
)

// Service is the identity registry surface exposed over HTTP.
type Service interface {
	RegisterUser(ctx context.Context, req models.RegisterUserRequest) (*models.User, error)
	VerifyUser(ctx context.Context, account id.AccountID) error
	BatchVerifyUsers(ctx context.Context, accounts []id.AccountID) (int, error)
	AssignRole(ctx context.Context, account id.AccountID, role id.Role) error
	RevokeRole(ctx context.Context, account id.AccountID, role id.Role) error
	AddInspector(ctx context.Context, req models.AddInspectorRequest) (*models.Inspector, error)
	RemoveInspector(ctx context.Context, account id.AccountID) error
	Pause(ctx context.Context) error
	Unpause(ctx context.Context) error
	TransferOwnership(ctx context.Context, newOwner id.AccountID) error

	GetUser(ctx context.Context, account id.AccountID) (*models.User, error)
	GetVerificationStatus(ctx context.Context, account id.AccountID) (models.VerificationStatus, error)
	GetRoles(ctx context.Context, account id.AccountID) ([]id.Role, error)
	GetInspector(ctx context.Context, inspectorID id.InspectorID) (*models.Inspector, error)
	ListInspectors(ctx context.Context) ([]*models.Inspector, error)
	Owner(ctx context.Context) (id.AccountID, error)
	IsPaused(ctx context.Context) (bool, error)
}

// Handler wires identity endpoints to the identity service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts identity endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/identity", func(r chi.Router) {
		r.Post("/users", h.HandleRegisterUser)
		r.Post("/users/verify", h.HandleBatchVerify)
		r.Get("/users/{account}", h.HandleGetUser)
		r.Get("/users/{account}/status", h.HandleGetStatus)
		r.Post("/users/{account}/verify", h.HandleVerifyUser)

		r.Get("/accounts/{account}/roles", h.HandleGetRoles)
		r.Put("/accounts/{account}/roles/{role}", h.HandleAssignRole)
		r.Delete("/accounts/{account}/roles/{role}", h.HandleRevokeRole)

		r.Get("/inspectors", h.HandleListInspectors)
		r.Post("/inspectors", h.HandleAddInspector)
		r.Get("/inspectors/{inspectorID}", h.HandleGetInspector)
		r.Delete("/inspectors/{account}", h.HandleRemoveInspector)

		r.Get("/settings", h.HandleGetSettings)
		r.Post("/pause", h.HandlePause)
		r.Post("/unpause", h.HandleUnpause)
		r.Put("/owner", h.HandleTransferOwnership)
	})
}

func (h *Handler) HandleRegisterUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[RegisterUserRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	user, err := h.service.RegisterUser(ctx, req.toModel())
	if err != nil {
		h.fail(ctx, w, "register user failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *Handler) HandleVerifyUser(w http.ResponseWriter, r *http.Request) {
	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}
	if err := h.service.VerifyUser(r.Context(), account); err != nil {
		h.fail(r.Context(), w, "verify user failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleBatchVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[BatchVerifyRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	n, err := h.service.BatchVerifyUsers(ctx, req.parsed)
	if err != nil {
		h.fail(ctx, w, "batch verify failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BatchVerifyResponse{Verified: n})
}

func (h *Handler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}
	user, err := h.service.GetUser(r.Context(), account)
	if err != nil {
		h.fail(r.Context(), w, "get user failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}
	status, err := h.service.GetVerificationStatus(r.Context(), account)
	if err != nil {
		h.fail(r.Context(), w, "get verification status failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}

func (h *Handler) HandleGetRoles(w http.ResponseWriter, r *http.Request) {
	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}
	roles, err := h.service.GetRoles(r.Context(), account)
	if err != nil {
		h.fail(r.Context(), w, "get roles failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RolesResponse{Account: account.String(), Roles: roles})
}

func (h *Handler) HandleAssignRole(w http.ResponseWriter, r *http.Request) {
	h.changeRole(w, r, h.service.AssignRole)
}

func (h *Handler) HandleRevokeRole(w http.ResponseWriter, r *http.Request) {
	h.changeRole(w, r, h.service.RevokeRole)
}

func (h *Handler) changeRole(w http.ResponseWriter, r *http.Request, apply func(context.Context, id.AccountID, id.Role) error) {
	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}
	role, err := id.ParseRole(chi.URLParam(r, "role"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := apply(r.Context(), account, role); err != nil {
		h.fail(r.Context(), w, "role change failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleListInspectors(w http.ResponseWriter, r *http.Request) {
	inspectors, err := h.service.ListInspectors(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "list inspectors failed", err)
		return
	}
	out := make([]InspectorResponse, 0, len(inspectors))
	for _, i := range inspectors {
		out = append(out, toInspectorResponse(i))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleAddInspector(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[AddInspectorRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	inspector, err := h.service.AddInspector(ctx, req.toModel())
	if err != nil {
		h.fail(ctx, w, "add inspector failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toInspectorResponse(inspector))
}

func (h *Handler) HandleGetInspector(w http.ResponseWriter, r *http.Request) {
	raw, err := strconv.ParseUint(chi.URLParam(r, "inspectorID"), 10, 64)
	if err != nil || raw == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid inspector id"))
		return
	}
	inspector, err := h.service.GetInspector(r.Context(), id.InspectorID(raw))
	if err != nil {
		h.fail(r.Context(), w, "get inspector failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toInspectorResponse(inspector))
}

func (h *Handler) HandleRemoveInspector(w http.ResponseWriter, r *http.Request) {
	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}
	if err := h.service.RemoveInspector(r.Context(), account); err != nil {
		h.fail(r.Context(), w, "remove inspector failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, err := h.service.Owner(ctx)
	if err != nil {
		h.fail(ctx, w, "get owner failed", err)
		return
	}
	paused, err := h.service.IsPaused(ctx)
	if err != nil {
		h.fail(ctx, w, "get pause state failed", err)
		return
	}
	resp := SettingsResponse{Paused: paused}
	if !owner.IsNil() {
		resp.Owner = owner.String()
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandlePause(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Pause(r.Context()); err != nil {
		h.fail(r.Context(), w, "pause failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleUnpause(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Unpause(r.Context()); err != nil {
		h.fail(r.Context(), w, "unpause failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[TransferOwnershipRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.TransferOwnership(ctx, req.parsed); err != nil {
		h.fail(ctx, w, "transfer ownership failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
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
