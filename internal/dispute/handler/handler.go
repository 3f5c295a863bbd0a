package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"landregistry/internal/dispute/models"
	id "landregistry/pkg/domain"
	"landregistry/pkg/platform/httputil"
	"landregistry/pkg/requestcontext"
)

type Service interface {
	RaiseDispute(ctx context.Context, landID id.LandID, reason string, category models.Category) (*models.Dispute, error)
	ResolveDispute(ctx context.Context, landID id.LandID, disputeID id.DisputeID, resolution string) error
	GetDispute(ctx context.Context, landID id.LandID, disputeID id.DisputeID) (*models.Dispute, error)
	GetLandDisputes(ctx context.Context, landID id.LandID, offset, limit int) ([]*models.Dispute, error)
	CountOpenDisputes(ctx context.Context, landID id.LandID) (int, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts dispute endpoints. Disputes live under their own prefix
// because /lands belongs to the asset handler.
func (h *Handler) Register(r chi.Router) {
	r.Route("/disputes/{landID}", func(r chi.Router) {
		r.Get("/", h.HandleListDisputes)
		r.Post("/", h.HandleRaiseDispute)
		r.Get("/open", h.HandleOpenCount)
		r.Get("/{disputeID}", h.HandleGetDispute)
		r.Post("/{disputeID}/resolve", h.HandleResolveDispute)
	})
}

func (h *Handler) HandleRaiseDispute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	landID, ok := h.landParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RaiseDisputeRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	d, err := h.service.RaiseDispute(ctx, landID, req.Reason, models.Category(req.Category))
	if err != nil {
		h.fail(ctx, w, "raise dispute failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) HandleResolveDispute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	landID, disputeID, ok := h.disputeParams(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ResolveDisputeRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.ResolveDispute(ctx, landID, disputeID, req.Resolution); err != nil {
		h.fail(ctx, w, "resolve dispute failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleGetDispute(w http.ResponseWriter, r *http.Request) {
	landID, disputeID, ok := h.disputeParams(w, r)
	if !ok {
		return
	}
	d, err := h.service.GetDispute(r.Context(), landID, disputeID)
	if err != nil {
		h.fail(r.Context(), w, "get dispute failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) HandleListDisputes(w http.ResponseWriter, r *http.Request) {
	landID, ok := h.landParam(w, r)
	if !ok {
		return
	}
	offset, limit, err := httputil.PageParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	list, err := h.service.GetLandDisputes(r.Context(), landID, offset, limit)
	if err != nil {
		h.fail(r.Context(), w, "list disputes failed", err)
		return
	}
	if list == nil {
		list = []*models.Dispute{}
	}
	httputil.WriteJSON(w, http.StatusOK, DisputesResponse{LandID: landID, Offset: offset, Disputes: list})
}

func (h *Handler) HandleOpenCount(w http.ResponseWriter, r *http.Request) {
	landID, ok := h.landParam(w, r)
	if !ok {
		return
	}
	n, err := h.service.CountOpenDisputes(r.Context(), landID)
	if err != nil {
		h.fail(r.Context(), w, "count disputes failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OpenCountResponse{LandID: landID, Open: n})
}

func (h *Handler) landParam(w http.ResponseWriter, r *http.Request) (id.LandID, bool) {
	landID, err := id.ParseLandID(chi.URLParam(r, "landID"))
	if err != nil {
		httputil.WriteError(w, err)
		return 0, false
	}
	return landID, true
}

func (h *Handler) disputeParams(w http.ResponseWriter, r *http.Request) (id.LandID, id.DisputeID, bool) {
	landID, ok := h.landParam(w, r)
	if !ok {
		return 0, 0, false
	}
	disputeID, err := id.ParseDisputeID(chi.URLParam(r, "disputeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return 0, 0, false
	}
	return landID, disputeID, true
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	httputil.LogAndWriteError(ctx, h.logger, w, requestcontext.RequestID(ctx), msg, err)
}
