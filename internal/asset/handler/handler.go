package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"landregistry/internal/asset/models"
	id "landregistry/pkg/domain"
	"landregistry/pkg/platform/httputil"
	"landregistry/pkg/requestcontext"
)

// Service is the asset registry surface exposed over HTTP.
type Service interface {
	AddLand(ctx context.Context, req models.AddLandRequest) (*models.Land, error)
	VerifyLand(ctx context.Context, landID id.LandID, approve bool, remark string) error
	PutLandForSale(ctx context.Context, landID id.LandID) error
	TakeLandOffSale(ctx context.Context, landID id.LandID) error
	UpdateLandDetails(ctx context.Context, landID id.LandID, details models.LandDetails) error
	UpdateLandPrice(ctx context.Context, landID id.LandID, price int64) error
	AddLandDocument(ctx context.Context, landID id.LandID, hash, description string) error
	TransferOwnership(ctx context.Context, landID id.LandID, newOwner id.AccountID, newDocHash string) error
	AuthorizeContract(ctx context.Context, account id.AccountID) error
	DeauthorizeContract(ctx context.Context, account id.AccountID) error

	GetLand(ctx context.Context, landID id.LandID) (*models.Land, error)
	GetLandsByOwner(ctx context.Context, owner id.AccountID) ([]id.LandID, error)
	ListLandsForSale(ctx context.Context) ([]*models.Land, error)
	GetTotalLands(ctx context.Context) (int, error)
	GetLandDocuments(ctx context.Context, landID id.LandID) ([]models.Document, error)
	GetLandHistory(ctx context.Context, landID id.LandID, offset, limit int) ([]models.HistoryEntry, error)
	ListAuthorizedContracts(ctx context.Context) ([]id.AccountID, error)
}

// Handler wires land endpoints to the asset service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts land endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/lands", func(r chi.Router) {
		r.Post("/", h.HandleAddLand)
		r.Get("/count", h.HandleCount)
		r.Get("/for-sale", h.HandleListForSale)
		r.Get("/owners/{account}", h.HandleLandsByOwner)

		r.Get("/contracts", h.HandleListContracts)
		r.Put("/contracts/{account}", h.HandleAuthorizeContract)
		r.Delete("/contracts/{account}", h.HandleDeauthorizeContract)

		r.Route("/{landID}", func(r chi.Router) {
			r.Get("/", h.HandleGetLand)
			r.Post("/verify", h.HandleVerifyLand)
			r.Post("/listing", h.HandlePutForSale)
			r.Delete("/listing", h.HandleTakeOffSale)
			r.Put("/details", h.HandleUpdateDetails)
			r.Put("/price", h.HandleUpdatePrice)
			r.Get("/documents", h.HandleGetDocuments)
			r.Post("/documents", h.HandleAddDocument)
			r.Get("/history", h.HandleGetHistory)
			r.Post("/transfer", h.HandleTransfer)
		})
	})
}

func (h *Handler) HandleAddLand(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[AddLandRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	land, err := h.service.AddLand(ctx, req.toModel())
	if err != nil {
		h.fail(ctx, w, "add land failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, land)
}

func (h *Handler) HandleGetLand(w http.ResponseWriter, r *http.Request) {
	landID, ok := h.landParam(w, r)
	if !ok {
		return
	}
	land, err := h.service.GetLand(r.Context(), landID)
	if err != nil {
		h.fail(r.Context(), w, "get land failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, land)
}

func (h *Handler) HandleVerifyLand(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	landID, ok := h.landParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[VerifyLandRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.VerifyLand(ctx, landID, *req.Approve, req.Remark); err != nil {
		h.fail(ctx, w, "verify land failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandlePutForSale(w http.ResponseWriter, r *http.Request) {
	h.landAction(w, r, "list land failed", h.service.PutLandForSale)
}

func (h *Handler) HandleTakeOffSale(w http.ResponseWriter, r *http.Request) {
	h.landAction(w, r, "delist land failed", h.service.TakeLandOffSale)
}

func (h *Handler) landAction(w http.ResponseWriter, r *http.Request, msg string, apply func(context.Context, id.LandID) error) {
	landID, ok := h.landParam(w, r)
	if !ok {
		return
	}
	if err := apply(r.Context(), landID); err != nil {
		h.fail(r.Context(), w, msg, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleUpdateDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	landID, ok := h.landParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateDetailsRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.UpdateLandDetails(ctx, landID, req.toModel()); err != nil {
		h.fail(ctx, w, "update land details failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleUpdatePrice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	landID, ok := h.landParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdatePriceRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.UpdateLandPrice(ctx, landID, req.Price); err != nil {
		h.fail(ctx, w, "update land price failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleGetDocuments(w http.ResponseWriter, r *http.Request) {
	landID, ok := h.landParam(w, r)
	if !ok {
		return
	}
	docs, err := h.service.GetLandDocuments(r.Context(), landID)
	if err != nil {
		h.fail(r.Context(), w, "get documents failed", err)
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}
	httputil.WriteJSON(w, http.StatusOK, DocumentsResponse{LandID: landID, Documents: docs})
}

func (h *Handler) HandleAddDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	landID, ok := h.landParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddDocumentRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.AddLandDocument(ctx, landID, req.Hash, req.Description); err != nil {
		h.fail(ctx, w, "add document failed", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	landID, ok := h.landParam(w, r)
	if !ok {
		return
	}
	offset, limit, err := httputil.PageParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	entries, err := h.service.GetLandHistory(r.Context(), landID, offset, limit)
	if err != nil {
		h.fail(r.Context(), w, "get land history failed", err)
		return
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	httputil.WriteJSON(w, http.StatusOK, HistoryResponse{LandID: landID, Offset: offset, Entries: entries})
}

func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	landID, ok := h.landParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[TransferLandRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.TransferOwnership(ctx, landID, req.parsed, req.DocumentHash); err != nil {
		h.fail(ctx, w, "transfer land failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleCount(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.GetTotalLands(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "count lands failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TotalResponse{Total: total})
}

func (h *Handler) HandleListForSale(w http.ResponseWriter, r *http.Request) {
	lands, err := h.service.ListLandsForSale(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "list lands for sale failed", err)
		return
	}
	if lands == nil {
		lands = []*models.Land{}
	}
	httputil.WriteJSON(w, http.StatusOK, LandsResponse{Lands: lands})
}

func (h *Handler) HandleLandsByOwner(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.accountParam(w, r)
	if !ok {
		return
	}
	ids, err := h.service.GetLandsByOwner(r.Context(), owner)
	if err != nil {
		h.fail(r.Context(), w, "list lands by owner failed", err)
		return
	}
	if ids == nil {
		ids = []id.LandID{}
	}
	httputil.WriteJSON(w, http.StatusOK, LandIDsResponse{Owner: owner.String(), Lands: ids})
}

func (h *Handler) HandleListContracts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListAuthorizedContracts(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "list contracts failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toContractsResponse(accounts))
}

func (h *Handler) HandleAuthorizeContract(w http.ResponseWriter, r *http.Request) {
	h.contractAction(w, r, "authorize contract failed", h.service.AuthorizeContract)
}

func (h *Handler) HandleDeauthorizeContract(w http.ResponseWriter, r *http.Request) {
	h.contractAction(w, r, "deauthorize contract failed", h.service.DeauthorizeContract)
}

func (h *Handler) contractAction(w http.ResponseWriter, r *http.Request, msg string, apply func(context.Context, id.AccountID) error) {
	account, ok := h.accountParam(w, r)
	if !ok {
		return
	}
	if err := apply(r.Context(), account); err != nil {
		h.fail(r.Context(), w, msg, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) landParam(w http.ResponseWriter, r *http.Request) (id.LandID, bool) {
	landID, err := id.ParseLandID(chi.URLParam(r, "landID"))
	if err != nil {
		httputil.WriteError(w, err)
		return 0, false
	}
	return landID, true
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
