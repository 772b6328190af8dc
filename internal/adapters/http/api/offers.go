package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/setterboard/internal/app"
	"github.com/okian/setterboard/internal/domain/model"
)

// maxOfferBody bounds offer uploads.
const maxOfferBody = 1 << 20

// OfferDependencies defines the interface for offer management.
type OfferDependencies interface {
	SaveOffer(ctx context.Context, o model.Offer) (model.Offer, error)
	GetOffer(ctx context.Context, id string) (model.Offer, error)
	ListOffers(ctx context.Context) ([]model.Offer, error)
	DeleteOffer(ctx context.Context, id string) error
	LoadDemo(ctx context.Context) (model.Offer, error)
}

// OffersHandler handles offer requests.
type OffersHandler struct {
	deps OfferDependencies
}

// NewOffersHandler creates a new offers handler.
func NewOffersHandler(deps OfferDependencies) *OffersHandler {
	return &OffersHandler{deps: deps}
}

// HandleList handles GET /offers requests.
func (h *OffersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_offers"
	offers, err := h.deps.ListOffers(r.Context())
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	views := make([]model.Offer, len(offers))
	for i, o := range offers {
		views[i] = maskOffer(o)
	}
	writeJSON(w, http.StatusOK, views)
}

// HandleSave handles POST /offers requests. A body with an existing id
// replaces that offer.
func (h *OffersHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	const op = "api.save_offer"
	var req model.Offer
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxOfferBody)).Decode(&req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	// Echoing a masked key back keeps the stored one. A mask with nothing
	// stored behind it is never saved as a key.
	if isMasked(req.APIKey) {
		if req.ID == "" {
			writeFailure(w, WrapKind(op, ErrBadRequest, errMaskedKey))
			return
		}
		cur, err := h.deps.GetOffer(r.Context(), req.ID)
		switch {
		case errors.Is(err, service.ErrNotFound):
			writeFailure(w, WrapKind(op, ErrBadRequest, errMaskedKey))
			return
		case err != nil:
			writeFailure(w, Wrap(op, err))
			return
		}
		req.APIKey = cur.APIKey
	}
	saved, err := h.deps.SaveOffer(r.Context(), req)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, maskOffer(saved))
}

// HandleLoadDemo handles POST /offers/demo requests.
func (h *OffersHandler) HandleLoadDemo(w http.ResponseWriter, r *http.Request) {
	const op = "api.load_demo"
	o, err := h.deps.LoadDemo(r.Context())
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, maskOffer(o))
}

// HandleGet handles GET /offers/{id} requests.
func (h *OffersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_offer"
	o, err := h.deps.GetOffer(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, maskOffer(o))
}

// HandleDelete handles DELETE /offers/{id} requests.
func (h *OffersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_offer"
	if err := h.deps.DeleteOffer(r.Context(), r.PathValue("id")); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
