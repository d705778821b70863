package httptransport

import (
	"net/http"

	"lizard-economy/internal/app/pets"

	"github.com/go-chi/chi/v5"
)

type PetHandlers struct {
	svc *pets.Service
}

func NewPetHandlers(svc *pets.Service) *PetHandlers {
	return &PetHandlers{svc: svc}
}

func (h *PetHandlers) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := withUserID(w, r)
		if !ok {
			return
		}
		items, err := h.svc.List(r.Context(), userID)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"items": items})
	}
}

func (h *PetHandlers) Eggs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := withUserID(w, r)
		if !ok {
			return
		}
		items, err := h.svc.Eggs(r.Context(), userID)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, map[string]any{"items": items})
	}
}

func (h *PetHandlers) BuyEgg() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := withUserID(w, r)
		if !ok {
			return
		}
		var body struct {
			Type string `json:"type"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		resp, err := h.svc.PurchaseEgg(r.Context(), userID, body.Type)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		metricPurchaseTotal.Add(1)
		writeJSON(w, resp)
	}
}

func (h *PetHandlers) Hatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := withUserID(w, r)
		if !ok {
			return
		}
		eggID, err := pathID(r, "egg_id")
		if err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_egg_id")
			return
		}
		var body struct {
			Name string `json:"name"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		resp, err := h.svc.Hatch(r.Context(), userID, eggID, body.Name)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		metricPetHatchTotal.Add(1)
		writeJSON(w, resp)
	}
}

func (h *PetHandlers) Care() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := withUserID(w, r)
		if !ok {
			return
		}
		petID, err := pathID(r, "pet_id")
		if err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_pet_id")
			return
		}
		resp, err := h.svc.Care(r.Context(), userID, petID, chi.URLParam(r, "action"))
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		writeJSON(w, resp)
	}
}
