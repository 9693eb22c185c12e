package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-tyre-shop/internal/utils"
	"github.com/MKhiriev/go-tyre-shop/models"
)

func growthResource(year int) resource {
	return resource{
		invalid:  "Year and growth are required.",
		notFound: fmt.Sprintf("No growth record found for year %d.", year),
		exists:   fmt.Sprintf("Growth record for year %d already exists.", year),
	}
}

func (h *Handler) createGrowth(w http.ResponseWriter, r *http.Request) {
	var growth models.Growth
	if err := h.decodeJSON(w, r, &growth); err != nil {
		h.writeError(w, r, err, growthResource(0))
		return
	}

	created, err := h.services.GrowthService.CreateGrowth(r.Context(), growth)
	if err != nil {
		h.writeError(w, r, err, growthResource(growth.Year))
		return
	}

	_ = utils.WriteSuccess(w, http.StatusCreated, "Growth record created successfully.", created)
}

func (h *Handler) listGrowth(w http.ResponseWriter, r *http.Request) {
	records, err := h.services.GrowthService.ListGrowth(r.Context())
	if err != nil {
		h.writeError(w, r, err, resource{})
		return
	}

	_ = utils.WriteList(w, "", len(records), records)
}

func (h *Handler) getGrowth(w http.ResponseWriter, r *http.Request) {
	year, err := intParam(r, "year")
	if err != nil {
		h.writeError(w, r, err, resource{})
		return
	}

	record, err := h.services.GrowthService.GetGrowth(r.Context(), year)
	if err != nil {
		h.writeError(w, r, err, growthResource(year))
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, "", record)
}

func (h *Handler) updateGrowth(w http.ResponseWriter, r *http.Request) {
	year, err := intParam(r, "year")
	if err != nil {
		h.writeError(w, r, err, resource{})
		return
	}

	var req struct {
		Growth *float64 `json:"growth"`
	}
	if err = h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err, resource{})
		return
	}
	if req.Growth == nil {
		_ = utils.WriteError(w, http.StatusBadRequest, "Growth value is required.")
		return
	}

	record, err := h.services.GrowthService.UpdateGrowth(r.Context(), year, *req.Growth)
	if err != nil {
		h.writeError(w, r, err, growthResource(year))
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, fmt.Sprintf("Growth record for year %d updated successfully.", year), record)
}

func (h *Handler) deleteGrowth(w http.ResponseWriter, r *http.Request) {
	year, err := intParam(r, "year")
	if err != nil {
		h.writeError(w, r, err, resource{})
		return
	}

	if err = h.services.GrowthService.DeleteGrowth(r.Context(), year); err != nil {
		h.writeError(w, r, err, growthResource(year))
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, fmt.Sprintf("Growth record for year %d deleted successfully.", year), nil)
}

func (h *Handler) deleteAllGrowth(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.services.GrowthService.DeleteAllGrowth(r.Context())
	if err != nil {
		h.writeError(w, r, err, resource{})
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, "All growth records deleted successfully.", map[string]int64{"deleted": deleted})
}
