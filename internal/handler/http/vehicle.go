package http

import (
	"net/http"

	"github.com/MKhiriev/go-tyre-shop/internal/utils"
	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/go-chi/chi/v5"
)

var vehicleResource = resource{
	invalid:  "Please provide at least one category (car, twoWheeler, or truck).",
	notFound: "Vehicle data not found.",
}

func vehicleCategory(r *http.Request) models.VehicleCategory {
	return models.VehicleCategory(chi.URLParam(r, "category"))
}

func (h *Handler) listVehicleBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.services.VehicleService.ListBrands(r.Context(), vehicleCategory(r))
	if err != nil {
		h.writeError(w, r, err, vehicleResource)
		return
	}

	_ = utils.WriteList(w, "", len(brands), brands)
}

func (h *Handler) addVehicleBrandModel(w http.ResponseWriter, r *http.Request) {
	var in models.BrandModelInput
	res := resource{invalid: "Brand name and at least one model are required.", notFound: "Vehicle data not found. Please create it first."}
	if err := h.decodeJSON(w, r, &in); err != nil {
		h.writeError(w, r, err, res)
		return
	}

	catalog, err := h.services.VehicleService.AddBrandModel(r.Context(), vehicleCategory(r), in)
	writeSection(h, w, r, http.StatusOK, "Brand/model added successfully.", catalog, err, res)
}

func (h *Handler) deleteVehicleBrand(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.services.VehicleService.DeleteBrand(r.Context(), vehicleCategory(r), chi.URLParam(r, "brand"))
	writeSection(h, w, r, http.StatusOK, "Vehicle deleted successfully", catalog, err, vehicleResource)
}

func (h *Handler) deleteVehicleModel(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.services.VehicleService.DeleteModel(r.Context(), vehicleCategory(r), chi.URLParam(r, "brand"), chi.URLParam(r, "model"))
	writeSection(h, w, r, http.StatusOK, "Vehicle deleted successfully", catalog, err, vehicleResource)
}
