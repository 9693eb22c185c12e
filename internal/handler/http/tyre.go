package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-tyre-shop/internal/utils"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// Multipart fields of the tyre images.
const (
	tyreCreateImageField = "product_img"
	tyreUpdateImageField = "tyre_img"
)

var tyreResource = resource{
	invalid:  "Please provide all required fields",
	notFound: "Tyre not found",
	exists:   "Tyre with this slug already exists",
}

func (h *Handler) createTyre(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in models.TyreInput
	body, err := h.readRequest(w, r, &in, tyreCreateImageField)
	defer body.cleanup(ctx)
	if err != nil {
		h.writeError(w, r, err, tyreResource)
		return
	}

	tyre, err := h.services.TyreService.CreateTyre(ctx, in, body.uploads[tyreCreateImageField])
	if err != nil {
		h.writeError(w, r, err, tyreResource)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusCreated, "Tyre created successfully", tyre)
}

func (h *Handler) listTyres(w http.ResponseWriter, r *http.Request) {
	filter, err := tyreFilterFromQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err, tyreResource)
		return
	}

	tyres, total, err := h.services.TyreService.ListTyres(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err, tyreResource)
		return
	}

	_ = utils.WriteList(w, "", int(total), tyres)
}

func (h *Handler) getTyre(w http.ResponseWriter, r *http.Request) {
	tyre, err := h.services.TyreService.GetTyre(r.Context(), chi.URLParam(r, "idOrSlug"))
	if err != nil {
		h.writeError(w, r, err, tyreResource)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, "", tyre)
}

func (h *Handler) updateTyre(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var update models.TyreUpdate
	body, err := h.readRequest(w, r, &update, tyreUpdateImageField)
	defer body.cleanup(ctx)
	if err != nil {
		h.writeError(w, r, err, tyreResource)
		return
	}
	update.ID = chi.URLParam(r, "id")

	tyre, err := h.services.TyreService.UpdateTyre(ctx, update, body.uploads[tyreUpdateImageField])
	if err != nil {
		h.writeError(w, r, err, tyreResource)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, "Tyre updated successfully", tyre)
}

func (h *Handler) deleteTyre(w http.ResponseWriter, r *http.Request) {
	if err := h.services.TyreService.DeleteTyre(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err, tyreResource)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, "Tyre deleted successfully", nil)
}

// tyreFilterFromQuery reads the listing filters. Unknown parameters are
// ignored; malformed numbers are reported as a validation failure.
func tyreFilterFromQuery(query url.Values) (models.TyreFilter, error) {
	filter := models.TyreFilter{
		Brand:    strings.TrimSpace(query.Get("brand")),
		Category: models.Category(strings.TrimSpace(query.Get("category"))),
	}
	var verr validators.ValidationError

	if v := query.Get("popular"); v != "" {
		popular, err := strconv.ParseBool(v)
		if err != nil {
			verr.Fields = append(verr.Fields, validators.FieldError{Field: "popular", Rule: "boolean"})
		} else {
			filter.Popular = &popular
		}
	}

	for name, target := range map[string]**decimal.Decimal{"minPrice": &filter.MinPrice, "maxPrice": &filter.MaxPrice} {
		v := query.Get(name)
		if v == "" {
			continue
		}
		price, err := decimal.NewFromString(v)
		if err != nil {
			verr.Fields = append(verr.Fields, validators.FieldError{Field: name, Rule: "number"})
			continue
		}
		*target = &price
	}

	for name, target := range map[string]*uint64{"page": &filter.Page, "limit": &filter.Limit} {
		v := query.Get(name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			verr.Fields = append(verr.Fields, validators.FieldError{Field: name, Rule: "number"})
			continue
		}
		*target = n
	}

	if len(verr.Fields) > 0 {
		return models.TyreFilter{}, &verr
	}
	return filter, nil
}
