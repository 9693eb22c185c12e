package http

import (
	"net/http"

	"github.com/MKhiriev/go-tyre-shop/internal/utils"
	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/go-chi/chi/v5"
)

var enquiryResource = resource{
	invalid:  "Please fill all fields",
	notFound: "Enquiry not found",
}

// createEnquiry stores a question about the tyre in the path. The receipt
// mail is sent by the service once the enquiry is committed; a failed send
// does not fail the request.
func (h *Handler) createEnquiry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in models.EnquiryInput
	if err := h.decodeJSON(w, r, &in); err != nil {
		h.writeError(w, r, err, enquiryResource)
		return
	}
	in.TyreID = chi.URLParam(r, "id")

	enquiry, err := h.services.EnquiryService.CreateEnquiry(ctx, in)
	if err != nil {
		h.writeError(w, r, err, enquiryResource)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusCreated, "Query created and email sent successfully", enquiry)
}

func (h *Handler) listEnquiries(w http.ResponseWriter, r *http.Request) {
	enquiries, err := h.services.EnquiryService.ListEnquiries(r.Context())
	if err != nil {
		h.writeError(w, r, err, enquiryResource)
		return
	}

	_ = utils.WriteList(w, "", len(enquiries), enquiries)
}

func (h *Handler) deleteEnquiry(w http.ResponseWriter, r *http.Request) {
	if err := h.services.EnquiryService.DeleteEnquiry(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err, enquiryResource)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, "Enquiry deleted successfully", nil)
}
