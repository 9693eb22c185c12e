package http

import (
	"net/http"

	"github.com/MKhiriev/go-tyre-shop/internal/utils"
	"github.com/MKhiriev/go-tyre-shop/models"
)

var contactResource = resource{invalid: "All fields are required."}

// sendContact mails the general contact form to the shop. Unlike enquiries,
// a failed send fails the request.
func (h *Handler) sendContact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err, contactResource)
		return
	}

	if err := h.services.ContactService.SendContact(r.Context(), req); err != nil {
		h.writeError(w, r, err, contactResource)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, "Email sent successfully.", nil)
}
