package http

import (
	"net/http"

	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/go-chi/chi/v5"
)

var faqResource = resource{
	invalid:  "FAQs must be a non-empty array.",
	notFound: "FAQ data not found.",
	exists:   "FAQ data already exists. Use update instead.",
}

func (h *Handler) addFaqCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string `json:"category"`
	}
	res := resource{invalid: "Category name is required.", notFound: faqResource.notFound}
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err, res)
		return
	}

	faq, err := h.services.FaqService.AddCategory(r.Context(), req.Category)
	writeSection(h, w, r, http.StatusCreated, "Category added successfully.", faq, err, res)
}

func (h *Handler) deleteFaqCategory(w http.ResponseWriter, r *http.Request) {
	faq, err := h.services.FaqService.DeleteCategory(r.Context(), chi.URLParam(r, "category"))
	writeSection(h, w, r, http.StatusOK, "Category deleted successfully.", faq, err, faqResource)
}

func (h *Handler) addFaqQuestion(w http.ResponseWriter, r *http.Request) {
	var item models.FaqItem
	res := resource{invalid: "Question and answer are required.", notFound: faqResource.notFound}
	if err := h.decodeJSON(w, r, &item); err != nil {
		h.writeError(w, r, err, res)
		return
	}

	faq, err := h.services.FaqService.AddQuestion(r.Context(), chi.URLParam(r, "category"), item)
	writeSection(h, w, r, http.StatusCreated, "Question added successfully.", faq, err, res)
}
