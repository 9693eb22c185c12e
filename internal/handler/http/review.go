package http

import (
	"net/http"

	"github.com/MKhiriev/go-tyre-shop/internal/utils"
	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/go-chi/chi/v5"
)

var reviewResource = resource{
	invalid:  "Name, rating, comment, and tyre are required",
	notFound: "Review not found",
}

const invalidApprovalMessage = "Approved field must be true or false"

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in models.ReviewInput
	if err := h.decodeJSON(w, r, &in); err != nil {
		h.writeError(w, r, err, reviewResource)
		return
	}

	review, err := h.services.ReviewService.CreateReview(ctx, in)
	if err != nil {
		h.writeError(w, r, err, reviewResource)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusCreated, "Review created successfully", review)
}

func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.services.ReviewService.ListReviews(r.Context())
	if err != nil {
		h.writeError(w, r, err, reviewResource)
		return
	}

	_ = utils.WriteList(w, "", len(reviews), reviews)
}

func (h *Handler) listTyreReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.services.ReviewService.ListApprovedReviews(r.Context(), chi.URLParam(r, "tyreId"))
	if err != nil {
		h.writeError(w, r, err, reviewResource)
		return
	}

	_ = utils.WriteList(w, "", len(reviews), reviews)
}

func (h *Handler) approveReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var approval models.ReviewApproval
	if err := h.decodeJSON(w, r, &approval); err != nil || approval.Approved == nil {
		_ = utils.WriteError(w, http.StatusBadRequest, invalidApprovalMessage)
		return
	}

	review, err := h.services.ReviewService.SetApproved(ctx, chi.URLParam(r, "id"), approval)
	if err != nil {
		h.writeError(w, r, err, resource{invalid: invalidApprovalMessage, notFound: reviewResource.notFound})
		return
	}

	message := "Review disapproved successfully"
	if review.Approved {
		message = "Review approved successfully"
	}
	_ = utils.WriteSuccess(w, http.StatusOK, message, review)
}

func (h *Handler) deleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.services.ReviewService.DeleteReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err, reviewResource)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, "Review deleted successfully", nil)
}
