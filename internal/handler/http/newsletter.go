package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-tyre-shop/internal/utils"
	"github.com/MKhiriev/go-tyre-shop/models"
)

var newsletterResource = resource{
	invalid:  "Title, subtitle, and button text are required",
	notFound: "Newsletter not found",
	exists:   "Newsletter already exists. Use update instead.",
}

var subscriberResource = resource{
	invalid:  "A valid email address is required",
	notFound: "Subscriber not found",
	exists:   "This email is already subscribed",
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscribeRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err, subscriberResource)
		return
	}

	subscriber, err := h.services.NewsletterService.Subscribe(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, subscriberResource)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusCreated, "Subscription successful", subscriber)
}

func (h *Handler) listSubscribers(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.services.NewsletterService.ListSubscribers(r.Context())
	if err != nil {
		h.writeError(w, r, err, subscriberResource)
		return
	}

	_ = utils.WriteList(w, "", len(subscribers), subscribers)
}

func (h *Handler) unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscribeRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err, subscriberResource)
		return
	}

	if err := h.services.NewsletterService.Unsubscribe(r.Context(), req); err != nil {
		h.writeError(w, r, err, subscriberResource)
		return
	}

	req.Normalize()
	_ = utils.WriteSuccess(w, http.StatusOK, fmt.Sprintf("Subscriber with email %s removed successfully", req.Email), nil)
}
