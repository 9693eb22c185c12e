package http

import (
	"net/http"

	"github.com/MKhiriev/go-tyre-shop/models"
)

var journeyResource = resource{
	invalid:  "Journey must contain at least one milestone.",
	notFound: "Journey not found.",
}

var milestoneResource = resource{
	invalid:  "Both year and event are required.",
	notFound: journeyResource.notFound,
}

func (h *Handler) addMilestone(w http.ResponseWriter, r *http.Request) {
	var milestone models.Milestone
	if err := h.decodeJSON(w, r, &milestone); err != nil {
		h.writeError(w, r, err, milestoneResource)
		return
	}

	journey, err := h.services.JourneyService.AddMilestone(r.Context(), milestone)
	writeSection(h, w, r, http.StatusCreated, "Milestone added successfully.", journey, err, milestoneResource)
}

func (h *Handler) updateMilestone(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		h.writeError(w, r, err, milestoneResource)
		return
	}

	var milestone models.Milestone
	if err = h.decodeJSON(w, r, &milestone); err != nil {
		h.writeError(w, r, err, milestoneResource)
		return
	}

	journey, err := h.services.JourneyService.UpdateMilestone(r.Context(), index, milestone)
	writeSection(h, w, r, http.StatusOK, "Milestone updated successfully.", journey, err, milestoneResource)
}

func (h *Handler) deleteMilestone(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		h.writeError(w, r, err, milestoneResource)
		return
	}

	journey, err := h.services.JourneyService.DeleteMilestone(r.Context(), index)
	writeSection(h, w, r, http.StatusOK, "Milestone deleted successfully.", journey, err, milestoneResource)
}
