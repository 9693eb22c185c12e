package http

import (
	"net/http"

	"github.com/MKhiriev/go-tyre-shop/models"
)

// Multipart fields of the hero section.
const (
	heroImageField        = "image"
	heroFeatureIconsField = "featureIcons"
	heroFeatureIconField  = "icon"
)

var heroResource = resource{
	invalid:  "Title, subtitle, and image file are required.",
	notFound: "Hero section not found.",
	exists:   "Hero section already exists. Use update instead.",
}

var heroFeatureResource = resource{
	invalid:  "Icon file, title, and description are required.",
	notFound: heroResource.notFound,
}

func (h *Handler) addHeroFeature(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var feature models.IconCard
	req, err := h.readRequest(w, r, &feature, heroFeatureIconField)
	defer req.cleanup(ctx)
	if err != nil {
		h.writeError(w, r, err, heroFeatureResource)
		return
	}

	hero, err := h.services.HeroService.AddFeature(ctx, feature, req.uploads.First(heroFeatureIconField))
	writeSection(h, w, r, http.StatusCreated, "Feature added successfully.", hero, err, heroFeatureResource)
}

func (h *Handler) updateHeroFeature(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	index, err := intParam(r, "index")
	if err != nil {
		h.writeError(w, r, err, heroFeatureResource)
		return
	}

	var feature models.IconCard
	req, err := h.readRequest(w, r, &feature, heroFeatureIconField)
	defer req.cleanup(ctx)
	if err != nil {
		h.writeError(w, r, err, heroFeatureResource)
		return
	}

	hero, err := h.services.HeroService.UpdateFeature(ctx, index, feature, req.uploads.First(heroFeatureIconField))
	writeSection(h, w, r, http.StatusOK, "Feature updated successfully.", hero, err, heroFeatureResource)
}

func (h *Handler) deleteHeroFeature(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		h.writeError(w, r, err, heroFeatureResource)
		return
	}

	hero, err := h.services.HeroService.DeleteFeature(r.Context(), index)
	writeSection(h, w, r, http.StatusOK, "Feature deleted successfully.", hero, err, heroFeatureResource)
}
