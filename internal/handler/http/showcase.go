package http

import (
	"net/http"

	"github.com/MKhiriev/go-tyre-shop/internal/service"
	"github.com/MKhiriev/go-tyre-shop/internal/utils"
	"github.com/go-chi/chi/v5"
)

type showcaseMessages struct {
	created string
	updated string
	deleted string
}

// showcaseController serves the CRUD routes of one image-card collection.
// Every write accepts the card image in imageField.
type showcaseController[T any] struct {
	h          *Handler
	svc        service.ShowcaseService[T]
	imageField string
	res        resource
	messages   showcaseMessages

	// newItem returns the value a create request is decoded over, so that
	// absent fields keep their defaults. Nil means the zero value.
	newItem func() T
}

func (c *showcaseController[T]) mount(r chi.Router) {
	r.Get("/", c.list)
	r.Get("/{id}", c.get)
	r.Group(func(r chi.Router) {
		r.Use(c.h.auth)
		r.Post("/", c.create)
		r.Put("/{id}", c.update)
		r.Patch("/{id}", c.update)
		r.Delete("/{id}", c.delete)
	})
}

func (c *showcaseController[T]) list(w http.ResponseWriter, r *http.Request) {
	items, err := c.svc.List(r.Context())
	if err != nil {
		c.h.writeError(w, r, err, c.res)
		return
	}

	_ = utils.WriteList(w, "", len(items), items)
}

func (c *showcaseController[T]) get(w http.ResponseWriter, r *http.Request) {
	item, err := c.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.h.writeError(w, r, err, c.res)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, "", item)
}

func (c *showcaseController[T]) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var item T
	if c.newItem != nil {
		item = c.newItem()
	}
	req, err := c.h.readRequest(w, r, &item, c.imageField)
	defer req.cleanup(ctx)
	if err != nil {
		c.h.writeError(w, r, err, c.res)
		return
	}

	created, err := c.svc.Create(ctx, item, req.uploads.First(c.imageField))
	if err != nil {
		c.h.writeError(w, r, err, c.res)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusCreated, c.messages.created, created)
}

// update sends the decoded document as a patch: only the fields the client
// sent replace stored ones.
func (c *showcaseController[T]) update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var probe T
	req, err := c.h.readRequest(w, r, &probe, c.imageField)
	defer req.cleanup(ctx)
	if err != nil {
		c.h.writeError(w, r, err, c.res)
		return
	}

	updated, err := c.svc.Update(ctx, chi.URLParam(r, "id"), req.raw, req.uploads.First(c.imageField))
	if err != nil {
		c.h.writeError(w, r, err, c.res)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, c.messages.updated, updated)
}

func (c *showcaseController[T]) delete(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		c.h.writeError(w, r, err, c.res)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, c.messages.deleted, nil)
}
