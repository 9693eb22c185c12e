package http

import (
	"net/http"

	"github.com/MKhiriev/go-tyre-shop/internal/service"
	"github.com/MKhiriev/go-tyre-shop/internal/utils"
	"github.com/go-chi/chi/v5"
)

// sectionMessages are the success texts of one singleton section.
type sectionMessages struct {
	fetched string
	created string
	updated string
	deleted string
}

// sectionController serves the CRUD routes shared by every singleton
// section. Sections with nested edits register their extra routes next to
// these, see [Handler.Init].
type sectionController[T any] struct {
	h          *Handler
	svc        service.SectionService[T]
	fileFields []string
	res        resource
	messages   sectionMessages

	// upsert makes POST create or replace the section instead of failing on
	// an existing one.
	upsert bool
}

// mount registers GET, POST, PUT and DELETE on r. Only GET is public.
func (c *sectionController[T]) mount(r chi.Router) {
	r.Get("/", c.get)
	r.Group(func(r chi.Router) {
		r.Use(c.h.auth)
		r.Post("/", c.create)
		r.Put("/", c.replace)
		r.Delete("/", c.delete)
	})
}

func (c *sectionController[T]) get(w http.ResponseWriter, r *http.Request) {
	body, err := c.svc.Get(r.Context())
	if err != nil {
		c.h.writeError(w, r, err, c.res)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, c.messages.fetched, body)
}

func (c *sectionController[T]) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in T
	req, err := c.h.readRequest(w, r, &in, c.fileFields...)
	defer req.cleanup(ctx)
	if err != nil {
		c.h.writeError(w, r, err, c.res)
		return
	}

	write := c.svc.Create
	status := http.StatusCreated
	if c.upsert {
		write = c.svc.Upsert
		status = http.StatusOK
	}

	body, err := write(ctx, in, req.uploads)
	if err != nil {
		c.h.writeError(w, r, err, c.res)
		return
	}

	_ = utils.WriteSuccess(w, status, c.messages.created, body)
}

func (c *sectionController[T]) replace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in T
	req, err := c.h.readRequest(w, r, &in, c.fileFields...)
	defer req.cleanup(ctx)
	if err != nil {
		c.h.writeError(w, r, err, c.res)
		return
	}

	body, err := c.svc.Replace(ctx, in, req.uploads)
	if err != nil {
		c.h.writeError(w, r, err, c.res)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, c.messages.updated, body)
}

func (c *sectionController[T]) delete(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.Delete(r.Context()); err != nil {
		c.h.writeError(w, r, err, c.res)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, c.messages.deleted, nil)
}

// writeSection answers a nested edit with the whole updated section.
func writeSection[T any](h *Handler, w http.ResponseWriter, r *http.Request, status int, message string, body T, err error, res resource) {
	if err != nil {
		h.writeError(w, r, err, res)
		return
	}
	_ = utils.WriteSuccess(w, status, message, body)
}
