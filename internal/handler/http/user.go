package http

import (
	"net/http"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/utils"
	"github.com/MKhiriev/go-tyre-shop/models"
	"github.com/go-chi/chi/v5"
)

var userResource = resource{
	invalid:  "Please provide all required fields",
	notFound: "User not found",
	exists:   "User already exists",
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.RegisterRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err, userResource)
		return
	}

	user, err := h.services.AuthService.RegisterUser(ctx, req)
	if err != nil {
		h.writeError(w, r, err, userResource)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusCreated, "User registered successfully", user)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err, userResource)
		return
	}

	user, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		h.writeError(w, r, err, userResource)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		h.writeError(w, r, err, userResource)
		return
	}

	log.Debug().Str("user_id", user.UserID).Msg("user logged in")

	h.setAccessCookie(w, token.SignedString)
	_ = utils.WriteSuccess(w, http.StatusOK, "Login successful", models.LoginResponse{User: user, Token: token.SignedString})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.clearAccessCookie(w)
	_ = utils.WriteSuccess(w, http.StatusOK, "User logged out successfully", nil)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := utils.GetIdentityFromContext(ctx)

	user, err := h.services.UserService.GetUser(ctx, identity.ID)
	if err != nil {
		h.writeError(w, r, err, userResource)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, "", user)
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, _ := utils.GetIdentityFromContext(ctx)

	var update models.UserUpdate
	if err := h.decodeJSON(w, r, &update); err != nil {
		h.writeError(w, r, err, userResource)
		return
	}

	user, err := h.services.UserService.UpdateUser(ctx, identity.ID, update)
	if err != nil {
		h.writeError(w, r, err, userResource)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, "Profile updated successfully", user)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.services.UserService.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err, userResource)
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, "User deleted successfully", nil)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.services.UserService.Dashboard(r.Context())
	if err != nil {
		h.writeError(w, r, err, resource{})
		return
	}

	_ = utils.WriteSuccess(w, http.StatusOK, "Dashboard data fetched successfully", dashboard)
}
