package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/utils"
)

const (
	// accessTokenCookie is set on login and read first by the auth gate.
	accessTokenCookie = "AccessToken"

	noTokenMessage      = "Unauthorized: No token provided"
	invalidTokenMessage = "Invalid or expired token"
)

// auth is the gate in front of every administrative route.
//
// The token is taken from the AccessToken cookie and, failing that, from a
// bearer "Authorization" header. The gate answers 401 when:
//   - neither source carries a token ("Unauthorized: No token provided");
//   - the token is malformed, expired, signed with another key, or its
//     subject is no longer a user ("Invalid or expired token"). The cookie is
//     cleared in that case so that browsers stop sending it.
//
// On success the caller's [models.Identity] is stored in the request
// context, see [utils.GetIdentityFromContext].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := tokenFromRequest(r)
		if err != nil {
			if errors.Is(err, ErrNoToken) {
				log.Debug().Str("func", "*Handler.auth").Msg("no token provided")
				_ = utils.WriteError(w, http.StatusUnauthorized, noTokenMessage)
				return
			}
			h.rejectToken(w, r, err)
			return
		}

		ctx := r.Context()
		identity, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			h.rejectToken(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(ctx, identity)))
	})
}

func (h *Handler) rejectToken(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromRequest(r).Debug().Err(err).Str("func", "*Handler.auth").Msg("token rejected")
	h.clearAccessCookie(w)
	_ = utils.WriteError(w, http.StatusUnauthorized, invalidTokenMessage)
}

// tokenFromRequest prefers the cookie over the header. A header that is
// present but not a bearer credential counts as an invalid token, not as a
// missing one.
func tokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrNoToken
	}

	return utils.ParseBearerToken(header)
}

func (h *Handler) setAccessCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenDuration.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearAccessCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
