package http

import (
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
	"github.com/vncsmyrnk/mysite/internal/core/services"
)

type AuthHandler struct {
	authService  ports.AuthService
	cookieDomain string
	cookieSecure bool
}

func NewAuthHandler(authService ports.AuthService, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieDomain: cookieDomain,
		cookieSecure: cookieSecure,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login accepts JSON or form credentials, sets the access token cookie and
// returns the token for clients that prefer the Authorization header.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "failed to parse form")
			return
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	accessToken, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			log.WithField("username", req.Username).Info("login failed")
		}
		writeServiceError(w, r, err)
		return
	}

	h.setAccessTokenCookie(w, accessToken)
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: accessToken})
}

// Logout expires the cookie and, for an authenticated caller, revokes the
// tokens issued so far so a copied bearer token stops working too.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if actor, ok := ActorFrom(r.Context()); ok {
		if err := h.authService.Logout(r.Context(), actor); err != nil {
			writeServiceError(w, r, err)
			return
		}
	}
	h.expireCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHandler) setAccessTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		Domain:   h.cookieDomain,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(services.AccessTokenTTL.Seconds()),
	})
}

func (h *AuthHandler) expireCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: accessTokenCookie, MaxAge: -1, Path: "/", Domain: h.cookieDomain})
}
