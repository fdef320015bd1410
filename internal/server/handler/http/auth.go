package http

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/atinyakov/FleetKeeper/internal/auth"
	"github.com/atinyakov/FleetKeeper/internal/httperr"
	"github.com/atinyakov/FleetKeeper/internal/middleware"
	"github.com/atinyakov/FleetKeeper/internal/models"
	"go.uber.org/zap"
)

// LoginError is the message of every rejected login.
const LoginError = "Incorrect username or password"

// AuthService defines the authentication operations required by AuthHandler.
type AuthService interface {
	// Login verifies the credentials and returns a bearer token.
	Login(ctx context.Context, username, password string) (*models.Token, error)
	// ResolveToken maps a bearer token to its principal.
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// AuthHandler serves the login and identity endpoints.
type AuthHandler struct {
	AuthService AuthService
	Log         *zap.Logger
}

func (h *AuthHandler) logger() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}

// LoginRequest is the login payload, form-encoded or JSON.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token handles POST /token. It accepts application/x-www-form-urlencoded
// or application/json bodies and answers with {access_token, token_type}.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httperr.Write(w, httperr.BadRequest("invalid request body", err.Error()))
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			httperr.Write(w, httperr.BadRequest("invalid form", err.Error()))
			return
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	}

	missing := map[string]string{}
	if req.Username == "" {
		missing["username"] = "This field is required"
	}
	if req.Password == "" {
		missing["password"] = "This field is required"
	}
	if len(missing) > 0 {
		httperr.Write(w, httperr.Unprocessable("validation failed", missing))
		return
	}

	token, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if auth.IsAuthError(err) {
			h.logger().Info("login rejected", zap.String("username", req.Username), zap.Error(err))
			httperr.Write(w, httperr.Unauthorized(LoginError))
			return
		}
		h.logger().Error("login", zap.Error(err))
		httperr.Write(w, httperr.Internal())
		return
	}
	writeJSON(w, http.StatusOK, token)
}

// Me handles GET /users/me. An unknown subject is 404; any other token
// failure is 401.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.BearerToken(r)
	if !ok {
		httperr.Write(w, httperr.Unauthorized(middleware.CredentialsError))
		return
	}

	user, err := h.AuthService.ResolveToken(r.Context(), token)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, user)
	case errors.Is(err, auth.ErrPrincipalNotFound):
		httperr.Write(w, httperr.NotFound("User not found"))
	case auth.IsAuthError(err):
		h.logger().Info("bearer rejected", zap.Error(err))
		httperr.Write(w, httperr.Unauthorized(middleware.CredentialsError))
	default:
		h.logger().Error("resolve token", zap.Error(err))
		httperr.Write(w, httperr.Internal())
	}
}
