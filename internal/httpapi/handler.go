package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/earl-cod3/purity-ui-rbac/internal/auth"
	"github.com/earl-cod3/purity-ui-rbac/internal/models"
	"github.com/earl-cod3/purity-ui-rbac/internal/routes"
	"github.com/earl-cod3/purity-ui-rbac/internal/session"
	"github.com/earl-cod3/purity-ui-rbac/internal/store"
)

type Handler struct {
	auth     *auth.Authenticator
	sessions session.Store
	tree     []routes.Route
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	InviteToken string `json:"invite_token"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type errorResponse struct {
	Error responseError `json:"error"`
}

type responseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewHandler(authenticator *auth.Authenticator, sessions session.Store, tree []routes.Route) *Handler {
	return &Handler{auth: authenticator, sessions: sessions, tree: tree}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", h.handleLogin)
	mux.HandleFunc("/api/auth/signup", h.handleSignup)
	mux.HandleFunc("/api/auth/me", h.handleMe)
	mux.HandleFunc("/api/auth/logout", h.handleLogout)
	mux.HandleFunc("/api/routes", h.handleRoutes)
	mux.HandleFunc("/healthz", h.handleHealth)
	return mux
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	token, err := h.sessions.Create(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req signupRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return
	}

	user, err := h.auth.Signup(r.Context(), auth.SignupInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		InviteToken: strings.TrimSpace(req.InviteToken),
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid_request", "email is required")
		case errors.Is(err, store.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "already_exists", "an account with this email already exists")
		case errors.Is(err, store.ErrInviteNotFound):
			writeError(w, http.StatusBadRequest, "invalid_request", "invite token is not valid")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		}
		return
	}

	token, err := h.sessions.Create(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid session token")
		return
	}
	writeJSON(w, http.StatusOK, *user)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// Revoking an unknown token is still a successful logout.
	if token := sessionTokenFromRequest(r); token != "" {
		if err := h.sessions.Revoke(r.Context(), token); err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user := UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, routes.Filter(user, h.tree))
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: responseError{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}
