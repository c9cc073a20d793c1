package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/lumoshive/service-account-go/internal/token"
	"github.com/lumoshive/service-account-go/internal/user/entity"
)

// Handler exposes HTTP endpoints for account operations.
type Handler struct {
	svc    *Service
	tokens *token.Issuer
	logger *zap.SugaredLogger
}

func NewHandler(db *sqlx.DB, tokens *token.Issuer, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: NewService(db, nil, nil), tokens: tokens, logger: logger}
}

// NewHandlerWithService wires a prebuilt service, used by tests.
func NewHandlerWithService(svc *Service, tokens *token.Issuer, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, tokens: tokens, logger: logger}
}

// SignupRequest is the request body for the signup endpoint.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountResponse is the body returned by signup and login.
type AccountResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid signup payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	u, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrBadRequest):
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username, email and password are required"})
		case errors.Is(err, ErrDuplicate):
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email or username already in use"})
		default:
			h.logger.Warnw("signup failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "signup failed"})
		}
		return
	}
	tok, err := h.tokens.Issue(u.ID)
	if err != nil {
		h.logger.Errorw("token issue failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "signup failed"})
		return
	}
	h.writeJSON(w, http.StatusCreated, AccountResponse{ID: u.ID, Username: u.Username, Email: u.Email, Token: tok})
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid login payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	u, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			// identical message for unknown email and wrong password
			h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
			return
		}
		h.logger.Warnw("login failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "login failed"})
		return
	}
	tok, err := h.tokens.Issue(u.ID)
	if err != nil {
		h.logger.Errorw("token issue failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "login failed"})
		return
	}
	h.writeJSON(w, http.StatusOK, AccountResponse{ID: u.ID, Username: u.Username, Email: u.Email, Token: tok})
}

// UpdateProfileRequest carries optional profile fields; absent fields keep
// their prior values.
type UpdateProfileRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Password    *string `json:"password"`
}

// ProfileResponse is the updated profile plus a fresh token.
type ProfileResponse struct {
	entity.Profile
	Token string `json:"token"`
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := token.FromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "no token provided"})
		return
	}
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid profile payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	u, err := h.svc.UpdateProfile(r.Context(), userID, ProfileUpdate{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		case errors.Is(err, ErrDuplicate):
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email or username already in use"})
		default:
			h.logger.Warnw("profile update failed", "err", err)
			h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "profile update failed"})
		}
		return
	}
	tok, err := h.tokens.Issue(u.ID)
	if err != nil {
		h.logger.Errorw("token issue failed", "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "profile update failed"})
		return
	}
	h.writeJSON(w, http.StatusOK, ProfileResponse{Profile: u.Profile(), Token: tok})
}

// Logout is a stateless acknowledgement: tokens are not revocable, the client
// discards its copy.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
