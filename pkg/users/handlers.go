package users

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/taskhive/taskhive/pkg/apierr"
	"github.com/taskhive/taskhive/pkg/auth"
	"github.com/taskhive/taskhive/pkg/sanitize"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// maxPasswordLen matches the bcrypt input limit; longer inputs would fail at
// hashing time rather than validation time.
const (
	minPasswordLen = 8
	maxPasswordLen = 72
)

// Handler serves the /auth endpoints.
type Handler struct {
	store    *Store
	codec    *auth.Codec
	reporter *apierr.Reporter
	logger   *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(store *Store, codec *auth.Codec, reporter *apierr.Reporter, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: store, codec: codec, reporter: reporter, logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        userResponse `json:"user"`
}

// Register handles POST /auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, apierr.ErrBadRequest)
		return
	}
	req.Email = sanitize.Email(req.Email)

	if details := validateCredentials(req, true); len(details) > 0 {
		apierr.WriteValidation(w, details)
		return
	}

	existing, err := h.store.GetByEmail(r.Context(), req.Email)
	if err != nil {
		h.reporter.Internal(w, r, err)
		return
	}
	if existing != nil {
		h.logger.Warn("registration rejected, email already registered")
		apierr.Write(w, apierr.ErrEmailTaken)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.reporter.Internal(w, r, err)
		return
	}

	user := &User{Email: req.Email, PasswordHash: hash}
	if err := h.store.Create(r.Context(), user); err != nil {
		h.reporter.Internal(w, r, err)
		return
	}

	h.logger.Info("user registered", "userId", user.ID)
	h.writeAuthResponse(w, r, http.StatusCreated, user)
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, apierr.ErrBadRequest)
		return
	}
	req.Email = sanitize.Email(req.Email)

	user, err := h.store.GetByEmail(r.Context(), req.Email)
	if err != nil {
		h.reporter.Internal(w, r, err)
		return
	}
	// Same failure for unknown email and wrong password.
	if user == nil || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		h.reporter.Deny(w, r, apierr.ErrInvalidCredentials, nil)
		return
	}

	h.logger.Info("user logged in", "userId", user.ID)
	h.writeAuthResponse(w, r, http.StatusOK, user)
}

// Logout handles POST /auth/logout. Tokens are stateless, so logout is
// client-side token deletion; the endpoint exists for API completeness.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": "Successfully logged out. Please remove the token from client storage.",
	})
}

func (h *Handler) writeAuthResponse(w http.ResponseWriter, r *http.Request, status int, user *User) {
	token, err := h.codec.Issue(user.ID)
	if err != nil {
		h.reporter.Internal(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(authResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User: userResponse{
			ID:        user.ID,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	})
}

func validateCredentials(req credentialsRequest, full bool) []apierr.FieldError {
	var details []apierr.FieldError

	if req.Email == "" {
		details = append(details, apierr.FieldError{Field: "email", Message: "email is required"})
	} else if !emailPattern.MatchString(req.Email) {
		details = append(details, apierr.FieldError{Field: "email", Message: "invalid email address"})
	}

	if req.Password == "" {
		details = append(details, apierr.FieldError{Field: "password", Message: "password is required"})
	} else if full && len(req.Password) < minPasswordLen {
		details = append(details, apierr.FieldError{Field: "password", Message: "password must be at least 8 characters"})
	} else if full && len(req.Password) > maxPasswordLen {
		details = append(details, apierr.FieldError{Field: "password", Message: "password must be at most 72 characters"})
	}

	return details
}
