package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bitebudget/internal/auth"
	"github.com/MrJamesThe3rd/bitebudget/internal/http/respond"
	"github.com/MrJamesThe3rd/bitebudget/internal/user"
)

type Handler struct {
	users  *user.Service
	issuer *auth.Issuer
}

func NewHandler(users *user.Service, issuer *auth.Issuer) *Handler {
	return &Handler{users: users, issuer: issuer}
}

// Routes mounts the public endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
}

// ProtectedRoutes mounts the endpoints that need a token.
func (h *Handler) ProtectedRoutes(r chi.Router) {
	r.Get("/me", h.me)
	r.Post("/change-password", h.changePassword)
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

type tokenResponse struct {
	Message     string       `json:"message"`
	AccessToken string       `json:"access_token"`
	User        userResponse `json:"user"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	u, err := h.users.Register(r.Context(), user.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.writeToken(w, r, http.StatusCreated, "User created successfully", u)
}

// loginRequest takes the login in either field; username wins when both are set.
type loginRequest struct {
	Username string `json:"username" validate:"required_without=Email"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	login := req.Username
	if login == "" {
		login = req.Email
	}

	u, err := h.users.Authenticate(r.Context(), login, req.Password)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.writeToken(w, r, http.StatusOK, "Login successful", u)
}

func (h *Handler) writeToken(w http.ResponseWriter, r *http.Request, status int, msg string, u *user.User) {
	token, err := h.issuer.Issue(u.ID, u.Username)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, status, tokenResponse{
		Message:     msg,
		AccessToken: token,
		User:        toUserResponse(u),
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	u, err := h.users.Get(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]userResponse{"user": toUserResponse(u)})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := respond.UserID(w, r)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.users.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}
