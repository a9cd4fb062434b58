package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pizza-nz/dish-admin/internal/api"
	"github.com/pizza-nz/dish-admin/internal/middleware"
	"github.com/pizza-nz/dish-admin/internal/models"
	"github.com/pizza-nz/dish-admin/internal/service"
)

// UserHandler handles login, registration and account requests
type UserHandler struct {
	authService *service.AuthService
	cookieName  string
	expiresIn   time.Duration
}

// NewUserHandler creates a new user handler. Session cookies are named
// cookieName and live as long as the token.
func NewUserHandler(authService *service.AuthService, cookieName string, expiresIn time.Duration) *UserHandler {
	return &UserHandler{
		authService: authService,
		cookieName:  cookieName,
		expiresIn:   expiresIn,
	}
}

// LoginPage tells the client how to log in and echoes a failed attempt
func (h *UserHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, struct {
		Message string `json:"message"`
		Error   string `json:"error,omitempty"`
	}{
		Message: "POST username and password to /login",
		Error:   r.URL.Query().Get("error"),
	})
}

// Login authenticates a user from a JSON body or a login form. On success
// the token is returned and stored in the session cookie.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	form := isForm(r)

	var loginReq models.LoginRequest
	if form {
		loginReq.Username = r.PostFormValue("username")
		loginReq.Password = r.PostFormValue("password")
	} else if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	// Attempt to login
	token, user, err := h.authService.Login(r.Context(), loginReq.Username, loginReq.Password)
	if err != nil {
		if form && errors.Is(err, service.ErrInvalidCredentials) {
			redirectWithMessage(w, r, middleware.LoginPath, "BadCredentials")
			return
		}
		writeServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.expiresIn.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if form {
		http.Redirect(w, r, dishesPath, http.StatusFound)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}{
		Token: token,
		User:  user,
	})
}

// Logout clears the session cookie
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, middleware.LoginPath, http.StatusFound)
}

// Register signs up a regular user
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	// Self-registration never grants admin
	req.Role = models.RoleUser

	h.register(w, r, req)
}

// CreateUser registers a user with any role
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "Invalid request body")
		return
	}

	h.register(w, r, req)
}

func (h *UserHandler) register(w http.ResponseWriter, r *http.Request, req models.RegisterRequest) {
	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Me returns the logged in user
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		api.Unauthorized(w, "Unauthorized")
		return
	}

	user, err := h.authService.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
