package handler

import (
	"encoding/json"
	"net/http"

	"shopcaster/internal/app/service"
	"shopcaster/internal/common"
	"shopcaster/internal/common/security"
	"shopcaster/internal/domain/model"
	"shopcaster/internal/platform/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler struct {
	authService *service.AuthService
	tokenAuth   *jwtauth.JWTAuth
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, tokenAuth *jwtauth.JWTAuth, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokenAuth:   tokenAuth,
		cfg:         cfg,
	}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Delete("/session", h.logout)
}

type userResponse struct {
	User *model.User `json:"user"`
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	if !h.attachSession(w, user.ID) {
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, userResponse{User: user})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	if !h.attachSession(w, user.ID) {
		return
	}
	common.RespondWithJSON(w, http.StatusOK, userResponse{User: user})
}

// logout clears the cookie unconditionally; it does not need a valid session
// and repeating it is harmless.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	security.ClearSessionCookie(w, h.cfg.IsProduction())
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) attachSession(w http.ResponseWriter, userID int64) bool {
	token, err := security.IssueSessionToken(h.tokenAuth, userID)
	if err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "failed to issue session")
		return false
	}
	security.AttachSessionCookie(w, token, h.cfg.IsProduction())
	return true
}
