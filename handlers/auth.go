package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/EmanuelGdA/AnjoAnimal/auth"
)

// AuthHandler signs operators in against the external identity provider and
// issues session tokens for the rest of the API.
type AuthHandler struct {
	identity   *auth.IdentityClient
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

func NewAuthHandler(identity *auth.IdentityClient, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		identity:   identity,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

type LoginUser struct {
	Email string `json:"email"`
}

// Login handles operator authentication. Provider failures come back as
// classified Portuguese messages, never raw backend errors.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, "Preencha e-mail e senha.", http.StatusBadRequest)
		return
	}

	email, errMsg := h.identity.SignIn(r.Context(), req.Email, req.Password)
	if errMsg != "" {
		h.logger.Info("login rejected", zap.String("email", req.Email))
		writeError(w, errMsg, http.StatusUnauthorized)
		return
	}

	token, err := h.jwtManager.GenerateToken(email)
	if err != nil {
		h.logger.Error("failed to generate token", zap.String("email", email), zap.Error(err))
		writeError(w, "Failed to generate authentication token", http.StatusInternalServerError)
		return
	}

	h.logger.Info("operator logged in", zap.String("email", email))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{
		Token: token,
		User:  LoginUser{Email: email},
	})
}

type ResetPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPassword asks the provider to send a password-reset e-mail.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" {
		writeError(w, "Informe o e-mail para resetar a senha.", http.StatusBadRequest)
		return
	}

	if errMsg := h.identity.SendPasswordReset(r.Context(), req.Email); errMsg != "" {
		writeError(w, errMsg, http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
