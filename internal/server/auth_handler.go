package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// AuthHandler handles operator authentication requests.
type AuthHandler struct {
	operator   *config.OperatorConfig
	jwtService *JWTService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(operator *config.OperatorConfig, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		operator:   operator,
		jwtService: jwtService,
	}
}

// Login verifies operator credentials and issues a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !h.operator.VerifyCredentials(req.Email, req.Password) {
		// Same message for unknown email and wrong password
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.jwtService.GenerateToken(req.Email)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(types.LoginResponse{Token: token}); err != nil {
		return
	}
}
