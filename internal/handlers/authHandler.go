package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/avasant/docuchat/internal/adapter/utils"
	"github.com/avasant/docuchat/internal/api"
	"github.com/avasant/docuchat/internal/auth"
	"github.com/avasant/docuchat/internal/domain"
)

// SignupHandler godoc
// @Summary      Create an account
// @Description  Registers a new user and returns a bearer token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      api.SignupRequest  true  "Email and password"
// @Success      201      {object}  api.AuthResponse
// @Failure      400      {object}  api.ErrorResponse  "Invalid email or password"
// @Failure      409      {object}  api.ErrorResponse  "Email already registered"
// @Router       /api/signup [post]
func SignupHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	var req api.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Bad Request")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.Contains(req.Email, "@") || len(req.Password) < 8 {
		WriteErrorResponse(w, http.StatusBadRequest, "valid email and a password of at least 8 characters are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logRH.Error("password hashing failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	user := domain.User{
		ID:           utils.GetNewUUID(),
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := services.Users.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			WriteErrorResponse(w, http.StatusConflict, "email already registered")
			return
		}
		logRH.Error("user creation failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		logRH.Error("token generation failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJsonResponse(w, http.StatusCreated, api.AuthResponse{Token: token, UserID: user.ID})
}

// LoginHandler godoc
// @Summary      Log in
// @Description  Verifies credentials and returns a bearer token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      api.LoginRequest  true  "Email and password"
// @Success      200      {object}  api.AuthResponse
// @Failure      401      {object}  api.ErrorResponse  "Unknown email or wrong password"
// @Router       /api/login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Bad Request")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := services.Users.GetUserByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		WriteErrorResponse(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		logRH.Error("token generation failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJsonResponse(w, http.StatusOK, api.AuthResponse{Token: token, UserID: user.ID})
}
