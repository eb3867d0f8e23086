package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/internal/service"
	"github.com/notsus/site-backend/internal/store"
	"github.com/notsus/site-backend/internal/utils"
	"github.com/notsus/site-backend/models"
)

// credentials is the request body of the register and login endpoints.
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the success body of the register and login endpoints.
type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		respondError(w, http.StatusBadRequest, "Validation error", "Invalid JSON was passed")
		return
	}

	user, token, err := h.services.AuthService.Register(ctx, creds.Email, creds.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidationEmailRequired),
			errors.Is(err, service.ErrValidationPasswordWeak):
			log.Err(err).Msg("registration rejected by validation")
			respondError(w, http.StatusBadRequest, "Validation error", err.Error())
			return
		case errors.Is(err, service.ErrEmailAlreadyRegistered):
			log.Err(err).Msg("email already registered")
			respondError(w, http.StatusBadRequest, "Validation error", service.ErrEmailAlreadyRegistered.Error())
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			respondError(w, http.StatusInternalServerError, "Server error", "")
			return
		}
	}

	utils.WriteJSON(w, authResponse{Token: token.SignedString, User: user}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		respondError(w, http.StatusBadRequest, "Validation error", "Invalid JSON was passed")
		return
	}

	user, token, err := h.services.AuthService.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		var lockout *service.LockoutError
		switch {
		case errors.As(err, &lockout):
			log.Warn().Int("remainingMinutes", lockout.RemainingMinutes()).Msg("login rejected by lockout")
			respondError(w, http.StatusForbidden, "Account locked", lockout.Error())
			return
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Err(err).Msg("invalid credentials")
			respondError(w, http.StatusUnauthorized, "Authentication failed", service.ErrInvalidCredentials.Error())
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			respondError(w, http.StatusInternalServerError, "Server error", "")
			return
		}
	}

	log.Debug().Int64("id", user.UserID).Msg("user successfully logged in")

	utils.WriteJSON(w, authResponse{Token: token.SignedString, User: user}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication failed", "")
		return
	}

	user, err := h.services.AuthService.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			respondError(w, http.StatusUnauthorized, "Authentication failed", "")
			return
		}
		log.Err(err).Int64("id", claims.UserID).Msg("loading authenticated user failed")
		respondError(w, http.StatusInternalServerError, "Server error", "")
		return
	}

	utils.WriteJSON(w, map[string]models.User{"user": user}, http.StatusOK)
}
