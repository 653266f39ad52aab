package httpapi

import (
	"net/http"

	"github.com/heloise-dot/Kaziflow/internal/server/models"
	"github.com/heloise-dot/Kaziflow/internal/server/services"
)

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
	CompanyName string `json:"company_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type profileUpdateRequest struct {
	FullName    *string `json:"full_name"`
	CompanyName *string `json:"company_name"`
}

func (h *Handlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var payload registerRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.accounts.Register(r.Context(), services.RegisterInput{
		Email:       payload.Email,
		Password:    payload.Password,
		FullName:    payload.FullName,
		Role:        payload.Role,
		CompanyName: payload.CompanyName,
	})
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, toAccountResponse(account))
}

func (h *Handlers) handleToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var payload loginRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.accounts.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (h *Handlers) handleMe(w http.ResponseWriter, r *http.Request, account *models.Account) {
	switch r.Method {
	case http.MethodGet:
		respondJSON(w, http.StatusOK, toAccountResponse(account))
	case http.MethodPatch:
		var payload profileUpdateRequest
		if err := decodeJSON(r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		updated, err := h.accounts.UpdateProfile(r.Context(), account, services.ProfileUpdate{
			FullName:    payload.FullName,
			CompanyName: payload.CompanyName,
		})
		if err != nil {
			writeServiceError(r.Context(), w, h.logger, err)
			return
		}

		respondJSON(w, http.StatusOK, toAccountResponse(updated))
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPatch)
	}
}

func (h *Handlers) handleChangePassword(w http.ResponseWriter, r *http.Request, account *models.Account) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var payload changePasswordRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.accounts.ChangePassword(r.Context(), account, payload.CurrentPassword, payload.NewPassword); err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}
