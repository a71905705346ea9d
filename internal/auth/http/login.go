package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/duetmatch/duet/internal/auth/service"
	"github.com/duetmatch/duet/pkg/authsdk"
	"github.com/duetmatch/duet/pkg/httpx"
	"github.com/duetmatch/duet/pkg/slogx"
)

type LoginHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Email Login Endpoint
//	@Description	Authenticate with email and password, receiving a paired access and refresh token
//	@Description	Unknown emails and wrong passwords are deliberately indistinguishable
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"email, password"
//	@Success		200		{object}	authsdk.LoginResponse	"user_id, app_auth_token, refresh_token, nickname"
//	@Failure		400		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		422		{object}	authsdk.ValidationErrorResponse	"code, message, details"
//	@Router			/api/v1/auth/email/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if problems := req.Validate(); len(problems) > 0 {
		httpx.WriteJSON(w, http.StatusUnprocessableEntity, authsdk.ValidationErrorResponse{
			Code:    "validation_error",
			Message: "Request validation failed",
			Details: problems,
		})
		return
	}

	user, pair, err := h.UserService.AuthenticateEmail(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			authsdk.ErrInvalidCredentials.WriteError(w)
		default:
			log.Error("login failed", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		UserID:       user.ID,
		AppAuthToken: pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Nickname:     user.Nickname,
	})
}
