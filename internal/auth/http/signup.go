package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/duetmatch/duet/internal/auth/service"
	"github.com/duetmatch/duet/internal/auth/store"
	"github.com/duetmatch/duet/pkg/authsdk"
	"github.com/duetmatch/duet/pkg/httpx"
	"github.com/duetmatch/duet/pkg/slogx"
)

type SignUpHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Email Sign-Up Endpoint
//	@Description	Register a new account with email, password and display name. A successful
//	@Description	sign-up signs the user straight in and returns the same shape as login
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.SignUpRequest	true	"email, password, username"
//	@Success		200		{object}	authsdk.LoginResponse	"user_id, app_auth_token, refresh_token, nickname"
//	@Failure		400		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		422		{object}	authsdk.ValidationErrorResponse	"code, message, details"
//	@Router			/api/v1/auth/email/sign-up [post].
func (h *SignUpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.SignUpRequest
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

	user, pair, err := h.UserService.RegisterEmail(ctx, req.Email, req.Password, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmailTaken):
			authsdk.ErrEmailTaken.WriteError(w)
		default:
			log.Error("sign-up failed", "err", err)
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
