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

type RefreshHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Token Refresh Endpoint
//	@Description	Exchange a refresh token for a brand new access and refresh token pair
//	@Description	Fails once the account behind the token has been deleted
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RefreshRequest	true	"refresh_token"
//	@Success		200		{object}	authsdk.RefreshResponse	"app_auth_token, refresh_token"
//	@Failure		400		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RefreshRequest
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

	pair, err := h.UserService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRefresh):
			authsdk.ErrInvalidToken.WriteError(w)
		default:
			log.Error("refresh failed", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.RefreshResponse{
		AppAuthToken: pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
