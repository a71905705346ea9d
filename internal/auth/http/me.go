package http

import (
	"errors"
	"net/http"

	"github.com/duetmatch/duet/internal/auth/identity"
	"github.com/duetmatch/duet/internal/auth/service"
	"github.com/duetmatch/duet/internal/auth/store"
	"github.com/duetmatch/duet/pkg/authsdk"
	"github.com/duetmatch/duet/pkg/httpx"
	"github.com/duetmatch/duet/pkg/slogx"
)

type MeHandler struct {
	UserService *service.UserService
}

// HandleGet godoc
//
//	@Summary		Current User Endpoint
//	@Description	Returns the profile of the user the access token belongs to
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserInfoResponse	"id, nickname, email, auth_type, is_admin, is_premium"
//	@Failure		401	{object}	authsdk.ErrorResponse		"error, error_description"
//	@Router			/api/v1/auth/me [get].
func (h *MeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := identityFromContext(ctx)
	if !ok || id.UserID == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	// The synthetic identity has no row behind it; serve its canned profile.
	if id.Synthetic {
		httpx.WriteJSON(w, http.StatusOK, authsdk.UserInfoResponse{
			ID:       identity.FixedUserID,
			Nickname: identity.FixedNickname,
			Email:    identity.FixedEmail,
			AuthType: identity.FixedAuthType,
			IsAdmin:  identity.FixedIsAdmin,
		})
		return
	}

	user, err := h.UserService.ProfileByID(ctx, id.UserID)
	if err != nil {
		// A verified token for a missing user means the account was
		// deleted after issuance. The token is as good as expired.
		if errors.Is(err, store.ErrNotFound) {
			authsdk.ErrInvalidToken.WriteError(w)
			return
		}
		log.Error("failed to load profile", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserInfoResponse{
		ID:        user.ID,
		Nickname:  user.Nickname,
		Email:     user.Email,
		AuthType:  user.Credential.AuthType(),
		IsAdmin:   user.IsAdmin,
		IsPremium: user.IsPremium,
	})
}

// HandleDelete godoc
//
//	@Summary		Delete Account Endpoint
//	@Description	Soft-deletes the account the access token belongs to. The account vanishes
//	@Description	from every lookup immediately; already-issued tokens die at the next refresh
//	@Tags			Auth
//	@Security		BearerAuth
//	@Success		204	"account deleted"
//	@Failure		401	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/auth/me [delete].
func (h *MeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := identityFromContext(ctx)
	if !ok || id.UserID == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.UserService.DeleteAccount(ctx, id.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			authsdk.ErrUserNotFound.WriteError(w)
			return
		}
		log.Error("failed to delete account", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
