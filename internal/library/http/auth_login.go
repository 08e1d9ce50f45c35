package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/library/internal/library/service"
	"github.com/aussiebroadwan/library/pkg/httpx"
	"github.com/aussiebroadwan/library/pkg/librarysdk"
	"github.com/aussiebroadwan/library/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Login
//	@Description	Exchange a username and password for an eight hour session token.
//	@Description	Unknown users and wrong passwords get the same response.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		librarysdk.LoginRequest		true	"username and password"
//	@Success		200		{object}	librarysdk.LoginResponse	"message, token, user"
//	@Failure		400		{object}	librarysdk.MessageResponse	"Missing fields | Invalid JSON in request body"
//	@Failure		401		{object}	librarysdk.MessageResponse	"Invalid credentials"
//	@Failure		500		{object}	librarysdk.MessageResponse	"DB error | Server error"
//	@Router			/api/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req librarysdk.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := h.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			httpx.WriteMessage(w, http.StatusBadRequest, "Missing fields")
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Info("login rejected")
			httpx.WriteMessage(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, service.ErrStore):
			log.Error("login: store failure", "err", err)
			httpx.WriteMessage(w, http.StatusInternalServerError, "DB error")
		default:
			log.Error("login failed", "err", err)
			httpx.WriteMessage(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, librarysdk.LoginResponse{
		Message: "Logged in",
		Token:   sess.Token,
		User: librarysdk.UserInfo{
			ID:       sess.User.ID,
			Username: sess.User.Username,
		},
	})
}
