package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/library/internal/library/service"
	"github.com/aussiebroadwan/library/pkg/cryptox"
	"github.com/aussiebroadwan/library/pkg/httpx"
	"github.com/aussiebroadwan/library/pkg/librarysdk"
	"github.com/aussiebroadwan/library/pkg/slogx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Register
//	@Description	Create a user account. The password is stored as a bcrypt hash. No token is issued.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		librarysdk.RegisterRequest	true	"username and password"
//	@Success		201		{object}	librarysdk.RegisterResponse	"message, id"
//	@Failure		400		{object}	librarysdk.MessageResponse	"Missing fields | Password too long | Username exists | Invalid JSON in request body"
//	@Failure		500		{object}	librarysdk.MessageResponse	"DB error"
//	@Router			/api/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req librarysdk.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id, err := h.AuthService.Register(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, cryptox.ErrPasswordTooLong):
			httpx.WriteMessage(w, http.StatusBadRequest, "Password too long")
		case errors.Is(err, service.ErrValidation):
			httpx.WriteMessage(w, http.StatusBadRequest, "Missing fields")
		case errors.Is(err, service.ErrDuplicateUser):
			httpx.WriteMessage(w, http.StatusBadRequest, "Username exists")
		case errors.Is(err, service.ErrStore):
			log.Error("register: store failure", "err", err)
			httpx.WriteMessage(w, http.StatusInternalServerError, "DB error")
		default:
			log.Error("register failed", "err", err)
			httpx.WriteMessage(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, librarysdk.RegisterResponse{
		Message: "User created",
		ID:      id,
	})
}
