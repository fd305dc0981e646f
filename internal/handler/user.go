package handler

import (
	"context"
	"net/http"

	"github.com/tradeline/jobtrack/api/internal/model"
)

// UserService defines the interface the user handler needs
type UserService interface {
	GetProfile(ctx context.Context) (*model.User, error)
	UpdateProfile(ctx context.Context, req *model.UpdateUserRequest) (*model.User, error)
}

// UserHandler handles the operator profile endpoints
type UserHandler struct {
	users UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GetUser handles GET /api/user
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetProfile(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, user, map[string]string{
		"self": "/api/user",
	})
}

// UpdateUser handles PUT /api/user
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateUserRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, user, map[string]string{
		"self": "/api/user",
	})
}
