package controllers

import (
	"net/http"
	"placestats/internal/models"
	"placestats/internal/providers"
	"placestats/internal/services"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required|maxLen:128"`
	UserType string `json:"userType" validate:"required|in:user,place"`
}

type profileResponse struct {
	Profile *models.UserProfile  `json:"profile"`
	Summary *models.StatsSummary `json:"summary"`
}

type UserController struct {
	logger providers.Logger
	users  services.UserServiceInterface
}

func NewUserController(logger providers.Logger, users services.UserServiceInterface) *UserController {
	return &UserController{
		logger: logger,
		users:  users,
	}
}

func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	v := validate.Struct(&req)
	if !v.Validate() {
		http.Error(w, v.Errors.One(), http.StatusBadRequest)
		return
	}

	profile := uc.users.Register(req.Name, req.UserType)
	if profile == nil {
		uc.logger.Errorf(providers.TypePost, "Registration of %q was not persisted", req.Name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (uc *UserController) Profile(w http.ResponseWriter, r *http.Request) {
	profile := uc.users.Bootstrap()
	if profile == nil || !uc.users.IsRegistered() {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{
		Profile: profile,
		Summary: uc.users.StatsSummary(profile),
	})
}

func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	if !uc.users.Logout() {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
