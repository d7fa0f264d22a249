package authapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/skyps2003/Freelancer/internal/api"
	"github.com/skyps2003/Freelancer/internal/auth"
	"github.com/skyps2003/Freelancer/internal/config"
	"github.com/skyps2003/Freelancer/internal/middleware"
	"github.com/skyps2003/Freelancer/internal/models"
	"github.com/skyps2003/Freelancer/internal/storage"
)

type Handler struct {
	Users storage.UserStore
	JWT   config.JWTConfig
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		api.Error(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}
	role := req.Role
	switch role {
	case models.RoleEmpresa, models.RoleFreelancer, models.RoleUser:
	case "":
		role = models.RoleUser
	default:
		api.Error(w, http.StatusBadRequest, "Invalid role")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		api.ServerError(w, err)
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     role,
		Skills:   []string{},
	}
	if err := h.Users.Create(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			api.Error(w, http.StatusBadRequest, "User already exists")
			return
		}
		api.ServerError(w, err)
		return
	}

	h.respondWithToken(w, user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.Error(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		api.ServerError(w, err)
		return
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		api.Error(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	h.respondWithToken(w, user)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.GetByID(r.Context(), middleware.UserID(r))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "User not found")
			return
		}
		api.ServerError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, user)
}

func (h *Handler) respondWithToken(w http.ResponseWriter, user *models.User) {
	token, err := auth.GenerateToken(h.JWT.Secret, user.ID, user.Role,
		time.Duration(h.JWT.TTLHours)*time.Hour)
	if err != nil {
		api.ServerError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}
