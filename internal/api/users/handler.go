package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/skyps2003/Freelancer/internal/api"
	"github.com/skyps2003/Freelancer/internal/middleware"
	"github.com/skyps2003/Freelancer/internal/storage"
	"github.com/skyps2003/Freelancer/internal/upload"
)

type Handler struct {
	Users     storage.UserStore
	UploadDir string
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

// UpdateProfile accepts a multipart form with optional name, bio, skills
// (JSON array) and avatar (file upload or URL field).
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	user, err := h.Users.GetByID(r.Context(), middleware.UserID(r))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "User not found")
			return
		}
		api.ServerError(w, err)
		return
	}

	if name := strings.TrimSpace(r.FormValue("name")); name != "" {
		user.Name = name
	}
	if bio := r.FormValue("bio"); bio != "" {
		user.Bio = bio
	}
	if skills := r.FormValue("skills"); skills != "" {
		user.Skills = parseSkills(skills)
	}

	if _, fh, err := r.FormFile("avatar"); err == nil {
		name, err := upload.Save(h.UploadDir, "", fh)
		if err != nil {
			api.ServerError(w, err)
			return
		}
		user.Avatar = "/uploads/" + name
	} else if avatar := r.FormValue("avatar"); avatar != "" {
		user.Avatar = avatar
	}

	if err := h.Users.Update(r.Context(), user); err != nil {
		api.ServerError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, user)
}

// parseSkills accepts either a JSON array or a comma-separated list.
func parseSkills(raw string) []string {
	var skills []string
	if err := json.Unmarshal([]byte(raw), &skills); err == nil {
		return skills
	}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
