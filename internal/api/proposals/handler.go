package proposals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/skyps2003/Freelancer/internal/api"
	"github.com/skyps2003/Freelancer/internal/middleware"
	"github.com/skyps2003/Freelancer/internal/models"
	"github.com/skyps2003/Freelancer/internal/storage"
)

type Handler struct {
	Proposals storage.ProposalStore
	Projects  storage.ProjectStore
}

// Submit creates a freelancer proposal on an open project. The first
// proposal moves the project from PENDIENTE to EN_LICITACION.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if middleware.UserClaims(r).Role != models.RoleFreelancer {
		api.Error(w, http.StatusForbidden, "Only freelancers can submit proposals")
		return
	}

	var req struct {
		ProjectID   string  `json:"project_id"`
		Price       float64 `json:"price"`
		CoverLetter string  `json:"cover_letter"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.CoverLetter) == "" {
		api.Error(w, http.StatusBadRequest, "Cover letter is required")
		return
	}

	project, err := h.Projects.GetByID(r.Context(), req.ProjectID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Project not found")
			return
		}
		api.ServerError(w, err)
		return
	}

	callerID := middleware.UserID(r)
	if _, err := h.Proposals.FindByProjectAndFreelancer(r.Context(), project.ID, callerID); err == nil {
		api.Error(w, http.StatusBadRequest, "Proposal already submitted for this project")
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		api.ServerError(w, err)
		return
	}

	proposal := &models.Proposal{
		ProjectID:    project.ID,
		FreelancerID: callerID,
		Price:        req.Price,
		CoverLetter:  req.CoverLetter,
	}
	if err := h.Proposals.Create(r.Context(), proposal); err != nil {
		api.ServerError(w, err)
		return
	}

	if project.Status == models.ProjectPendiente {
		if err := h.Projects.SetStatus(r.Context(), project.ID, models.ProjectEnLicitacion); err != nil {
			api.ServerError(w, err)
			return
		}
	}

	api.JSON(w, http.StatusOK, proposal)
}
