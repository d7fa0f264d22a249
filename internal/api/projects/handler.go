package projects

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/skyps2003/Freelancer/internal/api"
	"github.com/skyps2003/Freelancer/internal/middleware"
	"github.com/skyps2003/Freelancer/internal/models"
	"github.com/skyps2003/Freelancer/internal/storage"
)

type Handler struct {
	Projects  storage.ProjectStore
	Proposals storage.ProposalStore
	Users     storage.UserStore
}

// projectWithProposals is the my-projects response shape.
type projectWithProposals struct {
	*models.Project
	Proposals []*models.Proposal `json:"proposals"`
}

// Create posts a bidding project. Companies only.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if middleware.UserClaims(r).Role != models.RoleEmpresa {
		api.Error(w, http.StatusForbidden, "Only companies can post projects")
		return
	}

	var req struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		BudgetMax   float64   `json:"budget_max"`
		Deadline    time.Time `json:"deadline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		api.Error(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	project := &models.Project{
		CompanyID:   middleware.UserID(r),
		Title:       req.Title,
		Description: req.Description,
		BudgetMax:   req.BudgetMax,
		Deadline:    req.Deadline,
	}
	if err := h.Projects.Create(r.Context(), project); err != nil {
		api.ServerError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, project)
}

// MyProjects lists the company's projects, each with its proposals.
func (h *Handler) MyProjects(w http.ResponseWriter, r *http.Request) {
	if middleware.UserClaims(r).Role != models.RoleEmpresa {
		api.Error(w, http.StatusForbidden, "Access denied")
		return
	}

	projects, err := h.Projects.ListByCompany(r.Context(), middleware.UserID(r))
	if err != nil {
		api.ServerError(w, err)
		return
	}

	result := make([]projectWithProposals, 0, len(projects))
	cache := make(map[string]*models.UserSummary)
	for _, p := range projects {
		proposals, err := h.Proposals.ListByProject(r.Context(), p.ID)
		if err != nil {
			api.ServerError(w, err)
			return
		}
		for _, prop := range proposals {
			prop.FreelancerInfo = h.userSummary(r, cache, prop.FreelancerID)
		}
		if proposals == nil {
			proposals = []*models.Proposal{}
		}
		result = append(result, projectWithProposals{Project: p, Proposals: proposals})
	}
	api.JSON(w, http.StatusOK, result)
}

// Feed lists projects still open for bidding.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Projects.ListByStatus(r.Context(),
		[]string{models.ProjectPendiente, models.ProjectEnLicitacion})
	if err != nil {
		api.ServerError(w, err)
		return
	}
	cache := make(map[string]*models.UserSummary)
	for _, p := range projects {
		p.CompanyInfo = h.userSummary(r, cache, p.CompanyID)
	}
	if projects == nil {
		projects = []*models.Project{}
	}
	api.JSON(w, http.StatusOK, projects)
}

// Assign accepts one proposal: project goes ASIGNADO, proposal ACEPTADA.
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	if middleware.UserClaims(r).Role != models.RoleEmpresa {
		api.Error(w, http.StatusForbidden, "Access denied")
		return
	}

	var req struct {
		ProposalID string `json:"proposalId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.Projects.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Project not found")
			return
		}
		api.ServerError(w, err)
		return
	}
	if project.CompanyID != middleware.UserID(r) {
		api.Error(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	proposal, err := h.Proposals.GetByID(r.Context(), req.ProposalID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Proposal not found")
			return
		}
		api.ServerError(w, err)
		return
	}

	if err := h.Projects.SetStatus(r.Context(), project.ID, models.ProjectAsignado); err != nil {
		api.ServerError(w, err)
		return
	}
	if err := h.Proposals.SetStatus(r.Context(), proposal.ID, models.ProposalAceptada); err != nil {
		api.ServerError(w, err)
		return
	}

	project.Status = models.ProjectAsignado
	api.JSON(w, http.StatusOK, project)
}

func (h *Handler) userSummary(r *http.Request, cache map[string]*models.UserSummary, userID string) *models.UserSummary {
	if userID == "" {
		return nil
	}
	if s, ok := cache[userID]; ok {
		return s
	}
	user, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		return nil
	}
	cache[userID] = user.Summary()
	return cache[userID]
}
