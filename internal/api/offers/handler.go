package offers

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
	"github.com/skyps2003/Freelancer/internal/upload"
)

type Handler struct {
	Offers    storage.OfferStore
	Users     storage.UserStore
	UploadDir string
}

// Create posts a job offer. Companies only.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if middleware.UserClaims(r).Role != models.RoleEmpresa {
		api.Error(w, http.StatusForbidden, "Access denied. Only companies can post offers.")
		return
	}

	var req struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Budget      float64    `json:"budget"`
		Category    string     `json:"category"`
		Deadline    *time.Time `json:"deadline"`
		Duration    string     `json:"duration"`
		ProjectType string     `json:"projectType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		api.Error(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	offer := &models.Offer{
		Employer:    middleware.UserID(r),
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Category:    req.Category,
		Deadline:    req.Deadline,
		Duration:    req.Duration,
		ProjectType: req.ProjectType,
		Applicants:  []models.Applicant{},
	}
	if err := h.Offers.Create(r.Context(), offer); err != nil {
		api.ServerError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, offer)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	offers, err := h.Offers.List(r.Context())
	if err != nil {
		api.ServerError(w, err)
		return
	}
	cache := make(map[string]*models.UserSummary)
	for _, o := range offers {
		o.EmployerInfo = h.userSummary(r, cache, o.Employer, false)
	}
	if offers == nil {
		offers = []*models.Offer{}
	}
	api.JSON(w, http.StatusOK, offers)
}

// MyOffers returns the employer's offers with applicant details populated.
func (h *Handler) MyOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.Offers.ListByEmployer(r.Context(), middleware.UserID(r))
	if err != nil {
		api.ServerError(w, err)
		return
	}
	cache := make(map[string]*models.UserSummary)
	for _, o := range offers {
		for i := range o.Applicants {
			o.Applicants[i].UserInfo = h.userSummary(r, cache, o.Applicants[i].User, true)
		}
	}
	if offers == nil {
		offers = []*models.Offer{}
	}
	api.JSON(w, http.StatusOK, offers)
}

// Apply submits a freelancer application with an optional CV upload.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	if middleware.UserClaims(r).Role != models.RoleFreelancer {
		api.Error(w, http.StatusForbidden, "Access denied. Only freelancers can apply.")
		return
	}

	offerID := mux.Vars(r)["id"]
	offer, err := h.Offers.GetByID(r.Context(), offerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Offer not found")
			return
		}
		api.ServerError(w, err)
		return
	}

	callerID := middleware.UserID(r)
	for _, a := range offer.Applicants {
		if a.User == callerID {
			api.Error(w, http.StatusBadRequest, "You have already applied to this offer")
			return
		}
	}

	application := models.Applicant{
		User: callerID,
		Date: time.Now().UTC(),
	}
	// The form is multipart when a CV is attached, plain otherwise.
	if err := r.ParseMultipartForm(10 << 20); err == nil {
		application.Message = r.FormValue("message")
		if _, fh, err := r.FormFile("cv"); err == nil {
			cvPath, err := upload.Save(h.UploadDir, "cvs", fh)
			if err != nil {
				api.ServerError(w, err)
				return
			}
			application.CVURL = "/uploads/" + cvPath
		}
	} else {
		var req struct {
			Message string `json:"message"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		application.Message = req.Message
	}
	if application.Message == "" {
		application.Message = "I am interested in this job."
	}

	applicants, err := h.Offers.AddApplicant(r.Context(), offerID, application)
	if err != nil {
		api.ServerError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, applicants)
}

func (h *Handler) userSummary(r *http.Request, cache map[string]*models.UserSummary, userID string, withEmail bool) *models.UserSummary {
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
	summary := user.Summary()
	if withEmail {
		summary.Email = user.Email
	}
	cache[userID] = summary
	return summary
}
