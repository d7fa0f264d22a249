package products

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/skyps2003/Freelancer/internal/api"
	"github.com/skyps2003/Freelancer/internal/middleware"
	"github.com/skyps2003/Freelancer/internal/models"
	"github.com/skyps2003/Freelancer/internal/storage"
	"github.com/skyps2003/Freelancer/internal/upload"
)

type Handler struct {
	Products  storage.ProductStore
	Users     storage.UserStore
	UploadDir string
}

// List is the public catalogue, filterable by ?category= and ?search=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := storage.ProductFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}
	products, err := h.Products.List(r.Context(), filter)
	if err != nil {
		api.ServerError(w, err)
		return
	}
	h.attachSellers(r, products)
	if products == nil {
		products = []*models.Product{}
	}
	api.JSON(w, http.StatusOK, products)
}

func (h *Handler) MyProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.ListBySeller(r.Context(), middleware.UserID(r))
	if err != nil {
		api.ServerError(w, err)
		return
	}
	if products == nil {
		products = []*models.Product{}
	}
	api.JSON(w, http.StatusOK, products)
}

// Create accepts a multipart form with the listing fields and a required
// image file.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	_, fh, err := r.FormFile("image")
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Please upload an image")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	description := strings.TrimSpace(r.FormValue("description"))
	if title == "" || description == "" {
		api.Error(w, http.StatusBadRequest, "Title and description are required")
		return
	}
	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 {
		api.Error(w, http.StatusBadRequest, "Invalid price")
		return
	}
	shippingCost := 0.0
	if v := r.FormValue("shippingCost"); v != "" {
		if shippingCost, err = strconv.ParseFloat(v, 64); err != nil || shippingCost < 0 {
			api.Error(w, http.StatusBadRequest, "Invalid shipping cost")
			return
		}
	}

	imageName, err := upload.Save(h.UploadDir, "", fh)
	if err != nil {
		api.ServerError(w, err)
		return
	}

	productType := r.FormValue("type")
	if productType == "" {
		productType = models.ProductVirtual
	}

	product := &models.Product{
		Title:        title,
		Description:  description,
		ImageURL:     "/uploads/" + imageName,
		Price:        price,
		Category:     r.FormValue("category"),
		Tags:         splitTags(r.FormValue("tags")),
		Type:         productType,
		ShippingCost: shippingCost,
		Seller:       middleware.UserID(r),
	}
	if err := h.Products.Create(r.Context(), product); err != nil {
		api.ServerError(w, err)
		return
	}
	api.JSON(w, http.StatusOK, product)
}

// attachSellers fills SellerInfo for listings. A missing seller document
// just leaves the field empty.
func (h *Handler) attachSellers(r *http.Request, products []*models.Product) {
	cache := make(map[string]*models.UserSummary)
	for _, p := range products {
		if p.Seller == "" {
			continue
		}
		if summary, ok := cache[p.Seller]; ok {
			p.SellerInfo = summary
			continue
		}
		user, err := h.Users.GetByID(r.Context(), p.Seller)
		if err != nil {
			continue
		}
		cache[p.Seller] = user.Summary()
		p.SellerInfo = cache[p.Seller]
	}
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
