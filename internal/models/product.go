package models

import "time"

// Product status.
const (
	ProductAvailable = "AVAILABLE"
	ProductSold      = "SOLD"
)

// Product type.
const (
	ProductVirtual = "Virtual"
	ProductFisico  = "Fisico"
)

// ProductCategories are the categories a listing may carry.
var ProductCategories = []string{
	"Naturaleza", "Tecnología", "Abstracto", "Servicios", "Negocios", "Arte",
}

type Product struct {
	ID           string       `json:"_id" bson:"_id"`
	Title        string       `json:"title" bson:"title"`
	Description  string       `json:"description" bson:"description"`
	ImageURL     string       `json:"imageUrl" bson:"image_url"`
	Price        float64      `json:"price" bson:"price"`
	Category     string       `json:"category" bson:"category"`
	Tags         []string     `json:"tags" bson:"tags"`
	Status       string       `json:"status" bson:"status"`
	Type         string       `json:"type" bson:"type"`
	ShippingCost float64      `json:"shippingCost" bson:"shipping_cost"`
	Seller       string       `json:"seller" bson:"seller"`
	SellerInfo   *UserSummary `json:"sellerInfo,omitempty" bson:"-"`
	CreatedAt    time.Time    `json:"createdAt" bson:"created_at"`
}

// ProductSummary is the shape pinned to chat messages that reference a
// listing.
type ProductSummary struct {
	ID       string `json:"_id" bson:"_id"`
	Title    string `json:"title" bson:"title"`
	ImageURL string `json:"image" bson:"image"`
}

func (p *Product) Summary() *ProductSummary {
	return &ProductSummary{ID: p.ID, Title: p.Title, ImageURL: p.ImageURL}
}
