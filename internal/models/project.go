package models

import "time"

// Project status. Posted projects start PENDIENTE, move to EN_LICITACION on
// the first proposal, ASIGNADO when the company accepts one, and FINALIZADO
// after checkout.
const (
	ProjectPendiente    = "PENDIENTE"
	ProjectEnLicitacion = "EN_LICITACION"
	ProjectAsignado     = "ASIGNADO"
	ProjectFinalizado   = "FINALIZADO"
)

type Project struct {
	ID          string       `json:"_id" bson:"_id"`
	CompanyID   string       `json:"company_id" bson:"company_id"`
	CompanyInfo *UserSummary `json:"companyInfo,omitempty" bson:"-"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description" bson:"description"`
	BudgetMax   float64      `json:"budget_max" bson:"budget_max"`
	Deadline    time.Time    `json:"deadline" bson:"deadline"`
	Status      string       `json:"status" bson:"status"`
	CreatedAt   time.Time    `json:"createdAt" bson:"created_at"`
}
