package models

import "time"

// Proposal status.
const (
	ProposalEspera    = "ESPERA"
	ProposalAceptada  = "ACEPTADA"
	ProposalRechazada = "RECHAZADA"
)

type Proposal struct {
	ID             string       `json:"_id" bson:"_id"`
	ProjectID      string       `json:"project_id" bson:"project_id"`
	FreelancerID   string       `json:"freelancer_id" bson:"freelancer_id"`
	FreelancerInfo *UserSummary `json:"freelancerInfo,omitempty" bson:"-"`
	Price          float64      `json:"price" bson:"price"`
	CoverLetter    string       `json:"cover_letter" bson:"cover_letter"`
	Status         string       `json:"status" bson:"status"`
	CreatedAt      time.Time    `json:"createdAt" bson:"created_at"`
}
