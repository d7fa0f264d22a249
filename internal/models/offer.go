package models

import "time"

// Offer status.
const (
	OfferOpen   = "OPEN"
	OfferClosed = "CLOSED"
)

type Applicant struct {
	User     string       `json:"user" bson:"user"`
	Message  string       `json:"message" bson:"message"`
	CVURL    string       `json:"cvUrl,omitempty" bson:"cv_url,omitempty"`
	Date     time.Time    `json:"date" bson:"date"`
	UserInfo *UserSummary `json:"userInfo,omitempty" bson:"-"`
}

type Offer struct {
	ID           string       `json:"_id" bson:"_id"`
	Employer     string       `json:"employer" bson:"employer"`
	EmployerInfo *UserSummary `json:"employerInfo,omitempty" bson:"-"`
	Title        string       `json:"title" bson:"title"`
	Description  string       `json:"description" bson:"description"`
	Budget       float64      `json:"budget" bson:"budget"`
	Category     string       `json:"category" bson:"category"`
	Deadline     *time.Time   `json:"deadline,omitempty" bson:"deadline,omitempty"`
	Duration     string       `json:"duration,omitempty" bson:"duration,omitempty"`
	ProjectType  string       `json:"projectType,omitempty" bson:"project_type,omitempty"`
	Status       string       `json:"status" bson:"status"`
	Applicants   []Applicant  `json:"applicants" bson:"applicants"`
	CreatedAt    time.Time    `json:"createdAt" bson:"created_at"`
}
