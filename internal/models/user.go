package models

import "time"

// User roles.
const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleEmpresa    = "EMPRESA"
	RoleFreelancer = "FREELANCER"
)

type User struct {
	ID        string    `json:"_id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	Avatar    string    `json:"avatar" bson:"avatar"`
	Bio       string    `json:"bio" bson:"bio"`
	Role      string    `json:"role" bson:"role"`
	Wallet    float64   `json:"wallet" bson:"wallet"`
	Skills    []string  `json:"skills" bson:"skills"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// UserSummary is the lightweight shape embedded when a document references
// a user (seller, employer, applicant, conversation partner).
type UserSummary struct {
	ID     string `json:"_id" bson:"_id"`
	Name   string `json:"name" bson:"name"`
	Avatar string `json:"avatar" bson:"avatar"`
	Email  string `json:"email,omitempty" bson:"email,omitempty"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}
