// Package storage defines the store contracts consumed by the API handlers.
// Two implementations exist: memory (default, also used by tests) and mongo.
package storage

import (
	"context"
	"errors"

	"github.com/skyps2003/Freelancer/internal/models"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint would be violated,
// such as registering an email twice.
var ErrDuplicate = errors.New("duplicate")

// ProductFilter narrows a product listing query. Empty fields match
// everything; Search matches title, description and tags case-insensitively.
type ProductFilter struct {
	Category string
	Search   string
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	// AddToWallet credits amount to the user's wallet.
	AddToWallet(ctx context.Context, id string, amount float64) error
}

type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// List returns matching products, newest first.
	List(ctx context.Context, f ProductFilter) ([]*models.Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*models.Product, error)
	SetStatus(ctx context.Context, id, status string) error
}

type OfferStore interface {
	Create(ctx context.Context, o *models.Offer) error
	GetByID(ctx context.Context, id string) (*models.Offer, error)
	List(ctx context.Context) ([]*models.Offer, error)
	ListByEmployer(ctx context.Context, employerID string) ([]*models.Offer, error)
	// AddApplicant prepends the application and returns the updated list.
	AddApplicant(ctx context.Context, offerID string, a models.Applicant) ([]models.Applicant, error)
}

type ProjectStore interface {
	Create(ctx context.Context, p *models.Project) error
	GetByID(ctx context.Context, id string) (*models.Project, error)
	ListByCompany(ctx context.Context, companyID string) ([]*models.Project, error)
	ListByStatus(ctx context.Context, statuses []string) ([]*models.Project, error)
	SetStatus(ctx context.Context, id, status string) error
}

type ProposalStore interface {
	Create(ctx context.Context, p *models.Proposal) error
	GetByID(ctx context.Context, id string) (*models.Proposal, error)
	ListByProject(ctx context.Context, projectID string) ([]*models.Proposal, error)
	FindByProjectAndFreelancer(ctx context.Context, projectID, freelancerID string) (*models.Proposal, error)
	SetStatus(ctx context.Context, id, status string) error
}

type TransactionStore interface {
	Create(ctx context.Context, t *models.Transaction) error
	// ListApprovedByBuyer returns approved purchases, newest first.
	ListApprovedByBuyer(ctx context.Context, buyerID string) ([]*models.Transaction, error)
	CountApprovedBySeller(ctx context.Context, sellerID string) (int64, error)
	GetApprovedByProduct(ctx context.Context, productID string) (*models.Transaction, error)
}

type MessageStore interface {
	Create(ctx context.Context, m *models.Message) error
	// Thread returns every message exchanged between a and b, ascending by
	// creation time, ties broken by ascending ID.
	Thread(ctx context.Context, a, b string) ([]*models.Message, error)
	// ListForUser returns every message where userID is sender or receiver,
	// descending by creation time, ties broken by descending ID.
	ListForUser(ctx context.Context, userID string) ([]*models.Message, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID string) ([]*models.Notification, error)
	// MarkRead flips the read flag. It is idempotent; the bool reports
	// whether this call performed the false->true transition.
	MarkRead(ctx context.Context, id, recipientID string) (*models.Notification, bool, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
}
