package models

import "time"

// Transaction status, decided by the mock gateway.
const (
	TxApproved = "APPROVED"
	TxDeclined = "DECLINED"
	TxError    = "ERROR"
)

type Transaction struct {
	ID          string       `json:"_id" bson:"_id"`
	BuyerID     string       `json:"buyer_id" bson:"buyer_id"`
	BuyerInfo   *UserSummary `json:"buyerInfo,omitempty" bson:"-"`
	SellerID    string       `json:"seller_id,omitempty" bson:"seller_id,omitempty"`
	ProjectID   string       `json:"project_id,omitempty" bson:"project_id,omitempty"`
	ProductID   string       `json:"product_id,omitempty" bson:"product_id,omitempty"`
	ProductInfo *Product     `json:"productInfo,omitempty" bson:"-"`
	Amount      float64      `json:"amount" bson:"amount"`
	CardLast4   string       `json:"card_last4" bson:"card_last4"`
	Status      string       `json:"status" bson:"status"`
	Timestamp   time.Time    `json:"timestamp" bson:"timestamp"`
}
