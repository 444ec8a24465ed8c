package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction is an independent ledger entry between two accounts. It has no
// relation to Farmer or Crop documents.
type Transaction struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DebitedFrom string             `bson:"debitedFrom" json:"debitedFrom"`
	CreditedTo  string             `bson:"creditedTo" json:"creditedTo"`
	Amount      float64            `bson:"amount" json:"amount"`
	Date        time.Time          `bson:"date" json:"date"`
	Note        string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AccountTotals is the aggregated balance view for one account. An account
// with no transactions yields the zero value.
type AccountTotals struct {
	AccountNumber string  `json:"accountNumber"`
	TotalCredited float64 `bson:"totalCredited" json:"totalCredited"`
	TotalDebited  float64 `bson:"totalDebited" json:"totalDebited"`
	NetAmount     float64 `json:"netAmount"`
}
