package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Farmer is a registered farmer. Aadhar is the natural key; both aadhar and
// bankAccountNumber carry unique indexes at the storage layer.
type Farmer struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName         string             `bson:"firstName" json:"firstName" binding:"required,max=100"`
	LastName          string             `bson:"lastName" json:"lastName" binding:"required,max=100"`
	Aadhar            string             `bson:"aadhar" json:"aadhar" binding:"required,aadhar"`
	Mobile            string             `bson:"mobile" json:"mobile" binding:"required,inmobile"`
	BankAccountNumber string             `bson:"bankAccountNumber" json:"bankAccountNumber" binding:"required,bankacct"`
	Village           string             `bson:"village" json:"village" binding:"required,max=100"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FarmerDetails is the denormalized snapshot embedded in every Crop at
// creation time. It is a point-in-time copy and is never re-synced when the
// Farmer document is later edited.
type FarmerDetails struct {
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	Aadhar    string `bson:"aadhar" json:"aadhar"`
	Mobile    string `bson:"mobile,omitempty" json:"mobile,omitempty"`
	Village   string `bson:"village,omitempty" json:"village,omitempty"`
}
