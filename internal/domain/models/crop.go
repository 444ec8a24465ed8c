package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Crop status values.
const (
	CropStatusActive    = "active"
	CropStatusCompleted = "completed"
	CropStatusArchived  = "archived"
)

// Payment methods accepted on a PaymentEntry.
const (
	PaymentMethodCash         = "Cash"
	PaymentMethodPhonePe      = "PhonePe"
	PaymentMethodBankTransfer = "Bank Transfer"
	PaymentMethodUPI          = "UPI"
	PaymentMethodCheque       = "Cheque"
)

// PesticideEntry is one line item in a crop's pesticide cost sub-ledger.
type PesticideEntry struct {
	PesticideName string     `bson:"pesticideName" json:"pesticideName"`
	Quantity      float64    `bson:"quantity" json:"quantity"`
	Amount        float64    `bson:"amount" json:"amount"`
	Date          *time.Time `bson:"date,omitempty" json:"date,omitempty"`
}

// CoolieEntry is one line item of labor cost. Days defaults to 1.
type CoolieEntry struct {
	WorkType    string     `bson:"workType" json:"workType"`
	WorkerCount int        `bson:"workerCount" json:"workerCount"`
	Amount      float64    `bson:"amount" json:"amount"`
	Date        *time.Time `bson:"date,omitempty" json:"date,omitempty"`
	Days        int        `bson:"days" json:"days"`
}

// PaymentEntry is one payment made against the crop cycle. Method defaults to
// Cash.
type PaymentEntry struct {
	Amount  float64    `bson:"amount" json:"amount"`
	Date    *time.Time `bson:"date,omitempty" json:"date,omitempty"`
	Purpose string     `bson:"purpose,omitempty" json:"purpose,omitempty"`
	Method  string     `bson:"method" json:"method"`
}

// LatestUpdate records when a crop document was last written, driving the
// dashboard feed ordering.
type LatestUpdate struct {
	Date time.Time `bson:"date" json:"date"`
	Note string    `bson:"note,omitempty" json:"note,omitempty"`
}

// Crop represents one growing cycle for one farmer. The four total fields and
// netProfit are derived from the entry arrays on every save and are never
// trusted from the client.
type Crop struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FarmerDetails FarmerDetails      `bson:"farmerDetails" json:"farmerDetails"`

	SeedType      string  `bson:"seedType,omitempty" json:"seedType,omitempty"`
	Region        string  `bson:"region,omitempty" json:"region,omitempty"`
	Acres         float64 `bson:"acres" json:"acres"`
	MalePackets   int     `bson:"malePackets" json:"malePackets"`
	FemalePackets int     `bson:"femalePackets" json:"femalePackets"`

	SowingDateMale      *time.Time `bson:"sowingDateMale,omitempty" json:"sowingDateMale,omitempty"`
	SowingDateFemale    *time.Time `bson:"sowingDateFemale,omitempty" json:"sowingDateFemale,omitempty"`
	DetachingDateMale   *time.Time `bson:"detachingDateMale,omitempty" json:"detachingDateMale,omitempty"`
	DetachingDateFemale *time.Time `bson:"detachingDateFemale,omitempty" json:"detachingDateFemale,omitempty"`
	HarvestingDate      *time.Time `bson:"harvestingDate,omitempty" json:"harvestingDate,omitempty"`

	PesticideEntries []PesticideEntry `bson:"pesticideEntries" json:"pesticideEntries"`
	CoolieEntries    []CoolieEntry    `bson:"coolieEntries" json:"coolieEntries"`
	PaymentEntries   []PaymentEntry   `bson:"paymentEntries" json:"paymentEntries"`

	TotalIncome float64 `bson:"totalIncome" json:"totalIncome"`
	Yield       float64 `bson:"yield" json:"yield"`

	TotalPesticideCost float64 `bson:"totalPesticideCost" json:"totalPesticideCost"`
	TotalCoolieCost    float64 `bson:"totalCoolieCost" json:"totalCoolieCost"`
	TotalPaymentAmount float64 `bson:"totalPaymentAmount" json:"totalPaymentAmount"`
	NetProfit          float64 `bson:"netProfit" json:"netProfit"`

	Status       string        `bson:"status" json:"status"`
	LatestUpdate *LatestUpdate `bson:"latestUpdate,omitempty" json:"latestUpdate,omitempty"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// CropSummary is the compact projection returned from create and update
// operations. DurationDays is nil unless both sowingDateMale and
// harvestingDate are set.
type CropSummary struct {
	ID            primitive.ObjectID `json:"id"`
	FarmerDetails FarmerDetails      `json:"farmerDetails"`
	SeedType      string             `json:"seedType,omitempty"`
	Region        string             `json:"region,omitempty"`
	Acres         float64            `json:"acres"`
	TotalIncome   float64            `json:"totalIncome"`
	TotalExpenses float64            `json:"totalExpenses"`
	NetProfit     float64            `json:"netProfit"`
	Yield         float64            `json:"yield"`
	DurationDays  *int               `json:"duration"`
}

// CropFeedItem is the restricted projection served by the latest-updated feed.
type CropFeedItem struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	FarmerDetails FarmerDetails      `bson:"farmerDetails" json:"farmerDetails"`
	SeedType      string             `bson:"seedType,omitempty" json:"seedType,omitempty"`
	Region        string             `bson:"region,omitempty" json:"region,omitempty"`
	Status        string             `bson:"status" json:"status"`
	LatestUpdate  *LatestUpdate      `bson:"latestUpdate,omitempty" json:"latestUpdate,omitempty"`
}

// CropStats aggregates crop-level figures, optionally scoped to one farmer.
// A query matching no crops yields the zero value, not an error.
type CropStats struct {
	TotalCrops    int64   `bson:"totalCrops" json:"totalCrops"`
	TotalAcres    float64 `bson:"totalAcres" json:"totalAcres"`
	TotalIncome   float64 `bson:"totalIncome" json:"totalIncome"`
	TotalYield    float64 `bson:"totalYield" json:"totalYield"`
	AverageProfit float64 `bson:"averageProfit" json:"averageProfit"`
	ActiveCrops   int64   `bson:"activeCrops" json:"activeCrops"`
}

// ValidPaymentMethod reports whether method is one of the accepted values.
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCash, PaymentMethodPhonePe, PaymentMethodBankTransfer,
		PaymentMethodUPI, PaymentMethodCheque:
		return true
	}
	return false
}

// ValidCropStatus reports whether status is one of the accepted values.
func ValidCropStatus(status string) bool {
	switch status {
	case CropStatusActive, CropStatusCompleted, CropStatusArchived:
		return true
	}
	return false
}
