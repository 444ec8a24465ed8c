package models

import "time"

// DailyReport is the scheduled end-of-day snapshot of farm-wide figures,
// persisted for trend history and optionally exported/pushed.
type DailyReport struct {
	Date              time.Time `bson:"date" json:"date"`
	TotalFarmers      int64     `bson:"totalFarmers" json:"totalFarmers"`
	Crops             CropStats `bson:"crops" json:"crops"`
	TransactionCount  int64     `bson:"transactionCount" json:"transactionCount"`
	TransactionVolume float64   `bson:"transactionVolume" json:"transactionVolume"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
}
