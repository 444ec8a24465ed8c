package crops

import (
	"math"
	"time"

	"github.com/agridesk/farmbook/internal/domain/models"
)

// Totals carries the three derived cost figures for one crop.
type Totals struct {
	Pesticide float64
	Coolie    float64
	Payment   float64
}

// Expenses returns the combined cost across all three sub-ledgers.
func (t Totals) Expenses() float64 {
	return t.Pesticide + t.Coolie + t.Payment
}

// ComputeTotals reduces the entry arrays to their cost totals. It is pure and
// unconditional: whatever totals the client sent are ignored. Empty or nil
// arrays yield zeros.
func ComputeTotals(pesticide []models.PesticideEntry, coolie []models.CoolieEntry, payment []models.PaymentEntry) Totals {
	var t Totals
	for _, e := range pesticide {
		t.Pesticide += e.Amount
	}
	for _, e := range coolie {
		t.Coolie += e.Amount
	}
	for _, e := range payment {
		t.Payment += e.Amount
	}
	return t
}

// NetProfit computes totalIncome minus all derived costs.
func NetProfit(totalIncome float64, t Totals) float64 {
	return totalIncome - t.Expenses()
}

// DurationDays returns the whole-day span between male sowing and harvest,
// rounded up. Nil when either date is missing or harvest precedes sowing.
func DurationDays(sowingDateMale, harvestingDate *time.Time) *int {
	if sowingDateMale == nil || harvestingDate == nil {
		return nil
	}
	diff := harvestingDate.Sub(*sowingDateMale)
	if diff < 0 {
		return nil
	}
	days := int(math.Ceil(diff.Hours() / 24))
	return &days
}

// Summarize produces the compact projection returned from create and update
// operations.
func Summarize(crop *models.Crop) models.CropSummary {
	return models.CropSummary{
		ID:            crop.ID,
		FarmerDetails: crop.FarmerDetails,
		SeedType:      crop.SeedType,
		Region:        crop.Region,
		Acres:         crop.Acres,
		TotalIncome:   crop.TotalIncome,
		TotalExpenses: crop.TotalPesticideCost + crop.TotalCoolieCost + crop.TotalPaymentAmount,
		NetProfit:     crop.NetProfit,
		Yield:         crop.Yield,
		DurationDays:  DurationDays(crop.SowingDateMale, crop.HarvestingDate),
	}
}
