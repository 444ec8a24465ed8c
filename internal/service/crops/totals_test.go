package crops

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agridesk/farmbook/internal/domain/models"
)

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals(
		[]models.PesticideEntry{{Amount: 100}, {Amount: 50}},
		[]models.CoolieEntry{{Amount: 200}},
		[]models.PaymentEntry{},
	)

	assert.Equal(t, 150.0, totals.Pesticide)
	assert.Equal(t, 200.0, totals.Coolie)
	assert.Equal(t, 0.0, totals.Payment)
	assert.Equal(t, 350.0, totals.Expenses())
}

func TestComputeTotals_EmptyAndNilArrays(t *testing.T) {
	totals := ComputeTotals(nil, nil, nil)
	assert.Equal(t, Totals{}, totals)

	totals = ComputeTotals([]models.PesticideEntry{}, []models.CoolieEntry{}, []models.PaymentEntry{})
	assert.Equal(t, Totals{}, totals)
}

func TestComputeTotals_ZeroAmountEntriesCountAsZero(t *testing.T) {
	totals := ComputeTotals(
		[]models.PesticideEntry{{PesticideName: "neem oil"}},
		[]models.CoolieEntry{{WorkType: "weeding"}},
		[]models.PaymentEntry{{Purpose: "advance"}},
	)
	assert.Equal(t, Totals{}, totals)
}

func TestComputeTotals_Idempotent(t *testing.T) {
	pesticide := []models.PesticideEntry{{Amount: 12.5}, {Amount: 7.25}}
	coolie := []models.CoolieEntry{{Amount: 300}, {Amount: 450}}
	payment := []models.PaymentEntry{{Amount: 99.99}}

	first := ComputeTotals(pesticide, coolie, payment)
	second := ComputeTotals(pesticide, coolie, payment)
	assert.Equal(t, first, second)
}

func TestNetProfit(t *testing.T) {
	totals := Totals{Pesticide: 150, Coolie: 200, Payment: 0}
	assert.Equal(t, 650.0, NetProfit(1000, totals))
	assert.Equal(t, -350.0, NetProfit(0, totals))
}

func TestDurationDays(t *testing.T) {
	sowing := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	harvest := time.Date(2025, 9, 14, 0, 0, 0, 0, time.UTC)

	got := DurationDays(&sowing, &harvest)
	require.NotNil(t, got)
	assert.Equal(t, 105, *got)
}

func TestDurationDays_PartialDaysRoundUp(t *testing.T) {
	sowing := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	harvest := time.Date(2025, 6, 3, 6, 0, 0, 0, time.UTC)

	got := DurationDays(&sowing, &harvest)
	require.NotNil(t, got)
	assert.Equal(t, 3, *got)
}

func TestDurationDays_MissingDates(t *testing.T) {
	sowing := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, DurationDays(nil, nil))
	assert.Nil(t, DurationDays(&sowing, nil))
	assert.Nil(t, DurationDays(nil, &sowing))
}

func TestDurationDays_HarvestBeforeSowing(t *testing.T) {
	sowing := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	harvest := sowing.Add(-24 * time.Hour)

	assert.Nil(t, DurationDays(&sowing, &harvest))
}

func TestSummarize(t *testing.T) {
	sowing := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	harvest := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	crop := &models.Crop{
		FarmerDetails:      models.FarmerDetails{Aadhar: "123456789012", FirstName: "A", LastName: "B"},
		SeedType:           "hybrid maize",
		Region:             "Nalgonda",
		Acres:              3.5,
		TotalIncome:        1000,
		Yield:              12,
		TotalPesticideCost: 150,
		TotalCoolieCost:    200,
		TotalPaymentAmount: 50,
		NetProfit:          600,
		SowingDateMale:     &sowing,
		HarvestingDate:     &harvest,
	}

	summary := Summarize(crop)

	assert.Equal(t, crop.FarmerDetails, summary.FarmerDetails)
	assert.Equal(t, 400.0, summary.TotalExpenses)
	assert.Equal(t, 600.0, summary.NetProfit)
	require.NotNil(t, summary.DurationDays)
	assert.Equal(t, 30, *summary.DurationDays)
}
