package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/agridesk/farmbook/internal/config"
	"github.com/agridesk/farmbook/internal/domain/models"
)

const (
	cropsSheetRange   = "Crops!A:J"
	reportsSheetRange = "DailyReports!A:G"

	dateLayout = "2006-01-02"
)

// Repository defines the spreadsheet export operations.
type Repository interface {
	AppendCropSummary(ctx context.Context, summary models.CropSummary) error
	AppendDailyReport(ctx context.Context, report models.DailyReport) error
}

// GoogleSheetRepository implements Repository using the official Google
// Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed export instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendCropSummary writes one crop summary row to the Crops sheet.
func (r *GoogleSheetRepository) AppendCropSummary(ctx context.Context, summary models.CropSummary) error {
	duration := ""
	if summary.DurationDays != nil {
		duration = fmt.Sprintf("%d", *summary.DurationDays)
	}

	row := []interface{}{
		summary.ID.Hex(),
		summary.FarmerDetails.Aadhar,
		fmt.Sprintf("%s %s", summary.FarmerDetails.FirstName, summary.FarmerDetails.LastName),
		summary.SeedType,
		summary.Region,
		summary.Acres,
		summary.TotalIncome,
		summary.TotalExpenses,
		summary.NetProfit,
		duration,
	}

	return r.appendRow(ctx, cropsSheetRange, row)
}

// AppendDailyReport writes one daily snapshot row to the DailyReports sheet.
func (r *GoogleSheetRepository) AppendDailyReport(ctx context.Context, report models.DailyReport) error {
	row := []interface{}{
		report.Date.Format(dateLayout),
		report.TotalFarmers,
		report.Crops.TotalCrops,
		report.Crops.ActiveCrops,
		report.Crops.TotalIncome,
		report.TransactionCount,
		report.TransactionVolume,
	}

	return r.appendRow(ctx, reportsSheetRange, row)
}

func (r *GoogleSheetRepository) appendRow(ctx context.Context, sheetRange string, values []interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("row appended to sheet", zap.String("range", sheetRange))
	return nil
}
