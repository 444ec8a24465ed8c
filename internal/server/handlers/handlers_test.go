package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/agridesk/farmbook/internal/domain/apperr"
	"github.com/agridesk/farmbook/internal/domain/models"
	"github.com/agridesk/farmbook/internal/domain/validation"
	"github.com/agridesk/farmbook/internal/server/handlers"
	"github.com/agridesk/farmbook/internal/server/router"
)

func TestMain(m *testing.M) {
	if err := validation.RegisterBindingRules(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type stubFarmerService struct {
	createErr error
}

func (s *stubFarmerService) Create(_ context.Context, farmer *models.Farmer) (*models.Farmer, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	farmer.ID = primitive.NewObjectID()
	return farmer, nil
}

func (s *stubFarmerService) List(_ context.Context) ([]models.Farmer, error) {
	return []models.Farmer{}, nil
}

func (s *stubFarmerService) Get(_ context.Context, aadhar string) (*models.Farmer, error) {
	return nil, apperr.NotFound("farmer with aadhar %s not found", aadhar)
}

func (s *stubFarmerService) Update(_ context.Context, _ string, farmer *models.Farmer) (*models.Farmer, error) {
	return farmer, nil
}

func (s *stubFarmerService) Delete(_ context.Context, _ string) error { return nil }

type stubCropService struct {
	summary *models.CropSummary
	err     error
}

func (s *stubCropService) Create(_ context.Context, _ *models.Crop) (*models.CropSummary, error) {
	return s.summary, s.err
}

func (s *stubCropService) Update(_ context.Context, _ string, _ *models.Crop) (*models.CropSummary, error) {
	return s.summary, s.err
}

func (s *stubCropService) Get(_ context.Context, idHex string) (*models.Crop, error) {
	return nil, apperr.NotFound("crop %s not found", idHex)
}

func (s *stubCropService) List(_ context.Context) ([]models.Crop, error) {
	return []models.Crop{}, nil
}

func (s *stubCropService) Delete(_ context.Context, _ string) error { return nil }

func (s *stubCropService) FindByFarmer(_ context.Context, _ string) ([]models.Crop, error) {
	return []models.Crop{}, nil
}

func (s *stubCropService) LatestUpdated(_ context.Context, _ int64) ([]models.CropFeedItem, error) {
	return []models.CropFeedItem{}, nil
}

func (s *stubCropService) Stats(_ context.Context, _ string) (models.CropStats, error) {
	return models.CropStats{}, nil
}

type stubTransactionService struct{}

func (s *stubTransactionService) Create(_ context.Context, txn *models.Transaction) (*models.Transaction, error) {
	if txn.Amount <= 0 {
		return nil, apperr.Validation("amount must be greater than zero")
	}
	txn.ID = primitive.NewObjectID()
	return txn, nil
}

func (s *stubTransactionService) List(_ context.Context) ([]models.Transaction, error) {
	return []models.Transaction{}, nil
}

func (s *stubTransactionService) Get(_ context.Context, idHex string) (*models.Transaction, error) {
	return nil, apperr.NotFound("transaction %s not found", idHex)
}

func (s *stubTransactionService) Update(_ context.Context, _ string, txn *models.Transaction) (*models.Transaction, error) {
	return txn, nil
}

func (s *stubTransactionService) Delete(_ context.Context, _ string) error { return nil }

func (s *stubTransactionService) ListByAccount(_ context.Context, _ string) ([]models.Transaction, error) {
	return []models.Transaction{}, nil
}

func (s *stubTransactionService) TotalsForAccount(_ context.Context, accountNumber string) (models.AccountTotals, error) {
	return models.AccountTotals{AccountNumber: accountNumber}, nil
}

type stubReportService struct{}

func (s *stubReportService) RunDailySnapshot(_ context.Context, asOf time.Time) (models.DailyReport, error) {
	return models.DailyReport{Date: asOf}, nil
}

func (s *stubReportService) History(_ context.Context, _ int64) ([]models.DailyReport, error) {
	return []models.DailyReport{}, nil
}

func newTestEngine(cropSvc handlers.CropService, farmerSvc handlers.FarmerService) http.Handler {
	return router.New(router.Handlers{
		Farmers:      handlers.NewFarmerHandler(farmerSvc, nil),
		Crops:        handlers.NewCropHandler(cropSvc, nil, nil),
		Transactions: handlers.NewTransactionHandler(&stubTransactionService{}, nil),
		Reports:      handlers.NewReportHandler(&stubReportService{}, nil),
	}, nil)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, engine http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestCropCreate_RespondsWithSummaryEnvelope(t *testing.T) {
	summary := &models.CropSummary{
		ID:            primitive.NewObjectID(),
		FarmerDetails: models.FarmerDetails{Aadhar: "123456789012"},
		TotalExpenses: 350,
		NetProfit:     650,
	}
	engine := newTestEngine(&stubCropService{summary: summary}, &stubFarmerService{})

	rec, env := doJSON(t, engine, http.MethodPost, "/crops", map[string]any{
		"farmerDetails": map[string]string{"aadhar": "123456789012"},
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "crop created", env.Message)

	var got models.CropSummary
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 650.0, got.NetProfit)
}

func TestCropCreate_InvalidFarmerReferenceIs422(t *testing.T) {
	engine := newTestEngine(&stubCropService{err: apperr.InvalidFarmerReference("farmerDetails with a 12-digit aadhar is required")}, &stubFarmerService{})

	rec, env := doJSON(t, engine, http.MethodPost, "/crops", map[string]any{})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, string(apperr.KindInvalidFarmerReference), env.Error.Code)
}

func TestCropGet_NotFoundIs404(t *testing.T) {
	engine := newTestEngine(&stubCropService{}, &stubFarmerService{})

	rec, env := doJSON(t, engine, http.MethodGet, "/crops/"+primitive.NewObjectID().Hex(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, string(apperr.KindNotFound), env.Error.Code)
}

func TestCropExport_UnconfiguredIs400(t *testing.T) {
	engine := newTestEngine(&stubCropService{}, &stubFarmerService{})

	rec, env := doJSON(t, engine, http.MethodPost, "/crops/export", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
}

func TestFarmerCreate_DuplicateIs409(t *testing.T) {
	engine := newTestEngine(&stubCropService{}, &stubFarmerService{
		createErr: apperr.Duplicate("farmer with this aadhar or bank account already exists", nil),
	})

	rec, env := doJSON(t, engine, http.MethodPost, "/farmers", map[string]string{
		"firstName":         "A",
		"lastName":          "B",
		"aadhar":            "123456789012",
		"mobile":            "9876543210",
		"bankAccountNumber": "123456789",
		"village":           "X",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, string(apperr.KindDuplicateKey), env.Error.Code)
}

func TestFarmerCreate_MalformedBodyIs400(t *testing.T) {
	engine := newTestEngine(&stubCropService{}, &stubFarmerService{})

	req := httptest.NewRequest(http.MethodPost, "/farmers", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAccountTotals_EmptyAccountIsOK(t *testing.T) {
	engine := newTestEngine(&stubCropService{}, &stubFarmerService{})

	rec, env := doJSON(t, engine, http.MethodGet, "/transactions/account/999999999999/total", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	var totals models.AccountTotals
	require.NoError(t, json.Unmarshal(env.Data, &totals))
	assert.Equal(t, 0.0, totals.NetAmount)
}

func TestCropStats_EmptySystemIsOK(t *testing.T) {
	engine := newTestEngine(&stubCropService{}, &stubFarmerService{})

	rec, env := doJSON(t, engine, http.MethodGet, "/crops/stats", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	var stats models.CropStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(0), stats.TotalCrops)
}

func TestFeedLimitValidation(t *testing.T) {
	engine := newTestEngine(&stubCropService{}, &stubFarmerService{})

	rec, _ := doJSON(t, engine, http.MethodGet, "/crops/feed/latest?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
