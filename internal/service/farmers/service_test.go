package farmers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/agridesk/farmbook/internal/domain/apperr"
	"github.com/agridesk/farmbook/internal/domain/models"
)

// fakeFarmerRepo mimics the storage layer's unique-index behaviour on aadhar
// and bankAccountNumber.
type fakeFarmerRepo struct {
	byAadhar map[string]*models.Farmer
	byBank   map[string]string
}

func newFakeFarmerRepo() *fakeFarmerRepo {
	return &fakeFarmerRepo{
		byAadhar: make(map[string]*models.Farmer),
		byBank:   make(map[string]string),
	}
}

func (f *fakeFarmerRepo) InsertFarmer(_ context.Context, farmer *models.Farmer) error {
	if _, ok := f.byAadhar[farmer.Aadhar]; ok {
		return apperr.Duplicate("farmer with this aadhar or bank account already exists", nil)
	}
	if _, ok := f.byBank[farmer.BankAccountNumber]; ok {
		return apperr.Duplicate("farmer with this aadhar or bank account already exists", nil)
	}
	farmer.ID = primitive.NewObjectID()
	stored := *farmer
	f.byAadhar[farmer.Aadhar] = &stored
	f.byBank[farmer.BankAccountNumber] = farmer.Aadhar
	return nil
}

func (f *fakeFarmerRepo) ListFarmers(_ context.Context) ([]models.Farmer, error) {
	out := make([]models.Farmer, 0, len(f.byAadhar))
	for _, fm := range f.byAadhar {
		out = append(out, *fm)
	}
	return out, nil
}

func (f *fakeFarmerRepo) GetFarmerByAadhar(_ context.Context, aadhar string) (*models.Farmer, error) {
	fm, ok := f.byAadhar[aadhar]
	if !ok {
		return nil, apperr.NotFound("farmer with aadhar %s not found", aadhar)
	}
	copied := *fm
	return &copied, nil
}

func (f *fakeFarmerRepo) ReplaceFarmerByAadhar(_ context.Context, aadhar string, farmer *models.Farmer) error {
	if _, ok := f.byAadhar[aadhar]; !ok {
		return apperr.NotFound("farmer with aadhar %s not found", aadhar)
	}
	stored := *farmer
	f.byAadhar[aadhar] = &stored
	return nil
}

func (f *fakeFarmerRepo) DeleteFarmerByAadhar(_ context.Context, aadhar string) error {
	if _, ok := f.byAadhar[aadhar]; !ok {
		return apperr.NotFound("farmer with aadhar %s not found", aadhar)
	}
	delete(f.byAadhar, aadhar)
	return nil
}

func (f *fakeFarmerRepo) CountFarmers(_ context.Context) (int64, error) {
	return int64(len(f.byAadhar)), nil
}

func validFarmer() *models.Farmer {
	return &models.Farmer{
		FirstName:         "A",
		LastName:          "B",
		Aadhar:            "123456789012",
		Mobile:            "9876543210",
		BankAccountNumber: "123456789",
		Village:           "X",
	}
}

func TestCreate_StoresFarmer(t *testing.T) {
	svc := NewService(newFakeFarmerRepo(), nil)

	created, err := svc.Create(context.Background(), validFarmer())
	require.NoError(t, err)

	assert.Equal(t, "123456789012", created.Aadhar)
	assert.False(t, created.ID.IsZero())
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreate_DuplicateAadharRejected(t *testing.T) {
	repo := newFakeFarmerRepo()
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), validFarmer())
	require.NoError(t, err)

	second := validFarmer()
	second.BankAccountNumber = "987654321"
	_, err = svc.Create(context.Background(), second)
	require.Error(t, err)
	assert.Equal(t, apperr.KindDuplicateKey, apperr.KindOf(err))

	// No second document was created.
	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreate_DuplicateBankAccountRejected(t *testing.T) {
	svc := NewService(newFakeFarmerRepo(), nil)

	_, err := svc.Create(context.Background(), validFarmer())
	require.NoError(t, err)

	second := validFarmer()
	second.Aadhar = "999999999999"
	_, err = svc.Create(context.Background(), second)
	require.Error(t, err)
	assert.Equal(t, apperr.KindDuplicateKey, apperr.KindOf(err))
}

func TestCreate_ShapeValidation(t *testing.T) {
	svc := NewService(newFakeFarmerRepo(), nil)

	tests := []struct {
		name   string
		mutate func(*models.Farmer)
	}{
		{"short aadhar", func(f *models.Farmer) { f.Aadhar = "12345678901" }},
		{"alpha aadhar", func(f *models.Farmer) { f.Aadhar = "12345678901x" }},
		{"short mobile", func(f *models.Farmer) { f.Mobile = "987654321" }},
		{"short bank account", func(f *models.Farmer) { f.BankAccountNumber = "12345678" }},
		{"missing village", func(f *models.Farmer) { f.Village = "" }},
		{"missing name", func(f *models.Farmer) { f.FirstName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			farmer := validFarmer()
			tt.mutate(farmer)

			_, err := svc.Create(context.Background(), farmer)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(newFakeFarmerRepo(), nil)

	_, err := svc.Get(context.Background(), "123456789012")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdate_PreservesIdentityAndCreatedAt(t *testing.T) {
	repo := newFakeFarmerRepo()
	svc := NewService(repo, nil)

	created, err := svc.Create(context.Background(), validFarmer())
	require.NoError(t, err)

	update := validFarmer()
	update.Village = "Y"
	updated, err := svc.Update(context.Background(), "123456789012", update)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Y", updated.Village)
}

func TestDelete(t *testing.T) {
	svc := NewService(newFakeFarmerRepo(), nil)

	_, err := svc.Create(context.Background(), validFarmer())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "123456789012"))

	err = svc.Delete(context.Background(), "123456789012")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
