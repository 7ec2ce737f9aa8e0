package assets

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Revocube-Technologies/Asset-Management-Api/internal/repository"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/metadata"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
)

type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) GetAsset(id int) (*models.Asset, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetRepository) GetAssetForUpdate(tx *goqu.TxDatabase, id int) (*models.Asset, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetRepository) GetAssetsBy(status, assetType string, locationID int) ([]models.Asset, error) {
	args := m.Called(status, assetType, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Asset), args.Error(1)
}

func (m *MockAssetRepository) PersistAsset(tx *goqu.TxDatabase, req models.AssetRequest, serialNumber string) (int, error) {
	args := m.Called(tx, req, serialNumber)
	return args.Int(0), args.Error(1)
}

func (m *MockAssetRepository) UpdateAsset(id int, req models.AssetUpdateRequest) error {
	args := m.Called(id, req)
	return args.Error(0)
}

func (m *MockAssetRepository) NextSerialSequence(tx *goqu.TxDatabase, year int) (int, error) {
	args := m.Called(tx, year)
	return args.Int(0), args.Error(1)
}

func (m *MockAssetRepository) TransitionTo(tx *goqu.TxDatabase, assetID int, from []metadata.Status, to metadata.Status) error {
	args := m.Called(tx, assetID, from, to)
	return args.Error(0)
}

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) Exists(id int) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

type recorderSpy struct {
	events []string
}

func (r *recorderSpy) Record(assetID, adminID int, eventType, description string) {
	r.events = append(r.events, eventType)
}

func newTestRepository(t *testing.T) (*repository.Repository, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewRepository(db), mockDB
}

func TestCreateGeneratesSequentialSerial(t *testing.T) {
	repo, mockDB := newTestRepository(t)
	assetRepo := new(MockAssetRepository)
	locationRepo := new(MockLocationRepository)
	recorder := &recorderSpy{}

	service := NewAssetService(repo, assetRepo, locationRepo, recorder)

	req := models.AssetRequest{Name: "ThinkPad X1", Type: "Laptop", Price: 1500, PurchaseDate: time.Now(), LocationID: 2}
	year := time.Now().Year()
	expectedSerial := fmt.Sprintf("AST-%d-00042", year)

	mockDB.ExpectBegin()
	mockDB.ExpectCommit()

	locationRepo.On("Exists", 2).Return(true, nil).Once()
	assetRepo.On("NextSerialSequence", mock.Anything, year).Return(42, nil).Once()
	assetRepo.On("PersistAsset", mock.Anything, req, expectedSerial).Return(7, nil).Once()
	assetRepo.On("GetAsset", 7).Return(&models.Asset{ID: 7, Name: "ThinkPad X1", SerialNumber: expectedSerial, Status: metadata.StatusAvailable}, nil).Once()

	asset, err := service.Create(3, req)

	assert.NoError(t, err)
	assert.Equal(t, expectedSerial, asset.SerialNumber)
	assert.Equal(t, metadata.StatusAvailable, asset.Status)
	assert.Equal(t, []string{models.AssetEventCreated}, recorder.events)
	assert.NoError(t, mockDB.ExpectationsWereMet())
	assetRepo.AssertExpectations(t)
}

func TestCreateRejectsUnknownLocation(t *testing.T) {
	repo, _ := newTestRepository(t)
	assetRepo := new(MockAssetRepository)
	locationRepo := new(MockLocationRepository)

	service := NewAssetService(repo, assetRepo, locationRepo, &recorderSpy{})

	locationRepo.On("Exists", 99).Return(false, nil).Once()

	_, err := service.Create(3, models.AssetRequest{Name: "ThinkPad X1", Type: "Laptop", LocationID: 99})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assetRepo.AssertNotCalled(t, "PersistAsset", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetHidesDeletedAsset(t *testing.T) {
	repo, _ := newTestRepository(t)
	assetRepo := new(MockAssetRepository)

	service := NewAssetService(repo, assetRepo, new(MockLocationRepository), &recorderSpy{})

	assetRepo.On("GetAsset", 7).Return(&models.Asset{ID: 7, IsDeleted: true, Status: metadata.StatusRetired}, nil).Once()

	_, err := service.Get(7)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestSoftDeleteRetiresAsset(t *testing.T) {
	repo, mockDB := newTestRepository(t)
	assetRepo := new(MockAssetRepository)
	recorder := &recorderSpy{}

	service := NewAssetService(repo, assetRepo, new(MockLocationRepository), recorder)

	mockDB.ExpectBegin()
	mockDB.ExpectCommit()

	assetRepo.On("TransitionTo", mock.Anything, 7,
		metadata.Sources(metadata.EventRetire), metadata.StatusRetired).Return(nil).Once()
	assetRepo.On("GetAsset", 7).Return(&models.Asset{ID: 7, Status: metadata.StatusRetired, IsDeleted: true}, nil).Once()

	asset, err := service.SoftDelete(3, 7)

	assert.NoError(t, err)
	assert.True(t, asset.IsDeleted)
	assert.Equal(t, []string{models.AssetEventRetired}, recorder.events)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestSoftDeleteSurfacesAlreadyDeleted(t *testing.T) {
	repo, mockDB := newTestRepository(t)
	assetRepo := new(MockAssetRepository)

	service := NewAssetService(repo, assetRepo, new(MockLocationRepository), &recorderSpy{})

	mockDB.ExpectBegin()
	mockDB.ExpectRollback()

	assetRepo.On("TransitionTo", mock.Anything, 7,
		metadata.Sources(metadata.EventRetire), metadata.StatusRetired).
		Return(apperrors.AlreadyDeleted("asset %d has been deleted", 7)).Once()

	_, err := service.SoftDelete(3, 7)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindAlreadyDeleted, apperrors.KindOf(err))
}
