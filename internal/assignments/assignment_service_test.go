package assignments

import (
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

type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) InsertAssignment(tx *goqu.TxDatabase, req models.AssignmentRequest, adminID int) (*models.Assignment, error) {
	args := m.Called(tx, req, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetAssignmentForUpdate(tx *goqu.TxDatabase, id int) (*models.Assignment, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) CloseAssignment(tx *goqu.TxDatabase, id int, returnDate time.Time, condition string, receivedByID int) error {
	args := m.Called(tx, id, returnDate, condition, receivedByID)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetAssignment(id int) (*models.Assignment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetAssignments() ([]models.Assignment, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Assignment), args.Error(1)
}

type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) GetAssetForUpdate(tx *goqu.TxDatabase, id int) (*models.Asset, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetRepository) Transition(tx *goqu.TxDatabase, assetID int, event metadata.Event) error {
	args := m.Called(tx, assetID, event)
	return args.Error(0)
}

type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) Exists(id int) (bool, error) {
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

func TestAssignHandsOutAvailableAsset(t *testing.T) {
	repo, mockDB := newTestRepository(t)
	assignmentRepo := new(MockAssignmentRepository)
	assetRepo := new(MockAssetRepository)
	departmentRepo := new(MockDepartmentRepository)
	recorder := &recorderSpy{}

	service := NewAssignmentService(repo, assignmentRepo, assetRepo, departmentRepo, recorder)

	req := models.AssignmentRequest{AssetID: 7, EmployeeName: "Jane Okafor"}
	asset := &models.Asset{ID: 7, Status: metadata.StatusAvailable}
	assignment := &models.Assignment{ID: 42, AssetID: 7, EmployeeName: "Jane Okafor"}

	mockDB.ExpectBegin()
	mockDB.ExpectCommit()

	assetRepo.On("GetAssetForUpdate", mock.Anything, 7).Return(asset, nil).Once()
	assignmentRepo.On("InsertAssignment", mock.Anything, req, 3).Return(assignment, nil).Once()
	assetRepo.On("Transition", mock.Anything, 7, metadata.EventAssign).Return(nil).Once()

	result, err := service.Assign(3, req)

	assert.NoError(t, err)
	assert.Equal(t, 42, result.ID)
	assert.Equal(t, []string{models.AssetEventAssigned}, recorder.events)
	assert.NoError(t, mockDB.ExpectationsWereMet())
	assignmentRepo.AssertExpectations(t)
	assetRepo.AssertExpectations(t)
}

func TestAssignRejectsBusyAsset(t *testing.T) {
	repo, mockDB := newTestRepository(t)
	assignmentRepo := new(MockAssignmentRepository)
	assetRepo := new(MockAssetRepository)
	departmentRepo := new(MockDepartmentRepository)
	recorder := &recorderSpy{}

	service := NewAssignmentService(repo, assignmentRepo, assetRepo, departmentRepo, recorder)

	asset := &models.Asset{ID: 7, Status: metadata.StatusAssigned}

	mockDB.ExpectBegin()
	mockDB.ExpectRollback()

	assetRepo.On("GetAssetForUpdate", mock.Anything, 7).Return(asset, nil).Once()

	_, err := service.Assign(3, models.AssignmentRequest{AssetID: 7, EmployeeName: "Jane Okafor"})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Empty(t, recorder.events)
	assignmentRepo.AssertNotCalled(t, "InsertAssignment", mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestAssignRejectsDeletedAsset(t *testing.T) {
	repo, mockDB := newTestRepository(t)
	assignmentRepo := new(MockAssignmentRepository)
	assetRepo := new(MockAssetRepository)
	departmentRepo := new(MockDepartmentRepository)

	service := NewAssignmentService(repo, assignmentRepo, assetRepo, departmentRepo, &recorderSpy{})

	asset := &models.Asset{ID: 7, Status: metadata.StatusRetired, IsDeleted: true}

	mockDB.ExpectBegin()
	mockDB.ExpectRollback()

	assetRepo.On("GetAssetForUpdate", mock.Anything, 7).Return(asset, nil).Once()

	_, err := service.Assign(3, models.AssignmentRequest{AssetID: 7, EmployeeName: "Jane Okafor"})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindAlreadyDeleted, apperrors.KindOf(err))
}

func TestAssignRejectsUnknownDepartment(t *testing.T) {
	repo, _ := newTestRepository(t)
	assignmentRepo := new(MockAssignmentRepository)
	assetRepo := new(MockAssetRepository)
	departmentRepo := new(MockDepartmentRepository)

	service := NewAssignmentService(repo, assignmentRepo, assetRepo, departmentRepo, &recorderSpy{})

	departmentID := 99
	departmentRepo.On("Exists", 99).Return(false, nil).Once()

	_, err := service.Assign(3, models.AssignmentRequest{
		AssetID:      7,
		EmployeeName: "Jane Okafor",
		DepartmentID: &departmentID,
	})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assetRepo.AssertNotCalled(t, "GetAssetForUpdate", mock.Anything, mock.Anything)
}

func TestReturnClosesOpenAssignment(t *testing.T) {
	repo, mockDB := newTestRepository(t)
	assignmentRepo := new(MockAssignmentRepository)
	assetRepo := new(MockAssetRepository)
	recorder := &recorderSpy{}

	service := NewAssignmentService(repo, assignmentRepo, assetRepo, new(MockDepartmentRepository), recorder)

	assignment := &models.Assignment{ID: 42, AssetID: 7, EmployeeName: "Jane Okafor"}

	mockDB.ExpectBegin()
	mockDB.ExpectCommit()

	assignmentRepo.On("GetAssignmentForUpdate", mock.Anything, 42).Return(assignment, nil).Once()
	assignmentRepo.On("CloseAssignment", mock.Anything, 42, mock.Anything, "Good", 3).Return(nil).Once()
	assetRepo.On("Transition", mock.Anything, 7, metadata.EventReturn).Return(nil).Once()

	result, err := service.Return(3, models.ReturnRequest{AssignmentID: 42, ConditionAtReturn: "Good"})

	assert.NoError(t, err)
	assert.NotNil(t, result.ReturnDate)
	assert.Equal(t, "Good", *result.ConditionAtReturn)
	assert.Equal(t, []string{models.AssetEventReturned}, recorder.events)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestReturnRejectsClosedAssignment(t *testing.T) {
	repo, mockDB := newTestRepository(t)
	assignmentRepo := new(MockAssignmentRepository)
	assetRepo := new(MockAssetRepository)

	service := NewAssignmentService(repo, assignmentRepo, assetRepo, new(MockDepartmentRepository), &recorderSpy{})

	returnDate := time.Now()
	assignment := &models.Assignment{ID: 42, AssetID: 7, ReturnDate: &returnDate}

	mockDB.ExpectBegin()
	mockDB.ExpectRollback()

	assignmentRepo.On("GetAssignmentForUpdate", mock.Anything, 42).Return(assignment, nil).Once()

	_, err := service.Return(3, models.ReturnRequest{AssignmentID: 42, ConditionAtReturn: "Good"})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assetRepo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything)
}
