package repairs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Revocube-Technologies/Asset-Management-Api/internal/repository"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/metadata"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
)

func newRepairService(repo *repository.Repository) (*RepairService, *MockRepairRepository, *MockRequestRepository, *MockAssetRepository, *recorderSpy) {
	repairRepo := new(MockRepairRepository)
	requestRepo := new(MockRequestRepository)
	assetRepo := new(MockAssetRepository)
	recorder := &recorderSpy{}
	service := NewRepairService(repo, repairRepo, requestRepo, assetRepo, recorder)
	return service, repairRepo, requestRepo, assetRepo, recorder
}

func TestLogRepairMovesAssetUnderRepair(t *testing.T) {
	repo, mockDB := newTestRepository(t)
	service, repairRepo, _, assetRepo, recorder := newRepairService(repo)

	asset := &models.Asset{ID: 7, Status: metadata.StatusAvailable}
	req := models.RepairCreate{Description: "Replace fan", RepairedBy: "TechFix Ltd", RepairCost: 120}

	mockDB.ExpectBegin()
	mockDB.ExpectCommit()

	assetRepo.On("GetAssetForUpdate", mock.Anything, 7).Return(asset, nil).Once()
	repairRepo.On("HasOpenRepair", mock.Anything, 7).Return(false, nil).Once()
	repairRepo.On("InsertRepair", mock.Anything, mock.MatchedBy(func(r models.RepairLog) bool {
		return r.AssetID == 7 && r.RepairStatus == models.RepairStatusPending && r.RepairedBy == "TechFix Ltd"
	})).Return(&models.RepairLog{ID: 5, AssetID: 7, RepairStatus: models.RepairStatusPending}, nil).Once()
	assetRepo.On("Transition", mock.Anything, 7, metadata.EventLogRepair).Return(nil).Once()

	result, err := service.LogRepair(3, 7, req)

	assert.NoError(t, err)
	assert.Equal(t, 5, result.ID)
	assert.Equal(t, []string{models.AssetEventRepaired}, recorder.events)
	assert.NoError(t, mockDB.ExpectationsWereMet())
	repairRepo.AssertExpectations(t)
}

func TestLogRepairRejectsSecondOpenRepair(t *testing.T) {
	repo, mockDB := newTestRepository(t)
	service, repairRepo, _, assetRepo, _ := newRepairService(repo)

	mockDB.ExpectBegin()
	mockDB.ExpectRollback()

	assetRepo.On("GetAssetForUpdate", mock.Anything, 7).Return(&models.Asset{ID: 7, Status: metadata.StatusAvailable}, nil).Once()
	repairRepo.On("HasOpenRepair", mock.Anything, 7).Return(true, nil).Once()

	_, err := service.LogRepair(3, 7, models.RepairCreate{Description: "Replace fan", RepairedBy: "TechFix Ltd"})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	repairRepo.AssertNotCalled(t, "InsertRepair", mock.Anything, mock.Anything)
}

func TestLogRepairRejectsUnapprovedRequestLink(t *testing.T) {
	repo, mockDB := newTestRepository(t)
	service, _, requestRepo, assetRepo, _ := newRepairService(repo)

	requestID := 11
	request := &models.RequestLog{ID: 11, AssetID: 7, RequestStatus: models.RequestStatusPending}

	mockDB.ExpectBegin()
	mockDB.ExpectRollback()

	assetRepo.On("GetAssetForUpdate", mock.Anything, 7).Return(&models.Asset{ID: 7, Status: metadata.StatusRequestRepair}, nil).Once()
	requestRepo.On("GetRequestForUpdate", mock.Anything, 11).Return(request, nil).Once()

	_, err := service.LogRepair(3, 7, models.RepairCreate{Description: "Replace fan", RepairedBy: "TechFix Ltd", RequestLogID: &requestID})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestLogRepairRejectsForeignRequestLink(t *testing.T) {
	repo, mockDB := newTestRepository(t)
	service, _, requestRepo, assetRepo, _ := newRepairService(repo)

	requestID := 11
	request := &models.RequestLog{ID: 11, AssetID: 99, RequestStatus: models.RequestStatusApproved}

	mockDB.ExpectBegin()
	mockDB.ExpectRollback()

	assetRepo.On("GetAssetForUpdate", mock.Anything, 7).Return(&models.Asset{ID: 7, Status: metadata.StatusAvailable}, nil).Once()
	requestRepo.On("GetRequestForUpdate", mock.Anything, 11).Return(request, nil).Once()

	_, err := service.LogRepair(3, 7, models.RepairCreate{Description: "Replace fan", RepairedBy: "TechFix Ltd", RequestLogID: &requestID})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestCompleteRepairRestoresAsset(t *testing.T) {
	repo, mockDB := newTestRepository(t)
	service, repairRepo, _, assetRepo, recorder := newRepairService(repo)

	repair := &models.RepairLog{ID: 5, AssetID: 7, RepairStatus: models.RepairStatusInProgress}

	mockDB.ExpectBegin()
	mockDB.ExpectCommit()

	repairRepo.On("GetRepairForUpdate", mock.Anything, 5).Return(repair, nil).Once()
	repairRepo.On("CloseRepair", mock.Anything, 5, "Fan replaced").Return(nil).Once()
	assetRepo.On("Transition", mock.Anything, 7, metadata.EventCompleteRepair).Return(nil).Once()

	result, err := service.CompleteRepair(3, 5, models.RepairComplete{Remarks: "Fan replaced"})

	assert.NoError(t, err)
	assert.Equal(t, models.RepairStatusCompleted, result.RepairStatus)
	assert.Equal(t, "Fan replaced", *result.Remarks)
	assert.Equal(t, []string{models.AssetEventRepaired}, recorder.events)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestCompleteRepairRejectsCompletedRepair(t *testing.T) {
	repo, mockDB := newTestRepository(t)
	service, repairRepo, _, assetRepo, _ := newRepairService(repo)

	repair := &models.RepairLog{ID: 5, AssetID: 7, RepairStatus: models.RepairStatusCompleted}

	mockDB.ExpectBegin()
	mockDB.ExpectRollback()

	repairRepo.On("GetRepairForUpdate", mock.Anything, 5).Return(repair, nil).Once()

	_, err := service.CompleteRepair(3, 5, models.RepairComplete{Remarks: "Again"})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assetRepo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything)
}

func TestGeneralMaintenanceOpensRepairForEveryAsset(t *testing.T) {
	repo, mockDB := newTestRepository(t)
	service, repairRepo, _, assetRepo, recorder := newRepairService(repo)

	req := models.MaintenanceRequest{AssetIDs: []int{7, 8}, Description: "Quarterly service", RepairedBy: "TechFix Ltd"}
	locked := []models.Asset{
		{ID: 7, Status: metadata.StatusAvailable},
		{ID: 8, Status: metadata.StatusAssigned},
	}

	mockDB.ExpectBegin()
	mockDB.ExpectCommit()

	assetRepo.On("GetAssetsForUpdate", mock.Anything, []int{7, 8}).Return(locked, nil).Once()
	for _, id := range req.AssetIDs {
		assetID := id
		repairRepo.On("InsertRepair", mock.Anything, mock.MatchedBy(func(r models.RepairLog) bool {
			return r.AssetID == assetID && r.RepairStatus == models.RepairStatusPending
		})).Return(&models.RepairLog{ID: assetID + 100, AssetID: assetID, RepairStatus: models.RepairStatusPending}, nil).Once()
		assetRepo.On("TransitionTo", mock.Anything, assetID,
			metadata.Sources(metadata.EventLogRepair), metadata.StatusUnderRepair).Return(nil).Once()
	}

	repairs, err := service.CreateGeneralMaintenance(3, req)

	assert.NoError(t, err)
	assert.Len(t, repairs, 2)
	assert.Len(t, recorder.events, 2)
	assert.NoError(t, mockDB.ExpectationsWereMet())
	repairRepo.AssertExpectations(t)
	assetRepo.AssertExpectations(t)
}

func TestGeneralMaintenanceFailsWholeBatchOnUnknownAsset(t *testing.T) {
	repo, mockDB := newTestRepository(t)
	service, repairRepo, _, assetRepo, recorder := newRepairService(repo)

	req := models.MaintenanceRequest{AssetIDs: []int{7, 999}, Description: "Quarterly service", RepairedBy: "TechFix Ltd"}
	locked := []models.Asset{{ID: 7, Status: metadata.StatusAvailable}}

	mockDB.ExpectBegin()
	mockDB.ExpectRollback()

	assetRepo.On("GetAssetsForUpdate", mock.Anything, []int{7, 999}).Return(locked, nil).Once()

	_, err := service.CreateGeneralMaintenance(3, req)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Empty(t, recorder.events)
	repairRepo.AssertNotCalled(t, "InsertRepair", mock.Anything, mock.Anything)
}

func TestGeneralMaintenanceFailsWholeBatchOnDeletedAsset(t *testing.T) {
	repo, mockDB := newTestRepository(t)
	service, repairRepo, _, assetRepo, _ := newRepairService(repo)

	req := models.MaintenanceRequest{AssetIDs: []int{7, 8}, Description: "Quarterly service", RepairedBy: "TechFix Ltd"}
	locked := []models.Asset{
		{ID: 7, Status: metadata.StatusAvailable},
		{ID: 8, Status: metadata.StatusRetired, IsDeleted: true},
	}

	mockDB.ExpectBegin()
	mockDB.ExpectRollback()

	assetRepo.On("GetAssetsForUpdate", mock.Anything, []int{7, 8}).Return(locked, nil).Once()

	_, err := service.CreateGeneralMaintenance(3, req)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindAlreadyDeleted, apperrors.KindOf(err))
	repairRepo.AssertNotCalled(t, "InsertRepair", mock.Anything, mock.Anything)
}
