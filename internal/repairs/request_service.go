package repairs

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/Revocube-Technologies/Asset-Management-Api/internal/repository"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/metadata"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
)

type requestStore interface {
	InsertRequest(tx *goqu.TxDatabase, req models.RepairRequestCreate, adminID int, priorStatus metadata.Status) (*models.RequestLog, error)
	GetRequestForUpdate(tx *goqu.TxDatabase, id int) (*models.RequestLog, error)
	HasPendingRequest(tx *goqu.TxDatabase, assetID int) (bool, error)
	SetRequestStatus(tx *goqu.TxDatabase, id int, status string) error
	GetRequest(id int) (*models.RequestLog, error)
	GetRequests(status string) ([]models.RequestLog, error)
}

type repairStore interface {
	InsertRepair(tx *goqu.TxDatabase, repair models.RepairLog) (*models.RepairLog, error)
	GetRepairForUpdate(tx *goqu.TxDatabase, id int) (*models.RepairLog, error)
	HasOpenRepair(tx *goqu.TxDatabase, assetID int) (bool, error)
	CloseRepair(tx *goqu.TxDatabase, id int, remarks string) error
	GetRepair(id int) (*models.RepairLog, error)
	GetRepairs(status string) ([]models.RepairLog, error)
}

type assetStore interface {
	GetAssetForUpdate(tx *goqu.TxDatabase, id int) (*models.Asset, error)
	GetAssetsForUpdate(tx *goqu.TxDatabase, ids []int) ([]models.Asset, error)
	Transition(tx *goqu.TxDatabase, assetID int, event metadata.Event) error
	TransitionTo(tx *goqu.TxDatabase, assetID int, from []metadata.Status, to metadata.Status) error
}

type departmentStore interface {
	Exists(id int) (bool, error)
}

type eventRecorder interface {
	Record(assetID, adminID int, eventType, description string)
}

type RequestService struct {
	repo        *repository.Repository
	requests    requestStore
	repairs     repairStore
	assets      assetStore
	departments departmentStore
	history     eventRecorder
}

func NewRequestService(repo *repository.Repository, requests requestStore, repairs repairStore, assets assetStore, departments departmentStore, history eventRecorder) *RequestService {
	return &RequestService{
		repo:        repo,
		requests:    requests,
		repairs:     repairs,
		assets:      assets,
		departments: departments,
		history:     history,
	}
}

// CreateRequest opens a repair request for an asset. The asset's current
// status is captured on the request so a later decline can restore it.
func (s *RequestService) CreateRequest(adminID int, req models.RepairRequestCreate) (*models.RequestLog, error) {
	exists, err := s.departments.Exists(req.DepartmentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound("department %d not found", req.DepartmentID)
	}

	var request *models.RequestLog

	err = repository.WithTransaction(s.repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		asset, err := s.assets.GetAssetForUpdate(tx, req.AssetID)
		if err != nil {
			return err
		}
		if asset.IsDeleted {
			return apperrors.AlreadyDeleted("asset %d has been deleted", asset.ID)
		}
		if !asset.Status.Allows(metadata.EventRequestRepair) {
			return apperrors.Conflict("asset %d cannot be sent for repair (status %s)", asset.ID, asset.Status)
		}

		pending, err := s.requests.HasPendingRequest(tx, req.AssetID)
		if err != nil {
			return err
		}
		if pending {
			return apperrors.Conflict("asset %d already has a pending repair request", req.AssetID)
		}

		request, err = s.requests.InsertRequest(tx, req, adminID, asset.Status)
		if err != nil {
			return err
		}

		return s.assets.Transition(tx, req.AssetID, metadata.EventRequestRepair)
	})
	if err != nil {
		return nil, err
	}

	s.history.Record(req.AssetID, adminID, models.AssetEventRequested,
		fmt.Sprintf("Repair requested by %s", req.EmployeeName))

	return request, nil
}

// UpdateStatus approves or declines a pending request. Approval opens an
// in-progress repair linked to the request; decline restores the asset to
// the status it held when the request was created.
func (s *RequestService) UpdateStatus(adminID, requestID int, upd models.RequestStatusUpdate) (*models.RequestLog, error) {
	if upd.Status != models.RequestStatusApproved && upd.Status != models.RequestStatusDeclined {
		return nil, apperrors.Validation("status must be %s or %s", models.RequestStatusApproved, models.RequestStatusDeclined)
	}

	var request *models.RequestLog

	err := repository.WithTransaction(s.repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var err error
		request, err = s.requests.GetRequestForUpdate(tx, requestID)
		if err != nil {
			return err
		}
		if !request.Pending() {
			return apperrors.Conflict("request %d has already been processed", request.ID)
		}

		if err := s.requests.SetRequestStatus(tx, request.ID, upd.Status); err != nil {
			return err
		}
		request.RequestStatus = upd.Status

		if upd.Status == models.RequestStatusApproved {
			if err := s.assets.Transition(tx, request.AssetID, metadata.EventApproveRequest); err != nil {
				return err
			}

			description := upd.Remarks
			if description == "" {
				description = request.Description
			}
			_, err = s.repairs.InsertRepair(tx, models.RepairLog{
				AssetID:      request.AssetID,
				RequestLogID: &request.ID,
				AdminID:      adminID,
				Description:  description,
				RepairStatus: models.RepairStatusInProgress,
			})
			return err
		}

		return s.assets.TransitionTo(tx, request.AssetID,
			metadata.Sources(metadata.EventDeclineRequest), request.PriorStatus)
	})
	if err != nil {
		return nil, err
	}

	if upd.Status == models.RequestStatusApproved {
		s.history.Record(request.AssetID, adminID, models.AssetEventRequested,
			fmt.Sprintf("Repair request %d approved", request.ID))
	} else {
		s.history.Record(request.AssetID, adminID, models.AssetEventRequested,
			fmt.Sprintf("Repair request %d declined", request.ID))
	}

	return request, nil
}

func (s *RequestService) Get(id int) (*models.RequestLog, error) {
	return s.requests.GetRequest(id)
}

func (s *RequestService) List(status string) ([]models.RequestLog, error) {
	return s.requests.GetRequests(status)
}
