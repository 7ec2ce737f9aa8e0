package repairs

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/Revocube-Technologies/Asset-Management-Api/internal/repository"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/metadata"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
)

type RepairService struct {
	repo     *repository.Repository
	repairs  repairStore
	requests requestStore
	assets   assetStore
	history  eventRecorder
}

func NewRepairService(repo *repository.Repository, repairs repairStore, requests requestStore, assets assetStore, history eventRecorder) *RepairService {
	return &RepairService{
		repo:     repo,
		repairs:  repairs,
		requests: requests,
		assets:   assets,
		history:  history,
	}
}

// LogRepair records a repair directly against an asset and moves it under
// repair. When a request log is referenced it must be approved and belong
// to the same asset.
func (s *RepairService) LogRepair(adminID, assetID int, req models.RepairCreate) (*models.RepairLog, error) {
	var repair *models.RepairLog

	err := repository.WithTransaction(s.repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		asset, err := s.assets.GetAssetForUpdate(tx, assetID)
		if err != nil {
			return err
		}
		if asset.IsDeleted {
			return apperrors.AlreadyDeleted("asset %d has been deleted", asset.ID)
		}
		if !asset.Status.Allows(metadata.EventLogRepair) {
			return apperrors.Conflict("asset %d cannot be repaired (status %s)", asset.ID, asset.Status)
		}

		if req.RequestLogID != nil {
			request, err := s.requests.GetRequestForUpdate(tx, *req.RequestLogID)
			if err != nil {
				return err
			}
			if request.AssetID != assetID {
				return apperrors.Conflict("request %d belongs to asset %d", request.ID, request.AssetID)
			}
			if request.RequestStatus != models.RequestStatusApproved {
				return apperrors.Conflict("request %d is not approved", request.ID)
			}
		}

		open, err := s.repairs.HasOpenRepair(tx, assetID)
		if err != nil {
			return err
		}
		if open {
			return apperrors.Conflict("asset %d already has an open repair", assetID)
		}

		repair, err = s.repairs.InsertRepair(tx, models.RepairLog{
			AssetID:      assetID,
			RequestLogID: req.RequestLogID,
			AdminID:      adminID,
			Description:  req.Description,
			RepairCost:   req.RepairCost,
			RepairedBy:   req.RepairedBy,
			RepairStatus: models.RepairStatusPending,
		})
		if err != nil {
			return err
		}

		return s.assets.Transition(tx, assetID, metadata.EventLogRepair)
	})
	if err != nil {
		return nil, err
	}

	s.history.Record(assetID, adminID, models.AssetEventRepaired,
		fmt.Sprintf("Repair logged by %s", req.RepairedBy))

	return repair, nil
}

// CompleteRepair closes an open repair and makes the asset available again.
func (s *RepairService) CompleteRepair(adminID, repairID int, req models.RepairComplete) (*models.RepairLog, error) {
	var repair *models.RepairLog

	err := repository.WithTransaction(s.repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var err error
		repair, err = s.repairs.GetRepairForUpdate(tx, repairID)
		if err != nil {
			return err
		}
		if !repair.Open() {
			return apperrors.Conflict("repair %d has already been completed", repair.ID)
		}

		if err := s.repairs.CloseRepair(tx, repair.ID, req.Remarks); err != nil {
			return err
		}
		repair.RepairStatus = models.RepairStatusCompleted
		repair.Remarks = &req.Remarks

		return s.assets.Transition(tx, repair.AssetID, metadata.EventCompleteRepair)
	})
	if err != nil {
		return nil, err
	}

	s.history.Record(repair.AssetID, adminID, models.AssetEventRepaired,
		fmt.Sprintf("Repair %d completed", repair.ID))

	return repair, nil
}

// CreateGeneralMaintenance opens one repair per asset and moves the whole
// batch under repair in a single transaction. If any asset id is unknown or
// the asset is deleted, nothing is written.
func (s *RepairService) CreateGeneralMaintenance(adminID int, req models.MaintenanceRequest) ([]models.RepairLog, error) {
	var repairs []models.RepairLog

	err := repository.WithTransaction(s.repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		assets, err := s.assets.GetAssetsForUpdate(tx, req.AssetIDs)
		if err != nil {
			return err
		}

		byID := make(map[int]models.Asset, len(assets))
		for _, asset := range assets {
			byID[asset.ID] = asset
		}

		for _, assetID := range req.AssetIDs {
			asset, ok := byID[assetID]
			if !ok {
				return apperrors.NotFound("asset %d not found", assetID)
			}
			if asset.IsDeleted {
				return apperrors.AlreadyDeleted("asset %d has been deleted", assetID)
			}
		}

		repairs = make([]models.RepairLog, 0, len(req.AssetIDs))
		for _, assetID := range req.AssetIDs {
			repair, err := s.repairs.InsertRepair(tx, models.RepairLog{
				AssetID:      assetID,
				AdminID:      adminID,
				Description:  req.Description,
				RepairCost:   req.RepairCost,
				RepairedBy:   req.RepairedBy,
				RepairStatus: models.RepairStatusPending,
			})
			if err != nil {
				return err
			}
			repairs = append(repairs, *repair)

			if err := s.assets.TransitionTo(tx, assetID,
				metadata.Sources(metadata.EventLogRepair), metadata.StatusUnderRepair); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, repair := range repairs {
		s.history.Record(repair.AssetID, adminID, models.AssetEventRepaired,
			fmt.Sprintf("Maintenance opened by %s", req.RepairedBy))
	}

	return repairs, nil
}

func (s *RepairService) Get(id int) (*models.RepairLog, error) {
	return s.repairs.GetRepair(id)
}

func (s *RepairService) List(status string) ([]models.RepairLog, error) {
	return s.repairs.GetRepairs(status)
}
