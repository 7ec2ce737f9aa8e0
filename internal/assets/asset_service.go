package assets

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/Revocube-Technologies/Asset-Management-Api/internal/repository"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/metadata"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
)

type assetStore interface {
	GetAsset(id int) (*models.Asset, error)
	GetAssetForUpdate(tx *goqu.TxDatabase, id int) (*models.Asset, error)
	GetAssetsBy(status, assetType string, locationID int) ([]models.Asset, error)
	PersistAsset(tx *goqu.TxDatabase, req models.AssetRequest, serialNumber string) (int, error)
	UpdateAsset(id int, req models.AssetUpdateRequest) error
	NextSerialSequence(tx *goqu.TxDatabase, year int) (int, error)
	TransitionTo(tx *goqu.TxDatabase, assetID int, from []metadata.Status, to metadata.Status) error
}

type locationStore interface {
	Exists(id int) (bool, error)
}

type eventRecorder interface {
	Record(assetID, adminID int, eventType, description string)
}

type AssetService struct {
	repo      *repository.Repository
	assets    assetStore
	locations locationStore
	history   eventRecorder
}

func NewAssetService(repo *repository.Repository, assets assetStore, locations locationStore, history eventRecorder) *AssetService {
	return &AssetService{
		repo:      repo,
		assets:    assets,
		locations: locations,
		history:   history,
	}
}

// Create registers a new asset with a generated serial number and initial
// status Available. The sequence draw and the insert share one transaction
// so concurrent creates cannot collide on the serial.
func (s *AssetService) Create(adminID int, req models.AssetRequest) (*models.Asset, error) {
	exists, err := s.locations.Exists(req.LocationID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound("location %d not found", req.LocationID)
	}

	var assetID int
	var serial string

	err = repository.WithTransaction(s.repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		year := time.Now().Year()
		sequence, err := s.assets.NextSerialSequence(tx, year)
		if err != nil {
			return err
		}

		serialNumber := metadata.NewSerialNumber(year, sequence)
		serial = serialNumber.String()

		assetID, err = s.assets.PersistAsset(tx, req, serial)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.history.Record(assetID, adminID, models.AssetEventCreated,
		fmt.Sprintf("Asset created: %s (%s)", req.Name, serial))

	return s.assets.GetAsset(assetID)
}

func (s *AssetService) Get(id int) (*models.Asset, error) {
	asset, err := s.assets.GetAsset(id)
	if err != nil {
		return nil, err
	}
	if asset.IsDeleted {
		return nil, apperrors.NotFound("asset %d not found", id)
	}

	return asset, nil
}

func (s *AssetService) List(status, assetType string, locationID int) ([]models.Asset, error) {
	return s.assets.GetAssetsBy(status, assetType, locationID)
}

func (s *AssetService) Update(adminID, id int, req models.AssetUpdateRequest) (*models.Asset, error) {
	if req.LocationID != nil {
		exists, err := s.locations.Exists(*req.LocationID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.NotFound("location %d not found", *req.LocationID)
		}
	}

	if err := s.assets.UpdateAsset(id, req); err != nil {
		return nil, err
	}

	asset, err := s.assets.GetAsset(id)
	if err != nil {
		return nil, err
	}

	s.history.Record(id, adminID, models.AssetEventUpdated,
		fmt.Sprintf("Asset updated: %s", asset.Name))

	return asset, nil
}

// SoftDelete retires the asset: terminal state, no further transitions. A
// second delete surfaces AlreadyDeleted, not a silent no-op.
func (s *AssetService) SoftDelete(adminID, id int) (*models.Asset, error) {
	err := repository.WithTransaction(s.repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		return s.assets.TransitionTo(tx, id, metadata.Sources(metadata.EventRetire), metadata.StatusRetired)
	})
	if err != nil {
		return nil, err
	}

	s.history.Record(id, adminID, models.AssetEventRetired, "Asset retired")

	return s.assets.GetAsset(id)
}
