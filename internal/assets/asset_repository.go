package assets

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/Revocube-Technologies/Asset-Management-Api/internal/repository"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/metadata"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
)

type AssetsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AssetsRepository {
	return &AssetsRepository{
		repository: r,
	}
}

func (r *AssetsRepository) GetAsset(id int) (*models.Asset, error) {
	query := r.getAssetQuery().Where(goqu.Ex{"a.id": id})

	var flatAsset models.FlatAssetRecord
	found, err := query.Executor().ScanStruct(&flatAsset)
	if err != nil {
		return nil, apperrors.Infrastructure("unable to select asset", err)
	}
	if !found {
		return nil, apperrors.NotFound("asset %d not found", id)
	}

	asset := flatAsset.TransformToAsset()
	return &asset, nil
}

// GetAssetForUpdate loads the asset row under a FOR UPDATE lock so the
// legality check and the status write observe the same state. Must run
// inside a transaction.
func (r *AssetsRepository) GetAssetForUpdate(tx *goqu.TxDatabase, id int) (*models.Asset, error) {
	query := tx.Select(
		goqu.I("id").As("asset_id"),
		"name", "type", "serial_number", "price", "purchase_date",
		"warranty_expiry", "status", "notes", "image_url", "is_deleted",
		"created_at", "updated_at",
		goqu.I("location_id").As("location_id"),
	).
		From("assets").
		Where(goqu.Ex{"id": id}).
		ForUpdate(exp.Wait)

	var flat models.FlatAssetRecord
	found, err := query.Executor().ScanStruct(&flat)
	if err != nil {
		return nil, apperrors.Infrastructure("unable to lock asset row", err)
	}
	if !found {
		return nil, apperrors.NotFound("asset %d not found", id)
	}

	asset := flat.TransformToAsset()
	return &asset, nil
}

// GetAssetsForUpdate locks a batch of asset rows in one statement, ordered
// by id to keep concurrent batches from deadlocking each other.
func (r *AssetsRepository) GetAssetsForUpdate(tx *goqu.TxDatabase, ids []int) ([]models.Asset, error) {
	query := tx.Select(
		goqu.I("id").As("asset_id"),
		"name", "type", "serial_number", "price", "purchase_date",
		"warranty_expiry", "status", "notes", "image_url", "is_deleted",
		"created_at", "updated_at",
		goqu.I("location_id").As("location_id"),
	).
		From("assets").
		Where(goqu.Ex{"id": ids}).
		Order(goqu.I("id").Asc()).
		ForUpdate(exp.Wait)

	var flats []models.FlatAssetRecord
	if err := query.Executor().ScanStructs(&flats); err != nil {
		return nil, apperrors.Infrastructure("unable to lock asset rows", err)
	}

	assets := make([]models.Asset, 0, len(flats))
	for _, flat := range flats {
		assets = append(assets, flat.TransformToAsset())
	}
	return assets, nil
}

func (r *AssetsRepository) GetAssetsBy(status, assetType string, locationID int) ([]models.Asset, error) {
	query := r.getAssetQuery().Where(goqu.Ex{"a.is_deleted": false})

	if status != "" {
		query = query.Where(goqu.Ex{"a.status": status})
	}
	if assetType != "" {
		query = query.Where(goqu.Ex{"a.type": assetType})
	}
	if locationID != 0 {
		query = query.Where(goqu.Ex{"a.location_id": locationID})
	}
	query = query.Order(goqu.I("a.created_at").Desc())

	var flatAssets []models.FlatAssetRecord
	if err := query.Executor().ScanStructs(&flatAssets); err != nil {
		return nil, apperrors.Infrastructure("unable to select assets", err)
	}

	var assets []models.Asset
	for _, flatAsset := range flatAssets {
		assets = append(assets, flatAsset.TransformToAsset())
	}
	return assets, nil
}

func (r *AssetsRepository) PersistAsset(tx *goqu.TxDatabase, req models.AssetRequest, serialNumber string) (int, error) {
	var assetID int

	record := goqu.Record{
		"name":          req.Name,
		"type":          req.Type,
		"serial_number": serialNumber,
		"price":         req.Price,
		"purchase_date": req.PurchaseDate,
		"status":        string(metadata.StatusAvailable),
		"location_id":   req.LocationID,
		"notes":         req.Notes,
		"image_url":     req.ImageURL,
	}
	if req.WarrantyExpiry != nil {
		record["warranty_expiry"] = *req.WarrantyExpiry
	}

	query := tx.Insert("assets").Rows(record).Returning("id")
	if _, err := query.Executor().ScanVal(&assetID); err != nil {
		return 0, apperrors.WrapDBError("insert asset", err)
	}

	return assetID, nil
}

func (r *AssetsRepository) UpdateAsset(id int, req models.AssetUpdateRequest) error {
	record := goqu.Record{"updated_at": time.Now()}
	if req.Name != nil {
		record["name"] = *req.Name
	}
	if req.Type != nil {
		record["type"] = *req.Type
	}
	if req.Price != nil {
		record["price"] = *req.Price
	}
	if req.PurchaseDate != nil {
		record["purchase_date"] = *req.PurchaseDate
	}
	if req.WarrantyExpiry != nil {
		record["warranty_expiry"] = *req.WarrantyExpiry
	}
	if req.LocationID != nil {
		record["location_id"] = *req.LocationID
	}
	if req.Notes != nil {
		record["notes"] = *req.Notes
	}
	if req.ImageURL != nil {
		record["image_url"] = *req.ImageURL
	}

	result, err := r.repository.GoquDBWrapper.Update("assets").
		Set(record).
		Where(goqu.Ex{"id": id, "is_deleted": false}).
		Executor().
		Exec()
	if err != nil {
		return apperrors.WrapDBError("update asset", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Infrastructure("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound("asset %d not found", id)
	}

	return nil
}

// NextSerialSequence returns the next free serial sequence for the given
// year. Called inside the create transaction so two concurrent creates
// cannot draw the same number.
func (r *AssetsRepository) NextSerialSequence(tx *goqu.TxDatabase, year int) (int, error) {
	pattern := fmt.Sprintf("^%s-%d-(\\d+)$", metadata.SerialPrefix, year)

	var max int
	query := tx.Select(
		goqu.L("COALESCE(MAX(CAST(SUBSTRING(serial_number FROM ?) AS INTEGER)), 0)", pattern),
	).From("assets")

	if _, err := query.Executor().ScanVal(&max); err != nil {
		return 0, apperrors.Infrastructure("failed to get next serial sequence", err)
	}

	return max + 1, nil
}

// Transition performs the status write for a table-driven event as a
// compare-and-swap: the UPDATE only matches when the asset is live and in a
// legal source state, so a concurrent command that already moved the asset
// makes this a no-op that is then diagnosed into the right error kind.
func (r *AssetsRepository) Transition(tx *goqu.TxDatabase, assetID int, event metadata.Event) error {
	target, ok := metadata.Target(event)
	if !ok {
		return fmt.Errorf("event %s has no static target", event)
	}
	return r.TransitionTo(tx, assetID, metadata.Sources(event), target)
}

func (r *AssetsRepository) TransitionTo(tx *goqu.TxDatabase, assetID int, from []metadata.Status, to metadata.Status) error {
	sources := make([]string, len(from))
	for i, s := range from {
		sources[i] = string(s)
	}

	record := goqu.Record{"status": string(to), "updated_at": time.Now()}
	if to == metadata.StatusRetired {
		record["is_deleted"] = true
	}

	result, err := tx.Update("assets").
		Set(record).
		Where(goqu.Ex{
			"id":         assetID,
			"is_deleted": false,
			"status":     sources,
		}).
		Executor().
		Exec()
	if err != nil {
		return apperrors.Infrastructure("failed to update asset status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Infrastructure("failed to get rows affected", err)
	}
	if rowsAffected == 1 {
		return nil
	}

	return r.diagnoseTransitionFailure(tx, assetID, to)
}

func (r *AssetsRepository) diagnoseTransitionFailure(tx *goqu.TxDatabase, assetID int, to metadata.Status) error {
	var row struct {
		Status    string `db:"status"`
		IsDeleted bool   `db:"is_deleted"`
	}

	found, err := tx.Select("status", "is_deleted").
		From("assets").
		Where(goqu.Ex{"id": assetID}).
		Executor().
		ScanStruct(&row)
	if err != nil {
		return apperrors.Infrastructure("failed to inspect asset status", err)
	}
	if !found {
		return apperrors.NotFound("asset %d not found", assetID)
	}
	if row.IsDeleted {
		return apperrors.AlreadyDeleted("asset %d has been deleted", assetID)
	}
	return apperrors.Conflict("asset %d cannot move from %s to %s", assetID, row.Status, to)
}

func (r *AssetsRepository) getAssetQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.Select(
		goqu.I("a.id").As("asset_id"),
		"a.name",
		"a.type",
		goqu.I("a.serial_number").As("serial_number"),
		"a.price",
		goqu.I("a.purchase_date").As("purchase_date"),
		goqu.I("a.warranty_expiry").As("warranty_expiry"),
		"a.status",
		"a.notes",
		goqu.I("a.image_url").As("image_url"),
		goqu.I("a.is_deleted").As("is_deleted"),
		goqu.I("a.created_at").As("created_at"),
		goqu.I("a.updated_at").As("updated_at"),
		goqu.I("l.id").As("location_id"),
		goqu.I("l.name").As("location_name"),
		goqu.I("l.address").As("location_address"),
	).
		From(goqu.T("assets").As("a")).
		LeftJoin(
			goqu.T("locations").As("l"),
			goqu.On(goqu.Ex{"a.location_id": goqu.I("l.id")}),
		)
}
