package models

import (
	"time"

	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/metadata"
)

type Asset struct {
	ID             int             `json:"id" db:"asset_id"`
	Name           string          `json:"name" db:"name"`
	Type           string          `json:"type" db:"type"`
	SerialNumber   string          `json:"serial_number" db:"serial_number"`
	Price          float64         `json:"price" db:"price"`
	PurchaseDate   time.Time       `json:"purchase_date" db:"purchase_date"`
	WarrantyExpiry *time.Time      `json:"warranty_expiry,omitempty" db:"warranty_expiry"`
	Status         metadata.Status `json:"status" db:"status"`
	Location       Location        `json:"location,omitempty"`
	Notes          string          `json:"notes,omitempty" db:"notes"`
	ImageURL       string          `json:"image_url,omitempty" db:"image_url"`
	IsDeleted      bool            `json:"is_deleted" db:"is_deleted"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

type FlatAssetRecord struct {
	ID             int        `db:"asset_id"`
	Name           string     `db:"name"`
	Type           string     `db:"type"`
	SerialNumber   string     `db:"serial_number"`
	Price          float64    `db:"price"`
	PurchaseDate   time.Time  `db:"purchase_date"`
	WarrantyExpiry *time.Time `db:"warranty_expiry"`
	Status         string     `db:"status"`
	Notes          string     `db:"notes"`
	ImageURL       string     `db:"image_url"`
	IsDeleted      bool       `db:"is_deleted"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	LocationID     int        `db:"location_id"`
	LocationName   string     `db:"location_name"`
	LocationAddr   string     `db:"location_address"`
}

func (fa *FlatAssetRecord) TransformToAsset() Asset {
	return Asset{
		ID:             fa.ID,
		Name:           fa.Name,
		Type:           fa.Type,
		SerialNumber:   fa.SerialNumber,
		Price:          fa.Price,
		PurchaseDate:   fa.PurchaseDate,
		WarrantyExpiry: fa.WarrantyExpiry,
		Status:         metadata.Status(fa.Status),
		Notes:          fa.Notes,
		ImageURL:       fa.ImageURL,
		IsDeleted:      fa.IsDeleted,
		CreatedAt:      fa.CreatedAt,
		UpdatedAt:      fa.UpdatedAt,
		Location: Location{
			ID:      fa.LocationID,
			Name:    fa.LocationName,
			Address: fa.LocationAddr,
		},
	}
}

type AssetRequest struct {
	Name           string     `json:"name" binding:"required"`
	Type           string     `json:"type" binding:"required"`
	Price          float64    `json:"price" binding:"required"`
	PurchaseDate   time.Time  `json:"purchase_date" binding:"required"`
	WarrantyExpiry *time.Time `json:"warranty_expiry"`
	LocationID     int        `json:"location_id" binding:"required"`
	Notes          string     `json:"notes"`
	ImageURL       string     `json:"image_url"`
}

type AssetUpdateRequest struct {
	Name           *string    `json:"name"`
	Type           *string    `json:"type"`
	Price          *float64   `json:"price"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	WarrantyExpiry *time.Time `json:"warranty_expiry"`
	LocationID     *int       `json:"location_id"`
	Notes          *string    `json:"notes"`
	ImageURL       *string    `json:"image_url"`
}
