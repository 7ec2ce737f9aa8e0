package reports

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/apperrors"
	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
)

type assetLister interface {
	GetAssetsBy(status, assetType string, locationID int) ([]models.Asset, error)
}

// ReportService pushes the asset register into a Google spreadsheet so
// non-technical staff can work with a live copy.
type ReportService struct {
	sheetsService *sheets.Service
	assets        assetLister
}

func NewReportService(assets assetLister) (*ReportService, error) {
	ctx := context.Background()

	var credentialsData []byte
	if credentialsJSON := os.Getenv("GOOGLE_SHEETS_CREDENTIALS_JSON"); credentialsJSON != "" {
		credentialsData = []byte(credentialsJSON)
	} else {
		b, err := os.ReadFile("configs/google-credentials.json")
		if err != nil {
			return nil, fmt.Errorf("unable to read Google credentials file: %v", err)
		}
		credentialsData = b
	}

	credentials, err := google.CredentialsFromJSON(ctx, credentialsData, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to load Google credentials: %v", err)
	}

	client := oauth2.NewClient(ctx, credentials.TokenSource)
	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Google Sheets client: %v", err)
	}

	return &ReportService{sheetsService: sheetsService, assets: assets}, nil
}

// ExportAssetRegister overwrites the target range with the current register,
// one row per asset plus a header row. Returns the number of asset rows
// written.
func (s *ReportService) ExportAssetRegister(spreadsheetID, writeRange string) (int, error) {
	if writeRange == "" {
		writeRange = "A1"
	}

	assets, err := s.assets.GetAssetsBy("", "", 0)
	if err != nil {
		return 0, err
	}

	values := make([][]interface{}, 0, len(assets)+1)
	values = append(values, []interface{}{
		"Serial Number", "Name", "Type", "Status", "Location", "Purchase Date", "Price",
	})

	for _, asset := range assets {
		values = append(values, []interface{}{
			asset.SerialNumber, asset.Name, asset.Type, string(asset.Status),
			asset.Location.Name, asset.PurchaseDate.Format("2006-01-02"), asset.Price,
		})
	}

	body := &sheets.ValueRange{Values: values}
	_, err = s.sheetsService.Spreadsheets.Values.
		Update(spreadsheetID, writeRange, body).
		ValueInputOption("RAW").
		Do()
	if err != nil {
		return 0, apperrors.Infrastructure("unable to write asset register to spreadsheet", err)
	}

	return len(assets), nil
}
