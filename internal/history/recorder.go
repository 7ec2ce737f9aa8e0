package history

import (
	"go.uber.org/zap"

	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
)

type persister interface {
	PersistEvent(event models.AssetEvent) error
}

// Recorder writes asset history events best-effort, after the business
// transaction has resolved. A failed write is logged and swallowed.
type Recorder struct {
	repo persister
	log  *zap.Logger
}

func NewRecorder(repo persister, log *zap.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

func (r *Recorder) Record(assetID, adminID int, eventType, description string) {
	event := models.AssetEvent{
		AssetID:     assetID,
		AdminID:     adminID,
		EventType:   eventType,
		Description: description,
	}

	if err := r.repo.PersistEvent(event); err != nil {
		r.log.Warn("unable to record asset event",
			zap.Int("asset_id", assetID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
