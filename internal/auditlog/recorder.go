package auditlog

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/models"
)

const maskValue = "********"

// maskedRequestFields keep their key in the recorded request body but have
// their value replaced; strippedResponseFields are removed from the recorded
// response entirely.
var (
	maskedRequestFields    = []string{"password"}
	strippedResponseFields = []string{"password", "otp"}
)

type persister interface {
	PersistLog(entry models.AuditLog) error
}

// Entry is one captured mutation, as seen by the HTTP layer.
type Entry struct {
	AdminID      int
	IPAddress    string
	Method       string
	Path         string
	StatusCode   int
	RequestBody  []byte
	ResponseBody []byte
	Elapsed      time.Duration
}

// Recorder writes audit entries on a best-effort side channel: a failed
// write is logged and never surfaces to the request that triggered it.
type Recorder struct {
	repo persister
	log  *zap.Logger
}

func NewRecorder(repo persister, log *zap.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

func (r *Recorder) Record(entry Entry) {
	action, err := json.Marshal(map[string]interface{}{
		"method": entry.Method,
		"path":   entry.Path,
		"status": entry.StatusCode,
	})
	if err != nil {
		r.log.Error("failed to encode audit action", zap.Error(err))
		return
	}

	request := sanitizeBody(entry.RequestBody, maskedRequestFields, nil)
	response := sanitizeBody(entry.ResponseBody, nil, strippedResponseFields)

	err = r.repo.PersistLog(models.AuditLog{
		AdminID:     entry.AdminID,
		IPAddress:   entry.IPAddress,
		ActionRaw:   string(action),
		RequestRaw:  request,
		ResponseRaw: response,
		TimeElapsed: entry.Elapsed.Milliseconds(),
	})
	if err != nil {
		r.log.Error("failed to persist audit log",
			zap.String("path", entry.Path),
			zap.Int("admin_id", entry.AdminID),
			zap.Error(err))
	}
}

// sanitizeBody re-encodes a JSON body with the masked fields overwritten and
// the stripped fields removed. Bodies that are not JSON objects are recorded
// as-is.
func sanitizeBody(body []byte, mask, strip []string) string {
	if len(body) == 0 {
		return "{}"
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return string(body)
	}

	sanitizeMap(decoded, mask, strip)

	encoded, err := json.Marshal(decoded)
	if err != nil {
		return "{}"
	}

	return string(encoded)
}

func sanitizeMap(m map[string]interface{}, mask, strip []string) {
	for _, field := range strip {
		delete(m, field)
	}
	for _, field := range mask {
		if _, ok := m[field]; ok {
			m[field] = maskValue
		}
	}

	for _, value := range m {
		switch nested := value.(type) {
		case map[string]interface{}:
			sanitizeMap(nested, mask, strip)
		case []interface{}:
			for _, item := range nested {
				if inner, ok := item.(map[string]interface{}); ok {
					sanitizeMap(inner, mask, strip)
				}
			}
		}
	}
}
