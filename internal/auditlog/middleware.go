package auditlog

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Revocube-Technologies/Asset-Management-Api/pkg/security"
)

type bodyCapturingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCapturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Middleware records every authenticated mutation. Reads are never audited,
// and requests without an authenticated admin leave no trace. Persistence
// happens off the request goroutine so audit writes never add latency.
func Middleware(recorder *Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet ||
			c.Request.Method == http.MethodHead ||
			c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		writer := &bodyCapturingWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		start := time.Now()
		c.Next()

		adminID := security.AdminID(c)
		if adminID == 0 {
			return
		}

		entry := Entry{
			AdminID:      adminID,
			IPAddress:    c.ClientIP(),
			Method:       c.Request.Method,
			Path:         c.Request.URL.Path,
			StatusCode:   writer.Status(),
			RequestBody:  requestBody,
			ResponseBody: writer.body.Bytes(),
			Elapsed:      time.Since(start),
		}

		go recorder.Record(entry)
	}
}
