package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("asset %d not found", 7)))
	assert.Equal(t, KindConflict, KindOf(Conflict("asset is already assigned")))
	assert.Equal(t, KindAlreadyDeleted, KindOf(AlreadyDeleted("asset is retired")))
	assert.Equal(t, KindInfrastructure, KindOf(errors.New("connection refused")))

	wrapped := fmt.Errorf("assign asset: %w", Conflict("asset is already assigned"))
	assert.Equal(t, KindConflict, KindOf(wrapped))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("missing")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflict("duplicate")))
	assert.Equal(t, http.StatusGone, HTTPStatus(AlreadyDeleted("retired")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("bad input")))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(errors.New("db down")))
}

func TestMessageHidesInternals(t *testing.T) {
	assert.Equal(t, "internal error", Message(errors.New("pq: relation does not exist")))
	assert.Equal(t, "asset not found", Message(NotFound("asset not found")))
}

func TestWrapDBError(t *testing.T) {
	unique := &pq.Error{Code: "23505"}
	assert.Equal(t, KindConflict, KindOf(WrapDBError("serial number", unique)))

	fk := &pq.Error{Code: "23503"}
	assert.Equal(t, KindConflict, KindOf(WrapDBError("department", fk)))

	assert.Equal(t, KindInfrastructure, KindOf(WrapDBError("insert asset", errors.New("timeout"))))
}
