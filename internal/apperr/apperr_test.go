package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	code, msg := Status(Validationf("bad %s", "input"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "bad input", msg)

	code, msg = Status(NotFound("service"))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "service not found", msg)

	code, _ = Status(Retryable("count services", errors.New("connection reset")))
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestStatusHidesInternals(t *testing.T) {
	code, msg := Status(errors.New("pq: relation does not exist"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal error", msg)
}

func TestRetryableUnwraps(t *testing.T) {
	cause := errors.New("timeout")
	err := Retryable("fetch services", cause)
	assert.ErrorIs(t, err, cause)
}
