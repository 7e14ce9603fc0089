package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("missing field")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("vendor %d not found", 7)))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("nope")))
	assert.Equal(t, KindConflict, KindOf(Conflict("exists")))
	assert.Equal(t, KindDependency, KindOf(Dependency("db down", errors.New("conn refused"))))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handling request: %w", Forbidden("access denied"))
	assert.Equal(t, KindForbidden, KindOf(err))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(err))
}

func TestDependencyUnwraps(t *testing.T) {
	cause := errors.New("conn refused")
	err := Dependency("db down", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "db down")
	assert.Contains(t, err.Error(), "conn refused")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Validation("v"), http.StatusBadRequest},
		{NotFound("n"), http.StatusNotFound},
		{Forbidden("f"), http.StatusForbidden},
		{Conflict("c"), http.StatusConflict},
		{Dependency("d", nil), http.StatusBadGateway},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err))
	}
}
