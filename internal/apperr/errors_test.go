package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomyPredicates(t *testing.T) {
	assert.True(t, IsValidation(Validationf("bad input")))
	assert.True(t, IsNotFound(NotFound("vendor", 1)))
	assert.True(t, IsPermission(Permissionf("forbidden")))
	assert.True(t, IsConflict(Conflictf("duplicate")))

	assert.False(t, IsValidation(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("saving profile: %w", NotFound("buyer", 7))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validationf("bad")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("vendor", 1)))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Permissionf("no")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflictf("dup")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestCascadeFailureReportsPartialCompletion(t *testing.T) {
	cause := errors.New("fk violation")
	err := &CascadeFailure{UserID: 4, Completed: []string{"vendor"}, Failed: "influencer", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "influencer")
	assert.Contains(t, err.Error(), "completed: 1")
}
