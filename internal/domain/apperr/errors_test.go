package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindDuplicateKey, KindOf(Duplicate("dup", nil)))
	assert.Equal(t, KindInvalidFarmerReference, KindOf(InvalidFarmerReference("no snapshot")))
	assert.Equal(t, KindStorage, KindOf(errors.New("raw driver error")))
}

func TestKindOf_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("create farmer: %w", Duplicate("dup", nil))
	assert.Equal(t, KindDuplicateKey, KindOf(err))
}

func TestMessageOf_NeverLeaksCause(t *testing.T) {
	cause := errors.New("connection to 10.0.0.5:27017 refused")
	err := Storage("failed to insert farmer", cause)

	assert.Equal(t, "failed to insert farmer", MessageOf(err))
	assert.NotContains(t, MessageOf(err), "10.0.0.5")

	assert.Equal(t, "internal storage error", MessageOf(cause))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("E11000 duplicate key")
	err := Duplicate("already exists", cause)
	assert.ErrorIs(t, err, cause)
}
