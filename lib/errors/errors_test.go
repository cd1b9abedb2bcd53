package errors

import (
	stderrors "errors"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestTaxonomy(t *testing.T) {
	configErr := NewConfigError("k must be positive, got %d", 0)
	dataErr := NewDataError("file %q has %d rows", "a.csv", 3)
	invariantErr := NewInvariantViolation("grid width %d", 0)

	assert.True(t, IsConfigError(configErr))
	assert.False(t, IsConfigError(dataErr))
	assert.True(t, IsDataError(dataErr))
	assert.False(t, IsDataError(invariantErr))
	assert.True(t, IsInvariantViolation(invariantErr))

	assert.Contains(t, configErr.Error(), "k must be positive, got 0")
	assert.Contains(t, dataErr.Error(), `file "a.csv" has 3 rows`)
}

func TestWrapDataErrorKeepsCause(t *testing.T) {
	cause := stderrors.New("strconv failure")
	err := WrapDataError(cause, "row %d", 4)
	assert.True(t, IsDataError(err))
	assert.True(t, stderrors.Is(err, cause))
	assert.Nil(t, WrapDataError(nil, "ignored"))
}

func TestNewMultiListsEveryError(t *testing.T) {
	err := NewMulti([]error{NewConfigError("first"), NewConfigError("second")}, "%d problems", 2)
	assert.Contains(t, err.Error(), "2 problems")
	assert.Contains(t, err.Error(), "first")
	assert.Contains(t, err.Error(), "second")
}

func TestErrorfFormatsArguments(t *testing.T) {
	assert.Equal(t, "value 3 out of range", Errorf("value %d out of range", 3).Error())
}
