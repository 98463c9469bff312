package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	err := New(CodeConflict, "task already completed")
	assert.True(t, HasCode(err, CodeConflict))
	assert.False(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(errors.New("plain"), CodeConflict))
	assert.False(t, HasCode(nil, CodeConflict))
}

func TestHasCodeThroughWrapping(t *testing.T) {
	inner := New(CodeNotFound, "task not found")
	outer := fmt.Errorf("completing task: %w", inner)
	assert.True(t, HasCode(outer, CodeNotFound))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("store offline")
	err := Wrap(cause, CodeInternal, "failed to save user")
	require.ErrorIs(t, err, cause)
	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Contains(t, err.Error(), "failed to save user")
	assert.Contains(t, err.Error(), "store offline")
}

func TestCodeOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("anything")))
}
