package clierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeOf(t *testing.T) {
	cause := errors.New("boom")

	assert.Equal(t, 0, ExitCodeOf(nil))
	assert.Equal(t, 1, ExitCodeOf(cause))
	assert.Equal(t, CodeConfig, ExitCodeOf(Wrap(CodeConfig, "loading config", cause)))
	assert.Equal(t, CodeVCS, ExitCodeOf(fmt.Errorf("outer: %w", New(CodeVCS, "git failed"))))
	assert.Equal(t, 1, ExitCodeOf(New(0, "zero is not an error code")))
}

func TestExitError_Message(t *testing.T) {
	cause := errors.New("boom")

	assert.Equal(t, "loading config: boom", Wrap(CodeConfig, "loading config", cause).Error())
	assert.Equal(t, "boom", Wrap(CodeViolation, "", cause).Error())
	assert.Equal(t, "plain", Wrap(CodeViolation, "plain", nil).Error())
	assert.Equal(t, "policy x: boom", Wrapf(CodeConfig, cause, "policy %s", "x").Error())
	assert.ErrorIs(t, Wrap(CodeConfig, "loading config", cause), cause)
}
