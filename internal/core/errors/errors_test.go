package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesCause(t *testing.T) {
	err := Wrap(fs.ErrNotExist, CodeNotFound, "read config")

	assert.True(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(err, CodeConfig))
	assert.True(t, stderrors.Is(err, fs.ErrNotExist))
	assert.Equal(t, "[NOT_FOUND] read config: file does not exist", err.Error())
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeIO, "noop"))
	assert.NoError(t, AddContext(nil, CtxPath, "x"))
}

func TestAddContext(t *testing.T) {
	err := AddContext(New(CodePattern, "invalid glob"), CtxPattern, "app/[")
	assert.Contains(t, err.Error(), "map[pattern:app/[]")
	assert.Equal(t, CodePattern, CodeOf(err))

	foreign := AddContext(stderrors.New("boom"), CtxOperation, "walk")
	assert.True(t, IsCode(foreign, CodeInternal))
	assert.Contains(t, foreign.Error(), "operation:walk")
}

func TestNewf(t *testing.T) {
	err := Newf(CodeValidationError, "unknown style %q", "dot.case")
	assert.Equal(t, `[VALIDATION_ERROR] unknown style "dot.case"`, err.Error())
	assert.Equal(t, CodeInternal, CodeOf(stderrors.New("plain")))
}
