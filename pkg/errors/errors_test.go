package errors

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(io.ErrUnexpectedEOF, "read body")

	require.Error(t, err)
	assert.Equal(t, "read body: unexpected EOF", err.Error())
	assert.True(t, Is(err, io.ErrUnexpectedEOF))
	assert.Equal(t, io.ErrUnexpectedEOF, Cause(err))
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "nothing"))
	assert.NoError(t, Wrapf(nil, "nothing %d", 1))
}

func TestErrorStack(t *testing.T) {
	assert.Empty(t, ErrorStack(nil))

	stack := ErrorStack(Errorf("status %d", 500))
	assert.Contains(t, stack, "status 500")
	assert.Contains(t, stack, "errors_test.go")
}
