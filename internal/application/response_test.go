package application

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseAccumulatesAndFlushes(t *testing.T) {
	resp := NewResponse(64)
	resp.Writef("hello %s", "room")
	resp.Writeln("!")
	assert.Equal(t, len("hello room!\n"), resp.Len())

	var out bytes.Buffer
	require.NoError(t, resp.Flush(&out))
	assert.Equal(t, "hello room!\n", out.String())
	assert.Zero(t, resp.Len())
}

func TestResponseFlushEmptyWritesNothing(t *testing.T) {
	resp := NewResponse(16)

	var out bytes.Buffer
	require.NoError(t, resp.Flush(&out))
	assert.Zero(t, out.Len())
}

func TestResponseReusableAfterFlush(t *testing.T) {
	resp := NewResponse(16)
	var out bytes.Buffer

	resp.Writef("first")
	require.NoError(t, resp.Flush(&out))
	resp.Writef("second")
	require.NoError(t, resp.Flush(&out))

	assert.Equal(t, "firstsecond", out.String())
}

func TestResponseOverflowPanics(t *testing.T) {
	resp := NewResponse(8)

	assert.Panics(t, func() {
		resp.Writef("this does not fit in eight bytes")
	})
}

func TestResponseZeroCapacityGetsDefault(t *testing.T) {
	resp := NewResponse(0)

	assert.NotPanics(t, func() {
		resp.Writef("fits comfortably in the default capacity")
	})
}
