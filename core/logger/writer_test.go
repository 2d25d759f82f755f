package logger

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSink struct{}

func (failingSink) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestAsyncWriterFanOut(t *testing.T) {
	a, b := &bytes.Buffer{}, &bytes.Buffer{}
	w := newAsyncWriter([]io.Writer{a, nil, b}, 16)
	for i := 0; i < 100; i++ {
		require.NoError(t, w.Write([]byte("line\n")))
	}
	require.NoError(t, w.Flush())
	assert.Equal(t, 100, strings.Count(a.String(), "line\n"))
	require.NoError(t, w.Close())
	assert.Equal(t, a.String(), b.String())
}

func TestAsyncWriterAfterClose(t *testing.T) {
	w := newAsyncWriter([]io.Writer{&bytes.Buffer{}}, 0)
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Write([]byte("late\n")), errWriterClosed)
	assert.NoError(t, w.Flush())
	assert.NoError(t, w.Close())
}

func TestAsyncWriterReportsSinkError(t *testing.T) {
	w := newAsyncWriter([]io.Writer{failingSink{}}, 1)
	require.NoError(t, w.Write([]byte("x\n")))
	assert.Error(t, w.Close())
}
