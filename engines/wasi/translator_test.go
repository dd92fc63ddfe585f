package wasi_test

import (
	"context"
	"testing"

	"github.com/qiufengcute/scratchext/engines/wasi"
	"github.com/qiufengcute/scratchext/platform/loader"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidModule(t *testing.T) {
	t.Parallel()

	l, err := loader.NewFromBytes([]byte("not a wasm module"))
	require.NoError(t, err)

	_, err = wasi.New(context.Background(), nil, l)
	require.ErrorIs(t, err, wasi.ErrCompileFailed)
}

func TestNewPropagatesLoaderFailure(t *testing.T) {
	t.Parallel()

	l, err := loader.NewFromDisk("/nonexistent/translator.wasm")
	require.NoError(t, err)

	_, err = wasi.New(context.Background(), nil, l)
	require.ErrorIs(t, err, loader.ErrContentUnavailable)
}

func TestWithArgs(t *testing.T) {
	t.Parallel()

	l, err := loader.NewFromBytes([]byte("x"))
	require.NoError(t, err)

	_, err = wasi.New(context.Background(), nil, l, wasi.WithArgs())
	require.ErrorIs(t, err, wasi.ErrArgsEmpty)
}

func TestCloseWithoutRuntime(t *testing.T) {
	t.Parallel()

	var tr wasi.Translator
	require.NoError(t, tr.Close(context.Background()))
}
