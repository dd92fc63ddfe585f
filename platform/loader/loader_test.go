package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qiufengcute/scratchext/platform/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBytes(t *testing.T) {
	t.Parallel()

	t.Run("valid content", func(t *testing.T) {
		t.Parallel()
		l, err := loader.NewFromBytes([]byte("module bytes"))
		require.NoError(t, err)

		content, err := loader.ReadAll(l)
		require.NoError(t, err)
		assert.Equal(t, []byte("module bytes"), content)
		assert.Equal(t, "bytes", l.GetSourceURL().Scheme)
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		_, err := loader.NewFromBytes(nil)
		require.ErrorIs(t, err, loader.ErrContentUnavailable)
	})

	t.Run("reader is repeatable", func(t *testing.T) {
		t.Parallel()
		l, err := loader.NewFromBytes([]byte("abc"))
		require.NoError(t, err)

		first, err := loader.ReadAll(l)
		require.NoError(t, err)
		second, err := loader.ReadAll(l)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestFromString(t *testing.T) {
	t.Parallel()

	t.Run("valid content", func(t *testing.T) {
		t.Parallel()
		l, err := loader.NewFromString("  inline module  ")
		require.NoError(t, err)

		content, err := loader.ReadAll(l)
		require.NoError(t, err)
		assert.Equal(t, "inline module", string(content))
		assert.Equal(t, "string", l.GetSourceURL().Scheme)
	})

	t.Run("whitespace only", func(t *testing.T) {
		t.Parallel()
		_, err := loader.NewFromString("   \n ")
		require.ErrorIs(t, err, loader.ErrContentUnavailable)
	})
}

func TestFromDisk(t *testing.T) {
	t.Parallel()

	t.Run("reads an existing file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "translator.wasm")
		require.NoError(t, os.WriteFile(path, []byte("wasm bytes"), 0o644))

		l, err := loader.NewFromDisk(path)
		require.NoError(t, err)

		content, err := loader.ReadAll(l)
		require.NoError(t, err)
		assert.Equal(t, []byte("wasm bytes"), content)
		assert.Equal(t, "file", l.GetSourceURL().Scheme)
	})

	t.Run("file url prefix is accepted", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "translator.wasm")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		l, err := loader.NewFromDisk("file://" + path)
		require.NoError(t, err)
		_, err = loader.ReadAll(l)
		require.NoError(t, err)
	})

	t.Run("relative path rejected", func(t *testing.T) {
		t.Parallel()
		_, err := loader.NewFromDisk("relative/translator.wasm")
		require.ErrorIs(t, err, loader.ErrContentUnavailable)
	})

	t.Run("remote scheme rejected", func(t *testing.T) {
		t.Parallel()
		_, err := loader.NewFromDisk("https://example.com/translator.wasm")
		require.ErrorIs(t, err, loader.ErrSchemeUnsupported)
	})

	t.Run("missing file fails at read time", func(t *testing.T) {
		t.Parallel()
		l, err := loader.NewFromDisk(filepath.Join(t.TempDir(), "absent.wasm"))
		require.NoError(t, err)

		_, err = l.GetReader()
		require.ErrorIs(t, err, loader.ErrContentUnavailable)
	})
}
