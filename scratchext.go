// Package scratchext generates Scratch/TurboWarp extension scripts from
// declarative block and menu definitions. Definitions are accumulated through
// an extension.Builder (validated as they arrive), behavior snippets are
// translated to JavaScript by a pluggable translator engine, and the populated
// model is rendered once into a single self-contained script string.
package scratchext

import (
	"context"
	"fmt"
	"log/slog"

	extismEngine "github.com/qiufengcute/scratchext/engines/extism"
	rawEngine "github.com/qiufengcute/scratchext/engines/raw"
	starlarkEngine "github.com/qiufengcute/scratchext/engines/starlark"
	wasiEngine "github.com/qiufengcute/scratchext/engines/wasi"
	"github.com/qiufengcute/scratchext/platform/extension"
	"github.com/qiufengcute/scratchext/platform/loader"
	"github.com/qiufengcute/scratchext/platform/render"
	"github.com/qiufengcute/scratchext/platform/translate"
)

// NewBuilder creates a definition builder backed by the given translator.
func NewBuilder(handler slog.Handler, tr translate.Translator) *extension.Builder {
	return extension.NewBuilder(handler, tr)
}

// NewStarlarkBuilder creates a builder whose behavior snippets are written in
// Starlark (a Python dialect) and translated in-process.
func NewStarlarkBuilder(handler slog.Handler) *extension.Builder {
	return extension.NewBuilder(handler, starlarkEngine.New(handler))
}

// NewRawBuilder creates a builder that accepts only raw JavaScript behavior;
// snippets are rejected at AddBlock/AddMenu time.
func NewRawBuilder(handler slog.Handler) *extension.Builder {
	return extension.NewBuilder(handler, rawEngine.New(handler))
}

// FromExtismFile creates a translator from an Extism plugin file. The caller
// owns the returned translator and must Close it after the build.
func FromExtismFile(
	ctx context.Context,
	handler slog.Handler,
	filePath string,
	opts ...extismEngine.FunctionalOption,
) (*extismEngine.Translator, error) {
	l, err := loader.NewFromDisk(filePath)
	if err != nil {
		return nil, err
	}
	return extismEngine.New(ctx, handler, l, opts...)
}

// FromWasiFile creates a translator from a WASI command module file. The
// caller owns the returned translator and must Close it after the build.
func FromWasiFile(
	ctx context.Context,
	handler slog.Handler,
	filePath string,
	opts ...wasiEngine.FunctionalOption,
) (*wasiEngine.Translator, error) {
	l, err := loader.NewFromDisk(filePath)
	if err != nil {
		return nil, err
	}
	return wasiEngine.New(ctx, handler, l, opts...)
}

// Render serializes a populated model into the final extension script.
func Render(handler slog.Handler, m *extension.Model) (string, error) {
	out, err := render.New(handler).Render(m)
	if err != nil {
		return "", fmt.Errorf("failed to render extension: %w", err)
	}
	return out, nil
}
