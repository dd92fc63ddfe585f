// Package wasi adapts a WASI command module as a behavior snippet translator:
// the module is instantiated once per snippet with the dedented body on stdin
// and is expected to write JavaScript source to stdout. This suits translators
// distributed as plain command-line binaries compiled for wasm32-wasi, with no
// Extism PDK involved.
package wasi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/qiufengcute/scratchext/internal/helpers"
	"github.com/qiufengcute/scratchext/platform/loader"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"
)

// Translator implements translate.Translator by running a compiled WASI
// command module per snippet. Create one per build and Close it afterwards.
type Translator struct {
	runtime    wazero.Runtime
	module     wazero.CompiledModule
	args       []string
	logHandler slog.Handler
	logger     *slog.Logger
}

// FunctionalOption configures a Translator during New.
type FunctionalOption func(*Translator) error

// WithArgs sets the argv passed to the module. The first element is the
// program name.
func WithArgs(args ...string) FunctionalOption {
	return func(t *Translator) error {
		if len(args) == 0 {
			return ErrArgsEmpty
		}
		t.args = args
		return nil
	}
}

// New compiles the module supplied by the loader into a reusable runtime.
// Close must be called when the translator is no longer needed.
func New(ctx context.Context, handler slog.Handler, ldr loader.Loader, opts ...FunctionalOption) (*Translator, error) {
	handler, logger := helpers.SetupLogger(handler, "wasi", "Translator")

	t := &Translator{
		args:       []string{"translator"},
		logHandler: handler,
		logger:     logger,
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, fmt.Errorf("error applying translator option: %w", err)
		}
	}

	wasmBytes, err := loader.ReadAll(ldr)
	if err != nil {
		return nil, fmt.Errorf("failed to read wasm content: %w", err)
	}
	if len(wasmBytes) == 0 {
		return nil, ErrContentNil
	}

	rtConfig := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)
	rt := wazero.NewRuntimeWithConfig(ctx, rtConfig)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)

	compiled, err := rt.CompileModule(ctx, wasmBytes)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}

	t.runtime = rt
	t.module = compiled
	return t, nil
}

func (t *Translator) String() string {
	return "wasi.Translator"
}

// Translate runs the module with the snippet body on stdin and returns its
// stdout as JavaScript source. Stderr output is folded into the error.
func (t *Translator) Translate(ctx context.Context, source string) (string, error) {
	logger := t.logger.WithGroup("Translate")

	var stdout, stderr bytes.Buffer
	moduleConfig := wazero.NewModuleConfig().
		WithStdin(strings.NewReader(source)).
		WithStdout(&stdout).
		WithStderr(&stderr).
		WithArgs(t.args...).
		WithName("")

	mod, err := t.runtime.InstantiateModule(ctx, t.module, moduleConfig)
	if mod != nil {
		defer func() { _ = mod.Close(ctx) }()
	}
	if err != nil {
		// A clean exit surfaces as an ExitError with code zero.
		var exitErr *sys.ExitError
		if !errors.As(err, &exitErr) || exitErr.ExitCode() != 0 {
			detail := strings.TrimSpace(stderr.String())
			if detail != "" {
				return "", fmt.Errorf("%w: %w: %s", ErrTranslateFailed, err, detail)
			}
			return "", fmt.Errorf("%w: %w", ErrTranslateFailed, err)
		}
	}

	logger.DebugContext(ctx, "snippet translated", "outputBytes", stdout.Len())
	return stdout.String(), nil
}

// Close releases the runtime and the compiled module.
func (t *Translator) Close(ctx context.Context) error {
	if t.runtime == nil {
		return nil
	}
	return t.runtime.Close(ctx)
}
