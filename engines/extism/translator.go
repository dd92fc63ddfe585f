// Package extism adapts a caller-supplied Extism WASM plugin as a behavior
// snippet translator. The plugin is the black box the generator delegates to:
// it receives the dedented snippet body on its input and returns JavaScript
// source as its output. Any plugin exporting a string-in/string-out function
// (for example a compiled Python-to-JS transpiler) can be wired in.
package extism

import (
	"context"
	"fmt"
	"log/slog"

	extismSDK "github.com/extism/go-sdk"
	"github.com/qiufengcute/scratchext/internal/helpers"
	"github.com/qiufengcute/scratchext/platform/loader"
)

// DefaultEntrypoint is the exported plugin function called per snippet.
const DefaultEntrypoint = "translate"

// Translator implements translate.Translator backed by a compiled Extism
// plugin. Safe for sequential use; create one per build.
type Translator struct {
	plugin     *extismSDK.CompiledPlugin
	entrypoint string
	logHandler slog.Handler
	logger     *slog.Logger
}

// FunctionalOption configures a Translator during New.
type FunctionalOption func(*Translator) error

// WithEntrypoint overrides the exported function name called per snippet.
func WithEntrypoint(name string) FunctionalOption {
	return func(t *Translator) error {
		if name == "" {
			return ErrEntrypointEmpty
		}
		t.entrypoint = name
		return nil
	}
}

// New compiles the plugin supplied by the loader. Close must be called when
// the translator is no longer needed.
func New(ctx context.Context, handler slog.Handler, ldr loader.Loader, opts ...FunctionalOption) (*Translator, error) {
	handler, logger := helpers.SetupLogger(handler, "extism", "Translator")

	t := &Translator{
		entrypoint: DefaultEntrypoint,
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

	manifest := extismSDK.Manifest{
		Wasm: []extismSDK.Wasm{
			extismSDK.WasmData{
				Data: wasmBytes,
			},
		},
	}

	config := extismSDK.PluginConfig{
		EnableWasi: true,
	}

	plugin, err := extismSDK.NewCompiledPlugin(ctx, manifest, config, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}

	t.plugin = plugin
	return t, nil
}

func (t *Translator) String() string {
	return "extism.Translator"
}

// Translate calls the plugin entrypoint with the snippet body and returns the
// plugin's output as JavaScript source.
func (t *Translator) Translate(ctx context.Context, source string) (string, error) {
	logger := t.logger.WithGroup("Translate")

	instance, err := t.plugin.Instance(ctx, extismSDK.PluginInstanceConfig{})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranslateFailed, err)
	}
	defer func() {
		if err := instance.Close(ctx); err != nil {
			logger.WarnContext(ctx, "failed to close plugin instance", "error", err)
		}
	}()

	if !instance.FunctionExists(t.entrypoint) {
		return "", fmt.Errorf("%w: %q", ErrEntrypointAbsent, t.entrypoint)
	}

	exitCode, output, err := instance.CallWithContext(ctx, t.entrypoint, []byte(source))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranslateFailed, err)
	}
	if exitCode != 0 {
		return "", fmt.Errorf("%w: %d", ErrNonZeroExit, exitCode)
	}

	logger.DebugContext(ctx, "snippet translated", "entrypoint", t.entrypoint, "outputBytes", len(output))
	return string(output), nil
}

// Close releases the compiled plugin.
func (t *Translator) Close(ctx context.Context) error {
	if t.plugin == nil {
		return nil
	}
	return t.plugin.Close(ctx)
}
