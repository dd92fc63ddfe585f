package extism

import "errors"

var (
	ErrContentNil       = errors.New("wasm content is nil")
	ErrCompileFailed    = errors.New("unable to compile wasm translator plugin")
	ErrEntrypointEmpty  = errors.New("translator entrypoint name is empty")
	ErrTranslateFailed  = errors.New("wasm translator plugin call failed")
	ErrNonZeroExit      = errors.New("wasm translator plugin returned a non-zero exit code")
	ErrEntrypointAbsent = errors.New("wasm translator plugin does not export the entrypoint")
)
