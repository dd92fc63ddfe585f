package wasi

import "errors"

var (
	ErrContentNil      = errors.New("wasm content is nil")
	ErrCompileFailed   = errors.New("unable to compile wasi translator module")
	ErrArgsEmpty       = errors.New("translator argv must not be empty")
	ErrTranslateFailed = errors.New("wasi translator module failed")
)
