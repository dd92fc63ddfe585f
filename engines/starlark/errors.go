package starlark

import "errors"

var (
	ErrContentEmpty = errors.New("starlark snippet body is empty")
	ErrParseFailed  = errors.New("starlark snippet parse error")
	ErrUnsupported  = errors.New("starlark construct has no JavaScript translation")
)
