package render

import "errors"

var (
	ErrModelNil           = errors.New("model is nil")
	ErrNoBlocks           = errors.New("extension requires at least one block")
	ErrMetadataUnset      = errors.New("extension metadata has no id")
	ErrLiteralUnsupported = errors.New("value cannot be serialized as a data literal")
	ErrRenderFailed       = errors.New("extension rendering failed")
)
