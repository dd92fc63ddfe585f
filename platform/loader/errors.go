package loader

import "errors"

var (
	ErrContentUnavailable = errors.New("content is not available")
	ErrSchemeUnsupported  = errors.New("URL scheme is not supported")
)
