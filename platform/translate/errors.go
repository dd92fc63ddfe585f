package translate

import "errors"

var (
	ErrTranslatorNil     = errors.New("translator is nil")
	ErrSnippetEmpty      = errors.New("snippet is empty")
	ErrSnippetNoBody     = errors.New("snippet has no body below its declaration header")
	ErrTranslationFailed = errors.New("snippet translation failed")
)
