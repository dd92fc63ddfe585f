// Package raw provides the translator used when callers author block behavior
// directly in JavaScript: every snippet is rejected, which makes the raw
// Script field of a block or menu spec the only accepted behavior source.
package raw

import (
	"context"
	"errors"
	"log/slog"

	"github.com/qiufengcute/scratchext/internal/helpers"
)

// ErrSnippetsUnsupported is returned for every Translate call.
var ErrSnippetsUnsupported = errors.New("snippet translation is not supported; supply raw script text")

// Translator implements translate.Translator by refusing snippets.
type Translator struct {
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a raw-script-only translator.
func New(handler slog.Handler) *Translator {
	handler, logger := helpers.SetupLogger(handler, "raw", "Translator")

	return &Translator{
		logHandler: handler,
		logger:     logger,
	}
}

func (t *Translator) String() string {
	return "raw.Translator"
}

// Translate always fails; behavior must be supplied as raw script.
func (t *Translator) Translate(ctx context.Context, source string) (string, error) {
	t.logger.WarnContext(ctx, "snippet rejected by raw translator", "sourceBytes", len(source))
	return "", ErrSnippetsUnsupported
}
