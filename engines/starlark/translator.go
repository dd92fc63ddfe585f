// Package starlark translates behavior snippets written in Starlark (a Python
// dialect) into JavaScript suitable for embedding in a generated extension
// class. Only the statement/expression subset that maps cleanly onto
// JavaScript is accepted; anything else fails with ErrUnsupported rather than
// guessing at semantics.
package starlark

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/qiufengcute/scratchext/internal/helpers"
	"go.starlark.net/syntax"
)

// Translator implements translate.Translator on top of the Starlark parser.
type Translator struct {
	opts       *syntax.FileOptions
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a Starlark snippet translator.
func New(handler slog.Handler) *Translator {
	handler, logger := helpers.SetupLogger(handler, "starlark", "Translator")

	return &Translator{
		opts: &syntax.FileOptions{
			While:           true,
			TopLevelControl: true,
			GlobalReassign:  true,
			Recursion:       true,
		},
		logHandler: handler,
		logger:     logger,
	}
}

func (t *Translator) String() string {
	return "starlark.Translator"
}

// Translate parses the dedented snippet body as a sequence of Starlark
// statements and emits equivalent JavaScript at column zero.
func (t *Translator) Translate(ctx context.Context, source string) (string, error) {
	logger := t.logger.WithGroup("Translate")

	if strings.TrimSpace(source) == "" {
		return "", ErrContentEmpty
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	file, err := t.opts.Parse("snippet.star", source, 0)
	if err != nil {
		logger.Warn("parse failed", "error", err)
		return "", fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	e := newEmitter()
	out, err := e.file(file.Stmts)
	if err != nil {
		logger.Warn("emission failed", "error", err)
		return "", err
	}

	logger.Debug("snippet translated", "inputBytes", len(source), "outputBytes", len(out))
	return out, nil
}
