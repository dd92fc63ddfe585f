// Package translate defines the behavior-source translation contract used by the
// definition builder, plus the snippet adapter that prepares a function-like
// snippet for translation and re-indents the result for method-body placement.
package translate

import "context"

// Translator converts behavior-definition source into the host's scripting
// language (JavaScript). Implementations live under engines/ and are treated as
// black boxes: source text in, script text out, or an error.
//
// A Translator must be a pure function of its input. The generator performs no
// caching or retries, so repeated identical inputs are translated independently.
type Translator interface {
	// Translate converts the dedented snippet body into JavaScript source.
	// The returned text uses the translator's own base indentation; callers
	// re-indent it for final placement.
	Translate(ctx context.Context, source string) (string, error)

	// String returns a short name identifying the translator implementation.
	String() string
}
