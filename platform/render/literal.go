package render

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// JSLiteral serializes a cty value as a JavaScript data literal. JSON is a
// strict subset of JavaScript literal syntax, so the cty JSON encoding is
// emitted as-is; this guarantees quoting and escaping are always parseable,
// with no string interpolation anywhere in the pipeline.
func JSLiteral(v cty.Value) (string, error) {
	if v == cty.NilVal {
		return "", fmt.Errorf("%w: nil value", ErrLiteralUnsupported)
	}
	out, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLiteralUnsupported, err)
	}
	return string(out), nil
}

// QuoteString returns s as a double-quoted JavaScript string literal with any
// embedded quotes, backslashes and control characters escaped.
func QuoteString(s string) string {
	// Marshaling a known string never fails.
	out, _ := ctyjson.Marshal(cty.StringVal(s), cty.String)
	return string(out)
}

// StringList returns a JavaScript array literal of string elements.
func StringList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	vals := make([]cty.Value, len(items))
	for i, item := range items {
		vals[i] = cty.StringVal(item)
	}
	out, _ := ctyjson.Marshal(cty.ListVal(vals), cty.List(cty.String))
	return string(out)
}

// Bool returns the JavaScript literal for a boolean.
func Bool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
