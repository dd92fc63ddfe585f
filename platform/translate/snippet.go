package translate

import (
	"context"
	"fmt"
	"strings"
)

// Snippet prepares a function-like behavior snippet and runs it through the
// provided translator. The snippet's first line is its declaration header and
// is discarded; the remaining body is dedented by the leading whitespace width
// of its first non-blank line, translated, and every non-blank line of the
// result is re-indented by indent spaces. Blank lines stay blank.
func Snippet(ctx context.Context, tr Translator, snippet string, indent int) (string, error) {
	if tr == nil {
		return "", ErrTranslatorNil
	}

	body, err := DedentBody(snippet)
	if err != nil {
		return "", err
	}

	translated, err := tr.Translate(ctx, body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranslationFailed, err)
	}

	return Indent(translated, indent), nil
}

// DedentBody strips the declaration header line from a snippet and removes the
// common leading whitespace measured from the first non-blank body line.
// Shorter lines pass through unchanged.
func DedentBody(snippet string) (string, error) {
	if strings.TrimSpace(snippet) == "" {
		return "", ErrSnippetEmpty
	}

	lines := strings.Split(snippet, "\n")

	// The header is the declaration line ("def name(...):" or similar); only
	// the body below it is translated.
	body := lines[1:]
	if len(body) == 0 {
		return "", ErrSnippetNoBody
	}

	width := 0
	for _, line := range body {
		if strings.TrimSpace(line) == "" {
			continue
		}
		width = len(line) - len(strings.TrimLeft(line, " \t"))
		break
	}

	dedented := make([]string, len(body))
	for i, line := range body {
		if len(line) >= width {
			dedented[i] = line[width:]
		} else {
			dedented[i] = line
		}
	}

	out := strings.Join(dedented, "\n")
	if strings.TrimSpace(out) == "" {
		return "", ErrSnippetNoBody
	}
	return out, nil
}

// Indent prefixes every non-blank line of text with the given number of
// spaces. Blank lines are left empty rather than padded.
func Indent(text string, indent int) string {
	if indent <= 0 {
		return text
	}
	prefix := strings.Repeat(" ", indent)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
