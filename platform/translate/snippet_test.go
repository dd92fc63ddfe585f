package translate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/qiufengcute/scratchext/engines/mocks"
	"github.com/qiufengcute/scratchext/platform/translate"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDedentBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		snippet string
		want    string
		wantErr error
	}{
		{
			name:    "simple body",
			snippet: "def greet(args):\n    return 1",
			want:    "return 1",
		},
		{
			name:    "nested indentation preserved",
			snippet: "def f(args):\n    if x:\n        y = 1\n    return y",
			want:    "if x:\n    y = 1\nreturn y",
		},
		{
			name:    "tab indentation",
			snippet: "def f(args):\n\treturn 1",
			want:    "return 1",
		},
		{
			name:    "blank line inside body",
			snippet: "def f(args):\n    x = 1\n\n    return x",
			want:    "x = 1\n\nreturn x",
		},
		{
			name:    "leading blank line before first statement",
			snippet: "def f(args):\n\n    return 1",
			want:    "\nreturn 1",
		},
		{
			name:    "empty snippet",
			snippet: "",
			wantErr: translate.ErrSnippetEmpty,
		},
		{
			name:    "whitespace only",
			snippet: "   \n  ",
			wantErr: translate.ErrSnippetEmpty,
		},
		{
			name:    "header only",
			snippet: "def f(args):",
			wantErr: translate.ErrSnippetNoBody,
		},
		{
			name:    "header with blank body",
			snippet: "def f(args):\n   \n",
			wantErr: translate.ErrSnippetNoBody,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := translate.DedentBody(tc.snippet)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestIndent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		indent int
		want   string
	}{
		{
			name:   "single line",
			text:   "return 1;",
			indent: 4,
			want:   "    return 1;",
		},
		{
			name:   "multiple lines",
			text:   "let x;\nx = 1;",
			indent: 2,
			want:   "  let x;\n  x = 1;",
		},
		{
			name:   "blank lines stay blank",
			text:   "a;\n\nb;",
			indent: 4,
			want:   "    a;\n\n    b;",
		},
		{
			name:   "whitespace-only line becomes empty",
			text:   "a;\n   \nb;",
			indent: 4,
			want:   "    a;\n\n    b;",
		},
		{
			name:   "zero indent is identity",
			text:   "a;\nb;",
			indent: 0,
			want:   "a;\nb;",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, translate.Indent(tc.text, tc.indent))
		})
	}
}

func TestSnippet(t *testing.T) {
	t.Parallel()

	t.Run("translates dedented body and re-indents", func(t *testing.T) {
		t.Parallel()
		tr := new(mocks.Translator)
		tr.On("Translate", mock.Anything, "return 1").Return("return 1;", nil)

		got, err := translate.Snippet(context.Background(), tr, "def f(args):\n    return 1", 12)
		require.NoError(t, err)
		require.Equal(t, "            return 1;", got)
		tr.AssertExpectations(t)
	})

	t.Run("translator failure propagates", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("unsupported construct")
		tr := new(mocks.Translator)
		tr.On("Translate", mock.Anything, mock.Anything).Return("", boom)

		_, err := translate.Snippet(context.Background(), tr, "def f(args):\n    return 1", 12)
		require.ErrorIs(t, err, translate.ErrTranslationFailed)
		require.ErrorIs(t, err, boom)
	})

	t.Run("nil translator", func(t *testing.T) {
		t.Parallel()
		_, err := translate.Snippet(context.Background(), nil, "def f(args):\n    return 1", 12)
		require.ErrorIs(t, err, translate.ErrTranslatorNil)
	})

	t.Run("blank lines in translation are not padded", func(t *testing.T) {
		t.Parallel()
		tr := new(mocks.Translator)
		tr.On("Translate", mock.Anything, mock.Anything).Return("a;\n\nb;", nil)

		got, err := translate.Snippet(context.Background(), tr, "def f(args):\n    pass", 4)
		require.NoError(t, err)
		require.Equal(t, "    a;\n\n    b;", got)
	})
}
