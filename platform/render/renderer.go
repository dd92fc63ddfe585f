// Package render serializes a populated extension model into the final
// JavaScript source. Rendering is a pure layout pass: the model has already
// been validated by the builder, behavior sources are already translated and
// indented, and the only failure modes are an unusable model (no blocks, no
// id) or a value that cannot be serialized as a data literal.
package render

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/qiufengcute/scratchext/internal/helpers"
	"github.com/qiufengcute/scratchext/platform/extension"
)

// Renderer turns a model into host script text. It holds no state between
// calls; rendering the same model twice yields byte-identical output.
type Renderer struct {
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a Renderer.
func New(handler slog.Handler) *Renderer {
	handler, logger := helpers.SetupLogger(handler, "render", "Renderer")

	return &Renderer{
		logHandler: handler,
		logger:     logger,
	}
}

func (r *Renderer) String() string {
	return "render.Renderer"
}

// Render walks the model and emits the self-invoking module registering the
// extension. Output is all-or-nothing: any failure returns an empty string.
func (r *Renderer) Render(m *extension.Model) (string, error) {
	logger := r.logger.WithGroup("Render")

	if m == nil {
		return "", ErrModelNil
	}
	if len(m.Blocks()) == 0 {
		return "", ErrNoBlocks
	}
	if m.Meta().ID == "" {
		return "", ErrMetadataUnset
	}

	w := newWriter()
	if err := r.renderModule(w, m); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	out := w.String()
	logger.Debug("extension rendered",
		"id", m.Meta().ID,
		"blocks", len(m.Blocks()),
		"menus", len(m.Menus()),
		"bytes", len(out))
	return out, nil
}

func (r *Renderer) renderModule(w *writer, m *extension.Model) error {
	className := m.Meta().ClassName()

	w.line(0, "(function(Scratch) {")
	for _, directive := range m.Directives() {
		w.line(1, directive)
	}
	for _, decl := range m.Globals() {
		w.line(1, decl)
	}
	w.line(1, "class "+className+" {")

	if err := r.renderGetInfo(w, m); err != nil {
		return err
	}

	for _, menu := range m.Menus() {
		if !menu.Dynamic() {
			continue
		}
		w.blank()
		w.line(2, menu.Name+"() {")
		w.raw(menu.Script)
		w.line(2, "}")
	}

	for _, fragment := range m.Fragments() {
		w.blank()
		w.raw(fragment)
	}

	for _, block := range m.Blocks() {
		if block.Kind == extension.KindLabel {
			continue
		}
		w.blank()
		w.line(2, block.Opcode+"(args) {")
		w.raw(block.Script)
		w.line(2, "}")
	}

	w.line(1, "}")
	w.line(1, "Scratch.extensions.register(new "+className+"());")
	w.write("})(Scratch);")
	return nil
}

func (r *Renderer) renderGetInfo(w *writer, m *extension.Model) error {
	meta := m.Meta()

	w.line(2, "getInfo() {")
	w.line(3, "return {")
	w.line(4, "id: "+QuoteString(meta.ID)+",")
	w.line(4, "name: "+QuoteString(meta.Name)+",")
	w.line(4, "color1: "+QuoteString(meta.Color)+",")
	w.line(4, "blockIconURI: "+QuoteString(meta.BlockIconURI)+",")
	w.line(4, "blockMenuURI: "+QuoteString(meta.MenuIconURI)+",")
	w.line(4, "docsURI: "+QuoteString(meta.DocsURI)+",")

	blocks := m.Blocks()
	menus := m.Menus()

	w.line(4, "blocks: [")
	for i, block := range blocks {
		if err := r.renderBlockLiteral(w, block, i == len(blocks)-1); err != nil {
			return err
		}
	}
	if len(menus) > 0 {
		w.line(4, "],")
		r.renderMenus(w, menus)
	} else {
		w.line(4, "]")
	}

	w.line(3, "};")
	w.line(2, "}")
	return nil
}

// renderBlockLiteral emits one entry of the blocks list. Optional fields
// (arguments, filter, isTerminal) are omitted entirely when absent, and the
// final field carries no trailing comma.
func (r *Renderer) renderBlockLiteral(w *writer, block extension.Block, last bool) error {
	w.line(5, "{")

	fields := []string{
		block.Kind.LiteralKey() + ": " + QuoteString(block.Opcode),
		"blockType: Scratch.BlockType." + block.Kind.EnumName(),
		"text: " + QuoteString(block.Text),
	}

	var argLines []string
	if len(block.Arguments) > 0 {
		var err error
		argLines, err = r.renderArguments(block)
		if err != nil {
			return err
		}
	}

	if len(block.Scopes) > 0 {
		fields = append(fields, "filter: "+StringList(block.Scopes))
	}
	if block.Terminal {
		fields = append(fields, "isTerminal: true")
	}

	// The arguments sub-object sits after text, before filter/isTerminal.
	flat := fields[:3:3]
	if argLines != nil {
		flat = append(flat, strings.Join(argLines, "\n"))
	}
	flat = append(flat, fields[3:]...)

	for i, field := range flat {
		sep := ","
		if i == len(flat)-1 {
			sep = ""
		}
		if strings.Contains(field, "\n") {
			w.write(field + sep + "\n")
			continue
		}
		w.line(6, field+sep)
	}

	if last {
		w.line(5, "}")
	} else {
		w.line(5, "},")
	}
	return nil
}

// renderArguments returns the fully indented lines of the arguments
// sub-object, without a trailing separator.
func (r *Renderer) renderArguments(block extension.Block) ([]string, error) {
	ind6 := indentOf(6)
	ind7 := indentOf(7)
	ind8 := indentOf(8)

	lines := []string{ind6 + "arguments: {"}
	for ai, arg := range block.Arguments {
		lines = append(lines, ind7+arg.Name+": {")
		for oi, opt := range arg.Spec {
			value, err := JSLiteral(opt.Value)
			if err != nil {
				return nil, fmt.Errorf("block %q argument %q option %q: %w", block.Opcode, arg.Name, opt.Name, err)
			}
			sep := ","
			if oi == len(arg.Spec)-1 {
				sep = ""
			}
			lines = append(lines, ind8+opt.Name+": "+value+sep)
		}
		if ai == len(block.Arguments)-1 {
			lines = append(lines, ind7+"}")
		} else {
			lines = append(lines, ind7+"},")
		}
	}
	lines = append(lines, ind6+"}")
	return lines, nil
}

// renderMenus emits the menus sub-object. Static menus inline their option
// list; dynamic menus name their accessor method, which the host resolves
// lazily when the menu is opened.
func (r *Renderer) renderMenus(w *writer, menus []extension.Menu) {
	w.line(4, "menus: {")
	for i, menu := range menus {
		w.line(5, menu.Name+": {")
		w.line(6, "acceptReporters: "+Bool(menu.AcceptReporters)+",")
		if menu.Dynamic() {
			w.line(6, "items: "+QuoteString(menu.Name))
		} else {
			w.line(6, "items: "+StringList(menu.Items))
		}
		if i == len(menus)-1 {
			w.line(5, "}")
		} else {
			w.line(5, "},")
		}
	}
	w.line(4, "}")
}

// writer accumulates output lines at four-space indent steps.
type writer struct {
	sb strings.Builder
}

func newWriter() *writer {
	return &writer{}
}

// line writes text at the given indent level followed by a newline.
func (w *writer) line(level int, text string) {
	w.sb.WriteString(indentOf(level))
	w.sb.WriteString(text)
	w.sb.WriteString("\n")
}

// raw writes pre-indented text (translated snippet bodies, caller fragments)
// followed by a newline.
func (w *writer) raw(text string) {
	w.sb.WriteString(text)
	w.sb.WriteString("\n")
}

// blank writes an empty separator line.
func (w *writer) blank() {
	w.sb.WriteString("\n")
}

// write appends text verbatim.
func (w *writer) write(text string) {
	w.sb.WriteString(text)
}

func (w *writer) String() string {
	return w.sb.String()
}

func indentOf(level int) string {
	return strings.Repeat("    ", level)
}
