package extension

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/qiufengcute/scratchext/internal/helpers"
	"github.com/qiufengcute/scratchext/platform/translate"
	"github.com/zclconf/go-cty/cty"
)

// BlockSpec is the caller-facing description of one block. Exactly one of
// Snippet or Script must be set for executable kinds; neither for labels.
type BlockSpec struct {
	Opcode    string
	Kind      BlockKind
	Text      string
	Arguments []Argument

	// Snippet is a function-like behavior snippet translated through the
	// builder's translator. Script is pre-rendered JavaScript stored verbatim.
	Snippet string
	Script  string

	// Scopes restricts where the block is shown (e.g. "sprite", "stage").
	Scopes []string

	// Terminal marks a block that no other block may attach below.
	Terminal bool
}

// MenuSpec is the caller-facing description of one dropdown menu. Items makes
// the menu static; Snippet or Script makes it dynamic.
type MenuSpec struct {
	Name            string
	Items           []string
	Snippet         string
	Script          string
	AcceptReporters bool
}

// Builder accumulates validated definitions into a Model. Every operation
// validates synchronously and either appends to the model or fails without
// mutating it, so the model stays usable after a rejected call.
type Builder struct {
	model      *Model
	translator translate.Translator
	logHandler slog.Handler
	logger     *slog.Logger
}

// NewBuilder creates a Builder backed by the given translator. The translator
// may be nil when every behavior source is supplied as raw script.
func NewBuilder(handler slog.Handler, tr translate.Translator) *Builder {
	handler, logger := helpers.SetupLogger(handler, "extension", "Builder")

	return &Builder{
		model:      NewModel(),
		translator: tr,
		logHandler: handler,
		logger:     logger,
	}
}

func (b *Builder) String() string {
	return "extension.Builder"
}

// Model returns the accumulated model for rendering.
func (b *Builder) Model() *Model {
	return b.model
}

// SetMetadata records the extension's identity fields. The ID is required and
// names both the emitted id literal and (capitalized) the container class.
func (b *Builder) SetMetadata(meta Metadata) error {
	if !validIdentifier(meta.ID) {
		return fmt.Errorf("%w: %q", ErrMetadataID, meta.ID)
	}
	b.model.meta = meta
	return nil
}

// SetGlobalVariable appends a module-scope let declaration. An empty
// initializer declares the variable without a value.
func (b *Builder) SetGlobalVariable(name, initializer string) error {
	if !validIdentifier(name) {
		return fmt.Errorf("%w: %q", ErrGlobalName, name)
	}

	decl := "let " + name + ";"
	if initializer != "" {
		decl = "let " + name + " = " + initializer + ";"
	}
	b.model.globals = append(b.model.globals, decl)
	return nil
}

// AddDirective appends a module-scope script line emitted after the strict
// directive, before the global declarations.
func (b *Builder) AddDirective(line string) error {
	if strings.TrimSpace(line) == "" {
		return ErrDirectiveEmpty
	}
	b.model.directives = append(b.model.directives, line)
	return nil
}

// AddScriptFragment appends raw JavaScript emitted verbatim at class-body
// scope, an escape hatch for handlers the declarative model cannot express.
func (b *Builder) AddScriptFragment(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrFragmentEmpty
	}
	b.model.fragments = append(b.model.fragments, text)
	return nil
}

// AddBlock validates the spec, resolves its behavior source and appends the
// block. Snippets are translated here, at the method-body column, so rendering
// is a pure layout pass.
func (b *Builder) AddBlock(ctx context.Context, spec BlockSpec) error {
	logger := b.logger.WithGroup("AddBlock")

	if !validIdentifier(spec.Opcode) {
		return fmt.Errorf("%w: %q", ErrOpcodeInvalid, spec.Opcode)
	}
	if _, exists := b.model.opcodes[spec.Opcode]; exists {
		return fmt.Errorf("%w: %q", ErrOpcodeDuplicate, spec.Opcode)
	}

	kind, ok := KindFromString(string(spec.Kind))
	if !ok {
		return fmt.Errorf("%w: got %q", ErrKindUnknown, spec.Kind)
	}

	if strings.TrimSpace(spec.Text) == "" {
		return fmt.Errorf("%w: opcode %q", ErrTextEmpty, spec.Opcode)
	}

	script, err := b.resolveBlockBehavior(ctx, kind, spec)
	if err != nil {
		return err
	}

	arguments, err := normalizeArguments(spec.Opcode, spec.Arguments)
	if err != nil {
		return err
	}

	b.model.blocks = append(b.model.blocks, Block{
		Opcode:    spec.Opcode,
		Kind:      kind,
		Text:      spec.Text,
		Arguments: arguments,
		Script:    script,
		Scopes:    spec.Scopes,
		Terminal:  spec.Terminal,
	})
	b.model.opcodes[spec.Opcode] = struct{}{}

	logger.Debug("block added", "opcode", spec.Opcode, "kind", kind, "arguments", len(arguments))
	return nil
}

// AddMenu validates the spec, resolves a dynamic menu's behavior source and
// appends the menu. Insertion order is preserved for emission.
func (b *Builder) AddMenu(ctx context.Context, spec MenuSpec) error {
	logger := b.logger.WithGroup("AddMenu")

	if !validIdentifier(spec.Name) {
		return fmt.Errorf("%w: %q", ErrMenuNameInvalid, spec.Name)
	}
	if _, exists := b.model.menuNames[spec.Name]; exists {
		return fmt.Errorf("%w: %q", ErrMenuNameDuplicate, spec.Name)
	}

	menu := Menu{
		Name:            spec.Name,
		AcceptReporters: spec.AcceptReporters,
	}

	dynamic := spec.Snippet != "" || spec.Script != ""
	switch {
	case dynamic && spec.Items != nil:
		return fmt.Errorf("%w: menu %q carries both items and a behavior source", ErrMenuBehavior, spec.Name)
	case dynamic:
		script, err := b.resolveBehavior(ctx, spec.Snippet, spec.Script)
		if err != nil {
			return fmt.Errorf("menu %q: %w", spec.Name, err)
		}
		menu.Script = script
	default:
		if len(spec.Items) == 0 {
			return fmt.Errorf("%w: menu %q", ErrMenuItemsEmpty, spec.Name)
		}
		for _, item := range spec.Items {
			if item == "" {
				return fmt.Errorf("%w: menu %q", ErrMenuItemInvalid, spec.Name)
			}
		}
		menu.Items = spec.Items
	}

	b.model.menus = append(b.model.menus, menu)
	b.model.menuNames[spec.Name] = struct{}{}

	logger.Debug("menu added", "name", spec.Name, "dynamic", menu.Dynamic())
	return nil
}

// resolveBlockBehavior enforces the per-kind behavior rules: labels carry no
// source, every other kind exactly one.
func (b *Builder) resolveBlockBehavior(ctx context.Context, kind BlockKind, spec BlockSpec) (string, error) {
	if kind == KindLabel {
		if spec.Snippet != "" || spec.Script != "" {
			return "", fmt.Errorf("%w: opcode %q", ErrLabelBehavior, spec.Opcode)
		}
		return "", nil
	}

	script, err := b.resolveBehavior(ctx, spec.Snippet, spec.Script)
	if err != nil {
		return "", fmt.Errorf("block %q: %w", spec.Opcode, err)
	}
	return script, nil
}

func (b *Builder) resolveBehavior(ctx context.Context, snippet, script string) (string, error) {
	switch {
	case snippet != "" && script != "":
		return "", ErrBehaviorConflict
	case snippet != "":
		return translate.Snippet(ctx, b.translator, snippet, MethodBodyIndent)
	case script != "":
		return script, nil
	}
	return "", ErrBehaviorMissing
}

func normalizeArguments(opcode string, args []Argument) ([]Argument, error) {
	if len(args) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(args))
	out := make([]Argument, 0, len(args))
	for _, arg := range args {
		if arg.Name == "" {
			return nil, fmt.Errorf("%w: block %q has an unnamed argument", ErrArgumentInvalid, opcode)
		}
		if _, dup := seen[arg.Name]; dup {
			return nil, fmt.Errorf("%w: block %q repeats argument %q", ErrArgumentInvalid, opcode, arg.Name)
		}
		seen[arg.Name] = struct{}{}

		spec := arg.Spec
		if len(spec) == 0 {
			if arg.Default == cty.NilVal {
				return nil, fmt.Errorf("%w: block %q argument %q has neither spec nor default", ErrArgumentInvalid, opcode, arg.Name)
			}
			spec = ScalarSpec(arg.Default)
		}
		for _, opt := range spec {
			if opt.Name == "" {
				return nil, fmt.Errorf("%w: block %q argument %q has an unnamed option", ErrArgumentInvalid, opcode, arg.Name)
			}
			if opt.Value == cty.NilVal {
				return nil, fmt.Errorf("%w: block %q argument %q option %q has no value", ErrArgumentInvalid, opcode, arg.Name, opt.Name)
			}
		}

		out = append(out, Argument{Name: arg.Name, Spec: spec})
	}
	return out, nil
}

func validIdentifier(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	return !strings.ContainsFunc(s, unicode.IsSpace)
}
