package extension

import "errors"

var (
	ErrMetadataID        = errors.New("extension id must be a non-empty identifier without whitespace")
	ErrOpcodeInvalid     = errors.New("block opcode must be a non-empty identifier without whitespace")
	ErrOpcodeDuplicate   = errors.New("block opcode already defined")
	ErrKindUnknown       = errors.New("block kind must be one of: label/button/command/reporter/boolean/hat")
	ErrTextEmpty         = errors.New("block display text must not be empty")
	ErrBehaviorMissing   = errors.New("block requires exactly one behavior source (snippet or script)")
	ErrBehaviorConflict  = errors.New("block must not carry both a snippet and a raw script")
	ErrLabelBehavior     = errors.New("label blocks carry no behavior source")
	ErrArgumentInvalid   = errors.New("block argument is invalid")
	ErrMenuNameInvalid   = errors.New("menu name must be a non-empty identifier without whitespace")
	ErrMenuNameDuplicate = errors.New("menu name already defined")
	ErrMenuItemsEmpty    = errors.New("static menu requires at least one option")
	ErrMenuItemInvalid   = errors.New("static menu options must be non-empty strings")
	ErrMenuBehavior      = errors.New("dynamic menu requires exactly one behavior source (snippet or script)")
	ErrGlobalName        = errors.New("global variable name must be a non-empty identifier without whitespace")
	ErrDirectiveEmpty    = errors.New("module directive must not be empty")
	ErrFragmentEmpty     = errors.New("script fragment must not be empty")
)
