// Package extension holds the in-memory model of a Scratch extension under
// construction, and the definition builder that populates it. The model is
// append-only: blocks, menus, globals and script fragments are validated at
// insertion and never updated or removed. A model is built once, rendered once.
package extension

import (
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// MethodBodyIndent is the column (in spaces) at which generated method bodies
// sit inside the emitted class. Snippets are translated and re-indented to this
// column at AddBlock/AddMenu time, so the renderer never re-indents.
const MethodBodyIndent = 12

// BlockKind enumerates the recognized block shapes. The zero value is invalid.
type BlockKind string

const (
	KindLabel    BlockKind = "label"
	KindButton   BlockKind = "button"
	KindCommand  BlockKind = "command"
	KindReporter BlockKind = "reporter"
	KindBoolean  BlockKind = "boolean"
	KindHat      BlockKind = "hat"
)

// KindFromString maps a case-insensitive kind name to its canonical BlockKind.
// The boolean result is false for unrecognized names.
func KindFromString(s string) (BlockKind, bool) {
	switch BlockKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindLabel:
		return KindLabel, true
	case KindButton:
		return KindButton, true
	case KindCommand:
		return KindCommand, true
	case KindReporter:
		return KindReporter, true
	case KindBoolean:
		return KindBoolean, true
	case KindHat:
		return KindHat, true
	}
	return "", false
}

// EnumName returns the name of this kind inside the host's block-type
// enumeration (Scratch.BlockType.<EnumName>).
func (k BlockKind) EnumName() string {
	return strings.ToUpper(string(k))
}

// LiteralKey returns the key naming the block's handler in its emitted
// literal: button blocks bind through "func", every other kind through
// "opcode".
func (k BlockKind) LiteralKey() string {
	if k == KindButton {
		return "func"
	}
	return "opcode"
}

// Metadata carries the extension's identity fields. ID is required; it is
// emitted as a literal string and, capitalized, names the generated class.
type Metadata struct {
	ID           string
	Name         string
	Color        string
	BlockIconURI string
	MenuIconURI  string
	DocsURI      string
}

// ClassName returns the generated container class name: the ID with its first
// letter upper-cased.
func (m Metadata) ClassName() string {
	if m.ID == "" {
		return ""
	}
	return strings.ToUpper(m.ID[:1]) + m.ID[1:]
}

// ArgumentOption is one option of an argument spec, e.g. {type, "string"} or
// {menu, "directions"}. Values are cty values so the renderer can serialize
// them as canonical data literals.
type ArgumentOption struct {
	Name  string
	Value cty.Value
}

// ArgumentSpec is the ordered option list describing one block argument.
type ArgumentSpec []ArgumentOption

// ScalarSpec normalizes a bare scalar default into the canonical
// {type: "string", default: value} option pair.
func ScalarSpec(value cty.Value) ArgumentSpec {
	return ArgumentSpec{
		{Name: "type", Value: cty.StringVal("string")},
		{Name: "default", Value: value},
	}
}

// Argument names one placeholder of a block's display text and its spec.
// Either Spec is provided, or Default alone, which is normalized through
// ScalarSpec at AddBlock time.
type Argument struct {
	Name    string
	Spec    ArgumentSpec
	Default cty.Value
}

// Block is a fully resolved block definition. Script holds the block's
// JavaScript body already indented to the method-body column; it is empty only
// for label blocks, which have no executable behavior.
type Block struct {
	Opcode    string
	Kind      BlockKind
	Text      string
	Arguments []Argument
	Script    string
	Scopes    []string
	Terminal  bool
}

// Menu is a fully resolved menu definition. Static menus carry Items; dynamic
// menus carry a Script body and are emitted as a same-named accessor method.
type Menu struct {
	Name            string
	AcceptReporters bool
	Items           []string
	Script          string
}

// Dynamic reports whether the menu's options are computed at palette-open time
// by a generated accessor method.
func (m Menu) Dynamic() bool {
	return m.Items == nil
}

// Model owns everything the renderer consumes: metadata, blocks in insertion
// order, menus in insertion order, module-scope directives, global variable
// declarations and class-scope script fragments. It is not safe for concurrent
// mutation; use one model per build.
type Model struct {
	meta       Metadata
	blocks     []Block
	opcodes    map[string]struct{}
	menus      []Menu
	menuNames  map[string]struct{}
	directives []string
	globals    []string
	fragments  []string
}

// NewModel returns an empty model. The directive list starts with the strict
// evaluation directive, matching the host's expectations for generated
// extensions.
func NewModel() *Model {
	return &Model{
		opcodes:    make(map[string]struct{}),
		menuNames:  make(map[string]struct{}),
		directives: []string{`"use strict";`},
	}
}

// Meta returns the extension metadata.
func (m *Model) Meta() Metadata { return m.meta }

// Blocks returns the block definitions in insertion order.
func (m *Model) Blocks() []Block { return m.blocks }

// Menus returns the menu definitions in insertion order.
func (m *Model) Menus() []Menu { return m.menus }

// Directives returns the module-scope script lines, strict directive first.
func (m *Model) Directives() []string { return m.directives }

// Globals returns the global variable declaration lines in insertion order.
func (m *Model) Globals() []string { return m.globals }

// Fragments returns the class-scope script fragments in insertion order.
func (m *Model) Fragments() []string { return m.fragments }
