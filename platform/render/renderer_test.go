package render_test

import (
	"context"
	"testing"

	"github.com/qiufengcute/scratchext/platform/extension"
	"github.com/qiufengcute/scratchext/platform/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// buildModel assembles the shared fixture: one block of every behavior shape,
// one static and one dynamic menu, a global and a script fragment.
func buildModel(t *testing.T) *extension.Model {
	t.Helper()
	ctx := context.Background()

	b := extension.NewBuilder(nil, nil)
	require.NoError(t, b.SetMetadata(extension.Metadata{
		ID:    "mytest",
		Name:  "My Test",
		Color: "#29beb8",
	}))
	require.NoError(t, b.SetGlobalVariable("counter", "0"))

	require.NoError(t, b.AddBlock(ctx, extension.BlockSpec{
		Opcode: "sayHello",
		Kind:   extension.KindCommand,
		Text:   "say hello [MSG]",
		Arguments: []extension.Argument{
			{Name: "MSG", Default: cty.StringVal("world")},
		},
		Script: "            console.log(args.MSG);",
	}))
	require.NoError(t, b.AddBlock(ctx, extension.BlockSpec{
		Opcode: "openDocs",
		Kind:   extension.KindButton,
		Text:   "open docs",
		Script: `            window.open("https://example.com/docs");`,
	}))
	require.NoError(t, b.AddBlock(ctx, extension.BlockSpec{
		Opcode: "header",
		Kind:   extension.KindLabel,
		Text:   "--- misc ---",
	}))
	require.NoError(t, b.AddBlock(ctx, extension.BlockSpec{
		Opcode:   "stopAll",
		Kind:     extension.KindCommand,
		Text:     "stop everything",
		Scopes:   []string{"sprite"},
		Terminal: true,
		Script:   "            counter = 0;",
	}))

	require.NoError(t, b.AddMenu(ctx, extension.MenuSpec{
		Name:  "directions",
		Items: []string{"up", "down"},
	}))
	require.NoError(t, b.AddMenu(ctx, extension.MenuSpec{
		Name:            "sprites",
		Script:          "            return vm.runtime.targets.map((t) => t.getName());",
		AcceptReporters: true,
	}))

	return b.Model()
}

const wantScript = `(function(Scratch) {
    "use strict";
    let counter = 0;
    class Mytest {
        getInfo() {
            return {
                id: "mytest",
                name: "My Test",
                color1: "#29beb8",
                blockIconURI: "",
                blockMenuURI: "",
                docsURI: "",
                blocks: [
                    {
                        opcode: "sayHello",
                        blockType: Scratch.BlockType.COMMAND,
                        text: "say hello [MSG]",
                        arguments: {
                            MSG: {
                                type: "string",
                                default: "world"
                            }
                        }
                    },
                    {
                        func: "openDocs",
                        blockType: Scratch.BlockType.BUTTON,
                        text: "open docs"
                    },
                    {
                        opcode: "header",
                        blockType: Scratch.BlockType.LABEL,
                        text: "--- misc ---"
                    },
                    {
                        opcode: "stopAll",
                        blockType: Scratch.BlockType.COMMAND,
                        text: "stop everything",
                        filter: ["sprite"],
                        isTerminal: true
                    }
                ],
                menus: {
                    directions: {
                        acceptReporters: false,
                        items: ["up","down"]
                    },
                    sprites: {
                        acceptReporters: true,
                        items: "sprites"
                    }
                }
            };
        }

        sprites() {
            return vm.runtime.targets.map((t) => t.getName());
        }

        sayHello(args) {
            console.log(args.MSG);
        }

        openDocs(args) {
            window.open("https://example.com/docs");
        }

        stopAll(args) {
            counter = 0;
        }
    }
    Scratch.extensions.register(new Mytest());
})(Scratch);`

func TestRenderGolden(t *testing.T) {
	t.Parallel()

	got, err := render.New(nil).Render(buildModel(t))
	require.NoError(t, err)
	assert.Equal(t, wantScript, got)
}

func TestRenderDeterministic(t *testing.T) {
	t.Parallel()

	m := buildModel(t)
	r := render.New(nil)

	first, err := r.Render(m)
	require.NoError(t, err)
	second, err := r.Render(m)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()

	t.Run("nil model", func(t *testing.T) {
		t.Parallel()
		_, err := render.New(nil).Render(nil)
		require.ErrorIs(t, err, render.ErrModelNil)
	})

	t.Run("no blocks", func(t *testing.T) {
		t.Parallel()
		b := extension.NewBuilder(nil, nil)
		require.NoError(t, b.SetMetadata(extension.Metadata{ID: "empty"}))
		_, err := render.New(nil).Render(b.Model())
		require.ErrorIs(t, err, render.ErrNoBlocks)
	})

	t.Run("metadata unset", func(t *testing.T) {
		t.Parallel()
		b := extension.NewBuilder(nil, nil)
		require.NoError(t, b.AddBlock(context.Background(), extension.BlockSpec{
			Opcode: "noop",
			Kind:   extension.KindCommand,
			Text:   "noop",
			Script: "            return;",
		}))
		_, err := render.New(nil).Render(b.Model())
		require.ErrorIs(t, err, render.ErrMetadataUnset)
	})
}

func TestRenderFragments(t *testing.T) {
	t.Parallel()

	b := extension.NewBuilder(nil, nil)
	require.NoError(t, b.SetMetadata(extension.Metadata{ID: "frag"}))
	require.NoError(t, b.AddScriptFragment("        _reset() {\n            return;\n        }"))
	require.NoError(t, b.AddBlock(context.Background(), extension.BlockSpec{
		Opcode: "noop",
		Kind:   extension.KindCommand,
		Text:   "noop",
		Script: "            this._reset();",
	}))

	got, err := render.New(nil).Render(b.Model())
	require.NoError(t, err)
	assert.Contains(t, got, "\n\n        _reset() {\n            return;\n        }\n")
}

func TestRenderNumericArgumentSpec(t *testing.T) {
	t.Parallel()

	b := extension.NewBuilder(nil, nil)
	require.NoError(t, b.SetMetadata(extension.Metadata{ID: "nums"}))
	require.NoError(t, b.AddBlock(context.Background(), extension.BlockSpec{
		Opcode: "move",
		Kind:   extension.KindCommand,
		Text:   "move [STEPS] steps",
		Arguments: []extension.Argument{{
			Name: "STEPS",
			Spec: extension.ArgumentSpec{
				{Name: "type", Value: cty.StringVal("number")},
				{Name: "default", Value: cty.NumberIntVal(10)},
			},
		}},
		Script: "            return;",
	}))

	got, err := render.New(nil).Render(b.Model())
	require.NoError(t, err)
	assert.Contains(t, got, `type: "number",`)
	assert.Contains(t, got, "default: 10\n")
}

func TestRenderMenuReferenceArgument(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b := extension.NewBuilder(nil, nil)
	require.NoError(t, b.SetMetadata(extension.Metadata{ID: "menus"}))
	require.NoError(t, b.AddMenu(ctx, extension.MenuSpec{
		Name:  "directions",
		Items: []string{"up", "down"},
	}))
	require.NoError(t, b.AddBlock(ctx, extension.BlockSpec{
		Opcode: "face",
		Kind:   extension.KindCommand,
		Text:   "face [DIR]",
		Arguments: []extension.Argument{{
			Name: "DIR",
			Spec: extension.ArgumentSpec{
				{Name: "type", Value: cty.StringVal("string")},
				{Name: "menu", Value: cty.StringVal("directions")},
			},
		}},
		Script: "            return;",
	}))

	got, err := render.New(nil).Render(b.Model())
	require.NoError(t, err)
	assert.Contains(t, got, `menu: "directions"`)
	assert.Contains(t, got, "menus: {")
}

func TestRenderNoMenusClosesBlockList(t *testing.T) {
	t.Parallel()

	b := extension.NewBuilder(nil, nil)
	require.NoError(t, b.SetMetadata(extension.Metadata{ID: "plain"}))
	require.NoError(t, b.AddBlock(context.Background(), extension.BlockSpec{
		Opcode: "noop",
		Kind:   extension.KindCommand,
		Text:   "noop",
		Script: "            return;",
	}))

	got, err := render.New(nil).Render(b.Model())
	require.NoError(t, err)
	assert.Contains(t, got, "                ]\n            };")
	assert.NotContains(t, got, "menus:")
}
