package engine_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legitcs/legitcs/engine"
	"github.com/legitcs/legitcs/hdc"
)

// mapIncluder serves file contents out of an in-memory map, for tests
// exercising `include`/`linclude`/ParseFile without touching disk.
type mapIncluder map[string]string

func (m mapIncluder) Exists(path string) bool {
	_, ok := m[path]
	return ok
}

func (m mapIncluder) ReadInclude(path string) (string, error) {
	content, ok := m[path]
	if !ok {
		return "", assert.AnError
	}
	return content, nil
}

func TestEngineRenderStringBasic(t *testing.T) {
	data := hdc.New()
	data.SetValue("name", "Ada")
	e := engine.New(data)

	require.NoError(t, e.ParseString("t", "Hi <?cs var:name?>!"))
	out, err := e.RenderString()
	require.NoError(t, err)
	assert.Equal(t, "Hi Ada!", out)
}

func TestEngineMultipleParseStringCallsAppend(t *testing.T) {
	data := hdc.New()
	e := engine.New(data)

	require.NoError(t, e.ParseString("a", "one "))
	require.NoError(t, e.ParseString("b", "two"))

	out, err := e.RenderString()
	require.NoError(t, err)
	assert.Equal(t, "one two", out)
}

func TestEngineParseFileUsesIncluder(t *testing.T) {
	data := hdc.New()
	inc := mapIncluder{"greeting.cst": "hello from file"}
	e := engine.New(data, engine.WithIncluder(inc))

	require.NoError(t, e.ParseFile("greeting.cst"))
	out, err := e.RenderString()
	require.NoError(t, err)
	assert.Equal(t, "hello from file", out)
}

func TestEngineParseFileWithoutIncluderErrors(t *testing.T) {
	e := engine.New(hdc.New())
	err := e.ParseFile("anything.cst")
	require.Error(t, err)
}

func TestEngineIncludeDirective(t *testing.T) {
	data := hdc.New()
	inc := mapIncluder{"partial.cst": "included text"}
	e := engine.New(data, engine.WithIncluder(inc))

	require.NoError(t, e.ParseString("main", `before <?cs include:"partial.cst"?> after`))
	out, err := e.RenderString()
	require.NoError(t, err)
	assert.Equal(t, "before included text after", out)
}

func TestEngineRegisterStrFunc(t *testing.T) {
	data := hdc.New()
	data.SetValue("name", "ada")
	e := engine.New(data)
	require.NoError(t, e.RegisterStrFunc("upper", strings.ToUpper))

	require.NoError(t, e.ParseString("t", `<?cs var:upper(name)?>`))
	out, err := e.RenderString()
	require.NoError(t, err)
	assert.Equal(t, "ADA", out)
}

func TestEngineCloseRejectsFurtherUse(t *testing.T) {
	e := engine.New(hdc.New())
	require.NoError(t, e.Close())
	assert.Error(t, e.ParseString("t", "x"))
}

func TestEngineCompileFileCaches(t *testing.T) {
	data := hdc.New()
	inc := mapIncluder{"view.cst": "cached"}
	e := engine.New(data, engine.WithIncluder(inc))

	tree1, root1, err := e.CompileFile("view", "view.cst")
	require.NoError(t, err)
	tree2, root2, err := e.CompileFile("view", "view.cst")
	require.NoError(t, err)

	assert.Same(t, tree1, tree2)
	assert.Equal(t, root1, root2)
}
