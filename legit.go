// Package legitcs provides a ClearSilver-style text templating
// engine: literal text interleaved with `<?TAG ...?>` directive tags,
// executed against a hierarchical data context (HDC) to produce
// rendered output.
//
// # Basic usage
//
//	data := hdc.New()
//	data.SetValue("name", "Ada")
//
//	e := legitcs.New(data)
//	if err := e.ParseString("greeting", "Hi <?cs var:name?>!"); err != nil {
//	    log.Fatal(err)
//	}
//	out, err := e.RenderString()
//
// # Template syntax
//
// Directives all take the form `<?cs name:arg?>` (the tag identifier
// "cs" is configurable via the HDC key Config.TagStart):
//
//   - `var:expr` / `var!expr` — emit an expression's string form
//   - `name:expr` / `name!expr` — emit the terminal name of the HDC
//     node an expression resolves to
//   - `if:expr` / `elseif:expr` / `elif:expr` / `else` / `/if` — branching
//   - `each:v = path` / `/each` — iterate v over path's children
//   - `with:v = expr` / `/with` — bind v once to a resolved node
//   - `loop:v = end` / `v = start,end` / `v = start,end,step` / `/loop`
//   - `def:name(params)` / `/def` and `call:name(args)` — macros
//   - `set:lval = expr` — write a value back into HDC or a local
//   - `alt:expr` / `/alt` — emit expr if truthy, else the alternate body
//   - `evar:path` — compile-time re-entry on an HDC value
//   - `lvar:expr` / `linclude:expr` — render-time re-entry
//   - `include:path-or-"literal"` / `include!...` — compile-time file splice
//
// See exprlang for the expression sub-language these directives embed.
package legitcs

import (
	"github.com/legitcs/legitcs/engine"
	"github.com/legitcs/legitcs/hdc"
	"github.com/legitcs/legitcs/macro"
	"github.com/legitcs/legitcs/scanner"
)

// Engine is an alias for engine.Engine.
type Engine = engine.Engine

// Option is an alias for engine.Option.
type Option = engine.Option

// Output is an alias for engine.Output, the per-fragment sink render
// writes through.
type Output = engine.Output

// Func is an alias for macro.Func, the shape of a host-registered
// callable function.
type Func = macro.Func

// Includer is an alias for scanner.Includer, the collaborator
// resolving `include`/`linclude` bodies and file-based parsing.
type Includer = scanner.Includer

// New constructs an engine bound to data.
//
// Example:
//
//	e := legitcs.New(data, legitcs.WithIncluder(myIncluder))
func New(data *hdc.Tree, opts ...Option) *Engine {
	return engine.New(data, opts...)
}

// WithIncluder supplies the collaborator that resolves `include`/
// `linclude` bodies and the ParseFile path argument.
func WithIncluder(inc Includer) Option {
	return engine.WithIncluder(inc)
}

// NewData creates an empty hierarchical data context.
func NewData() *hdc.Tree {
	return hdc.New()
}
