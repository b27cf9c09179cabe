package expr

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Int", Pattern: `-?[0-9]+`},
	{Name: "Punct", Pattern: `[(),\[\]]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

var parser = participle.MustBuild[Expr](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
)

// Expr is a parsed expression: a call, an integer list or an integer.
type Expr struct {
	Pos lexer.Position

	Call *Call `  @@`
	List *List `| @@`
	Int  *int  `| @Int`
}

// Call applies a builtin to its arguments.
type Call struct {
	Pos lexer.Position

	Name string  `@Ident "("`
	Args []*Expr `( @@ ( "," @@ )* )? ")"`
}

// List is a bracketed list of integers, used for boundary vectors and
// dart lists.
type List struct {
	Items []int `"[" ( @Int ( "," @Int )* )? "]"`
}
