package binding

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// 占位符路径的文法：ident ( '[' int ']' )* ( '.' ident ( '[' int ']' )* )*
// 例如 user.items[2].name。

var (
	pathLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Int", Pattern: `\d+`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Punct", Pattern: `[.\[\]]`},
	})

	pathParser = participle.MustBuild[Path](
		participle.Lexer(pathLexer),
	)
)

// Path 是解析后的占位符路径。
type Path struct {
	Segments []*Segment `parser:"@@ ( '.' @@ )*"`
}

// Segment 是路径中的一段：一个名字加零或多个数组下标。
type Segment struct {
	Name    string `parser:"@Ident"`
	Indexes []int  `parser:"( '[' @Int ']' )*"`
}

// ParsePath 解析一条占位符路径；非法路径返回错误。
func ParsePath(input string) (*Path, error) {
	return pathParser.ParseString("", input)
}
