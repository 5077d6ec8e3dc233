package vcd

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer splits a dump into whitespace separated words. Keywords such as
// $var are ordinary words matched by value in the grammar.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Word", Pattern: `\S+`},
})

type header struct {
	Items []*headerItem `@@* "$enddefinitions" "$end"`
}

type headerItem struct {
	Timescale *timescaleDecl `  @@`
	Scope     *scopeDecl     `| @@`
	Var       *varDecl       `| @@`
	Text      *textDecl      `| @@`
	Other     *otherDecl     `| @@`
}

type timescaleDecl struct {
	Pos   lexer.Position
	Parts []string `"$timescale" @!"$end"* "$end"`
}

type scopeDecl struct {
	Kind  string        `"$scope" @Word`
	Name  string        `@Word "$end"`
	Items []*headerItem `@@* "$upscope" "$end"`
}

type varDecl struct {
	Pos       lexer.Position
	Kind      string   `"$var" @Word`
	Size      string   `@Word`
	Code      string   `@Word`
	Reference string   `@Word`
	Index     []string `@!"$end"* "$end"`
}

type textDecl struct {
	Keyword string   `@( "$date" | "$version" | "$comment" )`
	Words   []string `@!"$end"* "$end"`
}

// otherDecl is any other section, e.g. $attrbegin. It is skipped.
type otherDecl struct {
	Pos     lexer.Position
	Keyword string   `@!( "$upscope" | "$enddefinitions" | "$end" )`
	Words   []string `@!"$end"* "$end"`
}

var headerParser = participle.MustBuild[header](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)
