package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+|\.\d+)(?:mm|cm|in|pt)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:;,]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
		participle.UseLookahead(2),
	)
)

// File is the root AST node of a worksheet file. A file holds one or more
// named worksheets.
type File struct {
	Worksheets []*Worksheet `parser:"Newline* ( @@ Newline* )*"`
}

// Worksheet is a named `worksheet <name> { ... }` block.
type Worksheet struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Name    string         `parser:"'worksheet' @Ident Newline*"`
	Entries []*Entry       `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Entry is either a text block or a key: value setting.
type Entry struct {
	Text    *TextBlock `parser:"  @@"`
	Setting *Setting   `parser:"| @@"`
}

// TextBlock lists the practice paragraphs, one string per paragraph.
type TextBlock struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Paragraphs []*Paragraph   `parser:"'text' Newline* '{' Newline* ( @@ ( ',' | Newline )* )* '}'"`
}

// Paragraph is a single quoted paragraph inside a text block.
type Paragraph struct {
	Value StringLiteral `parser:"@String"`
}

// Setting uses colon syntax (key: value).
type Setting struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident ':'"`
	Value *Value         `parser:"@@"`
}

// Value is a quoted string, a number with optional unit, or a bare word.
type Value struct {
	Pos    lexer.Position `parser:"" json:"-"`
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Word   *string        `parser:"| @Ident"`
}

// Text returns the value as written, with quotes removed.
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Word != nil:
		return *v.Word
	default:
		return ""
	}
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses worksheet content from an io.Reader.
func Parse(r io.Reader) (*File, error) {
	return fileParser.Parse("", r)
}

// ParseNamed parses worksheet content and reports positions against filename.
func ParseNamed(filename string, r io.Reader) (*File, error) {
	return fileParser.Parse(filename, r)
}

// ParseString parses worksheet content from a string.
func ParseString(input string) (*File, error) {
	return fileParser.ParseString("", input)
}

// Find returns the worksheet called name, or nil.
func (f *File) Find(name string) *Worksheet {
	if f == nil {
		return nil
	}
	for _, ws := range f.Worksheets {
		if ws.Name == name {
			return ws
		}
	}
	return nil
}

// Names lists the worksheet names in file order.
func (f *File) Names() []string {
	if f == nil {
		return nil
	}
	names := make([]string, len(f.Worksheets))
	for i, ws := range f.Worksheets {
		names[i] = ws.Name
	}
	return names
}
