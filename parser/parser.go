/*
Package parser provides a lisp parser.

	program := <expr>*
	expr    := <number> | <symbol> | <sexpr> | <qexpr> | <comment>
	number  := /-?[0-9]+/
	symbol  := /[a-zA-Z0-9_+\-*\/\\=<>!&%]+/
	sexpr   := '(' <expr>* ')'
	qexpr   := '{' <expr>* '}'
	comment := ';' <any text to the end of the line>
*/
package parser

import (
	"fmt"
	"io"
	"io/ioutil"

	"github.com/bmatsuo/somelisp/ast"
	"github.com/bmatsuo/somelisp/lisp"
	parsec "github.com/prataprc/goparsec"
)

// Parse parses every expression in text and returns them as the children of
// a root node tagged ast.TagRoot.  Comments are dropped.  An error is returned
// if text contains anything that is not a complete expression.
func Parse(text []byte) (*ast.Tree, error) {
	s := parsec.NewScanner(text)
	parser := newParsecParser()

	root := ast.Branch(ast.TagRoot)
	node, s := parser(s)
	for node != nil {
		for _, c := range cleanParsecNodeList([]parsec.ParsecNode{node}) {
			t, ok := c.(*ast.Tree)
			if ok && t.Name != ast.TagComment {
				root.Children = append(root.Children, t)
			}
		}
		node, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		return root, fmt.Errorf("syntax error at offset %d", s.GetCursor())
	}
	return root, nil
}

type reader struct{}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.  Each top-level
// expression in the source is returned as a separate value.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	text, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	root, err := Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	exprs := make([]*lisp.LVal, len(root.Children))
	for i, c := range root.Children {
		exprs[i] = ast.Read(c)
	}
	return exprs, nil
}

// Incomplete returns true if text opens more lists than it closes, ignoring
// comments.  A REPL uses Incomplete to decide whether to keep reading lines.
func Incomplete(text []byte) bool {
	depth := 0
	comment := false
	for _, c := range text {
		switch {
		case comment:
			if c == '\n' {
				comment = false
			}
		case c == ';':
			comment = true
		case c == '(' || c == '{':
			depth++
		case c == ')' || c == '}':
			depth--
		}
	}
	return depth > 0
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	openB := parsec.Atom("{", "OPENB")
	closeB := parsec.Atom("}", "CLOSEB")
	comment := parsec.Token(`;[^\n]*`, "COMMENT")
	number := parsec.Token(`-?[0-9]+`, "NUMBER")
	symbol := parsec.Token(`[a-zA-Z0-9_+\-*/\\=<>!&%]+`, "SYMBOL")
	term := parsec.OrdChoice(termNode,
		comment,
		number,
		symbol, // symbol comes last because it swallows numbers
	)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	sexpr := parsec.And(listNode(ast.TagSExpr), openP, parsec.Kleene(nil, &expr), closeP)
	qexpr := parsec.And(listNode(ast.TagQExpr), openB, parsec.Kleene(nil, &expr), closeB)
	expr = parsec.OrdChoice(nil, term, sexpr, qexpr)
	return expr
}

func termNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	term, ok := nodes[0].(*parsec.Terminal)
	if !ok {
		panic(fmt.Sprintf("unexpected term node: %T", nodes[0]))
	}
	switch term.Name {
	case "COMMENT":
		return ast.Leaf(ast.TagComment, term.Value)
	case "NUMBER":
		return ast.Leaf(ast.TagNumber, term.Value)
	case "SYMBOL":
		return ast.Leaf(ast.TagSymbol, term.Value)
	default:
		panic(fmt.Sprintf("unknown terminal: %s", term.Name))
	}
}

// listNode returns a callback that keeps the expression children of a list
// and drops its delimiters and comments.
func listNode(tag string) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		list := ast.Branch(tag)
		for _, c := range cleanParsecNodeList(nodes) {
			t, ok := c.(*ast.Tree)
			if ok && t.Name != ast.TagComment {
				list.Children = append(list.Children, t)
			}
		}
		return list
	}
}

func cleanParsecNodeList(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, cleanParsecNodeList(node)...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}
