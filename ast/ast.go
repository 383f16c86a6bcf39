/*
Package ast defines the tree a parsing front end hands to the evaluator and
converts it into lisp values.

A front end produces nodes tagged by the grammar rule that matched them.  Tags
containing "number" or "symbol" are leaves whose Contents hold the matched
text.  Tags containing "sexpr" or "qexpr" are lists.  The root of a parse has
the tag ">" and reads as an S-expression of every top-level form, so that
input like

	def {x} 10

evaluates without surrounding parentheses.
*/
package ast

import (
	"strconv"
	"strings"

	"github.com/bmatsuo/somelisp/lisp"
)

// Tags produced by the parser package.
const (
	TagRoot    = ">"
	TagNumber  = "number"
	TagSymbol  = "symbol"
	TagSExpr   = "sexpr"
	TagQExpr   = "qexpr"
	TagDelim   = "delim"
	TagComment = "comment"

	// tagAnchor marks the start and end of input in some grammars.
	tagAnchor = "regex"
)

// Node is a node in a parse tree.
type Node interface {
	// Tag identifies the grammar rule that produced the node.
	Tag() string
	// Contents is the raw text of a leaf node.
	Contents() string
	ChildCount() int
	Child(i int) Node
}

// Tree is a simple Node implementation.
type Tree struct {
	Name     string
	Text     string
	Children []*Tree
}

var _ Node = (*Tree)(nil)

// Leaf returns a Tree with no children.
func Leaf(tag, text string) *Tree {
	return &Tree{Name: tag, Text: text}
}

// Branch returns a Tree with the given children.
func Branch(tag string, children ...*Tree) *Tree {
	return &Tree{Name: tag, Children: children}
}

// Tag implements Node.
func (t *Tree) Tag() string { return t.Name }

// Contents implements Node.
func (t *Tree) Contents() string { return t.Text }

// ChildCount implements Node.
func (t *Tree) ChildCount() int { return len(t.Children) }

// Child implements Node.
func (t *Tree) Child(i int) Node { return t.Children[i] }

// Read converts node into an unevaluated lisp value.  Delimiter and comment
// children are skipped so front ends that keep literal parenthesis tokens
// in their trees are accepted.  A number that does not fit an int reads as an
// LError.
func Read(node Node) *lisp.LVal {
	tag := node.Tag()
	switch {
	case tag == TagRoot:
		return readList(lisp.SExpr(), node)
	case strings.Contains(tag, TagNumber):
		return readNumber(node)
	case strings.Contains(tag, TagSymbol):
		return lisp.Symbol(node.Contents())
	case strings.Contains(tag, TagSExpr):
		return readList(lisp.SExpr(), node)
	case strings.Contains(tag, TagQExpr):
		return readList(lisp.QExpr(), node)
	default:
		return lisp.Errorf("unknown node tag: %q", tag)
	}
}

func readNumber(node Node) *lisp.LVal {
	x, err := strconv.Atoi(node.Contents())
	if err != nil {
		return lisp.Errorf("invalid number: %s", node.Contents())
	}
	return lisp.Number(x)
}

func readList(v *lisp.LVal, node Node) *lisp.LVal {
	for i := 0; i < node.ChildCount(); i++ {
		child := node.Child(i)
		if skip(child) {
			continue
		}
		v.Cells = append(v.Cells, Read(child))
	}
	return v
}

func skip(node Node) bool {
	tag := node.Tag()
	if tag == tagAnchor {
		return true
	}
	if strings.Contains(tag, TagDelim) || strings.Contains(tag, TagComment) {
		return true
	}
	switch node.Contents() {
	case "(", ")", "{", "}":
		return node.ChildCount() == 0 && !strings.Contains(tag, TagSymbol)
	}
	return false
}

// Evaluate reads root and evaluates the resulting value in env.
func Evaluate(env *lisp.LEnv, root Node) *lisp.LVal {
	return env.Eval(Read(root))
}
