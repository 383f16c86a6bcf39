package ast

import (
	"testing"

	"github.com/bmatsuo/somelisp/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	root := Branch(TagRoot,
		Leaf(TagSymbol, "+"),
		Leaf(TagNumber, "1"),
		Branch(TagSExpr,
			Leaf(TagSymbol, "*"),
			Leaf(TagNumber, "2"),
			Leaf(TagNumber, "3")),
		Branch(TagQExpr, Leaf(TagSymbol, "x")),
	)
	v := Read(root)
	assert.Equal(t, lisp.LSExpr, v.Type)
	assert.Equal(t, "(+ 1 (* 2 3) {x})", v.String())
}

// Trees from grammar-driven front ends keep literal delimiters and use
// compound tags.
func TestReadDelimited(t *testing.T) {
	root := &Tree{Name: ">", Children: []*Tree{
		{Name: "regex"},
		{Name: "expr|sexpr|>", Children: []*Tree{
			{Name: "char", Text: "("},
			{Name: "expr|symbol|regex", Text: "head"},
			{Name: "expr|qexpr|>", Children: []*Tree{
				{Name: "char", Text: "{"},
				{Name: "expr|number|regex", Text: "1"},
				{Name: "expr|number|regex", Text: "2"},
				{Name: "char", Text: "}"},
			}},
			{Name: "char", Text: ")"},
		}},
		{Name: "comment", Text: "; trailing"},
	}}
	v := Read(root)
	assert.Equal(t, "((head {1 2}))", v.String())
	assert.Equal(t, "{1}", Evaluate(newEnv(t), root).String())
}

func TestReadErrors(t *testing.T) {
	v := Read(Leaf(TagNumber, "99999999999999999999999999"))
	assert.Equal(t, lisp.LError, v.Type)
	assert.Equal(t, "invalid number: 99999999999999999999999999", v.Str)

	v = Read(Leaf("string", `"abc"`))
	assert.Equal(t, lisp.LError, v.Type)

	// a bad leaf poisons the expression containing it
	root := Branch(TagRoot, Leaf(TagSymbol, "+"), Leaf(TagNumber, "1x"))
	v = Evaluate(newEnv(t), root)
	assert.Equal(t, "Error: invalid number: 1x", v.String())
}

func TestEvaluate(t *testing.T) {
	env := newEnv(t)
	root := Branch(TagRoot,
		Leaf(TagSymbol, "def"),
		Branch(TagQExpr, Leaf(TagSymbol, "x")),
		Leaf(TagNumber, "5"))
	assert.Equal(t, "()", Evaluate(env, root).String())
	assert.Equal(t, "5", Evaluate(env, Branch(TagRoot, Leaf(TagSymbol, "x"))).String())
	assert.Equal(t, "()", Evaluate(env, Branch(TagRoot)).String())
}

func newEnv(t *testing.T) *lisp.LEnv {
	env := lisp.NewEnv(nil)
	require.NoError(t, lisp.GoError(lisp.InitializeUserEnv(env)))
	return env
}
