package idiom_test

import (
	"testing"

	"github.com/rhino1998/polyglot/pkg/idiom"
	"github.com/stretchr/testify/require"
)

func TestFoldCountedLoop_LessEqual(t *testing.T) {
	r := require.New(t)
	fold := idiom.FoldCountedLoop("i", "0", "<=", "i", "5", "i", "inc_post", "")
	r.True(fold.Recognized)
	r.Equal("i", fold.IteratorName)
	r.Equal("0", fold.Start)
	r.Equal("6", fold.End)
	r.Equal("1", fold.Step)
}

func TestFoldCountedLoop_LessThanWithStep(t *testing.T) {
	r := require.New(t)
	fold := idiom.FoldCountedLoop("i", "0", "<", "i", "10", "i", "add_assign", "2")
	r.True(fold.Recognized)
	r.Equal("0", fold.Start)
	r.Equal("10", fold.End)
	r.Equal("2", fold.Step)
}

func TestFoldCountedLoop_RejectsMismatchedIterator(t *testing.T) {
	r := require.New(t)
	fold := idiom.FoldCountedLoop("i", "0", "<", "j", "10", "i", "inc", "")
	r.False(fold.Recognized)
}

func TestDecomposePrintf(t *testing.T) {
	r := require.New(t)
	segs, newline := idiom.DecomposePrintf("x=%d y=%s\n")
	r.True(newline)
	r.Equal([]idiom.FormatSegment{
		{Text: "x="},
		{IsValue: true, Directive: "%d"},
		{Text: " y="},
		{IsValue: true, Directive: "%s"},
	}, segs)
}

func TestDecomposeInterpolated(t *testing.T) {
	r := require.New(t)
	segs := idiom.DecomposeInterpolated("hi {name}, you are {age}!")
	r.Equal([]idiom.FormatSegment{
		{Text: "hi "},
		{IsValue: true, Directive: "name"},
		{Text: ", you are "},
		{IsValue: true, Directive: "age"},
		{Text: "!"},
	}, segs)
}

func TestDirectiveType(t *testing.T) {
	r := require.New(t)
	r.Equal("int", idiom.DirectiveType("%d"))
	r.Equal("float", idiom.DirectiveType("%f"))
	r.Equal("string", idiom.DirectiveType("%s"))
}
