package ir_test

import (
	"testing"

	"github.com/rhino1998/polyglot/pkg/ir"
	"github.com/stretchr/testify/require"
)

func TestIsEntryPointShell(t *testing.T) {
	r := require.New(t)

	shell := &ir.Class{Name: "Main", MainMethod: &ir.Function{Name: "main"}}
	r.True(ir.IsEntryPointShell(shell))

	withMember := &ir.Class{
		Name:       "Main",
		Members:    []*ir.Variable{{Name: "n", Type: ir.Int}},
		MainMethod: &ir.Function{Name: "main"},
	}
	r.False(ir.IsEntryPointShell(withMember))

	noMain := &ir.Class{Name: "Main"}
	r.False(ir.IsEntryPointShell(noMain))
}

func TestHasNonTrivialClass(t *testing.T) {
	r := require.New(t)

	shellProg := &ir.Program{Body: []ir.Stmt{
		&ir.Class{Name: "Main", MainMethod: &ir.Function{Name: "main"}},
	}}
	r.False(ir.HasNonTrivialClass(shellProg))

	realClass := &ir.Program{Body: []ir.Stmt{
		&ir.Class{
			Name:        "Point",
			Members:     []*ir.Variable{{Name: "x", Type: ir.Int}},
			Constructor: &ir.Function{Name: ir.InitName},
		},
	}}
	r.True(ir.HasNonTrivialClass(realClass))

	nested := &ir.Program{Body: []ir.Stmt{
		&ir.Function{Name: "wrapper", Body: []ir.Stmt{
			&ir.Class{
				Name:    "Inner",
				Methods: []*ir.Function{{Name: "tick"}},
			},
		}},
	}}
	r.True(ir.HasNonTrivialClass(nested))
}

func TestFindMainFunction(t *testing.T) {
	r := require.New(t)

	prog := &ir.Program{Body: []ir.Stmt{
		&ir.Function{Name: "helper"},
		&ir.Function{Name: "main"},
	}}
	main := ir.FindMainFunction(prog)
	r.NotNil(main)
	r.Equal("main", main.Name)

	r.Nil(ir.FindMainFunction(&ir.Program{}))
}
