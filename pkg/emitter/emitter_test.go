package emitter_test

import (
	"strings"
	"testing"

	"github.com/rhino1998/polyglot/pkg/emitter"
	"github.com/rhino1998/polyglot/pkg/ir"
	"github.com/stretchr/testify/require"
)

func TestPythonEmitter_RangeForRoundTrips(t *testing.T) {
	r := require.New(t)
	prog := &ir.Program{Body: []ir.Stmt{&ir.For{
		HasRange: true, RangeIter: "i",
		RangeStart: &ir.Literal{Value: int64(0), Type: ir.Int},
		RangeEnd:   &ir.Literal{Value: int64(10), Type: ir.Int},
		RangeStep:  &ir.Literal{Value: int64(1), Type: ir.Int},
		Body:       []ir.Stmt{&ir.Print{Args: []ir.Expr{&ir.Identifier{Name: "i"}}, Newline: true}},
	}}}
	out := emitter.NewPythonEmitter().Emit(prog)
	r.Contains(out, "for i in range(10):")
	r.Contains(out, "print(i)")
}

func TestPythonEmitter_MixedLiteralAndValueReconstitutesFString(t *testing.T) {
	r := require.New(t)
	prog := &ir.Program{Body: []ir.Stmt{&ir.Print{
		Args:    []ir.Expr{&ir.Literal{Value: "count: ", Type: ir.String}, &ir.Identifier{Name: "i"}},
		Newline: true,
	}}}
	out := emitter.NewPythonEmitter().Emit(prog)
	r.Contains(out, `print(f"count: {i}")`)
}

func TestPythonEmitter_EmptyBlockEmitsPass(t *testing.T) {
	r := require.New(t)
	prog := &ir.Program{Body: []ir.Stmt{&ir.Function{Name: "noop", Body: nil}}}
	out := emitter.NewPythonEmitter().Emit(prog)
	r.Contains(out, "pass")
}

// decrementingFor builds a non-range-folded countdown loop
// (`for (int i = 5; i > 0; i--) { ... }`), the classic shape
// range-folding never recognizes but the classic triple must still
// lower correctly.
func decrementingFor(body []ir.Stmt) *ir.For {
	return &ir.For{
		Init: &ir.Variable{Name: "i", Type: ir.Int, Initializer: &ir.Literal{Value: int64(5), Type: ir.Int}},
		Condition: &ir.BinaryOp{Op: ">", Left: &ir.Identifier{Name: "i"}, Right: &ir.Literal{Value: int64(0), Type: ir.Int}},
		Update:    &ir.ExprStmt{Expr: &ir.UnaryOp{Op: "--_post", Operand: &ir.Identifier{Name: "i"}}},
		Body:      body,
	}
}

func TestPythonEmitter_DecrementingForLowersToWhile(t *testing.T) {
	r := require.New(t)
	prog := &ir.Program{Body: []ir.Stmt{decrementingFor([]ir.Stmt{
		&ir.Print{Args: []ir.Expr{&ir.Identifier{Name: "i"}}, Newline: true},
	})}}
	out := emitter.NewPythonEmitter().Emit(prog)
	r.Contains(out, "i = 5")
	r.Contains(out, "while i > 0:")
	r.Contains(out, "print(i)")
	r.Contains(out, "i -= 1")
}

func TestCEmitter_DecrementingForKeepsTripleClause(t *testing.T) {
	r := require.New(t)
	prog := &ir.Program{Body: []ir.Stmt{decrementingFor([]ir.Stmt{})}}
	out := emitter.NewCEmitter().Emit(prog)
	r.Contains(out, "for (int i = 5; i > 0; i--) {")
	r.NotContains(out, "unrecognized for-loop shape")
}

func TestCPPEmitter_DecrementingForKeepsTripleClause(t *testing.T) {
	r := require.New(t)
	prog := &ir.Program{Body: []ir.Stmt{decrementingFor([]ir.Stmt{})}}
	out := emitter.NewCPPEmitter().Emit(prog)
	r.Contains(out, "for (int i = 5; i > 0; i--) {")
}

func TestJavaEmitter_DecrementingForKeepsTripleClause(t *testing.T) {
	r := require.New(t)
	prog := &ir.Program{Body: []ir.Stmt{decrementingFor([]ir.Stmt{})}}
	out := emitter.NewJavaEmitter().Emit(prog)
	r.Contains(out, "for (int i = 5; i > 0; i--) {")
}

func TestCEmitter_ClassEmitsGuardComment(t *testing.T) {
	r := require.New(t)
	prog := &ir.Program{Body: []ir.Stmt{&ir.Class{Name: "Point", Members: []*ir.Variable{{Name: "x", Type: ir.Int}}}}}
	out := emitter.NewCEmitter().Emit(prog)
	r.Equal("#include <stdio.h>\n\n// C does not support classes\n", out)
}

func TestCEmitter_PrintfReconstructsFormat(t *testing.T) {
	r := require.New(t)
	prog := &ir.Program{Body: []ir.Stmt{&ir.Function{Name: "main", ReturnType: ir.Int, Body: []ir.Stmt{
		&ir.Variable{Name: "x", Type: ir.Int, Initializer: &ir.Literal{Value: int64(10), Type: ir.Int}},
		&ir.Print{Args: []ir.Expr{
			&ir.Literal{Value: "x=", Type: ir.String},
			&ir.Identifier{Name: "x"},
		}, Newline: true},
	}}}}
	out := emitter.NewCEmitter().Emit(prog)
	r.True(strings.Contains(out, `printf("x=%d\n", x)`))
}

func TestCEmitter_PrintfFallsBackToStringDirectiveForUndeclaredIdentifier(t *testing.T) {
	r := require.New(t)
	prog := &ir.Program{Body: []ir.Stmt{&ir.Function{Name: "main", ReturnType: ir.Int, Body: []ir.Stmt{
		&ir.Print{Args: []ir.Expr{&ir.Identifier{Name: "x"}}, Newline: true},
	}}}}
	out := emitter.NewCEmitter().Emit(prog)
	r.Contains(out, `printf("%s\n", x)`)
}

func TestCPPEmitter_PrintReemitsCoutChain(t *testing.T) {
	r := require.New(t)
	prog := &ir.Program{Body: []ir.Stmt{&ir.Function{Name: "main", ReturnType: ir.Int, Body: []ir.Stmt{
		&ir.Print{Args: []ir.Expr{&ir.Literal{Value: "hi", Type: ir.String}}, Newline: true},
	}}}}
	out := emitter.NewCPPEmitter().Emit(prog)
	r.Contains(out, "cout <<")
	r.Contains(out, "endl")
}

func TestCPPEmitter_ClassSeparatesPrivateMembersFromPublicMethods(t *testing.T) {
	r := require.New(t)
	class := &ir.Class{
		Name:    "P",
		Members: []*ir.Variable{{Name: "n", Type: ir.Int}},
		Constructor: &ir.Function{Body: []ir.Stmt{
			&ir.Assignment{Target: "this->n", Op: "=", Value: &ir.Literal{Value: int64(0), Type: ir.Int}},
		}},
		Methods: []*ir.Function{{Name: "tick", Body: []ir.Stmt{
			&ir.Assignment{Target: "this->n", Op: "=", Value: &ir.Identifier{Name: "this->n"}},
		}}},
	}
	out := emitter.NewCPPEmitter().Emit(&ir.Program{Body: []ir.Stmt{class}})
	r.Contains(out, "private:")
	r.Contains(out, "int n;")
	r.Contains(out, "public:")
	r.Contains(out, "P() {")
	r.Contains(out, "void tick() {")
	r.Less(strings.Index(out, "private:"), strings.Index(out, "int n;"))
	r.Less(strings.Index(out, "int n;"), strings.Index(out, "public:"))
	r.Less(strings.Index(out, "public:"), strings.Index(out, "P() {"))
}

func TestCPPEmitter_MethodBodyRemapsSelfToThis(t *testing.T) {
	r := require.New(t)
	class := &ir.Class{
		Name:    "P",
		Members: []*ir.Variable{{Name: "n", Type: ir.Int}},
		Methods: []*ir.Function{{Name: "tick", Body: []ir.Stmt{
			&ir.Assignment{Target: "self.n", Op: "=", Value: &ir.BinaryOp{
				Op: "+", Left: &ir.Identifier{Name: "self.n"}, Right: &ir.Literal{Value: int64(1), Type: ir.Int},
			}},
		}}},
	}
	out := emitter.NewCPPEmitter().Emit(&ir.Program{Body: []ir.Stmt{class}})
	r.Contains(out, "this->n = this->n + 1;")
	r.NotContains(out, "self.n")
}

func TestJavaEmitter_MainMethodStaysOnClass(t *testing.T) {
	r := require.New(t)
	class := &ir.Class{Name: "Main", MainMethod: &ir.Function{Name: "main", Body: []ir.Stmt{
		&ir.Print{Args: []ir.Expr{&ir.Literal{Value: "hi", Type: ir.String}}, Newline: true},
	}}}
	prog := &ir.Program{Body: []ir.Stmt{class}}
	out := emitter.NewJavaEmitter().Emit(prog)
	r.Contains(out, "public class Main {")
	r.Contains(out, "public static void main(String[] args) {")
	r.Contains(out, "System.out.println")
}

func TestJavaEmitter_LooseTopLevelWrapsInProgramClass(t *testing.T) {
	r := require.New(t)
	prog := &ir.Program{Body: []ir.Stmt{
		&ir.Print{Args: []ir.Expr{&ir.Literal{Value: "hi", Type: ir.String}}, Newline: true},
	}}
	out := emitter.NewJavaEmitter().Emit(prog)
	r.Contains(out, "public class Program {")
}

func TestJavaEmitter_PlainMultiValuePrintInsertsSpaceSeparator(t *testing.T) {
	r := require.New(t)
	prog := &ir.Program{Body: []ir.Stmt{
		&ir.Print{Args: []ir.Expr{&ir.Identifier{Name: "a"}, &ir.Identifier{Name: "b"}}, Newline: true},
	}}
	out := emitter.NewJavaEmitter().Emit(prog)
	r.Contains(out, `System.out.println(a + " " + b);`)
}

func TestJavaEmitter_InterpolatedLiteralSplicesWithNoExtraSpace(t *testing.T) {
	r := require.New(t)
	prog := &ir.Program{Body: []ir.Stmt{
		&ir.Print{Args: []ir.Expr{&ir.Literal{Value: "x=", Type: ir.String}, &ir.Identifier{Name: "x"}}, Newline: true},
	}}
	out := emitter.NewJavaEmitter().Emit(prog)
	r.Contains(out, `System.out.println("x=" + x);`)
}

func TestJavaEmitter_InputUsesScanner(t *testing.T) {
	r := require.New(t)
	prog := &ir.Program{Body: []ir.Stmt{&ir.Input{Target: "age", TargetType: ir.Int}}}
	out := emitter.NewJavaEmitter().Emit(prog)
	r.Contains(out, "import java.util.Scanner;")
	r.Contains(out, "scanner.nextInt()")
}
