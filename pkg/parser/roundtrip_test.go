package parser_test

import (
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/rhino1998/polyglot/pkg/emitter"
	"github.com/rhino1998/polyglot/pkg/ir"
	"github.com/rhino1998/polyglot/pkg/parser"
	"github.com/stretchr/testify/require"
)

// countStmtKinds tallies the For, If, Print, Input, Class and Function
// statements reachable from stmts via ir.Walk, so a round trip
// can be judged on structure rather than on exact source text.
func countStmtKinds(stmts []ir.Stmt) map[string]int {
	counts := map[string]int{}
	ir.Walk(stmts, func(s ir.Stmt) bool {
		switch s.(type) {
		case *ir.For:
			counts["For"]++
		case *ir.If:
			counts["If"]++
		case *ir.Print:
			counts["Print"]++
		case *ir.Input:
			counts["Input"]++
		case *ir.Class:
			counts["Class"]++
		case *ir.Function:
			counts["Function"]++
		}
		return true
	})
	return counts
}

// TestPythonParser_RangeForIsStableUnderRoundTrip re-emits and
// re-parses a folded range-for loop, checking the second parse yields
// the same For/Print shape as the first (spec §8 idempotency).
func TestPythonParser_RangeForIsStableUnderRoundTrip(t *testing.T) {
	r := require.New(t)
	logger := slogt.New(t)
	src := "for i in range(0, 5):\n    print(i)\n"

	first := parser.ParsePython(logger, src)
	r.Equal(1, countStmtKinds(first.Body)["For"])

	emitted := emitter.NewPythonEmitter().Emit(first)
	second := parser.ParsePython(logger, emitted)

	r.Equal(countStmtKinds(first.Body), countStmtKinds(second.Body))
}

// TestCParser_CountedLoopIsStableUnderRoundTrip does the same for the
// C front end's classic-triple-to-range folding.
func TestCParser_CountedLoopIsStableUnderRoundTrip(t *testing.T) {
	r := require.New(t)
	logger := slogt.New(t)
	src := "int main() {\n  for (int i = 0; i < 5; i++) {\n    printf(\"%d\\n\", i);\n  }\n}\n"

	first := parser.ParseC(logger, src)
	r.Equal(1, countStmtKinds(first.Body)["For"])

	emitted := emitter.NewCEmitter().Emit(first)
	second := parser.ParseC(logger, emitted)

	r.Equal(countStmtKinds(first.Body), countStmtKinds(second.Body))
}

// TestCPPParser_CoutChainIsStableUnderRoundTrip checks that a
// decomposed cout chain re-emits into a form the CPP parser folds
// back into the same Print shape.
func TestCPPParser_CoutChainIsStableUnderRoundTrip(t *testing.T) {
	r := require.New(t)
	logger := slogt.New(t)
	src := `int main() { cout << "count: " << 5 << endl; }`

	first := parser.ParseCPP(logger, src)
	r.Equal(1, countStmtKinds(first.Body)["Print"])

	emitted := emitter.NewCPPEmitter().Emit(first)
	second := parser.ParseCPP(logger, emitted)

	r.Equal(countStmtKinds(first.Body), countStmtKinds(second.Body))
}

// TestJavaParser_MainMethodIsStableUnderRoundTrip checks the
// entry-point-shell shape survives an emit/re-parse cycle.
func TestJavaParser_MainMethodIsStableUnderRoundTrip(t *testing.T) {
	r := require.New(t)
	logger := slogt.New(t)
	src := "public class Program {\n  public static void main(String[] args) {\n    System.out.println(\"hi\");\n  }\n}\n"

	first := parser.ParseJava(logger, src)
	r.Equal(1, countStmtKinds(first.Body)["Class"])

	emitted := emitter.NewJavaEmitter().Emit(first)
	second := parser.ParseJava(logger, emitted)

	r.Equal(countStmtKinds(first.Body), countStmtKinds(second.Body))
}
