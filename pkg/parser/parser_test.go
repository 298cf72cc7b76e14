package parser_test

import (
	"log/slog"
	"testing"

	"github.com/rhino1998/polyglot/pkg/ir"
	"github.com/rhino1998/polyglot/pkg/parser"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(noopWriter{}, nil))
}

type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestPythonParser_CountedLoopFoldsToRange(t *testing.T) {
	r := require.New(t)
	prog := parser.ParsePython(discardLogger(), "for i in range(0, 10):\n    print(i)\n")
	r.Len(prog.Body, 1)
	forNode, ok := prog.Body[0].(*ir.For)
	r.True(ok)
	r.True(forNode.HasRange)
	r.Equal("i", forNode.RangeIter)
}

func TestPythonParser_InputAssignmentIsInputNode(t *testing.T) {
	r := require.New(t)
	prog := parser.ParsePython(discardLogger(), "age = int(input(\"age: \"))\n")
	r.Len(prog.Body, 1)
	in, ok := prog.Body[0].(*ir.Input)
	r.True(ok)
	r.Equal("age", in.Target)
	r.Equal(ir.Int, in.TargetType)
	r.True(in.HasPrompt)
}

func TestPythonParser_FStringDecomposesPlaceholders(t *testing.T) {
	r := require.New(t)
	prog := parser.ParsePython(discardLogger(), "print(f\"count: {i}\")\n")
	r.Len(prog.Body, 1)
	p, ok := prog.Body[0].(*ir.Print)
	r.True(ok)
	r.Len(p.Args, 2)
	lit, ok := p.Args[0].(*ir.Literal)
	r.True(ok)
	r.Equal("count: ", lit.Value)
	ident, ok := p.Args[1].(*ir.Identifier)
	r.True(ok)
	r.Equal("i", ident.Name)
}

func TestPythonParser_ClassDefPromotesSelfFields(t *testing.T) {
	r := require.New(t)
	src := "class Point:\n    def __init__(self, x):\n        self.x = x\n"
	prog := parser.ParsePython(discardLogger(), src)
	var class *ir.Class
	for _, s := range prog.Body {
		if c, ok := s.(*ir.Class); ok {
			class = c
		}
	}
	r.NotNil(class)
	r.NotNil(class.Constructor)
	r.Len(class.Members, 1)
	r.Equal("x", class.Members[0].Name)
}

func TestCParser_CountedLoopFoldsToRange(t *testing.T) {
	r := require.New(t)
	prog := parser.ParseC(discardLogger(), "int main() {\n  for (int i = 0; i < 10; i++) {\n    printf(\"%d\\n\", i);\n  }\n}\n")
	r.Len(prog.Body, 1)
	fn, ok := prog.Body[0].(*ir.Function)
	r.True(ok)
	forNode, ok := fn.Body[0].(*ir.For)
	r.True(ok)
	r.True(forNode.HasRange)
}

func TestCParser_PrintfDecomposesDirectives(t *testing.T) {
	r := require.New(t)
	prog := parser.ParseC(discardLogger(), `int main() { printf("x=%d\n", x); }`)
	fn := prog.Body[0].(*ir.Function)
	print, ok := fn.Body[0].(*ir.Print)
	r.True(ok)
	r.True(print.Newline)
	r.Len(print.Args, 2)
}

func TestCParser_ScanfProducesInput(t *testing.T) {
	r := require.New(t)
	prog := parser.ParseC(discardLogger(), `int main() { scanf("%d", &x); }`)
	fn := prog.Body[0].(*ir.Function)
	in, ok := fn.Body[0].(*ir.Input)
	r.True(ok)
	r.Equal(ir.Int, in.TargetType)
	r.Equal("x", in.Target)
}

func TestCPPParser_CoutChainBecomesPrint(t *testing.T) {
	r := require.New(t)
	prog := parser.ParseCPP(discardLogger(), `int main() { cout << "x=" << x << endl; }`)
	fn := prog.Body[0].(*ir.Function)
	print, ok := fn.Body[0].(*ir.Print)
	r.True(ok)
	r.True(print.Newline)
	r.Len(print.Args, 2)
}

func TestCPPParser_CinBecomesInput(t *testing.T) {
	r := require.New(t)
	prog := parser.ParseCPP(discardLogger(), `int main() { cin >> x; }`)
	fn := prog.Body[0].(*ir.Function)
	in, ok := fn.Body[0].(*ir.Input)
	r.True(ok)
	r.Equal("x", in.Target)
}

func TestCPPParser_ConstructorMatchesClassName(t *testing.T) {
	r := require.New(t)
	src := "class Point {\npublic:\n  int x;\n  Point(int x) {\n    this->x = x;\n  }\n};\n"
	prog := parser.ParseCPP(discardLogger(), src)
	class, ok := prog.Body[0].(*ir.Class)
	r.True(ok)
	r.NotNil(class.Constructor)
	r.Equal(ir.InitName, class.Constructor.Name)
}

func TestJavaParser_MainMethodAttachesToClass(t *testing.T) {
	r := require.New(t)
	src := "public class Main {\n  public static void main(String[] args) {\n    System.out.println(\"hi\");\n  }\n}\n"
	prog := parser.ParseJava(discardLogger(), src)
	class, ok := prog.Body[0].(*ir.Class)
	r.True(ok)
	r.NotNil(class.MainMethod)
	r.Empty(class.Methods)
}

func TestJavaParser_ScannerNextIntBecomesInput(t *testing.T) {
	r := require.New(t)
	src := "public class Main {\n  public static void main(String[] args) {\n    int age = scanner.nextInt();\n  }\n}\n"
	prog := parser.ParseJava(discardLogger(), src)
	class := prog.Body[0].(*ir.Class)
	in, ok := class.MainMethod.Body[0].(*ir.Input)
	r.True(ok)
	r.Equal("age", in.Target)
	r.Equal(ir.Int, in.TargetType)
}

func TestJavaParser_StaticMethodSeparatedFromMain(t *testing.T) {
	r := require.New(t)
	src := "public class Util {\n  public static int square(int n) {\n    return n * n;\n  }\n}\n"
	prog := parser.ParseJava(discardLogger(), src)
	class := prog.Body[0].(*ir.Class)
	r.Nil(class.MainMethod)
	r.Len(class.StaticMethods, 1)
	r.Equal("square", class.StaticMethods[0].Name)
}

func TestAllParsers_NeverPanicOnGarbageInput(t *testing.T) {
	r := require.New(t)
	garbage := "@@@ }}} ((( $$$ %%% ???"
	r.NotPanics(func() { parser.ParsePython(discardLogger(), garbage) })
	r.NotPanics(func() { parser.ParseC(discardLogger(), garbage) })
	r.NotPanics(func() { parser.ParseCPP(discardLogger(), garbage) })
	r.NotPanics(func() { parser.ParseJava(discardLogger(), garbage) })
}
