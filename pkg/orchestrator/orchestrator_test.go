package orchestrator_test

import (
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/rhino1998/polyglot/pkg/orchestrator"
	"github.com/rhino1998/polyglot/pkg/token"
	"github.com/stretchr/testify/require"
)

func TestTranspile_PythonCountedLoopToAllTargets(t *testing.T) {
	r := require.New(t)
	src := "for i in range(0, 5):\n    print(i)\n"
	result := orchestrator.New(slogt.New(t)).Transpile(src, token.Python)
	r.True(result.Success)
	r.Contains(result.Outputs[token.C], "for (int i = 0; i < 5; i += 1)")
	r.Contains(result.Outputs[token.CPP], "for (int i = 0; i < 5; i += 1)")
	r.Contains(result.Outputs[token.Java], "for (int i = 0; i < 5; i += 1)")
}

func TestTranspile_CClassicCountedLoopToPythonRange(t *testing.T) {
	r := require.New(t)
	src := "int main() {\n  for (int i = 0; i < 10; i++) {\n    printf(\"%d\\n\", i);\n  }\n}\n"
	result := orchestrator.New(slogt.New(t)).Transpile(src, token.C)
	r.True(result.Success)
	r.Contains(result.Outputs[token.Python], "for i in range(10):")
}

func TestTranspile_CoutChainToPythonPrint(t *testing.T) {
	r := require.New(t)
	src := `int main() { cout << "hello" << endl; }`
	result := orchestrator.New(slogt.New(t)).Transpile(src, token.CPP)
	r.True(result.Success)
	r.Contains(result.Outputs[token.Python], "print(")
}

func TestTranspile_JavaScannerToInputAcrossTargets(t *testing.T) {
	r := require.New(t)
	src := "public class Main {\n  public static void main(String[] args) {\n    int age = scanner.nextInt();\n  }\n}\n"
	result := orchestrator.New(slogt.New(t)).Transpile(src, token.Java)
	r.True(result.Success)
	r.Contains(result.Outputs[token.Python], "input()")
	r.Contains(result.Outputs[token.C], "scanf(")
	r.Contains(result.Outputs[token.CPP], "cin >>")
}

func TestTranspile_ClassWithFieldsGuardsCTarget(t *testing.T) {
	r := require.New(t)
	src := "class Point:\n    def __init__(self, x):\n        self.x = x\n"
	result := orchestrator.New(slogt.New(t)).Transpile(src, token.Python)
	r.True(result.Success)
	r.Empty(result.Errors)
	r.Equal("// C does not support classes", result.Outputs[token.C])
}

func TestTranspile_OutputsIncludeSourceLanguageItself(t *testing.T) {
	r := require.New(t)
	src := "for i in range(0, 5):\n    print(i)\n"
	result := orchestrator.New(slogt.New(t)).Transpile(src, token.Python)
	r.True(result.Success)
	r.Len(result.Outputs, 4)
	r.Contains(result.Outputs[token.Python], "for i in range(5):")
}

func TestTranspile_ReusedInstanceIsStatelessAcrossCalls(t *testing.T) {
	r := require.New(t)
	tp := orchestrator.New(slogt.New(t))
	first := tp.Transpile("for i in range(0, 3):\n    print(i)\n", token.Python)
	second := tp.Transpile("for i in range(0, 3):\n    print(i)\n", token.Python)
	r.Equal(first.Outputs[token.C], second.Outputs[token.C])
}
