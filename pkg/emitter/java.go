package emitter

import (
	"fmt"
	"strings"

	"github.com/rhino1998/polyglot/pkg/ir"
)

// JavaEmitter renders an IR tree into class-based managed-language
// source. Every top-level Function/Variable is wrapped into a
// synthetic outer class ("Program") since the language has no
// free-function convention; a Class carrying a MainMethod is emitted
// directly with its own name instead (spec §4.3).
type JavaEmitter struct{}

func NewJavaEmitter() *JavaEmitter { return &JavaEmitter{} }

func (e *JavaEmitter) Emit(prog *ir.Program) string {
	var sb strings.Builder
	for _, imp := range prog.Imports {
		sb.WriteString(imp + ";\n")
	}
	if len(prog.Imports) > 0 {
		sb.WriteByte('\n')
	}

	usesScanner := programUsesScanner(prog.Body)
	if usesScanner {
		sb.WriteString("import java.util.Scanner;\n\n")
	}

	var loose []ir.Stmt
	for _, s := range prog.Body {
		switch n := s.(type) {
		case *ir.Class:
			e.emitClass(&sb, n, 0, usesScanner)
		default:
			loose = append(loose, n)
		}
	}
	if len(loose) > 0 {
		sb.WriteString("public class Program {\n")
		sb.WriteString(indent(1) + "public static void main(String[] args) {\n")
		if usesScanner {
			sb.WriteString(indent(2) + "Scanner scanner = new Scanner(System.in);\n")
		}
		e.emitBlock(&sb, loose, 2)
		sb.WriteString(indent(1) + "}\n")
		sb.WriteString("}\n")
	}
	return sb.String()
}

func programUsesScanner(stmts []ir.Stmt) bool {
	found := false
	ir.Walk(stmts, func(s ir.Stmt) bool {
		if _, ok := s.(*ir.Input); ok {
			found = true
		}
		return true
	})
	return found
}

func (e *JavaEmitter) emitBlock(sb *strings.Builder, stmts []ir.Stmt, depth int) {
	for _, s := range stmts {
		e.emitStmt(sb, s, depth)
	}
}

func (e *JavaEmitter) emitStmt(sb *strings.Builder, s ir.Stmt, depth int) {
	pad := indent(depth)
	switch n := s.(type) {
	case *ir.Comment:
		sb.WriteString(pad + "// " + n.Text + "\n")
	case *ir.Variable:
		e.emitVariable(sb, n, depth)
	case *ir.Assignment:
		fmt.Fprintf(sb, "%s%s %s %s;\n", pad, javaSelf(n.Target), n.Op, e.emitExpr(n.Value))
	case *ir.Function:
		e.emitFunction(sb, n.Name, n, depth, false)
	case *ir.If:
		e.emitIf(sb, n, depth)
	case *ir.For:
		e.emitFor(sb, n, depth)
	case *ir.While:
		fmt.Fprintf(sb, "%swhile (%s) {\n", pad, e.emitExpr(n.Condition))
		e.emitBlock(sb, n.Body, depth+1)
		sb.WriteString(pad + "}\n")
	case *ir.Switch:
		e.emitSwitch(sb, n, depth)
	case *ir.Break:
		sb.WriteString(pad + "break;\n")
	case *ir.Return:
		if n.Value != nil {
			fmt.Fprintf(sb, "%sreturn %s;\n", pad, e.emitExpr(n.Value))
		} else {
			sb.WriteString(pad + "return;\n")
		}
	case *ir.Print:
		e.emitPrint(sb, n, depth)
	case *ir.Input:
		e.emitInput(sb, n, depth)
	case *ir.Call:
		fmt.Fprintf(sb, "%s%s;\n", pad, e.emitExpr(n))
	}
}

func (e *JavaEmitter) emitClass(sb *strings.Builder, c *ir.Class, depth int, usesScanner bool) {
	pad := indent(depth)
	fmt.Fprintf(sb, "%spublic class %s {\n", pad, c.Name)
	inner := depth + 1
	for _, m := range c.Members {
		fmt.Fprintf(sb, "%sprivate %s %s;\n", indent(inner), javaType(m.Type), m.Name)
	}
	if c.Constructor != nil {
		params := make([]string, len(c.Constructor.Params))
		for i, p := range c.Constructor.Params {
			params[i] = javaType(p.Type) + " " + p.Name
		}
		fmt.Fprintf(sb, "%spublic %s(%s) {\n", indent(inner), c.Name, strings.Join(params, ", "))
		e.emitBlock(sb, c.Constructor.Body, inner+1)
		sb.WriteString(indent(inner) + "}\n")
	}
	for _, m := range c.Methods {
		e.emitFunction(sb, m.Name, m, inner, false)
	}
	for _, m := range c.StaticMethods {
		e.emitFunction(sb, m.Name, m, inner, true)
	}
	if c.MainMethod != nil {
		fmt.Fprintf(sb, "%spublic static void main(String[] args) {\n", indent(inner))
		if usesScanner {
			sb.WriteString(indent(inner+1) + "Scanner scanner = new Scanner(System.in);\n")
		}
		e.emitBlock(sb, c.MainMethod.Body, inner+1)
		sb.WriteString(indent(inner) + "}\n")
	}
	sb.WriteString(pad + "}\n")
}

func javaSelf(target string) string {
	if strings.HasPrefix(target, "self.") {
		return "this." + strings.TrimPrefix(target, "self.")
	}
	return target
}

func (e *JavaEmitter) emitVariable(sb *strings.Builder, v *ir.Variable, depth int) {
	pad := indent(depth)
	prefix := ""
	if v.Const {
		prefix = "final "
	}
	if v.Initializer != nil {
		fmt.Fprintf(sb, "%s%s%s %s = %s;\n", pad, prefix, javaType(v.Type), v.Name, e.emitExpr(v.Initializer))
	} else {
		fmt.Fprintf(sb, "%s%s%s %s;\n", pad, prefix, javaType(v.Type), v.Name)
	}
}

func javaType(dt ir.DataType) string {
	switch dt {
	case ir.Int:
		return "int"
	case ir.Float:
		return "float"
	case ir.Double:
		return "double"
	case ir.Char:
		return "char"
	case ir.Bool:
		return "boolean"
	case ir.String:
		return "String"
	case ir.Void:
		return "void"
	default:
		return "Object"
	}
}

func (e *JavaEmitter) emitFunction(sb *strings.Builder, name string, fn *ir.Function, depth int, static bool) {
	pad := indent(depth)
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = javaType(p.Type) + " " + p.Name
	}
	ret := javaType(fn.ReturnType)
	if fn.ReturnType == "" {
		ret = "void"
	}
	mod := "public"
	if static {
		mod = "public static"
	}
	fmt.Fprintf(sb, "%s%s %s %s(%s) {\n", pad, mod, ret, name, strings.Join(params, ", "))
	e.emitBlock(sb, fn.Body, depth+1)
	sb.WriteString(pad + "}\n")
}

func (e *JavaEmitter) emitIf(sb *strings.Builder, n *ir.If, depth int) {
	pad := indent(depth)
	fmt.Fprintf(sb, "%sif (%s) {\n", pad, e.emitExpr(n.Condition))
	e.emitBlock(sb, n.Then, depth+1)
	if n.ElseIf != nil {
		sb.WriteString(pad + "} else ")
		fmt.Fprintf(sb, "if (%s) {\n", e.emitExpr(n.ElseIf.Condition))
		e.emitBlock(sb, n.ElseIf.Then, depth+1)
		if n.ElseIf.Else != nil {
			sb.WriteString(pad + "} else {\n")
			e.emitBlock(sb, n.ElseIf.Else, depth+1)
		}
		sb.WriteString(pad + "}\n")
		return
	}
	if n.Else != nil {
		sb.WriteString(pad + "} else {\n")
		e.emitBlock(sb, n.Else, depth+1)
	}
	sb.WriteString(pad + "}\n")
}

func (e *JavaEmitter) emitFor(sb *strings.Builder, n *ir.For, depth int) {
	pad := indent(depth)
	if n.HasRange {
		start := e.emitExpr(n.RangeStart)
		end := e.emitExpr(n.RangeEnd)
		step := e.emitExpr(n.RangeStep)
		fmt.Fprintf(sb, "%sfor (int %s = %s; %s < %s; %s += %s) {\n", pad, n.RangeIter, start, n.RangeIter, end, n.RangeIter, step)
		e.emitBlock(sb, n.Body, depth+1)
		sb.WriteString(pad + "}\n")
		return
	}
	fmt.Fprintf(sb, "%sfor (%s; %s; %s) {\n", pad, e.forClause(n.Init), e.emitExprOrEmpty(n.Condition), e.forClause(n.Update))
	e.emitBlock(sb, n.Body, depth+1)
	sb.WriteString(pad + "}\n")
}

// forClause renders a classic for-loop header statement (init or
// update) inline for shapes idiom-folding didn't recognize as a range.
func (e *JavaEmitter) forClause(s ir.Stmt) string {
	switch n := s.(type) {
	case *ir.Variable:
		if n.Initializer != nil {
			return fmt.Sprintf("%s %s = %s", javaType(n.Type), n.Name, e.emitExpr(n.Initializer))
		}
		return fmt.Sprintf("%s %s", javaType(n.Type), n.Name)
	case *ir.Assignment:
		return fmt.Sprintf("%s %s %s", n.Target, n.Op, e.emitExpr(n.Value))
	case *ir.ExprStmt:
		return e.emitExpr(n.Expr)
	default:
		return ""
	}
}

func (e *JavaEmitter) emitExprOrEmpty(x ir.Expr) string {
	if x == nil {
		return ""
	}
	return e.emitExpr(x)
}

func (e *JavaEmitter) emitSwitch(sb *strings.Builder, n *ir.Switch, depth int) {
	pad := indent(depth)
	fmt.Fprintf(sb, "%sswitch (%s) {\n", pad, e.emitExpr(n.Discriminant))
	for _, c := range n.Cases {
		fmt.Fprintf(sb, "%scase %s:\n", indent(depth+1), e.emitExpr(c.Value))
		e.emitBlock(sb, c.Body, depth+2)
	}
	if n.Default != nil {
		sb.WriteString(indent(depth+1) + "default:\n")
		e.emitBlock(sb, n.Default, depth+2)
	}
	sb.WriteString(pad + "}\n")
}

func (e *JavaEmitter) emitPrint(sb *strings.Builder, n *ir.Print, depth int) {
	pad := indent(depth)
	hasLiteralText := false
	var parts []string
	for _, a := range n.Args {
		if lit, ok := a.(*ir.Literal); ok {
			if s, ok := lit.Value.(string); ok {
				hasLiteralText = true
				parts = append(parts, fmt.Sprintf("%q", s))
				continue
			}
		}
		parts = append(parts, e.emitExpr(a))
	}
	if len(parts) == 0 {
		parts = []string{"\"\""}
	}
	method := "print"
	if n.Newline {
		method = "println"
	}
	// A decomposed printf/interpolated literal splices its segments
	// directly (spec §4.3: `" + var + "`, no inserted separator) since
	// the literal text already carries any spacing. A plain
	// multi-argument print(a, b, ...) has no literal segment of its own,
	// so it needs the scripting language's implicit space between
	// values reproduced explicitly for cross-language stdout parity.
	sep := " + "
	if !hasLiteralText && len(parts) > 1 {
		sep = " + \" \" + "
	}
	fmt.Fprintf(sb, "%sSystem.out.%s(%s);\n", pad, method, strings.Join(parts, sep))
}

func (e *JavaEmitter) emitInput(sb *strings.Builder, n *ir.Input, depth int) {
	pad := indent(depth)
	if n.HasPrompt {
		fmt.Fprintf(sb, "%sSystem.out.print(%q);\n", pad, n.Prompt)
	}
	method := javaScannerMethod(n.TargetType)
	target := n.Target
	if target == "" {
		fmt.Fprintf(sb, "%sscanner.%s();\n", pad, method)
		return
	}
	fmt.Fprintf(sb, "%s%s %s = scanner.%s();\n", pad, javaType(n.TargetType), target, method)
}

func javaScannerMethod(dt ir.DataType) string {
	switch dt {
	case ir.Int:
		return "nextInt"
	case ir.Float, ir.Double:
		return "nextDouble"
	default:
		return "nextLine"
	}
}

func (e *JavaEmitter) emitExpr(x ir.Expr) string {
	switch n := x.(type) {
	case nil:
		return "null"
	case *ir.Literal:
		return javaLiteral(n)
	case *ir.Identifier:
		return javaSelf(n.Name)
	case *ir.BinaryOp:
		return e.emitExpr(n.Left) + " " + n.Op + " " + e.emitExpr(n.Right)
	case *ir.UnaryOp:
		return javaUnary(n, e)
	case *ir.Call:
		return e.emitCall(n)
	default:
		return ""
	}
}

func (e *JavaEmitter) emitCall(n *ir.Call) string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = e.emitExpr(a)
	}
	return n.Callee + "(" + strings.Join(args, ", ") + ")"
}

func javaUnary(n *ir.UnaryOp, e *JavaEmitter) string {
	switch n.Op {
	case "++_post", "--_post":
		return e.emitExpr(n.Operand) + n.Op[:2]
	default:
		return n.Op + e.emitExpr(n.Operand)
	}
}

func javaLiteral(l *ir.Literal) string {
	switch v := l.Value.(type) {
	case nil:
		return "null"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		return fmt.Sprintf("%q", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
