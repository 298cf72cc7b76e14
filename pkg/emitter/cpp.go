package emitter

import (
	"fmt"
	"strings"

	"github.com/rhino1998/polyglot/pkg/ir"
)

// CPPEmitter renders an IR tree into C++-family object-capable source,
// re-lowering Print/Input back into cout/cin stream idioms (spec
// §4.3).
type CPPEmitter struct{}

func NewCPPEmitter() *CPPEmitter { return &CPPEmitter{} }

func (e *CPPEmitter) Emit(prog *ir.Program) string {
	var sb strings.Builder
	sb.WriteString("#include <iostream>\n")
	sb.WriteString("using namespace std;\n\n")
	for _, s := range prog.Body {
		e.emitStmt(&sb, s, 0)
	}
	return sb.String()
}

func (e *CPPEmitter) emitBlock(sb *strings.Builder, stmts []ir.Stmt, depth int) {
	for _, s := range stmts {
		e.emitStmt(sb, s, depth)
	}
}

func (e *CPPEmitter) emitStmt(sb *strings.Builder, s ir.Stmt, depth int) {
	pad := indent(depth)
	switch n := s.(type) {
	case *ir.Comment:
		sb.WriteString(pad + "// " + n.Text + "\n")
	case *ir.Class:
		e.emitClass(sb, n, depth)
	case *ir.Variable:
		e.emitVariable(sb, n, depth)
	case *ir.Assignment:
		fmt.Fprintf(sb, "%s%s %s %s;\n", pad, cppSelf(n.Target), n.Op, e.emitExpr(n.Value))
	case *ir.Function:
		e.emitFunction(sb, n.Name, n, depth)
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

func (e *CPPEmitter) emitClass(sb *strings.Builder, c *ir.Class, depth int) {
	if ir.IsEntryPointShell(c) {
		for _, m := range c.StaticMethods {
			e.emitFunction(sb, m.Name, m, depth)
		}
		e.emitFunction(sb, "main", &ir.Function{ReturnType: ir.Int, Body: c.MainMethod.Body}, depth)
		return
	}
	pad := indent(depth)
	fmt.Fprintf(sb, "%sclass %s {\n", pad, c.Name)
	inner := depth + 1
	if len(c.Members) > 0 {
		fmt.Fprintf(sb, "%sprivate:\n", pad)
		for _, m := range c.Members {
			fmt.Fprintf(sb, "%s%s %s;\n", indent(inner), cppType(m.Type), m.Name)
		}
	}
	fmt.Fprintf(sb, "%spublic:\n", pad)
	if c.Constructor != nil {
		params := make([]string, len(c.Constructor.Params))
		for i, p := range c.Constructor.Params {
			params[i] = cppType(p.Type) + " " + p.Name
		}
		fmt.Fprintf(sb, "%s%s(%s) {\n", indent(inner), c.Name, strings.Join(params, ", "))
		e.emitBlock(sb, c.Constructor.Body, inner+1)
		sb.WriteString(indent(inner) + "}\n")
	}
	for _, m := range c.Methods {
		e.emitFunction(sb, m.Name, m, inner)
	}
	sb.WriteString(pad + "};\n")
	if c.MainMethod != nil {
		e.emitFunction(sb, "main", &ir.Function{ReturnType: ir.Int, Body: c.MainMethod.Body}, depth)
	}
}

func (e *CPPEmitter) emitVariable(sb *strings.Builder, v *ir.Variable, depth int) {
	pad := indent(depth)
	prefix := ""
	if v.Const {
		prefix = "const "
	}
	if v.Initializer != nil {
		fmt.Fprintf(sb, "%s%s%s %s = %s;\n", pad, prefix, cppType(v.Type), v.Name, e.emitExpr(v.Initializer))
	} else {
		fmt.Fprintf(sb, "%s%s%s %s;\n", pad, prefix, cppType(v.Type), v.Name)
	}
}

func cppType(dt ir.DataType) string {
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
		return "bool"
	case ir.String:
		return "string"
	case ir.Void:
		return "void"
	default:
		return "auto"
	}
}

func (e *CPPEmitter) emitFunction(sb *strings.Builder, name string, fn *ir.Function, depth int) {
	pad := indent(depth)
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = cppType(p.Type) + " " + p.Name
	}
	ret := cppType(fn.ReturnType)
	if fn.ReturnType == "" {
		ret = "void"
	}
	fmt.Fprintf(sb, "%s%s %s(%s) {\n", pad, ret, name, strings.Join(params, ", "))
	e.emitBlock(sb, fn.Body, depth+1)
	sb.WriteString(pad + "}\n")
}

func (e *CPPEmitter) emitIf(sb *strings.Builder, n *ir.If, depth int) {
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

func (e *CPPEmitter) emitFor(sb *strings.Builder, n *ir.For, depth int) {
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
func (e *CPPEmitter) forClause(s ir.Stmt) string {
	switch n := s.(type) {
	case *ir.Variable:
		if n.Initializer != nil {
			return fmt.Sprintf("%s %s = %s", cppType(n.Type), n.Name, e.emitExpr(n.Initializer))
		}
		return fmt.Sprintf("%s %s", cppType(n.Type), n.Name)
	case *ir.Assignment:
		return fmt.Sprintf("%s %s %s", cppSelf(n.Target), n.Op, e.emitExpr(n.Value))
	case *ir.ExprStmt:
		return e.emitExpr(n.Expr)
	default:
		return ""
	}
}

func (e *CPPEmitter) emitExprOrEmpty(x ir.Expr) string {
	if x == nil {
		return ""
	}
	return e.emitExpr(x)
}

func (e *CPPEmitter) emitSwitch(sb *strings.Builder, n *ir.Switch, depth int) {
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

func (e *CPPEmitter) emitPrint(sb *strings.Builder, n *ir.Print, depth int) {
	pad := indent(depth)
	var parts []string
	for _, a := range n.Args {
		if lit, ok := a.(*ir.Literal); ok {
			if s, ok := lit.Value.(string); ok {
				parts = append(parts, fmt.Sprintf("%q", s))
				continue
			}
		}
		parts = append(parts, e.emitExpr(a))
	}
	if n.Newline {
		parts = append(parts, "endl")
	}
	if len(parts) == 0 {
		parts = []string{"\"\""}
	}
	fmt.Fprintf(sb, "%scout << %s;\n", pad, strings.Join(parts, " << "))
}

func (e *CPPEmitter) emitInput(sb *strings.Builder, n *ir.Input, depth int) {
	pad := indent(depth)
	if n.HasPrompt {
		fmt.Fprintf(sb, "%scout << %q;\n", pad, n.Prompt)
	}
	target := n.Target
	if target == "" {
		target = "_"
	}
	fmt.Fprintf(sb, "%s%s %s;\n", pad, cppType(n.TargetType), target)
	fmt.Fprintf(sb, "%scin >> %s;\n", pad, target)
}

func (e *CPPEmitter) emitExpr(x ir.Expr) string {
	switch n := x.(type) {
	case nil:
		return "0"
	case *ir.Literal:
		return cppLiteral(n)
	case *ir.Identifier:
		return cppSelf(n.Name)
	case *ir.BinaryOp:
		return e.emitExpr(n.Left) + " " + n.Op + " " + e.emitExpr(n.Right)
	case *ir.UnaryOp:
		return cppUnary(n, e)
	case *ir.Call:
		return e.emitCall(n)
	default:
		return ""
	}
}

func cppSelf(name string) string {
	if strings.HasPrefix(name, "self.") {
		return "this->" + strings.TrimPrefix(name, "self.")
	}
	return name
}

func (e *CPPEmitter) emitCall(n *ir.Call) string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = e.emitExpr(a)
	}
	return n.Callee + "(" + strings.Join(args, ", ") + ")"
}

func cppUnary(n *ir.UnaryOp, e *CPPEmitter) string {
	switch n.Op {
	case "++_post", "--_post":
		return e.emitExpr(n.Operand) + n.Op[:2]
	default:
		return n.Op + e.emitExpr(n.Operand)
	}
}

func cppLiteral(l *ir.Literal) string {
	switch v := l.Value.(type) {
	case nil:
		return "nullptr"
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
