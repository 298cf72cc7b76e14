package emitter

import (
	"fmt"
	"strings"

	"github.com/rhino1998/polyglot/pkg/ir"
)

// PythonEmitter renders an IR tree back into indentation-based
// scripting-language source (spec §4.3).
type PythonEmitter struct{}

func NewPythonEmitter() *PythonEmitter { return &PythonEmitter{} }

func (e *PythonEmitter) Emit(prog *ir.Program) string {
	var sb strings.Builder
	for _, imp := range prog.Imports {
		sb.WriteString(imp)
		sb.WriteByte('\n')
	}
	if len(prog.Imports) > 0 {
		sb.WriteByte('\n')
	}
	e.emitBlock(&sb, prog.Body, 0)
	return sb.String()
}

func (e *PythonEmitter) emitBlock(sb *strings.Builder, stmts []ir.Stmt, depth int) {
	if len(stmts) == 0 {
		sb.WriteString(indent(depth))
		sb.WriteString("pass\n")
		return
	}
	for _, s := range stmts {
		e.emitStmt(sb, s, depth)
	}
}

func (e *PythonEmitter) emitStmt(sb *strings.Builder, s ir.Stmt, depth int) {
	pad := indent(depth)
	switch n := s.(type) {
	case *ir.Comment:
		sb.WriteString(pad + "# " + n.Text + "\n")
	case *ir.Variable:
		if n.Initializer != nil {
			fmt.Fprintf(sb, "%s%s = %s\n", pad, n.Name, e.emitExpr(n.Initializer))
		} else {
			fmt.Fprintf(sb, "%s%s = None\n", pad, n.Name)
		}
	case *ir.Assignment:
		fmt.Fprintf(sb, "%s%s %s %s\n", pad, pySelf(n.Target), n.Op, e.emitExpr(n.Value))
	case *ir.Function:
		e.emitFunction(sb, n, depth)
	case *ir.Class:
		e.emitClass(sb, n, depth)
	case *ir.If:
		e.emitIf(sb, n, depth, false)
	case *ir.For:
		e.emitFor(sb, n, depth)
	case *ir.While:
		fmt.Fprintf(sb, "%swhile %s:\n", pad, e.emitExpr(n.Condition))
		e.emitBlock(sb, n.Body, depth+1)
	case *ir.Switch:
		e.emitSwitch(sb, n, depth)
	case *ir.Break:
		sb.WriteString(pad + "break\n")
	case *ir.Return:
		if n.Value != nil {
			fmt.Fprintf(sb, "%sreturn %s\n", pad, e.emitExpr(n.Value))
		} else {
			sb.WriteString(pad + "return\n")
		}
	case *ir.Print:
		e.emitPrint(sb, n, depth)
	case *ir.Input:
		e.emitInput(sb, n, depth)
	case *ir.Call:
		fmt.Fprintf(sb, "%s%s\n", pad, e.emitExpr(n))
	case *ir.ExprStmt:
		sb.WriteString(e.exprStmtLine(n, depth))
	default:
		sb.WriteString(pad + "pass\n")
	}
}

func pySelf(target string) string { return target }

func (e *PythonEmitter) emitFunction(sb *strings.Builder, fn *ir.Function, depth int) {
	pad := indent(depth)
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Name
	}
	fmt.Fprintf(sb, "%sdef %s(%s):\n", pad, fn.Name, strings.Join(params, ", "))
	e.emitBlock(sb, fn.Body, depth+1)
}

// emitClass emits a class definition. Python has no static-entry-point
// convention, so an entry-point shell (ir.IsEntryPointShell) is
// flattened: no class header is written, its static methods become
// module-level functions, and its MainMethod body is emitted at module
// scope (spec §4.3 entry-point-shell flattening). Any other class with a
// MainMethod has that body emitted at module scope after the class.
func (e *PythonEmitter) emitClass(sb *strings.Builder, c *ir.Class, depth int) {
	if ir.IsEntryPointShell(c) {
		for _, m := range c.StaticMethods {
			e.emitFunction(sb, m, depth)
		}
		e.emitBlock(sb, c.MainMethod.Body, depth)
		return
	}
	pad := indent(depth)
	fmt.Fprintf(sb, "%sclass %s:\n", pad, c.Name)
	inner := depth + 1
	wrote := false
	for _, m := range c.Members {
		fmt.Fprintf(sb, "%s%s = None\n", indent(inner), m.Name)
		wrote = true
	}
	if c.Constructor != nil {
		e.emitFunction(sb, withSelfParam(c.Constructor, ir.InitName), inner)
		wrote = true
	}
	for _, m := range c.Methods {
		e.emitFunction(sb, withSelfParam(m, m.Name), inner)
		wrote = true
	}
	for _, m := range c.StaticMethods {
		e.emitFunction(sb, m, inner)
		wrote = true
	}
	if !wrote {
		sb.WriteString(indent(inner) + "pass\n")
	}
	if c.MainMethod != nil {
		e.emitBlock(sb, c.MainMethod.Body, depth)
	}
}

func withSelfParam(fn *ir.Function, name string) *ir.Function {
	params := append([]*ir.Variable{{Name: "self"}}, fn.Params...)
	return &ir.Function{Name: name, Params: params, ReturnType: fn.ReturnType, Body: fn.Body}
}

func (e *PythonEmitter) emitIf(sb *strings.Builder, n *ir.If, depth int, isElif bool) {
	pad := indent(depth)
	kw := "if"
	if isElif {
		kw = "elif"
	}
	fmt.Fprintf(sb, "%s%s %s:\n", pad, kw, e.emitExpr(n.Condition))
	e.emitBlock(sb, n.Then, depth+1)
	if n.ElseIf != nil {
		e.emitIf(sb, n.ElseIf, depth, true)
	} else if n.Else != nil {
		sb.WriteString(pad + "else:\n")
		e.emitBlock(sb, n.Else, depth+1)
	}
}

func (e *PythonEmitter) emitFor(sb *strings.Builder, n *ir.For, depth int) {
	pad := indent(depth)
	if n.HasRange {
		args := e.rangeArgs(n)
		fmt.Fprintf(sb, "%sfor %s in range(%s):\n", pad, n.RangeIter, args)
		e.emitBlock(sb, n.Body, depth+1)
		return
	}
	// The scripting language has no C-style triple-clause for loop:
	// lower init/condition/update into the equivalent while loop, with
	// the update appended as the body's last statement (spec §9 Design
	// Notes — the classic triple survives for exactly this shape).
	if n.Init != nil {
		e.emitStmt(sb, n.Init, depth)
	}
	cond := "True"
	if n.Condition != nil {
		cond = e.emitExpr(n.Condition)
	}
	fmt.Fprintf(sb, "%swhile %s:\n", pad, cond)
	e.emitBlock(sb, n.Body, depth+1)
	if n.Update != nil {
		sb.WriteString(e.exprStmtLine(n.Update, depth+1))
	}
}

// exprStmtLine renders an assignment or bare expression statement
// (spec's for-loop update shape) as a single Python statement line,
// translating C-family `i++`/`i--` into `i += 1`/`i -= 1` since the
// scripting language has no increment/decrement operator.
func (e *PythonEmitter) exprStmtLine(s ir.Stmt, depth int) string {
	pad := indent(depth)
	switch n := s.(type) {
	case *ir.Assignment:
		return fmt.Sprintf("%s%s %s %s\n", pad, pySelf(n.Target), n.Op, e.emitExpr(n.Value))
	case *ir.ExprStmt:
		if unary, ok := n.Expr.(*ir.UnaryOp); ok {
			if id, ok := unary.Operand.(*ir.Identifier); ok {
				switch unary.Op {
				case "++", "++_post":
					return fmt.Sprintf("%s%s += 1\n", pad, id.Name)
				case "--", "--_post":
					return fmt.Sprintf("%s%s -= 1\n", pad, id.Name)
				}
			}
		}
		return fmt.Sprintf("%s%s\n", pad, e.emitExpr(n.Expr))
	default:
		return ""
	}
}

func (e *PythonEmitter) rangeArgs(n *ir.For) string {
	start := e.emitExpr(n.RangeStart)
	end := e.emitExpr(n.RangeEnd)
	step := e.emitExpr(n.RangeStep)
	if start == "0" && step == "1" {
		return end
	}
	if step == "1" {
		return start + ", " + end
	}
	return start + ", " + end + ", " + step
}

func (e *PythonEmitter) emitSwitch(sb *strings.Builder, n *ir.Switch, depth int) {
	pad := indent(depth)
	disc := e.emitExpr(n.Discriminant)
	first := true
	for _, c := range n.Cases {
		kw := "if"
		if !first {
			kw = "elif"
		}
		first = false
		fmt.Fprintf(sb, "%s%s %s == %s:\n", pad, kw, disc, e.emitExpr(c.Value))
		e.emitBlock(sb, stripBreak(c.Body), depth+1)
	}
	if n.Default != nil {
		sb.WriteString(pad + "else:\n")
		e.emitBlock(sb, stripBreak(n.Default), depth+1)
	}
}

func stripBreak(body []ir.Stmt) []ir.Stmt {
	out := make([]ir.Stmt, 0, len(body))
	for _, s := range body {
		if _, ok := s.(*ir.Break); ok {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (e *PythonEmitter) emitPrint(sb *strings.Builder, n *ir.Print, depth int) {
	pad := indent(depth)
	end := ""
	if !n.Newline {
		end = ", end=\"\""
	}
	if fstring, ok := e.buildFString(n.Args); ok {
		sb.WriteString(pad + "print(" + fstring + end + ")\n")
		return
	}
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = e.emitExpr(a)
	}
	sb.WriteString(pad + "print(" + strings.Join(parts, ", ") + end + ")\n")
}

// buildFString reconstitutes a flattened literal/value Print argument
// list (spec §4.3 "Interpolated literals") back into a single f-string,
// the scripting-language native form. It only fires when the argument
// list actually mixes a literal text segment with a value — a plain
// print(a, b) call has no adjacent literal run to splice.
func (e *PythonEmitter) buildFString(args []ir.Expr) (string, bool) {
	hasLiteralText, hasValue := false, false
	for _, a := range args {
		if lit, ok := a.(*ir.Literal); ok {
			if _, isString := lit.Value.(string); isString {
				hasLiteralText = true
				continue
			}
		}
		hasValue = true
	}
	if !hasLiteralText || !hasValue {
		return "", false
	}

	var body strings.Builder
	for _, a := range args {
		if lit, ok := a.(*ir.Literal); ok {
			if s, isString := lit.Value.(string); isString {
				body.WriteString(s)
				continue
			}
		}
		body.WriteString("{" + e.emitExpr(a) + "}")
	}
	return fmt.Sprintf("f%q", body.String()), true
}

func (e *PythonEmitter) emitInput(sb *strings.Builder, n *ir.Input, depth int) {
	pad := indent(depth)
	call := "input()"
	if n.HasPrompt {
		call = fmt.Sprintf("input(%q)", n.Prompt)
	}
	switch n.TargetType {
	case ir.Int:
		call = "int(" + call + ")"
	case ir.Float, ir.Double:
		call = "float(" + call + ")"
	}
	target := n.Target
	if target == "" {
		target = "_"
	}
	fmt.Fprintf(sb, "%s%s = %s\n", pad, target, call)
}

func (e *PythonEmitter) emitExpr(x ir.Expr) string {
	switch n := x.(type) {
	case nil:
		return "None"
	case *ir.Literal:
		return pyLiteral(n)
	case *ir.Identifier:
		return n.Name
	case *ir.BinaryOp:
		return e.emitExpr(n.Left) + " " + pyOp(n.Op) + " " + e.emitExpr(n.Right)
	case *ir.UnaryOp:
		return pyUnary(n, e)
	case *ir.Call:
		return e.emitCall(n)
	default:
		return ""
	}
}

func (e *PythonEmitter) emitCall(n *ir.Call) string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = e.emitExpr(a)
	}
	callee := n.Callee
	if n.IsMethod && n.Receiver != "" {
		callee = n.Receiver + "." + callee
	}
	return callee + "(" + strings.Join(args, ", ") + ")"
}

func pyUnary(n *ir.UnaryOp, e *PythonEmitter) string {
	switch n.Op {
	case "!":
		return "not " + e.emitExpr(n.Operand)
	case "-":
		return "-" + e.emitExpr(n.Operand)
	case "++", "++_post":
		return e.emitExpr(n.Operand) + " + 1"
	case "--", "--_post":
		return e.emitExpr(n.Operand) + " - 1"
	default:
		return e.emitExpr(n.Operand)
	}
}

func pyOp(op string) string {
	switch op {
	case "&&":
		return "and"
	case "||":
		return "or"
	default:
		return op
	}
}

func pyLiteral(l *ir.Literal) string {
	switch v := l.Value.(type) {
	case nil:
		return "None"
	case bool:
		if v {
			return "True"
		}
		return "False"
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
