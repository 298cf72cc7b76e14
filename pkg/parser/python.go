package parser

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/rhino1998/polyglot/pkg/idiom"
	"github.com/rhino1998/polyglot/pkg/ir"
	"github.com/rhino1998/polyglot/pkg/lexer"
	"github.com/rhino1998/polyglot/pkg/token"
)

// pyLine is one logical non-blank line of tokens, tagged with its
// leading-indent column. A comment-only line is its own pyLine holding
// just the COMMENT token.
type pyLine struct {
	tokens []token.Token
	indent int
}

// PythonParser recursive-descends over the indentation-based scripting
// language's token buffer, deriving block structure from indent columns
// per spec §4.2.1. It never returns an error: on internal inconsistency
// it logs out-of-band and returns whatever partial IR it accumulated
// (spec §4.2/§7).
type PythonParser struct {
	logger   *slog.Logger
	lines    []pyLine
	pos      int
	declared map[string]bool
	imports  []string
}

func NewPythonParser(logger *slog.Logger, tokens []token.Token) *PythonParser {
	return &PythonParser{logger: logger, lines: groupPythonLines(tokens), declared: map[string]bool{}}
}

// ParsePython is a convenience one-shot entry point mirroring the
// lexer+parser pipeline the orchestrator drives.
func ParsePython(logger *slog.Logger, source string) *ir.Program {
	toks := lexer.NewPythonLexer(source).Tokenize()
	return NewPythonParser(logger, toks).Parse()
}

func groupPythonLines(tokens []token.Token) []pyLine {
	var lines []pyLine
	var cur []token.Token
	indent := 0
	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			break
		}
		if tok.Kind == token.NEWLINE {
			if len(cur) > 0 {
				lines = append(lines, pyLine{tokens: cur, indent: indent})
				cur = nil
			}
			continue
		}
		if tok.Kind == token.COMMENT {
			if len(cur) == 0 {
				lines = append(lines, pyLine{tokens: []token.Token{tok}, indent: tok.Indent})
				continue
			}
			cur = append(cur, tok)
			continue
		}
		if len(cur) == 0 {
			indent = tok.Indent
		}
		cur = append(cur, tok)
	}
	if len(cur) > 0 {
		lines = append(lines, pyLine{tokens: cur, indent: indent})
	}
	return lines
}

const maxPythonIterations = 100000

func (p *PythonParser) Parse() *ir.Program {
	prog := &ir.Program{}
	guard := 0
	for p.pos < len(p.lines) && guard < maxPythonIterations {
		guard++
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Body = append(prog.Body, stmt)
		}
	}
	prog.Imports = p.imports
	return prog
}

// parseBlock consumes every line whose indent exceeds headerIndent,
// terminating as soon as a line at indent <= headerIndent is seen
// (spec §4.2.1).
func (p *PythonParser) parseBlock(headerIndent int) []ir.Stmt {
	var body []ir.Stmt
	guard := 0
	for p.pos < len(p.lines) && p.lines[p.pos].indent > headerIndent && guard < maxPythonIterations {
		guard++
		stmt := p.parseStatement()
		if stmt != nil {
			body = append(body, stmt)
		}
	}
	if len(body) == 0 {
		return nil
	}
	return body
}

func (p *PythonParser) current() pyLine { return p.lines[p.pos] }

func (p *PythonParser) parseStatement() ir.Stmt {
	if p.pos >= len(p.lines) {
		return nil
	}
	line := p.current()
	toks := line.tokens
	if len(toks) == 0 {
		p.pos++
		return nil
	}

	if toks[0].Kind == token.COMMENT {
		p.pos++
		return &ir.Comment{Text: strings.TrimPrefix(toks[0].Literal, "#")}
	}

	first := toks[0]
	if first.Kind == token.KEYWORD {
		switch first.Literal {
		case "import", "from":
			p.imports = append(p.imports, joinLiterals(toks))
			p.pos++
			return nil
		case "pass":
			p.pos++
			return nil
		case "break":
			p.pos++
			return &ir.Break{}
		case "return":
			p.pos++
			ep := newExprParser(toks[1:])
			if len(toks) == 1 {
				return &ir.Return{}
			}
			return &ir.Return{Value: ep.parseExpr(0)}
		case "def":
			return p.parseFunctionDef(line.indent)
		case "class":
			return p.parseClassDef(line.indent)
		case "if":
			return p.parseIf(line.indent)
		case "for":
			return p.parseFor(line.indent)
		case "while":
			return p.parseWhile(line.indent)
		case "print":
			p.pos++
			return p.parsePrintFromTokens(toks)
		}
	}

	// Assignment or expression statement.
	stmt := p.parseSimpleStatement(toks)
	p.pos++
	return stmt
}

func joinLiterals(toks []token.Token) string {
	var sb strings.Builder
	for i, t := range toks {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Literal)
	}
	return sb.String()
}

func (p *PythonParser) parseSimpleStatement(toks []token.Token) ir.Stmt {
	// Look for a top-level assignment operator (not inside parens).
	depth := 0
	for i, t := range toks {
		if t.Kind == token.PUNCTUATION && t.Literal == "(" {
			depth++
		}
		if t.Kind == token.PUNCTUATION && t.Literal == ")" {
			depth--
		}
		if depth == 0 && ((t.Kind == token.PUNCTUATION && t.Literal == "=") ||
			(t.Kind == token.OPERATOR && isCompoundAssign(t.Literal))) {
			target := joinDotted(toks[:i])
			op := t.Literal
			valueToks := toks[i+1:]

			if op == "=" {
				if inputStmt, ok := parseInputAssignment(target, valueToks); ok {
					p.declared[target] = true
					return inputStmt
				}
			}

			ep := newExprParser(valueToks)
			value := ep.parseExpr(0)

			if op == "=" && !p.declared[target] && !strings.Contains(target, ".") {
				p.declared[target] = true
				return &ir.Variable{Name: target, Type: inferExprType(value), Initializer: value}
			}
			if op == "=" && strings.HasPrefix(target, "self.") {
				field := strings.TrimPrefix(target, "self.")
				if !p.declared["self."+field] {
					p.declared["self."+field] = true
				}
			}
			return &ir.Assignment{Target: target, Op: op, Value: value}
		}
	}

	// A postfix statement like x += 1 is already handled above; a bare
	// expression statement (e.g. a call) falls through here.
	ep := newExprParser(toks)
	expr := ep.parseExpr(0)
	if call, ok := expr.(*ir.Call); ok {
		return call
	}
	if p.logger != nil {
		p.logger.Debug("python parser: unsupported statement", "line", toks[0].Line)
	}
	return &ir.Comment{Text: "unsupported statement"}
}

// parseInputAssignment recognizes "target = input(prompt?)" and its
// int()/float() type-conversion wrapping, producing an Input statement
// per spec §4.2.1 rather than an Assignment-of-Call, since Input is a
// statement-kind node in the IR.
func parseInputAssignment(target string, valueToks []token.Token) (*ir.Input, bool) {
	toks := valueToks
	wantType := ir.String
	if len(toks) >= 2 && (toks[0].Literal == "int" || toks[0].Literal == "float") && toks[1].Literal == "(" {
		if toks[0].Literal == "int" {
			wantType = ir.Int
		} else {
			wantType = ir.Float
		}
		if toks[len(toks)-1].Literal == ")" {
			toks = toks[2 : len(toks)-1]
		}
	}
	if len(toks) == 0 || toks[0].Literal != "input" {
		return nil, false
	}
	prompt := ""
	hasPrompt := false
	if len(toks) >= 2 && toks[1].Literal == "(" {
		inner := toks[2:]
		if len(inner) > 0 && inner[len(inner)-1].Literal == ")" {
			inner = inner[:len(inner)-1]
		}
		if len(inner) == 1 && inner[0].Kind == token.STRING {
			prompt = inner[0].Literal
			hasPrompt = true
		}
	}
	return &ir.Input{Prompt: prompt, HasPrompt: hasPrompt, Target: target, TargetType: wantType}, true
}

func isCompoundAssign(op string) bool {
	switch op {
	case "+=", "-=", "*=", "/=":
		return true
	}
	return false
}

func joinDotted(toks []token.Token) string {
	var sb strings.Builder
	for _, t := range toks {
		sb.WriteString(t.Literal)
	}
	return sb.String()
}

func (p *PythonParser) parsePrintFromTokens(toks []token.Token) ir.Stmt {
	// toks[0] is "print"; expect "(" args... ")".
	if len(toks) < 2 || toks[1].Literal != "(" {
		return &ir.Print{Newline: true}
	}
	depth := 0
	var argToks [][]token.Token
	var cur []token.Token
	end := len(toks)
	for i := 1; i < len(toks); i++ {
		t := toks[i]
		if t.Literal == "(" {
			depth++
			if depth == 1 {
				continue
			}
		}
		if t.Literal == ")" {
			depth--
			if depth == 0 {
				end = i
				break
			}
		}
		if depth == 1 && t.Literal == "," {
			argToks = append(argToks, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 || len(argToks) > 0 {
		argToks = append(argToks, cur)
	}
	_ = end

	var args []ir.Expr
	newline := true
	for _, at := range argToks {
		if len(at) == 0 {
			continue
		}
		// Keyword arguments end= / sep= are accepted and discarded (spec
		// §4.2.1); their value is not represented in the IR.
		if len(at) >= 2 && at[0].Kind == token.IDENTIFIER && at[1].Literal == "=" &&
			(at[0].Literal == "end" || at[0].Literal == "sep") {
			continue
		}
		// A lone interpolated f-string argument is decomposed into its
		// literal/{name} segments right here (spec §4.1/§4.2.1) rather
		// than kept as one opaque string literal, so every emitter can
		// re-lower it into its own native form.
		if len(at) == 1 && at[0].Kind == token.STRING && strings.HasPrefix(at[0].Literal, "f\x00") {
			args = append(args, decomposeInterpolatedArgs(strings.TrimPrefix(at[0].Literal, "f\x00"))...)
			continue
		}
		ep := newExprParser(at)
		args = append(args, ep.parseExpr(0))
	}
	return &ir.Print{Args: args, Newline: newline}
}

// decomposeInterpolatedArgs turns an f-string's segments into a flat
// Print argument list: literal text becomes a string Literal, each
// {name} placeholder becomes an Identifier referencing that name.
func decomposeInterpolatedArgs(literal string) []ir.Expr {
	segs := idiom.DecomposeInterpolated(literal)
	args := make([]ir.Expr, 0, len(segs))
	for _, seg := range segs {
		if seg.IsValue {
			args = append(args, &ir.Identifier{Name: seg.Directive})
		} else {
			args = append(args, &ir.Literal{Value: seg.Text, Type: ir.String})
		}
	}
	return args
}

func (p *PythonParser) parseFunctionDef(headerIndent int) ir.Stmt {
	toks := p.current().tokens
	p.pos++
	// toks: def NAME ( params ) :
	name := ""
	if len(toks) > 1 {
		name = toks[1].Literal
	}
	params := p.parseParamList(toks)
	saved := p.declared
	p.declared = map[string]bool{}
	body := p.parseBlock(headerIndent)
	p.declared = saved

	if name == ir.InitName {
		// Constructor bodies are folded into the enclosing Class by
		// parseClassDef; surface it as a plain Function here too so a
		// stray top-level __init__ still round-trips.
	}
	return &ir.Function{Name: name, Params: params, ReturnType: ir.Auto, Body: body}
}

func (p *PythonParser) parseParamList(headerToks []token.Token) []*ir.Variable {
	var params []*ir.Variable
	depth := 0
	var cur []token.Token
	started := false
	for _, t := range headerToks {
		if t.Literal == "(" {
			depth++
			if depth == 1 {
				started = true
				continue
			}
		}
		if t.Literal == ")" {
			depth--
			if depth == 0 {
				break
			}
		}
		if !started {
			continue
		}
		if depth == 1 && t.Literal == "," {
			if len(cur) > 0 {
				params = append(params, paramFromTokens(cur))
			}
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 {
		params = append(params, paramFromTokens(cur))
	}
	// Drop the leading self parameter; the scripting language's explicit
	// self is not surfaced in method signatures elsewhere (spec §9).
	if len(params) > 0 && params[0].Name == "self" {
		params = params[1:]
	}
	return params
}

func paramFromTokens(toks []token.Token) *ir.Variable {
	name := toks[0].Literal
	typ := ir.Auto
	if len(toks) >= 3 && toks[1].Literal == ":" {
		typ = pythonTypeHint(toks[2].Literal)
	}
	return &ir.Variable{Name: name, Type: typ}
}

func pythonTypeHint(name string) ir.DataType {
	switch name {
	case "int":
		return ir.Int
	case "float":
		return ir.Float
	case "str":
		return ir.String
	case "bool":
		return ir.Bool
	default:
		return ir.Auto
	}
}

func (p *PythonParser) parseClassDef(headerIndent int) ir.Stmt {
	toks := p.current().tokens
	p.pos++
	name := ""
	if len(toks) > 1 {
		name = toks[1].Literal
	}

	class := &ir.Class{Name: name}
	saved := p.declared
	p.declared = map[string]bool{}
	guard := 0
	for p.pos < len(p.lines) && p.lines[p.pos].indent > headerIndent && guard < maxPythonIterations {
		guard++
		bodyLine := p.current()
		if len(bodyLine.tokens) > 0 && bodyLine.tokens[0].Literal == "def" {
			method := p.parseFunctionDefAsMethod(bodyLine.indent, class)
			if method.Name == ir.InitName {
				class.Constructor = method
				promoteSelfFields(class, method)
			} else {
				class.Methods = append(class.Methods, method)
			}
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			if v, ok := stmt.(*ir.Variable); ok {
				class.Members = append(class.Members, v)
			}
		}
	}
	p.declared = saved
	return class
}

func (p *PythonParser) parseFunctionDefAsMethod(headerIndent int, class *ir.Class) *ir.Function {
	toks := p.current().tokens
	p.pos++
	name := ""
	if len(toks) > 1 {
		name = toks[1].Literal
	}
	params := p.parseParamList(toks)
	saved := p.declared
	p.declared = map[string]bool{}
	body := p.parseBlock(headerIndent)
	p.declared = saved
	return &ir.Function{Name: name, Params: params, ReturnType: ir.Auto, Body: body}
}

// promoteSelfFields scans a constructor body for "self.x = ..."
// statements and adds x to the class member list with type auto, per
// spec §4.2.1.
func promoteSelfFields(class *ir.Class, ctor *ir.Function) {
	seen := map[string]bool{}
	for _, m := range class.Members {
		seen[m.Name] = true
	}
	var scan func(stmts []ir.Stmt)
	scan = func(stmts []ir.Stmt) {
		for _, s := range stmts {
			if a, ok := s.(*ir.Assignment); ok && strings.HasPrefix(a.Target, "self.") {
				field := strings.TrimPrefix(a.Target, "self.")
				if !seen[field] {
					seen[field] = true
					class.Members = append(class.Members, &ir.Variable{Name: field, Type: inferExprType(a.Value)})
				}
			}
		}
	}
	scan(ctor.Body)
}

func (p *PythonParser) parseIf(headerIndent int) ir.Stmt {
	toks := p.current().tokens
	p.pos++
	// toks: if COND :
	condToks := stripTrailingColon(toks[1:])
	ep := newExprParser(condToks)
	cond := ep.parseExpr(0)
	then := p.parseBlock(headerIndent)

	node := &ir.If{Condition: cond, Then: then}
	if p.pos < len(p.lines) && p.lines[p.pos].indent == headerIndent {
		next := p.current().tokens
		if len(next) > 0 && next[0].Literal == "elif" {
			// Re-tag as "if" so parseIf's own logic can run recursively.
			p.lines[p.pos].tokens[0] = token.Token{Kind: token.KEYWORD, Literal: "if", Line: next[0].Line, Column: next[0].Column}
			node.ElseIf = p.parseIf(headerIndent).(*ir.If)
			return node
		}
		if len(next) > 0 && next[0].Literal == "else" {
			p.pos++
			node.Else = p.parseBlock(headerIndent)
		}
	}
	return node
}

func stripTrailingColon(toks []token.Token) []token.Token {
	if len(toks) > 0 && toks[len(toks)-1].Literal == ":" {
		return toks[:len(toks)-1]
	}
	return toks
}

func (p *PythonParser) parseFor(headerIndent int) ir.Stmt {
	toks := p.current().tokens
	p.pos++
	// toks: for IDENT in range( ... ) :
	iter := ""
	if len(toks) > 1 {
		iter = toks[1].Literal
	}
	body := p.parseBlock(headerIndent)
	p.declared[iter] = true

	forNode := &ir.For{Body: body}
	// find "range" call among toks
	rangeIdx := -1
	for i, t := range toks {
		if t.Literal == "range" {
			rangeIdx = i
			break
		}
	}
	if rangeIdx == -1 {
		return forNode
	}
	closeIdx := len(toks) - 1
	if len(toks) > 0 && toks[len(toks)-1].Literal == ":" {
		closeIdx = len(toks) - 2
	}
	argToks := toks[rangeIdx+2 : closeIdx] // skip "range" "("
	args := splitOnTopLevelComma(argToks)

	forNode.HasRange = true
	forNode.RangeIter = iter
	switch len(args) {
	case 1:
		forNode.RangeStart = &ir.Literal{Value: int64(0), Type: ir.Int}
		forNode.RangeEnd = newExprParser(args[0]).parseExpr(0)
		forNode.RangeStep = &ir.Literal{Value: int64(1), Type: ir.Int}
	case 2:
		forNode.RangeStart = newExprParser(args[0]).parseExpr(0)
		forNode.RangeEnd = newExprParser(args[1]).parseExpr(0)
		forNode.RangeStep = &ir.Literal{Value: int64(1), Type: ir.Int}
	case 3:
		forNode.RangeStart = newExprParser(args[0]).parseExpr(0)
		forNode.RangeEnd = newExprParser(args[1]).parseExpr(0)
		forNode.RangeStep = newExprParser(args[2]).parseExpr(0)
	}
	return forNode
}

func splitOnTopLevelComma(toks []token.Token) [][]token.Token {
	var out [][]token.Token
	var cur []token.Token
	depth := 0
	for _, t := range toks {
		if t.Literal == "(" {
			depth++
		}
		if t.Literal == ")" {
			depth--
		}
		if depth == 0 && t.Literal == "," {
			out = append(out, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func (p *PythonParser) parseWhile(headerIndent int) ir.Stmt {
	toks := p.current().tokens
	p.pos++
	condToks := stripTrailingColon(toks[1:])
	cond := newExprParser(condToks).parseExpr(0)
	body := p.parseBlock(headerIndent)
	return &ir.While{Condition: cond, Body: body}
}

// --- expression parsing ---

type pyExprParser struct {
	toks []token.Token
	pos  int
}

func newExprParser(toks []token.Token) *pyExprParser {
	return &pyExprParser{toks: toks}
}

func (ep *pyExprParser) peek() token.Token {
	if ep.pos >= len(ep.toks) {
		return token.Token{Kind: token.EOF}
	}
	return ep.toks[ep.pos]
}

func (ep *pyExprParser) advance() token.Token {
	t := ep.peek()
	ep.pos++
	return t
}

var pyBinPrec = map[string]int{
	"or": 1, "and": 2,
	"==": 3, "!=": 3, "<": 3, "<=": 3, ">": 3, ">=": 3,
	"+": 4, "-": 4,
	"*": 5, "/": 5, "%": 5,
}

func (ep *pyExprParser) parseExpr(minPrec int) ir.Expr {
	left := ep.parseUnary()
	for {
		t := ep.peek()
		op := t.Literal
		prec, ok := pyBinPrec[op]
		if !ok || prec < minPrec {
			return left
		}
		ep.advance()
		right := ep.parseExpr(prec + 1)
		op = normalizeLogical(op)
		left = &ir.BinaryOp{Op: op, Left: left, Right: right, Type: inferBinaryType(op, left, right)}
	}
}

func normalizeLogical(op string) string {
	switch op {
	case "and":
		return "&&"
	case "or":
		return "||"
	default:
		return op
	}
}

func (ep *pyExprParser) parseUnary() ir.Expr {
	t := ep.peek()
	if t.Literal == "not" || t.Literal == "-" {
		ep.advance()
		operand := ep.parseUnary()
		op := t.Literal
		if op == "not" {
			op = "!"
		}
		return &ir.UnaryOp{Op: op, Operand: operand}
	}
	return ep.parsePostfix()
}

func (ep *pyExprParser) parsePostfix() ir.Expr {
	expr := ep.parsePrimary()
	for {
		t := ep.peek()
		if t.Literal == "." {
			ep.advance()
			field := ep.advance().Literal
			if id, ok := expr.(*ir.Identifier); ok {
				expr = &ir.Identifier{Name: id.Name + "." + field}
			} else {
				expr = &ir.Identifier{Name: field}
			}
			continue
		}
		if t.Literal == "(" && isCallable(expr) {
			ep.advance()
			var args []ir.Expr
			for ep.peek().Literal != ")" && ep.peek().Kind != token.EOF {
				args = append(args, ep.parseExpr(0))
				if ep.peek().Literal == "," {
					ep.advance()
				}
			}
			if ep.peek().Literal == ")" {
				ep.advance()
			}
			id, _ := expr.(*ir.Identifier)
			name := ""
			if id != nil {
				name = id.Name
			}
			expr = &ir.Call{Callee: name, Args: args, Type: builtinCallType(name)}
			continue
		}
		break
	}
	return expr
}

func isCallable(e ir.Expr) bool {
	_, ok := e.(*ir.Identifier)
	return ok
}

func builtinCallType(name string) ir.DataType {
	switch name {
	case "int":
		return ir.Int
	case "float":
		return ir.Float
	case "str":
		return ir.String
	case "input":
		return ir.String
	default:
		return ir.Auto
	}
}

func (ep *pyExprParser) parsePrimary() ir.Expr {
	t := ep.advance()
	switch {
	case t.Kind == token.NUMBER:
		if strings.Contains(t.Literal, ".") {
			f, _ := strconv.ParseFloat(t.Literal, 64)
			return &ir.Literal{Value: f, Type: ir.Float}
		}
		n, _ := strconv.ParseInt(t.Literal, 10, 64)
		return &ir.Literal{Value: n, Type: ir.Int}
	case t.Kind == token.STRING:
		lit := t.Literal
		if strings.HasPrefix(lit, "f\x00") {
			lit = strings.TrimPrefix(lit, "f\x00")
		}
		return &ir.Literal{Value: lit, Type: ir.String}
	case t.Literal == "True":
		return &ir.Literal{Value: true, Type: ir.Bool}
	case t.Literal == "False":
		return &ir.Literal{Value: false, Type: ir.Bool}
	case t.Literal == "None":
		return &ir.Literal{Value: nil, Type: ir.Auto}
	case t.Literal == "input":
		// input(prompt?) in value position becomes a Call to the
		// placeholder callee "__input__" whose one argument is the prompt
		// ("" when absent) and whose IsMethod records whether a prompt
		// was given. No Input node is produced here; the statement form
		// "x = input(...)" is handled by parseInputAssignment.
		prompt := ""
		hasPrompt := false
		if ep.peek().Literal == "(" {
			ep.advance()
			if ep.peek().Kind == token.STRING {
				prompt = ep.advance().Literal
				hasPrompt = true
			}
			if ep.peek().Literal == ")" {
				ep.advance()
			}
		}
		return &ir.Call{Callee: "__input__", Args: []ir.Expr{&ir.Literal{Value: prompt, Type: ir.String}}, Type: ir.String, IsMethod: hasPrompt}
	case t.Literal == "(":
		inner := ep.parseExpr(0)
		if ep.peek().Literal == ")" {
			ep.advance()
		}
		return inner
	case t.Kind == token.IDENTIFIER || t.Kind == token.KEYWORD:
		return &ir.Identifier{Name: t.Literal}
	default:
		return &ir.Literal{Value: nil, Type: ir.Auto}
	}
}

func inferExprType(e ir.Expr) ir.DataType {
	switch n := e.(type) {
	case *ir.Literal:
		return n.Type
	case *ir.BinaryOp:
		return n.Type
	case *ir.Call:
		return n.Type
	default:
		return ir.Auto
	}
}

func inferBinaryType(op string, left, right ir.Expr) ir.DataType {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=", "&&", "||":
		return ir.Bool
	}
	lt, rt := inferExprType(left), inferExprType(right)
	if op == "+" && (lt == ir.String || rt == ir.String) {
		return ir.String
	}
	if lt == ir.Float || rt == ir.Float || lt == ir.Double || rt == ir.Double {
		return ir.Float
	}
	return ir.Int
}
