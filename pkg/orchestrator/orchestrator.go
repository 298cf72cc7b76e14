// Package orchestrator wires the four front-ends and four back-ends
// into a single Transpile entry point, following the teacher's
// constructor-injected, reusable-instance pattern (grounded on
// pkg/compiler.Compiler).
package orchestrator

import (
	"fmt"
	"log/slog"

	"github.com/rhino1998/polyglot/pkg/emitter"
	"github.com/rhino1998/polyglot/pkg/ir"
	"github.com/rhino1998/polyglot/pkg/parser"
	"github.com/rhino1998/polyglot/pkg/token"
)

// TranspileResult carries one source's translation into every
// supported language, including a re-emission in the source language
// itself (which serves as a canonicalizer and self-check, spec §5),
// plus any diagnostics accumulated along the way.
type TranspileResult struct {
	Outputs map[token.Language]string
	Success bool
	Errors  []string
}

// Transpiler holds one parser dispatch closure and one emitter
// instance per language, constructed once and reused across calls
// (spec §5): front-ends and back-ends carry no cross-call state of
// their own, so reuse is safe.
type Transpiler struct {
	logger *slog.Logger

	parsers map[token.Language]func(*slog.Logger, string) *ir.Program

	pyEmitter  *emitter.PythonEmitter
	cEmitter   *emitter.CEmitter
	cppEmitter *emitter.CPPEmitter
	jvEmitter  *emitter.JavaEmitter
}

func New(logger *slog.Logger) *Transpiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transpiler{
		logger: logger,
		parsers: map[token.Language]func(*slog.Logger, string) *ir.Program{
			token.Python: parser.ParsePython,
			token.C:      parser.ParseC,
			token.CPP:    parser.ParseCPP,
			token.Java:   parser.ParseJava,
		},
		pyEmitter:  emitter.NewPythonEmitter(),
		cEmitter:   emitter.NewCEmitter(),
		cppEmitter: emitter.NewCPPEmitter(),
		jvEmitter:  emitter.NewJavaEmitter(),
	}
}

// Transpile parses source (written in sourceLang) into the shared IR
// and emits it in every supported language, the source language itself
// included. It never returns an
// error itself — a source-side or target-side problem surfaces as a
// non-empty TranspileResult.Errors with Success=false, per spec §5's
// never-abort contract.
func (t *Transpiler) Transpile(source string, sourceLang token.Language) *TranspileResult {
	errs := &ErrorSet{}
	parseFn, ok := t.parsers[sourceLang]
	if !ok {
		errs.Add(fmt.Errorf("unsupported source language: %s", sourceLang))
		return &TranspileResult{Outputs: map[token.Language]string{}, Errors: errs.Strings()}
	}

	prog := parseFn(t.logger, source)
	t.logger.Debug("parsed source", "language", sourceLang, "statements", len(prog.Body))

	outputs := map[token.Language]string{}
	for _, target := range token.Languages() {
		if target == token.C && ir.HasNonTrivialClass(prog) {
			// C has no class construct: spec §4.3/§4.4 requires this be
			// reported in-band, not as an error — the C field carries
			// exactly this sentinel and nothing else.
			outputs[target] = "// C does not support classes"
			continue
		}
		out, err := t.safeEmit(target, prog)
		if err != nil {
			errs.Add(fmt.Errorf("%s generation error: %w", target, err))
		}
		outputs[target] = out
	}

	return &TranspileResult{
		Outputs: outputs,
		Success: errs.Empty(),
		Errors:  errs.Strings(),
	}
}

// safeEmit invokes the target's emitter, recovering a panic into an
// error rather than letting one malformed target abort the other three
// (spec §4.3/§7: "An emitter may throw; the orchestrator catches and
// records a per-target error").
func (t *Transpiler) safeEmit(target token.Language, prog *ir.Program) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return t.emit(target, prog), nil
}

func (t *Transpiler) emit(target token.Language, prog *ir.Program) string {
	switch target {
	case token.Python:
		return t.pyEmitter.Emit(prog)
	case token.C:
		return t.cEmitter.Emit(prog)
	case token.CPP:
		return t.cppEmitter.Emit(prog)
	case token.Java:
		return t.jvEmitter.Emit(prog)
	default:
		return ""
	}
}
