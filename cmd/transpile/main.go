package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rhino1998/polyglot/internal/config"
	"github.com/rhino1998/polyglot/internal/review"
	"github.com/rhino1998/polyglot/internal/sandbox"
	"github.com/rhino1998/polyglot/pkg/emitter"
	"github.com/rhino1998/polyglot/pkg/ir"
	"github.com/rhino1998/polyglot/pkg/orchestrator"
	"github.com/rhino1998/polyglot/pkg/parser"
	"github.com/rhino1998/polyglot/pkg/token"
	"github.com/urfave/cli/v3"
)

// parseFuncs dispatches a language to its front-end, mirroring
// orchestrator.New's table so `check` can re-parse a self-emission
// without going through a second full Transpile call.
var parseFuncs = map[token.Language]func(*slog.Logger, string) *ir.Program{
	token.Python: parser.ParsePython,
	token.C:      parser.ParseC,
	token.CPP:    parser.ParseCPP,
	token.Java:   parser.ParseJava,
}

func emitInLanguage(lang token.Language, prog *ir.Program) string {
	switch lang {
	case token.Python:
		return emitter.NewPythonEmitter().Emit(prog)
	case token.C:
		return emitter.NewCEmitter().Emit(prog)
	case token.CPP:
		return emitter.NewCPPEmitter().Emit(prog)
	case token.Java:
		return emitter.NewJavaEmitter().Emit(prog)
	default:
		return ""
	}
}

// stmtKindCounts tallies statement kinds reachable from stmts so a
// round trip can be judged on IR shape rather than exact source text.
func stmtKindCounts(stmts []ir.Stmt) map[string]int {
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

func languageFlagValue(name string) (token.Language, error) {
	switch name {
	case "python", "py":
		return token.Python, nil
	case "c":
		return token.C, nil
	case "cpp", "c++":
		return token.CPP, nil
	case "java", "jv":
		return token.Java, nil
	default:
		return "", fmt.Errorf("unknown language %q", name)
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := &cli.Command{
		Name:  "transpile",
		Usage: "The Polyglot transpiler",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Transpile a source file into every supported language, the source language included",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Required: true, Usage: "source language (python, c, cpp, java)"},
					&cli.StringFlag{Name: "out", Usage: "output directory (default: stdout)"},
					&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}},
					&cli.BoolFlag{Name: "sandbox", Usage: "execute each translation via the configured sandbox endpoint"},
					&cli.BoolFlag{Name: "review", Usage: "submit each translation to the configured review endpoint"},
					&cli.StringFlag{Name: "config", Usage: "path to a YAML config file for sandbox/review endpoints"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("must provide exactly one source file as argument")
					}

					level := slog.LevelInfo
					if c.Bool("debug") {
						level = slog.LevelDebug
					}
					logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

					srcLang, err := languageFlagValue(c.String("from"))
					if err != nil {
						return err
					}

					path := c.Args().First()
					data, err := os.ReadFile(path)
					if err != nil {
						return fmt.Errorf("failed to read source file: %w", err)
					}

					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}
					if err := cfg.Validate(logger); err != nil {
						return err
					}

					result := orchestrator.New(logger).Transpile(string(data), srcLang)

					for _, e := range result.Errors {
						fmt.Fprintln(os.Stderr, "warning:", e)
					}

					outDir := c.String("out")
					for lang, source := range result.Outputs {
						if outDir == "" {
							fmt.Printf("=== %s ===\n%s\n", lang, source)
							continue
						}
						if err := os.MkdirAll(outDir, 0o755); err != nil {
							return fmt.Errorf("failed to create output directory: %w", err)
						}
						outPath := outDir + "/" + string(lang) + outputExt(lang)
						if err := os.WriteFile(outPath, []byte(source), 0o644); err != nil {
							return fmt.Errorf("failed to write %s: %w", outPath, err)
						}
					}

					if c.Bool("sandbox") {
						sc := sandbox.New(logger, http.DefaultClient, cfg.Sandbox.Endpoint)
						for lang, source := range result.Outputs {
							runResult, err := sc.Run(ctx, string(lang), "latest", []sandbox.File{{Name: "main" + outputExt(lang), Content: source}})
							if err != nil {
								logger.Warn("sandbox run failed", "language", lang, "error", err)
								continue
							}
							fmt.Printf("--- sandbox(%s) exit=%d ---\n%s%s\n", lang, runResult.ExitCode, runResult.Stdout, runResult.Stderr)
						}
					}

					if c.Bool("review") {
						rc := review.New(logger, http.DefaultClient, cfg.Review.Endpoint, cfg.Review.Model, cfg.Review.APIKey)
						for lang, source := range result.Outputs {
							reviewResult, err := rc.Review(ctx, string(data), source, srcLang, lang)
							if err != nil {
								logger.Warn("review request failed", "language", lang, "error", err)
								continue
							}
							if len(reviewResult.Issues) > 0 {
								fmt.Printf("--- review(%s) issues ---\n", lang)
								for _, issue := range reviewResult.Issues {
									fmt.Println("- " + issue)
								}
							}
						}
					}

					return nil
				},
			},
			{
				Name:  "check",
				Usage: "Round-trip a source file through the IR and report whether it survives idempotently",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Required: true, Usage: "source language (python, c, cpp, java)"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("must provide exactly one source file as argument")
					}

					srcLang, err := languageFlagValue(c.String("from"))
					if err != nil {
						return err
					}

					path := c.Args().First()
					data, err := os.ReadFile(path)
					if err != nil {
						return fmt.Errorf("failed to read source file: %w", err)
					}

					logger := slog.Default()

					// Parse the source, emit it back in its own language,
					// and re-parse that emission: the source language's
					// output serves as a canonicalizer, so its IR shape
					// after a round trip must match the original parse
					// (spec §5/§8 idempotency self-check).
					parseFn, ok := parseFuncs[srcLang]
					if !ok {
						return fmt.Errorf("unsupported source language: %s", srcLang)
					}

					first := parseFn(logger, string(data))
					reemitted := emitInLanguage(srcLang, first)
					second := parseFn(logger, reemitted)

					before := stmtKindCounts(first.Body)
					after := stmtKindCounts(second.Body)

					stable := len(before) == len(after)
					for kind, count := range before {
						if after[kind] != count {
							stable = false
							fmt.Printf("unstable %s count: %d before, %d after\n", kind, count, after[kind])
						}
					}
					for kind, count := range after {
						if _, ok := before[kind]; !ok {
							stable = false
							fmt.Printf("unstable %s count: 0 before, %d after\n", kind, count)
						}
					}
					if stable {
						fmt.Println("check: stable")
					}
					return nil
				},
			},
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatalln(err)
	}
}

func outputExt(lang token.Language) string {
	switch lang {
	case token.Python:
		return ".py"
	case token.C:
		return ".c"
	case token.CPP:
		return ".cpp"
	case token.Java:
		return ".java"
	default:
		return ".txt"
	}
}
