package ir

// IsEntryPointShell reports whether c has no representable content
// beyond a static entry point: no members, no instance methods, no
// constructor, and a non-nil MainMethod. StaticMethods are permitted —
// the C, CPP and Python emitters flatten them into free functions
// alongside the entry point; the Java emitter keeps the class.
func IsEntryPointShell(c *Class) bool {
	return c != nil &&
		len(c.Members) == 0 &&
		len(c.Methods) == 0 &&
		c.Constructor == nil &&
		c.MainMethod != nil
}

// HasNonTrivialClass reports whether prog contains a Class with any
// members, instance methods, or constructor that is not merely an
// entry-point shell (spec §4.3's definition, used by the orchestrator's
// class-less-C guard).
func HasNonTrivialClass(prog *Program) bool {
	found := false
	Walk(prog.Body, func(s Stmt) bool {
		if found {
			return false
		}
		if c, ok := s.(*Class); ok && !IsEntryPointShell(c) {
			found = true
			return false
		}
		return true
	})
	return found
}

// FindMainFunction returns a top-level Function named "main", if any.
// Only prog.Body is searched; a class-attached MainMethod is not
// returned.
func FindMainFunction(prog *Program) *Function {
	for _, s := range prog.Body {
		if f, ok := s.(*Function); ok && f.Name == "main" {
			return f
		}
	}
	return nil
}
