package ir

// DeclaredTypes walks prog and returns every name's declared DataType,
// gathered from Variable declarations, function/method parameters, and
// Input targets. Emitters consult this instead of guessing a type from
// an Identifier alone, which carries none of its own (spec §4.3's
// analyze pre-pass).
func DeclaredTypes(prog *Program) map[string]DataType {
	env := map[string]DataType{}
	addParams := func(fn *Function) {
		if fn == nil {
			return
		}
		for _, p := range fn.Params {
			env[p.Name] = p.Type
		}
	}
	Walk(prog.Body, func(s Stmt) bool {
		switch n := s.(type) {
		case *Variable:
			env[n.Name] = n.Type
		case *Input:
			env[n.Target] = n.TargetType
		case *Function:
			addParams(n)
		case *Class:
			addParams(n.Constructor)
			for _, m := range n.Methods {
				addParams(m)
			}
			for _, m := range n.StaticMethods {
				addParams(m)
			}
			addParams(n.MainMethod)
		}
		return true
	})
	return env
}
