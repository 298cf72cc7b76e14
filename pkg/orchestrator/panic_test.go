package orchestrator

import (
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/rhino1998/polyglot/pkg/ir"
	"github.com/rhino1998/polyglot/pkg/token"
	"github.com/stretchr/testify/require"
)

// TestSafeEmit_RecoversPanicIntoError feeds the CPP emitter a
// malformed constructor parameter list (a nil *ir.Variable, the kind
// of partial IR a deliberately lenient parser can hand an emitter per
// spec §7) and checks the panic it triggers is caught rather than
// propagated.
func TestSafeEmit_RecoversPanicIntoError(t *testing.T) {
	r := require.New(t)
	tr := New(slogt.New(t))
	prog := &ir.Program{Body: []ir.Stmt{&ir.Class{
		Name:        "P",
		Constructor: &ir.Function{Params: []*ir.Variable{nil}},
	}}}

	out, err := tr.safeEmit(token.CPP, prog)
	r.Error(err)
	r.Empty(out)
}
