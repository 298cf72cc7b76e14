package emitter

import "strings"

// indentUnit is the shared 4-space indentation step used by every
// emitter (spec §4.3).
const indentUnit = "    "

func indent(depth int) string {
	return strings.Repeat(indentUnit, depth)
}
