package transport

import (
	"fmt"
	"io"
)

// dumpHex is the shared diagnostic every adapter's DumpData delegates
// to, grounded on RCX_Transport::DumpData in the original source: a
// single line listing every byte in hex. The original emits a C
// initializer fragment (`nqc_data[n] = new BYTE[...] {...}`) intended to
// be pasted back into the original codebase's own test fixtures; this
// repo has no equivalent fixture format to target, so it keeps the
// "one line, comma-separated hex bytes" shape without the C syntax.
func dumpHex(w io.Writer, data []byte, omitHeader bool) {
	if !omitHeader {
		fmt.Fprintf(w, "dump[%d] = {", len(data))
	}
	for i, b := range data {
		if i > 0 {
			fmt.Fprint(w, ", ")
		}
		fmt.Fprintf(w, "0x%02x", b)
	}
	if !omitHeader {
		fmt.Fprint(w, "}\n")
	} else {
		fmt.Fprint(w, "\n")
	}
}
