package rail

import (
	"bufio"
	"fmt"
	"os"
)

// IOSink receives every byte written to register 15 while IO-print is
// enabled on that VM instance. It is the only externally observable side
// effect the VM produces (see spec §6.4).
type IOSink func(value byte)

// StdoutSink returns an IOSink that writes each byte as a decimal line to
// w, flushing after every write so output interleaves predictably with a
// host's own printing (the teacher's VM flushes stdout after every
// `writec`; this is the equivalent contract for Rail's IO register).
func StdoutSink(w *bufio.Writer) IOSink {
	return func(value byte) {
		fmt.Fprintf(w, "%d\n", value)
		w.Flush()
	}
}

// DefaultStdoutSink is StdoutSink wired to os.Stdout, the sink the CLI
// installs unless a caller supplies its own.
func DefaultStdoutSink() IOSink {
	return StdoutSink(bufio.NewWriter(os.Stdout))
}
