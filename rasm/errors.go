package rasm

import "fmt"

// AssemblyError reports a fatal assembly failure together with the
// offending source line. Assembly either produces a complete byte stream
// or fails with exactly one of these — never a partial result.
type AssemblyError struct {
	Line int
	Text string
	Msg  string
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("line %d: %s (source: %q)", e.Line, e.Msg, e.Text)
}
