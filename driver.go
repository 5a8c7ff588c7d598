package lisp

import (
	"fmt"
	"io"
)

// RunDriver implements the read -> evaluate -> (print) -> collect loop
// of spec §4/§6/§H: in interactive mode it prints a prompt before each
// read and the result of each form, and continues past errors; in
// batch mode it is silent on success and stops at the first uncaught
// signal. It returns the process exit code (spec §6).
//
// Grounded on the teacher's own `for { reader := bufio.NewReader(...)
// ...}` REPL loop in its CLI entry point, adapted here to read one
// S-expression per iteration (via Reader.ReadForm) instead of one
// line of grammar source.
func RunDriver(input io.Reader, out io.Writer, interactive bool) int {
	prevStdout := Stdout
	Stdout = out
	defer func() { Stdout = prevStdout }()

	heap := NewHeap()
	interner := NewInterner(heap)
	env := NewEnv()
	ev := NewEvaluator(heap, interner, env)
	reader := NewReader(heap, interner, input)
	ev.Reader = reader

	for {
		if interactive {
			fmt.Fprint(out, ">>> ")
		}

		form, atEOF, sig := reader.ReadForm()
		if atEOF {
			return 0
		}
		if sig != nil {
			fmt.Fprintf(out, "ERROR: %s\n", Stringify(sig.Cons(heap, interner)))
			if !interactive {
				return 1
			}
			continue
		}

		result := ev.Eval(form)
		if ev.Pending() {
			s := ev.TakeSignal()
			fmt.Fprintf(out, "ERROR: %s\n", Stringify(s.Cons(heap, interner)))
			if !interactive {
				return 1
			}
		} else if interactive {
			fmt.Fprintln(out, Stringify(result))
		}

		ev.CollectGarbage()
	}
}
