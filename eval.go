package lisp

// Evaluator is the tree-walking interpreter of spec §4.F: variable
// lookup under dynamic scope, application of special forms, builtins,
// and user lambdas, plus the error-signaling discipline that
// short-circuits evaluation (spec §4.G's state machine).
//
// Grounded on the eval/apply switch-on-dynamic-type shape of the
// pack's reference Scheme-in-Go interpreter (a tight `switch e :=
// e.(type)` dispatch plus a chained-environment `Find`), restructured
// around the teacher's own `(Value, error)`-propagating idiom used
// throughout its parser: every step checks for failure before doing
// further work and aborts the surrounding computation as soon as one
// is seen.
type Evaluator struct {
	Heap     *Heap
	Interner *Interner
	Env      *Env

	// signal holds the single pending error signal (spec §4.G). Nil
	// means "running"; non-nil means "signalled".
	signal *LispSignal

	tSymbol *Symbol

	// Reader, when set by the driver, contributes its last-parsed
	// value to the GC root set (spec §4.B). It is nil in tests that
	// exercise the evaluator without a reader.
	Reader *Reader
}

// NewEvaluator wires a fresh evaluator around heap/interner/env and
// bootstraps the builtin suite (builtins.go) plus the `t` singleton.
func NewEvaluator(heap *Heap, interner *Interner, env *Env) *Evaluator {
	ev := &Evaluator{Heap: heap, Interner: interner, Env: env}
	ev.tSymbol = interner.Intern("t")
	env.Globals[ev.tSymbol] = ev.tSymbol
	installBuiltins(ev)
	return ev
}

// T returns the canonical true value.
func (ev *Evaluator) T() Value { return ev.tSymbol }

// Bool converts a Go bool to the Lisp t/nil pair.
func (ev *Evaluator) Bool(b bool) Value {
	if b {
		return ev.tSymbol
	}
	return Nil
}

// Pending reports whether a signal is currently set.
func (ev *Evaluator) Pending() bool { return ev.signal != nil }

// Signal sets the pending signal and returns Nil, so call sites can
// write `return ev.Signal(...)`.
func (ev *Evaluator) Signal(symbol string, data Value) Value {
	ev.signal = Signal(symbol, data)
	return Nil
}

// TakeSignal returns and clears the pending signal. Only the driver's
// top-level handler (RunDriver) should call this.
func (ev *Evaluator) TakeSignal() *LispSignal {
	s := ev.signal
	ev.signal = nil
	return s
}

// SignalValue renders the pending signal as its (symbol . data) cons,
// or Nil if none is pending. Used as a GC root.
func (ev *Evaluator) SignalValue() Value {
	if ev.signal == nil {
		return Nil
	}
	return ev.signal.Cons(ev.Heap, ev.Interner)
}

// Eval evaluates v in the current environment (spec §4.F). Entering
// Eval while a signal is already pending is a program invariant
// violation (spec §4.G) and aborts the host process.
func (ev *Evaluator) Eval(v Value) Value {
	if ev.Pending() {
		Abort("eval entered while a signal is already pending")
	}

	switch x := v.(type) {
	case NilValue:
		return Nil
	case Fixnum, *String, *Builtin:
		return v
	case *Symbol:
		val, ok := ev.Env.Lookup(x)
		if !ok {
			return ev.Signal(SignalVoidVariable, x)
		}
		return val
	case *Cons:
		return ev.evalCons(x)
	case *Lambda:
		return v
	default:
		Abort("eval: unknown value kind %T", v)
		return Nil
	}
}

func (ev *Evaluator) evalCons(c *Cons) Value {
	callee := ev.Eval(c.Car)
	if ev.Pending() {
		return Nil
	}

	if !IsProperList(c.Cdr) {
		return ev.Signal(SignalWrongTypeArgument, ev.Interner.Intern("listp"))
	}
	tail := c.Cdr

	switch f := callee.(type) {
	case *Builtin:
		return ev.applyBuiltin(f, tail)
	case *Lambda:
		return ev.applyLambda(f, tail)
	default:
		return ev.Signal(SignalInvalidFunction, callee)
	}
}

func (ev *Evaluator) applyBuiltin(b *Builtin, tail Value) Value {
	if !b.PreEvaluate {
		return ev.checkArityAndCall(b, ListToSlice(tail))
	}

	args := make([]Value, 0, 4)
	for cur := tail; ; {
		c, ok := cur.(*Cons)
		if !ok {
			break
		}
		v := ev.Eval(c.Car)
		if ev.Pending() {
			return Nil
		}
		args = append(args, v)
		cur = c.Cdr
	}
	return ev.checkArityAndCall(b, args)
}

func (ev *Evaluator) checkArityAndCall(b *Builtin, args []Value) Value {
	ok := true
	switch b.Arity {
	case Arity0:
		ok = len(args) == 0
	case Arity1:
		ok = len(args) == 1
	case Arity2:
		ok = len(args) == 2
	case ArityVariadic:
		ok = true
	}
	if !ok {
		return ev.Signal(SignalWrongNumberOfArguments, b)
	}
	return b.Fn(ev, args)
}

// applyLambda evaluates arguments left-to-right, pushes one frame
// binding each parameter positionally (later duplicates shadow earlier
// ones within the same frame, matching the `let` precedent — see
// DESIGN.md), evaluates the body as an implicit progn, and always pops
// the frame whether the body succeeded or signalled.
func (ev *Evaluator) applyLambda(l *Lambda, tail Value) Value {
	params := ListToSlice(l.Params)

	args := make([]Value, 0, len(params))
	for cur := tail; ; {
		c, ok := cur.(*Cons)
		if !ok {
			break
		}
		v := ev.Eval(c.Car)
		if ev.Pending() {
			return Nil
		}
		args = append(args, v)
		cur = c.Cdr
	}

	if len(args) != len(params) {
		return ev.Signal(SignalWrongNumberOfArguments, l)
	}

	bindings := make([]binding, len(params))
	for i, p := range params {
		sym, ok := p.(*Symbol)
		if !ok {
			Abort("lambda: parameter list contains a non-symbol")
		}
		bindings[i] = binding{Sym: sym, Val: args[i]}
	}
	ev.Env.PushFrame(bindings)
	result := ev.evalProgn(ListToSlice(l.Body))
	ev.Env.PopFrame()
	return result
}

// CollectGarbage runs one full mark-and-sweep cycle using the complete
// root set of spec §4.B: the intern table, the global table, the
// entire local-binding stack, the reader's last-parsed value (if a
// reader is attached), the `t` singleton, and the pending signal.
func (ev *Evaluator) CollectGarbage() {
	lastParsed := Value(Nil)
	if ev.Reader != nil {
		lastParsed = ev.Reader.LastParsed()
	}
	ev.Heap.Collect(Roots{
		Interned:   ev.Interner.All(),
		Globals:    ev.Env.Globals,
		Locals:     ev.Env.LocalBindings(),
		LastParsed: lastParsed,
		T:          ev.T(),
		Signal:     ev.SignalValue(),
	})
}

// evalProgn evaluates each expression in order, returning the value of
// the last one (nil if the list is empty), short-circuiting on signal.
func (ev *Evaluator) evalProgn(exprs []Value) Value {
	result := Value(Nil)
	for _, e := range exprs {
		result = ev.Eval(e)
		if ev.Pending() {
			return Nil
		}
	}
	return result
}
