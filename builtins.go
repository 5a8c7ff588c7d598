package lisp

import (
	"io"
	"os"
)

// Stdout is where `print` writes. Tests substitute an in-memory writer;
// RunDriver points it at its own output writer for the duration of a run.
var Stdout io.Writer = os.Stdout

// installBuiltins populates ev.Env.Globals with one *Builtin per name
// in the fixed suite of spec §4.G, binding each under its interned
// name symbol so ordinary evaluation of `(car x)` finds it exactly
// like any other global.
//
// Grounded on the teacher's own pattern of indexing named callables in
// one map built once at startup (its `actionFns
// map[string]func(*Node)(Value,error)`, populated via repeated
// `SetAction` calls) — here collapsed into a single bootstrap pass
// over a table of (name, arity, pre-evaluate, fn) tuples.
func installBuiltins(ev *Evaluator) {
	define := func(name string, arity Arity, preEvaluate bool, fn BuiltinFn) {
		sym := ev.Interner.Intern(name)
		b := ev.Heap.NewBuiltin(name, arity, preEvaluate, fn)
		ev.Env.Globals[sym] = b
	}

	// ---- Special forms (arguments unevaluated) ----

	define("quote", Arity1, false, bQuote)
	define("progn", ArityVariadic, false, bProgn)
	define("if", ArityVariadic, false, bIf)
	define("while", ArityVariadic, false, bWhile)
	define("lambda", ArityVariadic, false, bLambda)
	define("let", ArityVariadic, false, bLet)

	// ---- Pre-evaluated builtins ----

	define("set", Arity2, true, bSet)
	define("cons", Arity2, true, bCons)
	define("car", Arity1, true, bCar)
	define("cdr", Arity1, true, bCdr)
	define("length", Arity1, true, bLength)
	define("+", ArityVariadic, true, bAdd)
	define("-", ArityVariadic, true, bSub)
	define("*", ArityVariadic, true, bMul)
	define("<", Arity2, true, bLess)
	define("eq", Arity2, true, bEq)
	define("equal", Arity2, true, bEqual)
	define("not", Arity1, true, bNot)
	define("print", Arity1, true, bPrint)
	define("stringify", Arity1, true, bStringify)
	define("concat", Arity2, true, bConcat)
	define("garbage-collect", Arity0, true, bGC)
}

func bQuote(ev *Evaluator, args []Value) Value {
	return args[0]
}

func bProgn(ev *Evaluator, args []Value) Value {
	return ev.evalProgn(args)
}

func bIf(ev *Evaluator, args []Value) Value {
	if len(args) < 1 {
		return ev.Signal(SignalWrongNumberOfArguments, ev.Interner.Intern("if"))
	}
	cond := ev.Eval(args[0])
	if ev.Pending() {
		return Nil
	}
	if Truthy(cond) {
		if len(args) < 2 {
			return Nil
		}
		return ev.Eval(args[1])
	}
	if len(args) < 3 {
		return Nil
	}
	return ev.evalProgn(args[2:])
}

func bWhile(ev *Evaluator, args []Value) Value {
	if len(args) < 1 {
		return ev.Signal(SignalWrongNumberOfArguments, ev.Interner.Intern("while"))
	}
	cond, body := args[0], args[1:]
	result := Value(Nil)
	for {
		c := ev.Eval(cond)
		if ev.Pending() {
			return Nil
		}
		if !Truthy(c) {
			return result
		}
		result = ev.evalProgn(body)
		if ev.Pending() {
			return Nil
		}
	}
}

func bLambda(ev *Evaluator, args []Value) Value {
	if len(args) < 1 {
		return ev.Signal(SignalWrongNumberOfArguments, ev.Interner.Intern("lambda"))
	}
	params, body := args[0], args[1:]
	if !isNilOrProperSymbolList(params) {
		return ev.Signal(SignalWrongTypeArgument, ev.Interner.Intern("listp"))
	}
	bodyList := Value(Nil)
	for i := len(body) - 1; i >= 0; i-- {
		bodyList = ev.Heap.NewCons(body[i], bodyList)
	}
	return ev.Heap.NewLambda(params, bodyList)
}

func isNilOrProperSymbolList(v Value) bool {
	if !IsProperList(v) {
		return false
	}
	for _, item := range ListToSlice(v) {
		if _, ok := item.(*Symbol); !ok {
			return false
		}
	}
	return true
}

// bLet implements `let`: evaluate each binding's initializer in the
// outer environment (left-to-right), then push all new bindings onto
// the local stack as one frame, run the body as progn, pop.
func bLet(ev *Evaluator, args []Value) Value {
	if len(args) < 1 {
		return ev.Signal(SignalWrongNumberOfArguments, ev.Interner.Intern("let"))
	}
	specs := args[0]
	if !IsProperList(specs) {
		return ev.Signal(SignalWrongTypeArgument, ev.Interner.Intern("listp"))
	}

	var bindings []binding
	for _, spec := range ListToSlice(specs) {
		if !IsProperList(spec) {
			return ev.Signal(SignalWrongTypeArgument, ev.Interner.Intern("listp"))
		}
		parts := ListToSlice(spec)
		if len(parts) != 2 {
			return ev.Signal(SignalWrongTypeArgument, ev.Interner.Intern("listp"))
		}
		sym, ok := parts[0].(*Symbol)
		if !ok {
			return ev.Signal(SignalWrongTypeArgument, ev.Interner.Intern("symbolp"))
		}
		val := ev.Eval(parts[1])
		if ev.Pending() {
			return Nil
		}
		bindings = append(bindings, binding{Sym: sym, Val: val})
	}

	ev.Env.PushFrame(bindings)
	result := ev.evalProgn(args[1:])
	ev.Env.PopFrame()
	return result
}

func bSet(ev *Evaluator, args []Value) Value {
	sym, ok := args[0].(*Symbol)
	if !ok {
		return ev.Signal(SignalWrongTypeArgument, ev.Interner.Intern("symbolp"))
	}
	ev.Env.Assign(sym, args[1])
	return args[1]
}

func bCons(ev *Evaluator, args []Value) Value {
	return ev.Heap.NewCons(args[0], args[1])
}

func bCar(ev *Evaluator, args []Value) Value {
	v := args[0]
	if IsNil(v) {
		return Nil
	}
	if _, ok := v.(*Cons); !ok {
		return ev.Signal(SignalWrongTypeArgument, ev.Interner.Intern("consp"))
	}
	return Car(v)
}

func bCdr(ev *Evaluator, args []Value) Value {
	v := args[0]
	if IsNil(v) {
		return Nil
	}
	if _, ok := v.(*Cons); !ok {
		return ev.Signal(SignalWrongTypeArgument, ev.Interner.Intern("consp"))
	}
	return Cdr(v)
}

func bLength(ev *Evaluator, args []Value) Value {
	v := args[0]
	if s, ok := v.(*String); ok {
		return Fixnum(len(s.Bytes))
	}
	if !IsProperList(v) {
		return ev.Signal(SignalWrongTypeArgument, ev.Interner.Intern("listp"))
	}
	n := 0
	for cur := v; !IsNil(cur); cur = Cdr(cur) {
		n++
	}
	return Fixnum(n)
}

func bAdd(ev *Evaluator, args []Value) Value {
	var sum Fixnum
	for _, a := range args {
		n, ok := a.(Fixnum)
		if !ok {
			return ev.Signal(SignalWrongTypeArgument, ev.Interner.Intern("integerp"))
		}
		sum += n
	}
	return sum
}

func bSub(ev *Evaluator, args []Value) Value {
	if len(args) == 0 {
		return Fixnum(0)
	}
	first, ok := args[0].(Fixnum)
	if !ok {
		return ev.Signal(SignalWrongTypeArgument, ev.Interner.Intern("integerp"))
	}
	if len(args) == 1 {
		return -first
	}
	result := first
	for _, a := range args[1:] {
		n, ok := a.(Fixnum)
		if !ok {
			return ev.Signal(SignalWrongTypeArgument, ev.Interner.Intern("integerp"))
		}
		result -= n
	}
	return result
}

func bMul(ev *Evaluator, args []Value) Value {
	product := Fixnum(1)
	for _, a := range args {
		n, ok := a.(Fixnum)
		if !ok {
			return ev.Signal(SignalWrongTypeArgument, ev.Interner.Intern("integerp"))
		}
		product *= n
	}
	return product
}

func bLess(ev *Evaluator, args []Value) Value {
	a, aok := args[0].(Fixnum)
	b, bok := args[1].(Fixnum)
	if !aok || !bok {
		return ev.Signal(SignalWrongTypeArgument, ev.Interner.Intern("integerp"))
	}
	return ev.Bool(a < b)
}

func bEq(ev *Evaluator, args []Value) Value {
	return ev.Bool(Eq(args[0], args[1]))
}

func bEqual(ev *Evaluator, args []Value) Value {
	return ev.Bool(Equal(args[0], args[1]))
}

func bNot(ev *Evaluator, args []Value) Value {
	return ev.Bool(!Truthy(args[0]))
}

func bPrint(ev *Evaluator, args []Value) Value {
	io.WriteString(Stdout, Stringify(args[0]))
	io.WriteString(Stdout, "\n")
	return args[0]
}

func bStringify(ev *Evaluator, args []Value) Value {
	return ev.Heap.NewString([]byte(Stringify(args[0])))
}

func bConcat(ev *Evaluator, args []Value) Value {
	a, aok := args[0].(*String)
	b, bok := args[1].(*String)
	if !aok || !bok {
		return ev.Signal(SignalWrongTypeArgument, ev.Interner.Intern("stringp"))
	}
	combined := make([]byte, 0, len(a.Bytes)+len(b.Bytes))
	combined = append(combined, a.Bytes...)
	combined = append(combined, b.Bytes...)
	return ev.Heap.NewString(combined)
}

func bGC(ev *Evaluator, args []Value) Value {
	ev.CollectGarbage()
	return Nil
}
