package lisp

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which of the six runtime kinds a Value holds.
type Kind int

const (
	// KindNil is not one of the six runtime kinds (spec §3): Nil is a
	// sentinel, not a heap-allocated Value. It exists only so NilValue
	// can implement the Value interface.
	KindNil Kind = iota
	KindCons
	KindFixnum
	KindString
	KindSymbol
	KindBuiltin
	KindLambda
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindCons:
		return "cons"
	case KindFixnum:
		return "fixnum"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindBuiltin:
		return "builtin"
	case KindLambda:
		return "lambda"
	default:
		return "unknown"
	}
}

// Value is the universal heap-allocated entity. Every concrete type in
// this file implements it. The distinguished empty value ("nil") is
// NOT a Value of any kind; it is the typed sentinel NilValue.
type Value interface {
	Kind() Kind
}

// mark is the GC's tri-state mark bit (spec §3).
type mark int

const (
	markUnvisited mark = iota
	markKeep
	markSweep
)

// NilValue is the distinguished empty value: the empty list, boolean
// false, and default uninitialized value all at once. It is not
// allocated on the heap and carries no GC mark.
type NilValue struct{}

// Nil is the single well-known sentinel instance.
var Nil = NilValue{}

func (NilValue) Kind() Kind { return KindNil }

// IsNil reports whether v is the nil sentinel.
func IsNil(v Value) bool {
	_, ok := v.(NilValue)
	return ok
}

// Truthy implements the rule that anything other than nil is true.
func Truthy(v Value) bool { return !IsNil(v) }

// Cons is an ordered pair (car, cdr); each field is a Value or Nil.
type Cons struct {
	Car, Cdr Value
	gcMark   mark
}

func (*Cons) Kind() Kind { return KindCons }

// Fixnum is a machine-width signed integer. It is not heap-owned
// storage in the GC-registry sense (Fixnums are immutable, small, and
// never referenced by pointer identity) but it still satisfies Value
// so it can sit in Cons cells and environment slots uniformly.
type Fixnum int64

func (Fixnum) Kind() Kind { return KindFixnum }

// String is an owned immutable byte sequence. Printed as-is; no
// escape interpretation happens on output.
type String struct {
	Bytes  []byte
	gcMark mark
}

func (*String) Kind() Kind { return KindString }

// Symbol is an owned name plus a stable identity: two symbols with
// identical names are the same Value (pointer identity), guaranteed by
// the intern table in intern.go.
type Symbol struct {
	Name   string
	gcMark mark
}

func (*Symbol) Kind() Kind { return KindSymbol }

// Arity describes how many arguments a Builtin accepts.
type Arity int

const (
	Arity0 Arity = iota
	Arity1
	Arity2
	ArityVariadic
)

// BuiltinFn is the native Go implementation backing a Builtin value.
// It receives the already-evaluated argument list for ordinary
// builtins, or the raw, unevaluated tail for special forms.
type BuiltinFn func(ev *Evaluator, args []Value) Value

// Builtin is a reference to a native operation.
type Builtin struct {
	Name        string
	Arity       Arity
	PreEvaluate bool // false marks this as a special form
	Fn          BuiltinFn
	gcMark      mark
}

func (*Builtin) Kind() Kind { return KindBuiltin }

// Lambda is a user-defined callable: a parameter list (a proper list
// of symbols; repeated names are accepted, and the later one shadows
// the earlier within a call) plus a body (a list of expressions). Lambdas
// never mutate Params or Body after construction, and they capture
// nothing — scoping is strictly dynamic (spec §9).
type Lambda struct {
	Params Value // proper list of *Symbol, or Nil
	Body   Value // proper list of body expressions
	gcMark mark
}

func (*Lambda) Kind() Kind { return KindLambda }

// ---- Accessors (car/cdr of nil are nil; no panics) ----

func Car(v Value) Value {
	if c, ok := v.(*Cons); ok {
		return c.Car
	}
	return Nil
}

func Cdr(v Value) Value {
	if c, ok := v.(*Cons); ok {
		return c.Cdr
	}
	return Nil
}

// IsProperList reports whether v is nil or a chain of conses whose
// final cdr is nil.
func IsProperList(v Value) bool {
	for {
		switch x := v.(type) {
		case NilValue:
			return true
		case *Cons:
			v = x.Cdr
		default:
			return false
		}
	}
}

// ListToSlice converts a proper list into a Go slice. The caller must
// have already verified v is a proper list.
func ListToSlice(v Value) []Value {
	var out []Value
	for {
		c, ok := v.(*Cons)
		if !ok {
			return out
		}
		out = append(out, c.Car)
		v = c.Cdr
	}
}

// ---- Equality (spec §4.A) ----

// Eq is true iff both are the same Fixnum value or identical object
// identity. Distinct string objects with identical bytes are NOT eq.
func Eq(a, b Value) bool {
	if an, ok := a.(Fixnum); ok {
		bn, ok := b.(Fixnum)
		return ok && an == bn
	}
	if IsNil(a) || IsNil(b) {
		return IsNil(a) && IsNil(b)
	}
	// All other kinds compare by pointer identity.
	switch av := a.(type) {
	case *Cons:
		bv, ok := b.(*Cons)
		return ok && av == bv
	case *String:
		bv, ok := b.(*String)
		return ok && av == bv
	case *Symbol:
		bv, ok := b.(*Symbol)
		return ok && av == bv
	case *Builtin:
		bv, ok := b.(*Builtin)
		return ok && av == bv
	case *Lambda:
		bv, ok := b.(*Lambda)
		return ok && av == bv
	}
	return false
}

// Equal is eq(a, b), or both Strings with byte-equal contents, or both
// Conses whose cars and cdrs are recursively equal. Everything else
// falls back to eq.
func Equal(a, b Value) bool {
	if Eq(a, b) {
		return true
	}
	as, aok := a.(*String)
	bs, bok := b.(*String)
	if aok && bok {
		return string(as.Bytes) == string(bs.Bytes)
	}
	ac, aok := a.(*Cons)
	bc, bok := b.(*Cons)
	if aok && bok {
		return Equal(ac.Car, bc.Car) && Equal(ac.Cdr, bc.Cdr)
	}
	return false
}

// Stringify produces the human-readable textual representation used
// by both the `stringify` builtin and `print`.
func Stringify(v Value) string {
	var s strings.Builder
	writeValue(&s, v)
	return s.String()
}

func writeValue(s *strings.Builder, v Value) {
	switch x := v.(type) {
	case NilValue:
		s.WriteString("nil")
	case Fixnum:
		s.WriteString(strconv.FormatInt(int64(x), 10))
	case *String:
		s.WriteByte('"')
		s.Write(x.Bytes)
		s.WriteByte('"')
	case *Symbol:
		s.WriteString(x.Name)
	case *Builtin:
		s.WriteString(x.Name)
	case *Lambda:
		s.WriteString("lambda")
	case *Cons:
		s.WriteByte('(')
		writeValue(s, x.Car)
		rest := x.Cdr
		for {
			switch r := rest.(type) {
			case NilValue:
				s.WriteByte(')')
				return
			case *Cons:
				s.WriteByte(' ')
				writeValue(s, r.Car)
				rest = r.Cdr
			default:
				s.WriteString(" . ")
				writeValue(s, rest)
				s.WriteByte(')')
				return
			}
		}
	default:
		panic(fmt.Sprintf("stringify: unknown value kind %T", v))
	}
}
