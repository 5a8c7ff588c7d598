package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilIsNotAnyKind(t *testing.T) {
	assert.True(t, IsNil(Nil))
	assert.False(t, Truthy(Nil))
	assert.Equal(t, KindNil, Nil.Kind())
}

func TestTruthyEverythingButNil(t *testing.T) {
	h := NewHeap()
	in := NewInterner(h)
	cases := []Value{
		Fixnum(0),
		h.NewString([]byte("")),
		in.Intern("x"),
		h.NewCons(Nil, Nil),
	}
	for _, v := range cases {
		assert.True(t, Truthy(v), "%v should be truthy", v)
	}
	assert.False(t, Truthy(Nil))
}

func TestCarCdrOfNilAreNil(t *testing.T) {
	assert.Equal(t, Value(Nil), Car(Nil))
	assert.Equal(t, Value(Nil), Cdr(Nil))
}

func TestIsProperList(t *testing.T) {
	h := NewHeap()
	assert.True(t, IsProperList(Nil))
	proper := h.NewCons(Fixnum(1), h.NewCons(Fixnum(2), Nil))
	assert.True(t, IsProperList(proper))
	dotted := h.NewCons(Fixnum(1), Fixnum(2))
	assert.False(t, IsProperList(dotted))
	assert.False(t, IsProperList(Fixnum(5)))
}

func TestListToSlice(t *testing.T) {
	h := NewHeap()
	list := h.NewCons(Fixnum(1), h.NewCons(Fixnum(2), h.NewCons(Fixnum(3), Nil)))
	got := ListToSlice(list)
	assert.Equal(t, []Value{Fixnum(1), Fixnum(2), Fixnum(3)}, got)
	assert.Nil(t, ListToSlice(Nil))
}

func TestEqFixnumsByValue(t *testing.T) {
	assert.True(t, Eq(Fixnum(1), Fixnum(1)))
	assert.False(t, Eq(Fixnum(1), Fixnum(2)))
}

func TestEqNilOnlyEqualsNil(t *testing.T) {
	assert.True(t, Eq(Nil, Nil))
	assert.False(t, Eq(Nil, Fixnum(0)))
}

func TestEqStringsByIdentityNotContent(t *testing.T) {
	h := NewHeap()
	a := h.NewString([]byte("hi"))
	b := h.NewString([]byte("hi"))
	assert.False(t, Eq(a, b), "distinct string objects with identical bytes are not eq")
	assert.True(t, Eq(a, a))
}

func TestEqSymbolsByIdentity(t *testing.T) {
	h := NewHeap()
	in := NewInterner(h)
	a := in.Intern("foo")
	b := in.Intern("foo")
	assert.True(t, Eq(a, b), "interning the same name twice returns the same symbol")
}

func TestEqualStringsByContent(t *testing.T) {
	h := NewHeap()
	a := h.NewString([]byte("hi"))
	b := h.NewString([]byte("hi"))
	c := h.NewString([]byte("bye"))
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestEqualConsesRecursively(t *testing.T) {
	h := NewHeap()
	a := h.NewCons(Fixnum(1), h.NewCons(Fixnum(2), Nil))
	b := h.NewCons(Fixnum(1), h.NewCons(Fixnum(2), Nil))
	c := h.NewCons(Fixnum(1), h.NewCons(Fixnum(3), Nil))
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestStringifyAtoms(t *testing.T) {
	h := NewHeap()
	in := NewInterner(h)
	assert.Equal(t, "nil", Stringify(Nil))
	assert.Equal(t, "42", Stringify(Fixnum(42)))
	assert.Equal(t, "-7", Stringify(Fixnum(-7)))
	assert.Equal(t, `"hi"`, Stringify(h.NewString([]byte("hi"))))
	assert.Equal(t, "foo", Stringify(in.Intern("foo")))
}

func TestStringifyProperList(t *testing.T) {
	h := NewHeap()
	list := h.NewCons(Fixnum(1), h.NewCons(Fixnum(2), Nil))
	assert.Equal(t, "(1 2)", Stringify(list))
}

func TestStringifyDottedPair(t *testing.T) {
	h := NewHeap()
	pair := h.NewCons(Fixnum(1), Fixnum(2))
	assert.Equal(t, "(1 . 2)", Stringify(pair))
}

func TestStringifyImproperTail(t *testing.T) {
	h := NewHeap()
	list := h.NewCons(Fixnum(1), h.NewCons(Fixnum(2), Fixnum(3)))
	assert.Equal(t, "(1 2 . 3)", Stringify(list))
}
