package bytecode

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a Value.
type ValueKind byte

const (
	KindNil ValueKind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindList
	KindDict
	KindFunction
	KindHostFn
)

func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	case KindFunction:
		return "function"
	case KindHostFn:
		return "hostfn"
	default:
		return "unknown"
	}
}

// DictEntry pairs a Dict's original key Value (for printing and iteration)
// with its stored value. Value itself cannot be a Go map key — List is a
// slice, HostFn is a func value, neither of which Go allows as a key type —
// so Dict is keyed by the comparable scalarKey projection instead.
type DictEntry struct {
	Key Value
	Val Value
}

// scalarKey is the comparable projection of a hashable Value (Dict keys
// are restricted to Int, Float, String, Bool, and Nil).
type scalarKey struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
	b    bool
}

// KeyOf projects a hashable Value into its map key. Callers must check
// IsHashable first; KeyOf panics on a non-hashable Value (List/Dict/
// Function/HostFn), which the compiler and VM never allow to reach here.
func KeyOf(v Value) any {
	switch v.Kind {
	case KindInt:
		return scalarKey{kind: KindInt, i: v.Int}
	case KindFloat:
		return scalarKey{kind: KindFloat, f: v.Flt}
	case KindBool:
		return scalarKey{kind: KindBool, b: v.Bool}
	case KindString:
		return scalarKey{kind: KindString, s: v.Str}
	case KindNil:
		return scalarKey{kind: KindNil}
	default:
		panic("bytecode: non-hashable value used as dict key: " + v.Kind.String())
	}
}

// HostFn is a Go function exposed to Axon code through the VM's globals.
// It receives already-evaluated positional arguments and returns a Value or
// an error (surfaced to the caller as a RuntimeError).
type HostFn func(args []Value) (Value, error)

// Function is a user-defined Axon function: its parameter names and
// compiled body. Values of this kind are created by OpMakeFunction and
// invoked by OpCallFunction.
type Function struct {
	Name   string
	Params []string
	Code   *CodeObject
}

// Value is Axon's runtime value: a tagged union over Nil, Int, Float,
// Bool, String, List, Dict, Function, and HostFn. Exactly one of the
// typed fields is meaningful, selected by
// Kind — this avoids the allocation and type-assertion overhead of an
// interface{}-typed union for the hot arithmetic path (Int/Float/Bool),
// while List/Dict/Function/HostFn still go through a pointer.
type Value struct {
	Str  string
	List []Value
	Dict map[any]DictEntry
	Fn   *Function
	Host HostFn
	Int  int64
	Flt  float64
	Kind ValueKind
	Bool bool
}

var Nil = Value{Kind: KindNil}

func IntValue(i int64) Value      { return Value{Kind: KindInt, Int: i} }
func FloatValue(f float64) Value  { return Value{Kind: KindFloat, Flt: f} }
func BoolValue(b bool) Value      { return Value{Kind: KindBool, Bool: b} }
func StringValue(s string) Value  { return Value{Kind: KindString, Str: s} }
func ListValue(items []Value) Value       { return Value{Kind: KindList, List: items} }
func DictValue(m map[any]DictEntry) Value { return Value{Kind: KindDict, Dict: m} }
func FunctionValue(fn *Function) Value    { return Value{Kind: KindFunction, Fn: fn} }
func HostFnValue(fn HostFn) Value         { return Value{Kind: KindHostFn, Host: fn} }

// NewDict creates an empty Dict value ready for BUILD_DICT to populate.
func NewDict() Value {
	return Value{Kind: KindDict, Dict: make(map[any]DictEntry)}
}

// IsHashable reports whether v may be used as a Dict key — Int, Float,
// Bool, String, and Nil only.
func (v Value) IsHashable() bool {
	switch v.Kind {
	case KindInt, KindFloat, KindBool, KindString, KindNil:
		return true
	default:
		return false
	}
}

// Truthy implements Axon's truthiness table: false, 0, 0.0, "", [], {},
// and Nil are falsy; everything else is truthy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNil:
		return false
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int != 0
	case KindFloat:
		return v.Flt != 0
	case KindString:
		return v.Str != ""
	case KindList:
		return len(v.List) != 0
	case KindDict:
		return len(v.Dict) != 0
	default:
		return true
	}
}

// Equal implements == and != across Axon's value domain. Int and Float
// compare equal across kinds when numerically equal (1 == 1.0), matching
// the arithmetic promotion rules binary operators use; every other kind
// pair is equal only when both Kind and contents match.
func (v Value) Equal(other Value) bool {
	if v.Kind == KindInt && other.Kind == KindFloat {
		return float64(v.Int) == other.Flt
	}
	if v.Kind == KindFloat && other.Kind == KindInt {
		return v.Flt == float64(other.Int)
	}
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNil:
		return true
	case KindInt:
		return v.Int == other.Int
	case KindFloat:
		return v.Flt == other.Flt
	case KindBool:
		return v.Bool == other.Bool
	case KindString:
		return v.Str == other.Str
	case KindList:
		if len(v.List) != len(other.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(other.List[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if len(v.Dict) != len(other.Dict) {
			return false
		}
		for k, entry := range v.Dict {
			otherEntry, ok := other.Dict[k]
			if !ok || !entry.Val.Equal(otherEntry.Val) {
				return false
			}
		}
		return true
	case KindFunction:
		return v.Fn == other.Fn
	case KindHostFn:
		return false
	default:
		return false
	}
}

// String renders v the way PRINT emits it to standard output.
func (v Value) String() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Flt, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindString:
		return v.Str
	case KindList:
		parts := make([]string, len(v.List))
		for i, e := range v.List {
			parts[i] = e.goRepr()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindDict:
		parts := make([]string, 0, len(v.Dict))
		for _, entry := range v.Dict {
			parts = append(parts, entry.Key.goRepr()+": "+entry.Val.goRepr())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindFunction:
		return fmt.Sprintf("<function %s>", v.Fn.Name)
	case KindHostFn:
		return "<builtin function>"
	default:
		return "<unknown>"
	}
}

// goRepr is used for elements nested inside list/dict String() output, where
// strings need their quotes to disambiguate from bare identifiers.
func (v Value) goRepr() string {
	if v.Kind == KindString {
		return strconv.Quote(v.Str)
	}
	return v.String()
}
