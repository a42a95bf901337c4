package native

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unsafe"
)

// Type is the semantic C type of an argument or a return value.
type Type uint8

const (
	Void Type = iota //only valid as return type
	Int32
	Int64
	Uint32
	Uint64
	Float32
	Float64
	Pointer
	typeCount
)

// MaxArgs is the most arguments a bound function can take.
const MaxArgs = 15

var typeNames = [...]string{
	Void:    "void",
	Int32:   "int32",
	Int64:   "int64",
	Uint32:  "uint32",
	Uint64:  "uint64",
	Float32: "float32",
	Float64: "float64",
	Pointer: "pointer",
}

var typeAliases = map[string]Type{
	"void":     Void,
	"":         Void,
	"int32":    Int32,
	"int":      Int32,
	"i32":      Int32,
	"c_int":    Int32,
	"int32_t":  Int32,
	"int64":    Int64,
	"i64":      Int64,
	"c_long":   Int64,
	"int64_t":  Int64,
	"uint32":   Uint32,
	"u32":      Uint32,
	"c_uint":   Uint32,
	"uint32_t": Uint32,
	"uint64":   Uint64,
	"u64":      Uint64,
	"uint64_t": Uint64,
	"float32":  Float32,
	"float":    Float32,
	"f32":      Float32,
	"c_float":  Float32,
	"float64":  Float64,
	"double":   Float64,
	"f64":      Float64,
	"c_double": Float64,
	"pointer":  Pointer,
	"ptr":      Pointer,
	"uintptr":  Pointer,
	"c_void_p": Pointer,
}

var goTypes = [...]reflect.Type{
	Int32:   reflect.TypeFor[int32](),
	Int64:   reflect.TypeFor[int64](),
	Uint32:  reflect.TypeFor[uint32](),
	Uint64:  reflect.TypeFor[uint64](),
	Float32: reflect.TypeFor[float32](),
	Float64: reflect.TypeFor[float64](),
	Pointer: reflect.TypeFor[uintptr](),
}

func (t Type) String() string {
	if t < typeCount {
		return typeNames[t]
	}
	return "type(" + strconv.Itoa(int(t)) + ")"
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool { return t < typeCount }

// GoType is the go type used for values of t, nil for Void.
func (t Type) GoType() reflect.Type {
	if t == Void || !t.Valid() {
		return nil
	}
	return goTypes[t]
}

// ParseType parses a type name, accepting go, C and ctypes spellings.
func ParseType(s string) (Type, error) {
	if t, ok := typeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return Void, fmt.Errorf("%w: unknown type %q", ErrInvalidSignature, s)
}

// Signature declares argument types and the return type of a native function.
type Signature struct {
	Args   []Type
	Return Type
}

// Sig creates a Signature, return type first.
func Sig(ret Type, args ...Type) Signature {
	return Signature{Args: args, Return: ret}
}

// Validate checks the signature can be bound.
func (s Signature) Validate() error {
	if len(s.Args) > MaxArgs {
		return fmt.Errorf("%w: %d arguments exceeds %d", ErrInvalidSignature, len(s.Args), MaxArgs)
	}
	for i, a := range s.Args {
		if !a.Valid() {
			return fmt.Errorf("%w: argument %d has unknown %s", ErrInvalidSignature, i, a)
		}
		if a == Void {
			return fmt.Errorf("%w: argument %d is void", ErrInvalidSignature, i)
		}
	}
	if !s.Return.Valid() {
		return fmt.Errorf("%w: unknown return %s", ErrInvalidSignature, s.Return)
	}
	return nil
}

// FuncType is the go function type a bound symbol takes. Signature must be valid.
func (s Signature) FuncType() reflect.Type {
	in := make([]reflect.Type, len(s.Args))
	for i, a := range s.Args {
		in[i] = a.GoType()
	}
	var out []reflect.Type
	if s.Return != Void {
		out = []reflect.Type{s.Return.GoType()}
	}
	return reflect.FuncOf(in, out, false)
}

func (s Signature) String() string {
	b := new(strings.Builder)
	b.WriteByte('(')
	for i, a := range s.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteString(") -> ")
	b.WriteString(s.Return.String())
	return b.String()
}

// ParseValue parses text as a value of t.
func ParseValue(t Type, s string) (v any, err error) {
	switch t {
	case Int32:
		var n int64
		if n, err = strconv.ParseInt(s, 0, 32); err == nil {
			v = int32(n)
		}
	case Int64:
		v, err = strconv.ParseInt(s, 0, 64)
	case Uint32:
		var n uint64
		if n, err = strconv.ParseUint(s, 0, 32); err == nil {
			v = uint32(n)
		}
	case Uint64:
		v, err = strconv.ParseUint(s, 0, 64)
	case Float32:
		var n float64
		if n, err = strconv.ParseFloat(s, 32); err == nil {
			v = float32(n)
		}
	case Float64:
		v, err = strconv.ParseFloat(s, 64)
	case Pointer:
		var n uint64
		if n, err = strconv.ParseUint(s, 0, 64); err == nil {
			v = uintptr(n)
		}
	default:
		return nil, fmt.Errorf("%w: no value of %s", ErrArguments, t)
	}
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrArguments, err)
	}
	return
}

var errWidth = errors.New("value out of range")

// convert adapts a go value to the declared type, checking nothing but the type width.
func convert(t Type, a any) (reflect.Value, error) {
	target := t.GoType()
	v := reflect.ValueOf(a)
	if !v.IsValid() {
		if t == Pointer {
			return reflect.Zero(target), nil
		}
		return reflect.Value{}, fmt.Errorf("nil for %s", t)
	}
	if t == Pointer {
		switch x := a.(type) {
		case uintptr:
			return reflect.ValueOf(x), nil
		case unsafe.Pointer:
			return reflect.ValueOf(uintptr(x)), nil
		}
		if v.Kind() == reflect.Pointer {
			return reflect.ValueOf(v.Pointer()), nil
		}
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := v.Int()
		switch t {
		case Int32:
			if n < math.MinInt32 || n > math.MaxInt32 {
				return reflect.Value{}, fmt.Errorf("%w: %d for %s", errWidth, n, t)
			}
		case Uint32:
			if n < 0 || n > math.MaxUint32 {
				return reflect.Value{}, fmt.Errorf("%w: %d for %s", errWidth, n, t)
			}
		case Uint64, Pointer:
			if n < 0 {
				return reflect.Value{}, fmt.Errorf("%w: %d for %s", errWidth, n, t)
			}
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := v.Uint()
		switch t {
		case Int32:
			if n > math.MaxInt32 {
				return reflect.Value{}, fmt.Errorf("%w: %d for %s", errWidth, n, t)
			}
		case Int64:
			if n > math.MaxInt64 {
				return reflect.Value{}, fmt.Errorf("%w: %d for %s", errWidth, n, t)
			}
		case Uint32:
			if n > math.MaxUint32 {
				return reflect.Value{}, fmt.Errorf("%w: %d for %s", errWidth, n, t)
			}
		}
	case reflect.Float32, reflect.Float64:
		if t != Float32 && t != Float64 {
			return reflect.Value{}, fmt.Errorf("%v is %s, not %s", a, v.Type(), t)
		}
	default:
		return reflect.Value{}, fmt.Errorf("%v is %s, not %s", a, v.Type(), t)
	}
	return v.Convert(target), nil
}
