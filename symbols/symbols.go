package symbols

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/RednibCoding/FlatBasic/ast"
)

// TypeName is a primitive type name or the name of a user defined struct.
type TypeName string

const (
	Void   TypeName = "void"
	Char   TypeName = "char"
	UChar  TypeName = "uchar"
	Short  TypeName = "short"
	UShort TypeName = "ushort"
	Int    TypeName = "int"
	UInt   TypeName = "uint"
	Long   TypeName = "long"
	ULong  TypeName = "ulong"
	Float  TypeName = "float"
	Double TypeName = "double"
	String TypeName = "string"
	Size   TypeName = "size"
)

var primitives = map[TypeName]bool{
	Void:   true,
	Char:   true,
	UChar:  true,
	Short:  true,
	UShort: true,
	Int:    true,
	UInt:   true,
	Long:   true,
	ULong:  true,
	Float:  true,
	Double: true,
	String: true,
	Size:   true,
}

// ranks orders the numeric types; a higher rank wins promotion.
var ranks = map[TypeName]int{
	Char:   1,
	UChar:  2,
	Short:  3,
	UShort: 4,
	Int:    5,
	UInt:   6,
	Size:   7,
	Long:   8,
	ULong:  9,
	Float:  10,
	Double: 11,
}

type bounds struct {
	min *big.Int
	max *big.Int
}

func bound(min, max string) bounds {
	lo, _ := new(big.Int).SetString(min, 10)
	hi, _ := new(big.Int).SetString(max, 10)
	return bounds{lo, hi}
}

var ranges = map[TypeName]bounds{
	Char:   bound("-128", "127"),
	UChar:  bound("0", "255"),
	Short:  bound("-32768", "32767"),
	UShort: bound("0", "65535"),
	Int:    bound("-2147483648", "2147483647"),
	UInt:   bound("0", "4294967295"),
	Long:   bound("-9223372036854775808", "9223372036854775807"),
	ULong:  bound("0", "18446744073709551615"),
}

func IsPrimitive(name string) bool {
	return primitives[TypeName(name)]
}

func IsNumeric(t TypeName) bool {
	_, ok := ranks[t]
	return ok
}

func IsFloating(t TypeName) bool {
	return t == Float || t == Double
}

// IsIntegral reports whether t is numeric but not floating point.
func IsIntegral(t TypeName) bool {
	return IsNumeric(t) && !IsFloating(t)
}

// Rank returns the position of t in the promotion order, or 0 if t is not
// numeric.
func Rank(t TypeName) int {
	return ranks[t]
}

// Promote returns the wider of two numeric types. On equal rank the right
// operand's type is kept.
func Promote(left, right TypeName) TypeName {
	if ranks[left] > ranks[right] {
		return left
	}
	return right
}

// InRange reports whether the integer literal value fits t. Types without
// fixed bounds (size, float, double) accept any value.
func InRange(value *big.Int, t TypeName) bool {
	b, ok := ranges[t]
	if !ok {
		return true
	}
	return value.Cmp(b.min) >= 0 && value.Cmp(b.max) <= 0
}

type Symbol struct {
	Type    TypeName
	Pointer bool

	Callable      bool
	Params        []Symbol
	ReturnType    TypeName
	ReturnPointer bool

	// Array marks a dim declaration; Type is then the element type.
	Array bool

	Default ast.Expression
}

func Value(t TypeName) Symbol {
	return Symbol{Type: t}
}

func PointerTo(t TypeName) Symbol {
	return Symbol{Type: t, Pointer: true}
}

// Procedure builds the callable symbol of a procedure. Procedures are
// pointer-sized values.
func Procedure(params []Symbol, returns TypeName, returnsPointer bool) Symbol {
	return Symbol{
		Type:          Size,
		Pointer:       true,
		Callable:      true,
		Params:        params,
		ReturnType:    returns,
		ReturnPointer: returnsPointer,
	}
}

// Returned is the value a call to a callable symbol produces.
func (s Symbol) Returned() Symbol {
	return Symbol{Type: s.ReturnType, Pointer: s.ReturnPointer}
}

// TypeString renders the type part of s as written in source.
func (s Symbol) TypeString() string {
	if s.Pointer {
		return "ptr " + string(s.Type)
	}
	return string(s.Type)
}

func (s Symbol) String() string {
	if s.Callable {
		var params []string
		for _, p := range s.Params {
			params = append(params, p.TypeString())
		}
		return fmt.Sprintf("proc(%s): %s", strings.Join(params, ", "), s.Returned().TypeString())
	}
	if s.Array {
		return fmt.Sprintf("array of %s", s.TypeString())
	}
	return s.TypeString()
}

// SameType reports whether a and b have identical type and pointer-ness.
func SameType(a, b Symbol) bool {
	return a.Type == b.Type && a.Pointer == b.Pointer
}

// Compatible reports whether value may be stored into target. Pointer-ness
// mismatches between numerics still pass here; callers check them
// separately so they can be reported distinctly.
func Compatible(target, value Symbol) bool {
	if SameType(target, value) {
		return true
	}

	if target.Pointer {
		if value.Pointer {
			return target.Type == value.Type
		}
		return IsIntegral(value.Type)
	}

	targetRank, valueRank := Rank(target.Type), Rank(value.Type)
	if targetRank == 0 || valueRank == 0 {
		return false
	}
	if targetRank < valueRank {
		return false
	}
	if target.Type == Float && (value.Type == Long || value.Type == ULong) {
		return false
	}
	return true
}
