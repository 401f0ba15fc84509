package ir

import "dyva/internal/source"

// ValueKind distinguishes the four value shapes of §3.4.
type ValueKind uint8

const (
	ValueInvalid ValueKind = iota
	ValueRegister
	ValueParameter
	ValueConstant
	ValuePoison
)

// Value is a comparable SSA value: the register produced by one
// instruction, a block parameter, a constant, or poison. Comparability
// lets Value key the function's def-use map directly.
type Value struct {
	Kind  ValueKind
	Reg   InstrID
	Block BlockID
	Index int
	Const IRConstant
	Site  source.Span // meaningful only for ValuePoison
}

func RegisterValue(id InstrID) Value { return Value{Kind: ValueRegister, Reg: id} }

func ParameterValue(block BlockID, index int) Value {
	return Value{Kind: ValueParameter, Block: block, Index: index}
}

func ConstantValue(c IRConstant) Value { return Value{Kind: ValueConstant, Const: c} }

func PoisonValue(site source.Span) Value { return Value{Kind: ValuePoison, Site: site} }

// ConstKind enumerates the constant shapes of §3.4.
type ConstKind uint8

const (
	ConstUnit ConstKind = iota
	ConstBool
	ConstInt
	ConstString
	ConstFunction
	ConstBuiltinPrint
	ConstBuiltinType
)

// IRConstant is a compile-time-known value embedded directly in an
// instruction's operand list.
type IRConstant struct {
	Kind     ConstKind
	Bool     bool
	Int      int64
	Str      string
	FuncName string // for ConstFunction: the referenced free function's name
}

func UnitConstant() IRConstant              { return IRConstant{Kind: ConstUnit} }
func BoolConstant(b bool) IRConstant        { return IRConstant{Kind: ConstBool, Bool: b} }
func IntConstant(n int64) IRConstant        { return IRConstant{Kind: ConstInt, Int: n} }
func StringConstant(s string) IRConstant    { return IRConstant{Kind: ConstString, Str: s} }
func FunctionConstant(name string) IRConstant {
	return IRConstant{Kind: ConstFunction, FuncName: name}
}
func BuiltinPrint() IRConstant { return IRConstant{Kind: ConstBuiltinPrint} }
func BuiltinType() IRConstant  { return IRConstant{Kind: ConstBuiltinType} }
