package cpu

import (
	"fmt"
)

// Opcode is the 4-bit operation selector of an instruction word.
type Opcode uint8

//go:generate go tool stringer -type=Opcode
const (
	ADD  = Opcode(0)  // R[op1] = R[op2] + R[op3]
	ADDI = Opcode(1)  // R[op1] = R[op2] + sign4(op3)
	SUB  = Opcode(2)  // R[op1] = R[op2] - R[op3]
	SUBI = Opcode(3)  // R[op1] = R[op2] - sign4(op3)
	MUL  = Opcode(6)  // R[op1] = R[op2] * R[op3]
	MULI = Opcode(7)  // R[op1] = R[op2] * sign4(op3)
	LD   = Opcode(8)  // R[op1] = data[R[op2] + R[op3]]
	SD   = Opcode(10) // data[R[op1] + R[op2]] = R[op3]
	JMP  = Opcode(12) // PC += sign8(op2:op3) - 2
	BEQZ = Opcode(13) // if R[op1] == 0, PC += sign8(op2:op3) - 2
	HLT  = Opcode(14) // Stop after this instruction retires.
)

// Opcodes lists the defined opcodes, in encoding order.
var Opcodes = []Opcode{ADD, ADDI, SUB, SUBI, MUL, MULI, LD, SD, JMP, BEQZ, HLT}

// Valid returns true if the opcode has defined semantics.
// The reserved values 4, 5, 9, 11 and 15 retire as no-ops.
func (op Opcode) Valid() bool {
	switch op {
	case ADD, ADDI, SUB, SUBI, MUL, MULI, LD, SD, JMP, BEQZ, HLT:
		return true
	}
	return false
}

// Code is a single 16-bit instruction word.
//
//	15    12 11     8 7      4 3      0
//	+-------+--------+--------+--------+
//	| opcode|  op1   |  op2   |  op3   |
//	+-------+--------+--------+--------+
type Code uint16

// MakeCode creates an instruction word. Each field is truncated to 4 bits.
func MakeCode(op Opcode, op1, op2, op3 int) Code {
	return Code((uint16(op)&0xf)<<12 |
		(uint16(op1)&0xf)<<8 |
		(uint16(op2)&0xf)<<4 |
		(uint16(op3)&0xf)<<0)
}

// Opcode returns the opcode field.
func (code Code) Opcode() Opcode {
	return Opcode((code >> 12) & 0xf)
}

// Op1 returns the first operand field.
func (code Code) Op1() int {
	return int((code >> 8) & 0xf)
}

// Op2 returns the second operand field.
func (code Code) Op2() int {
	return int((code >> 4) & 0xf)
}

// Op3 returns the third operand field.
func (code Code) Op3() int {
	return int((code >> 0) & 0xf)
}

// Decode returns all four fields of the instruction word.
func (code Code) Decode() (op Opcode, op1, op2, op3 int) {
	return code.Opcode(), code.Op1(), code.Op2(), code.Op3()
}

// Imm4 returns op3 as a signed 4-bit immediate.
func (code Code) Imm4() int16 {
	return Sign4(code.Op3())
}

// Offset8 returns op2:op3 as a signed 8-bit branch offset.
func (code Code) Offset8() int16 {
	return Sign8(code.Op2()<<4 | code.Op3())
}

// Sign4 decodes a 4-bit two's-complement value.
func Sign4(value int) int16 {
	value &= 0xf
	if value > 7 {
		value -= 16
	}
	return int16(value)
}

// Sign8 decodes an 8-bit two's-complement value.
func Sign8(value int) int16 {
	value &= 0xff
	if value > 127 {
		value -= 256
	}
	return int16(value)
}

// String returns the instruction as mnemonic and fields.
func (code Code) String() string {
	op, op1, op2, op3 := code.Decode()
	switch op {
	case ADD, SUB, MUL, LD, SD:
		return fmt.Sprintf("%v r%d r%d r%d", op, op1, op2, op3)
	case ADDI, SUBI, MULI:
		return fmt.Sprintf("%v r%d r%d %d", op, op1, op2, code.Imm4())
	case JMP:
		return fmt.Sprintf("%v %+d", op, code.Offset8())
	case BEQZ:
		return fmt.Sprintf("%v r%d %+d", op, op1, code.Offset8())
	case HLT:
		return op.String()
	}
	return fmt.Sprintf("%v %d %d %d", op, op1, op2, op3)
}
