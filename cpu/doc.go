// Package cpu implements the isa16 processor.
//
// The processor has sixteen 16-bit signed registers (r0-r15), 256 words of
// instruction memory and 512 bytes of data memory. Instruction and data
// memory share one logical address space: 0-511 is code, 512-1023 is data.
// Registers used as memory operands hold logical data addresses.
//
// Instructions are 16 bits wide: a 4-bit opcode and three 4-bit operands.
// Immediates are 4-bit two's-complement, branch offsets are 8-bit
// two's-complement formed from op2:op3 and relative to the branch itself.
//
// Data accesses outside data memory, and branches to odd code offsets, fault
// with ErrDataRange and ErrPcAlign. PC arithmetic otherwise wraps at 9 bits.
package cpu
