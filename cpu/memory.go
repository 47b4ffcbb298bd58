package cpu

import (
	"iter"
)

// Memory holds all of the processor storage: instruction memory, data
// memory, and the register file.
type Memory struct {
	Code     [INSTRUCTION_SLOTS]Code // Instruction memory, one word per slot.
	Data     [DATA_SIZE]byte         // Data memory, big-endian 16-bit values.
	Register [REGISTER_COUNT]int16   // Register file.
}

// Reset clears all memory and registers to zero.
func (mem *Memory) Reset() {
	clear(mem.Code[:])
	clear(mem.Data[:])
	clear(mem.Register[:])
}

// LoadInstruction installs an instruction at a word aligned code address.
// Any previous instruction in the slot is overwritten.
func (mem *Memory) LoadInstruction(addr Address, code Code) (err error) {
	if addr.Segment() != SEGMENT_CODE {
		err = ErrSegment
		return
	}

	offset := addr.Offset()
	if offset%2 != 0 {
		err = ErrInstructionAlign
		return
	}

	mem.Code[offset/2] = code
	return
}

// StoreData writes a 16-bit value at a data address.
func (mem *Memory) StoreData(addr Address, value int16) (err error) {
	if addr.Segment() != SEGMENT_DATA {
		err = ErrSegment
		return
	}

	return mem.WriteWord(addr.Offset(), value)
}

// SetRegister sets a register. Indices outside the register file are ignored.
func (mem *Memory) SetRegister(index int, value int16) {
	if index < 0 || index >= REGISTER_COUNT {
		return
	}
	mem.Register[index] = value
}

// GetRegister returns the value of a register, or 0 for an invalid index.
func (mem *Memory) GetRegister(index int) int16 {
	if index < 0 || index >= REGISTER_COUNT {
		return 0
	}
	return mem.Register[index]
}

// Instruction returns the instruction in a slot, or 0 for an invalid slot.
func (mem *Memory) Instruction(slot int) Code {
	if slot < 0 || slot >= INSTRUCTION_SLOTS {
		return 0
	}
	return mem.Code[slot]
}

// DataByte returns a byte of data memory, by physical index,
// or 0 for an invalid index.
func (mem *Memory) DataByte(index int) byte {
	if index < 0 || index >= DATA_SIZE {
		return 0
	}
	return mem.Data[index]
}

// ReadWord reads a big-endian 16-bit value at a physical data index.
func (mem *Memory) ReadWord(loc int) (value int16, err error) {
	if loc < 0 || loc+1 >= DATA_SIZE {
		err = ErrDataRange
		return
	}

	value = int16(uint16(mem.Data[loc])<<8 | uint16(mem.Data[loc+1]))
	return
}

// WriteWord writes a big-endian 16-bit value at a physical data index.
func (mem *Memory) WriteWord(loc int, value int16) (err error) {
	if loc < 0 || loc+1 >= DATA_SIZE {
		err = ErrDataRange
		return
	}

	mem.Data[loc] = byte(uint16(value) >> 8)
	mem.Data[loc+1] = byte(uint16(value) & 0xff)
	return
}

// Instructions returns an iterator over instruction memory, by slot.
func (mem *Memory) Instructions() iter.Seq2[int, Code] {
	return func(yield func(slot int, code Code) bool) {
		for slot, code := range mem.Code {
			if !yield(slot, code) {
				return
			}
		}
	}
}

// Bytes returns an iterator over data memory, by physical index.
func (mem *Memory) Bytes() iter.Seq2[int, byte] {
	return func(yield func(index int, value byte) bool) {
		for index, value := range mem.Data {
			if !yield(index, value) {
				return
			}
		}
	}
}
