package cpu

const (
	CODE_SIZE = 512 // Bytes of instruction memory.
	DATA_SIZE = 512 // Bytes of data memory.
	DATA_BASE = 512 // Logical address of data byte 0.

	INSTRUCTION_SLOTS = CODE_SIZE / 2 // 16-bit instruction words.
	REGISTER_COUNT    = 16            // General purpose registers.

	OFFSET_MASK = 0x1ff // 9-bit segment offset.
)

// Segment selects instruction or data memory for a load-time address.
type Segment uint8

const (
	SEGMENT_CODE = Segment(0)
	SEGMENT_DATA = Segment(1)
)

// Address is a 10-bit load-time address: a segment flag in bit 9 and a
// segment offset in bits 8..0. It is never part of executing state.
type Address uint16

// MakeAddress creates an address. The offset is truncated to 9 bits.
func MakeAddress(segment Segment, offset int) Address {
	return Address((uint16(segment)&1)<<9 | uint16(offset)&OFFSET_MASK)
}

// LogicalAddress converts a unified 0..1023 address into an Address.
func LogicalAddress(logical int) (addr Address, err error) {
	switch {
	case logical < 0 || logical >= CODE_SIZE+DATA_SIZE:
		err = ErrAddressRange
	case logical >= DATA_BASE:
		addr = MakeAddress(SEGMENT_DATA, logical-DATA_BASE)
	default:
		addr = MakeAddress(SEGMENT_CODE, logical)
	}

	return
}

// Segment returns the segment flag.
func (addr Address) Segment() Segment {
	return Segment((addr >> 9) & 1)
}

// Offset returns the offset within the segment.
func (addr Address) Offset() int {
	return int(addr & OFFSET_MASK)
}

// Logical returns the address in the unified 0..1023 space.
func (addr Address) Logical() int {
	if addr.Segment() == SEGMENT_DATA {
		return DATA_BASE + addr.Offset()
	}
	return addr.Offset()
}
