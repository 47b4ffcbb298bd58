package cpu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// newCpuWith creates a CPU with a program loaded at offset 0.
func newCpuWith(t *testing.T, program ...Code) (cpu *Cpu) {
	cpu = NewCpu()
	for n, code := range program {
		err := cpu.LoadInstruction(MakeAddress(SEGMENT_CODE, n*2), code)
		assert.NoError(t, err)
	}

	return
}

func TestCpu_Arithmetic(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name   string
		code   Code
		r2, r3 int16
		r1     int16
	}{
		{"add", MakeCode(ADD, 1, 2, 3), 5, 7, 12},
		{"add_wrap", MakeCode(ADD, 1, 2, 3), 32767, 1, -32768},
		{"addi", MakeCode(ADDI, 1, 2, 7), 5, 0, 12},
		{"addi_neg", MakeCode(ADDI, 1, 2, 8), 5, 0, -3},
		{"sub", MakeCode(SUB, 1, 2, 3), 5, 7, -2},
		{"sub_wrap", MakeCode(SUB, 1, 2, 3), -32768, 1, 32767},
		{"subi", MakeCode(SUBI, 1, 2, 3), 5, 0, 2},
		{"subi_neg", MakeCode(SUBI, 1, 2, 0xf), 5, 0, 6},
		{"mul", MakeCode(MUL, 1, 2, 3), -6, 7, -42},
		{"mul_wrap", MakeCode(MUL, 1, 2, 3), 256, 256, 0},
		{"muli", MakeCode(MULI, 1, 2, 3), 11, 0, 33},
		{"muli_neg", MakeCode(MULI, 1, 2, 0xe), 11, 0, -22},
	}

	for _, entry := range table {
		cpu := newCpuWith(t, entry.code, MakeCode(HLT, 0, 0, 0))
		for n := range REGISTER_COUNT {
			cpu.SetRegister(n, int16(100+n))
		}
		cpu.SetRegister(2, entry.r2)
		cpu.SetRegister(3, entry.r3)

		before := cpu.Register
		err := cpu.Tick()
		assert.NoError(err, entry.name)
		assert.Equal(entry.r1, cpu.Register[1], entry.name)
		assert.Equal(uint16(2), cpu.Pc, entry.name)

		for n := range REGISTER_COUNT {
			if n != 1 {
				assert.Equal(before[n], cpu.Register[n], "%v: r%d", entry.name, n)
			}
		}
	}
}

func TestCpu_SameRegister(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpuWith(t, MakeCode(ADD, 4, 4, 4))
	cpu.SetRegister(4, 21)

	assert.NoError(cpu.Tick())
	assert.Equal(int16(42), cpu.Register[4])
}

func TestCpu_LoadStore(t *testing.T) {
	assert := assert.New(t)

	values := []int16{0, 1, -1, 0x1234, -32768, 32767, 0x00ff, -256}
	addresses := []int16{512, 513, 600, 777, 1022}

	for _, address := range addresses {
		for _, value := range values {
			cpu := newCpuWith(t,
				MakeCode(SD, 1, 2, 3),
				MakeCode(LD, 4, 1, 2),
				MakeCode(HLT, 0, 0, 0),
			)
			cpu.SetRegister(1, address-10)
			cpu.SetRegister(2, 10)
			cpu.SetRegister(3, value)

			err := cpu.Run(context.Background(), 10)
			assert.NoError(err)
			assert.Equal(value, cpu.Register[4], "%v @ %v", value, address)

			loc := int(address) - DATA_BASE
			assert.Equal(byte(uint16(value)>>8), cpu.DataByte(loc))
			assert.Equal(byte(uint16(value)), cpu.DataByte(loc+1))
		}
	}
}

func TestCpu_LoadStore_Range(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name string
		code Code
		base int16
	}{
		{"ld_low", MakeCode(LD, 4, 1, 2), 511},
		{"ld_high", MakeCode(LD, 4, 1, 2), 1023},
		{"ld_code", MakeCode(LD, 4, 1, 2), 0},
		{"sd_low", MakeCode(SD, 1, 2, 3), 500},
		{"sd_high", MakeCode(SD, 1, 2, 3), 1023},
		{"sd_far", MakeCode(SD, 1, 2, 3), 30000},
	}

	for _, entry := range table {
		cpu := newCpuWith(t, entry.code, MakeCode(HLT, 0, 0, 0))
		cpu.SetRegister(1, entry.base)
		cpu.SetRegister(2, 0)
		cpu.SetRegister(3, 0x5555)
		cpu.SetRegister(4, 77)
		before := cpu.Memory

		err := cpu.Tick()
		assert.ErrorIs(err, ErrDataRange, entry.name)

		var eo *ErrOpcode
		assert.ErrorAs(err, &eo, entry.name)
		assert.Equal(entry.code, eo.Code, entry.name)

		assert.Equal(before, cpu.Memory, entry.name)
		assert.Equal(uint16(0), cpu.Pc, entry.name)
		assert.Equal(0, cpu.Ticks, entry.name)
	}
}

func TestCpu_Jump(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name   string
		at     int
		op2    int
		op3    int
		target uint16
	}{
		{"zero_displacement", 10, 0, 2, 12},
		{"self", 10, 0, 0, 10},
		{"forward", 10, 0, 8, 18},
		{"backward", 10, 0xf, 0xc, 6},
		{"wrap_low", 0, 0xf, 0xe, 510},
		{"wrap_high", 500, 1, 4, 8},
	}

	for _, entry := range table {
		cpu := NewCpu()
		err := cpu.LoadInstruction(MakeAddress(SEGMENT_CODE, entry.at), MakeCode(JMP, 0, entry.op2, entry.op3))
		assert.NoError(err)
		cpu.Pc = uint16(entry.at)

		err = cpu.Tick()
		assert.NoError(err, entry.name)
		assert.Equal(entry.target, cpu.Pc, entry.name)
	}
}

func TestCpu_Jump_Odd(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpuWith(t, MakeCode(JMP, 0, 0, 3))

	err := cpu.Tick()
	assert.ErrorIs(err, ErrPcAlign)
	assert.Equal(uint16(0), cpu.Pc)
	assert.Equal(0, cpu.Ticks)
}

func TestCpu_Beqz(t *testing.T) {
	assert := assert.New(t)

	for _, value := range []int16{0, 1, -1, 2, 32767, -32768} {
		cpu := newCpuWith(t, MakeCode(BEQZ, 5, 0, 6))
		cpu.SetRegister(5, value)

		err := cpu.Tick()
		assert.NoError(err)
		if value == 0 {
			assert.Equal(uint16(6), cpu.Pc, value)
		} else {
			assert.Equal(uint16(2), cpu.Pc, value)
		}
	}
}

func TestCpu_Halt(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpuWith(t, MakeCode(HLT, 1, 2, 3), MakeCode(ADDI, 0, 0, 1))
	before := cpu.Register

	assert.False(cpu.Halted())
	assert.NoError(cpu.Tick())
	assert.True(cpu.Halted())
	assert.Equal(1, cpu.Ticks)
	assert.Equal(before, cpu.Register)

	// Further ticks do nothing.
	assert.NoError(cpu.Tick())
	assert.Equal(1, cpu.Ticks)
	assert.Equal(uint16(2), cpu.Pc)
	assert.Equal(int16(0), cpu.Register[0])
}

func TestCpu_Reserved(t *testing.T) {
	assert := assert.New(t)

	for _, op := range []Opcode{4, 5, 9, 11, 15} {
		cpu := newCpuWith(t, MakeCode(op, 1, 2, 3), MakeCode(HLT, 0, 0, 0))
		for n := range REGISTER_COUNT {
			cpu.SetRegister(n, int16(n+512))
		}
		before := cpu.Memory

		err := cpu.Run(context.Background(), 10)
		assert.NoError(err, op.String())
		assert.True(cpu.Halted())
		assert.Equal(2, cpu.Ticks, op.String())
		assert.Equal(before, cpu.Memory, op.String())
	}
}

func TestCpu_Program(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name       string
		second     Code
		r0, r1, r2 int16
	}{
		// ADDI r1 r0 +4 adds to r0, which already holds 3.
		{"from_r0", MakeCode(ADDI, 1, 0, 4), 3, 7, 21},
		{"from_r1", MakeCode(ADDI, 1, 1, 4), 3, 4, 12},
	}

	for _, entry := range table {
		cpu := newCpuWith(t,
			MakeCode(ADDI, 0, 0, 3),
			entry.second,
			MakeCode(MUL, 2, 0, 1),
			MakeCode(HLT, 0, 0, 0),
		)

		err := cpu.Run(context.Background(), 0)
		assert.NoError(err, entry.name)
		assert.Equal(entry.r0, cpu.GetRegister(0), entry.name)
		assert.Equal(entry.r1, cpu.GetRegister(1), entry.name)
		assert.Equal(entry.r2, cpu.GetRegister(2), entry.name)
		for n := 3; n < REGISTER_COUNT; n++ {
			assert.Equal(int16(0), cpu.GetRegister(n), entry.name)
		}
		assert.Equal(4, cpu.Ticks, entry.name)
		assert.Equal(uint16(8), cpu.Pc, entry.name)
	}
}

func TestCpu_Loop(t *testing.T) {
	assert := assert.New(t)

	// r0 = 5; r1 = 0; do { r1 += 3; r0 -= 1 } while r0 != 0
	cpu := newCpuWith(t,
		MakeCode(ADDI, 0, 0, 5),    // 0
		MakeCode(BEQZ, 0, 0, 8),    // 2: exit when r0 == 0
		MakeCode(ADDI, 1, 1, 3),    // 4
		MakeCode(SUBI, 0, 0, 1),    // 6
		MakeCode(JMP, 0, 0xf, 0xa), // 8: back to 2
		MakeCode(HLT, 0, 0, 0),     // 10
	)

	err := cpu.Run(context.Background(), 100)
	assert.NoError(err)
	assert.Equal(int16(0), cpu.Register[0])
	assert.Equal(int16(15), cpu.Register[1])
}

func TestCpu_Runaway(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpuWith(t, MakeCode(JMP, 0, 0, 0))

	err := cpu.Run(context.Background(), 1000)
	assert.ErrorIs(err, ErrBudget)
	assert.Equal(1000, cpu.Ticks)
	assert.Equal(uint16(0), cpu.Pc)
	assert.False(cpu.Halted())

	// Empty memory is all ADD r0 r0 r0, which wraps around forever.
	cpu = NewCpu()
	err = cpu.Run(context.Background(), 600)
	assert.ErrorIs(err, ErrBudget)
	assert.Equal(uint16((600*2)%CODE_SIZE), cpu.Pc)
}

func TestCpu_Cancel(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpuWith(t, MakeCode(JMP, 0, 0, 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cpu.Run(ctx, 0)
	assert.ErrorIs(err, ErrCancelled)
	assert.ErrorIs(err, context.Canceled)
	assert.Equal(0, cpu.Ticks)
}

func TestCpu_Reset(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpuWith(t, MakeCode(ADDI, 0, 0, 1), MakeCode(HLT, 0, 0, 0))

	assert.NoError(cpu.Run(context.Background(), 0))
	assert.Equal(int16(1), cpu.Register[0])

	cpu.Reset()
	assert.False(cpu.Halted())
	assert.Equal(0, cpu.Ticks)
	assert.Equal(uint16(0), cpu.Pc)

	assert.NoError(cpu.Run(context.Background(), 0))
	assert.Equal(int16(2), cpu.Register[0])
}

func TestCpu_String(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Pc = 12
	cpu.SetRegister(15, -1)

	text := cpu.String()
	assert.Contains(text, "   pc: 012\n")
	assert.Contains(text, "   r0: 0000 (0)\n")
	assert.Contains(text, "  r15: FFFF (-1)\n")
}
