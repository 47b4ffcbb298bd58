package dump

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ezrec/isa16/cpu"
)

// Registers writes a table of the processor registers to w.
func Registers(w io.Writer, c *cpu.Cpu) (err error) {
	tw := table.NewWriter()
	tw.SetTitle(fmt.Sprintf("pc %03d, %d ticks", c.Pc, c.Ticks))
	tw.AppendHeader(table.Row{"Reg", "Dec", "Hex", "Reg", "Dec", "Hex"})

	half := cpu.REGISTER_COUNT / 2
	for n := range half {
		lo := c.Register[n]
		hi := c.Register[n+half]
		tw.AppendRow(table.Row{
			fmt.Sprintf("r%d", n), lo, fmt.Sprintf("%04X", uint16(lo)),
			fmt.Sprintf("r%d", n+half), hi, fmt.Sprintf("%04X", uint16(hi)),
		})
	}

	_, err = fmt.Fprintln(w, tw.Render())
	return
}
