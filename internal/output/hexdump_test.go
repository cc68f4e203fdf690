package output

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDumpEmitsRowOnceColumnsFill(t *testing.T) {
	var rows [][]int16
	var offsets []uint64

	var d Dump
	d.init()
	d.SetColumns(4)
	d.SetLineEmitter(func(off uint64, bytes []int16, starred bool) {
		offsets = append(offsets, off)
		rows = append(rows, append([]int16(nil), bytes...))
	})

	d.Hex(HexMatch, 0, []byte{1, 2, 3, 4, 5, 6})
	d.Done()

	require.Len(t, rows, 2)
	require.Equal(t, []uint64{0, 4}, offsets)
	require.Equal(t, int16(HexMatch<<8)|1, rows[0][0])
	require.Equal(t, int16(HexMatch<<8)|5, rows[1][0])
}

func TestDumpFoldsIdenticalRowsIntoStar(t *testing.T) {
	var emitted int
	var starFlags []bool

	var d Dump
	d.init()
	d.SetColumns(2)
	d.SetLineEmitter(func(off uint64, bytes []int16, starred bool) {
		emitted++
		starFlags = append(starFlags, starred)
	})

	row := []byte{9, 9}
	d.Hex(HexLine, 0, row)
	d.Hex(HexLine, 2, row)
	d.Hex(HexLine, 4, row) // third identical row folds into the existing "*" line
	d.Done()

	require.Equal(t, 2, emitted)
	require.Equal(t, []bool{false, true}, starFlags)
}

func TestDumpIncompleteAndDone(t *testing.T) {
	var lastOff uint64
	var d Dump
	d.init()
	d.SetColumns(8)
	d.SetLineEmitter(func(off uint64, bytes []int16, starred bool) {
		lastOff = off
	})

	d.Hex(HexContextLine, 100, []byte{1, 2, 3})
	require.True(t, d.Incomplete())
	d.Done()
	require.False(t, d.Incomplete())
	require.Equal(t, uint64(100), lastOff)
}
