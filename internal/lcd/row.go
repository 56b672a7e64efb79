package lcd

import (
	"errors"
)

var ErrRowFull = errors.New("lcd: row is full")

// Row is the shadow copy of one display line. Cells at or past the cursor hold
// stale content.
type Row struct {
	cells  [LineWidth]byte
	cursor int
}

// Put stores ch at the cursor and advances it.
func (r *Row) Put(ch byte) error {
	if r.cursor >= LineWidth {
		return ErrRowFull
	}
	r.cells[r.cursor] = ch
	r.cursor++
	return nil
}

// Pad fills the rest of the row with spaces and returns the number of cells added.
func (r *Row) Pad() int {
	n := 0
	for r.cursor < LineWidth {
		r.cells[r.cursor] = ' '
		r.cursor++
		n++
	}
	return n
}

func (r *Row) Len() int {
	return r.cursor
}

func (r *Row) Full() bool {
	return r.cursor >= LineWidth
}

func (r *Row) Reset() {
	r.cursor = 0
}

func (r *Row) String() string {
	return string(r.cells[:r.cursor])
}
