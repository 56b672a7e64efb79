package lcd

// Board names the GPIO pins the display is wired to.
type Board struct {
	Data       [8]string
	RS, RW, EN string
	Mirrored   bool
}

// DefaultBoard is the wiring used on the reference Raspberry Pi build.
var DefaultBoard = Board{
	Data: [8]string{"GPIO5", "GPIO6", "GPIO13", "GPIO19", "GPIO26", "GPIO16", "GPIO20", "GPIO21"},
	RS:   "GPIO4",
	RW:   "GPIO27",
	EN:   "GPIO17",
}

// Wiring holds the two ports of an opened board. Sim is only set when the
// board is simulated.
type Wiring struct {
	Data    Port
	Control Port
	Sim     *Sim
}

// Bus returns a bus over the wiring.
func (w Wiring) Bus(opts *Opts) *Bus {
	return NewBus(w.Data, w.Control, opts)
}
