package lcd

import (
	"time"
)

// Port is a write-only 8-bit output register. The display never reads back, so
// implementations are not required to support input.
type Port interface {
	// Configure marks the bits in mask as outputs.
	Configure(mask byte) error
	// Set drives every configured bit to the matching bit of value.
	Set(value byte) error
}

// Watchdog is reset around long settle delays so a hardware watchdog does not
// fire while the controller is busy.
type Watchdog interface {
	Reset()
}

// Opts is the configuration for the bus.
type Opts struct {
	// Mirrored reverses the bit order of every byte before it is put on the data
	// port, for boards where D0..D7 are wired backwards.
	Mirrored bool
	// Watchdog is optional.
	Watchdog Watchdog
	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)
}
