package lcd

import (
	"time"
)

type Line byte

func (l Line) String() string {
	switch l {
	case Line1:
		return "L1"
	case Line2:
		return "L2"
	}
	return "N/A"
}

const (
	// Line1 and Line2 are the DDRAM "set address" commands for the start of each row.
	Line1 Line = 0x80
	Line2 Line = 0xC0

	clearDisplay        byte = 0x01
	entryIncrement      byte = 0x06
	displayOffCursorOff byte = 0x08
	displayOnCursorOn   byte = 0x0E // blink bit clear
	twoLineMode         byte = 0x38

	LineWidth = 16
	Rows      = 2
)

// Control port bits.
const (
	enableBit         byte = 1 << 0
	readWriteBit      byte = 1 << 1
	registerSelectBit byte = 1 << 2

	controlMask = enableBit | readWriteBit | registerSelectBit
)

const (
	EnablePulse  = 80 * time.Microsecond
	PowerOnDelay = 100 * time.Millisecond
	ClearDelay   = 500 * time.Millisecond
	HomeDelay    = 1000 * time.Millisecond
)

type Register byte

const (
	CommandRegister Register = iota
	DataRegister
)

func (r Register) String() string {
	if r == DataRegister {
		return "data"
	}
	return "command"
}
