package lcd

import (
	"fmt"
	"sync"
)

// Frame is one byte latched by the controller.
type Frame struct {
	Register Register
	Value    byte
	// Write is false when RW was high at the latch.
	Write bool
}

func (f Frame) String() string {
	return fmt.Sprintf("%v:0x%02x", f.Register, f.Value)
}

// ControlState is a snapshot of the bus taken on every control port write.
type ControlState struct {
	RS, RW, EN bool
	Data       byte
}

const (
	ddramSize  = 0x68
	row2Offset = 0x40
	rowLength  = 0x28
)

// Sim is a simulated HD44780 on the far side of a data and a control Port. It
// latches a frame on every falling edge of EN, keeps the display RAM up to date
// and records everything it saw.
type Sim struct {
	mu          sync.Mutex
	mirrored    bool
	dataMask    byte
	controlMask byte
	data        byte
	control     byte

	frames []Frame
	states []ControlState

	ddram     [ddramSize]byte
	addr      byte
	displayOn bool
	cursor    bool
	blink     bool
	twoLine   bool
}

// NewSim returns a simulator. mirrored must match the bus configuration so
// frames are recorded in their logical bit order.
func NewSim(mirrored bool) *Sim {
	s := &Sim{mirrored: mirrored}
	s.blank()
	return s
}

type simPort struct {
	sim     *Sim
	control bool
}

func (p simPort) Configure(mask byte) error {
	p.sim.mu.Lock()
	defer p.sim.mu.Unlock()

	if p.control {
		p.sim.controlMask = mask
	} else {
		p.sim.dataMask = mask
	}
	return nil
}

func (p simPort) Set(value byte) error {
	p.sim.mu.Lock()
	defer p.sim.mu.Unlock()

	if p.control {
		p.sim.setControl(value & p.sim.controlMask)
	} else {
		p.sim.data = value & p.sim.dataMask
	}
	return nil
}

func (s *Sim) DataPort() Port {
	return simPort{sim: s}
}

func (s *Sim) ControlPort() Port {
	return simPort{sim: s, control: true}
}

func (s *Sim) setControl(v byte) {
	prev := s.control
	s.control = v
	s.states = append(s.states, ControlState{
		RS:   v&registerSelectBit != 0,
		RW:   v&readWriteBit != 0,
		EN:   v&enableBit != 0,
		Data: s.data,
	})

	if prev&enableBit != 0 && v&enableBit == 0 {
		s.latch()
	}
}

func (s *Sim) latch() {
	f := Frame{
		Register: CommandRegister,
		Value:    s.data,
		Write:    s.control&readWriteBit == 0,
	}
	if s.control&registerSelectBit != 0 {
		f.Register = DataRegister
	}
	if s.mirrored {
		f.Value = Mirror(f.Value)
	}
	s.frames = append(s.frames, f)
	if !f.Write {
		return
	}

	if f.Register == DataRegister {
		s.write(f.Value)
	} else {
		s.execute(f.Value)
	}
}

func (s *Sim) execute(c byte) {
	switch {
	case c&0x80 != 0:
		s.addr = c & 0x7f
	case c&0x40 != 0:
		// CGRAM address, not modelled
	case c&0x20 != 0:
		s.twoLine = c&0x08 != 0
	case c&0x10 != 0:
		// cursor or display shift, not modelled
	case c&0x08 != 0:
		s.displayOn = c&0x04 != 0
		s.cursor = c&0x02 != 0
		s.blink = c&0x01 != 0
	case c&0x04 != 0:
		// entry mode, only increment is modelled
	case c&0x02 != 0:
		s.addr = 0
	case c == clearDisplay:
		s.blank()
	}
}

func (s *Sim) write(v byte) {
	if int(s.addr) < ddramSize {
		s.ddram[s.addr] = v
	}
	s.addr++
	switch s.addr {
	case rowLength:
		s.addr = row2Offset
	case row2Offset + rowLength:
		s.addr = 0
	}
}

func (s *Sim) blank() {
	for i := range s.ddram {
		s.ddram[i] = ' '
	}
	s.addr = 0
}

// Screen returns the visible 16 characters of each row.
func (s *Sim) Screen() [Rows]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return [Rows]string{
		string(s.ddram[0:LineWidth]),
		string(s.ddram[row2Offset : row2Offset+LineWidth]),
	}
}

func (s *Sim) Frames() []Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Frame(nil), s.frames...)
}

func (s *Sim) States() []ControlState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]ControlState(nil), s.states...)
}

// DisplayOn reports the display, cursor and blink flags last set.
func (s *Sim) DisplayOn() (on, cursor, blink bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.displayOn, s.cursor, s.blink
}

func (s *Sim) TwoLine() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.twoLine
}

// Reset forgets all recorded frames and states. The display RAM is kept.
func (s *Sim) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frames = nil
	s.states = nil
}
