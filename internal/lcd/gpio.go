package lcd

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// GPIOPort drives one GPIO pin per bit. Bit i of a value goes to pins[i]; nil
// pins are not connected and ignored.
type GPIOPort struct {
	pins [8]gpio.PinOut
	mask byte
	last byte
}

func NewGPIOPort(pins ...gpio.PinOut) (*GPIOPort, error) {
	if len(pins) > 8 {
		return nil, fmt.Errorf("lcd: a port has at most 8 pins, got %d", len(pins))
	}
	p := &GPIOPort{}
	copy(p.pins[:], pins)
	return p, nil
}

func (p *GPIOPort) Configure(mask byte) error {
	for i, pin := range p.pins {
		if pin == nil || mask&(1<<uint(i)) == 0 {
			continue
		}
		if err := pin.Out(gpio.Low); err != nil {
			return fmt.Errorf("lcd: configuring %s: %w", pin, err)
		}
	}
	p.mask = mask
	p.last = 0
	return nil
}

// Set only touches pins whose level differs from the previous write. Configure
// leaves every output low.
func (p *GPIOPort) Set(value byte) error {
	value &= p.mask
	for i, pin := range p.pins {
		bit := byte(1) << uint(i)
		if pin == nil || p.mask&bit == 0 {
			continue
		}
		if p.last&bit == value&bit {
			continue
		}
		if err := pin.Out(gpio.Level(value&bit != 0)); err != nil {
			return fmt.Errorf("lcd: driving %s: %w", pin, err)
		}
	}
	p.last = value
	return nil
}
