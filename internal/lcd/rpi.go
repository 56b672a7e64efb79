//go:build pi

package lcd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Open initializes the periph.io host drivers and looks up the pins of b.
func Open(b Board) (Wiring, error) {
	if _, err := host.Init(); err != nil {
		return Wiring{}, fmt.Errorf("unable to initialize periph: %w", err)
	}
	log.Infoln("Opening LCD pins")

	dataPins := make([]gpio.PinOut, 0, len(b.Data))
	for _, name := range b.Data {
		pin, err := lookup(name)
		if err != nil {
			return Wiring{}, err
		}
		dataPins = append(dataPins, pin)
	}

	controlPins := make([]gpio.PinOut, 0, 3)
	// bit order: EN, RW, RS
	for _, name := range []string{b.EN, b.RW, b.RS} {
		pin, err := lookup(name)
		if err != nil {
			return Wiring{}, err
		}
		controlPins = append(controlPins, pin)
	}

	data, err := NewGPIOPort(dataPins...)
	if err != nil {
		return Wiring{}, err
	}
	control, err := NewGPIOPort(controlPins...)
	if err != nil {
		return Wiring{}, err
	}
	return Wiring{Data: data, Control: control}, nil
}

func lookup(name string) (gpio.PinOut, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("unknown pin %q", name)
	}
	log.Debugf("Using %s for %s", pin, name)
	return pin, nil
}
