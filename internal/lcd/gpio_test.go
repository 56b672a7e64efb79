package lcd

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

type countingPin struct {
	gpiotest.Pin
	outs int
}

func (p *countingPin) Out(l gpio.Level) error {
	p.outs++
	return p.Pin.Out(l)
}

type brokenPin struct {
	gpiotest.Pin
}

func (p *brokenPin) Out(gpio.Level) error {
	return errors.New("pin is gone")
}

func newPins(n int) ([]*countingPin, []gpio.PinOut) {
	pins := make([]*countingPin, n)
	outs := make([]gpio.PinOut, n)
	for i := range pins {
		pins[i] = &countingPin{Pin: gpiotest.Pin{N: "D" + string(rune('0'+i)), Num: i}}
		outs[i] = pins[i]
	}
	return pins, outs
}

func levels(pins []*countingPin) byte {
	var v byte
	for i, p := range pins {
		if p.Read() == gpio.High {
			v |= 1 << uint(i)
		}
	}
	return v
}

func TestGPIOPortSet(t *testing.T) {
	pins, outs := newPins(8)
	p, err := NewGPIOPort(outs...)
	require.NoError(t, err)

	require.NoError(t, p.Configure(0xff))
	assert.Equal(t, byte(0), levels(pins))

	for _, v := range []byte{0xA5, 0x5A, 0x01, 0x80, 0x00, 0xFF} {
		require.NoError(t, p.Set(v))
		assert.Equal(t, v, levels(pins), "0x%02x", v)
	}
}

func TestGPIOPortOnlyDrivesChangedPins(t *testing.T) {
	pins, outs := newPins(3)
	p, err := NewGPIOPort(outs...)
	require.NoError(t, err)
	require.NoError(t, p.Configure(0x07))

	require.NoError(t, p.Set(0x01))
	require.NoError(t, p.Set(0x03))

	assert.Equal(t, 2, pins[0].outs, "configure, then high once")
	assert.Equal(t, 2, pins[1].outs)
	assert.Equal(t, 1, pins[2].outs)
}

func TestGPIOPortIgnoresUnconfiguredBits(t *testing.T) {
	pins, outs := newPins(4)
	p, err := NewGPIOPort(outs...)
	require.NoError(t, err)
	require.NoError(t, p.Configure(0x03))

	require.NoError(t, p.Set(0x0f))

	assert.Equal(t, byte(0x03), levels(pins))
	assert.Equal(t, 0, pins[3].outs)
}

func TestGPIOPortUnconnectedPins(t *testing.T) {
	pins, outs := newPins(2)
	p, err := NewGPIOPort(nil, outs[0], nil, outs[1])
	require.NoError(t, err)
	require.NoError(t, p.Configure(0xff))

	require.NoError(t, p.Set(0x08))

	assert.Equal(t, gpio.Low, pins[0].Read())
	assert.Equal(t, gpio.High, pins[1].Read())
}

func TestGPIOPortTooManyPins(t *testing.T) {
	_, outs := newPins(9)
	_, err := NewGPIOPort(outs...)
	assert.Error(t, err)
}

func TestGPIOPortErrors(t *testing.T) {
	p, err := NewGPIOPort(&brokenPin{Pin: gpiotest.Pin{N: "broken"}})
	require.NoError(t, err)

	err = p.Configure(0x01)
	assert.ErrorContains(t, err, "broken")
}

func TestBusOverGPIO(t *testing.T) {
	dataPins, dataOuts := newPins(8)
	controlPins, controlOuts := newPins(3)
	data, err := NewGPIOPort(dataOuts...)
	require.NoError(t, err)
	control, err := NewGPIOPort(controlOuts...)
	require.NoError(t, err)

	bus := NewBus(data, control, &Opts{Sleep: func(time.Duration) {}})
	bus.Init()
	bus.Data('Z')

	assert.Equal(t, byte('Z'), levels(dataPins))
	assert.Equal(t, registerSelectBit, levels(controlPins), "RS high, RW and EN low after a data write")
}
