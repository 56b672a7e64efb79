package lcd

import (
	"math/bits"
	"time"

	log "github.com/sirupsen/logrus"
)

// Bus sends single command and data bytes to the controller over an 8-bit
// parallel data port and a control port carrying RS, RW and EN.
//
// A Bus is not safe for concurrent use; Display serialises access to it.
type Bus struct {
	data     Port
	control  Port
	state    byte // last value written to the control port
	mirrored bool
	watchdog Watchdog
	sleep    func(time.Duration)
}

func NewBus(data, control Port, opts *Opts) *Bus {
	if opts == nil {
		opts = &Opts{}
	}
	b := &Bus{
		data:     data,
		control:  control,
		mirrored: opts.Mirrored,
		watchdog: opts.Watchdog,
		sleep:    opts.Sleep,
	}
	if b.sleep == nil {
		b.sleep = time.Sleep
	}
	return b
}

// Mirror reverses the bit order of b. Applying it twice returns b.
func Mirror(b byte) byte {
	return bits.Reverse8(b)
}

// Init runs the controller start-up sequence. It must be called once before
// any other operation.
func (b *Bus) Init() {
	log.Infoln("Initializing LCD bus")
	if err := b.data.Configure(0xff); err != nil {
		log.Warn("Unable to configure data port: ", err)
	}
	b.writeData(0x00)
	if err := b.control.Configure(controlMask); err != nil {
		log.Warn("Unable to configure control port: ", err)
	}
	b.state = 0
	b.writeControl()

	b.settle(PowerOnDelay)
	b.Command(twoLineMode)
	b.Command(entryIncrement)
	b.Command(displayOnCursorOn)
	b.Command(clearDisplay)
	b.settle(ClearDelay)

	// The first data write after a clear is garbled on some controllers.
	b.Data(' ')
	b.Command(byte(Line1))
	b.settle(HomeDelay)
}

// Clear clears the display RAM and waits for the controller to finish.
func (b *Bus) Clear() {
	b.Command(clearDisplay)
	b.settle(ClearDelay)
}

func (b *Bus) Command(c byte) {
	b.send(CommandRegister, c)
}

func (b *Bus) Data(d byte) {
	b.send(DataRegister, d)
}

func (b *Bus) send(r Register, v byte) {
	log.Tracef("lcd %v 0x%02x", r, v)
	if r == DataRegister {
		b.state |= registerSelectBit
	} else {
		b.state &^= registerSelectBit
	}
	b.state &^= readWriteBit
	b.writeControl()

	if b.mirrored {
		v = Mirror(v)
	}
	b.writeData(v)

	b.state |= enableBit
	b.writeControl()
	b.sleep(EnablePulse)
	b.state &^= enableBit
	b.writeControl()
}

func (b *Bus) settle(d time.Duration) {
	if b.watchdog != nil {
		b.watchdog.Reset()
	}
	b.sleep(d)
	if b.watchdog != nil {
		b.watchdog.Reset()
	}
}

func (b *Bus) writeData(v byte) {
	if err := b.data.Set(v); err != nil {
		log.Warnf("Unable to write 0x%02x to data port: %v", v, err)
	}
}

func (b *Bus) writeControl() {
	if err := b.control.Set(b.state); err != nil {
		log.Warnf("Unable to write 0x%02x to control port: %v", b.state, err)
	}
}
