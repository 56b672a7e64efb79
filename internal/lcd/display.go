package lcd

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Display turns a character stream into two scrolling 16 character rows, like a
// teleprinter: when both rows are full the second row moves up and writing
// continues on an empty second row.
type Display struct {
	mu            sync.Mutex
	bus           *Bus
	rows          [Rows]Row
	renderPadding bool
}

type DisplayOption func(*Display)

// WithRenderedPadding makes a newline also send the padding spaces to the
// controller. By default padding only touches the shadow rows.
func WithRenderedPadding() DisplayOption {
	return func(d *Display) {
		d.renderPadding = true
	}
}

func NewDisplay(bus *Bus, opts ...DisplayOption) *Display {
	d := &Display{bus: bus}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Init initializes the controller and empties both rows.
func (d *Display) Init() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.bus.Init()
	d.rows[0].Reset()
	d.rows[1].Reset()
}

// Clear blanks the display and empties both rows.
func (d *Display) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.clear()
}

func (d *Display) clear() {
	d.bus.Clear()
	d.rows[0].Reset()
	d.rows[1].Reset()
}

func (d *Display) WriteChar(ch byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.writeChar(ch)
}

func (d *Display) WriteString(s string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := 0; i < len(s); i++ {
		d.writeChar(s[i])
	}
}

// Write implements io.Writer. It never fails.
func (d *Display) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, ch := range p {
		d.writeChar(ch)
	}
	return len(p), nil
}

// Print clears the display and shows line1 on the first row and line2 on the
// second. Both are cut to the row width and control characters in them are
// shown as spaces.
func (d *Display) Print(line1, line2 string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	log.Debugf("Print %q / %q", line1, line2)
	d.clear()
	line1 = truncate(line1)
	if len(line1) < LineWidth {
		// a full first row already moves writing to the second
		line1 += "\n"
	}
	for _, s := range []string{line1, truncate(line2)} {
		for i := 0; i < len(s); i++ {
			d.writeChar(s[i])
		}
	}
}

// Lines returns the authoritative content of both rows.
func (d *Display) Lines() [Rows]string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return [Rows]string{d.rows[0].String(), d.rows[1].String()}
}

func (d *Display) writeChar(ch byte) {
	primary, secondary := &d.rows[0], &d.rows[1]
	working, line := primary, Line1
	if primary.Full() {
		working, line = secondary, Line2
	}

	switch ch {
	case '\r':
		return
	case '\n':
		d.pad(working, line)
		return
	}

	if working == primary {
		if primary.Len() == 0 {
			d.bus.Command(byte(Line1))
		}
		d.put(primary, ch)
		return
	}

	if secondary.Len() == 0 {
		d.bus.Command(byte(Line2))
	}
	if secondary.Full() {
		d.scroll()
	}
	d.put(secondary, ch)
}

func (d *Display) put(r *Row, ch byte) {
	if err := r.Put(ch); err != nil {
		log.Warnf("Dropping %q: %v", ch, err)
		return
	}
	d.bus.Data(ch)
}

func (d *Display) pad(r *Row, line Line) {
	if !d.renderPadding {
		r.Pad()
		return
	}
	if r.Full() {
		return
	}
	if r.Len() == 0 {
		d.bus.Command(byte(line))
	}
	for !r.Full() {
		d.put(r, ' ')
	}
}

// scroll moves the second row up and blanks it. The display is switched off
// while it is redrawn.
func (d *Display) scroll() {
	primary, secondary := &d.rows[0], &d.rows[1]
	log.Debugf("Scrolling %q up", secondary.String())

	d.bus.Command(displayOffCursorOff)
	d.bus.Command(byte(Line1))
	primary.cells = secondary.cells
	primary.cursor = LineWidth
	for _, ch := range primary.cells {
		d.bus.Data(ch)
	}

	d.bus.Command(byte(Line2))
	for i := 0; i < LineWidth; i++ {
		d.bus.Data(' ')
	}
	secondary.Reset()
	d.bus.Command(displayOnCursorOn)
	d.bus.Command(byte(Line2))
}

func truncate(s string) string {
	if len(s) > LineWidth {
		s = s[:LineWidth]
	}
	b := []byte(s)
	for i, ch := range b {
		if ch < ' ' || ch == 0x7f {
			b[i] = ' '
		}
	}
	return string(b)
}
