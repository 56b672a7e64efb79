//go:build !pi

package lcd

import (
	log "github.com/sirupsen/logrus"
)

// Open returns a simulated controller; there is no display hardware on this build.
func Open(b Board) (Wiring, error) {
	log.Infoln("Starting the simulated LCD")
	s := NewSim(b.Mirrored)
	return Wiring{
		Data:    s.DataPort(),
		Control: s.ControlPort(),
		Sim:     s,
	}, nil
}
