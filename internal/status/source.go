package status

import (
	"context"
)

// Source is something whose state can be shown on the display.
type Source interface {
	// Name is shown on the first row.
	Name() string
	// Status is shown on the second row.
	Status(ctx context.Context) (string, error)
}

type Event struct {
	Source string
	Status string
}

// Printer shows two lines of text, the first row and the second row.
type Printer interface {
	Print(line1, line2 string)
}
