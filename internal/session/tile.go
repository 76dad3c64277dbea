package session

import (
	"github.com/lehigh-university-libraries/clicklabel/internal/models"
)

// Signal is a mouse button press recognized by the grid
type Signal int

const (
	SignalUnknown Signal = iota
	SignalPrimary
	SignalSecondary
)

// ParseSignal maps the wire names "primary"/"secondary" (or "left"/"right")
// to a Signal. Anything else is SignalUnknown.
func ParseSignal(s string) Signal {
	switch s {
	case "primary", "left":
		return SignalPrimary
	case "secondary", "right":
		return SignalSecondary
	default:
		return SignalUnknown
	}
}

func (s Signal) String() string {
	switch s {
	case SignalPrimary:
		return "primary"
	case SignalSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// Tile is one grid cell for the page currently displayed
type Tile struct {
	Index     int
	Path      string
	Label     models.Label
	Timestamp string
}

// Update stores label and timestamp. A timestamp of "None" or "" means now.
func (t *Tile) Update(label models.Label, timestamp string, now func() string) {
	if timestamp == "" || timestamp == models.NoneSentinel {
		timestamp = now()
	}
	t.Label = label
	t.Timestamp = timestamp
}

// Apply handles a click bound to label: re-selecting the current label
// clears it, anything else switches to it.
func (t *Tile) Apply(bound models.Label, now func() string) {
	next := bound
	if t.Label == bound {
		next = models.Unlabeled()
	}
	t.Update(next, "", now)
}
