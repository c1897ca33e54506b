// Package hover drives the preview card from pointer events.
//
// A [Controller] keeps one session per bound link and moves it through
//
//	Idle -> Armed -> Loading -> Shown
//
// with any state returning to Idle when the pointer leaves. Each enter
// increments the link's generation; a response is rendered only if it still
// carries the current generation of a session that is loading. Responses
// are never cancelled in flight, they are ignored on arrival.
//
// The loading card appears on enter. Data and errors replace it after the
// same settle delay. At most one card is visible: entering a link
// supersedes whichever link was active.
package hover

import (
	"time"

	"github.com/matzehuels/hovercard/pkg/preview"
	"github.com/matzehuels/hovercard/pkg/viewport"
)

// Default timings.
const (
	DefaultSettleDelay  = 300 * time.Millisecond
	DefaultHideDuration = 200 * time.Millisecond
)

// State is the phase of one link's session.
type State int

const (
	Idle State = iota
	Armed
	Loading
	Shown
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Loading:
		return "loading"
	case Shown:
		return "shown"
	default:
		return "unknown"
	}
}

// Link is a hoverable element. Implementations must be comparable; the
// controller keys sessions by link identity.
type Link interface {
	Href() string
}

// Surface renders the single preview card.
//
// The controller calls Surface methods while holding its lock, so
// implementations must return promptly and must not call back into the
// controller on the same goroutine.
type Surface interface {
	// Viewport reports the current visible area.
	Viewport() viewport.Size
	// ShowLoading displays the card in its loading state.
	ShowLoading(p viewport.Placement)
	// Show renders data into the card.
	Show(data preview.Data, p viewport.Placement)
	// ShowError renders the error variant with msg as its description.
	ShowError(msg string, p viewport.Placement)
	// Hide starts hiding the card.
	Hide()
	// Reset clears the card content once it is fully hidden.
	Reset()
}

// LocalMode selects how links without a provider are summarised.
type LocalMode string

const (
	// LocalURL builds the card from the URL alone, without network access.
	LocalURL LocalMode = "url"
	// LocalPage asks the fetch side for a scraped page overview.
	LocalPage LocalMode = "page"
)

// Valid reports whether m is a known mode.
func (m LocalMode) Valid() bool {
	return m == LocalURL || m == LocalPage
}
